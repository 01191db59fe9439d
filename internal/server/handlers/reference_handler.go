package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/service/references"
)

// ReferenceHandler serves every reference catalog through one set of routes;
// the kind in the path selects the catalog from the registry.
type ReferenceHandler struct {
	refs   *references.Service
	logger *zap.Logger
}

func NewReferenceHandler(refs *references.Service, logger *zap.Logger) *ReferenceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceHandler{refs: refs, logger: logger}
}

// Kinds lists the available catalog kinds so the UI can build its reference
// tabs without hardcoding them.
func (h *ReferenceHandler) Kinds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"kinds": h.refs.Kinds()})
}

func (h *ReferenceHandler) List(c *gin.Context) {
	resource, err := h.refs.Resource(references.Kind(c.Param("kind")))
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	// The model catalog accepts an optional brand filter.
	if references.Kind(c.Param("kind")) == references.KindModels {
		if brandID, err := strconv.ParseInt(c.Query("brand_id"), 10, 64); err == nil {
			items, err := h.refs.ModelsByBrand(c.Request.Context(), brandID)
			if err != nil {
				fail(c, h.logger, err)
				return
			}
			c.JSON(http.StatusOK, items)
			return
		}
	}

	items, err := resource.List(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ReferenceHandler) Create(c *gin.Context) {
	resource, err := h.refs.Resource(references.Kind(c.Param("kind")))
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	payload, ok := rawBody(c)
	if !ok {
		return
	}

	item, err := resource.Create(c.Request.Context(), payload)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ReferenceHandler) Update(c *gin.Context) {
	resource, err := h.refs.Resource(references.Kind(c.Param("kind")))
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	payload, ok := rawBody(c)
	if !ok {
		return
	}

	item, err := resource.Update(c.Request.Context(), id, payload)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ReferenceHandler) Delete(c *gin.Context) {
	resource, err := h.refs.Resource(references.Kind(c.Param("kind")))
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := resource.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EmployeeDevices lists what an employee currently holds, used by the
// fired-employee handover screen.
func (h *ReferenceHandler) EmployeeDevices(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.refs.EmployeeDevices(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func rawBody(c *gin.Context) (json.RawMessage, bool) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil || len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "request body is required"})
		return nil, false
	}
	return payload, true
}
