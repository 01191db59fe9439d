package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/domain/models"
	"github.com/ntarasov/equiptrack/internal/service/devices"
	"github.com/ntarasov/equiptrack/internal/service/inventory"
)

// InventoryHandler drives the stocktaking workflow: sessions, per-device
// checks, and the scan path that resolves an inventory number first.
type InventoryHandler struct {
	inventory *inventory.Service
	devices   *devices.Service
	logger    *zap.Logger
}

func NewInventoryHandler(inv *inventory.Service, dev *devices.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{inventory: inv, devices: dev, logger: logger}
}

func (h *InventoryHandler) CreateSession(c *gin.Context) {
	var req models.SessionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	session, err := h.inventory.CreateSession(c.Request.Context(), req)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *InventoryHandler) ListSessions(c *gin.Context) {
	var status *models.SessionStatus
	if v := c.Query("status"); v != "" {
		s := models.SessionStatus(v)
		status = &s
	}

	sessions, err := h.inventory.ListSessions(c.Request.Context(), status)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *InventoryHandler) GetSession(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	session, err := h.inventory.GetSession(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *InventoryHandler) CompleteSession(c *gin.Context) {
	h.transition(c, h.inventory.CompleteSession)
}

func (h *InventoryHandler) CancelSession(c *gin.Context) {
	h.transition(c, h.inventory.CancelSession)
}

func (h *InventoryHandler) transition(c *gin.Context, fn func(ctx context.Context, id int64) (*models.InventorySession, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	session, err := fn(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *InventoryHandler) Records(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var checked *bool
	if v := c.Query("checked"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid checked filter"})
			return
		}
		checked = &b
	}

	records, err := h.inventory.SessionRecords(c.Request.Context(), id, checked)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *InventoryHandler) Statistics(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	stats, err := h.inventory.Statistics(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type checkRequest struct {
	DeviceID int64  `json:"device_id" binding:"required"`
	Checked  *bool  `json:"checked" binding:"required"`
	Notes    string `json:"notes"`
}

func (h *InventoryHandler) Check(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	record, err := h.inventory.CheckDevice(c.Request.Context(), id, req.DeviceID, *req.Checked, req.Notes)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

type scanRequest struct {
	InventoryNumber string `json:"inventory_number" binding:"required"`
	Notes           string `json:"notes"`
}

// Scan resolves an inventory number to a device and marks it checked in one
// round trip, the hot path for barcode scanners.
func (h *InventoryHandler) Scan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	device, err := h.devices.FindByInventoryNumber(c.Request.Context(), req.InventoryNumber)
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	record, err := h.inventory.CheckDevice(c.Request.Context(), id, device.ID, true, req.Notes)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"device": device, "record": record})
}
