package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/domain/models"
	"github.com/ntarasov/equiptrack/internal/service/devices"
	"github.com/ntarasov/equiptrack/internal/service/movements"
)

// DeviceHandler serves the device catalog plus the movement history hanging
// off each device.
type DeviceHandler struct {
	devices   *devices.Service
	movements *movements.Service
	logger    *zap.Logger
}

func NewDeviceHandler(devices *devices.Service, movements *movements.Service, logger *zap.Logger) *DeviceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeviceHandler{devices: devices, movements: movements, logger: logger}
}

func (h *DeviceHandler) List(c *gin.Context) {
	f := deviceFilter(c)
	items, err := h.devices.List(c.Request.Context(), f)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *DeviceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	device, err := h.devices.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

// Lookup resolves a scanned or typed inventory number.
func (h *DeviceHandler) Lookup(c *gin.Context) {
	device, err := h.devices.FindByInventoryNumber(c.Request.Context(), c.Query("inventory_number"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

func (h *DeviceHandler) Create(c *gin.Context) {
	var req models.DeviceCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	device, err := h.devices.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, device)
}

func (h *DeviceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.DeviceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	device, err := h.devices.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

func (h *DeviceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.devices.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DeviceHandler) History(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	history, err := h.movements.History(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *DeviceHandler) Move(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.MovementCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	req.DeviceID = id

	movement, err := h.movements.Move(c.Request.Context(), req)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, movement)
}

func deviceFilter(c *gin.Context) models.DeviceFilter {
	var f models.DeviceFilter
	if v, err := strconv.ParseInt(c.Query("device_type_id"), 10, 64); err == nil {
		f.DeviceTypeID = v
	}
	if v, err := strconv.ParseInt(c.Query("brand_id"), 10, 64); err == nil {
		f.BrandID = v
	}
	if v := c.Query("location_type"); v != "" {
		f.LocationType = models.LocationType(v)
	}
	if v, err := strconv.ParseInt(c.Query("location_id"), 10, 64); err == nil {
		f.LocationID = v
	}
	return f
}
