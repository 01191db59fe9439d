package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/domain/models"
	"github.com/ntarasov/equiptrack/internal/service/reports"
)

// ReportHandler serves the reporting views, the CSV download, and the
// spreadsheet export.
type ReportHandler struct {
	reports *reports.Service
	logger  *zap.Logger
}

func NewReportHandler(reports *reports.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reports: reports, logger: logger}
}

func (h *ReportHandler) Devices(c *gin.Context) {
	items, err := h.reports.Devices(c.Request.Context(), deviceFilter(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ReportHandler) DevicesCSV(c *gin.Context) {
	export, err := h.reports.DevicesCSV(c.Request.Context(), deviceFilter(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", export.Data)
}

// Locations serves the what-is-where report. Without a type filter both
// warehouses and employees come back.
func (h *ReportHandler) Locations(c *gin.Context) {
	lt := models.LocationType(c.Query("type"))
	if lt != "" && lt != models.LocationEmployee && lt != models.LocationWarehouse {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "type must be employee or warehouse"})
		return
	}

	report, err := h.reports.Locations(c.Request.Context(), lt)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) ExportToSheets(c *gin.Context) {
	if !h.reports.SheetsEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "sheets export is not configured"})
		return
	}

	n, err := h.reports.ExportToSheets(c.Request.Context(), deviceFilter(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exported": n})
}
