package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/service/labels"
)

// LabelHandler serves printable label pages rendered by the local layout
// engine.
type LabelHandler struct {
	labels *labels.Service
	logger *zap.Logger
}

func NewLabelHandler(labels *labels.Service, logger *zap.Logger) *LabelHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelHandler{labels: labels, logger: logger}
}

func (h *LabelHandler) Formats(c *gin.Context) {
	all := labels.AllFormats()
	out := make([]gin.H, 0, len(all))
	for _, f := range all {
		out = append(out, gin.H{
			"key":      f.Key,
			"name":     f.Name,
			"width":    f.Width,
			"height":   f.Height,
			"per_page": f.PerPage,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *LabelHandler) Render(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	html, err := h.labels.RenderLabel(c.Request.Context(), id, c.Query("format"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

type printRequest struct {
	DeviceIDs []int64 `json:"device_ids" binding:"required"`
	Format    string  `json:"format"`
}

// Print renders a batch. Partial failures come back in the payload so the
// operator sees exactly which devices are missing from the printout.
func (h *LabelHandler) Print(c *gin.Context) {
	var req printRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result, err := h.labels.RenderBatch(c.Request.Context(), req.DeviceIDs, req.Format)
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	failures := make([]gin.H, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, gin.H{
			"device_id": f.DeviceID,
			"detail":    f.Err.Error(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"html":     result.HTML,
		"rendered": result.Rendered,
		"failures": failures,
	})
}
