package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/i18n"
	"github.com/ntarasov/equiptrack/pkg/clients/backend"
)

const localeCookie = "app_locale"

// SystemHandler covers the odds and ends: liveness, backend reachability,
// and the interface locale.
type SystemHandler struct {
	client *backend.Client
	locale *i18n.Store
	logger *zap.Logger
}

func NewSystemHandler(client *backend.Client, locale *i18n.Store, logger *zap.Logger) *SystemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemHandler{client: client, locale: locale, logger: logger}
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// TestConnection probes the backend and reports latency, the handler behind
// the settings screen's "test connection" button.
func (h *SystemHandler) TestConnection(c *gin.Context) {
	latency, err := h.client.Ping(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"reachable": false,
			"detail":    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reachable":  true,
		"latency_ms": latency.Milliseconds(),
	})
}

func (h *SystemHandler) GetLocale(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locale": h.locale.Get()})
}

type localeRequest struct {
	Locale string `json:"locale" binding:"required"`
}

func (h *SystemHandler) SetLocale(c *gin.Context) {
	var req localeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "locale is required"})
		return
	}

	if !i18n.Supported(req.Locale) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unsupported locale"})
		return
	}

	h.locale.Set(req.Locale)
	c.SetCookie(localeCookie, req.Locale, 0, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"locale": h.locale.Get()})
}
