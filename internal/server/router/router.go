package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/server/handlers"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Devices   *handlers.DeviceHandler
	Refs      *handlers.ReferenceHandler
	Inventory *handlers.InventoryHandler
	Labels    *handlers.LabelHandler
	Reports   *handlers.ReportHandler
	System    *handlers.SystemHandler
}

// New wires the Gin engine with required routes and middlewares. Everything
// under /api except login requires an authenticated backend token.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", h.System.Health)

	api := r.Group("/api")
	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(h.Auth.RequireAuth())
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/me", h.Auth.Me)

		authed.GET("/connection/test", h.System.TestConnection)
		authed.GET("/settings/locale", h.System.GetLocale)
		authed.PUT("/settings/locale", h.System.SetLocale)

		authed.GET("/devices", h.Devices.List)
		authed.POST("/devices", h.Devices.Create)
		authed.GET("/devices/lookup", h.Devices.Lookup)
		authed.GET("/devices/:id", h.Devices.Get)
		authed.PUT("/devices/:id", h.Devices.Update)
		authed.DELETE("/devices/:id", h.Devices.Delete)
		authed.GET("/devices/:id/movements", h.Devices.History)
		authed.POST("/devices/:id/movements", h.Devices.Move)

		authed.GET("/references", h.Refs.Kinds)
		authed.GET("/references/:kind", h.Refs.List)
		authed.POST("/references/:kind", h.Refs.Create)
		authed.PUT("/references/:kind/:id", h.Refs.Update)
		authed.DELETE("/references/:kind/:id", h.Refs.Delete)
		authed.GET("/employees/:id/devices", h.Refs.EmployeeDevices)

		authed.POST("/inventory/sessions", h.Inventory.CreateSession)
		authed.GET("/inventory/sessions", h.Inventory.ListSessions)
		authed.GET("/inventory/sessions/:id", h.Inventory.GetSession)
		authed.POST("/inventory/sessions/:id/complete", h.Inventory.CompleteSession)
		authed.POST("/inventory/sessions/:id/cancel", h.Inventory.CancelSession)
		authed.GET("/inventory/sessions/:id/records", h.Inventory.Records)
		authed.GET("/inventory/sessions/:id/statistics", h.Inventory.Statistics)
		authed.POST("/inventory/sessions/:id/check", h.Inventory.Check)
		authed.POST("/inventory/sessions/:id/scan", h.Inventory.Scan)

		authed.GET("/labels/formats", h.Labels.Formats)
		authed.GET("/labels/:id", h.Labels.Render)
		authed.POST("/labels/print", h.Labels.Print)

		authed.GET("/reports/devices", h.Reports.Devices)
		authed.GET("/reports/devices/csv", h.Reports.DevicesCSV)
		authed.GET("/reports/locations", h.Reports.Locations)
		authed.POST("/reports/devices/sheets", h.Reports.ExportToSheets)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
			zap.String("client_ip", c.ClientIP()))
	}
}
