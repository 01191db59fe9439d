package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/cache"
	"github.com/ntarasov/equiptrack/internal/config"
	"github.com/ntarasov/equiptrack/internal/export/sheets"
	"github.com/ntarasov/equiptrack/internal/i18n"
	"github.com/ntarasov/equiptrack/internal/scheduler"
	"github.com/ntarasov/equiptrack/internal/server/handlers"
	"github.com/ntarasov/equiptrack/internal/server/router"
	devicesvc "github.com/ntarasov/equiptrack/internal/service/devices"
	inventorysvc "github.com/ntarasov/equiptrack/internal/service/inventory"
	labelsvc "github.com/ntarasov/equiptrack/internal/service/labels"
	movementsvc "github.com/ntarasov/equiptrack/internal/service/movements"
	referencesvc "github.com/ntarasov/equiptrack/internal/service/references"
	reportsvc "github.com/ntarasov/equiptrack/internal/service/reports"
	"github.com/ntarasov/equiptrack/pkg/clients/backend"
	"github.com/ntarasov/equiptrack/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	client := backend.New(cfg.Backend, baseLogger.Named("clients.backend"))
	client.OnAuthExpired(func() {
		baseLogger.Warn("backend token expired, operator must log in again")
	})

	queryCache := cache.New(cfg.Cache.TTL)

	localeStore := i18n.NewStore(cfg.Locale.Default)
	localeStore.Subscribe(func(locale string) {
		baseLogger.Info("interface locale changed", zap.String("locale", locale))
	})

	// Sheets export is optional: without credentials the report endpoints
	// still work, only the spreadsheet push is disabled.
	var sheetWriter sheets.RowWriter
	if cfg.Sheets.CredentialsPath != "" && cfg.Sheets.SpreadsheetID != "" {
		w, err := sheets.NewGoogleSheetWriter(context.Background(), cfg.Sheets, baseLogger.Named("export.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets writer", zap.Error(err))
		}
		sheetWriter = w
		baseLogger.Info("sheets export enabled", zap.String("range", cfg.Sheets.SheetRange))
	} else {
		baseLogger.Info("sheets export disabled, credentials not configured")
	}

	deviceSvc := devicesvc.NewService(client, queryCache, baseLogger.Named("svc.devices"))
	movementSvc := movementsvc.NewService(client, queryCache, baseLogger.Named("svc.movements"))
	referenceSvc := referencesvc.NewService(client, queryCache, baseLogger.Named("svc.references"))
	inventorySvc := inventorysvc.NewService(client, queryCache, baseLogger.Named("svc.inventory"))
	labelSvc := labelsvc.NewService(client, cfg.Labels.DefaultFormat, baseLogger.Named("svc.labels"))
	reportSvc := reportsvc.NewService(client, queryCache, sheetWriter, cfg.Sheets.SheetRange, baseLogger.Named("svc.reports"))

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(client, baseLogger.Named("handlers.auth")),
		Devices:   handlers.NewDeviceHandler(deviceSvc, movementSvc, baseLogger.Named("handlers.devices")),
		Refs:      handlers.NewReferenceHandler(referenceSvc, baseLogger.Named("handlers.references")),
		Inventory: handlers.NewInventoryHandler(inventorySvc, deviceSvc, baseLogger.Named("handlers.inventory")),
		Labels:    handlers.NewLabelHandler(labelSvc, baseLogger.Named("handlers.labels")),
		Reports:   handlers.NewReportHandler(reportSvc, baseLogger.Named("handlers.reports")),
		System:    handlers.NewSystemHandler(client, localeStore, baseLogger.Named("handlers.system")),
	}, baseLogger.Named("router"))

	sched := scheduler.New(*cfg, queryCache, client, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
