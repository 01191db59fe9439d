package reports

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/cache"
	"github.com/ntarasov/equiptrack/internal/domain/models"
	"github.com/ntarasov/equiptrack/internal/export/sheets"
)

// API is the slice of the backend client the report service needs.
type API interface {
	DevicesReport(ctx context.Context, f models.DeviceFilter) ([]models.Device, error)
	ExportDevicesCSV(ctx context.Context, f models.DeviceFilter) (*models.CSVExport, error)
	LocationsReport(ctx context.Context, locationType models.LocationType) ([]models.LocationReport, error)
}

// Service serves the reporting views and pushes the device report into a
// spreadsheet. The sheet writer is optional; without credentials the export
// endpoint reports itself unavailable.
type Service struct {
	api        API
	cache      *cache.Cache
	writer     sheets.RowWriter
	sheetRange string
	logger     *zap.Logger
}

func NewService(api API, c *cache.Cache, writer sheets.RowWriter, sheetRange string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, cache: c, writer: writer, sheetRange: sheetRange, logger: logger}
}

func (s *Service) Devices(ctx context.Context, f models.DeviceFilter) ([]models.Device, error) {
	key := reportKey("devices", f)
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Device), nil
	}

	devices, err := s.api.DevicesReport(ctx, f)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, devices)
	return devices, nil
}

// DevicesCSV streams the backend's CSV rendition of the device report.
// Never cached: the download should always reflect live state.
func (s *Service) DevicesCSV(ctx context.Context, f models.DeviceFilter) (*models.CSVExport, error) {
	return s.api.ExportDevicesCSV(ctx, f)
}

func (s *Service) Locations(ctx context.Context, locationType models.LocationType) ([]models.LocationReport, error) {
	key := cache.Key("reports", "locations", string(locationType))
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.LocationReport), nil
	}

	report, err := s.api.LocationsReport(ctx, locationType)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, report)
	return report, nil
}

// SheetsEnabled reports whether a spreadsheet export target is configured.
func (s *Service) SheetsEnabled() bool { return s.writer != nil }

// ExportToSheets replaces the configured sheet range with the current device
// report and returns the number of data rows written.
func (s *Service) ExportToSheets(ctx context.Context, f models.DeviceFilter) (int, error) {
	if s.writer == nil {
		return 0, fmt.Errorf("sheets export is not configured")
	}

	devices, err := s.api.DevicesReport(ctx, f)
	if err != nil {
		return 0, err
	}

	rows := make([][]interface{}, 0, len(devices)+1)
	rows = append(rows, []interface{}{
		"ID", "Inventory number", "Serial number",
		"Company", "Type", "Brand", "Model",
		"Location type", "Location",
	})
	for _, d := range devices {
		rows = append(rows, []interface{}{
			strconv.FormatInt(d.ID, 10),
			d.InventoryNumber,
			d.SerialNumber,
			strconv.FormatInt(d.CompanyID, 10),
			strconv.FormatInt(d.DeviceTypeID, 10),
			strconv.FormatInt(d.BrandID, 10),
			strconv.FormatInt(d.ModelID, 10),
			string(d.CurrentLocationType),
			strconv.FormatInt(d.CurrentLocationID, 10),
		})
	}

	if err := s.writer.Clear(ctx, s.sheetRange); err != nil {
		return 0, err
	}
	if err := s.writer.WriteRows(ctx, s.sheetRange, rows); err != nil {
		return 0, err
	}

	s.logger.Info("device report exported to sheets",
		zap.Int("devices", len(devices)),
		zap.String("range", s.sheetRange))
	return len(devices), nil
}

func reportKey(name string, f models.DeviceFilter) string {
	parts := []string{"reports", name}
	if f.DeviceTypeID != 0 {
		parts = append(parts, "type="+strconv.FormatInt(f.DeviceTypeID, 10))
	}
	if f.BrandID != 0 {
		parts = append(parts, "brand="+strconv.FormatInt(f.BrandID, 10))
	}
	if f.LocationType != "" {
		parts = append(parts, "loc="+string(f.LocationType))
	}
	if f.LocationID != 0 {
		parts = append(parts, "loc_id="+strconv.FormatInt(f.LocationID, 10))
	}
	return cache.Key(parts...)
}
