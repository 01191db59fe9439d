package reports

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ntarasov/equiptrack/internal/cache"
	"github.com/ntarasov/equiptrack/internal/domain/models"
)

type mockReportAPI struct {
	devices     []models.Device
	reportCalls int
}

func (m *mockReportAPI) DevicesReport(context.Context, models.DeviceFilter) ([]models.Device, error) {
	m.reportCalls++
	return m.devices, nil
}

func (m *mockReportAPI) ExportDevicesCSV(context.Context, models.DeviceFilter) (*models.CSVExport, error) {
	return &models.CSVExport{Filename: "devices.csv", Data: []byte("id,inventory_number\n")}, nil
}

func (m *mockReportAPI) LocationsReport(_ context.Context, lt models.LocationType) ([]models.LocationReport, error) {
	return []models.LocationReport{{LocationType: lt, LocationName: "Main", DeviceCount: len(m.devices)}}, nil
}

type memoryWriter struct {
	rows    [][]interface{}
	cleared []string
}

func (w *memoryWriter) WriteRows(_ context.Context, _ string, rows [][]interface{}) error {
	w.rows = append(w.rows, rows...)
	return nil
}

func (w *memoryWriter) Clear(_ context.Context, sheetRange string) error {
	w.cleared = append(w.cleared, sheetRange)
	return nil
}

func testDevices() []models.Device {
	return []models.Device{
		{ID: 1, InventoryNumber: "ACME-NB/0001", SerialNumber: "SN1", CurrentLocationType: models.LocationEmployee, CurrentLocationID: 5},
		{ID: 2, InventoryNumber: "ACME-NB/0002", SerialNumber: "SN2", CurrentLocationType: models.LocationWarehouse, CurrentLocationID: 1},
	}
}

func TestDevicesReportCached(t *testing.T) {
	api := &mockReportAPI{devices: testDevices()}
	svc := NewService(api, cache.New(time.Minute), nil, "", nil)
	ctx := context.Background()

	svc.Devices(ctx, models.DeviceFilter{})
	svc.Devices(ctx, models.DeviceFilter{})
	if api.reportCalls != 1 {
		t.Errorf("expected 1 backend call for repeated report reads, got %d", api.reportCalls)
	}
}

func TestExportToSheets(t *testing.T) {
	api := &mockReportAPI{devices: testDevices()}
	writer := &memoryWriter{}
	svc := NewService(api, cache.New(time.Minute), writer, "Devices!A:I", nil)

	n, err := svc.ExportToSheets(context.Background(), models.DeviceFilter{})
	if err != nil {
		t.Fatalf("ExportToSheets: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 exported devices, got %d", n)
	}

	// Old contents cleared, then header plus one row per device.
	if len(writer.cleared) != 1 || writer.cleared[0] != "Devices!A:I" {
		t.Errorf("expected the range to be cleared first, got %v", writer.cleared)
	}
	if len(writer.rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(writer.rows))
	}
	if writer.rows[1][1] != "ACME-NB/0001" {
		t.Errorf("unexpected first data row: %v", writer.rows[1])
	}
}

func TestExportWithoutWriter(t *testing.T) {
	svc := NewService(&mockReportAPI{}, cache.New(time.Minute), nil, "", nil)
	if svc.SheetsEnabled() {
		t.Error("SheetsEnabled must be false without a writer")
	}
	if _, err := svc.ExportToSheets(context.Background(), models.DeviceFilter{}); err == nil {
		t.Error("expected error when no sheet writer is configured")
	}
}

func TestDevicesCSVPassthrough(t *testing.T) {
	svc := NewService(&mockReportAPI{}, cache.New(time.Minute), nil, "", nil)

	export, err := svc.DevicesCSV(context.Background(), models.DeviceFilter{})
	if err != nil {
		t.Fatalf("DevicesCSV: %v", err)
	}
	if export.Filename != "devices.csv" || !strings.HasPrefix(string(export.Data), "id,") {
		t.Errorf("unexpected export: %+v", export)
	}
}
