package labels

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/ntarasov/equiptrack/internal/domain/models"
)

type mockLabelAPI struct {
	data  map[int64]*models.LabelData
	calls int
}

func (m *mockLabelAPI) GetLabelData(_ context.Context, deviceID int64) (*models.LabelData, error) {
	m.calls++
	d, ok := m.data[deviceID]
	if !ok {
		return nil, fmt.Errorf("device %d: %w", deviceID, errNoDevice)
	}
	return d, nil
}

var errNoDevice = errors.New("no such device")

func sampleData(id int64) *models.LabelData {
	return &models.LabelData{
		DeviceID:        id,
		InventoryNumber: fmt.Sprintf("ACME-NB/%04d", id),
		SerialNumber:    "SN-001122",
		ModelName:       "ThinkPad T14",
		QRCode:          "data:image/png;base64,iVBOR",
	}
}

func TestAutoFitBounds(t *testing.T) {
	f, err := FormatByKey("38x21")
	if err != nil {
		t.Fatal(err)
	}

	long := strings.Repeat("Очень длинная модель ", 2) // well over 20 chars
	layout := autoFit(f, long, "SN-001122", "ACME-NB/0001")

	// On stock this small 60% of the available height is under the 15mm
	// floor and the floor wins, so the ceiling is the floor itself.
	availH := f.Height - 2*labelPadding
	ceiling := math.Max(15, availH*0.6)
	if layout.QRSize < 15 || layout.QRSize > ceiling {
		t.Errorf("QR size %v outside [15, %v]", layout.QRSize, ceiling)
	}
	for name, size := range map[string]float64{
		"title":     layout.TitleFont,
		"serial":    layout.SerialFont,
		"inventory": layout.InventoryFont,
	} {
		if size < 6 || size > 16 {
			t.Errorf("%s font %v outside readable range", name, size)
		}
	}
}

func TestAutoFitFloorOnSmallStock(t *testing.T) {
	f, _ := FormatByKey("38x21")

	layout := autoFit(f, "ThinkPad T14", "SN-001122", "ACME-NB/0001")
	if layout.QRSize != 15 {
		t.Errorf("expected the 15mm floor to win on 38x21 stock, got %v", layout.QRSize)
	}
}

func TestAutoFitLongTextShrinksQR(t *testing.T) {
	f, _ := FormatByKey("70x36")

	short := autoFit(f, "Mini", "1", "2")
	long := autoFit(f, strings.Repeat("x", 30), "1", "2")
	if long.QRSize > short.QRSize {
		t.Errorf("expected long text to shrink the QR, got %v > %v", long.QRSize, short.QRSize)
	}
}

func TestRenderLabel(t *testing.T) {
	api := &mockLabelAPI{data: map[int64]*models.LabelData{7: sampleData(7)}}
	svc := NewService(api, "38x21", nil)

	html, err := svc.RenderLabel(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("RenderLabel: %v", err)
	}

	for _, want := range []string{
		"size: 38mm 21mm",
		"ThinkPad T14",
		"Сер: SN-001122",
		"Инв: ACME-NB/0007",
		`src="data:image/png;base64,iVBOR"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestRenderLabelPlaceholders(t *testing.T) {
	api := &mockLabelAPI{data: map[int64]*models.LabelData{1: {
		DeviceID: 1,
		QRCode:   "data:image/png;base64,x",
	}}}
	svc := NewService(api, "38x21", nil)

	html, err := svc.RenderLabel(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("RenderLabel: %v", err)
	}
	if !strings.Contains(html, "Не указана") {
		t.Error("missing model placeholder")
	}
	if strings.Count(html, "Не указан") < 3 { // once as model prefix match, twice standalone
		t.Error("missing serial/inventory placeholders")
	}
}

func TestRenderLabelUnknownFormat(t *testing.T) {
	svc := NewService(&mockLabelAPI{}, "38x21", nil)
	if _, err := svc.RenderLabel(context.Background(), 1, "13x13"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRenderBatchReportsFailures(t *testing.T) {
	api := &mockLabelAPI{data: map[int64]*models.LabelData{
		1: sampleData(1),
		3: sampleData(3),
	}}
	svc := NewService(api, "38x21", nil)

	result, err := svc.RenderBatch(context.Background(), []int64{1, 2, 3}, "50x25")
	if err != nil {
		t.Fatalf("RenderBatch: %v", err)
	}
	if result.Rendered != 2 {
		t.Errorf("expected 2 rendered labels, got %d", result.Rendered)
	}
	if len(result.Failures) != 1 || result.Failures[0].DeviceID != 2 {
		t.Fatalf("expected device 2 to fail, got %+v", result.Failures)
	}
	if !errors.Is(result.Failures[0].Err, errNoDevice) {
		t.Errorf("failure did not preserve the cause: %v", result.Failures[0].Err)
	}
	if !strings.Contains(result.HTML, "Не напечатаны устройства: 2") {
		t.Error("missing on-screen failures banner")
	}
	// A break after the first label, none after the last.
	if strings.Count(result.HTML, "label break") != 1 {
		t.Errorf("expected exactly one page break, got %d", strings.Count(result.HTML, "label break"))
	}
}

func TestAllFormatsOrderedAndGrids(t *testing.T) {
	all := AllFormats()
	if len(all) != 6 {
		t.Fatalf("expected 6 formats, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Width < all[i-1].Width {
			t.Errorf("formats out of order at %d: %v before %v", i, all[i-1].Key, all[i].Key)
		}
	}

	f, _ := FormatByKey("38x21")
	if !f.A4() || f.PerPage != 24 || f.Columns != 4 || f.Rows != 6 {
		t.Errorf("unexpected 38x21 grid: %+v", f)
	}
	if t50, _ := FormatByKey("40x30"); t50.A4() {
		t.Error("40x30 is tape-only and must not advertise an A4 grid")
	}
}
