package labels

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/domain/models"
)

// Placeholders shown when a device is missing the field. Model names are
// feminine in the UI language, the other two are masculine.
const (
	placeholderModel = "Не указана"
	placeholderValue = "Не указан"
)

// API is the slice of the backend client the label renderer needs.
type API interface {
	GetLabelData(ctx context.Context, deviceID int64) (*models.LabelData, error)
}

// Service renders printable label HTML locally: it fetches label content
// from the backend and lays it out with the auto-fit algorithm, so tape
// printers get a page sized exactly to the label stock.
type Service struct {
	api           API
	logger        *zap.Logger
	defaultFormat string
}

func NewService(api API, defaultFormat string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, logger: logger, defaultFormat: defaultFormat}
}

// Failure records one device that could not be rendered in a batch.
type Failure struct {
	DeviceID int64
	Err      error
}

// BatchResult is a batch render outcome. HTML holds every label that
// rendered; Failures lists the devices that did not, so the caller can show
// them instead of silently printing a short batch.
type BatchResult struct {
	HTML     string
	Rendered int
	Failures []Failure
}

type labelView struct {
	Width         float64
	Height        float64
	QR            template.URL
	QRSize        float64
	Model         string
	Serial        string
	Inventory     string
	TitleFont     float64
	SerialFont    float64
	InventoryFont float64
	PageBreak     bool
}

type pageView struct {
	Width  float64
	Height float64
	Labels []labelView
	// Devices skipped in a batch, shown on screen but kept off the paper.
	Failures []int64
}

var labelTmpl = template.Must(template.New("label").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
@page { size: {{.Width}}mm {{.Height}}mm; margin: 0; }
body { margin: 0; font-family: Arial, sans-serif; }
.label {
  width: {{.Width}}mm;
  height: {{.Height}}mm;
  padding: 2mm;
  box-sizing: border-box;
  display: flex;
  flex-direction: column;
  align-items: center;
  justify-content: center;
  text-align: center;
  overflow: hidden;
}
.label.break { page-break-after: always; }
.label div { width: 100%; word-wrap: break-word; line-height: 1.1; }
.failures { padding: 4mm; font-size: 10pt; color: #b00; }
@media print { .failures { display: none; } }
</style>
</head>
<body>
{{- if .Failures}}
<div class="failures">Не напечатаны устройства: {{range $i, $id := .Failures}}{{if $i}}, {{end}}{{$id}}{{end}}</div>
{{- end}}
{{- range .Labels}}
<div class="label{{if .PageBreak}} break{{end}}">
  <img src="{{.QR}}" style="width: {{.QRSize}}mm; height: {{.QRSize}}mm;" alt="QR">
  <div style="font-size: {{.TitleFont}}pt; font-weight: bold;">{{.Model}}</div>
  <div style="font-size: {{.SerialFont}}pt;">Сер: {{.Serial}}</div>
  <div style="font-size: {{.InventoryFont}}pt;">Инв: {{.Inventory}}</div>
</div>
{{- end}}
</body>
</html>
`))

// RenderLabel produces a single-label HTML page sized to the format. An
// empty formatKey uses the configured default.
func (s *Service) RenderLabel(ctx context.Context, deviceID int64, formatKey string) (string, error) {
	f, err := s.format(formatKey)
	if err != nil {
		return "", err
	}

	data, err := s.api.GetLabelData(ctx, deviceID)
	if err != nil {
		return "", err
	}

	page := pageView{Width: f.Width, Height: f.Height, Labels: []labelView{s.view(f, data, false)}}
	return render(page)
}

// RenderBatch renders one page per device in order, continuing past devices
// that fail and reporting them in the result.
func (s *Service) RenderBatch(ctx context.Context, deviceIDs []int64, formatKey string) (*BatchResult, error) {
	f, err := s.format(formatKey)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	page := pageView{Width: f.Width, Height: f.Height}
	for _, id := range deviceIDs {
		data, err := s.api.GetLabelData(ctx, id)
		if err != nil {
			s.logger.Warn("skipping device in label batch",
				zap.Int64("device_id", id),
				zap.Error(err))
			result.Failures = append(result.Failures, Failure{DeviceID: id, Err: err})
			page.Failures = append(page.Failures, id)
			continue
		}
		page.Labels = append(page.Labels, s.view(f, data, true))
	}

	if len(page.Labels) > 0 {
		// No forced break after the final label.
		page.Labels[len(page.Labels)-1].PageBreak = false
		html, err := render(page)
		if err != nil {
			return nil, err
		}
		result.HTML = html
		result.Rendered = len(page.Labels)
	}
	return result, nil
}

func (s *Service) format(key string) (Format, error) {
	if key == "" {
		key = s.defaultFormat
	}
	return FormatByKey(key)
}

func (s *Service) view(f Format, data *models.LabelData, pageBreak bool) labelView {
	model := strings.TrimSpace(data.ModelName)
	if model == "" {
		model = placeholderModel
	}
	serial := strings.TrimSpace(data.SerialNumber)
	if serial == "" {
		serial = placeholderValue
	}
	inventory := strings.TrimSpace(data.InventoryNumber)
	if inventory == "" {
		inventory = placeholderValue
	}

	layout := autoFit(f, model, serial, inventory)
	return labelView{
		Width:         f.Width,
		Height:        f.Height,
		QR:            template.URL(data.QRCode),
		QRSize:        layout.QRSize,
		Model:         model,
		Serial:        serial,
		Inventory:     inventory,
		TitleFont:     layout.TitleFont,
		SerialFont:    layout.SerialFont,
		InventoryFont: layout.InventoryFont,
		PageBreak:     pageBreak,
	}
}

func render(page pageView) (string, error) {
	var sb strings.Builder
	if err := labelTmpl.Execute(&sb, page); err != nil {
		return "", fmt.Errorf("rendering label template: %w", err)
	}
	return sb.String(), nil
}
