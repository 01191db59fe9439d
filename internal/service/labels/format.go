package labels

import (
	"fmt"
	"sort"
)

// Format describes one supported label stock size in millimetres. Formats
// with a non-zero PerPage also map onto an A4 sheet grid for batch printing
// on an office printer; the two T50M sizes are tape-printer only.
type Format struct {
	Key     string
	Width   float64
	Height  float64
	Name    string
	PerPage int
	Columns int
	Rows    int
}

// Supports A4 grid printing.
func (f Format) A4() bool { return f.PerPage > 0 }

var formats = map[string]Format{
	"38x21":  {Key: "38x21", Width: 38, Height: 21, Name: "38x21 мм", PerPage: 24, Columns: 4, Rows: 6},
	"40x30":  {Key: "40x30", Width: 40, Height: 30, Name: "40x30 мм (SUPVAN T50M Pro)"},
	"50x25":  {Key: "50x25", Width: 50, Height: 25, Name: "50x25 мм", PerPage: 21, Columns: 3, Rows: 7},
	"50x40":  {Key: "50x40", Width: 50, Height: 40, Name: "50x40 мм (SUPVAN T50M Pro)"},
	"70x36":  {Key: "70x36", Width: 70, Height: 36, Name: "70x36 мм", PerPage: 12, Columns: 3, Rows: 4},
	"100x50": {Key: "100x50", Width: 100, Height: 50, Name: "100x50 мм", PerPage: 8, Columns: 2, Rows: 4},
}

// FormatByKey resolves a format key like "38x21".
func FormatByKey(key string) (Format, error) {
	f, ok := formats[key]
	if !ok {
		return Format{}, fmt.Errorf("unknown label format %q", key)
	}
	return f, nil
}

// AllFormats returns the supported formats in a stable order for UI listings.
func AllFormats() []Format {
	out := make([]Format, 0, len(formats))
	for _, f := range formats {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Width != out[j].Width {
			return out[i].Width < out[j].Width
		}
		return out[i].Height < out[j].Height
	})
	return out
}
