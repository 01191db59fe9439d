package labels

import (
	"math"
	"unicode/utf8"
)

const labelPadding = 2 // mm on each side

// Layout is the computed geometry for one label: QR edge length in mm and
// per-line font sizes in pt, all rounded to one decimal.
type Layout struct {
	QRSize        float64
	TitleFont     float64
	SerialFont    float64
	InventoryFont float64
}

// autoFit sizes the QR code and the three text lines so they fill the label
// without overflowing. Long text (over 20 characters) trades QR area for
// width; fonts clamp to a readable minimum rather than shrinking further.
func autoFit(f Format, model, serial, inventory string) Layout {
	availW := f.Width - 2*labelPadding
	availH := f.Height - 2*labelPadding

	maxLen := longest(
		model,
		"Сер: "+serial,
		"Инв: "+inventory,
	)

	qr := math.Min(availW*0.7, availH*0.6)
	if maxLen > 20 {
		qr = math.Min(qr, availW*0.6)
	}
	// The 15mm scannability floor wins over the height cap, so small stock
	// like 38x21 always gets a 15mm code.
	qr = math.Max(15, math.Min(qr, availH*0.6))

	base := math.Min(availW/(float64(maxLen)*0.4), (availH-qr-4)/6)
	base = math.Max(6, math.Min(base, 16))

	return Layout{
		QRSize:        round1(qr),
		TitleFont:     round1(math.Min(base*1.2, 14)),
		SerialFont:    round1(math.Max(base*0.9, 6)),
		InventoryFont: round1(math.Max(base, 7)),
	}
}

func longest(texts ...string) int {
	max := 0
	for _, t := range texts {
		if n := utf8.RuneCountInString(t); n > max {
			max = n
		}
	}
	return max
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
