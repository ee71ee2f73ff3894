package export

import "fmt"

// A4 page geometry. Paper sizes are in inches as the DevTools protocol expects them; pixel
// sizes are CSS pixels at 96 dpi, which is what the HTML renderer lays out against.
const (
	A4WidthIn     = 8.27
	A4HeightIn    = 11.69
	A4WidthPx     = 794
	A4HeightPx    = 1123
	pointsPerInch = 72.0
)

// PageOptions controls PDF output.
type PageOptions struct {
	PaperWidth      float64 `json:"paperWidth"`  // inches
	PaperHeight     float64 `json:"paperHeight"` // inches
	MarginTop       int     `json:"marginTop"`   // points (72 = 1 inch)
	MarginBottom    int     `json:"marginBottom"`
	MarginLeft      int     `json:"marginLeft"`
	MarginRight     int     `json:"marginRight"`
	Landscape       bool    `json:"landscape"`
	PrintBackground bool    `json:"printBackground"`
	Scale           float64 `json:"scale"`
}

// DefaultPageOptions returns A4 portrait with no margins. The HTML document carries its own
// padding, so adding margins here would shrink the content area twice.
func DefaultPageOptions() PageOptions {
	return PageOptions{
		PaperWidth:      A4WidthIn,
		PaperHeight:     A4HeightIn,
		PrintBackground: true,
		Scale:           1,
	}
}

// Normalize fills zero values from the defaults and rejects impossible geometry.
func (o PageOptions) Normalize() (PageOptions, error) {
	def := DefaultPageOptions()
	if o.PaperWidth == 0 {
		o.PaperWidth = def.PaperWidth
	}
	if o.PaperHeight == 0 {
		o.PaperHeight = def.PaperHeight
	}
	if o.Scale == 0 {
		o.Scale = def.Scale
	}

	if o.PaperWidth < 0 || o.PaperHeight < 0 {
		return o, fmt.Errorf("paper size must be positive")
	}
	if o.MarginTop < 0 || o.MarginBottom < 0 || o.MarginLeft < 0 || o.MarginRight < 0 {
		return o, fmt.Errorf("margins must not be negative")
	}
	if inches(o.MarginLeft+o.MarginRight) >= o.PaperWidth || inches(o.MarginTop+o.MarginBottom) >= o.PaperHeight {
		return o, fmt.Errorf("margins leave no printable area")
	}
	// Chrome accepts 0.1 to 2.
	if o.Scale < 0.1 || o.Scale > 2 {
		return o, fmt.Errorf("scale must be between 0.1 and 2, got %.2f", o.Scale)
	}
	return o, nil
}

func inches(points int) float64 {
	return float64(points) / pointsPerInch
}
