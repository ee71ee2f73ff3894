package canvaspdf

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	familyOnce sync.Once
	family     *canvas.FontFamily
	familyErr  error
)

// fontFamily loads the Go fonts once. They are metric compatible across platforms, so layout
// does not depend on what is installed on the host.
func fontFamily() (*canvas.FontFamily, error) {
	familyOnce.Do(func() {
		f := canvas.NewFontFamily("resume")
		if err := f.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
			familyErr = fmt.Errorf("failed to load regular font: %w", err)
			return
		}
		if err := f.LoadFont(gobold.TTF, 0, canvas.FontBold); err != nil {
			familyErr = fmt.Errorf("failed to load bold font: %w", err)
			return
		}
		family = f
	})
	return family, familyErr
}

// faces are the font faces one document is drawn with.
type faces struct {
	name    *canvas.FontFace
	contact *canvas.FontFace
	heading *canvas.FontFace
	strong  *canvas.FontFace
	body    *canvas.FontFace
	muted   *canvas.FontFace
}

func newFaces(accent color.Color) (*faces, error) {
	f, err := fontFamily()
	if err != nil {
		return nil, err
	}
	text := color.RGBA{R: 31, G: 41, B: 55, A: 255}
	muted := color.RGBA{R: 107, G: 114, B: 128, A: 255}
	return &faces{
		name:    f.Face(20, accent, canvas.FontBold, canvas.FontNormal),
		contact: f.Face(9, muted, canvas.FontRegular, canvas.FontNormal),
		heading: f.Face(11.5, accent, canvas.FontBold, canvas.FontNormal),
		strong:  f.Face(10, text, canvas.FontBold, canvas.FontNormal),
		body:    f.Face(10, text, canvas.FontRegular, canvas.FontNormal),
		muted:   f.Face(9, muted, canvas.FontRegular, canvas.FontNormal),
	}, nil
}

// parseHexColor parses "#rrggbb" theme accents, falling back to black.
func parseHexColor(s string) color.Color {
	var r, g, b uint8
	if len(s) == 7 && s[0] == '#' {
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{R: r, G: g, B: b, A: 255}
		}
	}
	return color.Black
}
