// Package canvaspdf draws a rendered résumé straight to PDF without a browser.
//
// Output is a plain single-flow print of the layout tree. Use the browser exporter when the
// themed HTML look is needed; use this one where Chrome is unavailable.
package canvaspdf

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
)

// A4 in millimetres.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	Margin     = 18.0
)

const ruleWidth = 0.3

// Options carries PDF document metadata.
type Options struct {
	Title   string
	Author  string
	Subject string
	Creator string
}

// Render draws doc onto as many A4 pages as its content needs.
func Render(doc *rendering.Document, opts Options) ([]byte, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("canvaspdf: nothing to render")
	}

	accent := parseHexColor(doc.Theme.Accent)
	pages, err := layoutPages(doc, accent)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, PageWidth, PageHeight, nil)
	writer.SetInfo(opts.Title, opts.Subject, doc.TemplateID, opts.Author, opts.Creator)

	for i, page := range pages {
		if i > 0 {
			writer.NewPage(PageWidth, PageHeight)
		}
		c := canvas.New(PageWidth, PageHeight)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV)
		drawPage(ctx, page, accent)
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("canvaspdf: failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// PageCount reports how many pages Render would produce for doc.
func PageCount(doc *rendering.Document) (int, error) {
	if doc == nil || doc.Root == nil {
		return 0, fmt.Errorf("canvaspdf: nothing to render")
	}
	pages, err := layoutPages(doc, parseHexColor(doc.Theme.Accent))
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

func layoutPages(doc *rendering.Document, accent color.Color) ([][]line, error) {
	f, err := newFaces(accent)
	if err != nil {
		return nil, fmt.Errorf("canvaspdf: %w", err)
	}
	l := &layouter{width: PageWidth - 2*Margin, faces: f}
	l.document(doc.Root)
	return paginate(l.lines, PageHeight-2*Margin), nil
}

func drawPage(ctx *canvas.Context, lines []line, accent color.Color) {
	y := Margin
	for _, ln := range lines {
		y += ln.gapBefore
		if ln.text != "" {
			baseline := y + ln.face.Metrics().Ascent
			ctx.DrawText(Margin, baseline, canvas.NewTextLine(ln.face, ln.text, canvas.Left))
		}
		y += ln.height
		if ln.rule {
			ctx.SetFillColor(color.RGBA{})
			ctx.SetStrokeColor(accent)
			ctx.SetStrokeWidth(ruleWidth)
			p := &canvas.Path{}
			p.MoveTo(0, 0)
			p.LineTo(PageWidth-2*Margin, 0)
			ctx.DrawPath(Margin, y+0.8, p)
		}
	}
}
