// Package export turns rendered résumé HTML into PDF and PNG files and measures the real
// rendered height with headless Chrome.
package export

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a single export when the caller does not set one.
const DefaultTimeout = 60 * time.Second

// measureScript returns the height of the résumé root, falling back to the whole document.
const measureScript = `(() => {
	const root = document.querySelector('.resume') || document.body;
	return Math.max(root.scrollHeight, root.getBoundingClientRect().height);
})()`

// Measurement is the authoritative page-fit answer, taken from the rendered DOM.
type Measurement struct {
	Height     float64 `json:"height"`
	PageHeight float64 `json:"pageHeight"`
	Pages      int     `json:"pages"`
	Fits       bool    `json:"fits"`
}

// Exporter drives headless Chrome. Each call starts its own browser, so an Exporter is safe
// for concurrent use.
type Exporter struct {
	chromePath string
	timeout    time.Duration
	verbose    bool
}

// NewExporter creates an Exporter. An empty chromePath lets chromedp find the browser; a zero
// timeout uses DefaultTimeout.
func NewExporter(chromePath string, timeout time.Duration, verbose bool) *Exporter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Exporter{chromePath: chromePath, timeout: timeout, verbose: verbose}
}

// PDF prints html to a PDF document.
func (e *Exporter) PDF(ctx context.Context, html string, opts PageOptions) ([]byte, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, &Error{Format: "pdf", Message: "invalid page options", Cause: err}
	}

	var buf []byte
	err = e.run(ctx, html, chromedp.ActionFunc(func(ctx context.Context) error {
		data, _, err := page.PrintToPDF().
			WithPaperWidth(opts.PaperWidth).
			WithPaperHeight(opts.PaperHeight).
			WithMarginTop(inches(opts.MarginTop)).
			WithMarginBottom(inches(opts.MarginBottom)).
			WithMarginLeft(inches(opts.MarginLeft)).
			WithMarginRight(inches(opts.MarginRight)).
			WithLandscape(opts.Landscape).
			WithScale(opts.Scale).
			WithPrintBackground(opts.PrintBackground).
			WithDisplayHeaderFooter(false).
			WithPreferCSSPageSize(false).
			Do(ctx)
		if err != nil {
			return err
		}
		buf = data
		return nil
	}))
	if err != nil {
		return nil, &Error{Format: "pdf", Message: "failed to print page", Cause: err}
	}

	if e.verbose {
		log.Printf("[EXPORT] PDF: %d bytes", len(buf))
	}
	return buf, nil
}

// PNG captures the full rendered page as an image, two device pixels per CSS pixel. The page
// is laid out with print media so tabbed templates show every panel, as in the PDF.
func (e *Exporter) PNG(ctx context.Context, html string) ([]byte, error) {
	var buf []byte
	err := e.run(ctx, html,
		emulation.SetEmulatedMedia().WithMedia("print"),
		emulation.SetDeviceMetricsOverride(A4WidthPx, A4HeightPx, 2, false),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, &Error{Format: "png", Message: "failed to capture page", Cause: err}
	}

	if e.verbose {
		log.Printf("[EXPORT] PNG: %d bytes", len(buf))
	}
	return buf, nil
}

// MeasureHeight lays html out at A4 width and reports its rendered height in CSS pixels.
func (e *Exporter) MeasureHeight(ctx context.Context, html string) (Measurement, error) {
	var height float64
	err := e.run(ctx, html,
		emulation.SetEmulatedMedia().WithMedia("print"),
		emulation.SetDeviceMetricsOverride(A4WidthPx, A4HeightPx, 1, false),
		chromedp.Evaluate(measureScript, &height),
	)
	if err != nil {
		return Measurement{}, &Error{Format: "measure", Message: "failed to measure page", Cause: err}
	}

	m := NewMeasurement(height)
	if e.verbose {
		log.Printf("[EXPORT] measured height %.0fpx (%d page(s))", m.Height, m.Pages)
	}
	return m, nil
}

// NewMeasurement derives page count and fit from a rendered height.
func NewMeasurement(height float64) Measurement {
	pages := int(math.Ceil(height / A4HeightPx))
	if pages < 1 {
		pages = 1
	}
	return Measurement{
		Height:     height,
		PageHeight: A4HeightPx,
		Pages:      pages,
		Fits:       height <= A4HeightPx,
	}
}

// run loads html into a fresh headless browser tab and then runs actions.
func (e *Exporter) run(ctx context.Context, html string, actions ...chromedp.Action) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, e.timeout)
	defer cancel()

	steps := []chromedp.Action{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
	}
	steps = append(steps, actions...)

	if err := chromedp.Run(browserCtx, steps...); err != nil {
		return fmt.Errorf("chrome: %w", err)
	}
	return nil
}
