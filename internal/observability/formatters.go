// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/estimate"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(shorten(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten cuts s to n runes, ending in "..." when cut.
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes. fmt's width counts bytes, which misaligns
// accented text.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// PrintTemplates outputs the template gallery grouped by category.
func (p *Printer) PrintTemplates(entries []catalog.Entry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d templates\n", len(entries)))

	category := ""
	for _, e := range entries {
		if e.Category != category {
			category = e.Category
			sb.WriteString(fmt.Sprintf("\n%s\n", category))
		}
		sb.WriteString(fmt.Sprintf("  %-24s %s\n", e.ID, e.Theme.Layout))
	}

	p.printBox("TEMPLATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs which template rendered and the sections it shows.
func (p *Printer) PrintDocument(doc *rendering.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template: %s (%s)\n", doc.TemplateID, doc.Name))
	if doc.Fallback {
		sb.WriteString(fmt.Sprintf("⚠ requested %q is unknown, used the default\n", doc.RequestedID))
	}
	sb.WriteString(fmt.Sprintf("Layout:   %s\n", doc.Theme.Layout))

	keys := doc.SectionKeys()
	if len(keys) == 0 {
		sb.WriteString("Sections: none")
	} else {
		sb.WriteString(fmt.Sprintf("Sections: %s", strings.Join(keys, ", ")))
	}

	p.printBox("RENDERED DOCUMENT", sb.String())
}

// PrintEstimate outputs the page-fit estimate with a per-section breakdown.
func (p *Printer) PrintEstimate(res *estimate.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	status := "✓ fits on one page"
	if !res.Fits {
		status = fmt.Sprintf("✗ over by %.0fpx", res.Overflow)
	}
	sb.WriteString(fmt.Sprintf("%s\n", status))
	sb.WriteString(fmt.Sprintf("Height:     %.0f / %.0f px\n", res.Height, res.Capacity))
	sb.WriteString(fmt.Sprintf("Multiplier: %.2f (%s)\n", res.Multiplier, res.TemplateID))
	sb.WriteString(fmt.Sprintf("Header:     %.0f px\n", res.Header))

	if len(res.Sections) > 0 {
		sb.WriteString("\n")
		for _, s := range res.Sections {
			sb.WriteString(fmt.Sprintf("  %-15s %4.0f px  (%d items, %d lines)\n", s.Key, s.Height, s.Items, s.Lines))
		}
	}

	p.printBox("PAGE FIT ESTIMATE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMeasurement outputs a measured page height.
func (p *Printer) PrintMeasurement(m export.Measurement) {
	status := "✓ fits on one page"
	if !m.Fits {
		status = fmt.Sprintf("✗ spans %d pages", m.Pages)
	}
	p.printBox("MEASURED HEIGHT", fmt.Sprintf("%s\nHeight: %.0f / %.0f px", status, m.Height, m.PageHeight))
}

// PrintReport outputs an ATS report.
func (p *Printer) PrintReport(r *ats.Report) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template: %s\n", r.TemplateID))
	sb.WriteString(fmt.Sprintf("Words:    %d\n", r.WordCount))
	sb.WriteString(fmt.Sprintf("Fits:     %t (%.0f / %.0f px)\n", r.Fits, r.Height, r.Capacity))

	if len(r.Findings) == 0 {
		sb.WriteString("\n✅ no findings")
	} else {
		sb.WriteString("\n")
		count := min(len(r.Findings), maxItemsToShow)
		for i := 0; i < count; i++ {
			f := r.Findings[i]
			marker := "ℹ"
			if f.Severity == ats.SeverityWarning {
				marker = "⚠"
			}
			sb.WriteString(fmt.Sprintf("%s %s\n  %s\n", marker, f.Code, f.Message))
		}
		if len(r.Findings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(r.Findings)-maxItemsToShow))
		}
	}

	p.printBox("ATS REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs schema diagnostics.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(errs []schemas.FieldError) {
	if len(errs) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ DOCUMENT MATCHES SCHEMA", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", e.Field))
		sb.WriteString(fmt.Sprintf("  %s\n", e.Message))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SCHEMA DIAGNOSTICS", strings.TrimSuffix(sb.String(), "\n"))
}
