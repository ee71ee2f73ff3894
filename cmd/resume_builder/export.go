package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/export/canvaspdf"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Export formats
const (
	formatPDF    = "pdf"
	formatPNG    = "png"
	formatCanvas = "canvas"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the résumé to PDF and PNG",
	Long: `Renders the résumé and exports it in every requested format concurrently.

Formats:
  pdf     A4 PDF printed by headless Chrome
  png     Full-page screenshot from headless Chrome
  canvas  A4 PDF drawn natively, without a browser

Files are written to --output-dir as resume-<template>.pdf, resume-<template>.png and
resume-<template>-canvas.pdf.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormats   []string
	exportOutputDir string
	exportScale     float64
	exportMargin    int
)

func init() {
	exportCmd.Flags().StringSliceVar(&exportFormats, "format", []string{formatPDF}, "Formats to export: pdf, png, canvas")
	exportCmd.Flags().StringVar(&exportOutputDir, "output-dir", "", "Output directory (default: config output_dir or current directory)")
	exportCmd.Flags().Float64Var(&exportScale, "scale", 1.0, "PDF print scale (0.1 to 2)")
	exportCmd.Flags().IntVar(&exportMargin, "margin", -1, "PDF margin on every side in points (default: template margins)")
	rootCmd.AddCommand(exportCmd)
}

// pageExporter is the browser side of an export. *export.Exporter implements it.
type pageExporter interface {
	PDF(ctx context.Context, html string, opts export.PageOptions) ([]byte, error)
	PNG(ctx context.Context, html string) ([]byte, error)
}

// exportJob describes one export run.
type exportJob struct {
	Doc       *rendering.Document
	Formats   []string
	OutputDir string
	Page      export.PageOptions
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	in, err := loadInput(context.Background(), cfg)
	if err != nil {
		return err
	}

	page := export.DefaultPageOptions()
	page.Scale = exportScale
	if exportMargin >= 0 {
		page.MarginTop, page.MarginRight, page.MarginBottom, page.MarginLeft = exportMargin, exportMargin, exportMargin, exportMargin
	}
	page, err = page.Normalize()
	if err != nil {
		return err
	}

	outDir := cfg.OutputDir
	if exportOutputDir != "" {
		outDir = exportOutputDir
	}

	doc := rendering.Render(in.Data, in.Template, in.Visible, rendering.Options{})
	job := exportJob{Doc: doc, Formats: exportFormats, OutputDir: outDir, Page: page}

	timeout := time.Duration(cfg.ExportTimeout) * time.Second
	exp := export.NewExporter(cfg.ChromePath, timeout, cfg.Verbose)

	ctx, cancel := context.WithTimeout(context.Background(), 2*timeout)
	defer cancel()

	written, err := runExportJob(ctx, exp, job)
	if err != nil {
		return err
	}
	for _, path := range written {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}

// runExportJob exports every format of job concurrently and returns the written paths, sorted.
// The first failure cancels the remaining exports.
func runExportJob(ctx context.Context, exp pageExporter, job exportJob) ([]string, error) {
	formats, err := normalizeFormats(job.Formats)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	html, err := job.Doc.HTML()
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	var written []string
	var mu sync.Mutex // Protects written

	for _, format := range formats {
		g.Go(func() error {
			content, name, err := exportFormat(gCtx, exp, job, html, format)
			if err != nil {
				return fmt.Errorf("%s export failed: %w", format, err)
			}
			path := filepath.Join(job.OutputDir, name)
			if err := os.WriteFile(path, content, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			mu.Lock()
			written = append(written, path)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(written)
	return written, nil
}

// exportFormat produces one file and its name
func exportFormat(ctx context.Context, exp pageExporter, job exportJob, html, format string) ([]byte, string, error) {
	base := "resume-" + job.Doc.TemplateID
	switch format {
	case formatPDF:
		if exp == nil {
			return nil, "", fmt.Errorf("no browser exporter configured")
		}
		pdf, err := exp.PDF(ctx, html, job.Page)
		return pdf, base + ".pdf", err
	case formatPNG:
		if exp == nil {
			return nil, "", fmt.Errorf("no browser exporter configured")
		}
		png, err := exp.PNG(ctx, html)
		return png, base + ".png", err
	case formatCanvas:
		name := ""
		if n := job.Doc.Find("fullName"); n != nil {
			name = n.Text
		}
		pdf, err := canvaspdf.Render(job.Doc, canvaspdf.Options{Title: name, Author: name, Subject: job.Doc.Name, Creator: "resume-builder"})
		return pdf, base + "-canvas.pdf", err
	default:
		return nil, "", fmt.Errorf("unknown format %q", format)
	}
}

// normalizeFormats rejects unknown formats and drops duplicates, keeping order.
func normalizeFormats(formats []string) ([]string, error) {
	if len(formats) == 0 {
		return nil, fmt.Errorf("at least one --format is required")
	}
	seen := make(map[string]bool, len(formats))
	var out []string
	for _, f := range formats {
		switch f {
		case formatPDF, formatPNG, formatCanvas:
		default:
			return nil, fmt.Errorf("unknown format %q: must be pdf, png or canvas", f)
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}
