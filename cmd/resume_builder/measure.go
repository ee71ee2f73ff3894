package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure the rendered height in headless Chrome",
	Long: `Renders the résumé, loads it in headless Chrome and measures the real height of the page.
The measurement is authoritative; the estimate for the same input is printed next to it so the
calibration can be checked.`,
	Args: cobra.NoArgs,
	RunE: runMeasure,
}

var measureJSON bool

func init() {
	measureCmd.Flags().BoolVar(&measureJSON, "json", false, "Print the measurement and estimate as JSON")
	rootCmd.AddCommand(measureCmd)
}

func runMeasure(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	in, err := loadInput(context.Background(), cfg)
	if err != nil {
		return err
	}
	est, err := newEstimator(cfg)
	if err != nil {
		return err
	}

	doc := rendering.Render(in.Data, in.Template, in.Visible, rendering.Options{})
	html, err := doc.HTML()
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.ExportTimeout) * time.Second
	exp := export.NewExporter(cfg.ChromePath, timeout, cfg.Verbose)
	m, err := exp.MeasureHeight(context.Background(), html)
	if err != nil {
		return err
	}
	res := est.Estimate(in.Data, in.Visible, in.Template)

	out := cmd.OutOrStdout()
	if measureJSON {
		return printJSON(out, map[string]any{"measurement": m, "estimate": res})
	}
	p := observability.NewPrinter(out)
	p.PrintMeasurement(m)
	p.PrintEstimate(&res)
	if m.Fits != res.Fits {
		_, _ = fmt.Fprintf(out, "Warning: estimate and measurement disagree for %s (estimated %.0fpx, measured %.0fpx)\n",
			doc.TemplateID, res.Height, m.Height)
	}
	return nil
}
