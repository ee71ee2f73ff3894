package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Report how the rendered résumé reads to applicant tracking systems",
	Long:  "Renders the résumé, extracts the text an ATS would see and reports missing contact details, layout risks and page overflow.",
	Args:  cobra.NoArgs,
	RunE:  runATS,
}

var (
	atsJSON     bool
	atsShowText bool
)

func init() {
	atsCmd.Flags().BoolVar(&atsJSON, "json", false, "Print the report as JSON")
	atsCmd.Flags().BoolVar(&atsShowText, "text", false, "Also print the extracted plain text")
	rootCmd.AddCommand(atsCmd)
}

func runATS(cmd *cobra.Command, _ []string) error {
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

	report, err := ats.NewAnalyzer(rendering.NewRenderer(nil), est).Analyze(in.Data, in.Visible, in.Template)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if atsJSON {
		return printJSON(out, report)
	}
	observability.NewPrinter(out).PrintReport(report)
	if atsShowText {
		_, _ = fmt.Fprintf(out, "\n%s\n", report.Text)
	}
	return nil
}
