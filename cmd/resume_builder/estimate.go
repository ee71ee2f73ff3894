package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/resume-builder/internal/estimate"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate whether the résumé fits on one page",
	Long: `Estimates the rendered height of the résumé from its content and the template's density
multiplier, and compares it with the one-page capacity. With --previous the command instead
reports whether the edit from the previous data file would be accepted by the editor.`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

var (
	estimateJSON     bool
	estimatePrevious string
	estimateStrict   bool
)

func init() {
	estimateCmd.Flags().BoolVar(&estimateJSON, "json", false, "Print the estimate as JSON")
	estimateCmd.Flags().StringVar(&estimatePrevious, "previous", "", "Previous résumé data JSON; gate the edit from it to --data")
	estimateCmd.Flags().BoolVar(&estimateStrict, "strict", false, "Exit with an error when the résumé does not fit")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, _ []string) error {
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

	out := cmd.OutOrStdout()
	res := est.Estimate(in.Data, in.Visible, in.Template)

	if estimatePrevious != "" {
		prev, err := readResume(estimatePrevious)
		if err != nil {
			return err
		}
		kept, accepted := est.Gate(prev, in.Data, in.Visible, in.Template)
		res = est.Estimate(kept, in.Visible, in.Template)
		if estimateJSON {
			return printJSON(out, gateResult{Accepted: accepted, Estimate: res})
		}
		if accepted {
			_, _ = fmt.Fprintln(out, "Edit accepted")
		} else {
			_, _ = fmt.Fprintln(out, "Edit rejected: it grows a résumé that does not fit on one page")
		}
	}

	switch {
	case estimateJSON:
		if err := printJSON(out, res); err != nil {
			return err
		}
	case cfg.Verbose:
		observability.NewPrinter(out).PrintEstimate(&res)
	default:
		writeEstimateSummary(out, res)
	}

	if estimateStrict && !res.Fits {
		return fmt.Errorf("résumé overflows the page by %.0fpx", res.Overflow)
	}
	return nil
}

// gateResult is the --json output of a gated estimate. Estimate describes the data the editor keeps.
type gateResult struct {
	Accepted bool            `json:"accepted"`
	Estimate estimate.Result `json:"estimate"`
}

func writeEstimateSummary(w io.Writer, res estimate.Result) {
	verdict := "fits"
	if !res.Fits {
		verdict = fmt.Sprintf("overflows by %.0fpx", res.Overflow)
	}
	_, _ = fmt.Fprintf(w, "%s: %.0f / %.0f px (%s)\n", res.TemplateID, res.Height, res.Capacity, verdict)
	for _, s := range res.Sections {
		_, _ = fmt.Fprintf(w, "  %-15s %6.0f px\n", s.Key, s.Height)
	}
}
