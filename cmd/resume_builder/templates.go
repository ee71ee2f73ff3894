package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the template registry",
	Long:  "Lists every registered template with its id, name and category. Use --category to filter and --json for machine-readable output.",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

var (
	templatesCategory string
	templatesJSON     bool
)

func init() {
	templatesCmd.Flags().StringVarP(&templatesCategory, "category", "c", "", "Only list templates of this category")
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print the registry entries as JSON")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	entries := catalog.List()
	if templatesCategory != "" {
		entries = catalog.ByCategory(templatesCategory)
		if len(entries) == 0 {
			return fmt.Errorf("unknown category %q (known: %v)", templatesCategory, catalog.Categories())
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case templatesJSON:
		return printJSON(out, entries)
	case flagVerbose:
		observability.NewPrinter(out).PrintTemplates(entries)
		return nil
	default:
		return writeTemplateTable(out, entries)
	}
}

func writeTemplateTable(w io.Writer, entries []catalog.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tLAYOUT")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Category, e.Theme.Layout)
	}
	return tw.Flush()
}
