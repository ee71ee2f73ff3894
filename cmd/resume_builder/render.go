package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render résumé data through a template",
	Long: `Renders résumé data with the selected template. Unknown template ids fall back to the
default template with a warning. Output is a standalone HTML page, the layout tree as JSON,
or plain text.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

var (
	renderFormat  string
	renderOutput  string
	renderPreview bool
	renderTab     string
)

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Output format: html, json or text")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default: stdout)")
	renderCmd.Flags().BoolVar(&renderPreview, "preview", false, "Apply the template's gallery preview budgets")
	renderCmd.Flags().StringVar(&renderTab, "tab", "", "Active tab for tabbed templates")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	in, err := loadInput(context.Background(), cfg)
	if err != nil {
		return err
	}

	preview := renderPreview || cfg.Preview
	doc := rendering.Render(in.Data, in.Template, in.Visible, rendering.Options{Preview: preview, ActiveTab: renderTab})
	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintDocument(doc)
	}

	content, err := documentBytes(doc, renderFormat)
	if err != nil {
		return err
	}
	if err := writeOutput(renderOutput, cmd.OutOrStdout(), content); err != nil {
		return err
	}
	if renderOutput != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %s to %s\n", doc.TemplateID, renderOutput)
	}
	return nil
}

// documentBytes serializes doc in the requested format
func documentBytes(doc *rendering.Document, format string) ([]byte, error) {
	switch format {
	case "html", "":
		html, err := doc.HTML()
		if err != nil {
			return nil, err
		}
		return []byte(html), nil
	case "json":
		var buf bytes.Buffer
		if err := printJSON(&buf, doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "text":
		return []byte(doc.Text() + "\n"), nil
	default:
		return nil, fmt.Errorf("unknown format %q: must be html, json or text", format)
	}
}
