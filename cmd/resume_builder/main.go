// Package main provides the resume_builder CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Flags shared by every command
var (
	flagConfig      string
	flagData        string
	flagVisible     string
	flagTemplate    string
	flagCalibration string
	flagResumeID    string
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Render, estimate and export one-page résumés",
	Long: `resume_builder renders résumé data through a registry of templates, estimates whether the
result fits on one A4 page, and exports it to PDF or PNG.

Configuration can be loaded from a JSON file using --config. Command-line flags override config
file values, and environment variables (DATABASE_URL, CHROME_PATH, PORT) fill what is left.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config.json file (values can be overridden by other flags)")
	pf.StringVarP(&flagData, "data", "d", "", "Path to résumé data JSON")
	pf.StringVar(&flagVisible, "visible", "", "Path to visibility map JSON (default: everything visible)")
	pf.StringVarP(&flagTemplate, "template", "t", "", "Template id (see 'resume_builder templates')")
	pf.StringVar(&flagCalibration, "calibration", "", "Path to an estimator calibration YAML")
	pf.StringVar(&flagResumeID, "resume-id", "", "Load a saved résumé from DATABASE_URL instead of --data")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
