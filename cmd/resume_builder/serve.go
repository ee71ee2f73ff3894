package main

import (
	"log"
	"time"

	"github.com/jonathan/resume-builder/internal/estimate"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the HTTP REST API for rendering, estimating and exporting résumés.

Environment variables:
  PORT                    HTTP port (default: 8080)
  DATABASE_URL            PostgreSQL connection URL; enables saved résumés
  CHROME_PATH             Chrome/Chromium binary for PDF and PNG exports
  CALIBRATION_PATH        Estimator calibration YAML
  CORS_ORIGIN             Allowed CORS origin (default: *)
  EXPORT_TIMEOUT_SECONDS  Per-export timeout (default: 60)
  RATE_LIMIT_ENABLED      Set to false to disable rate limiting`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default: PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	var calib *estimate.Calibration
	if cfg.Calibration != "" {
		calib, err = estimate.LoadCalibration(cfg.Calibration)
		if err != nil {
			return err
		}
		log.Printf("[SERVER] Using calibration %s (version %d)", cfg.Calibration, calib.Version)
	}
	if cfg.DatabaseURL == "" {
		log.Printf("[SERVER] DATABASE_URL not set; saved résumé routes are disabled")
	}

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		DatabaseURL:   cfg.DatabaseURL,
		ChromePath:    cfg.ChromePath,
		ExportTimeout: time.Duration(cfg.ExportTimeout) * time.Second,
		CORSOrigin:    cfg.CORSOrigin,
		Calibration:   calib,
		Verbose:       cfg.Verbose,
	})
	if err != nil {
		return err
	}
	return srv.Start()
}
