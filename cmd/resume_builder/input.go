package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/estimate"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

// input is what every command renders from.
type input struct {
	Data     *types.ResumeData
	Visible  types.VisibilityMap
	Template string
}

// loadSettings merges the config file, changed flags and the environment, in that order of
// precedence after the flags.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data = flagData
	}
	if flags.Changed("visible") {
		cfg.Visible = flagVisible
	}
	if flags.Changed("template") {
		cfg.Template = flagTemplate
	}
	if flags.Changed("calibration") {
		cfg.Calibration = flagCalibration
	}
	if flags.Changed("verbose") {
		cfg.Verbose = flagVerbose
	}

	env, err := config.NewEnv()
	if err != nil {
		return cfg, err
	}
	defaults := env.Defaults()
	defaults.Template = catalog.DefaultTemplateID
	defaults.OutputDir = "."
	return cfg.MergeWithDefaults(defaults), nil
}

// loadInput reads the résumé from --resume-id or the data file, plus the visibility map.
func loadInput(ctx context.Context, cfg config.Config) (*input, error) {
	if flagResumeID != "" {
		return loadSavedInput(ctx, cfg)
	}
	if cfg.Data == "" {
		return nil, fmt.Errorf("--data is required (via flag or config)")
	}

	data, err := readResume(cfg.Data)
	if err != nil {
		return nil, err
	}
	visible, err := readVisibility(cfg.Visible)
	if err != nil {
		return nil, err
	}
	return &input{Data: data, Visible: visible, Template: cfg.Template}, nil
}

func loadSavedInput(ctx context.Context, cfg config.Config) (*input, error) {
	id, err := uuid.Parse(flagResumeID)
	if err != nil {
		return nil, fmt.Errorf("invalid resume-id: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL required when using --resume-id")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	record, err := database.GetResume(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("resume not found: %s", id)
	}

	in := &input{Data: record.Data, Visible: record.Visible, Template: record.TemplateID}
	if flagTemplate != "" {
		in.Template = flagTemplate
	}
	return in, nil
}

// readResume decodes a data file leniently. Only unreadable files and invalid JSON fail; valid
// JSON that is not an object renders as an empty résumé, as it does over HTTP.
func readResume(path string) (*types.ResumeData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	if !json.Valid(content) {
		return nil, fmt.Errorf("failed to unmarshal data JSON: %s is not valid JSON", path)
	}
	data := types.NewResumeData()
	if err := json.Unmarshal(content, data); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %s is not a JSON object, using an empty résumé: %v\n", path, err)
		return types.NewResumeData(), nil
	}
	return data, nil
}

// readVisibility decodes a visibility file. An empty path means everything is visible.
func readVisibility(path string) (types.VisibilityMap, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read visibility file: %w", err)
	}
	var visible types.VisibilityMap
	if err := json.Unmarshal(content, &visible); err != nil {
		return nil, fmt.Errorf("failed to unmarshal visibility JSON: %w", err)
	}
	return visible, nil
}

// newEstimator uses the configured calibration file, or the embedded table.
func newEstimator(cfg config.Config) (*estimate.Estimator, error) {
	if cfg.Calibration == "" {
		return estimate.New(nil), nil
	}
	calib, err := estimate.LoadCalibration(cfg.Calibration)
	if err != nil {
		return nil, err
	}
	return estimate.New(calib), nil
}

// writeOutput writes content to path, creating its directory, or to stdout when path is empty.
func writeOutput(path string, stdout io.Writer, content []byte) error {
	if path == "" {
		_, err := stdout.Write(content)
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
