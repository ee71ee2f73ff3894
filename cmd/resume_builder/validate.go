package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check résumé data against the bundled JSON schemas",
	Long: `Validates the data file and, if given, the visibility file against the bundled JSON
schemas. Diagnostics are advisory: rendering accepts any input. Use --strict to fail on them.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var (
	validateStrict bool
	validateSchema string
)

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit with an error when diagnostics are found")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Validate the data file against this JSON Schema instead of the bundled one")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cfg.Data == "" {
		return fmt.Errorf("--data is required (via flag or config)")
	}

	var fieldErrs []schemas.FieldError
	if validateSchema != "" {
		fieldErrs, err = validateAgainstFile(validateSchema, cfg.Data)
	} else {
		fieldErrs, err = validateFile(cfg.Data, schemas.ValidateResumeData, "")
	}
	if err != nil {
		return err
	}
	if cfg.Visible != "" {
		visErrs, err := validateFile(cfg.Visible, schemas.ValidateVisibility, "visible.")
		if err != nil {
			return err
		}
		fieldErrs = append(fieldErrs, visErrs...)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(fieldErrs)
	if validateStrict && len(fieldErrs) > 0 {
		return fmt.Errorf("%d schema diagnostic(s)", len(fieldErrs))
	}
	return nil
}

// validateFile returns the schema diagnostics for one file. Only I/O and schema loading fail.
func validateFile(path string, validate func([]byte) error, prefix string) ([]schemas.FieldError, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	err = validate(content)
	if err == nil {
		return nil, nil
	}
	fieldErrs := schemas.FieldErrors(err)
	if fieldErrs == nil {
		return nil, err
	}
	out := make([]schemas.FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = schemas.FieldError{Field: prefix + fe.Field, Message: fe.Message}
	}
	return out, nil
}

// validateAgainstFile checks dataPath against a schema on disk. Relative schema paths are also
// looked up from the parent directories, so the repository's schemas/ folder works from anywhere
// inside it.
func validateAgainstFile(schemaPath, dataPath string) ([]schemas.FieldError, error) {
	if resolved := schemas.ResolveSchemaPath(schemaPath); resolved != "" {
		schemaPath = resolved
	}
	err := schemas.ValidateJSON(schemaPath, dataPath)
	if err == nil {
		return nil, nil
	}
	if fieldErrs := schemas.FieldErrors(err); fieldErrs != nil {
		return fieldErrs, nil
	}
	return nil, err
}
