package estimate

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// CalibrationVersion is the calibration table format this package understands.
const CalibrationVersion = 1

// DefaultMultiplierKey is the multipliers entry used for template ids without their own entry.
const DefaultMultiplierKey = "default"

//go:embed calibration.yaml
var embeddedCalibration []byte

// HeaderCost prices the name and contact block.
type HeaderCost struct {
	Base       float64 `yaml:"base" json:"base"`
	PerContact float64 `yaml:"perContact" json:"perContact"`
}

// SectionRule prices one section. Which fields apply depends on the section: free text uses
// PerLine with CharsPerLine, chip lists use PerLine with ItemsPerLine, entries use PerItem.
type SectionRule struct {
	Base         float64 `yaml:"base" json:"base"`
	PerItem      float64 `yaml:"perItem,omitempty" json:"perItem,omitempty"`
	PerLine      float64 `yaml:"perLine,omitempty" json:"perLine,omitempty"`
	CharsPerLine int     `yaml:"charsPerLine,omitempty" json:"charsPerLine,omitempty"`
	ItemsPerLine int     `yaml:"itemsPerLine,omitempty" json:"itemsPerLine,omitempty"`
	PerDetail    float64 `yaml:"perDetail,omitempty" json:"perDetail,omitempty"`
}

// Calibration is the versioned constant table behind the estimator.
type Calibration struct {
	Version     int                    `yaml:"version" json:"version"`
	Capacity    float64                `yaml:"capacity" json:"capacity"`
	Spacing     float64                `yaml:"spacing" json:"spacing"`
	Header      HeaderCost             `yaml:"header" json:"header"`
	Sections    map[string]SectionRule `yaml:"sections" json:"sections"`
	Multipliers map[string]float64     `yaml:"multipliers" json:"multipliers"`
}

// ParseCalibration decodes and validates a YAML calibration table.
func ParseCalibration(data []byte) (*Calibration, error) {
	var c Calibration
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &CalibrationError{Message: "failed to parse calibration table", Cause: err}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCalibration reads a calibration table from disk.
func LoadCalibration(path string) (*Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CalibrationError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return ParseCalibration(data)
}

var (
	defaultCalibrationOnce sync.Once
	defaultCalibration     *Calibration
)

// DefaultCalibration returns the embedded calibration table. It panics if the embedded table
// is invalid, which the package tests rule out.
func DefaultCalibration() *Calibration {
	defaultCalibrationOnce.Do(func() {
		c, err := ParseCalibration(embeddedCalibration)
		if err != nil {
			panic(fmt.Sprintf("embedded calibration: %v", err))
		}
		defaultCalibration = c
	})
	return defaultCalibration
}

// Validate rejects tables this package cannot estimate with.
func (c *Calibration) Validate() error {
	if c.Version != CalibrationVersion {
		return &CalibrationError{Message: fmt.Sprintf("unsupported version %d (want %d)", c.Version, CalibrationVersion)}
	}
	if c.Capacity <= 0 {
		return &CalibrationError{Message: "capacity must be positive"}
	}
	if c.Spacing < 0 {
		return &CalibrationError{Message: "spacing must not be negative"}
	}
	if c.Header.Base < 0 || c.Header.PerContact < 0 {
		return &CalibrationError{Message: "header costs must not be negative"}
	}

	for _, key := range sortedKeys(c.Sections) {
		rule := c.Sections[key]
		if rule.Base < 0 || rule.PerItem < 0 || rule.PerLine < 0 || rule.PerDetail < 0 {
			return &CalibrationError{Message: fmt.Sprintf("section %q has a negative cost", key)}
		}
		if rule.CharsPerLine < 0 || rule.ItemsPerLine < 0 {
			return &CalibrationError{Message: fmt.Sprintf("section %q has a negative line width", key)}
		}
	}
	for _, key := range requiredSections {
		if _, ok := c.Sections[key]; !ok {
			return &CalibrationError{Message: fmt.Sprintf("missing section %q", key)}
		}
	}
	for key, width := range lineWidths {
		rule := c.Sections[key]
		if width(rule) <= 0 {
			return &CalibrationError{Message: fmt.Sprintf("section %q needs a positive line width", key)}
		}
	}

	if _, ok := c.Multipliers[DefaultMultiplierKey]; !ok {
		return &CalibrationError{Message: "missing default multiplier"}
	}
	for _, id := range sortedKeys(c.Multipliers) {
		if c.Multipliers[id] <= 0 {
			return &CalibrationError{Message: fmt.Sprintf("multiplier for %q must be positive", id)}
		}
	}
	return nil
}

// Multiplier returns the scalar for templateID, or the default one for unknown ids. Ids are
// matched the way the catalog resolves them, ignoring surrounding whitespace.
func (c *Calibration) Multiplier(templateID string) float64 {
	if m, ok := c.Multipliers[strings.TrimSpace(templateID)]; ok {
		return m
	}
	return c.Multipliers[DefaultMultiplierKey]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
