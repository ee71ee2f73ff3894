package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment defaults
const (
	DefaultPort          = 8080
	DefaultExportTimeout = 60
	DefaultCORSOrigin    = "*"
)

// Env holds the settings read from the process environment.
type Env struct {
	Port          int
	DatabaseURL   string
	ChromePath    string
	Calibration   string
	CORSOrigin    string
	ExportTimeout int
}

// NewEnv reads PORT, DATABASE_URL, CHROME_PATH, CALIBRATION_PATH, CORS_ORIGIN and
// EXPORT_TIMEOUT_SECONDS. Only the numeric values can be invalid.
func NewEnv() (*Env, error) {
	env := &Env{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ChromePath:  os.Getenv("CHROME_PATH"),
		Calibration: os.Getenv("CALIBRATION_PATH"),
		CORSOrigin:  os.Getenv("CORS_ORIGIN"),
	}

	var err error
	if env.Port, err = intFromEnv("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if env.ExportTimeout, err = intFromEnv("EXPORT_TIMEOUT_SECONDS", DefaultExportTimeout); err != nil {
		return nil, err
	}

	if err := env.normalize(); err != nil {
		return nil, err
	}
	return env, nil
}

// normalize validates the settings and fills defaults.
func (e *Env) normalize() error {
	if e.Port < 1 || e.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got: %d", e.Port)
	}
	if e.ExportTimeout < 1 {
		return fmt.Errorf("EXPORT_TIMEOUT_SECONDS must be at least 1, got: %d", e.ExportTimeout)
	}
	if e.CORSOrigin == "" {
		e.CORSOrigin = DefaultCORSOrigin
	}
	return nil
}

// Defaults returns the environment as a Config usable with MergeWithDefaults.
func (e *Env) Defaults() Config {
	return Config{
		Port:          e.Port,
		DatabaseURL:   e.DatabaseURL,
		ChromePath:    e.ChromePath,
		Calibration:   e.Calibration,
		CORSOrigin:    e.CORSOrigin,
		ExportTimeout: e.ExportTimeout,
	}
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}
