package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DATABASE_URL", "CHROME_PATH", "CALIBRATION_PATH", "CORS_ORIGIN", "EXPORT_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}
}

func TestNewEnv_DefaultValues(t *testing.T) {
	clearEnv(t)

	env, err := NewEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, env.Port)
	assert.Equal(t, DefaultExportTimeout, env.ExportTimeout)
	assert.Equal(t, DefaultCORSOrigin, env.CORSOrigin)
	assert.Empty(t, env.DatabaseURL)
}

func TestNewEnv_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/resumes")
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")
	t.Setenv("CORS_ORIGIN", "http://localhost:5173")
	t.Setenv("EXPORT_TIMEOUT_SECONDS", "15")

	env, err := NewEnv()
	require.NoError(t, err)
	assert.Equal(t, 9090, env.Port)
	assert.Equal(t, "postgres://localhost/resumes", env.DatabaseURL)
	assert.Equal(t, "/usr/bin/chromium", env.ChromePath)
	assert.Equal(t, "http://localhost:5173", env.CORSOrigin)
	assert.Equal(t, 15, env.ExportTimeout)

	defaults := env.Defaults()
	assert.Equal(t, 9090, defaults.Port)
	assert.Equal(t, "postgres://localhost/resumes", defaults.DatabaseURL)
}

func TestNewEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"port not a number", "PORT", "eighty", "invalid PORT"},
		{"port out of range", "PORT", "0", "PORT must be between"},
		{"timeout not a number", "EXPORT_TIMEOUT_SECONDS", "soon", "invalid EXPORT_TIMEOUT_SECONDS"},
		{"timeout zero", "EXPORT_TIMEOUT_SECONDS", "0", "at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			env, err := NewEnv()
			require.Error(t, err)
			assert.Nil(t, env)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
