package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadTracingDefaults(t *testing.T) {
	// Setenv registers the restore; the vars must be absent for the
	// defaults to apply.
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	os.Unsetenv("OTEL_ENABLED")
	os.Unsetenv("OTEL_EXPORTER_OTLP_ENDPOINT")

	cfg := Load()
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "localhost:4318", cfg.Tracing.Endpoint)
}

func TestLoadTracingFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")

	cfg := Load()
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "collector:4318", cfg.Tracing.Endpoint)
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("SOME_FLAG", "not-a-bool")
	assert.True(t, getEnvAsBool("SOME_FLAG", true))

	t.Setenv("SOME_FLAG", "false")
	assert.False(t, getEnvAsBool("SOME_FLAG", true))
}
