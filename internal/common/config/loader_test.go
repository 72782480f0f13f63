package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: registration\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "registration", cfg.App.Name)
	assert.Equal(t, DefaultSubmissionEndpoint, cfg.Submission.Endpoint)
	assert.Equal(t, 0, cfg.Submission.Timeout)
	assert.Equal(t, ":3000", cfg.Server.Address)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "registration", cfg.Observability.ServiceName)
}

func TestLoadFromFile_ExpandsEnv(t *testing.T) {
	t.Setenv("SINK_URL", "http://sink.internal:8080/api/business")
	path := writeConfig(t, "submission:\n  endpoint: ${SINK_URL}\n  timeout: 2500\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://sink.internal:8080/api/business", cfg.Submission.Endpoint)
	assert.Equal(t, 2500*time.Millisecond, GetDuration(cfg.Submission.Timeout))
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("LOGGING_LEVEL", "debug")
	path := writeConfig(t, "logging:\n  level: warn\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"relative endpoint", "submission:\n  endpoint: /api/business\n"},
		{"negative timeout", "submission:\n  timeout: -1\n"},
		{"tracing without endpoint", "observability:\n  tracing_enabled: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
