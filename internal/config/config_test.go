package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://uat-api.sunkong.cloud/v1", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, 24, cfg.Schedule.CycleIntervalHours)
	assert.Equal(t, []string{"sunkong"}, cfg.Schedule.DailyProjects)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://api.example.test/v2
  timeout_seconds: 10
schedule:
  cycle_interval_hours: 12
  daily_projects: [sunkong, moonkong]
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.test/v2", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
	assert.Equal(t, 12, cfg.Schedule.CycleIntervalHours)
	assert.Equal(t, []string{"sunkong", "moonkong"}, cfg.Schedule.DailyProjects)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: info
`)
	t.Setenv("SUNKONG_LOG_LEVEL", "debug")
	t.Setenv("SUNKONG_API_TIMEOUT_SECONDS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 7, cfg.API.TimeoutSeconds)
}

func TestValidateRejectsBadPacing(t *testing.T) {
	path := writeConfig(t, `
pacing:
  quest_delay_min_ms: 500
  quest_delay_max_ms: 100
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quest_delay_max_ms")
}
