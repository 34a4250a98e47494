package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err, "Load should succeed with no environment overrides")
	assert.NotEmpty(t, cfg.DefaultExeName, "a default executable name should always be set")
	assert.Equal(t, 500, cfg.HistorySize)
}

func Test_Load_InvalidDuration(t *testing.T) {
	t.Setenv("DELAUNCHER_STOP_GRACE_SECONDS", "not-a-number")
	_, err := Load()
	assert.Error(t, err, "a non-numeric grace period should fail to load")
}

func Test_Load_Overrides(t *testing.T) {
	t.Setenv("DELAUNCHER_SYS_CONFIG", "/opt/launcher/config")
	t.Setenv("DELAUNCHER_HISTORY_SIZE", "1000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/opt/launcher/config", cfg.SysConfigOverride)
	assert.Equal(t, 1000, cfg.HistorySize)
}
