package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFrom_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFrom(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	assert.Equal(t, time.Second, settings.TickInterval())
	assert.Equal(t, 30*time.Second, settings.IdlePollInterval())
	assert.Equal(t, 10*time.Second, settings.CallTimeout())
	assert.True(t, settings.SoundOn())
	assert.True(t, settings.NotificationsOn())
}

func TestLoadSettingsFrom_ParsesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{"tick_interval_ms": 250, "idle_poll_interval_seconds": 5, "sound_enabled": false, "db_path": "/tmp/x.db"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, settings.TickInterval())
	assert.Equal(t, 5*time.Second, settings.IdlePollInterval())
	assert.False(t, settings.SoundOn())
	assert.Equal(t, "/tmp/x.db", settings.ResolvedDBPath())
}

func TestLoadSettingsFrom_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"debug": `},
		{"zero tick", `{"tick_interval_ms": 0}`},
		{"negative timeout", `{"call_timeout_seconds": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadSettingsFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestGetHome_UsesEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)

	assert.Equal(t, dir, GetHome())
	assert.Equal(t, filepath.Join(dir, "state.db"), GetDBPath())
	assert.Equal(t, filepath.Join(dir, "settings.json"), GetSettingsPath())
}

func TestGetSettingsExample_CoversEveryField(t *testing.T) {
	example := GetSettingsExample()

	for _, key := range []string{"call_timeout_seconds", "db_path", "debug", "idle_poll_interval_seconds",
		"max_log_files", "notifications_enabled", "sound_enabled", "tick_interval_ms"} {
		assert.Contains(t, example, key)
	}
}
