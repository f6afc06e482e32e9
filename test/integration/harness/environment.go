package harness

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnvironment provides an isolated test environment with its own TIMEBOXD_HOME.
type TestEnvironment struct {
	Home string
	tb   testing.TB
}

// NewTestEnvironment creates an isolated test environment with a temp TIMEBOXD_HOME.
// The temp directory is automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	return &TestEnvironment{
		Home: tb.TempDir(),
		tb:   tb,
	}
}

// Environ returns environment variables configured for test isolation.
// It filters out TIMEBOXD_* variables and sets:
//   - TIMEBOXD_HOME to the temp directory
//   - TIMEBOXD_DEBUG to empty string (disables debug logging)
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+2)

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "TIMEBOXD_") {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"TIMEBOXD_HOME="+e.Home,
		"TIMEBOXD_DEBUG=",
	)

	return env
}

// DBPath returns the path to the test database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.Home, "state.db")
}

// SettingsPath returns the path to the settings file.
func (e *TestEnvironment) SettingsPath() string {
	return filepath.Join(e.Home, "settings.json")
}

// WriteSettings writes settings.json into the test home.
func (e *TestEnvironment) WriteSettings(settings map[string]any) {
	e.tb.Helper()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		e.tb.Fatalf("Failed to marshal settings: %v", err)
	}
	if err := os.WriteFile(e.SettingsPath(), data, 0o644); err != nil {
		e.tb.Fatalf("Failed to write settings: %v", err)
	}
}
