package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Defaults for the engine cadence
const (
	DefaultCallTimeoutSeconds      = 10
	DefaultIdlePollIntervalSeconds = 30
	DefaultTickIntervalMillis      = 1000
)

// Settings represents the structure of $TIMEBOXD_HOME/settings.json.
// Idle auto-stop settings are stored in the database, not here.
type Settings struct {
	CallTimeoutSeconds      *int   `json:"call_timeout_seconds,omitempty"`
	DBPath                  string `json:"db_path,omitempty"`
	Debug                   *bool  `json:"debug,omitempty"`
	IdlePollIntervalSeconds *int   `json:"idle_poll_interval_seconds,omitempty"`
	MaxLogFiles             *int   `json:"max_log_files,omitempty"`
	NotificationsEnabled    *bool  `json:"notifications_enabled,omitempty"`
	SoundEnabled            *bool  `json:"sound_enabled,omitempty"`
	TickIntervalMillis      *int   `json:"tick_interval_ms,omitempty"`
}

// LoadSettings loads settings from $TIMEBOXD_HOME/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.DBPath != "" {
		settings.DBPath = ExpandPath(settings.DBPath)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// Validate rejects non-positive intervals
func (s *Settings) Validate() error {
	checks := []struct {
		name  string
		value *int
	}{
		{"call_timeout_seconds", s.CallTimeoutSeconds},
		{"idle_poll_interval_seconds", s.IdlePollIntervalSeconds},
		{"tick_interval_ms", s.TickIntervalMillis},
	}
	for _, c := range checks {
		if c.value != nil && *c.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", c.name, *c.value)
		}
	}
	return nil
}

// ResolvedDBPath returns the configured database path or the default one
func (s *Settings) ResolvedDBPath() string {
	if s != nil && s.DBPath != "" {
		return s.DBPath
	}
	return GetDBPath()
}

// TickInterval returns the timer engine period
func (s *Settings) TickInterval() time.Duration {
	if s != nil && s.TickIntervalMillis != nil {
		return time.Duration(*s.TickIntervalMillis) * time.Millisecond
	}
	return DefaultTickIntervalMillis * time.Millisecond
}

// IdlePollInterval returns the idle monitor period
func (s *Settings) IdlePollInterval() time.Duration {
	if s != nil && s.IdlePollIntervalSeconds != nil {
		return time.Duration(*s.IdlePollIntervalSeconds) * time.Second
	}
	return DefaultIdlePollIntervalSeconds * time.Second
}

// CallTimeout bounds each call into the store, idle source, or notifier
func (s *Settings) CallTimeout() time.Duration {
	if s != nil && s.CallTimeoutSeconds != nil {
		return time.Duration(*s.CallTimeoutSeconds) * time.Second
	}
	return DefaultCallTimeoutSeconds * time.Second
}

// SoundOn reports whether sound cues are enabled (default true)
func (s *Settings) SoundOn() bool {
	return s == nil || s.SoundEnabled == nil || *s.SoundEnabled
}

// NotificationsOn reports whether system notifications are enabled (default true)
func (s *Settings) NotificationsOn() bool {
	return s == nil || s.NotificationsEnabled == nil || *s.NotificationsEnabled
}
