package domain

import "fmt"

// Idle timeout bounds in minutes
const (
	DefaultIdleTimeoutMinutes = 5
	MaxIdleTimeoutMinutes     = 30
	MinIdleTimeoutMinutes     = 1
)

// IdleSettings controls idle auto-stop
type IdleSettings struct {
	Enabled        bool
	TimeoutMinutes int
}

// DefaultIdleSettings returns the settings used when nothing is stored
func DefaultIdleSettings() IdleSettings {
	return IdleSettings{Enabled: true, TimeoutMinutes: DefaultIdleTimeoutMinutes}
}

// Validate checks that the timeout is within range
func (s IdleSettings) Validate() error {
	if s.TimeoutMinutes < MinIdleTimeoutMinutes || s.TimeoutMinutes > MaxIdleTimeoutMinutes {
		return fmt.Errorf("%w: idle timeout must be between %d and %d minutes, got %d",
			ErrInvalidSettings, MinIdleTimeoutMinutes, MaxIdleTimeoutMinutes, s.TimeoutMinutes)
	}
	return nil
}

// ThresholdSeconds returns the idle threshold in seconds
func (s IdleSettings) ThresholdSeconds() int64 {
	return int64(s.TimeoutMinutes) * 60
}
