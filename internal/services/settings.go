package services

import (
	"context"
	"fmt"
	"time"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/logging"
	"github.com/timeboxd/timeboxd/internal/ports"
)

// SettingsService reads and updates the idle auto-stop settings
type SettingsService struct {
	callTimeout time.Duration
	store       ports.SettingsStore
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(store ports.SettingsStore, callTimeout time.Duration) *SettingsService {
	return &SettingsService{
		callTimeout: callTimeout,
		store:       store,
	}
}

// IdleSettings returns the stored settings, or the defaults when none are stored
func (s *SettingsService) IdleSettings(ctx context.Context) (domain.IdleSettings, error) {
	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()

	settings, err := s.store.GetIdleSettings(ctx)
	if err != nil {
		logging.Logger.Error("Failed to load idle settings", "error", err)
		return domain.IdleSettings{}, fmt.Errorf("failed to load idle settings: %w", err)
	}
	return settings, nil
}

// UpdateIdleSettings applies the non-nil fields on top of the current settings
func (s *SettingsService) UpdateIdleSettings(
	ctx context.Context,
	enabled *bool,
	timeoutMinutes *int,
) (domain.IdleSettings, error) {
	current, err := s.IdleSettings(ctx)
	if err != nil {
		return domain.IdleSettings{}, err
	}

	if enabled != nil {
		current.Enabled = *enabled
	}
	if timeoutMinutes != nil {
		current.TimeoutMinutes = *timeoutMinutes
	}

	if err := current.Validate(); err != nil {
		return domain.IdleSettings{}, err
	}

	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := s.store.SetIdleSettings(ctx, current); err != nil {
		logging.Logger.Error("Failed to save idle settings", "error", err)
		return domain.IdleSettings{}, wrapStoreError("save idle settings", err)
	}

	logging.Logger.Info("Idle settings updated",
		"enabled", current.Enabled,
		"timeout_minutes", current.TimeoutMinutes)
	return current, nil
}
