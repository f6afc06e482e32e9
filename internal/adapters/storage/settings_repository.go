package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/logging"
)

// Settings keys
const (
	settingIdleEnabled        = "auto_stop_enabled"
	settingIdleTimeoutMinutes = "idle_timeout_minutes"
)

// GetIdleSettings implements SettingsStore.GetIdleSettings.
// Missing or unreadable keys fall back to the defaults.
func (r *SQLiteRepository) GetIdleSettings(ctx context.Context) (domain.IdleSettings, error) {
	var models []SettingModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("key IN ?", []string{settingIdleEnabled, settingIdleTimeoutMinutes}).
			Find(&models).Error
	}, maxRetries)
	if err != nil {
		return domain.IdleSettings{}, fmt.Errorf("failed to read idle settings: %w", err)
	}

	settings := domain.DefaultIdleSettings()
	for _, m := range models {
		switch m.Key {
		case settingIdleEnabled:
			enabled, err := strconv.ParseBool(m.Value)
			if err != nil {
				logging.Logger.Warn("Ignoring invalid stored setting", "key", m.Key, "value", m.Value)
				continue
			}
			settings.Enabled = enabled
		case settingIdleTimeoutMinutes:
			minutes, err := strconv.Atoi(m.Value)
			if err != nil || (domain.IdleSettings{TimeoutMinutes: minutes}).Validate() != nil {
				logging.Logger.Warn("Ignoring invalid stored setting", "key", m.Key, "value", m.Value)
				continue
			}
			settings.TimeoutMinutes = minutes
		}
	}

	return settings, nil
}

// SetIdleSettings implements SettingsStore.SetIdleSettings
func (r *SQLiteRepository) SetIdleSettings(ctx context.Context, settings domain.IdleSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	rows := []SettingModel{
		{Key: settingIdleEnabled, Value: strconv.FormatBool(settings.Enabled), UpdatedAt: now},
		{Key: settingIdleTimeoutMinutes, Value: strconv.Itoa(settings.TimeoutMinutes), UpdatedAt: now},
	}

	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&rows).Error
		})
	}, maxRetries)
}
