package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/logging"
	"github.com/timeboxd/timeboxd/internal/ports"
)

// IdleMonitor stops every running timebox once the user has been away
// longer than the configured threshold
type IdleMonitor struct {
	callTimeout   time.Duration
	notifications *NotificationService
	settings      ports.SettingsStore
	source        ports.IdleSource
	timeboxes     *TimeboxService

	mu             sync.Mutex
	hasAutoStopped bool
	info           *domain.AutoStoppedInfo
}

// NewIdleMonitor creates a new IdleMonitor
func NewIdleMonitor(
	source ports.IdleSource,
	settings ports.SettingsStore,
	timeboxes *TimeboxService,
	notifications *NotificationService,
	callTimeout time.Duration,
) *IdleMonitor {
	return &IdleMonitor{
		callTimeout:   callTimeout,
		notifications: notifications,
		settings:      settings,
		source:        source,
		timeboxes:     timeboxes,
	}
}

// Poll checks the idle time once. It never returns an error; failures are
// logged and the next poll starts fresh.
func (m *IdleMonitor) Poll(ctx context.Context, now time.Time) {
	settingsCtx, cancel := withCallTimeout(ctx, m.callTimeout)
	settings, err := m.settings.GetIdleSettings(settingsCtx)
	cancel()
	if err != nil {
		logging.Logger.Error("Idle poll failed to load settings", "error", err)
		return
	}

	if !settings.Enabled {
		m.rearm()
		return
	}

	idleCtx, cancel := withCallTimeout(ctx, m.callTimeout)
	idleSeconds, err := m.source.IdleSeconds(idleCtx)
	cancel()
	if errors.Is(err, domain.ErrPlatformUnsupported) {
		logging.Logger.Debug("Idle detection unsupported, monitor inert", "error", err)
		m.rearm()
		return
	}
	if err != nil {
		logging.Logger.Warn("Failed to read idle time", "error", err)
		return
	}

	if idleSeconds < settings.ThresholdSeconds() {
		m.rearm()
		return
	}

	m.mu.Lock()
	already := m.hasAutoStopped
	m.mu.Unlock()
	if already {
		return
	}

	active, err := m.timeboxes.ListActive(ctx)
	if err != nil {
		logging.Logger.Error("Idle poll failed to list active timeboxes", "error", err)
		return
	}
	if len(active) == 0 {
		return
	}

	logging.Logger.Info("Idle threshold reached, stopping active timeboxes",
		"idle_seconds", idleSeconds,
		"threshold_seconds", settings.ThresholdSeconds(),
		"count", len(active))

	batch := m.stopAll(ctx, active, now)

	m.mu.Lock()
	m.hasAutoStopped = true
	if len(batch.Timeboxes) > 0 || len(batch.Failed) > 0 {
		m.mergeInfo(batch)
	}
	m.mu.Unlock()

	if len(batch.Timeboxes) > 0 && m.notifications != nil {
		if _, err := m.notifications.Notify(ctx, AutoStopNotification(batch.Timeboxes, settings.TimeoutMinutes)); err != nil {
			logging.Logger.Warn("Auto-stop notification failed", "error", err)
		}
	}
}

// stopAll issues one independent auto-stop per timebox
func (m *IdleMonitor) stopAll(ctx context.Context, active []domain.Timebox, now time.Time) domain.AutoStoppedInfo {
	batch := domain.AutoStoppedInfo{StoppedAt: now}

	for _, tb := range active {
		_, applied, err := m.timeboxes.ApplyAt(ctx, tb.ID, domain.EventAutoStop, now)
		switch {
		case err == nil && applied:
			batch.Timeboxes = append(batch.Timeboxes, domain.StoppedTimebox{ID: tb.ID, Intention: tb.Intention})
		case err == nil, errors.Is(err, domain.ErrInvalidTransition):
			// Stopped, paused or finished by the user since the list was read
			logging.Logger.Debug("Timebox no longer running, skipping auto-stop", "id", tb.ID)
		default:
			logging.Logger.Error("Auto-stop failed", "id", tb.ID, "error", err)
			batch.Failed = append(batch.Failed, domain.FailedStop{ID: tb.ID, Intention: tb.Intention, Error: err.Error()})
		}
	}

	return batch
}

// mergeInfo adds a batch to an undismissed snapshot. Caller holds mu.
func (m *IdleMonitor) mergeInfo(batch domain.AutoStoppedInfo) {
	if m.info == nil {
		m.info = &batch
		return
	}
	m.info.StoppedAt = batch.StoppedAt
	m.info.Timeboxes = append(m.info.Timeboxes, batch.Timeboxes...)
	m.info.Failed = append(m.info.Failed, batch.Failed...)
}

// rearm lets a later idle period trigger auto-stop again.
// The snapshot is left alone.
func (m *IdleMonitor) rearm() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hasAutoStopped {
		logging.Logger.Debug("User active again, idle auto-stop re-armed")
	}
	m.hasAutoStopped = false
}

// HasAutoStopped reports whether the current idle period already triggered
func (m *IdleMonitor) HasAutoStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasAutoStopped
}

// AutoStoppedInfo returns a copy of the away snapshot, or nil
func (m *IdleMonitor) AutoStoppedInfo() *domain.AutoStoppedInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.info == nil {
		return nil
	}
	info := domain.AutoStoppedInfo{
		Failed:    append([]domain.FailedStop(nil), m.info.Failed...),
		StoppedAt: m.info.StoppedAt,
		Timeboxes: append([]domain.StoppedTimebox(nil), m.info.Timeboxes...),
	}
	return &info
}

// Dismiss clears the away snapshot
func (m *IdleMonitor) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.info = nil
}
