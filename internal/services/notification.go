package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/logging"
	"github.com/timeboxd/timeboxd/internal/ports"
)

// Notification is one message for the system notification center
type Notification struct {
	Body  string
	Cue   ports.SoundCue
	Title string
}

// OvertimeNotification announces that a timebox ran past its intended duration
func OvertimeNotification(state domain.TimerState) Notification {
	return Notification{
		Body:  fmt.Sprintf("%q ran past its %s", state.Intention, formatMinutes(state.IntendedSeconds)),
		Cue:   ports.CueOvertime,
		Title: "Time's up",
	}
}

// AutoStopNotification summarizes an idle auto-stop batch
func AutoStopNotification(stopped []domain.StoppedTimebox, idleMinutes int) Notification {
	n := Notification{Cue: ports.CueAutoStop}

	if len(stopped) == 1 {
		n.Title = "Timebox stopped"
		n.Body = fmt.Sprintf("Stopped %q after %s of inactivity", stopped[0].Intention, pluralize(idleMinutes, "minute"))
		return n
	}

	names := make([]string, len(stopped))
	for i, tb := range stopped {
		names[i] = tb.Intention
	}
	n.Title = "Timeboxes stopped"
	n.Body = fmt.Sprintf("Stopped %d timeboxes after %s of inactivity: %s",
		len(stopped), pluralize(idleMinutes, "minute"), strings.Join(names, ", "))
	return n
}

// NotificationService delivers notifications, gated on permission, with a sound cue
type NotificationService struct {
	callTimeout time.Duration
	enabled     bool
	notifier    ports.Notifier
	soundPlayer ports.SoundPlayer
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notifier ports.Notifier,
	soundPlayer ports.SoundPlayer,
	enabled bool,
	callTimeout time.Duration,
) *NotificationService {
	return &NotificationService{
		callTimeout: callTimeout,
		enabled:     enabled,
		notifier:    notifier,
		soundPlayer: soundPlayer,
	}
}

// Notify checks permission, requests it if needed, then sends. Denied
// permission skips the send and is not an error. The sound cue plays
// either way.
func (s *NotificationService) Notify(ctx context.Context, n Notification) (bool, error) {
	s.playSound(n.Cue)

	if !s.enabled {
		logging.Logger.Debug("Notifications disabled, skipping", "title", n.Title)
		return false, nil
	}

	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()

	granted, err := s.notifier.PermissionGranted(ctx)
	if err != nil {
		logging.Logger.Warn("Failed to check notification permission", "error", err)
		return false, fmt.Errorf("failed to check notification permission: %w", err)
	}

	if !granted {
		granted, err = s.notifier.RequestPermission(ctx)
		if err != nil {
			logging.Logger.Warn("Failed to request notification permission", "error", err)
			return false, fmt.Errorf("failed to request notification permission: %w", err)
		}
	}

	if !granted {
		logging.Logger.Info("Notification permission denied, skipping", "title", n.Title)
		return false, nil
	}

	if err := s.notifier.Send(ctx, n.Title, n.Body); err != nil {
		logging.Logger.Error("Failed to send notification", "title", n.Title, "error", err)
		return false, err
	}

	logging.Logger.Info("Notification sent", "title", n.Title)
	return true, nil
}

func (s *NotificationService) playSound(cue ports.SoundCue) {
	if s.soundPlayer == nil || cue == "" {
		return
	}
	if err := s.soundPlayer.Play(cue); err != nil {
		logging.Logger.Debug("Failed to play sound", "cue", cue, "error", err)
	}
}

// formatMinutes renders a duration given in seconds for messages
func formatMinutes(seconds int64) string {
	if seconds%60 != 0 {
		return (time.Duration(seconds) * time.Second).String()
	}
	return pluralize(int(seconds/60), "minute")
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
