package cmd

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/logging"
)

// TimeboxesEventCmd applies a lifecycle event; the event is the command name
type TimeboxesEventCmd struct {
	ID int64 `arg:"" help:"Timebox id"`
}

// Run executes start, stop, stop-after-time, finish, cancel or pause
func (s *TimeboxesEventCmd) Run(kctx *kong.Context, container *Container) error {
	event := domain.Event(kctx.Selected().Name)
	logging.Logger.Info("Executing timeboxes lifecycle command", "id", s.ID, "event", event)

	tb, applied, err := container.TimeboxService.ApplyAt(context.Background(), s.ID, event, container.TimeboxService.Now())
	if err != nil {
		return fmt.Errorf("failed to %s timebox %d: %w", event, s.ID, err)
	}
	if !applied {
		fmt.Printf("Timebox %d is already stopped\n", s.ID)
		return nil
	}

	fmt.Printf("Timebox %d %s %s\n", tb.ID, tb.Status.Symbol(), tb.Status)
	return nil
}

// TimeboxesArchiveCmd archives a timebox
type TimeboxesArchiveCmd struct {
	ID int64 `arg:"" help:"Timebox id"`
}

// Run executes the archive command
func (s *TimeboxesArchiveCmd) Run(container *Container) error {
	if _, err := container.TimeboxService.Archive(context.Background(), s.ID); err != nil {
		return fmt.Errorf("failed to archive timebox: %w", err)
	}
	fmt.Printf("Timebox %d archived\n", s.ID)
	return nil
}

// TimeboxesUnarchiveCmd restores an archived timebox
type TimeboxesUnarchiveCmd struct {
	ID int64 `arg:"" help:"Timebox id"`
}

// Run executes the unarchive command
func (s *TimeboxesUnarchiveCmd) Run(container *Container) error {
	if _, err := container.TimeboxService.Unarchive(context.Background(), s.ID); err != nil {
		return fmt.Errorf("failed to unarchive timebox: %w", err)
	}
	fmt.Printf("Timebox %d unarchived\n", s.ID)
	return nil
}
