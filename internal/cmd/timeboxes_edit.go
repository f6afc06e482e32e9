package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/timeboxd/timeboxd/internal/domain"
)

// TimeboxesEditCmd edits a timebox; only the given fields change
type TimeboxesEditCmd struct {
	Duration  string `help:"New intended duration: minutes or a duration"`
	ID        int64  `arg:"" help:"Timebox id"`
	Intention string `help:"New intention"`
	Notes     string `help:"New notes"`
}

// Run executes the edit command
func (s *TimeboxesEditCmd) Run(container *Container) error {
	var update domain.TimeboxUpdate
	if s.Intention != "" {
		update.Intention = &s.Intention
	}
	if s.Notes != "" {
		update.Notes = &s.Notes
	}
	if s.Duration != "" {
		seconds, err := domain.ParseIntendedDuration(s.Duration)
		if err != nil {
			return err
		}
		update.IntendedDuration = &seconds
	}
	if update.Intention == nil && update.Notes == nil && update.IntendedDuration == nil {
		return errors.New("nothing to edit: pass --intention, --notes or --duration")
	}

	tb, err := container.TimeboxService.Update(context.Background(), s.ID, update)
	if err != nil {
		return fmt.Errorf("failed to edit timebox: %w", err)
	}
	fmt.Printf("Timebox %d updated: %q\n", tb.ID, tb.Intention)
	return nil
}

// TimeboxesHistoryCmd shows the change log of a timebox
type TimeboxesHistoryCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ID     int64  `arg:"" help:"Timebox id"`
}

// Run executes the history command
func (s *TimeboxesHistoryCmd) Run(container *Container) error {
	changes, err := container.TimeboxService.ChangeLog(context.Background(), s.ID)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if s.Format == "json" {
		return printJSON(changes)
	}
	printChangeLog(changes)
	return nil
}
