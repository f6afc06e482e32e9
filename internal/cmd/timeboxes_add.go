package cmd

import (
	"context"
	"fmt"

	"github.com/timeboxd/timeboxd/internal/domain"
)

// TimeboxesAddCmd adds a new timebox
type TimeboxesAddCmd struct {
	// Positional order: intention then duration
	Intention string `arg:"" help:"What you intend to work on"`
	Duration  string `arg:"" help:"Intended duration: minutes (25) or a duration (1h30m)"`

	ExternalRef string `help:"Opaque reference to an external item (ticket, issue)"`
	Format      string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Notes       string `help:"Optional notes"`
	Start       bool   `help:"Start the timebox right away" short:"s"`
}

// Run executes the add command
func (s *TimeboxesAddCmd) Run(container *Container) error {
	seconds, err := domain.ParseIntendedDuration(s.Duration)
	if err != nil {
		return err
	}

	params := domain.NewTimeboxParams{
		ExternalRef:      s.ExternalRef,
		IntendedDuration: seconds,
		Intention:        s.Intention,
	}
	if s.Notes != "" {
		params.Notes = &s.Notes
	}

	ctx := context.Background()
	tb, err := container.TimeboxService.Create(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to add timebox: %w", err)
	}

	if s.Start {
		id := tb.ID
		if tb, err = container.TimeboxService.Start(ctx, id); err != nil {
			return fmt.Errorf("timebox %d added but failed to start: %w", id, err)
		}
	}

	if s.Format == "json" {
		return printJSON(newTimeboxView(tb, container.TimeboxService.Now(), false))
	}
	fmt.Printf("Timebox %d added: %q (%s)\n", tb.ID, tb.Intention, s.Duration)
	return nil
}
