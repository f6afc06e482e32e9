package cmd

import (
	"context"
	"fmt"

	"github.com/timeboxd/timeboxd/internal/domain"
)

// TimeboxesListCmd lists timeboxes
type TimeboxesListCmd struct {
	Active   bool   `help:"Only running timeboxes" xor:"scope"`
	Archived bool   `help:"Archived timeboxes instead of today's" short:"a" xor:"scope"`
	Format   string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (s *TimeboxesListCmd) Run(container *Container) error {
	ctx := context.Background()
	svc := container.TimeboxService

	var (
		timeboxes []domain.Timebox
		err       error
	)
	switch {
	case s.Active:
		timeboxes, err = svc.ListActive(ctx)
	case s.Archived:
		timeboxes, err = svc.ListArchived(ctx)
	default:
		timeboxes, err = svc.ListToday(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list timeboxes: %w", err)
	}

	now := svc.Now()
	if s.Format == "json" {
		views := make([]timeboxView, len(timeboxes))
		for i := range timeboxes {
			views[i] = newTimeboxView(&timeboxes[i], now, false)
		}
		return printJSON(views)
	}
	printTimeboxTable(timeboxes, now)
	return nil
}

// TimeboxesViewCmd shows one timebox
type TimeboxesViewCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ID     int64  `arg:"" help:"Timebox id"`
}

// Run executes the view command
func (s *TimeboxesViewCmd) Run(container *Container) error {
	tb, err := container.TimeboxService.Get(context.Background(), s.ID)
	if err != nil {
		return fmt.Errorf("failed to get timebox: %w", err)
	}

	now := container.TimeboxService.Now()
	if s.Format == "json" {
		return printJSON(newTimeboxView(tb, now, true))
	}
	printTimebox(tb, now)
	return nil
}
