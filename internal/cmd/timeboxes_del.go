package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/logging"
)

// TimeboxesDelCmd deletes a timebox
type TimeboxesDelCmd struct {
	Force bool  `help:"Force deletion without confirmation" short:"f"`
	ID    int64 `arg:"" help:"Timebox id"`
}

// Run executes the del command
func (s *TimeboxesDelCmd) Run(container *Container) error {
	logging.Logger.Info("Executing timeboxes del command", "id", s.ID, "force", s.Force)

	ctx := context.Background()
	tb, err := container.TimeboxService.Get(ctx, s.ID)
	if err != nil {
		return fmt.Errorf("failed to get timebox: %w", err)
	}

	if !s.Force {
		confirmed, err := s.confirmDeletion(tb)
		if err != nil {
			return err
		}
		if !confirmed {
			logging.Logger.Info("User cancelled timebox deletion", "id", s.ID)
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := container.TimeboxService.Delete(ctx, s.ID); err != nil {
		return fmt.Errorf("failed to delete timebox: %w", err)
	}
	fmt.Printf("Timebox %d deleted\n", s.ID)
	return nil
}

func (s *TimeboxesDelCmd) confirmDeletion(tb *domain.Timebox) (bool, error) {
	confirmed := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete timebox %d %q?", tb.ID, tb.Intention)).
		Description(fmt.Sprintf("Its %d session(s) and edit history are removed too.", len(tb.Sessions))).
		Affirmative("Delete").
		Negative("Keep").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return confirmed, nil
}
