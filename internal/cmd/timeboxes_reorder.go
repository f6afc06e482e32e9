package cmd

import (
	"context"
	"fmt"

	"github.com/timeboxd/timeboxd/internal/domain"
)

// TimeboxesReorderCmd assigns display positions in the order given
type TimeboxesReorderCmd struct {
	IDs []int64 `arg:"" help:"Timebox ids, first shown first" name:"id"`
}

// Run executes the reorder command
func (s *TimeboxesReorderCmd) Run(container *Container) error {
	items := make([]domain.ReorderItem, len(s.IDs))
	for i, id := range s.IDs {
		items[i] = domain.ReorderItem{DisplayOrder: i, ID: id}
	}

	if err := container.TimeboxService.Reorder(context.Background(), items); err != nil {
		return fmt.Errorf("failed to reorder timeboxes: %w", err)
	}
	fmt.Printf("Reordered %d timeboxes\n", len(items))
	return nil
}
