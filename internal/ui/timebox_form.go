package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/logging"
	"github.com/timeboxd/timeboxd/internal/services"
)

// TimeboxFormResult contains the outcome of the add form
type TimeboxFormResult struct {
	Cancelled bool
	Error     error
	Timebox   *domain.Timebox
}

// TimeboxForm is a Bubble Tea component for creating a timebox
type TimeboxForm struct {
	Completed      bool
	duration       string
	form           *huh.Form
	intention      string
	result         TimeboxFormResult
	timeboxService *services.TimeboxService
}

// NewTimeboxForm creates a new add form
func NewTimeboxForm(timeboxService *services.TimeboxService) *TimeboxForm {
	tf := &TimeboxForm{
		duration:       "25",
		timeboxService: timeboxService,
	}

	tf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Intention").
				Description("What will you focus on?").
				Value(&tf.intention).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("intention required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Duration").
				Description("Minutes, or a duration like 1h30m").
				Value(&tf.duration).
				Validate(func(s string) error {
					_, err := domain.ParseIntendedDuration(s)
					return err
				}),
		),
	)

	return tf
}

func (tf *TimeboxForm) Init() tea.Cmd {
	return tf.form.Init()
}

func (tf *TimeboxForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			tf.result.Cancelled = true
			tf.Completed = true
			return tf, nil
		}
	}

	form, cmd := tf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		tf.form = f
	}

	if tf.form.State == huh.StateCompleted {
		tf.Completed = true
		tb, err := tf.create()
		if err != nil {
			logging.Logger.Error("Failed to create timebox from form", "error", err)
		}
		tf.result.Timebox = tb
		tf.result.Error = err
		return tf, nil
	}

	return tf, cmd
}

func (tf *TimeboxForm) View() string {
	return tf.form.View()
}

// Result returns the form result
func (tf *TimeboxForm) Result() TimeboxFormResult {
	return tf.result
}

func (tf *TimeboxForm) create() (*domain.Timebox, error) {
	seconds, err := domain.ParseIntendedDuration(tf.duration)
	if err != nil {
		return nil, err
	}
	return tf.timeboxService.Create(context.Background(), domain.NewTimeboxParams{
		IntendedDuration: seconds,
		Intention:        tf.intention,
	})
}
