package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/timeboxd/timeboxd/internal/adapters/lock"
	"github.com/timeboxd/timeboxd/internal/config"
	"github.com/timeboxd/timeboxd/internal/logging"
	"github.com/timeboxd/timeboxd/internal/scheduler"
	"github.com/timeboxd/timeboxd/internal/ui"
)

// RunCmd runs the timer engine and idle monitor, with the dashboard unless headless
type RunCmd struct {
	ErrorClearDelay  int           `help:"Seconds before error messages auto-clear" default:"10"`
	Headless         bool          `help:"Run the drivers without the dashboard"`
	IdlePollInterval time.Duration `help:"Idle poll interval (overrides settings.json)"`
	TickInterval     time.Duration `help:"Timer tick interval (overrides settings.json)"`
}

// Run executes the drivers until interrupted or the dashboard quits
func (r *RunCmd) Run(container *Container) error {
	tickInterval := container.Settings.TickInterval()
	if r.TickInterval > 0 {
		tickInterval = r.TickInterval
	}
	idlePollInterval := container.Settings.IdlePollInterval()
	if r.IdlePollInterval > 0 {
		idlePollInterval = r.IdlePollInterval
	}

	runID := uuid.New().String()
	logging.Logger.Info("Starting timeboxd",
		"run_id", runID,
		"headless", r.Headless,
		"tick_interval", tickInterval,
		"idle_poll_interval", idlePollInterval)

	instanceLock, err := lock.Acquire(config.GetLockPath())
	if errors.Is(err, lock.ErrHeld) {
		return fmt.Errorf("%w (lock file %s)", err, config.GetLockPath())
	}
	if err != nil {
		return err
	}
	defer instanceLock.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timerDriver := scheduler.NewPeriodic("timer", tickInterval, time.Now, container.TimerEngine.Tick)
	idleDriver := scheduler.NewPeriodic("idle", idlePollInterval, time.Now, container.IdleMonitor.Poll)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return timerDriver.Run(gctx) })
	g.Go(func() error { return idleDriver.Run(gctx) })

	if !r.Headless {
		g.Go(func() error {
			// Quitting the dashboard stops the drivers
			defer cancel()
			model := ui.NewModel(
				container.TimeboxService,
				container.TimerEngine,
				container.IdleMonitor,
				tickInterval,
				time.Duration(r.ErrorClearDelay)*time.Second,
			)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(gctx))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				logging.Logger.Error("Dashboard error", "error", err)
				return fmt.Errorf("error running dashboard: %w", err)
			}
			logging.Logger.Info("Dashboard exited")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logging.Logger.Info("timeboxd stopped", "run_id", runID)
	return nil
}
