package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/timeboxd/timeboxd/internal/logging"
)

// Task is the work run on every tick
type Task func(ctx context.Context, now time.Time)

// Periodic runs a task at a fixed period until stopped. A tick is dropped
// when the previous run is still in flight, so runs never overlap.
type Periodic struct {
	clock  func() time.Time
	name   string
	period time.Duration
	task   Task

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running chan struct{}
}

// NewPeriodic creates a scheduler. A nil clock uses time.Now.
func NewPeriodic(name string, period time.Duration, clock func() time.Time, task Task) *Periodic {
	if clock == nil {
		clock = time.Now
	}
	return &Periodic{
		clock:   clock,
		name:    name,
		period:  period,
		running: make(chan struct{}, 1),
		task:    task,
	}
}

// Start begins ticking. The first run happens immediately.
// Calling Start on a started scheduler does nothing.
func (p *Periodic) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	logging.Logger.Debug("Scheduler started", "name", p.name, "period", p.period)
	go p.loop(ctx, p.done)
}

// Stop halts ticking and waits for an in-flight run to return
func (p *Periodic) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	logging.Logger.Debug("Scheduler stopped", "name", p.name)
}

// Run blocks until ctx is cancelled, ticking in the meantime
func (p *Periodic) Run(ctx context.Context) error {
	p.Start(ctx)
	<-ctx.Done()
	p.Stop()
	return nil
}

func (p *Periodic) loop(ctx context.Context, done chan struct{}) {
	var wg sync.WaitGroup
	defer func() {
		wg.Wait()
		close(done)
	}()

	ticker := time.NewTicker(p.period)
	defer ticker.Stop()

	p.fire(ctx, &wg)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fire(ctx, &wg)
		}
	}
}

// fire runs the task unless the previous run has not finished
func (p *Periodic) fire(ctx context.Context, wg *sync.WaitGroup) {
	select {
	case p.running <- struct{}{}:
	default:
		logging.Logger.Debug("Skipping tick, previous run still in flight", "name", p.name)
		return
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() { <-p.running }()
		p.task(ctx, p.clock())
	}()
}
