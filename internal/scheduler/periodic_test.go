package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodic_RunsImmediatelyAndRepeatedly(t *testing.T) {
	var runs atomic.Int32
	p := NewPeriodic("test", 10*time.Millisecond, nil, func(ctx context.Context, now time.Time) {
		runs.Add(1)
	})

	p.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	p.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after Stop returns")
}

func TestPeriodic_NeverOverlaps(t *testing.T) {
	var inFlight, maxInFlight, runs atomic.Int32
	p := NewPeriodic("slow", 2*time.Millisecond, nil, func(ctx context.Context, now time.Time) {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(15 * time.Millisecond)
		inFlight.Add(-1)
		runs.Add(1)
	})

	p.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	p.Stop()

	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestPeriodic_UsesInjectedClock(t *testing.T) {
	fixed := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	seen := make(chan time.Time, 1)
	p := NewPeriodic("clock", time.Hour, func() time.Time { return fixed }, func(ctx context.Context, now time.Time) {
		select {
		case seen <- now:
		default:
		}
	})

	p.Start(context.Background())
	defer p.Stop()

	select {
	case got := <-seen:
		assert.Equal(t, fixed, got)
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
}

func TestPeriodic_StopWithoutStartAndDoubleStart(t *testing.T) {
	var runs atomic.Int32
	p := NewPeriodic("idempotent", time.Hour, nil, func(ctx context.Context, now time.Time) { runs.Add(1) })

	p.Stop()
	p.Start(context.Background())
	p.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	p.Stop()
	p.Stop()
	assert.Equal(t, int32(1), runs.Load())
}

func TestPeriodic_RunReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPeriodic("run", time.Millisecond, nil, func(ctx context.Context, now time.Time) {})

	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}
