package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/logging"
	"github.com/timeboxd/timeboxd/internal/ports"
)

// TimerEngine derives the countdown of every running timebox from its ledger
// and fires the overtime side effect exactly once per session
type TimerEngine struct {
	callTimeout   time.Duration
	lifecycle     ports.TimeboxLifecycle
	notifications *NotificationService
	reader        ports.TimeboxReader

	mu     sync.Mutex
	fired  map[int64]struct{} // session ids that already crossed into overtime
	states map[int64]domain.TimerState
}

// NewTimerEngine creates a new TimerEngine
func NewTimerEngine(
	reader ports.TimeboxReader,
	lifecycle ports.TimeboxLifecycle,
	notifications *NotificationService,
	callTimeout time.Duration,
) *TimerEngine {
	return &TimerEngine{
		callTimeout:   callTimeout,
		fired:         make(map[int64]struct{}),
		lifecycle:     lifecycle,
		notifications: notifications,
		reader:        reader,
		states:        make(map[int64]domain.TimerState),
	}
}

// Tick recomputes every running countdown at now. Failures are logged and
// the next tick proceeds normally.
func (e *TimerEngine) Tick(ctx context.Context, now time.Time) {
	listCtx, cancel := withCallTimeout(ctx, e.callTimeout)
	active, err := e.reader.ListActive(listCtx)
	cancel()
	if err != nil {
		logging.Logger.Error("Timer tick failed to list active timeboxes", "error", err)
		return
	}

	crossed := e.update(active, now)

	for _, state := range crossed {
		logging.Logger.Info("Timebox entered overtime",
			"timebox_id", state.TimeboxID,
			"session_id", state.SessionID,
			"remaining_seconds", state.RemainingSeconds)

		expireCtx, cancel := withCallTimeout(ctx, e.callTimeout)
		if err := e.lifecycle.ExpireSession(expireCtx, state.SessionID, now); err != nil {
			logging.Logger.Error("Failed to persist overtime marker", "session_id", state.SessionID, "error", err)
		}
		cancel()

		if e.notifications != nil {
			if _, err := e.notifications.Notify(ctx, OvertimeNotification(state)); err != nil {
				logging.Logger.Warn("Overtime notification failed", "session_id", state.SessionID, "error", err)
			}
		}
	}
}

// update rebuilds the state snapshot and returns the sessions that crossed
// zero for the first time
func (e *TimerEngine) update(active []domain.Timebox, now time.Time) []domain.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()

	states := make(map[int64]domain.TimerState, len(active))
	live := make(map[int64]struct{}, len(active))
	var crossed []domain.TimerState

	for i := range active {
		tb := &active[i]
		open := tb.Sessions.Open()
		if open == nil {
			logging.Logger.Warn("Active timebox without open session", "timebox_id", tb.ID)
			continue
		}
		live[open.ID] = struct{}{}

		// A marker persisted by an earlier process means it already fired
		if open.ExpiredAt != nil {
			e.fired[open.ID] = struct{}{}
		}

		remaining := tb.Remaining(now)
		state := domain.TimerState{
			ElapsedSeconds:   int64(tb.ActualDuration(now) / time.Second),
			Expired:          remaining < 0,
			IntendedSeconds:  tb.IntendedDuration,
			Intention:        tb.Intention,
			RemainingSeconds: remaining,
			SessionID:        open.ID,
			TimeboxID:        tb.ID,
		}
		states[tb.ID] = state

		if state.Expired {
			if _, ok := e.fired[open.ID]; !ok {
				e.fired[open.ID] = struct{}{}
				crossed = append(crossed, state)
			}
		}
	}

	for id := range e.fired {
		if _, ok := live[id]; !ok {
			delete(e.fired, id)
		}
	}

	e.states = states
	return crossed
}

// States returns the countdowns from the last tick ordered by timebox id
func (e *TimerEngine) States() []domain.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := make([]domain.TimerState, 0, len(e.states))
	for _, s := range e.states {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TimeboxID < result[j].TimeboxID })
	return result
}

// State returns the countdown of one timebox from the last tick
func (e *TimerEngine) State(timeboxID int64) (domain.TimerState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.states[timeboxID]
	return s, ok
}

// firedCount is the size of the dedup set
func (e *TimerEngine) firedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.fired)
}
