package domain

import "time"

// Event is a lifecycle trigger for a timebox
type Event string

const (
	EventAutoStop      Event = "auto-stop"
	EventCancel        Event = "cancel"
	EventFinish        Event = "finish"
	EventPause         Event = "pause"
	EventStart         Event = "start"
	EventStop          Event = "stop"
	EventStopAfterTime Event = "stop-after-time"
)

// transitions is the lifecycle table: event -> allowed source states -> target state
var transitions = map[Event]struct {
	from []TimeboxStatus
	to   TimeboxStatus
}{
	EventStart: {
		from: []TimeboxStatus{StatusNotStarted, StatusStopped, StatusPaused, StatusCompleted},
		to:   StatusInProgress,
	},
	EventStop:          {from: []TimeboxStatus{StatusInProgress}, to: StatusStopped},
	EventFinish:        {from: []TimeboxStatus{StatusInProgress}, to: StatusCompleted},
	EventCancel:        {from: []TimeboxStatus{StatusInProgress}, to: StatusCancelled},
	EventPause:         {from: []TimeboxStatus{StatusInProgress}, to: StatusPaused},
	EventAutoStop:      {from: []TimeboxStatus{StatusInProgress}, to: StatusStopped},
	EventStopAfterTime: {from: []TimeboxStatus{StatusInProgress}, to: StatusCompleted},
}

// endReasons maps closing events to the session end reason
var endReasons = map[Event]EndReason{
	EventAutoStop:      EndAutoStopped,
	EventCancel:        EndCancelled,
	EventFinish:        EndCompleted,
	EventPause:         EndPaused,
	EventStop:          EndStopped,
	EventStopAfterTime: EndAfterTime,
}

// Transition returns the status reached by applying event to from.
// Stopping a timebox that is already stopped returns ErrAlreadyStopped so
// that racing manual and idle stops resolve as a no-op for the loser.
func Transition(from TimeboxStatus, event Event) (TimeboxStatus, error) {
	rule, ok := transitions[event]
	if !ok {
		return from, &InvalidTransitionError{Event: event, From: from}
	}
	for _, s := range rule.from {
		if s == from {
			return rule.to, nil
		}
	}
	if from == StatusStopped && (event == EventStop || event == EventAutoStop) {
		return from, ErrAlreadyStopped
	}
	return from, &InvalidTransitionError{Event: event, From: from}
}

// TransitionResult describes the ledger side effect of an applied event
type TransitionResult struct {
	Closed *Session
	Opened *Session
	To     TimeboxStatus
}

// Apply runs event against the timebox at now, mutating status, timestamps
// and the session ledger. Nothing is mutated when an error is returned.
func (t *Timebox) Apply(event Event, now time.Time) (*TransitionResult, error) {
	if open := t.Sessions.Open(); event == EventStart && open != nil {
		return nil, &AlreadyOpenError{SessionID: open.ID, TimeboxID: t.ID}
	}

	to, err := Transition(t.Status, event)
	if err != nil {
		return nil, err
	}

	// Ledger and status must agree before anything is touched
	open := t.Sessions.Open()
	if t.Sessions.OpenCount() > 1 || (open != nil) != (t.Status == StatusInProgress) {
		return nil, ErrInvariantViolation
	}

	// Ending after time is only possible once the countdown went negative
	if event == EventStopAfterTime && open.ExpiredAt == nil && t.Remaining(now) >= 0 {
		return nil, ErrTimeNotUp
	}

	result := &TransitionResult{To: to}
	at := now

	if event == EventStart {
		opened, err := t.Sessions.OpenSession(t.ID, now)
		if err != nil {
			return nil, err
		}
		result.Opened = opened
		if t.StartedAt == nil {
			t.StartedAt = &at
		}
		t.AfterTimeStoppedAt = nil
		t.CompletedAt = nil
		t.PausedAt = nil
	} else {
		closed, err := t.Sessions.CloseSession(open.ID, endReasons[event], now)
		if err != nil {
			return nil, err
		}
		result.Closed = closed
		switch event {
		case EventStop:
			t.CompletedAt = &at
		case EventFinish:
			t.FinishedAt = &at
			t.CompletedAt = &at
		case EventCancel:
			t.CanceledAt = &at
		case EventPause:
			t.PausedAt = &at
		case EventAutoStop:
			t.AutoStoppedAt = &at
			t.CompletedAt = &at
		case EventStopAfterTime:
			t.AfterTimeStoppedAt = &at
			t.CompletedAt = &at
		}
	}

	t.Status = to
	t.UpdatedAt = at
	return result, nil
}
