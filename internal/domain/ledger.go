package domain

import "time"

// EndReason records why a session was closed
type EndReason string

const (
	EndAfterTime   EndReason = "after_time"
	EndAutoStopped EndReason = "auto_stopped"
	EndCancelled   EndReason = "cancelled"
	EndCompleted   EndReason = "completed"
	EndPaused      EndReason = "paused"
	EndStopped     EndReason = "stopped"
)

// Session is one contiguous interval of work on a timebox
type Session struct {
	CancelledAt *time.Time
	EndReason   *EndReason
	ExpiredAt   *time.Time
	ID          int64
	StartedAt   time.Time
	StoppedAt   *time.Time
	TimeboxID   int64
}

// IsOpen reports whether the session is still running
func (s *Session) IsOpen() bool {
	return s.StoppedAt == nil && s.CancelledAt == nil
}

// IsCancelled reports whether the session ended by cancellation
func (s *Session) IsCancelled() bool {
	return s.CancelledAt != nil
}

// Elapsed returns the counted time of the session at now.
// Cancelled sessions count as zero.
func (s *Session) Elapsed(now time.Time) time.Duration {
	switch {
	case s.CancelledAt != nil:
		return 0
	case s.StoppedAt != nil:
		return nonNegative(s.StoppedAt.Sub(s.StartedAt))
	default:
		return nonNegative(now.Sub(s.StartedAt))
	}
}

// Ledger is the ordered list of sessions of one timebox
type Ledger []Session

// Open returns the open session, or nil
func (l Ledger) Open() *Session {
	for i := range l {
		if l[i].IsOpen() {
			return &l[i]
		}
	}
	return nil
}

// OpenCount returns how many sessions are open. Anything above one is corruption.
func (l Ledger) OpenCount() int {
	n := 0
	for i := range l {
		if l[i].IsOpen() {
			n++
		}
	}
	return n
}

// OpenSession appends a new open session started at now.
// The returned session has no ID until it is persisted.
func (l *Ledger) OpenSession(timeboxID int64, now time.Time) (*Session, error) {
	if open := l.Open(); open != nil {
		return nil, &AlreadyOpenError{TimeboxID: timeboxID, SessionID: open.ID}
	}
	*l = append(*l, Session{TimeboxID: timeboxID, StartedAt: now})
	return &(*l)[len(*l)-1], nil
}

// CloseSession ends the session with the given reason
func (l Ledger) CloseSession(sessionID int64, reason EndReason, now time.Time) (*Session, error) {
	for i := range l {
		if l[i].ID != sessionID {
			continue
		}
		s := &l[i]
		if !s.IsOpen() {
			return nil, ErrSessionClosed
		}
		at := now
		r := reason
		if reason == EndCancelled {
			s.CancelledAt = &at
		} else {
			s.StoppedAt = &at
		}
		s.EndReason = &r
		return s, nil
	}
	return nil, ErrSessionNotFound
}

// ActualDuration sums the elapsed time of every non-cancelled session,
// counting the open one up to now.
func (l Ledger) ActualDuration(now time.Time) time.Duration {
	var total time.Duration
	for i := range l {
		total += l[i].Elapsed(now)
	}
	return total
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
