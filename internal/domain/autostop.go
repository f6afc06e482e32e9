package domain

import "time"

// StoppedTimebox identifies a timebox in the auto-stop banner
type StoppedTimebox struct {
	ID        int64
	Intention string
}

// FailedStop records an auto-stop that could not be persisted
type FailedStop struct {
	Error     string
	ID        int64
	Intention string
}

// AutoStoppedInfo is the "while you were away" snapshot. It stays until the
// user dismisses it, independently of idle detection re-arming.
type AutoStoppedInfo struct {
	Failed    []FailedStop
	StoppedAt time.Time
	Timeboxes []StoppedTimebox
}
