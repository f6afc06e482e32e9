package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyStopped      = errors.New("timebox already stopped")
	ErrInvalidSettings     = errors.New("invalid settings")
	ErrInvalidTimebox      = errors.New("invalid timebox")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvariantViolation  = errors.New("ledger invariant violation")
	ErrPermissionDenied    = errors.New("notification permission denied")
	ErrPlatformUnsupported = errors.New("platform not supported")
	ErrSessionClosed       = errors.New("session already closed")
	ErrSessionNotFound     = errors.New("session not found")
	ErrTimeboxNotFound     = errors.New("timebox not found")
)

// ErrTimeNotUp rejects ending a timebox after time while its countdown is still positive
var ErrTimeNotUp = fmt.Errorf("%w: time is not up yet", ErrInvalidTransition)

// AlreadyOpenError is returned when a session is opened for a timebox that
// already has one open. It always matches ErrInvariantViolation.
type AlreadyOpenError struct {
	SessionID int64
	TimeboxID int64
}

func (e *AlreadyOpenError) Error() string {
	return fmt.Sprintf("timebox %d already has open session %d", e.TimeboxID, e.SessionID)
}

func (e *AlreadyOpenError) Unwrap() error {
	return ErrInvariantViolation
}

// PersistenceError wraps a store failure on a mutating call
type PersistenceError struct {
	Err error
	Op  string
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// InvalidTransitionError describes a rejected lifecycle event
type InvalidTransitionError struct {
	Event Event
	From  TimeboxStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a timebox that is %s", e.Event, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ValidationError reports a rejected input field. It matches ErrInvalidTimebox.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTimebox
}
