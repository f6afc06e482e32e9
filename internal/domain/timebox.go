package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeboxStatus represents where a timebox is in its lifecycle
type TimeboxStatus string

const (
	StatusCancelled  TimeboxStatus = "cancelled"
	StatusCompleted  TimeboxStatus = "completed"
	StatusInProgress TimeboxStatus = "in_progress"
	StatusNotStarted TimeboxStatus = "not_started"
	StatusPaused     TimeboxStatus = "paused"
	StatusStopped    TimeboxStatus = "stopped"
)

// Status symbols (Unicode)
const (
	SymbolCancelled  = "✕"
	SymbolCompleted  = "✓"
	SymbolInProgress = "●"
	SymbolNotStarted = "○"
	SymbolPaused     = "◑"
	SymbolStopped    = "■"
)

// Symbol returns the display glyph for the status
func (s TimeboxStatus) Symbol() string {
	switch s {
	case StatusCancelled:
		return SymbolCancelled
	case StatusCompleted:
		return SymbolCompleted
	case StatusInProgress:
		return SymbolInProgress
	case StatusPaused:
		return SymbolPaused
	case StatusStopped:
		return SymbolStopped
	default:
		return SymbolNotStarted
	}
}

// Timebox is a named unit of intended focused work (domain entity).
// IntendedDuration is always in seconds.
type Timebox struct {
	AfterTimeStoppedAt *time.Time
	ArchivedAt         *time.Time
	AutoStoppedAt      *time.Time
	CanceledAt         *time.Time
	CompletedAt        *time.Time
	CreatedAt          time.Time
	DisplayOrder       *int
	ExternalRef        string
	FinishedAt         *time.Time
	ID                 int64
	IntendedDuration   int64
	Intention          string
	Notes              *string
	PausedAt           *time.Time
	Sessions           Ledger
	StartedAt          *time.Time
	Status             TimeboxStatus
	UpdatedAt          time.Time
}

// IsArchived reports whether the timebox is hidden from the today list
func (t *Timebox) IsArchived() bool {
	return t.ArchivedAt != nil
}

// ActualDuration is the time spent on the timebox, recomputed from the ledger
func (t *Timebox) ActualDuration(now time.Time) time.Duration {
	return t.Sessions.ActualDuration(now)
}

// Remaining returns intended minus actual duration in whole seconds.
// Negative values mean overtime.
func (t *Timebox) Remaining(now time.Time) int64 {
	return t.IntendedDuration - int64(t.ActualDuration(now)/time.Second)
}

// NewTimeboxParams holds the user input for a new timebox
type NewTimeboxParams struct {
	ExternalRef      string
	IntendedDuration int64
	Intention        string
	Notes            *string
}

// Validate normalizes and checks the parameters
func (p *NewTimeboxParams) Validate() error {
	p.Intention = strings.TrimSpace(p.Intention)
	if p.Intention == "" {
		return &ValidationError{Field: "intention", Reason: "must not be empty"}
	}
	if p.IntendedDuration <= 0 {
		return &ValidationError{Field: "intended_duration", Reason: "must be positive"}
	}
	return nil
}

// ParseIntendedDuration converts user input to seconds. A bare number is
// minutes; anything else must be a Go duration such as 1h30m or 90s.
func ParseIntendedDuration(input string) (int64, error) {
	input = strings.TrimSpace(input)
	if minutes, err := strconv.ParseInt(input, 10, 64); err == nil {
		if minutes <= 0 {
			return 0, &ValidationError{Field: "intended_duration", Reason: "must be positive"}
		}
		if minutes > math.MaxInt64/60 {
			return 0, &ValidationError{Field: "intended_duration", Reason: "is too large"}
		}
		return minutes * 60, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, &ValidationError{Field: "intended_duration", Reason: fmt.Sprintf("%q is neither minutes nor a duration", input)}
	}
	if d < time.Second {
		return 0, &ValidationError{Field: "intended_duration", Reason: "must be at least one second"}
	}
	return int64(d / time.Second), nil
}

// TimeboxUpdate is a partial update; nil fields are left untouched.
type TimeboxUpdate struct {
	IntendedDuration *int64
	Intention        *string
	Notes            *string
}

// Validate normalizes and checks the update
func (u *TimeboxUpdate) Validate() error {
	if u.Intention != nil {
		trimmed := strings.TrimSpace(*u.Intention)
		if trimmed == "" {
			return &ValidationError{Field: "intention", Reason: "must not be empty"}
		}
		u.Intention = &trimmed
	}
	if u.IntendedDuration != nil && *u.IntendedDuration <= 0 {
		return &ValidationError{Field: "intended_duration", Reason: "must be positive"}
	}
	return nil
}

// TimeboxChange is one entry of the timebox change log
type TimeboxChange struct {
	ID                       int64
	NewIntendedDuration      *int64
	PreviousIntendedDuration *int64
	PreviousIntention        *string
	PreviousNotes            *string
	TimeboxID                int64
	UpdatedAt                time.Time
	UpdatedIntention         *string
	UpdatedNotes             *string
}

// DiffUpdate builds the change log entry for applying u to t.
// It returns nil when nothing would change.
func DiffUpdate(t *Timebox, u TimeboxUpdate, at time.Time) *TimeboxChange {
	change := &TimeboxChange{TimeboxID: t.ID, UpdatedAt: at}
	changed := false

	if u.Intention != nil && *u.Intention != t.Intention {
		prev := t.Intention
		change.PreviousIntention = &prev
		change.UpdatedIntention = u.Intention
		changed = true
	}
	if u.Notes != nil && !equalStringPtr(u.Notes, t.Notes) {
		change.PreviousNotes = t.Notes
		change.UpdatedNotes = u.Notes
		changed = true
	}
	if u.IntendedDuration != nil && *u.IntendedDuration != t.IntendedDuration {
		prev := t.IntendedDuration
		change.PreviousIntendedDuration = &prev
		change.NewIntendedDuration = u.IntendedDuration
		changed = true
	}

	if !changed {
		return nil
	}
	return change
}

// ReorderItem assigns a display position to a timebox
type ReorderItem struct {
	DisplayOrder int
	ID           int64
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
