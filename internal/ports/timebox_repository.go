package ports

import (
	"context"
	"time"

	"github.com/timeboxd/timeboxd/internal/domain"
)

// TimeboxReader reads timeboxes together with their session ledger
type TimeboxReader interface {
	Get(ctx context.Context, id int64) (*domain.Timebox, error)
	ListActive(ctx context.Context) ([]domain.Timebox, error)
	ListArchived(ctx context.Context) ([]domain.Timebox, error)
	ListSessions(ctx context.Context, timeboxID int64) ([]domain.Session, error)
	ListToday(ctx context.Context, now time.Time) ([]domain.Timebox, error)
}

// TimeboxWriter creates, edits, deletes, and reorders timeboxes
type TimeboxWriter interface {
	Create(ctx context.Context, params domain.NewTimeboxParams, at time.Time) (*domain.Timebox, error)
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, items []domain.ReorderItem, at time.Time) error
	Update(ctx context.Context, id int64, update domain.TimeboxUpdate, at time.Time) (*domain.Timebox, error)
}

// TimeboxLifecycle applies state machine events and ledger markers atomically
type TimeboxLifecycle interface {
	ApplyTransition(ctx context.Context, id int64, event domain.Event, at time.Time) (*domain.Timebox, error)
	ExpireSession(ctx context.Context, sessionID int64, at time.Time) error
	SetArchived(ctx context.Context, id int64, archived bool, at time.Time) (*domain.Timebox, error)
}

// TimeboxChangeLogReader reads the edit history of a timebox
type TimeboxChangeLogReader interface {
	ChangeLog(ctx context.Context, timeboxID int64) ([]domain.TimeboxChange, error)
}

// TimeboxRepository is the composite interface
type TimeboxRepository interface {
	TimeboxReader
	TimeboxWriter
	TimeboxLifecycle
	TimeboxChangeLogReader
	Close() error
}

// SettingsStore persists the key/value settings surface
type SettingsStore interface {
	GetIdleSettings(ctx context.Context) (domain.IdleSettings, error)
	SetIdleSettings(ctx context.Context, settings domain.IdleSettings) error
}
