package services

import (
	"context"
	"errors"
	"time"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/logging"
	"github.com/timeboxd/timeboxd/internal/ports"
)

// TimeboxService runs user-facing timebox operations through the lifecycle
// state machine and the store
type TimeboxService struct {
	callTimeout time.Duration
	clock       func() time.Time
	repo        ports.TimeboxRepository
}

// NewTimeboxService creates a new TimeboxService. A nil clock uses time.Now;
// a zero callTimeout disables the per-call deadline.
func NewTimeboxService(repo ports.TimeboxRepository, clock func() time.Time, callTimeout time.Duration) *TimeboxService {
	if clock == nil {
		clock = time.Now
	}
	return &TimeboxService{
		callTimeout: callTimeout,
		clock:       clock,
		repo:        repo,
	}
}

// Now returns the service clock reading
func (s *TimeboxService) Now() time.Time {
	return s.clock()
}

// Create adds a new not-started timebox
func (s *TimeboxService) Create(ctx context.Context, params domain.NewTimeboxParams) (*domain.Timebox, error) {
	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()

	tb, err := s.repo.Create(ctx, params, s.clock())
	if err != nil {
		return nil, wrapStoreError("create timebox", err)
	}

	logging.Logger.Info("Timebox created",
		"id", tb.ID,
		"intention", tb.Intention,
		"intended_seconds", tb.IntendedDuration)
	return tb, nil
}

// Update edits intention, notes or intended duration
func (s *TimeboxService) Update(ctx context.Context, id int64, update domain.TimeboxUpdate) (*domain.Timebox, error) {
	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()

	tb, err := s.repo.Update(ctx, id, update, s.clock())
	if err != nil {
		return nil, wrapStoreError("update timebox", err)
	}
	logging.Logger.Info("Timebox updated", "id", id)
	return tb, nil
}

// Get returns one timebox with its ledger
func (s *TimeboxService) Get(ctx context.Context, id int64) (*domain.Timebox, error) {
	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.repo.Get(ctx, id)
}

// Start opens a new session
func (s *TimeboxService) Start(ctx context.Context, id int64) (*domain.Timebox, error) {
	tb, _, err := s.ApplyAt(ctx, id, domain.EventStart, s.clock())
	return tb, err
}

// Stop interrupts the running session. Stopping an already stopped
// timebox is a no-op.
func (s *TimeboxService) Stop(ctx context.Context, id int64) (*domain.Timebox, error) {
	tb, _, err := s.ApplyAt(ctx, id, domain.EventStop, s.clock())
	return tb, err
}

// Finish marks the work as done
func (s *TimeboxService) Finish(ctx context.Context, id int64) (*domain.Timebox, error) {
	tb, _, err := s.ApplyAt(ctx, id, domain.EventFinish, s.clock())
	return tb, err
}

// Cancel abandons the running session; its time no longer counts
func (s *TimeboxService) Cancel(ctx context.Context, id int64) (*domain.Timebox, error) {
	tb, _, err := s.ApplyAt(ctx, id, domain.EventCancel, s.clock())
	return tb, err
}

// Pause closes the running session; Start resumes with a new one
func (s *TimeboxService) Pause(ctx context.Context, id int64) (*domain.Timebox, error) {
	tb, _, err := s.ApplyAt(ctx, id, domain.EventPause, s.clock())
	return tb, err
}

// ApplyAt applies a lifecycle event at the given time. applied is false when
// the event was a stop on an already stopped timebox, which is not an error.
func (s *TimeboxService) ApplyAt(ctx context.Context, id int64, event domain.Event, at time.Time) (tb *domain.Timebox, applied bool, err error) {
	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()

	tb, err = s.repo.ApplyTransition(ctx, id, event, at)
	if errors.Is(err, domain.ErrAlreadyStopped) {
		logging.Logger.Info("Timebox already stopped, ignoring", "id", id, "event", event)
		return tb, false, nil
	}
	if err != nil {
		logging.Logger.Warn("Transition rejected", "id", id, "event", event, "error", err)
		return nil, false, wrapStoreError(string(event)+" timebox", err)
	}

	logging.Logger.Info("Timebox transitioned", "id", id, "event", event, "status", tb.Status)
	return tb, true, nil
}

// Archive hides the timebox from the today list
func (s *TimeboxService) Archive(ctx context.Context, id int64) (*domain.Timebox, error) {
	return s.setArchived(ctx, id, true)
}

// Unarchive restores an archived timebox
func (s *TimeboxService) Unarchive(ctx context.Context, id int64) (*domain.Timebox, error) {
	return s.setArchived(ctx, id, false)
}

func (s *TimeboxService) setArchived(ctx context.Context, id int64, archived bool) (*domain.Timebox, error) {
	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()

	tb, err := s.repo.SetArchived(ctx, id, archived, s.clock())
	if err != nil {
		return nil, wrapStoreError("archive timebox", err)
	}
	logging.Logger.Info("Timebox archive state changed", "id", id, "archived", archived)
	return tb, nil
}

// Delete removes the timebox with its sessions and change log
func (s *TimeboxService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapStoreError("delete timebox", err)
	}
	logging.Logger.Info("Timebox deleted", "id", id)
	return nil
}

// Reorder assigns display positions. Applying the same items again is a no-op.
func (s *TimeboxService) Reorder(ctx context.Context, items []domain.ReorderItem) error {
	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := s.repo.Reorder(ctx, items, s.clock()); err != nil {
		return wrapStoreError("reorder timeboxes", err)
	}
	logging.Logger.Debug("Timeboxes reordered", "count", len(items))
	return nil
}

// ListActive returns the in-progress timeboxes
func (s *TimeboxService) ListActive(ctx context.Context) ([]domain.Timebox, error) {
	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.repo.ListActive(ctx)
}

// ListToday returns the unarchived timeboxes created today
func (s *TimeboxService) ListToday(ctx context.Context) ([]domain.Timebox, error) {
	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.repo.ListToday(ctx, s.clock())
}

// ListArchived returns archived timeboxes, most recently archived first
func (s *TimeboxService) ListArchived(ctx context.Context) ([]domain.Timebox, error) {
	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.repo.ListArchived(ctx)
}

// ChangeLog returns the edit history of a timebox
func (s *TimeboxService) ChangeLog(ctx context.Context, id int64) ([]domain.TimeboxChange, error) {
	ctx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()

	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ChangeLog(ctx, id)
}

// withCallTimeout bounds one boundary call
func withCallTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// domainErrors pass through to callers unwrapped
var domainErrors = []error{
	domain.ErrAlreadyStopped,
	domain.ErrInvalidSettings,
	domain.ErrInvalidTimebox,
	domain.ErrInvalidTransition,
	domain.ErrInvariantViolation,
	domain.ErrSessionClosed,
	domain.ErrSessionNotFound,
	domain.ErrTimeboxNotFound,
}

// wrapStoreError turns store I/O failures into PersistenceError
func wrapStoreError(op string, err error) error {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return &domain.PersistenceError{Op: op, Err: err}
}
