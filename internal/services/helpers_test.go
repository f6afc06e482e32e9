package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapterstorage "github.com/timeboxd/timeboxd/internal/adapters/storage"
	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/ports"
	portsmocks "github.com/timeboxd/timeboxd/internal/ports/mocks"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// manualClock only moves when told to
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock(at time.Time) *manualClock {
	return &manualClock{now: at}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = at
}

type testEnv struct {
	clock         *manualClock
	notifier      *portsmocks.MockNotifier
	notifications *NotificationService
	repo          *adapterstorage.SQLiteRepository
	sound         *portsmocks.MockSoundPlayer
	timeboxes     *TimeboxService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo, err := adapterstorage.NewSQLiteRepository(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	clock := newManualClock(t0)
	notifier := portsmocks.NewMockNotifier(t)
	sound := portsmocks.NewMockSoundPlayer(t)
	sound.EXPECT().Play(mock.Anything).Return(nil).Maybe()

	return &testEnv{
		clock:         clock,
		notifier:      notifier,
		notifications: NewNotificationService(notifier, sound, true, time.Second),
		repo:          repo,
		sound:         sound,
		timeboxes:     NewTimeboxService(repo, clock.Now, 5*time.Second),
	}
}

// allowNotifications grants permission for every check
func (e *testEnv) allowNotifications() {
	e.notifier.EXPECT().PermissionGranted(mock.Anything).Return(true, nil).Maybe()
}

func (e *testEnv) create(t *testing.T, intention string, seconds int64) *domain.Timebox {
	t.Helper()
	tb, err := e.timeboxes.Create(context.Background(), domain.NewTimeboxParams{Intention: intention, IntendedDuration: seconds})
	require.NoError(t, err)
	return tb
}

func (e *testEnv) startAt(t *testing.T, id int64, at time.Time) *domain.Timebox {
	t.Helper()
	e.clock.Set(at)
	tb, err := e.timeboxes.Start(context.Background(), id)
	require.NoError(t, err)
	return tb
}

// failingRepo fails transitions for one timebox id
type failingRepo struct {
	ports.TimeboxRepository
	failID int64
}

func (r *failingRepo) ApplyTransition(ctx context.Context, id int64, event domain.Event, at time.Time) (*domain.Timebox, error) {
	if id == r.failID {
		return nil, errors.New("disk I/O error")
	}
	return r.TimeboxRepository.ApplyTransition(ctx, id, event, at)
}
