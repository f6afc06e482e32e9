package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapterstorage "github.com/timeboxd/timeboxd/internal/adapters/storage"
	"github.com/timeboxd/timeboxd/internal/domain"
	portsmocks "github.com/timeboxd/timeboxd/internal/ports/mocks"
	"github.com/timeboxd/timeboxd/internal/services"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	now       time.Time
	repo      *adapterstorage.SQLiteRepository
	timeboxes *services.TimeboxService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo, err := adapterstorage.NewSQLiteRepository(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	f := &fixture{now: t0, repo: repo}
	f.timeboxes = services.NewTimeboxService(repo, func() time.Time { return f.now }, time.Second)
	return f
}

func (f *fixture) create(t *testing.T, intention string, seconds int64) *domain.Timebox {
	t.Helper()
	tb, err := f.timeboxes.Create(context.Background(), domain.NewTimeboxParams{Intention: intention, IntendedDuration: seconds})
	require.NoError(t, err)
	return tb
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// load runs the list query synchronously
func load(t *testing.T, m *Model) {
	t.Helper()
	m.Update(m.loadTimeboxes()())
}

// press sends a key and feeds the resulting action back into the model
func press(t *testing.T, m *Model, k string) tea.Msg {
	t.Helper()
	_, cmd := m.Update(runes(k))
	require.NotNil(t, cmd)
	msg := cmd()
	m.Update(msg)
	return msg
}

func TestModel_StartAndStopSelected(t *testing.T) {
	f := newFixture(t)
	tb := f.create(t, "Write tests", 900)

	m := NewModel(f.timeboxes, nil, nil, time.Second, 0)
	load(t, m)
	require.NotNil(t, m.Selected())

	msg := press(t, m, "s")
	done, ok := msg.(actionDoneMsg)
	require.True(t, ok)
	assert.NoError(t, done.err)

	got, err := f.timeboxes.Get(context.Background(), tb.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)

	f.now = t0.Add(5 * time.Minute)
	press(t, m, "x")
	got, err = f.timeboxes.Get(context.Background(), tb.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStopped, got.Status)
}

func TestModel_RejectedActionShowsError(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Not running", 900)

	m := NewModel(f.timeboxes, nil, nil, time.Second, 0)
	load(t, m)

	msg := press(t, m, "f")
	done := msg.(actionDoneMsg)
	assert.ErrorIs(t, done.err, domain.ErrInvalidTransition)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")
}

func TestModel_NavigationStaysInBounds(t *testing.T) {
	f := newFixture(t)
	f.create(t, "A", 600)
	f.create(t, "B", 600)

	m := NewModel(f.timeboxes, nil, nil, time.Second, 0)
	load(t, m)

	m.Update(runes("k"))
	assert.Equal(t, 0, m.selected)
	m.Update(runes("j"))
	m.Update(runes("j"))
	m.Update(runes("j"))
	assert.Equal(t, 1, m.selected)
}

func TestModel_EmptyListIgnoresActions(t *testing.T) {
	f := newFixture(t)
	m := NewModel(f.timeboxes, nil, nil, time.Second, 0)
	load(t, m)

	_, cmd := m.Update(runes("s"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "No timeboxes today")
}

func TestModel_ShowsOvertime(t *testing.T) {
	f := newFixture(t)
	tb := f.create(t, "Long call", 900)
	_, err := f.timeboxes.Start(context.Background(), tb.ID)
	require.NoError(t, err)

	f.now = t0.Add(16 * time.Minute)
	m := NewModel(f.timeboxes, nil, nil, time.Second, 0)
	load(t, m)

	assert.Contains(t, m.View(), "+01:00")
}

func TestModel_AwayBannerDismiss(t *testing.T) {
	f := newFixture(t)
	tb := f.create(t, "Deep work", 1800)
	_, err := f.timeboxes.Start(context.Background(), tb.ID)
	require.NoError(t, err)

	source := portsmocks.NewMockIdleSource(t)
	source.EXPECT().IdleSeconds(mock.Anything).Return(int64(600), nil)
	sound := portsmocks.NewMockSoundPlayer(t)
	sound.EXPECT().Play(mock.Anything).Return(nil).Maybe()
	notifications := services.NewNotificationService(portsmocks.NewMockNotifier(t), sound, false, time.Second)

	monitor := services.NewIdleMonitor(source, f.repo, f.timeboxes, notifications, time.Second)
	monitor.Poll(context.Background(), t0.Add(10*time.Minute))

	m := NewModel(f.timeboxes, nil, monitor, time.Second, 0)
	load(t, m)

	view := m.View()
	assert.Contains(t, view, "While you were away")
	assert.Contains(t, view, "Deep work")

	m.Update(runes("d"))
	assert.Nil(t, monitor.AutoStoppedInfo())
	assert.NotContains(t, m.View(), "While you were away")
}

func TestModel_StopInOvertimeCompletesAfterTime(t *testing.T) {
	f := newFixture(t)
	tb := f.create(t, "Long call", 900)
	_, err := f.timeboxes.Start(context.Background(), tb.ID)
	require.NoError(t, err)

	f.now = t0.Add(16 * time.Minute)
	m := NewModel(f.timeboxes, nil, nil, time.Second, 0)
	load(t, m)

	msg := press(t, m, "x")
	done, ok := msg.(actionDoneMsg)
	require.True(t, ok)
	assert.NoError(t, done.err)
	assert.Equal(t, string(domain.EventStopAfterTime), done.action)

	got, err := f.timeboxes.Get(context.Background(), tb.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.AfterTimeStoppedAt)
	assert.True(t, got.AfterTimeStoppedAt.Equal(t0.Add(16*time.Minute)))
}
