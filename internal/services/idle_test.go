package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/timeboxd/timeboxd/internal/domain"
	portsmocks "github.com/timeboxd/timeboxd/internal/ports/mocks"
)

func newIdleMonitor(env *testEnv, source *portsmocks.MockIdleSource) *IdleMonitor {
	return NewIdleMonitor(source, env.repo, env.timeboxes, env.notifications, time.Second)
}

func TestIdleMonitor_BatchStopAndBannerRetention(t *testing.T) {
	env := newTestEnv(t)
	env.allowNotifications()
	env.notifier.EXPECT().Send(mock.Anything, "Timeboxes stopped", mock.MatchedBy(func(body string) bool {
		return strings.HasPrefix(body, "Stopped 2 timeboxes after 5 minutes of inactivity: ") &&
			strings.Contains(body, "Write report") && strings.Contains(body, "Review")
	})).Return(nil).Once()
	ctx := context.Background()

	a := env.create(t, "Write report", 900)
	b := env.create(t, "Review", 900)
	env.startAt(t, a.ID, t0)
	env.startAt(t, b.ID, t0)

	source := portsmocks.NewMockIdleSource(t)
	source.EXPECT().IdleSeconds(mock.Anything).Return(int64(300), nil).Once()
	source.EXPECT().IdleSeconds(mock.Anything).Return(int64(4), nil).Once()

	monitor := newIdleMonitor(env, source)
	pollAt := t0.Add(10 * time.Minute)
	monitor.Poll(ctx, pollAt)

	for _, id := range []int64{a.ID, b.ID} {
		got, err := env.timeboxes.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusStopped, got.Status)
		require.NotNil(t, got.AutoStoppedAt)
		assert.True(t, got.AutoStoppedAt.Equal(pollAt))
		assert.Equal(t, domain.EndAutoStopped, *got.Sessions[0].EndReason)
	}
	assert.True(t, monitor.HasAutoStopped())

	info := monitor.AutoStoppedInfo()
	require.NotNil(t, info)
	assert.True(t, info.StoppedAt.Equal(pollAt))
	assert.ElementsMatch(t, []domain.StoppedTimebox{{ID: a.ID, Intention: "Write report"}, {ID: b.ID, Intention: "Review"}}, info.Timeboxes)
	assert.Empty(t, info.Failed)

	// User is back: flag re-arms, banner stays
	monitor.Poll(ctx, pollAt.Add(30*time.Second))
	assert.False(t, monitor.HasAutoStopped())
	require.NotNil(t, monitor.AutoStoppedInfo())

	monitor.Dismiss()
	assert.Nil(t, monitor.AutoStoppedInfo())
}

func TestIdleMonitor_SingleTimeboxWording(t *testing.T) {
	env := newTestEnv(t)
	env.allowNotifications()
	env.notifier.EXPECT().Send(mock.Anything, "Timebox stopped", `Stopped "Deep work" after 5 minutes of inactivity`).Return(nil).Once()

	tb := env.create(t, "Deep work", 1800)
	env.startAt(t, tb.ID, t0)

	source := portsmocks.NewMockIdleSource(t)
	source.EXPECT().IdleSeconds(mock.Anything).Return(int64(301), nil)

	newIdleMonitor(env, source).Poll(context.Background(), t0.Add(6*time.Minute))
}

func TestIdleMonitor_FiresOncePerIdlePeriod(t *testing.T) {
	env := newTestEnv(t)
	env.allowNotifications()
	env.notifier.EXPECT().Send(mock.Anything, "Timebox stopped", mock.Anything).Return(nil).Twice()
	ctx := context.Background()

	first := env.create(t, "First", 900)
	second := env.create(t, "Second", 900)
	env.startAt(t, first.ID, t0)

	source := portsmocks.NewMockIdleSource(t)
	source.EXPECT().IdleSeconds(mock.Anything).Return(int64(600), nil).Twice()
	source.EXPECT().IdleSeconds(mock.Anything).Return(int64(0), nil).Once()
	source.EXPECT().IdleSeconds(mock.Anything).Return(int64(600), nil).Once()

	monitor := newIdleMonitor(env, source)
	monitor.Poll(ctx, t0.Add(10*time.Minute))

	// Still idle: the flag holds even though something new is running
	env.startAt(t, second.ID, t0.Add(10*time.Minute))
	monitor.Poll(ctx, t0.Add(11*time.Minute))
	got, err := env.timeboxes.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)

	monitor.Poll(ctx, t0.Add(12*time.Minute))
	monitor.Poll(ctx, t0.Add(30*time.Minute))
	got, err = env.timeboxes.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStopped, got.Status)

	info := monitor.AutoStoppedInfo()
	require.NotNil(t, info)
	assert.Len(t, info.Timeboxes, 2, "undismissed batches accumulate")
}

func TestIdleMonitor_InertStates(t *testing.T) {
	tests := []struct {
		name     string
		disabled bool
		setup    func(source *portsmocks.MockIdleSource)
	}{
		{
			name:     "feature disabled",
			disabled: true,
			setup:    func(source *portsmocks.MockIdleSource) {},
		},
		{
			name: "platform unsupported",
			setup: func(source *portsmocks.MockIdleSource) {
				source.EXPECT().IdleSeconds(mock.Anything).Return(int64(0), domain.ErrPlatformUnsupported)
			},
		},
		{
			name: "unsupported platform reports zero",
			setup: func(source *portsmocks.MockIdleSource) {
				source.EXPECT().IdleSeconds(mock.Anything).Return(int64(0), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()

			if tt.disabled {
				require.NoError(t, env.repo.SetIdleSettings(ctx, domain.IdleSettings{Enabled: false, TimeoutMinutes: 1}))
			}

			tb := env.create(t, "Focus", 900)
			env.startAt(t, tb.ID, t0)

			source := portsmocks.NewMockIdleSource(t)
			tt.setup(source)

			monitor := newIdleMonitor(env, source)
			monitor.Poll(ctx, t0.Add(time.Hour))

			got, err := env.timeboxes.Get(ctx, tb.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusInProgress, got.Status)
			assert.False(t, monitor.HasAutoStopped())
			assert.Nil(t, monitor.AutoStoppedInfo())
		})
	}
}

func TestIdleMonitor_PartialFailure(t *testing.T) {
	env := newTestEnv(t)
	env.allowNotifications()
	env.notifier.EXPECT().Send(mock.Anything, "Timebox stopped", mock.Anything).Return(nil).Once()
	ctx := context.Background()

	ok := env.create(t, "Works", 900)
	broken := env.create(t, "Breaks", 900)
	env.startAt(t, ok.ID, t0)
	env.startAt(t, broken.ID, t0)

	flaky := NewTimeboxService(&failingRepo{TimeboxRepository: env.repo, failID: broken.ID}, env.clock.Now, time.Second)
	source := portsmocks.NewMockIdleSource(t)
	source.EXPECT().IdleSeconds(mock.Anything).Return(int64(900), nil)

	monitor := NewIdleMonitor(source, env.repo, flaky, env.notifications, time.Second)
	monitor.Poll(ctx, t0.Add(20*time.Minute))

	info := monitor.AutoStoppedInfo()
	require.NotNil(t, info)
	assert.Equal(t, []domain.StoppedTimebox{{ID: ok.ID, Intention: "Works"}}, info.Timeboxes)
	require.Len(t, info.Failed, 1)
	assert.Equal(t, broken.ID, info.Failed[0].ID)
	assert.Contains(t, info.Failed[0].Error, "disk I/O error")
	assert.True(t, monitor.HasAutoStopped())

	got, err := env.timeboxes.Get(ctx, broken.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)
}

// A manual stop racing the idle auto-stop closes the session exactly once
func TestIdleMonitor_RacesManualStop(t *testing.T) {
	for i := 0; i < 10; i++ {
		env := newTestEnv(t)
		env.allowNotifications()
		env.notifier.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
		ctx := context.Background()

		tb := env.create(t, "Contested", 900)
		env.startAt(t, tb.ID, t0)
		env.clock.Set(t0.Add(10 * time.Minute))

		source := portsmocks.NewMockIdleSource(t)
		source.EXPECT().IdleSeconds(mock.Anything).Return(int64(600), nil)
		monitor := newIdleMonitor(env, source)

		var wg sync.WaitGroup
		var stopErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, stopErr = env.timeboxes.Stop(ctx, tb.ID)
		}()
		go func() {
			defer wg.Done()
			monitor.Poll(ctx, t0.Add(10*time.Minute))
		}()
		wg.Wait()

		require.NoError(t, stopErr)

		got, err := env.timeboxes.Get(ctx, tb.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusStopped, got.Status)
		require.Len(t, got.Sessions, 1)
		assert.False(t, got.Sessions[0].IsOpen())

		idleWon := got.AutoStoppedAt != nil
		assert.Equal(t, idleWon, *got.Sessions[0].EndReason == domain.EndAutoStopped)

		info := monitor.AutoStoppedInfo()
		if idleWon {
			require.NotNil(t, info)
			assert.Len(t, info.Timeboxes, 1)
		} else {
			assert.Nil(t, info)
		}
	}
}
