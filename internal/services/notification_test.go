package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/ports"
	portsmocks "github.com/timeboxd/timeboxd/internal/ports/mocks"
)

func TestNotify_PermissionFlow(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(n *portsmocks.MockNotifier)
		wantSent  bool
		wantError bool
	}{
		{
			name: "already granted",
			setup: func(n *portsmocks.MockNotifier) {
				n.EXPECT().PermissionGranted(mock.Anything).Return(true, nil)
				n.EXPECT().Send(mock.Anything, "Time's up", "body").Return(nil).Once()
			},
			wantSent: true,
		},
		{
			name: "granted on request",
			setup: func(n *portsmocks.MockNotifier) {
				n.EXPECT().PermissionGranted(mock.Anything).Return(false, nil)
				n.EXPECT().RequestPermission(mock.Anything).Return(true, nil)
				n.EXPECT().Send(mock.Anything, "Time's up", "body").Return(nil).Once()
			},
			wantSent: true,
		},
		{
			name: "denied skips send",
			setup: func(n *portsmocks.MockNotifier) {
				n.EXPECT().PermissionGranted(mock.Anything).Return(false, nil)
				n.EXPECT().RequestPermission(mock.Anything).Return(false, nil)
			},
			wantSent: false,
		},
		{
			name: "permission check error",
			setup: func(n *portsmocks.MockNotifier) {
				n.EXPECT().PermissionGranted(mock.Anything).Return(false, errors.New("dbus unavailable"))
			},
			wantError: true,
		},
		{
			name: "send error",
			setup: func(n *portsmocks.MockNotifier) {
				n.EXPECT().PermissionGranted(mock.Anything).Return(true, nil)
				n.EXPECT().Send(mock.Anything, "Time's up", "body").Return(errors.New("exit status 1"))
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := portsmocks.NewMockNotifier(t)
			sound := portsmocks.NewMockSoundPlayer(t)
			sound.EXPECT().Play(ports.CueOvertime).Return(nil).Once()
			tt.setup(notifier)

			service := NewNotificationService(notifier, sound, true, time.Second)
			sent, err := service.Notify(context.Background(), Notification{Title: "Time's up", Body: "body", Cue: ports.CueOvertime})

			if tt.wantError {
				assert.Error(t, err)
				assert.False(t, sent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSent, sent)
		})
	}
}

func TestNotify_DisabledOnlyPlaysSound(t *testing.T) {
	notifier := portsmocks.NewMockNotifier(t)
	sound := portsmocks.NewMockSoundPlayer(t)
	sound.EXPECT().Play(ports.CueAutoStop).Return(errors.New("afplay missing")).Once()

	service := NewNotificationService(notifier, sound, false, time.Second)
	sent, err := service.Notify(context.Background(), Notification{Title: "t", Body: "b", Cue: ports.CueAutoStop})

	require.NoError(t, err)
	assert.False(t, sent)
}

func TestAutoStopNotification_Wording(t *testing.T) {
	one := AutoStopNotification([]domain.StoppedTimebox{{ID: 1, Intention: "Write report"}}, 5)
	assert.Equal(t, "Timebox stopped", one.Title)
	assert.Equal(t, `Stopped "Write report" after 5 minutes of inactivity`, one.Body)
	assert.Equal(t, ports.CueAutoStop, one.Cue)

	two := AutoStopNotification([]domain.StoppedTimebox{{ID: 1, Intention: "Write report"}, {ID: 2, Intention: "Review"}}, 1)
	assert.Equal(t, "Timeboxes stopped", two.Title)
	assert.Equal(t, "Stopped 2 timeboxes after 1 minute of inactivity: Write report, Review", two.Body)
}

func TestOvertimeNotification_Wording(t *testing.T) {
	n := OvertimeNotification(domain.TimerState{Intention: "Write report", IntendedSeconds: 900, RemainingSeconds: -1})
	assert.Equal(t, "Time's up", n.Title)
	assert.Equal(t, `"Write report" ran past its 15 minutes`, n.Body)
	assert.Equal(t, ports.CueOvertime, n.Cue)

	odd := OvertimeNotification(domain.TimerState{Intention: "x", IntendedSeconds: 90})
	assert.Contains(t, odd.Body, "1m30s")
}
