package integration_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeboxd/timeboxd/test/integration/harness"
)

func TestTimeboxesLifecycle(t *testing.T) {
	tests := []struct {
		name         string
		setup        []string
		event        string
		wantExitCode int
		wantStatus   string
		wantReasons  []string
		validate     func(t *testing.T, env *harness.TestEnvironment, result harness.Result)
	}{
		{
			name:         "start",
			event:        "start",
			wantExitCode: 0,
			wantStatus:   "in_progress",
			wantReasons:  []string{""},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				harness.AssertStdoutContains(t, result, "Timebox 1")
				harness.AssertStderrEmpty(t, result)
			},
		},
		{
			name:         "stop",
			setup:        []string{"start"},
			event:        "stop",
			wantExitCode: 0,
			wantStatus:   "stopped",
			wantReasons:  []string{"stopped"},
		},
		{
			name:         "stop twice is a no-op",
			setup:        []string{"start", "stop"},
			event:        "stop",
			wantExitCode: 0,
			wantStatus:   "stopped",
			wantReasons:  []string{"stopped"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				harness.AssertStdoutContains(t, result, "Timebox 1 is already stopped")
			},
		},
		{
			name:         "finish",
			setup:        []string{"start"},
			event:        "finish",
			wantExitCode: 0,
			wantStatus:   "completed",
			wantReasons:  []string{"completed"},
		},
		{
			name:         "cancel",
			setup:        []string{"start"},
			event:        "cancel",
			wantExitCode: 0,
			wantStatus:   "cancelled",
			wantReasons:  []string{"cancelled"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				// cancelled sessions do not count
				harness.AssertActualDurationSeconds(t, env, 1, 0, 0)
			},
		},
		{
			name:         "pause then resume opens a new session",
			setup:        []string{"start", "pause"},
			event:        "start",
			wantExitCode: 0,
			wantStatus:   "in_progress",
			wantReasons:  []string{"paused", ""},
		},
		{
			name:         "restart a completed timebox",
			setup:        []string{"start", "finish"},
			event:        "start",
			wantExitCode: 0,
			wantStatus:   "in_progress",
			wantReasons:  []string{"completed", ""},
		},
		{
			name:         "start while running fails",
			setup:        []string{"start"},
			event:        "start",
			wantExitCode: 1,
			wantStatus:   "in_progress",
			wantReasons:  []string{""},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				harness.AssertStderrContains(t, result, "Error:")
			},
		},
		{
			name:         "finish before start fails",
			event:        "finish",
			wantExitCode: 1,
			wantStatus:   "not_started",
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				harness.AssertStderrContains(t, result, "cannot finish a timebox that is not_started")
			},
		},
		{
			name:         "stop after time with time left fails",
			setup:        []string{"start"},
			event:        "stop-after-time",
			wantExitCode: 1,
			wantStatus:   "in_progress",
			wantReasons:  []string{""},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				harness.AssertStderrContains(t, result, "not up yet")
				assert.Nil(t, harness.ViewTimebox(t, env, 1).AfterTimeStoppedAt)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)
			added := harness.AddTimebox(t, env, "Write docs", "25")
			for _, event := range tt.setup {
				harness.AssertSuccess(t, harness.ApplyEvent(t, env, event, added.ID))
			}

			result := harness.ApplyEvent(t, env, tt.event, added.ID)

			harness.AssertExitCode(t, result, tt.wantExitCode)
			harness.AssertTimeboxStatus(t, env, added.ID, tt.wantStatus)
			harness.AssertEndReasons(t, env, added.ID, tt.wantReasons...)
			if tt.validate != nil {
				tt.validate(t, env, result)
			}
		})
	}
}

func TestTimeboxesLifecycle_UnknownTimebox(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.ApplyEvent(t, env, "start", 42)

	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "Error:")
}

func TestTimeboxesStopAfterTime(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	added := harness.AddTimebox(t, env, "Quick", "1s", "--start")

	// remaining is counted in whole seconds, so wait until it reads -1
	time.Sleep(2500 * time.Millisecond)

	harness.AssertSuccess(t, harness.ApplyEvent(t, env, "stop-after-time", added.ID))

	harness.AssertTimeboxStatus(t, env, added.ID, "completed")
	harness.AssertEndReasons(t, env, added.ID, "after_time")
	harness.AssertActualDurationSeconds(t, env, added.ID, 1, 30)
	tb := harness.ViewTimebox(t, env, added.ID)
	assert.NotNil(t, tb.AfterTimeStoppedAt)
	assert.Negative(t, tb.RemainingSeconds)

	// a restart clears the marker
	harness.AssertSuccess(t, harness.ApplyEvent(t, env, "start", added.ID))
	assert.Nil(t, harness.ViewTimebox(t, env, added.ID).AfterTimeStoppedAt)
}

func TestTimeboxesEditAndHistory(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	added := harness.AddTimebox(t, env, "Draft", "10")

	result := harness.Run(t, env, "timeboxes", "edit", "1", "--intention", "Draft v2", "--duration", "15")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, `Timebox 1 updated: "Draft v2"`)

	tb := harness.ViewTimebox(t, env, added.ID)
	assert.Equal(t, "Draft v2", tb.Intention)
	assert.Equal(t, int64(900), tb.IntendedSeconds)

	result = harness.Run(t, env, "timeboxes", "history", "1")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "intention")
	harness.AssertStdoutContains(t, result, "Draft v2")

	result = harness.Run(t, env, "timeboxes", "edit", "1")
	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "nothing to edit")
}

func TestTimeboxesArchiveReorderDelete(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	harness.AddTimebox(t, env, "First", "5")
	harness.AddTimebox(t, env, "Second", "5")
	harness.AddTimebox(t, env, "Third", "5")

	ids := func(flags ...string) []int64 {
		t.Helper()
		list := harness.ListTimeboxes(t, env, flags...)
		out := make([]int64, len(list))
		for i, tb := range list {
			out[i] = tb.ID
		}
		return out
	}

	harness.AssertSuccess(t, harness.Run(t, env, "timeboxes", "reorder", "3", "1", "2"))
	assert.Equal(t, []int64{3, 1, 2}, ids())

	harness.AssertSuccess(t, harness.ApplyEvent(t, env, "archive", 1))
	assert.Equal(t, []int64{3, 2}, ids())
	assert.Equal(t, []int64{1}, ids("--archived"))

	harness.AssertSuccess(t, harness.ApplyEvent(t, env, "unarchive", 1))
	assert.Empty(t, ids("--archived"))

	harness.AssertSuccess(t, harness.ApplyEvent(t, env, "start", 2))
	require.Equal(t, []int64{2}, ids("--active"))
	harness.AssertTimeboxStatus(t, env, 2, "in_progress")

	result := harness.Run(t, env, "timeboxes", "del", "-f", "2")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Timebox 2 deleted")
	assert.NotContains(t, ids(), int64(2))
	harness.AssertStdoutNotContains(t, harness.Run(t, env, "timeboxes", "list"), "Second")

	harness.AssertFailure(t, harness.Run(t, env, "timeboxes", "del", "-f", "2"))
}

func TestTimeboxesListTable(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.Run(t, env, "timeboxes", "list")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Total: 0 timeboxes")

	harness.AddTimebox(t, env, "Inbox zero", "1h")
	result = harness.Run(t, env, "timeboxes")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "INTENTION")
	harness.AssertStdoutContains(t, result, "Inbox zero")
	harness.AssertStdoutContains(t, result, "1h")
	harness.AssertStdoutContains(t, result, "Total: 1 timeboxes")
}
