package harness

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Timebox mirrors the JSON printed by `timeboxes view --format json`
type Timebox struct {
	ActualSeconds      int64   `json:"actual_seconds"`
	AfterTimeStoppedAt *string `json:"after_time_stopped_at"`
	ExternalRef        string  `json:"external_ref"`
	ID                 int64   `json:"id"`
	IntendedSeconds    int64   `json:"intended_seconds"`
	Intention          string  `json:"intention"`
	RemainingSeconds   int64   `json:"remaining_seconds"`
	Sessions           []struct {
		EndReason string `json:"end_reason"`
		ID        int64  `json:"id"`
	} `json:"sessions"`
	Status string `json:"status"`
}

// IdleSettings mirrors the JSON printed by `settings idle --format json`
type IdleSettings struct {
	AutoStopEnabled    bool `json:"auto_stop_enabled"`
	IdleTimeoutMinutes int  `json:"idle_timeout_minutes"`
}

// RunJSON runs a command with --format json and decodes stdout into target
func RunJSON(tb testing.TB, env *TestEnvironment, target any, args ...string) {
	tb.Helper()

	result := Run(tb, env, append(args, "--format", "json")...)
	AssertSuccess(tb, result)
	require.NoError(tb, json.Unmarshal([]byte(result.Stdout), target), "stdout is not valid JSON\n%s", result)
}

// AddTimebox creates a timebox and returns it as stored
func AddTimebox(tb testing.TB, env *TestEnvironment, intention, duration string, flags ...string) Timebox {
	tb.Helper()

	var added Timebox
	RunJSON(tb, env, &added, append([]string{"timeboxes", "add", intention, duration}, flags...)...)
	require.NotZero(tb, added.ID)
	return added
}

// ViewTimebox loads one timebox with its sessions
func ViewTimebox(tb testing.TB, env *TestEnvironment, id int64) Timebox {
	tb.Helper()

	var view Timebox
	RunJSON(tb, env, &view, "timeboxes", "view", strconv.FormatInt(id, 10))
	return view
}

// ListTimeboxes returns the list output, filtered by flags such as --active
func ListTimeboxes(tb testing.TB, env *TestEnvironment, flags ...string) []Timebox {
	tb.Helper()

	var list []Timebox
	RunJSON(tb, env, &list, append([]string{"timeboxes", "list"}, flags...)...)
	return list
}

// ApplyEvent runs a lifecycle command such as start or stop against one timebox
func ApplyEvent(tb testing.TB, env *TestEnvironment, event string, id int64) Result {
	tb.Helper()
	return Run(tb, env, "timeboxes", event, strconv.FormatInt(id, 10))
}

// AssertTimeboxStatus verifies the stored status of a timebox
func AssertTimeboxStatus(tb testing.TB, env *TestEnvironment, id int64, status string) {
	tb.Helper()
	assert.Equal(tb, status, ViewTimebox(tb, env, id).Status, "status of timebox %d", id)
}

// AssertActualDurationSeconds verifies the counted work time lies in [atLeast, atMost]
func AssertActualDurationSeconds(tb testing.TB, env *TestEnvironment, id, atLeast, atMost int64) {
	tb.Helper()

	actual := ViewTimebox(tb, env, id).ActualSeconds
	assert.GreaterOrEqual(tb, actual, atLeast, "actual seconds of timebox %d", id)
	assert.LessOrEqual(tb, actual, atMost, "actual seconds of timebox %d", id)
}

// AssertEndReasons verifies the end reason of every session in order.
// An open session has an empty reason.
func AssertEndReasons(tb testing.TB, env *TestEnvironment, id int64, reasons ...string) {
	tb.Helper()

	sessions := ViewTimebox(tb, env, id).Sessions
	got := make([]string, len(sessions))
	for i, s := range sessions {
		got[i] = s.EndReason
	}
	if len(reasons) == 0 {
		reasons = []string{}
	}
	assert.Equal(tb, reasons, got, "session end reasons of timebox %d", id)
}

// AssertIdleSettings verifies the idle auto-stop settings stored in the database
func AssertIdleSettings(tb testing.TB, env *TestEnvironment, enabled bool, minutes int) {
	tb.Helper()

	var settings IdleSettings
	RunJSON(tb, env, &settings, "settings", "idle")
	assert.Equal(tb, IdleSettings{AutoStopEnabled: enabled, IdleTimeoutMinutes: minutes}, settings)
}
