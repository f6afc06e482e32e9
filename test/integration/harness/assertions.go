package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertSuccess verifies the command exited 0
func AssertSuccess(tb testing.TB, result Result) {
	tb.Helper()
	AssertExitCode(tb, result, 0)
}

// AssertFailure verifies the command exited non-zero
func AssertFailure(tb testing.TB, result Result) {
	tb.Helper()
	assert.NotZero(tb, result.ExitCode, "expected failure\n%s", result)
}

// AssertExitCode verifies the exact exit code
func AssertExitCode(tb testing.TB, result Result, want int) {
	tb.Helper()
	assert.Equal(tb, want, result.ExitCode, "unexpected exit code\n%s", result)
}

// AssertStdoutContains verifies stdout contains want
func AssertStdoutContains(tb testing.TB, result Result, want string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, want, "\n%s", result)
}

// AssertStdoutNotContains verifies stdout does not contain unwanted
func AssertStdoutNotContains(tb testing.TB, result Result, unwanted string) {
	tb.Helper()
	assert.NotContains(tb, result.Stdout, unwanted, "\n%s", result)
}

// AssertStderrContains verifies stderr contains want
func AssertStderrContains(tb testing.TB, result Result, want string) {
	tb.Helper()
	assert.Contains(tb, result.Stderr, want, "\n%s", result)
}

// AssertStderrEmpty verifies nothing was written to stderr
func AssertStderrEmpty(tb testing.TB, result Result) {
	tb.Helper()
	assert.Empty(tb, result.Stderr, "\n%s", result)
}
