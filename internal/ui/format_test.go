package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		remaining int64
		want      string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{900, "15:00"},
		{3661, "1:01:01"},
		{-1, "+00:01"},
		{-61, "+01:01"},
		{-3600, "+1:00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCountdown(tt.remaining), "remaining=%d", tt.remaining)
	}
}

func TestFormatIntended(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{900, "15m"},
		{5400, "1h30m"},
		{3605, "1h5s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatIntended(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	assert.Equal(t, "", formatErrorForDisplay(nil, 80))
	assert.Equal(t, "Error: disk full", formatErrorForDisplay(errors.New("disk\nfull"), 80))

	long := formatErrorForDisplay(errors.New(strings.Repeat("x", 200)), 40)
	assert.Len(t, []rune(long), 40)
	assert.True(t, strings.HasSuffix(long, "..."))
}
