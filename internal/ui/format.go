package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	errorPrefix    = "Error: "
	truncationMark = "..."
)

// FormatCountdown renders remaining seconds as mm:ss, or h:mm:ss past an hour.
// Overtime is shown with a leading plus sign.
func FormatCountdown(remaining int64) string {
	sign := ""
	if remaining < 0 {
		sign = "+"
		remaining = -remaining
	}

	h := remaining / 3600
	m := (remaining % 3600) / 60
	s := remaining % 60
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, m, s)
}

// FormatIntended renders a budget in seconds as 1h30m, 15m or 45s
func FormatIntended(seconds int64) string {
	if seconds <= 0 {
		return "0s"
	}

	var b strings.Builder
	if h := seconds / 3600; h > 0 {
		fmt.Fprintf(&b, "%dh", h)
	}
	if m := (seconds % 3600) / 60; m > 0 {
		fmt.Fprintf(&b, "%dm", m)
	}
	if s := seconds % 60; s > 0 {
		fmt.Fprintf(&b, "%ds", s)
	}
	return b.String()
}

// formatErrorForDisplay keeps an error on a single line that fits maxWidth
func formatErrorForDisplay(err error, maxWidth int) string {
	if err == nil {
		return ""
	}

	message := strings.Join(strings.Fields(err.Error()), " ")
	if message == "" {
		message = "unknown error"
	}

	available := maxWidth - utf8.RuneCountInString(errorPrefix)
	if available < 10 {
		available = 10
	}
	if utf8.RuneCountInString(message) > available {
		runes := []rune(message)
		message = string(runes[:available-utf8.RuneCountInString(truncationMark)]) + truncationMark
	}

	return errorPrefix + message
}
