package ui

import (
	"time"

	"github.com/timeboxd/timeboxd/internal/domain"
)

// tickMsg redraws the countdowns
type tickMsg time.Time

// timeboxesLoadedMsg carries a fresh read of today's timeboxes
type timeboxesLoadedMsg struct {
	err       error
	timeboxes []domain.Timebox
}

// actionDoneMsg reports the outcome of a user action on one timebox
type actionDoneMsg struct {
	action string
	err    error
	id     int64
}

// clearErrorMsg hides the error line unless a newer error replaced it
type clearErrorMsg struct {
	seq int
}
