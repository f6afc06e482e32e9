package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/theme"
)

// warningSeconds is when a running countdown turns yellow
const warningSeconds = 60

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("timeboxd"))
	b.WriteString("\n")

	if banner := m.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	if m.state == stateCreating && m.form != nil {
		b.WriteString(m.form.View())
		return b.String()
	}

	b.WriteString(m.renderList())

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(formatErrorForDisplay(m.err, m.width)))
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) renderList() string {
	if len(m.timeboxes) == 0 {
		return theme.MutedStyle.Render("No timeboxes today. Press n to add one.") + "\n"
	}

	now := m.timeboxService.Now()
	var b strings.Builder
	for i := range m.timeboxes {
		tb := &m.timeboxes[i]
		line := fmt.Sprintf("%s %-40s %s %s",
			theme.StatusIcon(tb.Status),
			truncate(tb.Intention, 40),
			m.renderCountdown(tb, now),
			theme.MutedStyle.Render("/ "+FormatIntended(tb.IntendedDuration)))
		if i == m.selected {
			line = theme.SelectedStyle.Render("> " + line)
		} else {
			line = theme.NormalStyle.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderCountdown prefers the engine state for running timeboxes so the
// dashboard shows exactly what the overtime detection saw
func (m *Model) renderCountdown(tb *domain.Timebox, now time.Time) string {
	remaining := tb.Remaining(now)
	running := tb.Status == domain.StatusInProgress
	if running && m.engine != nil {
		if state, ok := m.engine.State(tb.ID); ok {
			remaining = state.RemainingSeconds
		}
	}

	text := FormatCountdown(remaining)
	switch {
	case remaining < 0:
		return theme.OvertimeStyle.Render(text)
	case !running:
		return theme.MutedStyle.Render(text)
	case remaining <= warningSeconds:
		return theme.WarningStyle.Render(text)
	default:
		return theme.CountdownStyle.Render(text)
	}
}

func (m *Model) renderBanner() string {
	if m.idle == nil {
		return ""
	}
	info := m.idle.AutoStoppedInfo()
	if info == nil {
		return ""
	}

	lines := []string{
		theme.BannerTitleStyle.Render(fmt.Sprintf("While you were away (%s)", info.StoppedAt.Local().Format("15:04"))),
	}
	if len(info.Timeboxes) > 0 {
		names := make([]string, len(info.Timeboxes))
		for i, tb := range info.Timeboxes {
			names[i] = tb.Intention
		}
		lines = append(lines, "Stopped: "+strings.Join(names, ", "))
	}
	for _, failed := range info.Failed {
		lines = append(lines, theme.ErrorStyle.Render(fmt.Sprintf("Could not stop %q: %s", failed.Intention, failed.Error)))
	}
	lines = append(lines, theme.MutedStyle.Render("press d to dismiss"))

	return theme.BannerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
