package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/timeboxd/timeboxd/internal/domain"
)

// Main UI styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Background(ColorSelected).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Countdown styles
var (
	CountdownStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	OvertimeStyle = lipgloss.NewStyle().
			Foreground(ColorOvertime).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)
)

// Away banner styles
var (
	BannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBannerBorder).
			Padding(0, 1).
			MarginBottom(1)

	BannerTitleStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)
)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

var statusColors = map[domain.TimeboxStatus]Color{
	domain.StatusCancelled:  ColorCancelled,
	domain.StatusCompleted:  ColorCompleted,
	domain.StatusInProgress: ColorInProgress,
	domain.StatusNotStarted: ColorNotStarted,
	domain.StatusPaused:     ColorPaused,
	domain.StatusStopped:    ColorStopped,
}

// StatusStyle returns the style for a timebox status
func StatusStyle(status domain.TimeboxStatus) lipgloss.Style {
	color, ok := statusColors[status]
	if !ok {
		color = ColorNotStarted
	}
	return lipgloss.NewStyle().Foreground(color)
}

// StatusIcon renders the colored status glyph
func StatusIcon(status domain.TimeboxStatus) string {
	return StatusStyle(status).Render(status.Symbol())
}
