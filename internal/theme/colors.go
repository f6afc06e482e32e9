package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Timebox status colors
const (
	ColorCancelled  Color = "1"   // Red
	ColorCompleted  Color = "33"  // Blue
	ColorInProgress Color = "2"   // Green
	ColorNotStarted Color = "8"   // Gray
	ColorPaused     Color = "3"   // Yellow
	ColorStopped    Color = "214" // Orange
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Countdown colors
const (
	ColorOvertime Color = "196" // Bright red
	ColorWarning  Color = "226" // Yellow - last minute
)

// Banner colors
const (
	ColorBannerBorder Color = "178" // Gold
	ColorSelected     Color = "237" // Dark gray background
)
