package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ameliedv/moodflow/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Dim renders text in the muted foreground color.
func Dim(s string) string {
	return StyleDim.Render(s)
}

// moodStyle maps each mood onto a palette color so the badge reads at a
// glance: hard moods warm, light moods cool.
func moodStyle(m domain.Mood) lipgloss.Style {
	switch m {
	case domain.MoodStressed:
		return StyleRed
	case domain.MoodAnxious:
		return StyleYellow
	case domain.MoodSad:
		return StyleBlue
	case domain.MoodTired:
		return StyleDim
	case domain.MoodEnergized, domain.MoodHappy:
		return StyleGreen
	case domain.MoodFocused:
		return StylePurple
	default:
		return StyleDim
	}
}

// MoodBadge returns a colored mood indicator such as "● stressed".
func MoodBadge(m domain.Mood) string {
	return moodStyle(m).Render("● " + string(m))
}
