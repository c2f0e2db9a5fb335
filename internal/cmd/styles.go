package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/taigrr/colorhash"
)

// Palette used for all terminal output. Tuned for dark backgrounds.
const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	warningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
)

// groupColors are picked by hashing the group name, so a group keeps its
// colour between runs and across commands.
var groupColors = []lipgloss.Color{
	"#3B82F6",
	"#10B981",
	"#F59E0B",
	"#EC4899",
	"#8B5CF6",
	"#14B8A6",
	"#F97316",
	"#84CC16",
}

func groupStyle(name string) lipgloss.Style {
	i := colorhash.HashString(name) % len(groupColors)
	if i < 0 {
		i = -i
	}
	return lipgloss.NewStyle().Bold(true).Foreground(groupColors[i])
}
