package cli

import "github.com/charmbracelet/lipgloss"

// Consistent color scheme for freshness and schedule warnings across all
// commands.
var (
	styleFresh = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green - recently touched
	styleAging = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow - going quiet
	styleStale = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red - needs attention

	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeader = lipgloss.NewStyle().Bold(true)
)

// freshnessStyle returns the style for a freshness label.
func freshnessStyle(f string) lipgloss.Style {
	switch f {
	case "fresh":
		return styleFresh
	case "aging":
		return styleAging
	case "stale":
		return styleStale
	default:
		return lipgloss.NewStyle()
	}
}
