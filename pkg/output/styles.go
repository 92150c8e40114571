package output

import "github.com/charmbracelet/lipgloss"

// Semantic styles for terminal output. Adaptive colors keep the summary
// readable on both light and dark themes.
var (
	styleSuccess = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "40"})

	styleFailure = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "196"})

	styleUnit = lipgloss.NewStyle().Bold(true)

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "243", Dark: "245"})
)
