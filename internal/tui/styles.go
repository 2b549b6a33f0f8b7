package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#0EA5E9")
	landFg    = lipgloss.Color("#65A30D")
	waterFg   = lipgloss.Color("#2563EB")
	hoverFg   = lipgloss.Color("#FFA500")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	landStyle  = lipgloss.NewStyle().Foreground(landFg)
	waterStyle = lipgloss.NewStyle().Foreground(waterFg)
	hoverStyle = lipgloss.NewStyle().Foreground(hoverFg)
	barLabel   = lipgloss.NewStyle().Foreground(baseDimFg).Width(4)
)

// classStyle colours a land/water label.
func classStyle(land bool) lipgloss.Style {
	if land {
		return landStyle
	}
	return waterStyle
}
