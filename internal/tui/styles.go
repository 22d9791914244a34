package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	slotAFg   = lipgloss.Color("#A78BFA")
	slotBFg   = lipgloss.Color("#22D3EE")
	bothFg    = lipgloss.Color("#34D399")
	hoverFg   = lipgloss.Color("#FFA500")
	badFg     = lipgloss.Color("#F87171")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)

	equalBadge    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0B0F14")).Background(bothFg).Bold(true).Padding(0, 1)
	notEqualBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("#0B0F14")).Background(badFg).Bold(true).Padding(0, 1)
	pendingBadge  = lipgloss.NewStyle().Foreground(baseDimFg).Padding(0, 1)
)

// layer styles, indexed by the style* constants
const (
	styleA = iota
	styleB
	styleBoth
	styleHover
)

var layerStyles = []lipgloss.Style{
	styleA:     lipgloss.NewStyle().Foreground(slotAFg),
	styleB:     lipgloss.NewStyle().Foreground(slotBFg),
	styleBoth:  lipgloss.NewStyle().Foreground(bothFg),
	styleHover: lipgloss.NewStyle().Foreground(hoverFg),
}

func slotStyle(i int) lipgloss.Style {
	return layerStyles[i]
}
