package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	width := max(10, m.width)
	bodyH := max(4, m.height-headerHeight-footerHeight)

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render(" geoequal ─ geometry equality viewer "), " ",
		m.renderLegend(), "  ", m.renderVerdict())
	header = lipgloss.NewStyle().Width(width).MaxHeight(headerHeight).Render(header)

	mapW := width
	body := ""
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, bodyH-2)
		mapW = max(10, width-sidebarWidth-1)
		body = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View()) + " "
	}
	body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderMapArea(mapW, bodyH))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, m.renderPopup(width, bodyH), body, m.renderFooter(width))
	return appStyle.Width(width).Height(m.height).Render(ui)
}

// renderMapArea fills the body with the table, the paste box or the map.
func (m *Model) renderMapArea(w, h int) string {
	if m.showTable {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		boxW := min(w, max(32, colW))
		m.tbl.SetWidth(boxW - 4)
		m.tbl.SetHeight(min(h-2, 20))
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, boxStyle.Width(boxW).Render(m.tbl.View()))
	}
	var canvas string
	if m.pasteMode {
		m.ta.SetWidth(w)
		m.ta.SetHeight(min(h, 12))
		canvas = m.ta.View()
	} else {
		canvas = m.renderAsciiMap(w, h)
	}
	return lipgloss.NewStyle().Width(w).Height(h).Render(canvas)
}

func (m Model) renderPopup(w, h int) string {
	if m.inspectPopup == "" || m.showTable {
		return ""
	}
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).
		MaxWidth(max(20, min(48, w/2))).Render(m.inspectPopup)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Center, box)
}

// renderFooter puts status and help on the left and the hover position on the right.
func (m Model) renderFooter(w int) string {
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, dimStyle.Render(" "+m.status+" "), m.renderHelp())
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.5f y=%.5f  ", m.hoverLon, m.hoverLat))
	}
	gap := max(0, w-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(gap+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	return lipgloss.NewStyle().Width(w).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))
}

func (m Model) renderLegend() string {
	parts := make([]string, 0, len(m.slots))
	for i, s := range m.slots {
		label := s.name + ": empty"
		if s.g != nil {
			label = fmt.Sprintf("%s: %s(%d)", s.name, s.g.Kind(), s.g.NumCoords())
		}
		if i == m.active {
			label = "▸" + label
		}
		if !s.show {
			label += " (hidden)"
		}
		parts = append(parts, slotStyle(i).Render(label))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderVerdict() string {
	opts := fmt.Sprintf("dir=%s prec=%s round=%s", directionLabel(m.opts.IgnoreDirection), precisionLabel(m.opts), m.opts.Rounding)
	eq, ok := m.Equal()
	var badge string
	switch {
	case !ok:
		badge = pendingBadge.Render(m.verdict())
	case eq:
		badge = equalBadge.Render(m.verdict())
	default:
		badge = notEqualBadge.Render(m.verdict())
	}
	return badge + dimStyle.Render(" "+opts)
}

func directionLabel(ignore bool) string {
	if ignore {
		return "any"
	}
	return "strict"
}

var helpKeys = []string{
	"↑↓←→ pan", "+/- zoom", "Tab files", "Enter open", "p paste", "s slot", "x swap",
	"r reverse", "d direction", "[/] precision", "m rounding", "a table", "i inspect",
	"1/2 layers", "h help", "q quit",
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	return dimStyle.Render("  " + strings.Join(helpKeys, "  "))
}
