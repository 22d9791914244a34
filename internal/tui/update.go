package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geoequal/internal/geom"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.height-headerHeight-2)
		}
	case tea.KeyMsg:
		// filtering owns the keyboard until it ends
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if quit := m.handleKey(msg.String()); quit {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.ta.Value())
		if text == "" {
			m.status = "paste: empty"
			return m, nil
		}
		g, err := geom.ParseWKT(text)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.setSlot(m.active, g, "")
		m.status = fmt.Sprintf("pasted %s into %s: %d coords", g.Kind(), m.slots[m.active].name, g.NumCoords())
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// handleKey applies a global key binding and reports whether to quit.
func (m *Model) handleKey(key string) bool {
	switch key {
	case "ctrl+c", "q":
		return true
	case "1", "2":
		s := &m.slots[key[0]-'1']
		s.show = !s.show
		m.status = fmt.Sprintf("layer %s: %v", s.name, s.show)
	case "s":
		m.active = 1 - m.active
		m.status = "active slot: " + m.slots[m.active].name
	case "x":
		// contents move, names stay with the position
		m.slots[0], m.slots[1] = m.slots[1], m.slots[0]
		m.slots[0].name, m.slots[1].name = m.slots[1].name, m.slots[0].name
		m.compare()
		m.status = "swapped A and B"
	case "r":
		m.reverseActive()
	case "d":
		m.opts.IgnoreDirection = !m.opts.IgnoreDirection
		m.compare()
		m.status = fmt.Sprintf("ignore direction: %v", m.opts.IgnoreDirection)
	case "]", "[":
		m.stepPrecision(key == "]")
	case "m":
		m.opts.Rounding = m.opts.Rounding.Next()
		m.compare()
		m.status = "rounding: " + m.opts.Rounding.String()
	case "+", "=":
		if m.zoom < 64 {
			m.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.height-headerHeight-2)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste into " + m.slots[m.active].name
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showTable = !m.showTable
		if m.showTable {
			m.refreshTable()
		}
	case "i":
		m.inspect()
	case "esc":
		m.inspectPopup = ""
	case "enter":
		if it, ok := m.l.SelectedItem().(fileItem); ok && m.showSidebar {
			m.loadPath(it.path)
		}
	case "up":
		m.offsetY--
	case "down":
		m.offsetY++
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	}
	return false
}

func (m *Model) reverseActive() {
	s := &m.slots[m.active]
	if s.g == nil {
		m.status = "slot " + s.name + " is empty"
		return
	}
	g, ok := reverse(s.g)
	if !ok {
		m.status = "a point has no direction"
		return
	}
	s.g = g
	m.compare()
	m.status = "reversed " + s.name
}

// stepPrecision walks none, 0, 1 ... maxPrecision and back.
func (m *Model) stepPrecision(up bool) {
	switch {
	case up && !m.opts.HasPrecision:
		m.opts.HasPrecision, m.opts.Precision = true, 0
	case up && m.opts.Precision < maxPrecision:
		m.opts.Precision++
	case !up && m.opts.HasPrecision && m.opts.Precision == 0:
		m.opts.HasPrecision = false
	case !up && m.opts.HasPrecision:
		m.opts.Precision--
	}
	m.compare()
	m.status = "precision: " + precisionLabel(m.opts)
}

func (m *Model) inspect() {
	c, si, ok := m.inspectNearest()
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	s := m.slots[si]
	name := "<pasted>"
	if s.path != "" {
		name = filepath.Base(s.path)
	}
	m.inspectPopup = strings.Join([]string{
		fmt.Sprintf("slot: %s (%s)", s.name, name),
		fmt.Sprintf("kind: %s  coords: %d", s.g.Kind(), s.g.NumCoords()),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", m.bbox.MinX, m.bbox.MinY, m.bbox.MaxX, m.bbox.MaxY),
		fmt.Sprintf("nearest: x=%.6f y=%.6f", c.X, c.Y),
		"verdict: " + m.verdict(),
	}, "\n")
	m.status = "inspect popup"
}

// mapRect returns the screen origin and size of the map area, matching View.
func (m Model) mapRect() (x, y, w, h int) {
	w = max(10, m.width)
	if m.showSidebar {
		x = sidebarWidth + 1
		w = max(10, w-sidebarWidth-1)
	}
	return x, headerHeight, w, max(4, m.height-headerHeight-footerHeight)
}

// hover tracks the pointer over the map and snaps the marker to the
// closest visible vertex of either slot.
func (m *Model) hover(sx, sy int) {
	ox, oy, w, h := m.mapRect()
	if sx < ox || sx >= ox+w || sy < oy || sy >= oy+h {
		m.hovering = false
		return
	}
	m.hovering = true
	m.hoverCellX, m.hoverCellY = sx-ox, sy-oy
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(m.hoverCellX, m.hoverCellY, w, h)

	hx, hy := m.hoverCellX*2, m.hoverCellY*4
	best := 1<<31 - 1
	m.hoverMicX, m.hoverMicY = hx, hy
	for _, s := range m.slots {
		if s.g == nil || !s.show {
			continue
		}
		for _, v := range vertices(s.g) {
			mx, my, ok := m.screenXYMicro(v.X, v.Y, w, h)
			if !ok {
				continue
			}
			if d := (mx-hx)*(mx-hx) + (my-hy)*(my-hy); d < best {
				best = d
				m.hoverMicX, m.hoverMicY = mx, my
			}
		}
	}
}

func precisionLabel(o geom.EqualOptions) string {
	if !o.HasPrecision {
		return "none"
	}
	return fmt.Sprintf("%d", o.Precision)
}
