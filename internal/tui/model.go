package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geoequal/internal/geom"
)

const maxPrecision = 15

// slot holds one side of the comparison.
type slot struct {
	name string
	g    geom.Geometry
	path string
	show bool
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd string
	l   list.Model

	// Data
	slots  [2]slot
	active int
	bbox   geom.BBox

	// comparison
	opts    geom.EqualOptions
	equal   bool
	compErr error

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// coordinates / attributes table
	showTable bool
	tbl       table.Model
}

func New() Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "geoequal ready",
		slots: [2]slot{
			{name: "A", show: true},
			{name: "B", show: true},
		},
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON). Press Enter to load into the active slot; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPaths preloads up to two files into slots A and B.
func NewWithPaths(paths ...string) Model {
	m := New()
	for i, p := range paths {
		if i >= len(m.slots) {
			break
		}
		m.active = i
		m.loadPath(p)
	}
	m.active = 0
	return m
}

// NewWithGeometries starts with already decoded geometries in A and B.
func NewWithGeometries(a, b geom.Geometry) Model {
	m := New()
	m.setSlot(0, a, "")
	m.setSlot(1, b, "")
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Options returns the equality options currently applied.
func (m Model) Options() geom.EqualOptions { return m.opts }

// Equal reports the current verdict; ok is false until both slots hold a
// geometry.
func (m Model) Equal() (equal, ok bool) {
	if m.slots[0].g == nil || m.slots[1].g == nil || m.compErr != nil {
		return false, false
	}
	return m.equal, true
}

func (m *Model) setSlot(i int, g geom.Geometry, path string) {
	m.slots[i].g = g
	m.slots[i].path = path
	m.slots[i].show = true
	m.refit()
	m.compare()
}

// refit fits the viewport to the union of both slots' bounds.
func (m *Model) refit() {
	first := true
	var bb geom.BBox
	for _, s := range m.slots {
		if s.g == nil {
			continue
		}
		if first {
			bb = s.g.Bounds()
			first = false
		} else {
			bb = bb.Union(s.g.Bounds())
		}
	}
	// degenerate extents (a single point, a vertical line) still need an area
	if bb.MaxX == bb.MinX {
		bb.MinX -= 0.5
		bb.MaxX += 0.5
	}
	if bb.MaxY == bb.MinY {
		bb.MinY -= 0.5
		bb.MaxY += 0.5
	}
	m.bbox = bb
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
}

func (m *Model) compare() {
	a, b := m.slots[0].g, m.slots[1].g
	m.compErr = nil
	m.equal = false
	if a == nil || b == nil {
		return
	}
	m.equal, m.compErr = geom.Equal(a, b, geom.WithOptions(m.opts))
	if m.showTable {
		m.refreshTable()
	}
}

func (m Model) verdict() string {
	eq, ok := m.Equal()
	switch {
	case m.compErr != nil:
		return "error: " + m.compErr.Error()
	case !ok:
		return "load A and B"
	case eq:
		return "EQUAL"
	}
	return "NOT EQUAL"
}
