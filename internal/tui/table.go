package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"geoequal/internal/geom"
)

// refreshTable rebuilds the table: coordinates of A and B side by side when
// both slots are loaded, otherwise the attributes of the active slot's file.
func (m *Model) refreshTable() {
	var cols []table.Column
	var rows []table.Row
	if m.slots[0].g != nil && m.slots[1].g != nil {
		cols, rows = m.coordinateTable()
	} else {
		cols, rows = attributeTable(m.slots[m.active].path)
	}
	// If there are no columns or rows, disable the table to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showTable = false
		m.status = "nothing to tabulate for current data"
		return
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}

// coordinateTable pairs the flattened vertices of A and B by index and marks
// each pair by whether it matches under the current options. With ignore
// direction on, B is also tried reversed and the better alignment is shown.
func (m *Model) coordinateTable() ([]table.Column, []table.Row) {
	a := vertices(m.slots[0].g)
	b := vertices(m.slots[1].g)
	if m.opts.IgnoreDirection && !m.allMatch(a, b) {
		if rb, ok := reverse(m.slots[1].g); ok {
			if rv := vertices(rb); m.allMatch(a, rv) {
				b = rv
			}
		}
	}
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "A x", Width: 14},
		{Title: "A y", Width: 14},
		{Title: "B x", Width: 14},
		{Title: "B y", Width: 14},
		{Title: "=", Width: 3},
	}
	n := max(len(a), len(b))
	rows := make([]table.Row, 0, n)
	for i := 0; i < n; i++ {
		row := table.Row{strconv.Itoa(i + 1), "", "", "", "", "✗"}
		if i < len(a) {
			row[1], row[2] = formatFloat(a[i].X), formatFloat(a[i].Y)
		}
		if i < len(b) {
			row[3], row[4] = formatFloat(b[i].X), formatFloat(b[i].Y)
		}
		if i < len(a) && i < len(b) && m.coordMatch(a[i], b[i]) {
			row[5] = "✓"
		}
		rows = append(rows, row)
	}
	return cols, rows
}

func (m *Model) allMatch(a, b []geom.Coordinate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !m.coordMatch(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (m *Model) coordMatch(a, b geom.Coordinate) bool {
	opts := m.opts
	opts.IgnoreDirection = false
	eq, err := geom.Equal(geom.Point{Coordinate: a}, geom.Point{Coordinate: b}, geom.WithOptions(opts))
	return err == nil && eq
}

func attributeTable(path string) ([]table.Column, []table.Row) {
	if path == "" {
		// pasted WKT: no attributes available
		return nil, nil
	}
	header, values := geom.Properties(path)
	if len(header) == 0 {
		return nil, nil
	}
	cols := make([]table.Column, 0, len(header)+1)
	cols = append(cols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range header {
		cols = append(cols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	rows := make([]table.Row, 0, len(values))
	for i, r := range values {
		row := make(table.Row, len(cols))
		row[0] = fmt.Sprintf("%d", i+1)
		copy(row[1:], r)
		rows = append(rows, row)
	}
	return cols, rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}
