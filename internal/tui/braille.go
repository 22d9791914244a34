package tui

// dotBits maps a micro-pixel inside a cell, indexed [row][col], to its
// braille dot. Rows 0-2 use dots 1-6, row 3 uses dots 7 and 8.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// layer is one slot's braille canvas: w x h cells of 2x4 micro-pixels.
type layer struct {
	w, h  int
	cells []uint8
}

func newLayer(w, h int) *layer {
	return &layer{w: w, h: h, cells: make([]uint8, w*h)}
}

// at returns the dot mask of cell (x, y); a nil layer is empty.
func (l *layer) at(x, y int) uint8 {
	if l == nil || x < 0 || y < 0 || x >= l.w || y >= l.h {
		return 0
	}
	return l.cells[y*l.w+x]
}

func (l *layer) plot(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cx >= l.w || cy >= l.h {
		return
	}
	l.cells[cy*l.w+cx] |= dotBits[my%4][mx%2]
}

// dot marks a 2x2 block so a point stays visible next to line work.
func (l *layer) dot(mx, my int) {
	l.plot(mx, my)
	l.plot(mx+1, my)
	l.plot(mx, my+1)
	l.plot(mx+1, my+1)
}

// line plots a Bresenham segment between two micro-pixels.
func (l *layer) line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		l.plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		if 2*e >= dy {
			e += dy
			x0 += sx
		}
		if 2*e <= dx {
			e += dx
			y0 += sy
		}
	}
}

func brailleRune(mask uint8) rune { return rune(0x2800 + int(mask)) }
