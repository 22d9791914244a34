package tui

import (
	"math"
	"strings"

	"geoequal/internal/geom"
)

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	lat := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return lon, lat, true
}

// renderAsciiMap draws every visible slot into its own braille layer and
// colours each cell by which layers touch it.
func (m Model) renderAsciiMap(w, h int) string {
	var layers [2]*layer
	for i, s := range m.slots {
		if !s.show || s.g == nil {
			continue
		}
		layers[i] = newLayer(w, h)
		m.drawGeometry(layers[i], s.g, w, h)
	}

	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		runStyle := -1
		var run []rune
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runStyle < 0 {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(layerStyles[runStyle].Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < w; x++ {
			ma, mb := layers[0].at(x, y), layers[1].at(x, y)
			r, style := ' ', -1
			switch {
			case ma != 0 && mb != 0:
				r, style = brailleRune(ma|mb), styleBoth
			case ma != 0:
				r, style = brailleRune(ma), styleA
			case mb != 0:
				r, style = brailleRune(mb), styleB
			}
			if m.hovering && x == m.hoverMicX/2 && y == m.hoverMicY/4 {
				r, style = '◯', styleHover
			}
			if style != runStyle {
				flush()
				runStyle = style
			}
			run = append(run, r)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func (m Model) drawGeometry(br *layer, g geom.Geometry, w, h int) {
	switch t := g.(type) {
	case geom.Point:
		if mx, my, ok := m.screenXYMicro(t.X, t.Y, w, h); ok {
			br.dot(mx, my)
		}
	case geom.LineString:
		m.drawPath(br, t.Coords, w, h)
	case geom.Polygon:
		for _, ring := range t.Rings {
			m.drawPath(br, ring, w, h)
		}
	}
}

func (m Model) drawPath(br *layer, cs []geom.Coordinate, w, h int) {
	var prev *[2]int
	for _, c := range cs {
		mx, my, ok := m.screenXYMicro(c.X, c.Y, w, h)
		if !ok {
			continue
		}
		if prev != nil {
			br.line(prev[0], prev[1], mx, my)
		}
		prev = &[2]int{mx, my}
	}
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	if math.IsNaN(zx) || math.IsNaN(zy) {
		return 0, 0, false
	}
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps lon/lat to current screen integer coordinates considering zoom and pan.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// inspectNearest finds the vertex closest to the viewport center across both
// slots and returns it with the slot index.
func (m Model) inspectNearest() (c geom.Coordinate, slotIdx int, ok bool) {
	_, _, w, h := m.mapRect()
	cx, cy := w/2, h/2
	bestD := 1<<31 - 1
	for i, s := range m.slots {
		if s.g == nil || !s.show {
			continue
		}
		for _, v := range vertices(s.g) {
			sx, sy, ok2 := m.screenXY(v.X, v.Y, w, h)
			if !ok2 {
				continue
			}
			dx := sx - cx
			dy := sy - cy
			d := dx*dx + dy*dy
			if d < bestD {
				bestD = d
				c, slotIdx = v, i
			}
		}
	}
	if bestD == 1<<31-1 {
		return geom.Coordinate{}, 0, false
	}
	return c, slotIdx, true
}
