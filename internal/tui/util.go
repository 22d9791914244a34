package tui

import "geoequal/internal/geom"

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// vertices flattens a geometry's coordinates, rings in order.
func vertices(g geom.Geometry) []geom.Coordinate {
	switch t := g.(type) {
	case geom.Point:
		return []geom.Coordinate{t.Coordinate}
	case geom.LineString:
		return t.Coords
	case geom.Polygon:
		out := make([]geom.Coordinate, 0, t.NumCoords())
		for _, ring := range t.Rings {
			out = append(out, ring...)
		}
		return out
	}
	return nil
}

// reverse flips a geometry's direction. Points have none.
func reverse(g geom.Geometry) (geom.Geometry, bool) {
	switch t := g.(type) {
	case geom.LineString:
		return t.Reverse(), true
	case geom.Polygon:
		return t.Reverse(), true
	}
	return g, false
}
