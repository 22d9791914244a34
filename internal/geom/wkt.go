package geom

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

var ErrUnsupportedType = errors.New("unsupported geometry type")

// ParseWKT parses POINT, LINESTRING or POLYGON text, with or without Z.
func ParseWKT(text string) (Geometry, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	t, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "wkt")
	}
	g, err := fromGoGeom(t)
	if err != nil {
		return nil, errors.Wrap(err, "wkt")
	}
	return g, nil
}

// fromGoGeom converts a decoded go-geom value, validating it through the
// constructors. M values are dropped.
func fromGoGeom(t gogeom.T) (Geometry, error) {
	switch g := t.(type) {
	case *gogeom.Point:
		if g.Empty() {
			return nil, errors.Wrap(ErrInvalidPosition, "empty point")
		}
		pos := positionOf(g.Coords(), g.Layout())
		if len(pos) == 3 {
			return NewPoint(pos[0], pos[1], pos[2])
		}
		return NewPoint(pos[0], pos[1])
	case *gogeom.LineString:
		return NewLineString(positionsOf(g.Coords(), g.Layout()))
	case *gogeom.Polygon:
		rings := make([][][]float64, 0, g.NumLinearRings())
		for _, ring := range g.Coords() {
			rings = append(rings, positionsOf(ring, g.Layout()))
		}
		return NewPolygon(rings)
	case nil:
		return nil, errors.Wrap(ErrUnsupportedType, "no geometry")
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "%T", t)
}

func positionsOf(coords []gogeom.Coord, layout gogeom.Layout) [][]float64 {
	return lo.Map(coords, func(c gogeom.Coord, _ int) []float64 {
		return positionOf(c, layout)
	})
}

func positionOf(c gogeom.Coord, layout gogeom.Layout) []float64 {
	if zi := layout.ZIndex(); zi >= 0 && zi < len(c) {
		return []float64{c.X(), c.Y(), c[zi]}
	}
	return []float64{c.X(), c.Y()}
}
