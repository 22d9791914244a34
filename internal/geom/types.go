package geom

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Constructor errors, matched with errors.Is.
var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrTooFewPositions = errors.New("too few positions")
	ErrRingNotClosed   = errors.New("ring is not closed")
	ErrEmptyPolygon    = errors.New("polygon has no rings")
)

// BBox is an axis-aligned bounding box in X/Y.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Extend grows the box to cover c. When first is set the box restarts at c.
func (b BBox) Extend(c Coordinate, first bool) BBox {
	if first {
		return BBox{MinX: c.X, MinY: c.Y, MaxX: c.X, MaxY: c.Y}
	}
	if c.X < b.MinX {
		b.MinX = c.X
	}
	if c.Y < b.MinY {
		b.MinY = c.Y
	}
	if c.X > b.MaxX {
		b.MaxX = c.X
	}
	if c.Y > b.MaxY {
		b.MaxY = c.Y
	}
	return b
}

// Union returns the smallest box covering both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Coordinate is a position. Z is elevation and is ignored by Equal.
type Coordinate struct {
	X, Y, Z float64
}

// Kind names the geometry variant.
type Kind int

const (
	KindPoint Kind = iota + 1
	KindLineString
	KindPolygon
)

// String returns the GeoJSON type name, or "Unknown".
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLineString:
		return "LineString"
	case KindPolygon:
		return "Polygon"
	}
	return "Unknown"
}

// Geometry is one of Point, LineString or Polygon.
type Geometry interface {
	Kind() Kind
	Bounds() BBox
	NumCoords() int

	isGeometry()
}

// Point is a single position.
type Point struct {
	Coordinate
}

// LineString is an ordered path of at least two positions.
type LineString struct {
	Coords []Coordinate
}

// Polygon holds rings, first outer, following holes.
type Polygon struct {
	Rings [][]Coordinate
}

func (Point) isGeometry()      {}
func (LineString) isGeometry() {}
func (Polygon) isGeometry()    {}

func (Point) Kind() Kind      { return KindPoint }
func (LineString) Kind() Kind { return KindLineString }
func (Polygon) Kind() Kind    { return KindPolygon }

func (p Point) Bounds() BBox { return BBox{}.Extend(p.Coordinate, true) }

func (l LineString) Bounds() BBox { return boundsOf(l.Coords, BBox{}, true) }

func (p Polygon) Bounds() BBox {
	var bb BBox
	first := true
	for _, ring := range p.Rings {
		if len(ring) == 0 {
			continue
		}
		bb = boundsOf(ring, bb, first)
		first = false
	}
	return bb
}

func (Point) NumCoords() int        { return 1 }
func (l LineString) NumCoords() int { return len(l.Coords) }
func (p Polygon) NumCoords() int {
	n := 0
	for _, ring := range p.Rings {
		n += len(ring)
	}
	return n
}

// Reverse returns a copy traversed end to start.
func (l LineString) Reverse() LineString {
	return LineString{Coords: reversed(l.Coords)}
}

// Reverse returns a copy with every ring reversed. Ring order is kept.
func (p Polygon) Reverse() Polygon {
	rings := lo.Map(p.Rings, func(ring []Coordinate, _ int) []Coordinate {
		return reversed(ring)
	})
	return Polygon{Rings: rings}
}

func reversed(cs []Coordinate) []Coordinate {
	out := make([]Coordinate, len(cs))
	copy(out, cs)
	return lo.Reverse(out)
}

func boundsOf(cs []Coordinate, bb BBox, first bool) BBox {
	for _, c := range cs {
		bb = bb.Extend(c, first)
		first = false
	}
	return bb
}

// NewPoint builds a Point; an optional third value is the elevation.
func NewPoint(x, y float64, z ...float64) (Point, error) {
	pos := append([]float64{x, y}, z...)
	c, err := toCoordinate(pos)
	if err != nil {
		return Point{}, err
	}
	return Point{Coordinate: c}, nil
}

// NewLineString builds a LineString from [x, y] or [x, y, z] positions.
func NewLineString(positions [][]float64) (LineString, error) {
	if len(positions) < 2 {
		return LineString{}, errors.Wrapf(ErrTooFewPositions, "linestring needs at least 2 positions, got %d", len(positions))
	}
	cs, err := toCoordinates(positions)
	if err != nil {
		return LineString{}, errors.Wrap(err, "linestring")
	}
	return LineString{Coords: cs}, nil
}

// NewPolygon builds a Polygon. Every ring must be closed and carry at least
// four positions.
func NewPolygon(rings [][][]float64) (Polygon, error) {
	if len(rings) == 0 {
		return Polygon{}, ErrEmptyPolygon
	}
	out := make([][]Coordinate, 0, len(rings))
	for i, ring := range rings {
		if len(ring) < 4 {
			return Polygon{}, errors.Wrapf(ErrTooFewPositions, "polygon ring %d needs at least 4 positions, got %d", i, len(ring))
		}
		cs, err := toCoordinates(ring)
		if err != nil {
			return Polygon{}, errors.Wrapf(err, "polygon ring %d", i)
		}
		first, last := cs[0], cs[len(cs)-1]
		if first.X != last.X || first.Y != last.Y {
			return Polygon{}, errors.Wrapf(ErrRingNotClosed, "polygon ring %d", i)
		}
		out = append(out, cs)
	}
	return Polygon{Rings: out}, nil
}

// MustPoint is NewPoint for literal inputs; it panics on error.
func MustPoint(x, y float64, z ...float64) Point {
	p, err := NewPoint(x, y, z...)
	if err != nil {
		panic(err)
	}
	return p
}

// MustLineString is NewLineString that panics on error.
func MustLineString(positions [][]float64) LineString {
	l, err := NewLineString(positions)
	if err != nil {
		panic(err)
	}
	return l
}

// MustPolygon is NewPolygon that panics on error.
func MustPolygon(rings [][][]float64) Polygon {
	p, err := NewPolygon(rings)
	if err != nil {
		panic(err)
	}
	return p
}

func toCoordinates(positions [][]float64) ([]Coordinate, error) {
	out := make([]Coordinate, 0, len(positions))
	for i, pos := range positions {
		c, err := toCoordinate(pos)
		if err != nil {
			return nil, errors.Wrapf(err, "position %d", i)
		}
		out = append(out, c)
	}
	return out, nil
}

func toCoordinate(pos []float64) (Coordinate, error) {
	if len(pos) < 2 || len(pos) > 3 {
		return Coordinate{}, errors.Wrapf(ErrInvalidPosition, "expected 2 or 3 values, got %d", len(pos))
	}
	for _, v := range pos {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Coordinate{}, errors.Wrapf(ErrInvalidPosition, "non-finite value %v", v)
		}
	}
	c := Coordinate{X: pos[0], Y: pos[1]}
	if len(pos) == 3 {
		c.Z = pos[2]
	}
	return c, nil
}
