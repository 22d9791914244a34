package geom

import (
	"fmt"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixturePoint = MustPoint(1, 1)
	fixtureLine  = MustLineString([][]float64{{1, 1}, {1, 2}, {1, 3}, {1, 4}})
	fixturePoly  = MustPolygon([][][]float64{{{1, 1}, {1, 10}, {10, 10}, {10, 1}, {1, 1}}})
)

func optionSets() map[string][]EqualOption {
	return map[string][]EqualOption{
		"default":           nil,
		"direction":         {IgnoreDirection()},
		"precision_0":       {WithPrecision(0)},
		"precision_6":       {WithPrecision(6)},
		"direction_prec_3":  {IgnoreDirection(), WithPrecision(3)},
		"half_even_prec_2":  {WithPrecision(2), WithRounding(HalfEven)},
		"half_away_prec_1":  {WithPrecision(1), WithRounding(HalfAwayFromZero)},
		"struct_direction":  {WithOptions(EqualOptions{IgnoreDirection: true})},
		"struct_precision4": {WithOptions(EqualOptions{Precision: 4, HasPrecision: true})},
	}
}

func sampleGeometries() map[string]Geometry {
	return map[string]Geometry{
		"point":         fixturePoint,
		"point_z":       MustPoint(1, 1, 42),
		"point_frac":    MustPoint(1.123456, -3.98765),
		"line":          fixtureLine,
		"line_reversed": fixtureLine.Reverse(),
		"line_short":    MustLineString([][]float64{{1, 1}, {1, 2}}),
		"poly":          fixturePoly,
		"poly_reversed": fixturePoly.Reverse(),
		"poly_hole": MustPolygon([][][]float64{
			{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}},
			{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}},
		}),
	}
}

func TestEqualReflexive(t *testing.T) {
	for gname, g := range sampleGeometries() {
		for oname, opts := range optionSets() {
			t.Run(gname+"/"+oname, func(t *testing.T) {
				eq, err := Equal(g, g, opts...)
				require.NoError(t, err)
				assert.True(t, eq)
			})
		}
	}
}

func TestEqualPointerOperands(t *testing.T) {
	p := MustPoint(1, 1)
	line := fixtureLine
	poly := fixturePoly
	cases := []struct {
		name string
		a, b Geometry
		want bool
	}{
		{"point_same_pointer", &p, &p, true},
		{"point_pointer_value", &p, fixturePoint, true},
		{"line_pointer", &line, fixtureLine, true},
		{"line_pointer_reversed", &line, fixtureLine.Reverse(), false},
		{"polygon_pointer", &poly, &poly, true},
		{"point_pointer_line", &p, &line, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eq, err := Equal(tc.a, tc.b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, eq)
			eq, err = Equal(tc.b, tc.a)
			require.NoError(t, err)
			assert.Equal(t, tc.want, eq)
		})
	}
}

func TestEqualSymmetric(t *testing.T) {
	geoms := sampleGeometries()
	for an, a := range geoms {
		for bn, b := range geoms {
			for oname, opts := range optionSets() {
				ab, err := Equal(a, b, opts...)
				require.NoError(t, err)
				ba, err := Equal(b, a, opts...)
				require.NoError(t, err)
				assert.Equal(t, ab, ba, "%s vs %s with %s", an, bn, oname)
			}
		}
	}
}

func TestEqualKindMismatch(t *testing.T) {
	line := MustLineString([][]float64{{1, 1}, {1, 2}})
	cases := []struct {
		name string
		a, b Geometry
	}{
		{"point_line", MustPoint(1, 1), line},
		{"point_polygon", fixturePoint, fixturePoly},
		{"line_polygon", fixtureLine, fixturePoly},
		{"closed_line_polygon", MustLineString([][]float64{{1, 1}, {1, 10}, {10, 10}, {10, 1}, {1, 1}}), fixturePoly},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, opts := range optionSets() {
				assert.False(t, MustEqual(tc.a, tc.b, opts...))
			}
		})
	}
}

func TestEqualDirection(t *testing.T) {
	line := MustLineString([][]float64{{1, 1}, {1, 2}, {1, 3}})
	reversed := MustLineString([][]float64{{1, 3}, {1, 2}, {1, 1}})

	assert.False(t, MustEqual(line, reversed))
	assert.True(t, MustEqual(line, reversed, IgnoreDirection()))

	t.Run("partial_reversal", func(t *testing.T) {
		other := MustLineString([][]float64{{1, 3}, {1, 1}, {1, 2}})
		assert.False(t, MustEqual(line, other, IgnoreDirection()))
	})
	t.Run("reversal_with_precision", func(t *testing.T) {
		noisy := MustLineString([][]float64{{1.0004, 3}, {1, 2.0001}, {1, 1}})
		assert.False(t, MustEqual(line, noisy, IgnoreDirection()))
		assert.True(t, MustEqual(line, noisy, IgnoreDirection(), WithPrecision(3)))
	})
}

func TestEqualPrecision(t *testing.T) {
	a := MustPoint(1.123456, 1)
	b := MustPoint(1.123789, 1)

	assert.True(t, MustEqual(a, b, WithPrecision(3)))
	assert.False(t, MustEqual(a, b, WithPrecision(6)))
	assert.False(t, MustEqual(a, b))

	t.Run("half_away_splits_at_third_digit", func(t *testing.T) {
		assert.False(t, MustEqual(a, b, WithPrecision(3), WithRounding(HalfAwayFromZero)))
		assert.True(t, MustEqual(a, b, WithPrecision(2), WithRounding(HalfAwayFromZero)))
	})
	t.Run("zero_digits", func(t *testing.T) {
		assert.True(t, MustEqual(MustPoint(3.9, 7.2), MustPoint(3.1, 7.8), WithPrecision(0)))
		assert.True(t, MustEqual(MustPoint(3.9, 7.2), MustPoint(4.1, 6.8), WithPrecision(0), WithRounding(HalfEven)))
	})
	t.Run("y_component_also_rounded", func(t *testing.T) {
		assert.True(t, MustEqual(MustPoint(5, 2.71828), MustPoint(5, 2.71899), WithPrecision(3)))
		assert.False(t, MustEqual(MustPoint(5, 2.71828), MustPoint(5, 2.72899), WithPrecision(3)))
	})
}

func TestRoundingTies(t *testing.T) {
	cases := []struct {
		mode   RoundingMode
		v      float64
		digits int
		want   float64
	}{
		{Truncate, 1.0005, 3, 1},
		{Truncate, 1.123789, 3, 1.123},
		{Truncate, -1.123789, 3, -1.123},
		{Truncate, 2.5, 0, 2},
		{HalfAwayFromZero, 1.0005, 3, 1.001},
		{HalfAwayFromZero, -1.0005, 3, -1.001},
		{HalfAwayFromZero, 1.0015, 3, 1.002},
		{HalfAwayFromZero, 2.5, 0, 3},
		{HalfAwayFromZero, -2.5, 0, -3},
		{HalfAwayFromZero, 1.12345, 4, 1.1235},
		{HalfEven, 1.0025, 3, 1.002},
		{HalfEven, 1.0035, 3, 1.004},
		{HalfEven, 2.5, 0, 2},
		{HalfEven, 3.5, 0, 4},
		{HalfEven, -2.5, 0, -2},
		{HalfEven, 1.0026, 3, 1.003},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s/%v@%d", tc.mode, tc.v, tc.digits), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.mode.Round(tc.v, tc.digits))
		})
	}
}

func TestRoundingTiesThroughEqual(t *testing.T) {
	tie := MustPoint(1.0005, 0)
	up := MustPoint(1.001, 0)
	down := MustPoint(1.000, 0)

	assert.True(t, MustEqual(tie, down, WithPrecision(3)))
	assert.True(t, MustEqual(tie, up, WithPrecision(3), WithRounding(HalfAwayFromZero)))
	assert.True(t, MustEqual(tie, down, WithPrecision(3), WithRounding(HalfEven)))
	assert.False(t, MustEqual(tie, up, WithPrecision(3), WithRounding(HalfEven)))
}

func TestParseRoundingMode(t *testing.T) {
	for _, m := range []RoundingMode{Truncate, HalfAwayFromZero, HalfEven} {
		got, err := ParseRoundingMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseRoundingMode("ceiling")
	assert.Error(t, err)
}

func TestEqualPolygonRings(t *testing.T) {
	outer := [][]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}
	outerRev := [][]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	holeA := [][]float64{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}}
	holeB := [][]float64{{6, 6}, {8, 6}, {8, 8}, {6, 8}, {6, 6}}

	t.Run("exterior_reversed", func(t *testing.T) {
		a := MustPolygon([][][]float64{outer})
		b := MustPolygon([][][]float64{outerRev})
		assert.False(t, MustEqual(a, b))
		assert.True(t, MustEqual(a, b, IgnoreDirection()))
	})
	t.Run("hole_reversed_only", func(t *testing.T) {
		a := MustPolygon([][][]float64{outer, holeA})
		b := MustPolygon([][][]float64{outer, MustLineString(holeA).Reverse().positions()})
		assert.False(t, MustEqual(a, b))
		assert.True(t, MustEqual(a, b, IgnoreDirection()))
	})
	t.Run("ring_order_not_permuted", func(t *testing.T) {
		a := MustPolygon([][][]float64{outer, holeA, holeB})
		b := MustPolygon([][][]float64{outer, holeB, holeA})
		assert.False(t, MustEqual(a, b))
		assert.False(t, MustEqual(a, b, IgnoreDirection()))
	})
	t.Run("ring_count_mismatch", func(t *testing.T) {
		a := MustPolygon([][][]float64{outer})
		b := MustPolygon([][][]float64{outer, holeA})
		assert.False(t, MustEqual(a, b, IgnoreDirection()))
	})
	t.Run("start_vertex_rotation_is_not_equal", func(t *testing.T) {
		a := MustPolygon([][][]float64{outer})
		b := MustPolygon([][][]float64{{{0, 10}, {10, 10}, {10, 0}, {0, 0}, {0, 10}}})
		assert.False(t, MustEqual(a, b, IgnoreDirection()))
	})
}

func TestEqualLengthMismatch(t *testing.T) {
	short := MustLineString([][]float64{{1, 1}, {1, 2}, {1, 3}})
	assert.False(t, MustEqual(fixtureLine, short))
	assert.False(t, MustEqual(fixtureLine, short, IgnoreDirection(), WithPrecision(0)))

	// unvalidated shapes must not panic either
	assert.False(t, MustEqual(LineString{}, fixtureLine))
	assert.True(t, MustEqual(LineString{}, LineString{}))
	assert.False(t, MustEqual(Polygon{Rings: [][]Coordinate{{}}}, fixturePoly))
}

func TestEqualIgnoresElevation(t *testing.T) {
	assert.True(t, MustEqual(MustPoint(1, 2, 3), MustPoint(1, 2, 300)))
	assert.True(t, MustEqual(MustPoint(1, 2, 3), MustPoint(1, 2)))
	a := MustLineString([][]float64{{1, 1, 5}, {2, 2, 6}})
	b := MustLineString([][]float64{{1, 1}, {2, 2}})
	assert.True(t, MustEqual(a, b))
}

func TestEqualNonFinite(t *testing.T) {
	nan := Point{Coordinate{X: math.NaN(), Y: 1}}
	posInf := Point{Coordinate{X: math.Inf(1), Y: 1}}
	negInf := Point{Coordinate{X: math.Inf(-1), Y: 1}}

	assert.False(t, MustEqual(nan, nan))
	assert.False(t, MustEqual(nan, nan, WithPrecision(2)))
	assert.True(t, MustEqual(posInf, posInf))
	assert.True(t, MustEqual(posInf, posInf, WithPrecision(2)))
	assert.False(t, MustEqual(posInf, negInf))
	assert.False(t, MustEqual(posInf, MustPoint(math.MaxFloat64, 1), WithPrecision(0)))
}

func TestEqualInvalidArguments(t *testing.T) {
	_, err := Equal(nil, fixturePoint)
	assert.True(t, errors.Is(err, ErrNilGeometry))
	_, err = Equal(fixturePoint, nil)
	assert.True(t, errors.Is(err, ErrNilGeometry))

	_, err = Equal(fixturePoint, fixturePoint, WithPrecision(-1))
	assert.True(t, errors.Is(err, ErrInvalidPrecision))

	assert.Panics(t, func() { MustEqual(nil, nil) })

	p := fixturePoint
	for name, g := range map[string]Geometry{
		"point":      (*Point)(nil),
		"linestring": (*LineString)(nil),
		"polygon":    (*Polygon)(nil),
	} {
		t.Run("typed_nil_"+name, func(t *testing.T) {
			_, err := Equal(g, &p)
			assert.True(t, errors.Is(err, ErrNilGeometry))
			_, err = Equal(&p, g)
			assert.True(t, errors.Is(err, ErrNilGeometry))
		})
	}
}

func TestWithOptionsReplacesEarlierOptions(t *testing.T) {
	rev := fixtureLine.Reverse()
	assert.False(t, MustEqual(fixtureLine, rev, IgnoreDirection(), WithOptions(EqualOptions{})))
	assert.True(t, MustEqual(fixtureLine, rev, WithOptions(EqualOptions{}), IgnoreDirection()))
}

func TestRoundingModeNext(t *testing.T) {
	m := Truncate
	seen := []RoundingMode{}
	for range RoundingModes {
		seen = append(seen, m)
		m = m.Next()
	}
	assert.Equal(t, RoundingModes, seen)
	assert.Equal(t, Truncate, m)
}

func TestEqualDoesNotMutate(t *testing.T) {
	line := MustLineString([][]float64{{1.12345, 1}, {1, 2}, {1, 3.98765}})
	poly := MustPolygon([][][]float64{{{1.5555, 1}, {1, 10}, {10, 10}, {10, 1}, {1.5555, 1}}})
	lineBefore := append([]Coordinate(nil), line.Coords...)
	polyBefore := append([]Coordinate(nil), poly.Rings[0]...)

	MustEqual(line, line.Reverse(), IgnoreDirection(), WithPrecision(2))
	MustEqual(poly, poly.Reverse(), IgnoreDirection(), WithPrecision(1), WithRounding(HalfAwayFromZero))

	assert.Equal(t, lineBefore, line.Coords)
	assert.Equal(t, polyBefore, poly.Rings[0])
}

func TestEqualConcurrent(t *testing.T) {
	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func() {
			ok := true
			for j := 0; j < 200; j++ {
				ok = ok && MustEqual(fixturePoly, fixturePoly.Reverse(), IgnoreDirection(), WithPrecision(6))
			}
			done <- ok
		}()
	}
	for i := 0; i < 8; i++ {
		assert.True(t, <-done)
	}
}

func (l LineString) positions() [][]float64 {
	out := make([][]float64, 0, len(l.Coords))
	for _, c := range l.Coords {
		out = append(out, []float64{c.X, c.Y})
	}
	return out
}
