package geom

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrNilGeometry is returned when an operand is nil or a nil pointer.
	ErrNilGeometry      = errors.New("nil geometry")
	ErrInvalidPrecision = errors.New("invalid precision")
)

// EqualOptions relaxes Equal. The zero value compares exactly and in order.
type EqualOptions struct {
	// IgnoreDirection accepts a line or ring traversed end to start.
	IgnoreDirection bool
	// Precision is the number of decimal digits kept; it only applies when
	// HasPrecision is set.
	Precision    int
	HasPrecision bool
	// Rounding decides how digits beyond Precision are dropped.
	Rounding RoundingMode
}

// RoundingMode picks how a component is cut to a number of decimals. All
// modes work on the shortest decimal form of the float, so 1.0005 is treated
// as the exact tie it is written as.
type RoundingMode int

const (
	// Truncate drops extra digits toward zero: 1.123789 becomes 1.123.
	Truncate RoundingMode = iota
	// HalfAwayFromZero rounds ties away from zero: 1.0005 becomes 1.001.
	HalfAwayFromZero
	// HalfEven rounds ties to the even digit: 1.0025 becomes 1.002.
	HalfEven
)

// RoundingModes lists every mode in declaration order.
var RoundingModes = []RoundingMode{Truncate, HalfAwayFromZero, HalfEven}

// Next returns the mode after m, wrapping back to the first.
func (m RoundingMode) Next() RoundingMode {
	return RoundingModes[(int(m)+1)%len(RoundingModes)]
}

func (m RoundingMode) String() string {
	switch m {
	case Truncate:
		return "truncate"
	case HalfAwayFromZero:
		return "half-away-from-zero"
	case HalfEven:
		return "half-even"
	}
	return "unknown"
}

// ParseRoundingMode accepts the names printed by String.
func ParseRoundingMode(s string) (RoundingMode, error) {
	for _, m := range RoundingModes {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, errors.Newf("unknown rounding mode %q", s)
}

// Round cuts v to digits decimals. NaN and infinities are returned unchanged.
func (m RoundingMode) Round(v float64, digits int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	// every finite float64 is exact at 350 decimals
	if digits > 350 {
		return v
	}
	d := decimal.NewFromFloat(v)
	switch m {
	case HalfAwayFromZero:
		d = d.Round(int32(digits))
	case HalfEven:
		d = d.RoundBank(int32(digits))
	default:
		d = d.Truncate(int32(digits))
	}
	return d.InexactFloat64()
}

// EqualOption adjusts EqualOptions for one call to Equal.
type EqualOption func(*EqualOptions)

// IgnoreDirection lets a line or ring match its reverse.
func IgnoreDirection() EqualOption {
	return func(o *EqualOptions) { o.IgnoreDirection = true }
}

// WithPrecision compares X and Y after cutting them to digits decimals.
// A negative value makes Equal fail with ErrInvalidPrecision.
func WithPrecision(digits int) EqualOption {
	return func(o *EqualOptions) {
		o.Precision = digits
		o.HasPrecision = true
	}
}

// WithRounding picks how WithPrecision drops digits. It has no effect
// without a precision.
func WithRounding(mode RoundingMode) EqualOption {
	return func(o *EqualOptions) { o.Rounding = mode }
}

// WithOptions replaces every setting with opts. Options given before it are
// discarded; options given after it still apply on top.
func WithOptions(opts EqualOptions) EqualOption {
	return func(o *EqualOptions) { *o = opts }
}

// Equal reports whether a and b describe the same geometry.
//
// Geometries of different kinds are never equal. Line strings and polygon
// rings must match coordinate for coordinate in order, or in reverse when
// IgnoreDirection is given; polygon rings are paired by position and are not
// reordered. With a precision, X and Y are cut to that many decimals before
// they are compared, truncating toward zero unless WithRounding picks another
// mode. Z is ignored.
//
// NaN never equals anything and infinities only equal the same infinity; both
// bypass rounding. The error is non-nil only for a nil geometry or a negative
// precision.
func Equal(a, b Geometry, opts ...EqualOption) (bool, error) {
	a, err := deref(a)
	if err != nil {
		return false, err
	}
	b, err = deref(b)
	if err != nil {
		return false, err
	}
	var o EqualOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.HasPrecision && o.Precision < 0 {
		return false, errors.Wrapf(ErrInvalidPrecision, "precision %d", o.Precision)
	}
	c := comparer{opts: o}
	switch ga := a.(type) {
	case Point:
		gb, ok := b.(Point)
		return ok && c.coordEqual(ga.Coordinate, gb.Coordinate), nil
	case LineString:
		gb, ok := b.(LineString)
		return ok && c.seqEqual(ga.Coords, gb.Coords), nil
	case Polygon:
		gb, ok := b.(Polygon)
		if !ok || len(ga.Rings) != len(gb.Rings) {
			return false, nil
		}
		for i := range ga.Rings {
			if !c.seqEqual(ga.Rings[i], gb.Rings[i]) {
				return false, nil
			}
		}
		return true, nil
	}
	return false, nil
}

// deref turns pointer geometries into values so the comparison only sees
// Point, LineString and Polygon. Nil, including typed nil pointers, is an error.
func deref(g Geometry) (Geometry, error) {
	switch t := g.(type) {
	case nil:
		return nil, ErrNilGeometry
	case *Point:
		if t == nil {
			return nil, errors.Wrap(ErrNilGeometry, "*Point")
		}
		return *t, nil
	case *LineString:
		if t == nil {
			return nil, errors.Wrap(ErrNilGeometry, "*LineString")
		}
		return *t, nil
	case *Polygon:
		if t == nil {
			return nil, errors.Wrap(ErrNilGeometry, "*Polygon")
		}
		return *t, nil
	}
	return g, nil
}

// MustEqual is Equal for inputs known to be valid; it panics on error.
func MustEqual(a, b Geometry, opts ...EqualOption) bool {
	eq, err := Equal(a, b, opts...)
	if err != nil {
		panic(err)
	}
	return eq
}

type comparer struct {
	opts EqualOptions
}

func (c comparer) seqEqual(a, b []Coordinate) bool {
	if len(a) != len(b) {
		return false
	}
	forward := true
	for i := range a {
		if !c.coordEqual(a[i], b[i]) {
			forward = false
			break
		}
	}
	if forward || !c.opts.IgnoreDirection {
		return forward
	}
	n := len(a)
	for i := range a {
		if !c.coordEqual(a[i], b[n-1-i]) {
			return false
		}
	}
	return true
}

func (c comparer) coordEqual(a, b Coordinate) bool {
	return c.round(a.X) == c.round(b.X) && c.round(a.Y) == c.round(b.Y)
}

func (c comparer) round(v float64) float64 {
	if !c.opts.HasPrecision {
		return v
	}
	return c.opts.Rounding.Round(v, c.opts.Precision)
}
