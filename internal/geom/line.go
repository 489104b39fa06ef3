package geom

import "math"

// lineEpsilon is the collinearity tolerance for a 200 px long segment.
// Longer segments get a proportionally tighter tolerance so that the
// angular tolerance stays roughly constant on screen.
const lineEpsilon = 0.03

// tolerance returns the allowed difference between the x and z line
// parameters of a point on segment ab. scale is in pixels per model unit.
func tolerance(a, b Vec, scale float64) float64 {
	lengthFactor := Dist(a, b) / 200 * scale
	if lengthFactor <= 0 {
		return 0
	}
	return lineEpsilon / lengthFactor
}

// OnSegment reports whether c lies on segment ab (endpoints included).
// Axis-aligned segments require an exact coordinate match; general segments
// use a length-scaled tolerance. A zero-length segment contains nothing.
func OnSegment(a, b, c Vec, scale float64) bool {
	if a.Equal(b) {
		return false
	}
	switch {
	case same(a.X, b.X):
		return same(c.X, a.X) && between(c.Z, a.Z, b.Z)
	case same(a.Z, b.Z):
		return same(c.Z, a.Z) && between(c.X, a.X, b.X)
	}
	alpha1 := (c.X - a.X) / (b.X - a.X)
	alpha2 := (c.Z - a.Z) / (b.Z - a.Z)
	return math.Abs(alpha1-alpha2) < tolerance(a, b, scale) && alpha1 >= 0 && alpha1 <= 1
}

// LineParam returns k such that c = a + k(b-a) when c lies on the infinite
// line through a and b. ok is false otherwise, or when a and b coincide.
func LineParam(a, b, c Vec, scale float64) (k float64, ok bool) {
	if a.Equal(b) {
		return 0, false
	}
	switch {
	case same(a.X, b.X):
		if !same(c.X, a.X) {
			return 0, false
		}
		return (c.Z - a.Z) / (b.Z - a.Z), true
	case same(a.Z, b.Z):
		if !same(c.Z, a.Z) {
			return 0, false
		}
		return (c.X - a.X) / (b.X - a.X), true
	}
	alpha1 := (c.X - a.X) / (b.X - a.X)
	alpha2 := (c.Z - a.Z) / (b.Z - a.Z)
	if math.Abs(alpha1-alpha2) < tolerance(a, b, scale) {
		return (alpha1 + alpha2) / 2, true
	}
	return 0, false
}

func between(x, a, b float64) bool {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return quantize(x) >= quantize(lo) && quantize(x) <= quantize(hi)
}

// Bounds is an axis-aligned box. The zero value contains the origin.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinZ float64 `json:"min_z"`
	MaxX float64 `json:"max_x"`
	MaxZ float64 `json:"max_z"`
}

// Extend grows b to contain p
func (b *Bounds) Extend(p Vec) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinZ = math.Min(b.MinZ, p.Z)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxZ = math.Max(b.MaxZ, p.Z)
}

// Width returns MaxX - MinX
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxZ - MinZ
func (b Bounds) Height() float64 { return b.MaxZ - b.MinZ }
