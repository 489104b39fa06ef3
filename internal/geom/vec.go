package geom

import (
	"fmt"
	"math"
)

// Precision is the working precision of model coordinates. Two points closer
// than this on both axes share a Key and are considered the same location.
const Precision = 1e-6

// Vec is an immutable 2D point or vector in the x-z plane.
// The z axis points down, matching screen coordinates.
type Vec struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Key is the quantized identity of a point, used as a map key for joints
type Key struct {
	X int64
	Z int64
}

// V is shorthand for Vec{X: x, Z: z}
func V(x, z float64) Vec { return Vec{X: x, Z: z} }

func (v Vec) Add(u Vec) Vec       { return Vec{v.X + u.X, v.Z + u.Z} }
func (v Vec) Sub(u Vec) Vec       { return Vec{v.X - u.X, v.Z - u.Z} }
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Z * s} }
func (v Vec) Neg() Vec            { return Vec{-v.X, -v.Z} }
func (v Vec) Dot(u Vec) float64   { return v.X*u.X + v.Z*u.Z }

// Cross returns the z-component of the 3D cross product, i.e. the moment of
// force u applied at point v about the origin.
func (v Vec) Cross(u Vec) float64 { return v.X*u.Z - v.Z*u.X }

// Len returns the Euclidean length of v
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Z) }

// Normalize returns the unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec{v.X / l, v.Z / l}
}

// Perp returns v rotated by +90 degrees in the x-z plane: (-z, x)
func (v Vec) Perp() Vec { return Vec{-v.Z, v.X} }

// Key quantizes v to Precision
func (v Vec) Key() Key {
	return Key{X: quantize(v.X), Z: quantize(v.Z)}
}

// Equal reports whether v and u denote the same location
func (v Vec) Equal(u Vec) bool { return v.Key() == u.Key() }

// Angle returns the direction of v in whole degrees, in [0, 360)
func (v Vec) Angle() int {
	angle := int(math.Round(math.Atan2(v.Z, v.X) * 180 / math.Pi))
	if angle < 0 {
		angle += 360
	}
	return angle % 360
}

func (v Vec) String() string {
	return fmt.Sprintf("[%.3f; %.3f]", v.X, v.Z)
}

// Dist returns the distance between a and b
func Dist(a, b Vec) float64 { return b.Sub(a).Len() }

// Mid returns the midpoint of segment ab
func Mid(a, b Vec) Vec { return Vec{(a.X + b.X) / 2, (a.Z + b.Z) / 2} }

func quantize(x float64) int64 {
	return int64(math.Round(x / Precision))
}

func same(a, b float64) bool { return quantize(a) == quantize(b) }
