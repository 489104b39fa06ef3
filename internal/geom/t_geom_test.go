package geom

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_geom01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geom01. vectors")

	v := V(3, -4)
	chk.Float64(tst, "len", 1e-15, v.Len(), 5)
	n := v.Normalize()
	chk.Float64(tst, "unit", 1e-15, n.Len(), 1)
	chk.Float64(tst, "perp", 1e-15, v.Perp().Dot(v), 0)
	chk.Float64(tst, "perp x", 1e-15, V(1, 0).Perp().Z, 1)
	chk.Float64(tst, "cross", 1e-15, V(2, 0).Cross(V(0, 1)), 2)
	chk.Int(tst, "angle down", V(0, 1).Angle(), 90)
	chk.Int(tst, "angle up", V(0, -1).Angle(), 270)
	chk.String(tst, V(1, 0.5).String(), "[1.000; 0.500]")

	if !V(1, 2).Equal(V(1+1e-9, 2-1e-9)) {
		tst.Errorf("points within precision must be equal")
	}
	if V(1, 2).Equal(V(1.001, 2)) {
		tst.Errorf("distinct points must differ")
	}
	if V(0, 0).Normalize() != V(0, 0) {
		tst.Errorf("zero vector stays zero")
	}
}

func Test_geom02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geom02. points on segments")

	a, b := V(0, 0), V(4, 0)
	if !OnSegment(a, b, V(2, 0), 50) || !OnSegment(a, b, b, 50) {
		tst.Errorf("horizontal segment")
	}
	if OnSegment(a, b, V(5, 0), 50) || OnSegment(a, b, V(2, 0.01), 50) {
		tst.Errorf("outside horizontal segment")
	}
	if !OnSegment(V(0, 0), V(0, -3), V(0, -1), 50) {
		tst.Errorf("vertical segment")
	}

	d1, d2 := V(0, 0), V(3, 3)
	if !OnSegment(d1, d2, V(1, 1), 50) || !OnSegment(d1, d2, V(1.5, 1.5001), 50) {
		tst.Errorf("diagonal segment")
	}
	if OnSegment(d1, d2, V(1, 1.2), 50) || OnSegment(d1, d2, V(4, 4), 50) {
		tst.Errorf("outside diagonal segment")
	}
	if OnSegment(a, a, a, 50) {
		tst.Errorf("zero-length segment contains nothing")
	}

	k, ok := LineParam(a, b, V(6, 0), 50)
	if !ok {
		tst.Fatalf("collinear point")
	}
	chk.Float64(tst, "k", 1e-15, k, 1.5)
	k, ok = LineParam(d1, d2, V(-1, -1), 50)
	chk.Float64(tst, "k diagonal", 1e-15, k, -1.0/3)
	if _, ok := LineParam(a, b, V(1, 1), 50); ok {
		tst.Errorf("off-line point")
	}
}

func Test_geom03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geom03. bounds")

	var b Bounds
	b.Extend(V(2, -3))
	b.Extend(V(-1, 1))
	chk.Float64(tst, "width", 1e-15, b.Width(), 3)
	chk.Float64(tst, "height", 1e-15, b.Height(), 4)
	chk.Float64(tst, "mid", 1e-15, Dist(Mid(V(0, 0), V(2, 0)), V(1, 0)), 0)
	chk.Float64(tst, "dist", 1e-15, Dist(V(0, 0), V(1, 1)), math.Sqrt2)
}
