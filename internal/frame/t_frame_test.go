package frame

import (
	"errors"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/martinmajer/mechanika/internal/geom"
	"github.com/martinmajer/mechanika/internal/nscp"
)

var down = geom.V(0, 1)
var up = geom.V(0, -1)

// simpleBeam builds a 4 m beam on a pinned and a roller support
func simpleBeam() *Model {
	m := New()
	m.AddBeam(NewBeam(geom.V(0, 0), geom.V(4, 0)))
	m.AddSupport(NewSupport(Pinned, geom.V(0, 0), up))
	m.AddSupport(NewSupport(Roller, geom.V(4, 0), up))
	return m
}

func reaction(tst *testing.T, a *Analysis, name string) float64 {
	v, ok := a.Reaction(name)
	if !ok {
		tst.Fatalf("reaction %s not solved (status %s)", name, a.Status())
	}
	return v
}

func Test_frame01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame01. simply supported beam, point force")

	m := simpleBeam()
	f := NewForce(geom.V(2, 0), down, 10)
	m.AddForce(f)
	a := m.Analysis()

	chk.String(tst, a.Status().String(), "determinate")
	chk.Int(tst, "rows", a.Rows(), 3)
	chk.Strings(tst, "unknowns", a.Unknowns(), []string{"R1", "R2", "R3"})
	chk.Float64(tst, "R1", 1e-12, reaction(tst, a, "R1"), 5)
	chk.Float64(tst, "R2", 1e-12, reaction(tst, a, "R2"), 0)
	chk.Float64(tst, "R3", 1e-12, reaction(tst, a, "R3"), 5)
	chk.Float64(tst, "max force", 1e-12, a.MaxForce(), 5)
	chk.String(tst, f.Name, "F1")
	if !a.Enabled(f) {
		tst.Errorf("force on beam must be enabled")
	}

	segs := a.InternalForces(m.Beams[0])
	chk.Int(tst, "segments", len(segs), 2)
	chk.Float64(tst, "V left", 1e-12, segs[0].VStart, 5)
	chk.Float64(tst, "V right", 1e-12, segs[1].VStart, -5)
	chk.Float64(tst, "M mid", 1e-12, segs[0].MEnd, 10)
	chk.Float64(tst, "M end", 1e-12, segs[1].MEnd, 0)
	chk.Float64(tst, "max moment", 1e-12, a.MaxMoment(), 10)
}

func Test_frame02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame02. simply supported beam, uniform load")

	m := simpleBeam()
	l := NewLoad(geom.V(0, 0), geom.V(4, 0), down, 2)
	m.AddLoad(l)
	a := m.Analysis()

	chk.String(tst, a.Status().String(), "determinate")
	chk.Float64(tst, "R1", 1e-12, reaction(tst, a, "R1"), 4)
	chk.Float64(tst, "R3", 1e-12, reaction(tst, a, "R3"), 4)
	chk.Array(tst, "active parts", 1e-15, a.ActiveParts(l), []float64{0, 1})

	segs := a.InternalForces(m.Beams[0])
	chk.Int(tst, "segments", len(segs), 1)
	if !segs[0].HasExtreme {
		tst.Fatalf("expected a moment extremum")
	}
	chk.Float64(tst, "s*", 1e-12, segs[0].SExtreme, 2)
	chk.Float64(tst, "M*", 1e-12, segs[0].MExtreme, 4)
	chk.Float64(tst, "M end", 1e-12, segs[0].MEnd, 0)
	chk.Float64(tst, "V end", 1e-12, segs[0].VEnd, -4)
}

func Test_frame03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame03. triangular truss reduces to rods")

	m := New()
	m.AddBeam(NewBeam(geom.V(0, 0), geom.V(4, 0)))
	m.AddBeam(NewBeam(geom.V(0, 0), geom.V(2, -2)))
	m.AddBeam(NewBeam(geom.V(2, -2), geom.V(4, 0)))
	m.AddSupport(NewSupport(Pinned, geom.V(0, 0), up))
	m.AddSupport(NewSupport(Roller, geom.V(4, 0), up))
	m.AddForce(NewForce(geom.V(2, -2), down, 10))
	a := m.Analysis()

	chk.String(tst, a.Status().String(), "determinate")
	chk.Int(tst, "rows", a.Rows(), 6)
	for _, j := range a.Joints() {
		if !j.AllRods {
			tst.Errorf("%v: expected all rods", j)
		}
	}
	for _, b := range m.Beams {
		st, _ := a.State(b)
		if !st.Rod {
			tst.Errorf("%v: expected rod", b)
		}
	}
	chk.Float64(tst, "bottom chord", 1e-12, reaction(tst, a, "R1"), 5)
	chk.Float64(tst, "left diagonal", 1e-12, reaction(tst, a, "R2"), -7.0710678118654755)
	chk.Float64(tst, "right diagonal", 1e-12, reaction(tst, a, "R3"), -7.0710678118654755)
	chk.Float64(tst, "left support", 1e-12, reaction(tst, a, "R4"), 5)
	chk.Float64(tst, "right support", 1e-12, reaction(tst, a, "R6"), 5)

	segs := a.InternalForces(m.Beams[0])
	chk.Int(tst, "rod segments", len(segs), 1)
	chk.Float64(tst, "N", 1e-12, segs[0].NStart, 5)
	chk.Float64(tst, "N", 1e-12, segs[0].NEnd, 5)
	chk.Float64(tst, "M", 1e-15, segs[0].MaxAbsMoment(), 0)
}

func Test_frame04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame04. determinacy classification")

	m := New()
	chk.String(tst, m.Analysis().Status().String(), "empty")

	b := NewBeam(geom.V(0, 0), geom.V(4, 0))
	m.AddBeam(b)
	m.AddSupport(NewSupport(Fixed, geom.V(0, 0), up))
	m.AddSupport(NewSupport(Fixed, geom.V(4, 0), up))
	a := m.Analysis()
	chk.String(tst, a.Status().String(), "indeterminate")
	chk.Int(tst, "degree", a.Degree(), 3)
	if len(a.Reactions()) != 0 {
		tst.Errorf("indeterminate structure must not report reactions")
	}

	m = New()
	m.AddBeam(NewBeam(geom.V(0, 0), geom.V(4, 0)))
	m.AddSupport(NewSupport(Roller, geom.V(0, 0), up))
	a = m.Analysis()
	chk.String(tst, a.Status().String(), "overdetermined")
	chk.Int(tst, "degree", a.Degree(), 2)

	// roller reaction passes through the pin: square but singular
	m = New()
	m.AddBeam(NewBeam(geom.V(0, 0), geom.V(4, 0)))
	m.AddSupport(NewSupport(Pinned, geom.V(0, 0), up))
	m.AddSupport(NewSupport(Roller, geom.V(4, 0), geom.V(1, 0)))
	a = m.Analysis()
	chk.String(tst, a.Status().String(), "exceptional")
	if !strings.Contains(a.Summary(), "exceptional") {
		tst.Errorf("summary %q", a.Summary())
	}
}

func Test_frame05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame05. load split over a hinge")

	m := New()
	m.AddBeam(NewBeam(geom.V(0, 0), geom.V(2, 0)))
	m.AddBeam(NewBeam(geom.V(2, 0), geom.V(4, 0)))
	m.AddSupport(NewSupport(Fixed, geom.V(0, 0), up))
	m.AddSupport(NewSupport(Roller, geom.V(4, 0), up))
	l := NewLoad(geom.V(0, 0), geom.V(4, 0), down, 1)
	m.AddLoad(l)
	a := m.Analysis()

	chk.String(tst, a.Status().String(), "determinate")
	chk.Int(tst, "unknowns", len(a.Unknowns()), 6)
	chk.Array(tst, "active parts", 1e-15, a.ActiveParts(l), []float64{0, 1})

	for _, b := range m.Beams {
		st, _ := a.State(b)
		chk.Int(tst, "partial loads", len(st.Loads), 1)
		if st.Loads[0].Parent() != l {
			tst.Errorf("partial load must point back to its load")
		}
	}

	chk.Float64(tst, "roller", 1e-12, reaction(tst, a, "R4"), 1)
	chk.Float64(tst, "fixed z", 1e-12, reaction(tst, a, "R2"), -3)
	chk.Float64(tst, "fixed m", 1e-12, abs(reaction(tst, a, "R3")), 4)

	left := a.InternalForces(m.Beams[0])
	right := a.InternalForces(m.Beams[1])
	chk.Float64(tst, "hinge left", 1e-12, left[len(left)-1].MEnd, 0)
	chk.Float64(tst, "hinge right", 1e-12, right[0].M, 0)
	chk.Float64(tst, "roller end", 1e-12, right[len(right)-1].MEnd, 0)
}

func Test_frame06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame06. load clipped to beam")

	m := simpleBeam()
	l := NewLoad(geom.V(-1, 0), geom.V(2, 0), down, 3)
	m.AddLoad(l)
	a := m.Analysis()

	chk.Array(tst, "active parts", 1e-12, a.ActiveParts(l), []float64{1.0 / 3, 1})
	st, _ := a.State(m.Beams[0])
	chk.Int(tst, "partial loads", len(st.Loads), 1)
	chk.Float64(tst, "start", 1e-15, st.Loads[0].Start.X, 0)
	chk.Float64(tst, "end", 1e-15, st.Loads[0].End.X, 2)

	// resultant 6 kN at x = 1
	chk.Float64(tst, "R1", 1e-12, reaction(tst, a, "R1"), 4.5)
	chk.Float64(tst, "R3", 1e-12, reaction(tst, a, "R3"), 1.5)

	off := NewLoad(geom.V(0, -1), geom.V(4, -1), down, 3)
	m.AddLoad(off)
	a = m.Analysis()
	if a.Enabled(off) || len(a.ActiveParts(off)) != 0 {
		tst.Errorf("load off the beam must stay disabled")
	}
}

func Test_frame07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame07. stiff corner")

	corner := geom.V(0, -3)
	m := New()
	m.AddBeam(NewBeam(geom.V(0, 0), corner))
	m.AddBeam(NewBeam(corner, geom.V(4, -3)))
	m.AddSupport(NewSupport(Fixed, geom.V(0, 0), up))
	m.AddForce(NewForce(geom.V(4, -3), down, 5))

	a := m.Analysis()
	chk.String(tst, a.Status().String(), "overdetermined")
	chk.Int(tst, "degree", a.Degree(), 1)

	m.SetStiff(corner, true)
	a = m.Analysis()
	chk.String(tst, a.Status().String(), "determinate")
	chk.Int(tst, "rows", a.Rows(), 6)
	j, ok := a.Joint(corner)
	if !ok || !j.Stiff {
		tst.Fatalf("corner must be a stiff joint")
	}
	chk.Int(tst, "joint pairs", len(j.Reactions), 3)
	chk.Float64(tst, "fixed z", 1e-12, reaction(tst, a, "R2"), -5)
	chk.Float64(tst, "fixed m", 1e-12, abs(reaction(tst, a, "R3")), 20)

	column := a.InternalForces(m.Beams[0])
	girder := a.InternalForces(m.Beams[1])
	chk.Float64(tst, "column top", 1e-12, abs(column[len(column)-1].MEnd), 20)
	chk.Float64(tst, "girder start", 1e-12, abs(girder[0].M), 20)
	chk.Float64(tst, "girder end", 1e-12, girder[len(girder)-1].MEnd, 0)
	chk.Float64(tst, "column N", 1e-12, abs(column[0].NStart), 5)

	// stiffness set on an empty position is pruned on recalculation
	m.SetStiff(geom.V(10, 10), true)
	chk.Int(tst, "stiff positions", len(m.Stiff()), 1)
}

func Test_frame08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame08. recalculation is idempotent")

	m := simpleBeam()
	m.AddForce(NewForce(geom.V(1, 0), down, 6))
	m.AddLoad(NewLoad(geom.V(0, 0), geom.V(4, 0), down, 1))

	first := m.Analysis().Reactions()
	second := m.Recalculate().Reactions()
	chk.Int(tst, "reactions", len(second), len(first))
	for i := range first {
		chk.String(tst, second[i].Name, first[i].Name)
		chk.Float64(tst, first[i].Name, 1e-15, second[i].Value, first[i].Value)
	}

	// vertical equilibrium
	chk.Float64(tst, "sum z", 1e-12, reaction(tst, m.Analysis(), "R1")+reaction(tst, m.Analysis(), "R3"), 10)
}

func Test_frame09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame09. mutators and naming")

	m := simpleBeam()
	chk.String(tst, m.Beams[0].Name, "1")
	chk.String(tst, m.Supports[1].Name, "S2")

	f := NewForce(geom.V(2, 0), down, 1)
	mo := NewMoment(geom.V(1, 0), 1)
	l := NewLoad(geom.V(0, 0), geom.V(1, 0), down, 1)
	m.AddForce(f)
	m.AddMoment(mo)
	m.AddLoad(l)
	chk.Strings(tst, "names", []string{f.Name, mo.Name, l.Name}, []string{"F1", "M2", "f3"})

	if err := m.RemoveForce(f); err != nil {
		tst.Errorf("remove: %v", err)
	}
	if err := m.RemoveForce(f); !errors.Is(err, ErrUnknownEntity) {
		tst.Errorf("expected ErrUnknownEntity, got %v", err)
	}
	chk.Int(tst, "forces", len(m.Forces), 0)

	free := NewForce(geom.V(10, 10), down, 1)
	m.AddForce(free)
	if m.Analysis().Enabled(free) {
		tst.Errorf("force off every beam must be disabled")
	}

	b := m.Bounds()
	chk.Array(tst, "bounds", 1e-15, []float64{b.MinX, b.MinZ, b.MaxX, b.MaxZ}, []float64{0, 0, 4, 0})
	if !strings.Contains(m.Info(), "R1 =") {
		tst.Errorf("info lacks reactions:\n%s", m.Info())
	}
}

func Test_frame10(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame10. load combinations")

	m := simpleBeam()
	live := NewForce(geom.V(2, 0), down, 10)
	live.Case = nscp.Live
	m.AddForce(live)
	m.AddForce(NewForce(geom.V(2, 0), down, 10))

	chk.Float64(tst, "unfactored", 1e-12, reaction(tst, m.Analysis(), "R1"), 10)

	c1, _ := nscp.Find(nscp.LoadCombinations, "1")
	m.SetCombination(c1)
	chk.Float64(tst, "1.4D", 1e-12, reaction(tst, m.Analysis(), "R1"), 7)

	c2, _ := nscp.Find(nscp.LoadCombinations, "2")
	a := m.AnalyzeWith(c2)
	chk.Float64(tst, "1.2D + 1.6L", 1e-12, reaction(tst, a, "R1"), 14)
	chk.String(tst, m.Analysis().Combination().ID, "1")

	env := Envelope(m, nscp.SimplifiedCombinations)
	chk.Int(tst, "beams", len(env), 1)
	chk.String(tst, env[0].Moment.Combination.ID, "2")
	chk.Float64(tst, "governing M", 1e-12, env[0].Moment.Value, 28)
}

func Test_frame11(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame11. crossing beams share a joint")

	m := New()
	m.AddBeam(NewBeam(geom.V(0, 0), geom.V(4, 0)))
	m.AddBeam(NewBeam(geom.V(2, 0), geom.V(2, 2)))
	a := m.Analysis()

	j, ok := a.Joint(geom.V(2, 0))
	if !ok {
		tst.Fatalf("T junction must create a joint")
	}
	chk.Int(tst, "beams at joint", len(j.Beams), 2)
	st, _ := a.State(m.Beams[0])
	var inner int
	for _, sp := range st.Points {
		if sp.Joint == j {
			inner++
			chk.Float64(tst, "arc length", 1e-15, sp.S, 2)
		}
	}
	chk.Int(tst, "inner joint points", inner, 1)
	if st.Rod {
		tst.Errorf("beam with an inner joint is not a rod")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func Test_frame12(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame12. global equilibrium of a bent frame")

	m := New()
	m.AddBeam(NewBeam(geom.V(0, 0), geom.V(0, -3)))
	m.AddBeam(NewBeam(geom.V(0, -3), geom.V(4, -3)))
	m.SetStiff(geom.V(0, -3), true)
	pin := NewSupport(Pinned, geom.V(0, 0), up)
	roller := NewSupport(Roller, geom.V(4, -3), up)
	m.AddSupport(pin)
	m.AddSupport(roller)
	m.AddForce(NewForce(geom.V(0, -2), geom.V(1, 0), 4))
	m.AddLoad(NewLoad(geom.V(0, -3), geom.V(4, -3), down, 2))

	a := m.Analysis()
	chk.String(tst, a.Status().String(), "determinate")

	var sum geom.Vec
	var moment float64
	add := func(at, f geom.Vec) {
		sum = sum.Add(f)
		moment += at.Cross(f)
	}
	for _, f := range m.Forces {
		add(f.Origin, f.Vector())
	}
	for _, l := range m.Loads {
		add(l.Center(), l.Direction.Scale(l.Resultant()))
	}
	for _, s := range []*Support{pin, roller} {
		for _, r := range a.SupportReactions(s) {
			f := r.(*Force)
			add(f.Origin, f.Vector())
		}
	}
	chk.Float64(tst, "sum x", 1e-9, sum.X, 0)
	chk.Float64(tst, "sum z", 1e-9, sum.Z, 0)
	chk.Float64(tst, "sum M", 1e-9, moment, 0)

	// the load ends at the roller, so the beam moment closes to zero there
	segs := a.InternalForces(m.Beams[1])
	chk.Float64(tst, "M at roller", 1e-9, segs[len(segs)-1].MEnd, 0)
}

// tiedArch builds two loaded rafters hinged at the apex and tied at the
// base. With rod set, the tie is a bare bar and reduces to a rod; otherwise
// a zero force keeps it a beam.
func tiedArch(rod bool) (m *Model, pin, roller *Support) {
	m = New()
	m.AddBeam(NewBeam(geom.V(0, 0), geom.V(2, -2)))
	m.AddBeam(NewBeam(geom.V(2, -2), geom.V(4, 0)))
	m.AddBeam(NewBeam(geom.V(0, 0), geom.V(4, 0)))
	pin = NewSupport(Pinned, geom.V(0, 0), up)
	roller = NewSupport(Roller, geom.V(4, 0), up)
	m.AddSupport(pin)
	m.AddSupport(roller)
	m.AddForce(NewForce(geom.V(1, -1), down, 5))
	m.AddForce(NewForce(geom.V(3, -1), down, 5))
	if !rod {
		m.AddForce(NewForce(geom.V(2, 0), down, 0))
	}
	return
}

func Test_frame13(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame13. rod reduction leaves reactions unchanged")

	mr, pinR, rollerR := tiedArch(true)
	mb, pinB, rollerB := tiedArch(false)
	ar, ab := mr.Analysis(), mb.Analysis()

	chk.String(tst, ar.Status().String(), "determinate")
	chk.String(tst, ab.Status().String(), "determinate")
	chk.Int(tst, "rod rows", ar.Rows(), 6)
	chk.Int(tst, "beam rows", ab.Rows(), 9)

	tieR, _ := ar.State(mr.Beams[2])
	tieB, _ := ab.State(mb.Beams[2])
	if !tieR.Rod {
		tst.Errorf("bare tie must reduce to a rod")
	}
	if tieB.Rod {
		tst.Errorf("loaded tie must stay a beam")
	}

	pairs := [][2]*Support{{pinR, pinB}, {rollerR, rollerB}}
	for _, p := range pairs {
		rs, bs := ar.SupportReactions(p[0]), ab.SupportReactions(p[1])
		chk.Int(tst, p[0].Name, len(rs), len(bs))
		for i := range rs {
			chk.Float64(tst, rs[i].Label(), 1e-9, rs[i].Magnitude(), bs[i].Magnitude())
		}
	}
	pr := ar.SupportReactions(pinR)
	chk.Float64(tst, "pin vertical", 1e-9, pr[0].Magnitude(), 5)
	chk.Float64(tst, "pin horizontal", 1e-9, pr[1].Magnitude(), 0)
	chk.Float64(tst, "roller", 1e-9, ar.SupportReactions(rollerR)[0].Magnitude(), 5)

	chk.Float64(tst, "tie force", 1e-9, reaction(tst, ar, "R3"), 2.5)
	chk.Float64(tst, "tie N as rod", 1e-9, ar.InternalForces(mr.Beams[2])[0].NStart, 2.5)
	var nb float64
	for _, seg := range ab.InternalForces(mb.Beams[2]) {
		nb = max(nb, seg.MaxAbsForce())
	}
	chk.Float64(tst, "tie |N| as beam", 1e-9, nb, 2.5)
}

func Test_frame14(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame14. three rods at a hinged joint")

	a0, d, b0, c := geom.V(0, 0), geom.V(2, 0), geom.V(4, 0), geom.V(2, -2)
	m := New()
	m.AddBeam(NewBeam(a0, d))
	m.AddBeam(NewBeam(d, b0))
	m.AddBeam(NewBeam(a0, c))
	m.AddBeam(NewBeam(c, b0))
	m.AddBeam(NewBeam(c, d))
	m.AddSupport(NewSupport(Pinned, a0, up))
	m.AddSupport(NewSupport(Roller, b0, up))
	m.AddForce(NewForce(c, down, 10))
	a := m.Analysis()

	chk.String(tst, a.Status().String(), "determinate")
	chk.Int(tst, "rows", a.Rows(), 8)
	chk.Int(tst, "unknowns", len(a.Unknowns()), 8)

	for _, p := range []geom.Vec{d, c} {
		j, ok := a.Joint(p)
		if !ok {
			tst.Fatalf("no joint at %v", p)
		}
		chk.Int(tst, j.String()+" beams", len(j.Beams), 3)
		if !j.AllRods {
			tst.Errorf("%v: expected all rods", j)
		}
	}

	chk.Float64(tst, "left chord", 1e-9, reaction(tst, a, "R1"), 5)
	chk.Float64(tst, "right chord", 1e-9, reaction(tst, a, "R2"), 5)
	chk.Float64(tst, "left diagonal", 1e-9, reaction(tst, a, "R3"), -7.0710678118654755)
	chk.Float64(tst, "right diagonal", 1e-9, reaction(tst, a, "R4"), -7.0710678118654755)
	chk.Float64(tst, "vertical", 1e-9, reaction(tst, a, "R5"), 0)
	chk.Float64(tst, "left support", 1e-9, reaction(tst, a, "R6"), 5)
	chk.Float64(tst, "right support", 1e-9, reaction(tst, a, "R8"), 5)
}
