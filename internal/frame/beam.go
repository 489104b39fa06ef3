package frame

import (
	"github.com/martinmajer/mechanika/internal/geom"
)

// Beam is a polyline structural member
type Beam struct {
	Name   string     `json:"name"`
	Points []geom.Vec `json:"points"`
}

// NewBeam creates an unnamed beam through points
func NewBeam(points ...geom.Vec) *Beam {
	return &Beam{Points: append([]geom.Vec(nil), points...)}
}

// Length returns the total polyline length
func (b *Beam) Length() float64 {
	var l float64
	for i := 1; i < len(b.Points); i++ {
		l += geom.Dist(b.Points[i-1], b.Points[i])
	}
	return l
}

func (b *Beam) String() string { return "Beam " + b.Name }

// SubPoint is one entry of a beam's ordered point sequence. A sub-point
// carries at most one of Joint, Force, Moment, Support or Load; main points
// carry none of them. A partial load appears twice, at its start and end.
type SubPoint struct {
	Pos  geom.Vec
	S    float64 // arc length from the first main point
	Main bool

	Joint   *Joint
	Force   *Force
	Moment  *Moment
	Support *Support
	Load    *Load
}

// jointMark is an entry of the beam's joint sequence
type jointMark struct {
	pos geom.Vec
	s   float64
}

// BeamState is the per-analysis derived data of one beam
type BeamState struct {
	Beam   *Beam
	Points []*SubPoint // ordered by S; coincident entries keep insertion order
	Loads  []*Load     // beam-scoped partial loads
	Rod    bool

	// RodForce is the axial reaction at the first main point of a rod
	RodForce *Force

	joints []jointMark
	cum    []float64 // arc length of each main point
}

func newBeamState(b *Beam) *BeamState {
	st := &BeamState{Beam: b, cum: make([]float64, len(b.Points))}
	for i, p := range b.Points {
		if i > 0 {
			st.cum[i] = st.cum[i-1] + geom.Dist(b.Points[i-1], p)
		}
		st.Points = append(st.Points, &SubPoint{Pos: p, S: st.cum[i], Main: true})
		st.joints = append(st.joints, jointMark{pos: p, s: st.cum[i]})
	}
	return st
}

// insert places sp after every existing point whose S does not exceed it
func (st *BeamState) insert(sp *SubPoint) {
	i := len(st.Points)
	for i > 0 && st.Points[i-1].S > sp.S {
		i--
	}
	st.Points = append(st.Points, nil)
	copy(st.Points[i+1:], st.Points[i:])
	st.Points[i] = sp
}

func (st *BeamState) insertJoint(p geom.Vec, s float64) {
	i := len(st.joints)
	for i > 0 && st.joints[i-1].s > s {
		i--
	}
	st.joints = append(st.joints, jointMark{})
	copy(st.joints[i+1:], st.joints[i:])
	st.joints[i] = jointMark{pos: p, s: s}
}

// segmentArc returns the arc length of p lying on main segment i (1-based end index)
func (st *BeamState) segmentArc(i int, p geom.Vec) float64 {
	return st.cum[i-1] + geom.Dist(st.Beam.Points[i-1], p)
}

// arcAt returns the arc length of the first joint of the beam at p
func (st *BeamState) arcAt(p geom.Vec) float64 {
	for _, j := range st.joints {
		if j.pos.Equal(p) {
			return j.s
		}
	}
	return 0
}

// partOf reports whether a and b are consecutive in the joint sequence.
// dir is 1 when the beam runs from a to b, -1 when it runs from b to a and
// 0 otherwise; s is the arc length of the earlier of the two.
func (st *BeamState) partOf(a, b geom.Vec) (dir int, s float64) {
	for i := 1; i < len(st.joints); i++ {
		prev, cur := st.joints[i-1], st.joints[i]
		if prev.pos.Equal(a) && cur.pos.Equal(b) {
			return 1, prev.s
		}
		if prev.pos.Equal(b) && cur.pos.Equal(a) {
			return -1, prev.s
		}
	}
	return 0, 0
}

// Length returns the total arc length
func (st *BeamState) Length() float64 {
	if len(st.cum) == 0 {
		return 0
	}
	return st.cum[len(st.cum)-1]
}

// At returns the point at arc length s, clamped to the beam
func (st *BeamState) At(s float64) geom.Vec {
	pts := st.Beam.Points
	if len(pts) == 0 {
		return geom.Vec{}
	}
	if s <= 0 {
		return pts[0]
	}
	for i := 1; i < len(pts); i++ {
		if s <= st.cum[i] {
			l := st.cum[i] - st.cum[i-1]
			if l == 0 {
				return pts[i]
			}
			return pts[i-1].Add(pts[i].Sub(pts[i-1]).Scale((s - st.cum[i-1]) / l))
		}
	}
	return pts[len(pts)-1]
}
