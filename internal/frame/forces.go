package frame

import (
	"fmt"
	"math"

	"github.com/martinmajer/mechanika/internal/geom"
)

// Segment is a stretch of a beam free of concentrated actions. Along the
// local coordinate s in [0, Length]:
//
//	N(s) = (F + s·DF)·DirN
//	V(s) = (F + s·DF)·DirV
//	M(s) = DDM·s² + DM·s + M
type Segment struct {
	Start  geom.Vec `json:"start"`
	End    geom.Vec `json:"end"`
	S0     float64  `json:"s0"` // arc length of Start along the beam
	Length float64  `json:"length"`
	DirN   geom.Vec `json:"dir_n"`
	DirV   geom.Vec `json:"dir_v"`

	F  geom.Vec `json:"f"`  // resultant internal force at Start
	DF geom.Vec `json:"df"` // distributed load rate

	DDM float64 `json:"ddm"`
	DM  float64 `json:"dm"`
	M   float64 `json:"m"`

	NStart float64 `json:"n_start"`
	NEnd   float64 `json:"n_end"`
	VStart float64 `json:"v_start"`
	VEnd   float64 `json:"v_end"`
	MEnd   float64 `json:"m_end"`

	// Extremum of M strictly inside the segment, if any
	HasExtreme bool    `json:"has_extreme"`
	SExtreme   float64 `json:"s_extreme"`
	MExtreme   float64 `json:"m_extreme"`
}

// N returns the normal force at local coordinate s
func (seg Segment) N(s float64) float64 { return seg.F.Add(seg.DF.Scale(s)).Dot(seg.DirN) }

// V returns the shear force at local coordinate s
func (seg Segment) V(s float64) float64 { return seg.F.Add(seg.DF.Scale(s)).Dot(seg.DirV) }

// Moment returns the bending moment at local coordinate s
func (seg Segment) Moment(s float64) float64 { return seg.DDM*s*s + seg.DM*s + seg.M }

// At returns the position at local coordinate s
func (seg Segment) At(s float64) geom.Vec { return seg.Start.Add(seg.DirN.Scale(s)) }

// MaxAbsMoment returns the largest |M| on the segment
func (seg Segment) MaxAbsMoment() float64 {
	m := math.Max(math.Abs(seg.M), math.Abs(seg.MEnd))
	if seg.HasExtreme {
		m = math.Max(m, math.Abs(seg.MExtreme))
	}
	return m
}

// MaxAbsForce returns the largest |N| or |V| on the segment
func (seg Segment) MaxAbsForce() float64 {
	return math.Max(
		math.Max(math.Abs(seg.NStart), math.Abs(seg.NEnd)),
		math.Max(math.Abs(seg.VStart), math.Abs(seg.VEnd)),
	)
}

// Formula returns the segment's internal force functions as text
func (seg Segment) Formula() string {
	dn := seg.DF.Dot(seg.DirN)
	dv := seg.DF.Dot(seg.DirV)
	return fmt.Sprintf("N(x) = %.3f %+.3fx, V(x) = %.3f %+.3fx, M(x) = %.3f %+.3fx %+.3fx^2, x in <0; %.3f>",
		seg.NStart, dn, seg.VStart, dv, seg.M, seg.DM, seg.DDM, seg.Length)
}

// Station is a sampled point of an internal force diagram
type Station struct {
	S   float64  `json:"s"` // arc length along the beam
	Pos geom.Vec `json:"pos"`
	N   float64  `json:"n"`
	V   float64  `json:"v"`
	M   float64  `json:"m"`
}

// Stations samples segs at n+1 evenly spaced points per segment, adding the
// moment extremum where one exists
func Stations(segs []Segment, n int) []Station {
	if n < 1 {
		n = 1
	}
	var out []Station
	for _, seg := range segs {
		for i := 0; i <= n; i++ {
			s := seg.Length * float64(i) / float64(n)
			if seg.HasExtreme && i > 0 && s > seg.SExtreme && seg.Length*float64(i-1)/float64(n) < seg.SExtreme {
				out = append(out, seg.station(seg.SExtreme))
			}
			out = append(out, seg.station(s))
		}
	}
	return out
}

func (seg Segment) station(s float64) Station {
	return Station{S: seg.S0 + s, Pos: seg.At(s), N: seg.N(s), V: seg.V(s), M: seg.Moment(s)}
}

// group is the state right after all concentrated actions at one position
type group struct {
	pos   geom.Vec
	s     float64
	f     geom.Vec
	df    geom.Vec
	mJump float64
}

// InternalForces returns the internal force segments of b. Reaction values
// are zero unless the analysis is determinate.
func (a *Analysis) InternalForces(b *Beam) []Segment {
	a.mu.Lock()
	defer a.mu.Unlock()
	if segs, ok := a.segments[b]; ok {
		return segs
	}
	st, ok := a.states[b]
	if !ok {
		return nil
	}
	var segs []Segment
	if st.Rod {
		segs = a.rodSegments(st)
	} else {
		segs = buildSegments(a.walk(st))
	}
	a.segments[b] = segs
	return segs
}

// walk accumulates the concentrated actions along the beam, grouping
// coincident sub-points
func (a *Analysis) walk(st *BeamState) []group {
	var (
		groups  []group
		f, df   geom.Vec
		started = map[*Load]bool{}
	)
	for i := 0; i < len(st.Points); {
		pos := st.Points[i].Pos
		if n := len(groups); n > 0 {
			last := groups[n-1]
			f = f.Add(df.Scale(geom.Dist(last.pos, pos)))
		}
		g := group{pos: pos, s: st.Points[i].S}
		for ; i < len(st.Points) && st.Points[i].Pos.Equal(pos); i++ {
			sp := st.Points[i]
			switch {
			case sp.Force != nil:
				f = f.Sub(sp.Force.Direction.Scale(a.forceSize(sp.Force)))
			case sp.Moment != nil:
				mo := sp.Moment
				if mo.Role == Solution && mo.Opposite {
					g.mJump += mo.Size
				} else {
					g.mJump -= a.momentSize(mo)
				}
			case sp.Load != nil:
				l := sp.Load
				rate := l.Direction.Scale(l.Intensity * a.factor(l.Case))
				if !started[l] {
					started[l] = true
					df = df.Sub(rate)
				} else {
					df = df.Add(rate)
				}
			}
		}
		g.f, g.df = f, df
		groups = append(groups, g)
	}
	return groups
}

func buildSegments(groups []group) []Segment {
	var (
		segs    []Segment
		prevEnd float64
	)
	for i := 0; i+1 < len(groups); i++ {
		cur, next := groups[i], groups[i+1]
		dirN := next.pos.Sub(cur.pos).Normalize()
		seg := Segment{
			Start:  cur.pos,
			End:    next.pos,
			S0:     cur.s,
			Length: geom.Dist(cur.pos, next.pos),
			DirN:   dirN,
			DirV:   dirN.Perp(),
			F:      cur.f,
			DF:     cur.df,
			M:      prevEnd + cur.mJump,
		}
		seg.DM = seg.F.Dot(seg.DirV)
		seg.DDM = seg.DF.Dot(seg.DirV) / 2
		seg.finish()
		prevEnd = seg.MEnd
		segs = append(segs, seg)
	}
	return segs
}

// finish fills the derived end values and the moment extremum
func (seg *Segment) finish() {
	seg.NStart, seg.NEnd = seg.N(0), seg.N(seg.Length)
	seg.VStart, seg.VEnd = seg.V(0), seg.V(seg.Length)
	seg.MEnd = seg.Moment(seg.Length)
	if seg.DDM != 0 {
		s := -seg.DM / (2 * seg.DDM)
		if s > 0 && s < seg.Length {
			seg.HasExtreme = true
			seg.SExtreme = s
			seg.MExtreme = seg.Moment(s)
		}
	}
}

// rodSegments returns the single constant normal force segment of a rod.
// A positive rod reaction is tension.
func (a *Analysis) rodSegments(st *BeamState) []Segment {
	pa, pb := st.Beam.Points[0], st.Beam.Points[1]
	dirN := pb.Sub(pa).Normalize()
	seg := Segment{
		Start:  pa,
		End:    pb,
		Length: geom.Dist(pa, pb),
		DirN:   dirN,
		DirV:   dirN.Perp(),
		F:      dirN.Scale(st.RodForce.Size),
	}
	seg.finish()
	return []Segment{seg}
}
