package frame

import (
	"sort"

	"github.com/martinmajer/mechanika/internal/geom"
)

// bindBeam creates the joints at the main points of b, splices b's points
// into the beams they touch and splices existing joints into b.
func (a *Analysis) bindBeam(b *Beam, stiff map[geom.Key]bool) {
	for _, p := range b.Points {
		j := a.jointAt(p)
		if j == nil {
			j = &Joint{Position: p, Stiff: stiff[p.Key()], AllRods: true}
			a.joints[p.Key()] = j
			a.order = append(a.order, j)
		}
		if !j.hasBeam(b) {
			j.Beams = append(j.Beams, b)
		}
	}

	for _, p := range b.Points {
		for _, other := range a.beams {
			if other == b {
				continue
			}
			a.placeOnBeam(other, p, nil)
		}
	}

	for _, j := range a.order {
		if j.hasBeam(b) {
			continue
		}
		a.placeOnBeam(b, j.Position, nil)
	}
}

// placeOnBeam inserts a sub-point at p into b when p lies strictly inside
// one of b's segments. A nil item marks a joint; otherwise item is the
// force, moment or support to attach. It reports whether p was placed.
func (a *Analysis) placeOnBeam(b *Beam, p geom.Vec, item any) bool {
	st := a.states[b]
	pts := b.Points
	for i := 1; i < len(pts); i++ {
		if pts[i-1].Equal(p) || pts[i].Equal(p) {
			continue
		}
		if !geom.OnSegment(pts[i-1], pts[i], p, a.scale) {
			continue
		}
		s := st.segmentArc(i, p)
		sp := &SubPoint{Pos: p, S: s}
		switch v := item.(type) {
		case nil:
			j := a.jointAt(p)
			if j.hasBeam(b) {
				return true
			}
			j.Beams = append(j.Beams, b)
			sp.Joint = j
			st.insertJoint(p, s)
		case *Force:
			sp.Force = v
		case *Moment:
			sp.Moment = v
		case *Support:
			sp.Support = v
		}
		st.insert(sp)
		if item != nil {
			a.enabled[item] = true
		}
		return true
	}
	return false
}

// placeOnAnyBeam attaches item to the first beam (in name order) it lies on
func (a *Analysis) placeOnAnyBeam(p geom.Vec, item any) {
	for _, b := range a.beams {
		if a.placeOnBeam(b, p, item) {
			return
		}
	}
}

func (a *Analysis) bindForce(f *Force) {
	if j := a.jointAt(f.Origin); j != nil {
		j.Forces = append(j.Forces, f)
		a.enabled[f] = true
		return
	}
	a.placeOnAnyBeam(f.Origin, f)
}

func (a *Analysis) bindMoment(m *Moment) {
	if j := a.jointAt(m.Origin); j != nil {
		j.Moments = append(j.Moments, m)
		j.Stiff = true
		a.enabled[m] = true
		return
	}
	a.placeOnAnyBeam(m.Origin, m)
}

func (a *Analysis) bindSupport(s *Support) {
	if j := a.jointAt(s.Origin); j != nil {
		j.Supports = append(j.Supports, s)
		if s.Kind == Fixed {
			j.Stiff = true
		}
		a.enabled[s] = true
		return
	}
	a.placeOnAnyBeam(s.Origin, s)
}

type lineJoint struct {
	joint *Joint
	k     float64
}

// bindLoad cuts l into beam-scoped partial loads, one per stretch between
// consecutive joints on the load line that some beam spans.
func (a *Analysis) bindLoad(l *Load) {
	var onLine []lineJoint
	for _, j := range a.order {
		if k, ok := geom.LineParam(l.Start, l.End, j.Position, a.scale); ok {
			onLine = append(onLine, lineJoint{joint: j, k: k})
		}
	}
	sort.SliceStable(onLine, func(i, j int) bool { return onLine[i].k < onLine[j].k })

	for i := 1; i < len(onLine); i++ {
		prev, cur := onLine[i-1], onLine[i]
		if prev.k <= 0 && cur.k <= 0 {
			continue
		}
		if prev.k >= 1 && cur.k >= 1 {
			break
		}
		for _, b := range prev.joint.Beams {
			st := a.states[b]
			dir, s0 := st.partOf(prev.joint.Position, cur.joint.Position)
			if dir == 0 {
				continue
			}
			start, end := prev.joint.Position, cur.joint.Position
			if prev.k < 0 {
				start = l.Start
			}
			if cur.k > 1 {
				end = l.End
			}
			part := &Load{
				Name:      l.Name,
				Start:     start,
				End:       end,
				Intensity: l.Intensity,
				Direction: l.Direction,
				Case:      l.Case,
				parent:    l,
			}
			st.Loads = append(st.Loads, part)

			from := prev.joint.Position
			if dir < 0 {
				from = cur.joint.Position
			}
			st.insert(&SubPoint{Pos: start, S: s0 + geom.Dist(from, start), Load: part})
			st.insert(&SubPoint{Pos: end, S: s0 + geom.Dist(from, end), Load: part})

			a.addActivePart(l, clamp01(prev.k), clamp01(cur.k))
			a.enabled[l] = true
		}
	}
}

func (a *Analysis) addActivePart(l *Load, from, to float64) {
	parts := a.parts[l]
	n := len(parts)
	switch {
	case n > 0 && parts[n-2] == from && parts[n-1] == to:
		// another beam over the same stretch
	case n > 0 && parts[n-1] == from:
		parts[n-1] = to
	default:
		parts = append(parts, from, to)
	}
	a.parts[l] = parts
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
