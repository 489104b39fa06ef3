package frame

import (
	"github.com/martinmajer/mechanika/internal/geom"
)

// reduceRods replaces every straight, unloaded, hinged two-point beam by a
// single axial unknown R<beam name> acting on its end joints.
func (a *Analysis) reduceRods() {
	for _, b := range a.beams {
		st := a.states[b]
		if len(b.Points) != 2 || len(st.Points) != 2 {
			continue
		}
		pa, pb := b.Points[0], b.Points[1]
		if pa.Equal(pb) {
			continue
		}
		ja, jb := a.jointAt(pa), a.jointAt(pb)
		if ja.Stiff || jb.Stiff {
			continue
		}

		dir := pb.Sub(pa).Normalize()
		name := a.names.claim("R" + b.Name)
		fa := newReactionForce(name, pa, dir)
		fb := newReactionForce(name, pb, dir.Neg())
		ja.Forces = append(ja.Forces, fa)
		jb.Forces = append(jb.Forces, fb)

		st.Rod = true
		st.RodForce = fa
		a.addUnknown(name)
		a.reactions = append(a.reactions, fa, fb)
	}
}

// addSupportReactions names the support unknowns, attaching them to joints
// first and then replacing mid-beam supports by their reactions.
func (a *Analysis) addSupportReactions() {
	for _, j := range a.order {
		for _, s := range j.Supports {
			for _, r := range a.newSupportReactions(s) {
				switch v := r.(type) {
				case *Force:
					j.Forces = append(j.Forces, v)
				case *Moment:
					j.Moments = append(j.Moments, v)
				}
			}
		}
	}

	for _, b := range a.beams {
		st := a.states[b]
		var pts []*SubPoint
		for _, sp := range st.Points {
			if sp.Support == nil {
				pts = append(pts, sp)
				continue
			}
			for _, r := range a.newSupportReactions(sp.Support) {
				rp := &SubPoint{Pos: sp.Pos, S: sp.S}
				switch v := r.(type) {
				case *Force:
					rp.Force = v
				case *Moment:
					rp.Moment = v
				}
				pts = append(pts, rp)
			}
		}
		st.Points = pts
	}
}

func (a *Analysis) newSupportReactions(s *Support) []Reaction {
	rs := s.newReactions()
	for _, r := range rs {
		name := a.names.fresh()
		switch v := r.(type) {
		case *Force:
			v.Name = name
		case *Moment:
			v.Name = name
		}
		a.addUnknown(name)
	}
	a.supports[s] = append(a.supports[s], rs...)
	a.reactions = append(a.reactions, rs...)
	return rs
}

// addJointReactions inserts the internal force pairs between consecutive
// non-rod beams at every joint and moves joint loads onto the first
// non-rod beam.
func (a *Analysis) addJointReactions() {
	for _, j := range a.order {
		sortBeams(j.Beams)

		var first, prev *Beam
		for _, b := range j.Beams {
			if a.states[b].Rod {
				continue
			}
			j.AllRods = false
			if first == nil {
				first = b
			}
			if prev != nil {
				a.addPair(j, prev, b)
			}
			prev = b
		}
		if first == nil {
			continue
		}

		st := a.states[first]
		s := st.arcAt(j.Position)
		for _, f := range j.Forces {
			st.insert(&SubPoint{Pos: j.Position, S: s, Force: f})
		}
		for _, m := range j.Moments {
			st.insert(&SubPoint{Pos: j.Position, S: s, Moment: m})
		}
	}
}

// addPair connects beams prev and cur at joint j. prev receives the plus
// members and cur the minus members of each pair.
func (a *Analysis) addPair(j *Joint, prev, cur *Beam) {
	p := j.Position
	xName := a.names.fresh()
	var mName string
	if j.Stiff {
		mName = a.names.fresh()
	}
	zName := a.names.fresh()

	xPlus := newReactionForce(xName, p, geom.V(1, 0))
	xMinus := newReactionForce(xName, p, geom.V(-1, 0))
	zPlus := newReactionForce(zName, p, geom.V(0, 1))
	zMinus := newReactionForce(zName, p, geom.V(0, -1))

	plus := []*SubPoint{{Pos: p, Force: xPlus}, {Pos: p, Force: zPlus}}
	minus := []*SubPoint{{Pos: p, Force: xMinus}, {Pos: p, Force: zMinus}}
	a.addUnknown(xName)
	a.addUnknown(zName)
	a.reactions = append(a.reactions, xPlus, xMinus, zPlus, zMinus)
	j.Reactions = append(j.Reactions, xPlus, zPlus)

	if j.Stiff {
		mPlus := newReactionMoment(mName, p, false)
		mMinus := newReactionMoment(mName, p, true)
		plus = append(plus, &SubPoint{Pos: p, Moment: mPlus})
		minus = append(minus, &SubPoint{Pos: p, Moment: mMinus})
		a.addUnknown(mName)
		a.reactions = append(a.reactions, mPlus, mMinus)
		j.Reactions = append(j.Reactions, mPlus)
	}

	sp, sc := a.states[prev], a.states[cur]
	s := sp.arcAt(p)
	for _, pt := range plus {
		pt.S = s
		sp.insert(pt)
	}
	s = sc.arcAt(p)
	for _, pt := range minus {
		pt.S = s
		sc.insert(pt)
	}
}
