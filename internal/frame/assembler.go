package frame

import (
	"math"

	"github.com/martinmajer/mechanika/internal/geom"
	"github.com/martinmajer/mechanika/internal/solver"
)

// arm returns the moment about the origin of a unit force dir acting at o
func arm(o, dir geom.Vec) float64 {
	return dir.X*o.Z - dir.Z*o.X
}

// equation is one equilibrium row under construction
type equation struct {
	coef []float64
	rhs  float64
}

func (a *Analysis) newEquation() *equation {
	return &equation{coef: make([]float64, len(a.unknowns))}
}

// assemble builds two rows (x, z) per all-rod joint and three rows
// (x, z, moment about the origin) per remaining beam.
func (a *Analysis) assemble() {
	for _, j := range a.order {
		if !j.AllRods {
			continue
		}
		x, z := a.newEquation(), a.newEquation()
		for _, f := range j.Forces {
			if f.Role == Solution {
				c := a.column[f.Name]
				x.coef[c] += f.Direction.X
				z.coef[c] += f.Direction.Z
				continue
			}
			size := a.forceSize(f)
			x.rhs -= size * f.Direction.X
			z.rhs -= size * f.Direction.Z
		}
		a.addRows(x, z)
	}

	for _, b := range a.beams {
		st := a.states[b]
		if st.Rod {
			continue
		}
		x, z, m := a.newEquation(), a.newEquation(), a.newEquation()
		for _, sp := range st.Points {
			switch {
			case sp.Force != nil:
				f := sp.Force
				if f.Role == Solution {
					c := a.column[f.Name]
					x.coef[c] += f.Direction.X
					z.coef[c] += f.Direction.Z
					m.coef[c] += arm(f.Origin, f.Direction)
					continue
				}
				size := a.forceSize(f)
				x.rhs -= size * f.Direction.X
				z.rhs -= size * f.Direction.Z
				m.rhs -= size * arm(f.Origin, f.Direction)
			case sp.Moment != nil:
				mo := sp.Moment
				if mo.Role == Solution {
					m.coef[a.column[mo.Name]] += mo.sign()
					continue
				}
				m.rhs -= a.momentSize(mo)
			}
		}
		for _, l := range st.Loads {
			size := l.Resultant() * a.factor(l.Case)
			x.rhs -= size * l.Direction.X
			z.rhs -= size * l.Direction.Z
			m.rhs -= size * arm(l.Center(), l.Direction)
		}
		a.addRows(x, z, m)
	}
}

func (a *Analysis) addRows(eqs ...*equation) {
	for _, e := range eqs {
		a.rows = append(a.rows, e.coef)
		a.rhs = append(a.rhs, e.rhs)
	}
}

// solve classifies the system and writes the solution back into the
// reaction entities
func (a *Analysis) solve() {
	res, err := solver.Solve(a.rows, a.rhs, len(a.unknowns))
	if err != nil {
		a.log.Printf("solve: %v", err)
		a.status = StatusExceptional
		return
	}
	a.result = res

	switch res.State {
	case solver.Empty:
		a.status = StatusEmpty
	case solver.Indeterminate:
		a.status = StatusIndeterminate
	case solver.Overdetermined:
		a.status = StatusOverdetermined
	case solver.Singular:
		a.status = StatusExceptional
	case solver.Determinate:
		a.status = StatusDeterminate
		for _, r := range a.reactions {
			v := res.X[a.column[r.Label()]]
			r.assign(v)
			if _, ok := r.(*Force); ok {
				a.maxForce = math.Max(a.maxForce, math.Abs(v))
			}
		}
	}
	a.log.Printf("analysis: %d rows, %d unknowns, %s", len(a.rows), len(a.unknowns), a.status)
}
