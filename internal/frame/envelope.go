package frame

import (
	"github.com/martinmajer/mechanika/internal/nscp"
)

// BeamEnvelope is the governing bending moment of one beam over a set of
// load combinations
type BeamEnvelope struct {
	Beam     string
	Moment   nscp.Governing
	Force    nscp.Governing
	Statuses map[string]Status // by combination ID
}

// Envelope solves m once per combination and returns, per beam in name
// order, the largest |M| and |N|,|V| with the combination that produced it.
// Combinations that do not yield a determinate structure contribute zero.
func Envelope(m *Model, combos []nscp.LoadCombination) []BeamEnvelope {
	analyses := make(map[string]*Analysis, len(combos))
	for _, c := range combos {
		analyses[c.ID] = m.AnalyzeWith(c)
	}

	var out []BeamEnvelope
	for _, b := range m.Analysis().Beams() {
		env := BeamEnvelope{Beam: b.Name, Statuses: map[string]Status{}}
		for _, c := range combos {
			env.Statuses[c.ID] = analyses[c.ID].Status()
		}
		env.Moment = nscp.CalculateGoverning(combos, func(c nscp.LoadCombination) float64 {
			return maxOver(analyses[c.ID], b, Segment.MaxAbsMoment)
		})
		env.Force = nscp.CalculateGoverning(combos, func(c nscp.LoadCombination) float64 {
			return maxOver(analyses[c.ID], b, Segment.MaxAbsForce)
		})
		out = append(out, env)
	}
	return out
}

func maxOver(a *Analysis, b *Beam, f func(Segment) float64) float64 {
	if a.Status() != StatusDeterminate {
		return 0
	}
	var v float64
	for _, seg := range a.InternalForces(b) {
		if x := f(seg); x > v {
			v = x
		}
	}
	return v
}
