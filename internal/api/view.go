package api

import (
	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/martinmajer/mechanika/internal/geom"
)

// AnalysisView is the JSON form of a solved model
type AnalysisView struct {
	Status      string             `json:"status"`
	Message     string             `json:"message"`
	Degree      int                `json:"degree"`
	Combination string             `json:"combination"`
	Reactions   []frame.NamedValue `json:"reactions"`
	MaxForce    float64            `json:"max_force"`
	MaxMoment   float64            `json:"max_moment"`
	Bounds      geom.Bounds        `json:"bounds"`
	Joints      []JointView        `json:"joints"`
	Beams       []BeamView         `json:"beams"`
}

type JointView struct {
	Position geom.Vec `json:"position"`
	Stiff    bool     `json:"stiff"`
	AllRods  bool     `json:"all_rods"`
	Beams    []string `json:"beams"`
}

type BeamView struct {
	Name     string          `json:"name"`
	Length   float64         `json:"length"`
	Rod      bool            `json:"rod"`
	Segments []frame.Segment `json:"segments,omitempty"`
}

// NewAnalysisView renders the current analysis of m. Segments are only
// included for determinate structures.
func NewAnalysisView(m *frame.Model) AnalysisView {
	a := m.Analysis()
	v := AnalysisView{
		Status:      a.Status().String(),
		Message:     a.Status().Describe(a.Degree()),
		Degree:      a.Degree(),
		Combination: a.Combination().ID,
		Reactions:   a.Reactions(),
		MaxForce:    a.MaxForce(),
		Bounds:      a.Bounds(),
		Joints:      []JointView{},
		Beams:       []BeamView{},
	}
	if v.Reactions == nil {
		v.Reactions = []frame.NamedValue{}
	}
	determinate := a.Status() == frame.StatusDeterminate
	if determinate {
		v.MaxMoment = a.MaxMoment()
	}

	for _, j := range a.Joints() {
		jv := JointView{Position: j.Position, Stiff: j.Stiff, AllRods: j.AllRods}
		for _, b := range j.Beams {
			jv.Beams = append(jv.Beams, b.Name)
		}
		v.Joints = append(v.Joints, jv)
	}
	for _, b := range a.Beams() {
		bv := BeamView{Name: b.Name, Length: b.Length()}
		if st, ok := a.State(b); ok {
			bv.Rod = st.Rod
		}
		if determinate {
			bv.Segments = a.InternalForces(b)
		}
		v.Beams = append(v.Beams, bv)
	}
	return v
}
