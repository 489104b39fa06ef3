package frame

import (
	"fmt"
	"io"
	"log"
	"math"
	"strings"
	"sync"

	"github.com/martinmajer/mechanika/internal/geom"
	"github.com/martinmajer/mechanika/internal/nscp"
	"github.com/martinmajer/mechanika/internal/solver"
)

// Status is the outcome of an analysis
type Status int

const (
	StatusEmpty Status = iota
	StatusDeterminate
	StatusIndeterminate
	StatusOverdetermined
	StatusExceptional
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusDeterminate:
		return "determinate"
	case StatusIndeterminate:
		return "indeterminate"
	case StatusOverdetermined:
		return "overdetermined"
	case StatusExceptional:
		return "exceptional"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Describe returns the user facing status message. degree is only used for
// the indeterminate and overdetermined states.
func (s Status) Describe(degree int) string {
	switch s {
	case StatusEmpty:
		return "The structure is empty."
	case StatusDeterminate:
		return "The structure is statically determinate."
	case StatusIndeterminate:
		return fmt.Sprintf("The structure is %d times statically indeterminate.", degree)
	case StatusOverdetermined:
		return fmt.Sprintf("The structure is a mechanism (%d degrees of freedom).", degree)
	case StatusExceptional:
		return "The structure is an exceptional (singular) case."
	}
	return s.String()
}

// snapshot is the input of one analysis. Entities are shared with the
// model and only read.
type snapshot struct {
	scale    float64
	combo    nscp.LoadCombination
	beams    []*Beam
	forces   []*Force
	moments  []*Moment
	loads    []*Load
	supports []*Support
	stiff    map[geom.Key]bool
	logger   *log.Logger
}

// Analysis is the immutable result of solving one model snapshot.
// Internal force diagrams are computed lazily and cached.
type Analysis struct {
	scale float64
	combo nscp.LoadCombination
	log   *log.Logger

	beams    []*Beam // natural order by name
	states   map[*Beam]*BeamState
	joints   map[geom.Key]*Joint
	order    []*Joint // creation order
	enabled  map[any]bool
	parts    map[*Load][]float64
	supports map[*Support][]Reaction

	names     *namer
	unknowns  []string
	column    map[string]int
	reactions []Reaction

	rows   [][]float64
	rhs    []float64
	result solver.Result
	status Status

	maxForce float64

	mu         sync.Mutex
	segments   map[*Beam][]Segment
	momentOnce sync.Once
	maxMoment  float64
}

func newAnalysis(snap snapshot) *Analysis {
	logger := snap.logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	a := &Analysis{
		scale:    snap.scale,
		combo:    snap.combo,
		log:      logger,
		states:   map[*Beam]*BeamState{},
		joints:   map[geom.Key]*Joint{},
		enabled:  map[any]bool{},
		parts:    map[*Load][]float64{},
		supports: map[*Support][]Reaction{},
		names:    newNamer(),
		column:   map[string]int{},
		segments: map[*Beam][]Segment{},
	}
	for _, b := range snap.beams {
		if len(b.Points) < 2 {
			a.log.Printf("skipping beam %q: %d point(s)", b.Name, len(b.Points))
			continue
		}
		a.beams = append(a.beams, b)
		a.states[b] = newBeamState(b)
	}
	sortBeams(a.beams)
	return a
}

// run executes the full pipeline. A panic anywhere in the pipeline leaves
// the analysis in the exceptional state.
func (a *Analysis) run(snap snapshot) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Printf("analysis aborted: %v", r)
			a.status = StatusExceptional
			a.result = solver.Result{State: solver.Singular}
		}
	}()

	for _, b := range a.beams {
		a.bindBeam(b, snap.stiff)
	}
	for _, f := range snap.forces {
		a.bindForce(f)
	}
	for _, m := range snap.moments {
		a.bindMoment(m)
	}
	for _, l := range snap.loads {
		a.bindLoad(l)
	}
	for _, s := range snap.supports {
		a.bindSupport(s)
	}

	a.reduceRods()
	a.addSupportReactions()
	a.addJointReactions()
	a.assemble()
	a.solve()
}

func (a *Analysis) jointAt(p geom.Vec) *Joint {
	return a.joints[p.Key()]
}

func (a *Analysis) addUnknown(name string) {
	if _, ok := a.column[name]; ok {
		return
	}
	a.column[name] = len(a.unknowns)
	a.unknowns = append(a.unknowns, name)
}

// factor returns the combination factor for a load case
func (a *Analysis) factor(c nscp.LoadCase) float64 {
	return a.combo.Factor(c)
}

func (a *Analysis) forceSize(f *Force) float64 {
	if f.Role == Solution {
		return f.Size
	}
	return f.Size * a.factor(f.Case)
}

func (a *Analysis) momentSize(m *Moment) float64 {
	if m.Role == Solution {
		return m.Size
	}
	return m.Size * a.factor(m.Case)
}

// Status returns the determinacy classification
func (a *Analysis) Status() Status { return a.status }

// Degree returns the degree of indeterminacy or the number of free motions
func (a *Analysis) Degree() int { return a.result.Degree }

// Rows returns the number of equilibrium equations
func (a *Analysis) Rows() int { return len(a.rows) }

// Unknowns returns the reaction names in column order
func (a *Analysis) Unknowns() []string { return append([]string(nil), a.unknowns...) }

// Combination returns the load combination the analysis was solved for
func (a *Analysis) Combination() nscp.LoadCombination { return a.combo }

// Beams returns the analysed beams in name order
func (a *Analysis) Beams() []*Beam { return append([]*Beam(nil), a.beams...) }

// Joints returns all joints in creation order
func (a *Analysis) Joints() []*Joint { return append([]*Joint(nil), a.order...) }

// Joint returns the joint at p
func (a *Analysis) Joint(p geom.Vec) (*Joint, bool) {
	j, ok := a.joints[p.Key()]
	return j, ok
}

// State returns the derived state of beam b
func (a *Analysis) State(b *Beam) (*BeamState, bool) {
	st, ok := a.states[b]
	return st, ok
}

// Enabled reports whether a force, moment, load or support participates in
// the analysis
func (a *Analysis) Enabled(entity any) bool { return a.enabled[entity] }

// ActiveParts returns the [start, end] parameter intervals of l that were
// applied to some beam, flattened
func (a *Analysis) ActiveParts(l *Load) []float64 {
	return append([]float64(nil), a.parts[l]...)
}

// SupportReactions returns the unknowns created for s
func (a *Analysis) SupportReactions(s *Support) []Reaction {
	return append([]Reaction(nil), a.supports[s]...)
}

// NamedValue is a solved reaction
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Reactions returns the solved reaction values in natural name order.
// It is empty unless the structure is determinate.
func (a *Analysis) Reactions() []NamedValue {
	if a.status != StatusDeterminate {
		return nil
	}
	names := a.Unknowns()
	SortNames(names)
	out := make([]NamedValue, 0, len(names))
	for _, n := range names {
		out = append(out, NamedValue{Name: n, Value: a.result.X[a.column[n]]})
	}
	return out
}

// Reaction returns the solved value of the named reaction
func (a *Analysis) Reaction(name string) (float64, bool) {
	if a.status != StatusDeterminate {
		return 0, false
	}
	i, ok := a.column[name]
	if !ok {
		return 0, false
	}
	return a.result.X[i], true
}

// MaxForce returns the largest absolute solved force reaction
func (a *Analysis) MaxForce() float64 { return a.maxForce }

// MaxMoment returns the largest absolute bending moment over all beams
func (a *Analysis) MaxMoment() float64 {
	a.momentOnce.Do(func() {
		for _, b := range a.beams {
			for _, seg := range a.InternalForces(b) {
				a.maxMoment = math.Max(a.maxMoment, seg.MaxAbsMoment())
			}
		}
	})
	return a.maxMoment
}

// Summary returns the status text, followed by the reaction listing when
// the structure is determinate
func (a *Analysis) Summary() string {
	var sb strings.Builder
	sb.WriteString(a.status.Describe(a.result.Degree))
	for _, r := range a.Reactions() {
		fmt.Fprintf(&sb, "\n%3s = % 9.3f", r.Name, r.Value)
	}
	return sb.String()
}

// Bounds returns the box spanning the origin and all joints
func (a *Analysis) Bounds() geom.Bounds {
	var b geom.Bounds
	for _, j := range a.order {
		b.Extend(j.Position)
	}
	return b
}

// liveStiff returns the stiff positions that ended up on a joint
func (a *Analysis) liveStiff(stiff map[geom.Key]bool) map[geom.Key]bool {
	out := map[geom.Key]bool{}
	for k := range stiff {
		if _, ok := a.joints[k]; ok {
			out[k] = true
		}
	}
	return out
}
