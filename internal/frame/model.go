// Package frame implements the static analysis of planar frames: it binds
// beams, actions and supports into a joint topology, reduces hinged bars to
// rods, assembles and solves the equilibrium equations and evaluates
// internal forces along every beam.
package frame

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/martinmajer/mechanika/internal/geom"
	"github.com/martinmajer/mechanika/internal/nscp"
)

// Default scales
const (
	DefaultScale        = 50  // pixels per model unit
	DefaultDiagramScale = 100 // pixels for the largest diagram ordinate
)

// ErrUnknownEntity is returned when removing an entity not in the model
var ErrUnknownEntity = errors.New("frame: entity not in model")

// Model is the structure being edited. Every mutator re-runs the analysis.
// Entity fields may also be edited directly in bulk, followed by a call to
// Recalculate.
type Model struct {
	mu sync.Mutex

	Scale        int
	DiagramScale int
	Combination  nscp.LoadCombination

	Beams    []*Beam
	Forces   []*Force
	Moments  []*Moment
	Loads    []*Load
	Supports []*Support

	// Name counters. Forces, moments and loads share ActionCounter.
	BeamCounter    int
	ActionCounter  int
	SupportCounter int

	stiff    map[geom.Key]geom.Vec
	analysis *Analysis
	logger   *log.Logger
}

// New creates an empty model solved for unfactored loads
func New() *Model {
	m := &Model{
		Scale:        DefaultScale,
		DiagramScale: DefaultDiagramScale,
		Combination:  nscp.Unfactored,
		stiff:        map[geom.Key]geom.Vec{},
	}
	m.recalculate()
	return m
}

// SetLogger sets the logger used to trace recalculations; nil disables it
func (m *Model) SetLogger(l *log.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = l
}

// Analysis returns the result of the latest recalculation
func (m *Model) Analysis() *Analysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current()
}

func (m *Model) current() *Analysis {
	if m.analysis == nil {
		return m.recalculate()
	}
	return m.analysis
}

// Recalculate re-runs the analysis on the current entities
func (m *Model) Recalculate() *Analysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recalculate()
}

func (m *Model) snapshot(combo nscp.LoadCombination) snapshot {
	scale := float64(m.Scale)
	if scale <= 0 {
		scale = DefaultScale
	}
	if combo.ID == "" {
		combo = nscp.Unfactored
	}
	stiff := make(map[geom.Key]bool, len(m.stiff))
	for k := range m.stiff {
		stiff[k] = true
	}
	return snapshot{
		scale:    scale,
		combo:    combo,
		beams:    append([]*Beam(nil), m.Beams...),
		forces:   append([]*Force(nil), m.Forces...),
		moments:  append([]*Moment(nil), m.Moments...),
		loads:    append([]*Load(nil), m.Loads...),
		supports: append([]*Support(nil), m.Supports...),
		stiff:    stiff,
		logger:   m.logger,
	}
}

func (m *Model) recalculate() *Analysis {
	if m.stiff == nil {
		m.stiff = map[geom.Key]geom.Vec{}
	}
	snap := m.snapshot(m.Combination)
	a := newAnalysis(snap)
	a.run(snap)

	live := a.liveStiff(snap.stiff)
	for k := range m.stiff {
		if !live[k] {
			delete(m.stiff, k)
		}
	}
	m.analysis = a
	return a
}

// AnalyzeWith solves the current entities for combo without touching the
// model's own analysis. Reaction entities are private to each analysis.
func (m *Model) AnalyzeWith(combo nscp.LoadCombination) *Analysis {
	m.mu.Lock()
	snap := m.snapshot(combo)
	m.mu.Unlock()
	a := newAnalysis(snap)
	a.run(snap)
	return a
}

// AddBeam adds b, naming it by the beam counter when unnamed
func (m *Model) AddBeam(b *Beam) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.Name == "" {
		m.BeamCounter++
		b.Name = strconv.Itoa(m.BeamCounter)
	}
	m.Beams = append(m.Beams, b)
	m.recalculate()
}

// AddForce adds f, naming it F<n> when unnamed
func (m *Model) AddForce(f *Force) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.Name == "" {
		f.Name = m.nextAction("F")
	}
	m.Forces = append(m.Forces, f)
	m.recalculate()
}

// AddMoment adds mo, naming it M<n> when unnamed
func (m *Model) AddMoment(mo *Moment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mo.Name == "" {
		mo.Name = m.nextAction("M")
	}
	m.Moments = append(m.Moments, mo)
	m.recalculate()
}

// AddLoad adds l, naming it f<n> when unnamed
func (m *Model) AddLoad(l *Load) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l.Name == "" {
		l.Name = m.nextAction("f")
	}
	m.Loads = append(m.Loads, l)
	m.recalculate()
}

// AddSupport adds s, naming it S<n> when unnamed
func (m *Model) AddSupport(s *Support) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.Name == "" {
		m.SupportCounter++
		s.Name = "S" + strconv.Itoa(m.SupportCounter)
	}
	m.Supports = append(m.Supports, s)
	m.recalculate()
}

func (m *Model) nextAction(prefix string) string {
	m.ActionCounter++
	return prefix + strconv.Itoa(m.ActionCounter)
}

// RemoveBeam removes b or returns ErrUnknownEntity
func (m *Model) RemoveBeam(b *Beam) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	if m.Beams, ok = remove(m.Beams, b); !ok {
		return fmt.Errorf("%w: %v", ErrUnknownEntity, b)
	}
	m.recalculate()
	return nil
}

// RemoveForce removes f or returns ErrUnknownEntity
func (m *Model) RemoveForce(f *Force) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	if m.Forces, ok = remove(m.Forces, f); !ok {
		return fmt.Errorf("%w: %v", ErrUnknownEntity, f)
	}
	m.recalculate()
	return nil
}

// RemoveMoment removes mo or returns ErrUnknownEntity
func (m *Model) RemoveMoment(mo *Moment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	if m.Moments, ok = remove(m.Moments, mo); !ok {
		return fmt.Errorf("%w: %v", ErrUnknownEntity, mo)
	}
	m.recalculate()
	return nil
}

// RemoveLoad removes l or returns ErrUnknownEntity
func (m *Model) RemoveLoad(l *Load) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	if m.Loads, ok = remove(m.Loads, l); !ok {
		return fmt.Errorf("%w: %v", ErrUnknownEntity, l)
	}
	m.recalculate()
	return nil
}

// RemoveSupport removes s or returns ErrUnknownEntity
func (m *Model) RemoveSupport(s *Support) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	if m.Supports, ok = remove(m.Supports, s); !ok {
		return fmt.Errorf("%w: %v", ErrUnknownEntity, s)
	}
	m.recalculate()
	return nil
}

func remove[T comparable](items []T, item T) ([]T, bool) {
	for i, it := range items {
		if it == item {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}

// SetStiff marks or unmarks p as a rigid joint position
func (m *Model) SetStiff(p geom.Vec, stiff bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stiff == nil {
		m.stiff = map[geom.Key]geom.Vec{}
	}
	if stiff {
		m.stiff[p.Key()] = p
	} else {
		delete(m.stiff, p.Key())
	}
	m.recalculate()
}

// Stiff returns the rigid joint positions
func (m *Model) Stiff() []geom.Vec {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]geom.Vec, 0, len(m.stiff))
	for _, j := range m.current().order {
		if _, ok := m.stiff[j.Position.Key()]; ok {
			out = append(out, j.Position)
		}
	}
	return out
}

// SetScale sets the drawing scale that controls the collinearity tolerance
func (m *Model) SetScale(scale int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scale = scale
	m.recalculate()
}

// SetCombination selects the load combination that factors the actions
func (m *Model) SetCombination(c nscp.LoadCombination) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Combination = c
	m.recalculate()
}

// Bounds returns the box spanning the origin and all joints
func (m *Model) Bounds() geom.Bounds {
	return m.Analysis().Bounds()
}

// Info returns the model overview: entity counts, status and reactions
func (m *Model) Info() string {
	m.mu.Lock()
	counts := fmt.Sprintf("Beams: %d, forces: %d, moments: %d, loads: %d, supports: %d",
		len(m.Beams), len(m.Forces), len(m.Moments), len(m.Loads), len(m.Supports))
	combo := m.Combination
	a := m.current()
	m.mu.Unlock()
	return fmt.Sprintf("%s\nCombination %s: %s\n%s", counts, combo.ID, combo.Description, a.Summary())
}
