// Package document defines the persisted form of a model: the entity graph,
// the rigid joint positions and the drawing scales. Derived analysis state
// is never stored; it is rebuilt on load.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/martinmajer/mechanika/internal/geom"
	"github.com/martinmajer/mechanika/internal/nscp"
)

// CurrentVersion is written by Marshal. Version 1 documents predate the
// diagram scale and load cases.
const CurrentVersion = 2

// ErrUnsupportedVersion is returned for documents newer than CurrentVersion
var ErrUnsupportedVersion = errors.New("document: unsupported version")

// Document is a serializable model
type Document struct {
	Version      int    `json:"version"`
	Name         string `json:"name,omitempty"`
	Scale        int    `json:"scale"`
	DiagramScale int    `json:"diagram_scale,omitempty"`
	Combination  string `json:"combination,omitempty"` // load combination ID

	Beams    []*frame.Beam    `json:"beams"`
	Forces   []*frame.Force   `json:"forces,omitempty"`
	Moments  []*frame.Moment  `json:"moments,omitempty"`
	Loads    []*frame.Load    `json:"loads,omitempty"`
	Supports []*frame.Support `json:"supports,omitempty"`
	Stiff    []geom.Vec       `json:"stiff,omitempty"`

	Counters Counters `json:"counters"`

	// scales present in the source, before defaults were filled in
	hasScale        bool
	hasDiagramScale bool
}

// Counters preserves the naming sequences so that entities added after a
// reload continue the numbering
type Counters struct {
	Beams    int `json:"beams"`
	Actions  int `json:"actions"`
	Supports int `json:"supports"`
}

// FromModel captures a copy of the entities of m. Later edits of the model
// do not affect the document.
func FromModel(m *frame.Model) *Document {
	stiff := m.Stiff()
	beams := clone(m.Beams)
	for _, b := range beams {
		b.Points = append([]geom.Vec(nil), b.Points...)
	}
	return &Document{
		Version:         CurrentVersion,
		Scale:           m.Scale,
		DiagramScale:    m.DiagramScale,
		Combination:     m.Combination.ID,
		Beams:           beams,
		Forces:          clone(m.Forces),
		Moments:         clone(m.Moments),
		Loads:           clone(m.Loads),
		Supports:        clone(m.Supports),
		Stiff:           stiff,
		hasScale:        true,
		hasDiagramScale: true,
		Counters: Counters{
			Beams:    m.BeamCounter,
			Actions:  m.ActionCounter,
			Supports: m.SupportCounter,
		},
	}
}

func clone[T any](items []*T) []*T {
	out := make([]*T, len(items))
	for i, it := range items {
		c := *it
		out[i] = &c
	}
	return out
}

// ApplyDefaultScales sets the drawing scales the source document left
// unspecified. Non-positive values are ignored.
func (d *Document) ApplyDefaultScales(scale, diagramScale int) {
	if !d.hasScale && scale > 0 {
		d.Scale = scale
	}
	if !d.hasDiagramScale && diagramScale > 0 {
		d.DiagramScale = diagramScale
	}
}

// Validate checks the entity definitions that the analysis cannot recover
// from. Degenerate geometry is left to the analysis, which skips it.
func (d *Document) Validate() error {
	if d.Version > CurrentVersion {
		return fmt.Errorf("%w: %d (newest is %d)", ErrUnsupportedVersion, d.Version, CurrentVersion)
	}
	if d.Scale < 0 || d.DiagramScale < 0 {
		return &ValidationError{"scales must not be negative"}
	}
	for i, f := range d.Forces {
		if _, err := nscp.ParseCase(string(f.Case)); err != nil {
			return &ValidationError{fmt.Sprintf("force %d: %v", i, err)}
		}
	}
	for i, m := range d.Moments {
		if _, err := nscp.ParseCase(string(m.Case)); err != nil {
			return &ValidationError{fmt.Sprintf("moment %d: %v", i, err)}
		}
	}
	for i, l := range d.Loads {
		if _, err := nscp.ParseCase(string(l.Case)); err != nil {
			return &ValidationError{fmt.Sprintf("load %d: %v", i, err)}
		}
	}
	for i, s := range d.Supports {
		if s.Kind == frame.Rod && s.Length <= 0 {
			return &ValidationError{fmt.Sprintf("support %d: rod support needs a positive length", i)}
		}
	}
	return nil
}

// upgrade applies the defaults of fields added after version 1
func (d *Document) upgrade() {
	if d.Version < 2 {
		d.DiagramScale = frame.DefaultDiagramScale
		for _, f := range d.Forces {
			f.Case = nscp.Dead
		}
		for _, m := range d.Moments {
			m.Case = nscp.Dead
		}
		for _, l := range d.Loads {
			l.Case = nscp.Dead
		}
	}
	if d.Scale == 0 {
		d.Scale = frame.DefaultScale
	}
	if d.DiagramScale == 0 {
		d.DiagramScale = frame.DefaultDiagramScale
	}
	for _, f := range d.Forces {
		f.Case = normCase(f.Case)
	}
	for _, m := range d.Moments {
		m.Case = normCase(m.Case)
	}
	for _, l := range d.Loads {
		l.Case = normCase(l.Case)
	}
	d.Version = CurrentVersion
}

func normCase(c nscp.LoadCase) nscp.LoadCase {
	parsed, err := nscp.ParseCase(string(c))
	if err != nil {
		return c
	}
	return parsed
}

// ToModel rebuilds a model from the document and recalculates it
func (d *Document) ToModel(combos []nscp.LoadCombination) (*frame.Model, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	m := frame.New()
	m.Scale = d.Scale
	m.DiagramScale = d.DiagramScale
	if d.Combination != "" {
		c, err := nscp.Find(combos, d.Combination)
		if err != nil {
			return nil, err
		}
		m.Combination = c
	}
	m.Beams = append(m.Beams, d.Beams...)
	m.Forces = append(m.Forces, d.Forces...)
	m.Moments = append(m.Moments, d.Moments...)
	m.Loads = append(m.Loads, d.Loads...)
	m.Supports = append(m.Supports, d.Supports...)
	m.BeamCounter = d.Counters.Beams
	m.ActionCounter = d.Counters.Actions
	m.SupportCounter = d.Counters.Supports

	for _, s := range d.Supports {
		s.Direction = s.Direction.Normalize()
	}
	for _, f := range d.Forces {
		f.Direction = f.Direction.Normalize()
	}
	for _, l := range d.Loads {
		l.Direction = l.Direction.Normalize()
	}

	for _, p := range d.Stiff {
		m.SetStiff(p, true)
	}
	m.Recalculate()
	return m, nil
}

// Marshal encodes d as indented JSON at the current version
func Marshal(d *Document) ([]byte, error) {
	out := *d
	out.Version = CurrentVersion
	return json.MarshalIndent(&out, "", "  ")
}

// Unmarshal decodes and upgrades a document of any supported version
func Unmarshal(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if d.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d (newest is %d)", ErrUnsupportedVersion, d.Version, CurrentVersion)
	}
	d.hasScale = d.Scale != 0
	d.hasDiagramScale = d.Version >= 2 && d.DiagramScale != 0
	d.upgrade()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ReadFile loads a document from a JSON file
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// WriteFile stores d as JSON
func WriteFile(path string, d *Document) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ValidationError represents an invalid document
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
