package frame

import (
	"fmt"

	"github.com/martinmajer/mechanika/internal/geom"
	"github.com/martinmajer/mechanika/internal/nscp"
)

// Role distinguishes user-applied loads from solver unknowns
type Role int

const (
	Applied  Role = iota // action placed by the user
	Solution             // reaction introduced by the analysis
)

// Reaction is a named unknown of the equilibrium system. It is implemented
// only by *Force and *Moment values whose Role is Solution.
type Reaction interface {
	Label() string
	Magnitude() float64
	assign(v float64)
}

// Force is a point force
type Force struct {
	Name      string        `json:"name"`
	Origin    geom.Vec      `json:"origin"`
	Direction geom.Vec      `json:"direction"` // unit vector
	Size      float64       `json:"size"`      // kN
	Case      nscp.LoadCase `json:"case,omitempty"`
	Role      Role          `json:"-"`
}

// NewForce creates an applied dead-load force. direction is normalized.
func NewForce(origin, direction geom.Vec, size float64) *Force {
	return &Force{Origin: origin, Direction: direction.Normalize(), Size: size, Case: nscp.Dead}
}

func newReactionForce(name string, origin, direction geom.Vec) *Force {
	return &Force{Name: name, Origin: origin, Direction: direction, Role: Solution}
}

func (f *Force) Label() string      { return f.Name }
func (f *Force) Magnitude() float64 { return f.Size }
func (f *Force) assign(v float64)   { f.Size = v }

// Vector returns Size * Direction
func (f *Force) Vector() geom.Vec { return f.Direction.Scale(f.Size) }

func (f *Force) String() string { return "Force " + f.Name }

// Moment is a point moment. Opposite marks the second half of an internal
// moment pair at a rigid joint, which acts with reversed sign.
type Moment struct {
	Name     string        `json:"name"`
	Origin   geom.Vec      `json:"origin"`
	Size     float64       `json:"size"` // kNm
	Case     nscp.LoadCase `json:"case,omitempty"`
	Role     Role          `json:"-"`
	Opposite bool          `json:"-"`
}

// NewMoment creates an applied dead-load moment
func NewMoment(origin geom.Vec, size float64) *Moment {
	return &Moment{Origin: origin, Size: size, Case: nscp.Dead}
}

func newReactionMoment(name string, origin geom.Vec, opposite bool) *Moment {
	return &Moment{Name: name, Origin: origin, Role: Solution, Opposite: opposite}
}

func (m *Moment) Label() string      { return m.Name }
func (m *Moment) Magnitude() float64 { return m.Size }
func (m *Moment) assign(v float64)   { m.Size = v }

func (m *Moment) String() string { return "Moment " + m.Name }

// sign returns the coefficient of this moment in a moment equilibrium row
func (m *Moment) sign() float64 {
	if m.Role == Solution && m.Opposite {
		return -1
	}
	return 1
}

// Load is a uniformly distributed load between Start and End
type Load struct {
	Name      string        `json:"name"`
	Start     geom.Vec      `json:"start"`
	End       geom.Vec      `json:"end"`
	Intensity float64       `json:"intensity"` // kN per unit length
	Direction geom.Vec      `json:"direction"` // unit vector
	Case      nscp.LoadCase `json:"case,omitempty"`

	parent *Load
}

// NewLoad creates a dead-load distributed load. direction is normalized.
func NewLoad(start, end, direction geom.Vec, intensity float64) *Load {
	return &Load{Start: start, End: end, Direction: direction.Normalize(), Intensity: intensity, Case: nscp.Dead}
}

// Length returns the span length of the load
func (l *Load) Length() float64 { return geom.Dist(l.Start, l.End) }

// Resultant returns the total force of the load
func (l *Load) Resultant() float64 { return l.Intensity * l.Length() }

// Center returns the point of application of the resultant
func (l *Load) Center() geom.Vec { return geom.Mid(l.Start, l.End) }

// Parent returns the user load a beam-scoped partial load was cut from,
// or l itself.
func (l *Load) Parent() *Load {
	if l.parent != nil {
		return l.parent
	}
	return l
}

func (l *Load) String() string { return "Load " + l.Name }

// SupportKind enumerates the support variants
type SupportKind int

const (
	Fixed  SupportKind = iota // x, z and moment
	Pinned                    // two force components
	Roller                    // one force component along Direction
	Rod                       // axial force of an external anchor rod
)

var supportKindNames = map[SupportKind]string{
	Fixed:  "fixed",
	Pinned: "pinned",
	Roller: "roller",
	Rod:    "rod",
}

func (k SupportKind) String() string {
	if s, ok := supportKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("SupportKind(%d)", int(k))
}

// ParseSupportKind is the inverse of SupportKind.String
func ParseSupportKind(s string) (SupportKind, error) {
	for k, name := range supportKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, &ValidationError{msg: fmt.Sprintf("unknown support kind %q", s)}
}

func (k SupportKind) MarshalText() ([]byte, error) {
	s, ok := supportKindNames[k]
	if !ok {
		return nil, &ValidationError{msg: fmt.Sprintf("unknown support kind %d", int(k))}
	}
	return []byte(s), nil
}

func (k *SupportKind) UnmarshalText(b []byte) error {
	v, err := ParseSupportKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Support anchors the structure at Origin
type Support struct {
	Name      string      `json:"name"`
	Kind      SupportKind `json:"kind"`
	Origin    geom.Vec    `json:"origin"`
	Direction geom.Vec    `json:"direction"` // unit vector
	Length    float64     `json:"length"`    // Rod only
}

// NewSupport creates a support; direction is normalized
func NewSupport(kind SupportKind, origin, direction geom.Vec) *Support {
	return &Support{Kind: kind, Origin: origin, Direction: direction.Normalize()}
}

// End returns the far anchor point of a Rod support
func (s *Support) End() geom.Vec {
	return s.Origin.Add(s.Direction.Scale(s.Length))
}

func (s *Support) String() string { return "Support " + s.Name }

// newReactions creates the unknowns contributed by s for one analysis
func (s *Support) newReactions() []Reaction {
	switch s.Kind {
	case Fixed:
		return []Reaction{
			newReactionForce("", s.Origin, geom.V(1, 0)),
			newReactionForce("", s.Origin, geom.V(0, 1)),
			newReactionMoment("", s.Origin, false),
		}
	case Pinned:
		return []Reaction{
			newReactionForce("", s.Origin, s.Direction),
			newReactionForce("", s.Origin, s.Direction.Perp()),
		}
	case Roller, Rod:
		return []Reaction{newReactionForce("", s.Origin, s.Direction)}
	}
	return nil
}

// ValidationError represents an invalid entity definition
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
