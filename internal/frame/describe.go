package frame

import (
	"fmt"
	"strings"
)

// Describe returns the long text description of a beam, joint, force,
// moment, load or support under the current analysis
func (m *Model) Describe(entity any) string {
	a := m.Analysis()
	switch v := entity.(type) {
	case *Beam:
		return a.describeBeam(v)
	case *Joint:
		return describeJoint(v)
	case *Force:
		return a.describeForce(v)
	case *Moment:
		return a.describeMoment(v)
	case *Load:
		return a.describeLoad(v)
	case *Support:
		return a.describeSupport(v)
	}
	return fmt.Sprintf("%v", entity)
}

func (a *Analysis) describeBeam(b *Beam) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Beam %s, length %.3f\n", b.Name, b.Length())
	st, ok := a.states[b]
	if !ok {
		sb.WriteString("Not analysed.")
		return sb.String()
	}
	if st.Rod {
		fmt.Fprintf(&sb, "Rod, axial force %s = %.3f", st.RodForce.Name, st.RodForce.Size)
		return sb.String()
	}
	if a.status != StatusDeterminate {
		sb.WriteString(a.status.Describe(a.result.Degree))
		return sb.String()
	}
	for i, seg := range a.InternalForces(b) {
		fmt.Fprintf(&sb, "%d: %s -> %s\n   %s", i+1, seg.Start, seg.End, seg.Formula())
		if seg.HasExtreme {
			fmt.Fprintf(&sb, "\n   M extreme %.3f at x = %.3f", seg.MExtreme, seg.SExtreme)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func describeJoint(j *Joint) string {
	var sb strings.Builder
	kind := "hinged"
	if j.Stiff {
		kind = "stiff"
	}
	fmt.Fprintf(&sb, "Joint %s (%s)", j.Position, kind)
	names := make([]string, 0, len(j.Beams))
	for _, b := range j.Beams {
		names = append(names, b.Name)
	}
	if len(names) > 0 {
		fmt.Fprintf(&sb, "\nBeams: %s", strings.Join(names, ", "))
	}
	for _, r := range j.Reactions {
		fmt.Fprintf(&sb, "\n%s = %.3f", r.Label(), r.Magnitude())
	}
	return sb.String()
}

func (a *Analysis) describeForce(f *Force) string {
	s := fmt.Sprintf("Force %s = %.3f kN (%s) at %s, direction %d°", f.Name, f.Size, f.Case, f.Origin, f.Direction.Angle())
	if !a.enabled[f] {
		s += "\nNot applied to any beam."
	}
	return s
}

func (a *Analysis) describeMoment(m *Moment) string {
	s := fmt.Sprintf("Moment %s = %.3f kNm (%s) at %s", m.Name, m.Size, m.Case, m.Origin)
	if !a.enabled[m] {
		s += "\nNot applied to any beam."
	}
	return s
}

func (a *Analysis) describeLoad(l *Load) string {
	s := fmt.Sprintf("Load %s = %.3f kN/m (%s) from %s to %s, direction %d°, resultant %.3f kN",
		l.Name, l.Intensity, l.Case, l.Start, l.End, l.Direction.Angle(), l.Resultant())
	parts := a.parts[l]
	if len(parts) == 0 {
		return s + "\nNot applied to any beam."
	}
	for i := 0; i+1 < len(parts); i += 2 {
		s += fmt.Sprintf("\nActive <%.3f; %.3f>", parts[i], parts[i+1])
	}
	return s
}

func (a *Analysis) describeSupport(s *Support) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Support %s (%s) at %s, direction %d°", s.Name, s.Kind, s.Origin, s.Direction.Angle())
	if s.Kind == Rod {
		fmt.Fprintf(&sb, ", length %.3f, anchored at %s", s.Length, s.End())
	}
	if !a.enabled[s] {
		sb.WriteString("\nNot attached to any beam.")
		return sb.String()
	}
	for _, r := range a.supports[s] {
		fmt.Fprintf(&sb, "\n%s = %.3f", r.Label(), r.Magnitude())
	}
	return sb.String()
}
