package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/martinmajer/mechanika/internal/geom"
)

// Quantity selects an internal force diagram
type Quantity int

const (
	Normal  Quantity = iota // N, kN
	Shear                   // V, kN
	Bending                 // M, kNm
)

func (q Quantity) String() string {
	switch q {
	case Normal:
		return "N"
	case Shear:
		return "V"
	default:
		return "M"
	}
}

// Title returns the diagram caption with units
func (q Quantity) Title() string {
	switch q {
	case Normal:
		return "Normal force N (kN)"
	case Shear:
		return "Shear force V (kN)"
	default:
		return "Bending moment M (kNm)"
	}
}

// ParseQuantity accepts N, V or M in either case
func ParseQuantity(s string) (Quantity, error) {
	switch strings.ToUpper(s) {
	case "N":
		return Normal, nil
	case "V":
		return Shear, nil
	case "M":
		return Bending, nil
	}
	return 0, fmt.Errorf("unknown quantity %q (use N, V or M)", s)
}

// ValueAt evaluates q on seg at local coordinate s
func (q Quantity) ValueAt(seg frame.Segment, s float64) float64 {
	switch q {
	case Normal:
		return seg.N(s)
	case Shear:
		return seg.V(s)
	default:
		return seg.Moment(s)
	}
}

// Sample evaluates q at n evenly spaced points along the whole beam. At a
// jump the value right of it is taken.
func Sample(segs []frame.Segment, q Quantity, n int) []float64 {
	if len(segs) == 0 || n < 2 {
		return nil
	}
	last := segs[len(segs)-1]
	total := last.S0 + last.Length
	out := make([]float64, n)
	k := 0
	for i := range out {
		s := total * float64(i) / float64(n-1)
		for k < len(segs)-1 && s >= segs[k].S0+segs[k].Length {
			k++
		}
		out[i] = q.ValueAt(segs[k], math.Min(math.Max(s-segs[k].S0, 0), segs[k].Length))
	}
	return out
}

// DrawBeamDiagram plots q along a beam as a terminal chart
func DrawBeamDiagram(segs []frame.Segment, q Quantity, width, height int) string {
	data := Sample(segs, q, width)
	if data == nil {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.Caption(q.Title()))
}

// DrawFrameSketch rasterizes the frame into a character grid: beams as
// lines, rigid joints as ●, hinges as ○ and supports below their origin
func DrawFrameSketch(m *frame.Model, cols, rows int) string {
	a := m.Analysis()
	bounds := a.Bounds()

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}

	w, h := bounds.Width(), bounds.Height()
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	cell := func(p geom.Vec) (int, int) {
		c := int(math.Round((p.X - bounds.MinX) / w * float64(cols-1)))
		r := int(math.Round((p.Z - bounds.MinZ) / h * float64(rows-1)))
		return c, r
	}
	put := func(c, r int, ch rune) {
		if r >= 0 && r < rows && c >= 0 && c < cols {
			grid[r][c] = ch
		}
	}

	for _, b := range a.Beams() {
		for i := 1; i < len(b.Points); i++ {
			c0, r0 := cell(b.Points[i-1])
			c1, r1 := cell(b.Points[i])
			ch := lineRune(c1-c0, r1-r0)
			steps := max(abs(c1-c0), abs(r1-r0))
			for k := 0; k <= steps; k++ {
				t := 0.0
				if steps > 0 {
					t = float64(k) / float64(steps)
				}
				put(c0+int(math.Round(t*float64(c1-c0))), r0+int(math.Round(t*float64(r1-r0))), ch)
			}
		}
	}

	for _, j := range a.Joints() {
		c, r := cell(j.Position)
		if j.Stiff {
			put(c, r, '●')
		} else {
			put(c, r, '○')
		}
	}

	for _, s := range m.Supports {
		c, r := cell(s.Origin)
		mark := '▲'
		if s.Kind == frame.Fixed {
			mark = '■'
		}
		if r+1 < rows {
			r++
		}
		put(c, r, mark)
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func lineRune(dc, dr int) rune {
	switch {
	case dr == 0:
		return '─'
	case dc == 0:
		return '│'
	case (dc > 0) == (dr > 0):
		return '╲'
	default:
		return '╱'
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
