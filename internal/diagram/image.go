package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/martinmajer/mechanika/internal/geom"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// samples per segment of a drawn diagram
const samples = 24

var (
	beamColor    = color.Black
	jointColor   = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	supportColor = color.RGBA{R: 34, G: 139, B: 34, A: 255}
)

func (q Quantity) fill() color.Color {
	switch q {
	case Normal:
		return color.RGBA{R: 100, G: 149, B: 237, A: 150}
	case Shear:
		return color.RGBA{R: 60, G: 179, B: 113, A: 150}
	default:
		return color.RGBA{R: 255, G: 99, B: 71, A: 150}
	}
}

// plot space has y up, the model has z down
func xy(p geom.Vec) plotter.XY { return plotter.XY{X: p.X, Y: -p.Z} }

// ExportFrameDiagram draws the frame with the q diagram over every beam.
// ordinate is the drawn length, in model units, of the largest value.
// Diagrams are only drawn for determinate structures.
func ExportFrameDiagram(m *frame.Model, q Quantity, ordinate float64, filename string) error {
	a := m.Analysis()

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, %s", q.Title(), a.Status().Describe(a.Degree()))
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "z (m)"
	p.Add(plotter.NewGrid())

	if a.Status() == frame.StatusDeterminate {
		if err := addDiagrams(p, a, q, ordinate); err != nil {
			return err
		}
	}

	for _, b := range a.Beams() {
		pts := make(plotter.XYs, len(b.Points))
		for i, pt := range b.Points {
			pts[i] = xy(pt)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = beamColor
		if st, ok := a.State(b); ok && st.Rod {
			line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		}
		p.Add(line)
	}

	var joints plotter.XYs
	for _, j := range a.Joints() {
		joints = append(joints, xy(j.Position))
	}
	if len(joints) > 0 {
		sc, err := plotter.NewScatter(joints)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Color = jointColor
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
	}

	var supports plotter.XYs
	for _, s := range m.Supports {
		supports = append(supports, xy(s.Origin))
	}
	if len(supports) > 0 {
		sc, err := plotter.NewScatter(supports)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Shape = draw.TriangleGlyph{}
		sc.GlyphStyle.Color = supportColor
		sc.GlyphStyle.Radius = vg.Points(5)
		p.Add(sc)
	}

	return save(p, filename)
}

func addDiagrams(p *plot.Plot, a *frame.Analysis, q Quantity, ordinate float64) error {
	peak := 0.0
	segsOf := make(map[*frame.Beam][]frame.Segment)
	for _, b := range a.Beams() {
		segs := a.InternalForces(b)
		segsOf[b] = segs
		for _, seg := range segs {
			for i := 0; i <= samples; i++ {
				peak = math.Max(peak, math.Abs(q.ValueAt(seg, seg.Length*float64(i)/samples)))
			}
		}
	}
	if peak == 0 {
		return nil
	}
	k := ordinate / peak

	var labels plotter.XYLabels
	for _, b := range a.Beams() {
		for _, seg := range segsOf[b] {
			poly := plotter.XYs{xy(seg.Start)}
			best, bestS := 0.0, 0.0
			for i := 0; i <= samples; i++ {
				s := seg.Length * float64(i) / samples
				v := q.ValueAt(seg, s)
				poly = append(poly, xy(seg.At(s).Add(seg.DirV.Scale(v*k))))
				if math.Abs(v) > math.Abs(best) {
					best, bestS = v, s
				}
			}
			poly = append(poly, xy(seg.End))
			if best == 0 {
				continue
			}
			pg, err := plotter.NewPolygon(poly)
			if err != nil {
				return err
			}
			pg.Color = q.fill()
			pg.LineStyle.Color = q.fill()
			p.Add(pg)

			labels.XYs = append(labels.XYs, xy(seg.At(bestS).Add(seg.DirV.Scale(best*k))))
			labels.Labels = append(labels.Labels, fmt.Sprintf("%.2f", best))
		}
	}
	if len(labels.XYs) == 0 {
		return nil
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

// ExportBeamDiagram plots q against the arc length of a single beam
func ExportBeamDiagram(name string, segs []frame.Segment, q Quantity, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Beam %s: %s", name, q.Title())
	p.X.Label.Text = "s (m)"
	p.Y.Label.Text = q.String()
	p.Add(plotter.NewGrid())

	for _, seg := range segs {
		pts := make(plotter.XYs, 0, samples+3)
		pts = append(pts, plotter.XY{X: seg.S0, Y: 0})
		for i := 0; i <= samples; i++ {
			s := seg.Length * float64(i) / samples
			pts = append(pts, plotter.XY{X: seg.S0 + s, Y: q.ValueAt(seg, s)})
		}
		pts = append(pts, plotter.XY{X: seg.S0 + seg.Length, Y: 0})

		pg, err := plotter.NewPolygon(pts)
		if err != nil {
			return err
		}
		pg.Color = q.fill()
		pg.LineStyle.Width = vg.Points(1.5)
		p.Add(pg)
	}

	return save(p, filename)
}

// save writes p in the format given by the file extension, PNG by default
func save(p *plot.Plot, filename string) error {
	ext := filepath.Ext(filename)
	width := 8 * vg.Inch
	height := 6 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch ext {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
