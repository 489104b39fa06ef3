// Package report renders the results of a frame analysis as a PDF document
// or an Excel workbook.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/martinmajer/mechanika/internal/nscp"
)

// Options describes the report header and optional sections
type Options struct {
	Title   string
	Project string
	Author  string

	// Diagram is an image file placed after the summary, if set
	Diagram string

	// Envelope adds a governing values table over these combinations
	Envelope []nscp.LoadCombination
}

func (o Options) title() string {
	if o.Title == "" {
		return "Frame Analysis Report"
	}
	return o.Title
}

// segmentHeader labels the columns of the segment tables
var segmentHeader = []string{"s0", "L", "N start", "N end", "V start", "V end", "M start", "M end", "M extr"}

func segmentRow(seg frame.Segment) []float64 {
	extreme := seg.M
	if seg.HasExtreme {
		extreme = seg.MExtreme
	}
	return []float64{seg.S0, seg.Length, seg.NStart, seg.NEnd, seg.VStart, seg.VEnd, seg.M, seg.MEnd, extreme}
}

// WriteFile writes a PDF or XLSX report depending on the extension of path
func WriteFile(path string, m *frame.Model, opt Options) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pdf" && ext != ".xlsx" {
		return fmt.Errorf("unsupported report format %q (use .pdf or .xlsx)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if ext == ".pdf" {
		err = WritePDF(f, m, opt)
	} else {
		err = WriteXLSX(f, m, opt)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// WritePDF renders the analysis of m as an A4 report
func WritePDF(w io.Writer, m *frame.Model, opt Options) error {
	a := m.Analysis()
	combo := a.Combination()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, opt.title())
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if opt.Project != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Project: %s", opt.Project))
		pdf.Ln(6)
	}
	if opt.Author != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Author: %s", opt.Author))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Load combination %s: %s", combo.ID, combo.Description))
	pdf.Ln(10)

	heading(pdf, "Structure")
	pdf.MultiCell(0, 6, a.Status().Describe(a.Degree()), "", "L", false)
	pdf.MultiCell(0, 6, fmt.Sprintf("Beams: %d, forces: %d, moments: %d, loads: %d, supports: %d",
		len(m.Beams), len(m.Forces), len(m.Moments), len(m.Loads), len(m.Supports)), "", "L", false)
	pdf.Ln(4)

	if opt.Diagram != "" {
		pdf.ImageOptions(opt.Diagram, 10, pdf.GetY(), 190, 0, true,
			fpdf.ImageOptions{ReadDpi: true}, 0, "")
		pdf.Ln(4)
	}

	if a.Status() == frame.StatusDeterminate {
		heading(pdf, "Reactions")
		for _, r := range a.Reactions() {
			pdf.CellFormat(30, 6, r.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%.3f", r.Value), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)

		heading(pdf, "Internal forces")
		for _, b := range a.Beams() {
			pdf.SetFont("Helvetica", "B", 11)
			label := fmt.Sprintf("Beam %s, L = %.3f m", b.Name, b.Length())
			if st, ok := a.State(b); ok && st.Rod {
				label += " (rod)"
			}
			pdf.Cell(0, 6, label)
			pdf.Ln(7)
			table(pdf, segmentHeader, a.InternalForces(b))
			pdf.Ln(3)
		}
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("Max |N|,|V| = %.3f kN, max |M| = %.3f kNm", a.MaxForce(), a.MaxMoment()))
		pdf.Ln(8)
	}

	if len(opt.Envelope) > 0 {
		heading(pdf, "Governing values")
		for _, env := range frame.Envelope(m, opt.Envelope) {
			pdf.MultiCell(0, 6, fmt.Sprintf("Beam %s: |M| = %.3f kNm (combination %s), |N|,|V| = %.3f kN (combination %s)",
				env.Beam, abs(env.Moment.Value), env.Moment.Combination.ID,
				abs(env.Force.Value), env.Force.Combination.ID), "", "L", false)
		}
	}

	return pdf.Output(w)
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
}

func table(pdf *fpdf.Fpdf, header []string, segs []frame.Segment) {
	width := 190.0 / float64(len(header))
	pdf.SetFont("Helvetica", "B", 8)
	for _, h := range header {
		pdf.CellFormat(width, 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
	for _, seg := range segs {
		for _, v := range segmentRow(seg) {
			pdf.CellFormat(width, 5, fmt.Sprintf("%.3f", v), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
