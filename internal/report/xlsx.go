package report

import (
	"fmt"
	"io"

	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/xuri/excelize/v2"
)

// Workbook sheets
const (
	SummarySheet   = "Summary"
	ReactionsSheet = "Reactions"
	SegmentsSheet  = "Segments"
	EnvelopeSheet  = "Envelope"
)

// WriteXLSX writes the analysis of m as a workbook with a summary sheet, a
// reaction table and one row per internal force segment
func WriteXLSX(w io.Writer, m *frame.Model, opt Options) error {
	a := m.Analysis()
	combo := a.Combination()

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	summary := [][]any{
		{opt.title()},
		{"Project", opt.Project},
		{"Combination", combo.ID, combo.Description},
		{"Status", a.Status().String(), a.Status().Describe(a.Degree())},
		{"Degree", a.Degree()},
		{"Max |N|,|V| (kN)", a.MaxForce()},
	}
	if a.Status() == frame.StatusDeterminate {
		summary = append(summary, []any{"Max |M| (kNm)", a.MaxMoment()})
	}
	if err := writeRows(f, SummarySheet, summary); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "A1", bold); err != nil {
		return err
	}

	if _, err := f.NewSheet(ReactionsSheet); err != nil {
		return err
	}
	rows := [][]any{{"Name", "Value"}}
	for _, r := range a.Reactions() {
		rows = append(rows, []any{r.Name, r.Value})
	}
	if err := writeRows(f, ReactionsSheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(ReactionsSheet, "A1", "B1", bold); err != nil {
		return err
	}

	if _, err := f.NewSheet(SegmentsSheet); err != nil {
		return err
	}
	header := append([]any{"Beam"}, toAny(segmentHeader)...)
	rows = [][]any{header}
	if a.Status() == frame.StatusDeterminate {
		for _, b := range a.Beams() {
			for _, seg := range a.InternalForces(b) {
				row := []any{b.Name}
				for _, v := range segmentRow(seg) {
					row = append(row, v)
				}
				rows = append(rows, row)
			}
		}
	}
	if err := writeRows(f, SegmentsSheet, rows); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SegmentsSheet, "A1", last, bold); err != nil {
		return err
	}

	if len(opt.Envelope) > 0 {
		if _, err := f.NewSheet(EnvelopeSheet); err != nil {
			return err
		}
		rows = [][]any{{"Beam", "|M| (kNm)", "Combination", "|N|,|V| (kN)", "Combination"}}
		for _, env := range frame.Envelope(m, opt.Envelope) {
			rows = append(rows, []any{env.Beam,
				abs(env.Moment.Value), env.Moment.Combination.ID,
				abs(env.Force.Value), env.Force.Combination.ID})
		}
		if err := writeRows(f, EnvelopeSheet, rows); err != nil {
			return err
		}
		if err := f.SetCellStyle(EnvelopeSheet, "A1", "E1", bold); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
