package report

import (
	"bytes"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/martinmajer/mechanika/internal/geom"
	"github.com/martinmajer/mechanika/internal/nscp"
	"github.com/xuri/excelize/v2"
)

func loadedBeam() *frame.Model {
	m := frame.New()
	m.AddBeam(frame.NewBeam(geom.V(0, 0), geom.V(4, 0)))
	m.AddSupport(frame.NewSupport(frame.Pinned, geom.V(0, 0), geom.V(0, -1)))
	m.AddSupport(frame.NewSupport(frame.Roller, geom.V(4, 0), geom.V(0, -1)))
	m.AddForce(frame.NewForce(geom.V(2, 0), geom.V(0, 1), 10))
	return m
}

func Test_report01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("report01. pdf")

	var buf bytes.Buffer
	opt := Options{Project: "Test", Envelope: nscp.SimplifiedCombinations}
	if err := WritePDF(&buf, loadedBeam(), opt); err != nil {
		tst.Fatalf("pdf: %v", err)
	}
	chk.String(tst, string(buf.Bytes()[:5]), "%PDF-")

	if err := WriteFile(filepath.Join(tst.TempDir(), "out.txt"), loadedBeam(), opt); err == nil {
		tst.Errorf("unknown extension must fail")
	}
}

func Test_report02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("report02. xlsx")

	path := filepath.Join(tst.TempDir(), "out.xlsx")
	opt := Options{Envelope: nscp.SimplifiedCombinations}
	if err := WriteFile(path, loadedBeam(), opt); err != nil {
		tst.Fatalf("xlsx: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		tst.Fatalf("open: %v", err)
	}
	defer f.Close()

	chk.Strings(tst, "sheets", f.GetSheetList(), []string{SummarySheet, ReactionsSheet, SegmentsSheet, EnvelopeSheet})

	rows, err := f.GetRows(ReactionsSheet)
	if err != nil {
		tst.Fatalf("rows: %v", err)
	}
	chk.Int(tst, "reaction rows", len(rows), 4)
	chk.String(tst, rows[1][0], "R1")
	r1, _ := strconv.ParseFloat(rows[1][1], 64)
	chk.Float64(tst, "R1", 1e-9, r1, 5)

	rows, _ = f.GetRows(SegmentsSheet)
	chk.Int(tst, "segment rows", len(rows), 3)

	rows, _ = f.GetRows(EnvelopeSheet)
	chk.Int(tst, "envelope rows", len(rows), 2)
	chk.String(tst, rows[1][2], "1")
	m, _ := strconv.ParseFloat(rows[1][1], 64)
	chk.Float64(tst, "governing M", 1e-9, m, 14)
}
