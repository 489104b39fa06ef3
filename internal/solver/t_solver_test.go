package solver

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_solver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver01. regular square system")

	a := [][]float64{
		{2, 1, 0},
		{1, 3, 1},
		{0, 1, 4},
	}
	b := []float64{3, 5, 5}
	res, err := Solve(a, b, 3)
	if err != nil {
		tst.Fatalf("solve: %v", err)
	}
	chk.String(tst, res.State.String(), "determinate")
	chk.Float64(tst, "det", 1e-12, res.Det, 18)
	chk.Array(tst, "x", 1e-12, res.X, []float64{1, 1, 1})
	chk.Float64(tst, "b untouched", 1e-15, b[0], 3)
}

func Test_solver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver02. classification")

	res, _ := Solve(nil, nil, 0)
	chk.String(tst, res.State.String(), "empty")

	res, _ = Solve([][]float64{{1, 0, 1}, {0, 1, 1}}, []float64{0, 0}, 3)
	chk.String(tst, res.State.String(), "indeterminate")
	chk.Int(tst, "degree", res.Degree, 1)

	res, _ = Solve([][]float64{{1}, {1}, {2}}, []float64{1, 1, 2}, 1)
	chk.String(tst, res.State.String(), "overdetermined")
	chk.Int(tst, "degree", res.Degree, 2)

	res, _ = Solve([][]float64{{1, 2}, {2, 4}}, []float64{1, 2}, 2)
	chk.String(tst, res.State.String(), "singular")
	if res.X != nil {
		tst.Errorf("singular system must not carry a solution")
	}

	res, _ = Solve([][]float64{{1e-4, 0}, {0, 1e-4}}, []float64{1, 1}, 2)
	chk.String(tst, res.State.String(), "singular")
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03. dimension errors")

	if _, err := Solve([][]float64{{1}}, []float64{1, 2}, 1); !errors.Is(err, ErrDimension) {
		tst.Errorf("expected ErrDimension, got %v", err)
	}
	if _, err := Solve([][]float64{{1, 2}}, []float64{1}, 1); !errors.Is(err, ErrDimension) {
		tst.Errorf("expected ErrDimension, got %v", err)
	}
}
