// Package solver solves the assembled equilibrium system and classifies its
// static determinacy.
package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SingularThreshold is the absolute determinant below which a square system
// is treated as a mechanism rather than solved.
const SingularThreshold = 1e-7

// State classifies an equilibrium system
type State int

const (
	Empty          State = iota // no equations at all
	Determinate                 // solved
	Indeterminate               // more unknowns than equations
	Overdetermined              // more equations than unknowns
	Singular                    // square but degenerate
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Determinate:
		return "determinate"
	case Indeterminate:
		return "indeterminate"
	case Overdetermined:
		return "overdetermined"
	case Singular:
		return "singular"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result holds the outcome of Solve
type Result struct {
	State    State
	Rows     int
	Unknowns int
	Degree   int       // |Unknowns - Rows| for Indeterminate / Overdetermined
	Det      float64   // determinant, square systems only
	X        []float64 // solution, Determinate only
}

// ErrDimension is returned when the row and right-hand-side counts differ
var ErrDimension = errors.New("solver: dimension mismatch")

// Solve classifies the system a·x = b with the given number of unknown
// columns and solves it when it is square and regular.
func Solve(a [][]float64, b []float64, unknowns int) (Result, error) {
	res := Result{Rows: len(a), Unknowns: unknowns}
	if len(a) != len(b) {
		return res, fmt.Errorf("%w: %d rows, %d right-hand sides", ErrDimension, len(a), len(b))
	}
	for i, row := range a {
		if len(row) != unknowns {
			return res, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimension, i, len(row), unknowns)
		}
	}

	switch {
	case res.Rows == 0:
		res.State = Empty
		return res, nil
	case unknowns > res.Rows:
		res.State = Indeterminate
		res.Degree = unknowns - res.Rows
		return res, nil
	case unknowns < res.Rows:
		res.State = Overdetermined
		res.Degree = res.Rows - unknowns
		return res, nil
	}

	n := unknowns
	data := make([]float64, 0, n*n)
	for _, row := range a {
		data = append(data, row...)
	}
	A := mat.NewDense(n, n, data)

	res.Det = mat.Det(A)
	if math.Abs(res.Det) < SingularThreshold || math.IsNaN(res.Det) {
		res.State = Singular
		return res, nil
	}

	var x mat.VecDense
	if err := x.SolveVec(A, mat.NewVecDense(n, append([]float64(nil), b...))); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			res.State = Singular
			return res, nil
		}
	}

	res.X = make([]float64, n)
	for i := range res.X {
		v := x.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			res.State = Singular
			res.X = nil
			return res, nil
		}
		res.X[i] = v
	}
	res.State = Determinate
	return res, nil
}
