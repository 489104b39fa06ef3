package nscp

import (
	"fmt"
	"strings"
)

// LoadCase identifies the origin of an applied load
type LoadCase string

const (
	Dead       LoadCase = "D"  // Dead load
	Live       LoadCase = "L"  // Live load
	Roof       LoadCase = "Lr" // Roof live load
	Wind       LoadCase = "W"  // Wind load
	Earthquake LoadCase = "E"  // Earthquake load
	Rain       LoadCase = "R"  // Rain load
)

// Cases lists every load case in display order
var Cases = []LoadCase{Dead, Live, Roof, Wind, Earthquake, Rain}

// ParseCase converts a case label (case-insensitive) to a LoadCase.
// The empty string maps to Dead.
func ParseCase(s string) (LoadCase, error) {
	if s == "" {
		return Dead, nil
	}
	for _, c := range Cases {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown load case %q", s)
}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64
	Live       float64
	Roof       float64
	Wind       float64
	Earthquake float64
	Rain       float64
}

// Factor returns the factor this combination applies to loads of case c
func (lc LoadCombination) Factor(c LoadCase) float64 {
	switch c {
	case Dead, "":
		return lc.Dead
	case Live:
		return lc.Live
	case Roof:
		return lc.Roof
	case Wind:
		return lc.Wind
	case Earthquake:
		return lc.Earthquake
	case Rain:
		return lc.Rain
	}
	return 0
}

// Unfactored applies every load at its nominal value
var Unfactored = LoadCombination{
	ID:          "0",
	Description: "1.0 (all cases)",
	Dead:        1, Live: 1, Roof: 1, Wind: 1, Earthquake: 1, Rain: 1,
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L + 0.5(Lr or R)", Dead: 1.2, Live: 1.6, Roof: 0.5, Rain: 0.5},
	{ID: "3", Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)", Dead: 1.2, Live: 1.0, Roof: 1.6, Rain: 1.6, Wind: 0.5},
	{ID: "4", Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)", Dead: 1.2, Live: 1.0, Wind: 1.0, Roof: 0.5, Rain: 0.5},
	{ID: "5", Description: "1.2D + 1.0E + 1.0L", Dead: 1.2, Live: 1.0, Earthquake: 1.0},
	{ID: "6", Description: "0.9D + 1.0W", Dead: 0.9, Wind: 1.0},
	{ID: "7", Description: "0.9D + 1.0E", Dead: 0.9, Earthquake: 1.0},
}

// SimplifiedCombinations covers gravity loads only
var SimplifiedCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L", Dead: 1.2, Live: 1.6},
}

// Find returns the combination with the given ID from combos
func Find(combos []LoadCombination, id string) (LoadCombination, error) {
	if id == Unfactored.ID {
		return Unfactored, nil
	}
	for _, c := range combos {
		if c.ID == id {
			return c, nil
		}
	}
	return LoadCombination{}, fmt.Errorf("unknown load combination %q", id)
}

// Governing is the largest absolute value found over a set of combinations
type Governing struct {
	Value       float64
	Combination LoadCombination
}

// CalculateGoverning evaluates value for each combination and keeps the one
// with the largest absolute result. Ties keep the earlier combination.
func CalculateGoverning(combinations []LoadCombination, value func(LoadCombination) float64) Governing {
	var g Governing
	found := false
	for _, combo := range combinations {
		v := value(combo)
		if !found || abs(v) > abs(g.Value) {
			g = Governing{Value: v, Combination: combo}
			found = true
		}
	}
	return g
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
