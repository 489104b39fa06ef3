package nscp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_combos01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("combos01. factors and lookup")

	c, err := Find(LoadCombinations, "2")
	if err != nil {
		tst.Fatalf("find: %v", err)
	}
	chk.Float64(tst, "D", 1e-15, c.Factor(Dead), 1.2)
	chk.Float64(tst, "L", 1e-15, c.Factor(Live), 1.6)
	chk.Float64(tst, "W", 1e-15, c.Factor(Wind), 0)
	chk.Float64(tst, "empty case is dead", 1e-15, c.Factor(""), 1.2)

	u, err := Find(LoadCombinations, "0")
	if err != nil {
		tst.Fatalf("find: %v", err)
	}
	for _, lc := range Cases {
		chk.Float64(tst, string(lc), 1e-15, u.Factor(lc), 1)
	}

	if _, err := Find(SimplifiedCombinations, "5"); err == nil {
		tst.Errorf("simplified set has no combination 5")
	}

	lc, err := ParseCase("lr")
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	chk.String(tst, string(lc), "Lr")
	lc, _ = ParseCase("")
	chk.String(tst, string(lc), "D")
	if _, err := ParseCase("snow"); err == nil {
		tst.Errorf("unknown case must fail")
	}
}

func Test_combos02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("combos02. governing combination")

	values := map[LoadCase]float64{Dead: 50, Live: 30}
	g := CalculateGoverning(LoadCombinations, func(c LoadCombination) float64 {
		var sum float64
		for lc, v := range values {
			sum += c.Factor(lc) * v
		}
		return sum
	})
	chk.String(tst, g.Combination.ID, "2")
	chk.Float64(tst, "Mu", 1e-12, g.Value, 108)

	g = CalculateGoverning(SimplifiedCombinations, func(c LoadCombination) float64 { return -c.Dead })
	chk.String(tst, g.Combination.ID, "1")
	chk.Float64(tst, "negative governs by magnitude", 1e-15, g.Value, -1.4)

	g = CalculateGoverning(nil, func(LoadCombination) float64 { return 1 })
	chk.String(tst, g.Combination.ID, "")
}
