package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/martinmajer/mechanika/internal/nscp"
	"github.com/spf13/cobra"
)

var (
	// Unfactored values per load case
	valueDead       float64
	valueLive       float64
	valueRoof       float64
	valueWind       float64
	valueEarthquake float64
	valueRain       float64
)

var combosCmd = &cobra.Command{
	Use:   "combos",
	Short: "List NSCP load combinations or factor a set of values",
	Long: `List the NSCP 2015 load combinations with their load case factors.

Every force, moment and distributed load of a model carries a load case.
Analyses factor each action by the factor its case has in the selected
combination (--combo on the other commands; 0 is unfactored).

When unfactored values are given, they are factored by every combination
and the governing one is reported.

Load Types:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  mechanika combos
  mechanika combos --dead 50 --live 30 --wind 20`,
	Run: runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)

	combosCmd.Flags().Float64VarP(&valueDead, "dead", "d", 0, "Value due to dead load")
	combosCmd.Flags().Float64VarP(&valueLive, "live", "l", 0, "Value due to live load")
	combosCmd.Flags().Float64VarP(&valueRoof, "roof", "r", 0, "Value due to roof live load")
	combosCmd.Flags().Float64VarP(&valueWind, "wind", "w", 0, "Value due to wind load")
	combosCmd.Flags().Float64VarP(&valueEarthquake, "earthquake", "e", 0, "Value due to earthquake load")
	combosCmd.Flags().Float64VarP(&valueRain, "rain", "R", 0, "Value due to rain load")
	addSimplifiedFlag(combosCmd)
}

func runCombos(cmd *cobra.Command, args []string) {
	values := map[nscp.LoadCase]float64{
		nscp.Dead:       valueDead,
		nscp.Live:       valueLive,
		nscp.Roof:       valueRoof,
		nscp.Wind:       valueWind,
		nscp.Earthquake: valueEarthquake,
		nscp.Rain:       valueRain,
	}
	given := false
	for _, v := range values {
		given = given || v != 0
	}
	combos := combinations()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NSCP 2015 LOAD COMBINATIONS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if !given {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tD\tL\tLr\tW\tE\tR\n")
		fmt.Fprintf(w, "  ─\t───────────\t─\t─\t──\t─\t─\t─\n")
		for _, c := range append([]nscp.LoadCombination{nscp.Unfactored}, combos...) {
			fmt.Fprintf(w, "  %s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n", c.ID, c.Description,
				c.Dead, c.Live, c.Roof, c.Wind, c.Earthquake, c.Rain)
		}
		w.Flush()
		fmt.Println()
		return
	}

	factored := func(c nscp.LoadCombination) float64 {
		var sum float64
		for lc, v := range values {
			sum += c.Factor(lc) * v
		}
		return sum
	}
	g := nscp.CalculateGoverning(combos, factored)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\tFactored\n")
	fmt.Fprintf(w, "  ─\t───────────\t────────\n")
	for _, c := range combos {
		marker := ""
		if c.ID == g.Combination.ID {
			marker = " ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", c.ID, c.Description, factored(c), marker)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("RESULT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  Governing Combination: %s (%s)\n", g.Combination.ID, g.Combination.Description)
	fmt.Printf("  Factored value: %.2f\n", g.Value)
	fmt.Println()
}
