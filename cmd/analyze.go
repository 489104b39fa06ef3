package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/martinmajer/mechanika/internal/api"
	"github.com/martinmajer/mechanika/internal/diagram"
	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/spf13/cobra"
)

var (
	modelFile string
	comboID   string

	analyzeJSON   bool
	analyzeSketch bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify a frame and solve its reactions",
	Long: `Analyze a frame model: bind beams, actions and supports into joints,
reduce hinged two-point beams to rods, classify the structure and, when it
is statically determinate, solve every reaction.

The model is a JSON document with beams (polylines), forces, moments,
distributed loads, supports (fixed, pinned, roller, rod) and the list of
rigid joint positions. Coordinates are in meters with z pointing down.

Examples:
  # Unfactored analysis
  mechanika analyze -f portal.json

  # Factored by NSCP combination 2 (1.2D + 1.6L + 0.5(Lr or R))
  mechanika analyze -f portal.json --combo 2

  # Full result as JSON
  mechanika analyze -f portal.json --json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&modelFile, "file", "f", "", "Model file (JSON)")
	analyzeCmd.Flags().StringVarP(&comboID, "combo", "c", "", "Load combination ID (0 = unfactored)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the analysis as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeSketch, "sketch", false, "Print a character sketch of the frame")
	addSimplifiedFlag(analyzeCmd)
	analyzeCmd.MarkFlagRequired("file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	m, err := loadModel(modelFile, comboID)
	if err != nil {
		return err
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(api.NewAnalysisView(m))
	}

	a := m.Analysis()
	combo := a.Combination()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          FRAME ANALYSIS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("MODEL:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Beams:\t%d\n", len(m.Beams))
	fmt.Fprintf(w, "  Forces / moments / loads:\t%d / %d / %d\n", len(m.Forces), len(m.Moments), len(m.Loads))
	fmt.Fprintf(w, "  Supports:\t%d\n", len(m.Supports))
	fmt.Fprintf(w, "  Joints:\t%d\n", len(a.Joints()))
	fmt.Fprintf(w, "  Equations / unknowns:\t%d / %d\n", a.Rows(), len(a.Unknowns()))
	fmt.Fprintf(w, "  Load combination:\t%s (%s)\n", combo.ID, combo.Description)
	w.Flush()
	fmt.Println()

	if analyzeSketch {
		fmt.Println("SKETCH:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Print(diagram.DrawFrameSketch(m, 60, 16))
		fmt.Println()
	}

	printUnbound(m, a)

	if a.Status() != frame.StatusDeterminate {
		fmt.Println(diagram.DrawSummaryBox("STATUS", []string{a.Status().Describe(a.Degree())}))
		return nil
	}

	fmt.Println("REACTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, r := range a.Reactions() {
		fmt.Fprintf(w, "  %s\t%.3f\t\n", r.Name, r.Value)
	}
	w.Flush()
	fmt.Println()

	fmt.Print(diagram.DrawSummaryBox("RESULT", []string{
		a.Status().Describe(a.Degree()),
		fmt.Sprintf("Max |N|,|V| = %.3f kN", a.MaxForce()),
		fmt.Sprintf("Max |M|     = %.3f kNm", a.MaxMoment()),
	}))
	fmt.Println()
	return nil
}

// printUnbound lists entities that touch no beam and so take no part in
// the analysis
func printUnbound(m *frame.Model, a *frame.Analysis) {
	var names []string
	for _, f := range m.Forces {
		if !a.Enabled(f) {
			names = append(names, f.Name)
		}
	}
	for _, mo := range m.Moments {
		if !a.Enabled(mo) {
			names = append(names, mo.Name)
		}
	}
	for _, l := range m.Loads {
		if !a.Enabled(l) {
			names = append(names, l.Name)
		}
	}
	for _, s := range m.Supports {
		if !a.Enabled(s) {
			names = append(names, s.Name)
		}
	}
	if len(names) == 0 {
		return
	}
	fmt.Println("NOT ATTACHED (ignored):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	for _, n := range names {
		fmt.Printf("  %s\n", n)
	}
	fmt.Println()
}
