package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/spf13/cobra"
)

var envelopeCmd = &cobra.Command{
	Use:   "envelope",
	Short: "Governing internal forces over all load combinations",
	Long: `Solve the model once per NSCP load combination and report, for every
beam, the largest bending moment and the largest normal or shear force with
the combination that produced it.

Combinations under which the structure is not statically determinate
contribute nothing.

Examples:
  mechanika envelope -f portal.json
  mechanika envelope -f portal.json --simplified`,
	RunE: runEnvelope,
}

func init() {
	rootCmd.AddCommand(envelopeCmd)

	envelopeCmd.Flags().StringVarP(&modelFile, "file", "f", "", "Model file (JSON)")
	addSimplifiedFlag(envelopeCmd)
	envelopeCmd.MarkFlagRequired("file")
}

func runEnvelope(cmd *cobra.Command, args []string) error {
	m, err := loadModel(modelFile, "")
	if err != nil {
		return err
	}
	combos := combinations()
	envs := frame.Envelope(m, combos)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          GOVERNING INTERNAL FORCES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if len(envs) > 0 {
		fmt.Println("STATUS PER COMBINATION:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, c := range combos {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", c.ID, c.Description, envs[0].Statuses[c.ID])
		}
		w.Flush()
		fmt.Println()
	}

	fmt.Println("ENVELOPE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Beam\t|M| (kNm)\tCombo\t|N|,|V| (kN)\tCombo\n")
	fmt.Fprintf(w, "  ────\t─────────\t─────\t────────────\t─────\n")
	for _, env := range envs {
		fmt.Fprintf(w, "  %s\t%.3f\t%s\t%.3f\t%s\n", env.Beam,
			env.Moment.Value, env.Moment.Combination.ID,
			env.Force.Value, env.Force.Combination.ID)
	}
	w.Flush()
	fmt.Println()
	return nil
}
