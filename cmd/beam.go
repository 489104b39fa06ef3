package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/martinmajer/mechanika/internal/diagram"
	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/spf13/cobra"
)

var (
	beamName     string
	beamPlot     bool
	beamQuantity string
	beamStations int
)

var beamCmd = &cobra.Command{
	Use:   "beam",
	Short: "Internal forces along one beam",
	Long: `Print the internal force distribution of a beam: one row per segment
between concentrated actions with the N, V and M formulas in the local
coordinate x, the values at the segment ends and the moment extreme.

With --stations the distribution is also sampled at evenly spaced points
and with --plot the selected quantity is charted in the terminal.

Examples:
  mechanika beam -f portal.json -b 2
  mechanika beam -f portal.json -b 2 --plot -q V
  mechanika beam -f portal.json -b 2 --stations 4 --combo 1`,
	RunE: runBeam,
}

func init() {
	rootCmd.AddCommand(beamCmd)

	beamCmd.Flags().StringVarP(&modelFile, "file", "f", "", "Model file (JSON)")
	beamCmd.Flags().StringVarP(&comboID, "combo", "c", "", "Load combination ID (0 = unfactored)")
	beamCmd.Flags().StringVarP(&beamName, "beam", "b", "", "Beam name")
	beamCmd.Flags().BoolVarP(&beamPlot, "plot", "p", false, "Chart the distribution in the terminal")
	beamCmd.Flags().StringVarP(&beamQuantity, "quantity", "q", "M", "Charted quantity: N, V or M")
	beamCmd.Flags().IntVar(&beamStations, "stations", 0, "Sample points per segment (0 = none)")
	addSimplifiedFlag(beamCmd)
	beamCmd.MarkFlagRequired("file")
	beamCmd.MarkFlagRequired("beam")
}

func findBeam(m *frame.Model, name string) (*frame.Beam, error) {
	for _, b := range m.Beams {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no beam named %q", name)
}

func runBeam(cmd *cobra.Command, args []string) error {
	q, err := diagram.ParseQuantity(beamQuantity)
	if err != nil {
		return err
	}
	m, err := loadModel(modelFile, comboID)
	if err != nil {
		return err
	}
	b, err := findBeam(m, beamName)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(m.Describe(b))
	fmt.Println()

	a := m.Analysis()
	if a.Status() != frame.StatusDeterminate {
		return nil
	}
	segs := a.InternalForces(b)

	fmt.Println("SEGMENTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  s0\tL\tN start\tN end\tV start\tV end\tM start\tM end\t\n")
	for _, seg := range segs {
		fmt.Fprintf(w, "  %.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
			seg.S0, seg.Length, seg.NStart, seg.NEnd, seg.VStart, seg.VEnd, seg.M, seg.MEnd)
	}
	w.Flush()
	fmt.Println()

	if beamStations > 0 {
		fmt.Println("STATIONS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "  s\tx\tz\tN\tV\tM\t\n")
		for _, st := range frame.Stations(segs, beamStations) {
			fmt.Fprintf(w, "  %.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n", st.S, st.Pos.X, st.Pos.Z, st.N, st.V, st.M)
		}
		w.Flush()
		fmt.Println()
	}

	if beamPlot {
		fmt.Println(diagram.DrawBeamDiagram(segs, q, 60, 12))
		fmt.Println()
	}
	return nil
}
