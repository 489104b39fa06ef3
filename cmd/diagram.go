package cmd

import (
	"fmt"

	"github.com/martinmajer/mechanika/internal/diagram"
	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/spf13/cobra"
)

var (
	diagramQuantity string
	diagramOutput   string
	diagramBeam     string
)

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Export an internal force diagram image",
	Long: `Export the N, V or M diagram of the whole frame, or of one beam with
--beam, as an image. The format follows the output extension (.png, .svg,
.pdf); PNG is used otherwise.

On the frame drawing the largest ordinate is drawn DiagramScale/Scale model
units long, both taken from the model file.

Examples:
  mechanika diagram -f portal.json -q M -o portal-m.png
  mechanika diagram -f portal.json -q V -b 2 -o beam2-v.svg`,
	RunE: runDiagram,
}

func init() {
	rootCmd.AddCommand(diagramCmd)

	diagramCmd.Flags().StringVarP(&modelFile, "file", "f", "", "Model file (JSON)")
	diagramCmd.Flags().StringVarP(&comboID, "combo", "c", "", "Load combination ID (0 = unfactored)")
	diagramCmd.Flags().StringVarP(&diagramQuantity, "quantity", "q", "M", "Quantity: N, V or M")
	diagramCmd.Flags().StringVarP(&diagramOutput, "output", "o", "diagram.png", "Output image")
	diagramCmd.Flags().StringVarP(&diagramBeam, "beam", "b", "", "Plot a single beam against its arc length")
	addSimplifiedFlag(diagramCmd)
	diagramCmd.MarkFlagRequired("file")
}

// ordinate is the drawn length of the largest diagram value in model units
func ordinate(m *frame.Model) float64 {
	s, d := m.Scale, m.DiagramScale
	if s <= 0 {
		s = frame.DefaultScale
	}
	if d <= 0 {
		d = frame.DefaultDiagramScale
	}
	return float64(d) / float64(s)
}

func runDiagram(cmd *cobra.Command, args []string) error {
	q, err := diagram.ParseQuantity(diagramQuantity)
	if err != nil {
		return err
	}
	m, err := loadModel(modelFile, comboID)
	if err != nil {
		return err
	}
	a := m.Analysis()
	if a.Status() != frame.StatusDeterminate {
		fmt.Println(a.Status().Describe(a.Degree()))
	}

	if diagramBeam != "" {
		b, err := findBeam(m, diagramBeam)
		if err != nil {
			return err
		}
		if a.Status() != frame.StatusDeterminate {
			return fmt.Errorf("beam diagrams need a statically determinate structure")
		}
		err = diagram.ExportBeamDiagram(b.Name, a.InternalForces(b), q, diagramOutput)
		if err != nil {
			return err
		}
	} else if err := diagram.ExportFrameDiagram(m, q, ordinate(m), diagramOutput); err != nil {
		return err
	}

	fmt.Printf("Diagram written to %s\n", diagramOutput)
	return nil
}
