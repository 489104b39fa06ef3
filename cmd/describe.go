package cmd

import (
	"fmt"

	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [name...]",
	Short: "Describe model entities",
	Long: `Print the model overview followed by the long description of the named
beams, forces, moments, loads and supports, or of every entity and joint
when no name is given.

Examples:
  mechanika describe -f portal.json
  mechanika describe -f portal.json 2 F1 S1`,
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVarP(&modelFile, "file", "f", "", "Model file (JSON)")
	describeCmd.Flags().StringVarP(&comboID, "combo", "c", "", "Load combination ID (0 = unfactored)")
	addSimplifiedFlag(describeCmd)
	describeCmd.MarkFlagRequired("file")
}

func entities(m *frame.Model) map[string]any {
	out := make(map[string]any)
	for _, b := range m.Beams {
		out[b.Name] = b
	}
	for _, f := range m.Forces {
		out[f.Name] = f
	}
	for _, mo := range m.Moments {
		out[mo.Name] = mo
	}
	for _, l := range m.Loads {
		out[l.Name] = l
	}
	for _, s := range m.Supports {
		out[s.Name] = s
	}
	return out
}

func runDescribe(cmd *cobra.Command, args []string) error {
	m, err := loadModel(modelFile, comboID)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(m.Info())
	fmt.Println()

	if len(args) > 0 {
		byName := entities(m)
		for _, name := range args {
			e, ok := byName[name]
			if !ok {
				return fmt.Errorf("no entity named %q", name)
			}
			fmt.Println(m.Describe(e))
			fmt.Println()
		}
		return nil
	}

	var all []any
	for _, b := range m.Beams {
		all = append(all, b)
	}
	for _, j := range m.Analysis().Joints() {
		all = append(all, j)
	}
	for _, f := range m.Forces {
		all = append(all, f)
	}
	for _, mo := range m.Moments {
		all = append(all, mo)
	}
	for _, l := range m.Loads {
		all = append(all, l)
	}
	for _, s := range m.Supports {
		all = append(all, s)
	}
	for _, e := range all {
		fmt.Println(m.Describe(e))
		fmt.Println()
	}
	return nil
}
