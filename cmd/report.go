package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/martinmajer/mechanika/internal/diagram"
	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/martinmajer/mechanika/internal/report"
	"github.com/spf13/cobra"
)

var (
	reportOutput   string
	reportTitle    string
	reportProject  string
	reportAuthor   string
	reportDiagram  bool
	reportEnvelope bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a PDF or XLSX analysis report",
	Long: `Write the analysis of a model as a PDF document or an Excel workbook,
chosen by the output extension.

The report lists the structure status, reactions and the internal force
segments of every beam. --diagram embeds the moment diagram (PDF only) and
--envelope adds the governing values over all load combinations.

Examples:
  mechanika report -f portal.json -o portal.pdf --diagram --envelope
  mechanika report -f portal.json -o portal.xlsx --combo 2`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&modelFile, "file", "f", "", "Model file (JSON)")
	reportCmd.Flags().StringVarP(&comboID, "combo", "c", "", "Load combination ID (0 = unfactored)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "report.pdf", "Output file (.pdf or .xlsx)")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "Report title")
	reportCmd.Flags().StringVar(&reportProject, "project", "", "Project name")
	reportCmd.Flags().StringVar(&reportAuthor, "author", "", "Author")
	reportCmd.Flags().BoolVar(&reportDiagram, "diagram", false, "Embed the bending moment diagram")
	reportCmd.Flags().BoolVar(&reportEnvelope, "envelope", false, "Add governing values over all combinations")
	addSimplifiedFlag(reportCmd)
	reportCmd.MarkFlagRequired("file")
}

func runReport(cmd *cobra.Command, args []string) error {
	m, err := loadModel(modelFile, comboID)
	if err != nil {
		return err
	}

	opt := report.Options{
		Title:   reportTitle,
		Project: reportProject,
		Author:  reportAuthor,
	}
	if reportEnvelope {
		opt.Envelope = combinations()
	}

	pdf := strings.EqualFold(filepath.Ext(reportOutput), ".pdf")
	if reportDiagram && pdf && m.Analysis().Status() == frame.StatusDeterminate {
		dir, err := os.MkdirTemp("", "mechanika-report")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)

		opt.Diagram = filepath.Join(dir, "moment.png")
		if err := diagram.ExportFrameDiagram(m, diagram.Bending, ordinate(m), opt.Diagram); err != nil {
			return err
		}
	}

	if err := report.WriteFile(reportOutput, m, opt); err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", reportOutput)
	return nil
}
