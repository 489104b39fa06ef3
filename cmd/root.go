package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/martinmajer/mechanika/internal/config"
	"github.com/martinmajer/mechanika/internal/document"
	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/martinmajer/mechanika/internal/nscp"
	"github.com/martinmajer/mechanika/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Global options
	verbose    bool
	scale      int
	envFile    string
	simplified bool
	scaleSet   bool // --scale given on the command line

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mechanika",
	Short: "Static analysis of planar frames",
	Long: `mechanika - 2D Static Frame Analysis

A CLI tool for the static analysis of planar frames made of beams and
axial rods, loaded by point forces, moments and distributed loads.

This tool helps structural engineers:
  - Classify structures (determinate, indeterminate, mechanism)
  - Solve support reactions and internal joint forces
  - Evaluate normal force, shear force and bending moment along beams
  - Factor actions with NSCP 2015 load combinations
  - Export diagrams and PDF/XLSX reports

Models are JSON documents; see 'mechanika analyze --help'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if envFile != "" {
			cfg, err = config.LoadFile(envFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		scaleSet = cmd.Root().PersistentFlags().Changed("scale")
		if scaleSet {
			cfg.Scale = scale
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   mechanika v%-45s║\n", version.Version)
		fmt.Println("  ║   2D Static Frame Analysis                                ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Determinacy classification of beam and rod structures")
		fmt.Println("    • Reactions, internal joint forces and rod forces")
		fmt.Println("    • N, V and M along every beam with moment extremes")
		fmt.Println("    • NSCP 2015 load combinations and governing envelopes")
		fmt.Println("    • Diagrams, PDF/XLSX reports, model library and HTTP API")
		fmt.Println()
		fmt.Println("  Use 'mechanika --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every recalculation stage")
	rootCmd.PersistentFlags().IntVar(&scale, "scale", frame.DefaultScale, "Pixels per model unit (point matching tolerance)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Environment file (default .env if present)")
}

// combinations returns the combination set selected by --simplified
func combinations() []nscp.LoadCombination {
	if simplified {
		return nscp.SimplifiedCombinations
	}
	return nscp.LoadCombinations
}

func addSimplifiedFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&simplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
}

func logger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "", log.Ltime)
}

// loadModel reads a model file, applies the configured scales and, when
// combo is set, the load combination with that ID. Scales from the
// environment only fill in what the document leaves out; --scale wins.
func loadModel(path, combo string) (*frame.Model, error) {
	if path == "" {
		return nil, fmt.Errorf("a model file is required (-f)")
	}
	d, err := document.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		d.ApplyDefaultScales(cfg.Scale, cfg.DiagramScale)
	}
	if scaleSet {
		d.Scale = scale
	}
	m, err := d.ToModel(combinations())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.SetLogger(logger())
	if combo != "" {
		c, err := nscp.Find(combinations(), combo)
		if err != nil {
			return nil, err
		}
		m.SetCombination(c)
	} else if verbose {
		m.Recalculate()
	}
	return m, nil
}
