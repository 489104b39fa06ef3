package cmd

import (
	"fmt"

	"github.com/martinmajer/mechanika/internal/document"
	"github.com/martinmajer/mechanika/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mechanika",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mechanika v%s\n", version.Version)
		fmt.Println("2D Static Frame Analysis")
		fmt.Printf("Model format: version %d\n", document.CurrentVersion)
		fmt.Printf("Built: %s (commit %s)\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
