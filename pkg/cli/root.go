// Package cli implements the lake-demo command line: one subcommand per
// zone step plus bootstrap and workflow orchestration.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lake-demo",
		Short: "Data lake zone pipeline demo",
		Long: "Moves synthetic retail data through the raw, process, and access zones\n" +
			"of an S3-compatible data lake, registers it with the Trino catalog, and\n" +
			"maintains governance metadata. Configuration comes from LAKE_* environment\n" +
			"variables with defaults matching the docker-compose topology.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		newBootstrapCmd(),
		newIngestCmd(),
		newProcessCmd(),
		newAccessCmd(),
		newGovernCmd(),
		newQueryCmd(),
		newDimensionCmd(),
		newMartCmd(),
		newDocumentCmd(),
		newWorkflowCmd(),
	)
	return rootCmd
}
