package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/tabular/version"
)

// NewVersionCommand creates the version mode.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tabular version %s\n",
				version.SourceVersion)
		},
	}
}

// ExampleConfig is an example table dictionary.
const ExampleConfig = `# Example table dictionary. Pass it to any mode with --dict.

# Table file. Relative paths are relative to this file, and environment
# variables like $FOAM_CASE are expanded.
fileName: constant/cp.dat

# What to do with points outside the table: error, warn, or extrapolate.
# Anything else is treated as warn. The default is warn.
outOfBounds: warn

# Format of the table file: openFoam, csv, or yaml. The default is openFoam.
readerType: openFoam

# csv tables only: whether the first line names the fields.
# hasHeaderLine: false
`

// NewExampleCommand creates the example mode.
func NewExampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example table dictionary",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), ExampleConfig)
		},
	}
}
