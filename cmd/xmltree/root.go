package main

import (
	"io"

	"github.com/spf13/cobra"
)

// runWithArgs builds the root command fresh for every invocation and runs
// it against args, writing to stdout/stderr, so tests can drive the CLI
// without touching os.Args or the process's real streams.
func runWithArgs(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xmltree",
		Short:         "Parse, check, and project XML 1.0 documents",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newConformanceCmd())
	return root
}
