package main

import (
	"fmt"

	"github.com/go-xmltree/xmltree/internal/conformance"
	"github.com/spf13/cobra"
)

func newConformanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conformance <xmlconf.xml>",
		Short: "Run the W3C XML Conformance Test Suite catalog against this parser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := conformance.Run(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "total: %d  passed: %d  failed: %d  skipped: %d\n", sum.Total, sum.Passed, sum.Failed, sum.Skipped)
			for _, r := range sum.Results {
				if r.Failure != "" {
					fmt.Fprintf(out, "FAIL %s (%s): %s\n", r.Case.ID, r.Case.Path, r.Failure)
				}
			}
			if sum.Failed > 0 {
				return fmt.Errorf("%d conformance case(s) failed", sum.Failed)
			}
			return nil
		},
	}
	return cmd
}
