package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-xmltree/xmltree"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var (
		ignoreUndefinedEntities bool
		preserveCDATA           bool
		dropComments            bool
		indent                  bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an XML document and print its tree as JSON",
		Long: `Parse an XML document and print a JSON projection of its tree.

If a file is provided, it is read from disk. If no file is provided, the
document is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}

			opts := []xmltree.Option{
				xmltree.IgnoreUndefinedEntities(ignoreUndefinedEntities),
				xmltree.PreserveCDATA(preserveCDATA),
				xmltree.PreserveComments(!dropComments),
			}
			doc, err := xmltree.Parse(string(source), opts...)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if indent {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(doc.ToJSON())
		},
	}

	cmd.Flags().BoolVar(&ignoreUndefinedEntities, "ignore-undefined-entities", false, "preserve unknown entity references verbatim instead of failing")
	cmd.Flags().BoolVar(&preserveCDATA, "preserve-cdata", false, "keep CDATA sections distinct from Text instead of coalescing them")
	cmd.Flags().BoolVar(&dropComments, "drop-comments", false, "omit comments from the parsed tree")
	cmd.Flags().BoolVar(&indent, "indent", false, "pretty-print the JSON output")

	return cmd
}

func readSource(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}
