package main

import (
	"errors"
	"fmt"

	"github.com/go-xmltree/xmltree"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Report whether an XML document is well-formed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}

			_, err = xmltree.Parse(string(source))
			if err == nil {
				_, writeErr := fmt.Fprintln(cmd.OutOrStdout(), "well-formed")
				return writeErr
			}

			var parseErr *xmltree.Error
			if errors.As(err, &parseErr) {
				_, writeErr := fmt.Fprintln(cmd.ErrOrStderr(), parseErr.Error())
				if writeErr != nil {
					return writeErr
				}
				return errNotWellFormed
			}
			return err
		},
	}
	return cmd
}

var errNotWellFormed = errors.New("document is not well-formed")
