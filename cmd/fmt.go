// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/smithylang/smithy-go/pkg/diag"
	"github.com/smithylang/smithy-go/pkg/syntax"
	"github.com/smithylang/smithy-go/pkg/util/cmdutil"
)

func newFmtCmd() *cobra.Command {
	return newFmtCmdFs(afero.NewOsFs())
}

func newFmtCmdFs(fs afero.Fs) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "fmt <model>",
		Short: "Reprint a Smithy IDL file from its parsed syntax tree",
		Long: "Reprint a Smithy IDL file from its parsed syntax tree.\n" +
			"\n" +
			"The file must parse cleanly; its text is reconstructed by concatenating the leaf\n" +
			"tokens of the tree in order.  The current formatter preserves the source layout\n" +
			"byte-for-byte, so this doubles as a round-trip check of the parser.",
		Args: cobra.ExactArgs(1),
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			doc, err := diag.ReadDocument(fs, args[0])
			if err != nil {
				return errors.Wrapf(err, "reading %v", args[0])
			}
			tree := syntax.Parse(doc)
			if err := syntax.Diagnostics(tree); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tree.ConcatLexemes())
			return nil
		}),
	}
	return cmd
}
