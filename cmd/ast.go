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

func newASTCmd() *cobra.Command {
	return newASTCmdFs(afero.NewOsFs())
}

func newASTCmdFs(fs afero.Fs) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "ast <model>",
		Short: "Print the concrete syntax tree of a Smithy IDL file",
		Long: "Print the concrete syntax tree of a Smithy IDL file.\n" +
			"\n" +
			"The tree is lossless: every token of the input, whitespace and comments included,\n" +
			"appears as a leaf.  Malformed statements show up as ERROR nodes carrying their\n" +
			"diagnostics; when any are present, the command exits non-zero after printing them.",
		Args: cobra.ExactArgs(1),
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			doc, err := diag.ReadDocument(fs, args[0])
			if err != nil {
				return errors.Wrapf(err, "reading %v", args[0])
			}
			tree := syntax.Parse(doc)
			fmt.Fprint(cmd.OutOrStdout(), tree)
			return syntax.Diagnostics(tree)
		}),
	}
	return cmd
}
