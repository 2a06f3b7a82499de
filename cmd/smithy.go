// Copyright 2024, the Smithy Go Authors.  All rights reserved.

// Package cmd implements the smithy command-line interface.
package cmd

import (
	"flag"
	"strconv"

	"github.com/spf13/cobra"
)

// NewSmithyCmd creates the root command for the smithy CLI.
func NewSmithyCmd() *cobra.Command {
	var verbose int

	cmd := &cobra.Command{
		Use:   "smithy",
		Short: "Smithy is a toolchain for the Smithy interface definition language",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose > 0 {
				// Enable verbose logging in glog at the specified level.  Poking around at the flags by name
				// feels kind of hacky, however it's how the glog library works.
				flag.Lookup("v").Value.Set(strconv.Itoa(verbose))
			}
		},
	}

	cmd.PersistentFlags().IntVarP(
		&verbose, "verbose", "v", 0,
		"Enable verbose logging (e.g., v=3); warning: anything >3 is very verbose",
	)

	cmd.AddCommand(newASTCmd())
	cmd.AddCommand(newFmtCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
