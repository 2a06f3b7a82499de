// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package main

import (
	"os"

	"github.com/smithylang/smithy-go/cmd"
)

func main() {
	if err := cmd.NewSmithyCmd().Execute(); err != nil {
		os.Exit(-1)
	}
}
