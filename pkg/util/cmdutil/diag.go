// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package cmdutil

import (
	"github.com/smithylang/smithy-go/pkg/diag"
)

var snk diag.Sink

// Diag lazily allocates the process-wide diagnostics sink used by commands.
func Diag() diag.Sink {
	if snk == nil {
		snk = diag.DefaultSink()
	}
	return snk
}
