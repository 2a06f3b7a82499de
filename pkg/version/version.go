// Copyright 2024, the Smithy Go Authors.  All rights reserved.

// Package version carries the toolchain version, injected at link time.
package version

// Version is the current toolchain version, set by the build using -ldflags.
var Version = "0.1.0-dev"
