// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package model

// PreludeNamespace is the namespace of the built-in shapes implicitly available to every model.
const PreludeNamespace = "smithy.api"

// IsPreludeShape returns true if the ID names a built-in prelude shape.  Prelude shapes are excluded from
// serialization by default, since every implementation carries its own understanding of them.
func IsPreludeShape(id ShapeID) bool {
	return id.Namespace == PreludeNamespace
}
