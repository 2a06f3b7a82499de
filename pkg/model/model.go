// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package model

import (
	"github.com/blang/semver"
	"github.com/pkg/errors"

	"github.com/smithylang/smithy-go/pkg/model/node"
	"github.com/smithylang/smithy-go/pkg/util/contract"
)

// SmithyVersion is the version of the Smithy specification models conform to.
const SmithyVersion = "2.0"

// Model is an in-memory shape graph: a set of shapes keyed by ID plus document-level metadata.  Iteration order
// over the shapes is unspecified; anything requiring determinism must sort by shape ID.
type Model struct {
	Version  string // the Smithy specification version; SmithyVersion is assumed when empty.
	Metadata map[string]node.Node
	shapes   map[ShapeID]Shape
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		Metadata: make(map[string]node.Node),
		shapes:   make(map[ShapeID]Shape),
	}
}

// AddShape adds a shape to the model, replacing any existing shape with the same ID.  Container shapes bring
// their member shapes along so members are addressable by ID.
func (m *Model) AddShape(s Shape) {
	contract.Require(s != nil, "s")
	m.shapes[s.ID()] = s
	for _, member := range memberShapes(s) {
		if member != nil {
			m.shapes[member.ID()] = member
		}
	}
}

// Shape fetches a shape by ID.
func (m *Model) Shape(id ShapeID) (Shape, bool) {
	s, has := m.shapes[id]
	return s, has
}

// Shapes returns all shapes in the model, member shapes included, in unspecified order.
func (m *Model) Shapes() []Shape {
	out := make([]Shape, 0, len(m.shapes))
	for _, s := range m.shapes {
		out = append(out, s)
	}
	return out
}

// Len returns the number of shapes in the model, member shapes included.
func (m *Model) Len() int {
	return len(m.shapes)
}

// memberShapes lists the member shapes held directly by a container shape, in declaration order.
func memberShapes(s Shape) []*MemberShape {
	switch t := s.(type) {
	case *ListShape:
		return []*MemberShape{t.Member}
	case *SetShape:
		return []*MemberShape{t.Member}
	case *MapShape:
		return []*MemberShape{t.Key, t.Value}
	case *StructureShape:
		return t.Members
	case *UnionShape:
		return t.Members
	default:
		return nil
	}
}

// ValidateVersion checks that a version string is an acceptable Smithy version (tolerating the short
// "major.minor" form the IDL uses).
func ValidateVersion(version string) error {
	if _, err := semver.ParseTolerant(version); err != nil {
		return errors.Wrapf(err, "invalid model version '%v'", version)
	}
	return nil
}
