// Copyright 2024, the Smithy Go Authors.  All rights reserved.

// Package model contains the in-memory shape graph consumed by the canonical serializer: shape identities,
// the closed set of shape variants, traits, and the model container itself.
package model

import (
	"fmt"
	"strings"

	"github.com/smithylang/smithy-go/pkg/util/contract"
)

// ShapeID is a fully qualified shape identifier: a dotted namespace, a shape name, and an optional member name
// (e.g. "smithy.example#Foo$bar").  Shape IDs order lexicographically by their string form; that ordering is
// load-bearing for deterministic serialization.
type ShapeID struct {
	Namespace string // a dotted namespace, e.g. "smithy.example".
	Name      string // the root shape name.
	Member    string // an optional member name; empty for root shapes.
}

// ParseShapeID parses an absolute shape ID of the form `namespace#Name` or `namespace#Name$member`.
func ParseShapeID(s string) (ShapeID, error) {
	pound := strings.IndexByte(s, '#')
	if pound <= 0 {
		return ShapeID{}, fmt.Errorf("invalid shape ID '%v': missing '#'", s)
	}
	namespace, rest := s[:pound], s[pound+1:]
	var name, member string
	if dollar := strings.IndexByte(rest, '$'); dollar >= 0 {
		name, member = rest[:dollar], rest[dollar+1:]
		if !isIdentifier(member) {
			return ShapeID{}, fmt.Errorf("invalid shape ID '%v': bad member name", s)
		}
	} else {
		name = rest
	}
	if !isNamespace(namespace) {
		return ShapeID{}, fmt.Errorf("invalid shape ID '%v': bad namespace", s)
	}
	if !isIdentifier(name) {
		return ShapeID{}, fmt.Errorf("invalid shape ID '%v': bad shape name", s)
	}
	return ShapeID{Namespace: namespace, Name: name, Member: member}, nil
}

// MustParseShapeID parses an absolute shape ID, failing fast on malformed input.  It is intended for IDs that
// are known-good at the call site, such as literals.
func MustParseShapeID(s string) ShapeID {
	id, err := ParseShapeID(s)
	contract.Assertf(err == nil, "MustParseShapeID(%v): %v", s, err)
	return id
}

// String renders the ID in its canonical absolute form.
func (id ShapeID) String() string {
	if id.Member == "" {
		return id.Namespace + "#" + id.Name
	}
	return id.Namespace + "#" + id.Name + "$" + id.Member
}

// IsMember returns true if this ID names a member of a containing shape.
func (id ShapeID) IsMember() bool {
	return id.Member != ""
}

// WithMember returns the ID of the given member of this root shape.
func (id ShapeID) WithMember(member string) ShapeID {
	contract.Requiref(id.Member == "", "id", "cannot take a member of member ID %v", id)
	return ShapeID{Namespace: id.Namespace, Name: id.Name, Member: member}
}

// WithoutMember returns the containing root shape's ID.
func (id ShapeID) WithoutMember() ShapeID {
	return ShapeID{Namespace: id.Namespace, Name: id.Name}
}

// Compare orders IDs lexicographically by their string form, returning <0, 0, or >0.
func (id ShapeID) Compare(other ShapeID) int {
	return strings.Compare(id.String(), other.String())
}

// Less reports whether this ID sorts before other.
func (id ShapeID) Less(other ShapeID) bool {
	return id.Compare(other) < 0
}

func isNamespace(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		alpha := c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
		if i == 0 && !alpha {
			return false
		}
		if !alpha && !('0' <= c && c <= '9') {
			return false
		}
	}
	return true
}
