// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package diag

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/smithylang/smithy-go/pkg/util/contract"
)

// Document is a file used during parsing and diagnostics.
type Document struct {
	Path string // a path to the document.
	Body []byte // the document's body.
}

// NewDocument constructs a document with a path but no body loaded.
func NewDocument(path string) *Document {
	return &Document{Path: path}
}

// ReadDocument reads a document's body from the given filesystem.
func ReadDocument(fs afero.Fs, path string) (*Document, error) {
	body, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return &Document{Path: path, Body: body}, nil
}

// Ext fetches this document's extension (including the leading dot).
func (doc *Document) Ext() string {
	return filepath.Ext(doc.Path)
}

// Diagable can be used to associate an object with a source location.
type Diagable interface {
	Where() Location
}

// SyntaxError represents a malformed construct at a precise source location.  It is the recoverable error kind:
// the tree builder catches it at statement boundaries and turns it into an ERROR tree node.
type SyntaxError struct {
	Message string   // a human-readable description of what went wrong.
	Loc     Location // the offending position.
}

// NewSyntaxError creates a syntax error at the given location.
func NewSyntaxError(loc Location, msg string) *SyntaxError {
	contract.Require(msg != "", "msg")
	return &SyntaxError{Message: msg, Loc: loc}
}

func (e *SyntaxError) Error() string {
	if e.Loc.IsEmpty() {
		return e.Message
	}
	return e.Loc.String() + ": " + e.Message
}

// Where returns the error's source location.
func (e *SyntaxError) Where() Location {
	return e.Loc
}
