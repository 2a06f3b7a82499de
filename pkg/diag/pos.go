// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package diag

import "fmt"

// Pos represents a position in a source document.
type Pos struct {
	Line   int // a 1-based line number.
	Column int // a 1-based column number.
	Offset int // a 0-based byte offset within the document.
}

// EmptyPos may be used when no position is needed.
var EmptyPos = Pos{}

// IsEmpty returns true if the Pos information is missing.
func (pos Pos) IsEmpty() bool {
	return pos.Line == 0 && pos.Column == 0
}

func (pos Pos) String() string {
	return fmt.Sprintf("%v:%v", pos.Line, pos.Column)
}

// Before returns true if this position strictly precedes other.
func (pos Pos) Before(other Pos) bool {
	return pos.Line < other.Line || (pos.Line == other.Line && pos.Column < other.Column)
}

// Location represents a region spanning two positions in a named source document.
type Location struct {
	Filename string // the document the region belongs to, if any.
	Start    Pos    // a starting position.
	End      Pos    // an ending position; if empty, represents a point.
}

// EmptyLocation may be used when no position information is available.
var EmptyLocation = Location{}

// IsEmpty returns true if the Location information is missing.
func (loc Location) IsEmpty() bool {
	return loc.Start.IsEmpty() && loc.End.IsEmpty()
}

// Contains returns true if the given line/column position falls within this location.  The End position is
// exclusive: a token occupying columns 2 through 4 has an End column of 5 and does not contain column 5.  A
// location whose End is empty is a point and contains only its Start.
func (loc Location) Contains(line int, column int) bool {
	p := Pos{Line: line, Column: column}
	if p.Before(loc.Start) {
		return false
	}
	if loc.End.IsEmpty() {
		return p.Line == loc.Start.Line && p.Column == loc.Start.Column
	}
	return p.Before(loc.End)
}

// Union returns the smallest location covering both this location and other.
func (loc Location) Union(other Location) Location {
	if loc.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return loc
	}
	result := Location{Filename: loc.Filename, Start: loc.Start, End: loc.End}
	if other.Start.Before(result.Start) {
		result.Start = other.Start
	}
	if result.End.Before(other.End) {
		result.End = other.End
	}
	return result
}

func (loc Location) String() string {
	if loc.Filename == "" {
		return loc.Start.String()
	}
	return fmt.Sprintf("%v:%v", loc.Filename, loc.Start)
}
