// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
)

// Sink facilitates pluggable diagnostics messages.
type Sink interface {
	// Count fetches the total number of diagnostics issued (errors plus warnings).
	Count() int
	// Errors fetches the number of errors issued.
	Errors() int
	// Warnings fetches the number of warnings issued.
	Warnings() int
	// Success returns true if this sink is currently error-free.
	Success() bool

	// Errorf issues a new error diagnostic at the given location.
	Errorf(loc Location, msg string, args ...interface{})
	// Warningf issues a new warning diagnostic at the given location.
	Warningf(loc Location, msg string, args ...interface{})

	// Stringify stringifies a diagnostic in the usual way (e.g., "error: main.smithy:7:39: error goes here\n").
	Stringify(cat Category, loc Location, msg string, args ...interface{}) string
}

// Category dictates the kind of diagnostic.
type Category string

const (
	Error   Category = "error"
	Warning Category = "warning"
)

// DefaultSink returns a default sink that simply logs output to stderr/stdout.
func DefaultSink() Sink {
	return newDefaultSink(os.Stderr, os.Stdout)
}

func newDefaultSink(errorW io.Writer, warningW io.Writer) *defaultSink {
	return &defaultSink{errorW: errorW, warningW: warningW}
}

// defaultSink is the default sink which logs output to stderr/stdout.
type defaultSink struct {
	errors   int       // the number of errors that have been issued.
	errorW   io.Writer // the output stream to use for errors.
	warnings int       // the number of warnings that have been issued.
	warningW io.Writer // the output stream to use for warnings.
}

func (d *defaultSink) Count() int {
	return d.errors + d.warnings
}

func (d *defaultSink) Errors() int {
	return d.errors
}

func (d *defaultSink) Warnings() int {
	return d.warnings
}

func (d *defaultSink) Success() bool {
	return d.errors == 0
}

func (d *defaultSink) Errorf(loc Location, msg string, args ...interface{}) {
	s := d.Stringify(Error, loc, msg, args...)
	if glog.V(3) {
		glog.V(3).Infof("defaultSink::Error(%v)", s[:len(s)-1])
	}
	fmt.Fprint(d.errorW, s)
	d.errors++
}

func (d *defaultSink) Warningf(loc Location, msg string, args ...interface{}) {
	s := d.Stringify(Warning, loc, msg, args...)
	if glog.V(4) {
		glog.V(4).Infof("defaultSink::Warning(%v)", s[:len(s)-1])
	}
	fmt.Fprint(d.warningW, s)
	d.warnings++
}

func (d *defaultSink) Stringify(cat Category, loc Location, msg string, args ...interface{}) string {
	var s string
	s += string(cat)
	s += ": "
	if !loc.IsEmpty() {
		s += loc.String()
		s += ": "
	}
	if len(args) > 0 {
		s += fmt.Sprintf(msg, args...)
	} else {
		s += msg
	}
	s += "\n"
	return s
}
