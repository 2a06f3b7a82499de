// Copyright 2024, the Smithy Go Authors.  All rights reserved.

// Package contract provides simple assertion helpers for internal invariants.  A contract violation always indicates
// a bug in this codebase, never bad user input, so violations abandon the process loudly rather than returning errors.
package contract

import (
	"fmt"

	"github.com/golang/glog"
)

const assertMsg = "An assertion has failed"
const failMsg = "A failure has occurred"
const requireMsg = "A precondition has failed for %v"

// Assert checks an invariant condition and fails fast if it is false.
func Assert(cond bool) {
	if !cond {
		failfast(assertMsg)
	}
}

// Assertf checks an invariant condition and fails fast with a formatted message if it is false.
func Assertf(cond bool, msg string, args ...interface{}) {
	if !cond {
		failfast(fmt.Sprintf("%v: %v", assertMsg, fmt.Sprintf(msg, args...)))
	}
}

// Require checks a precondition pertaining to a function parameter and fails fast if it is false.
func Require(cond bool, param string) {
	if !cond {
		failfast(fmt.Sprintf(requireMsg, param))
	}
}

// Requiref checks a precondition pertaining to a function parameter and fails fast with a message if it is false.
func Requiref(cond bool, param string, msg string, args ...interface{}) {
	if !cond {
		failfast(fmt.Sprintf("%v: %v", fmt.Sprintf(requireMsg, param), fmt.Sprintf(msg, args...)))
	}
}

// Fail unconditionally abandons the process.
func Fail() {
	failfast(failMsg)
}

// Failf unconditionally abandons the process with a formatted message.
func Failf(msg string, args ...interface{}) {
	failfast(fmt.Sprintf("%v: %v", failMsg, fmt.Sprintf(msg, args...)))
}

// failfast logs and panics the process in a way that is friendly to debugging.
func failfast(msg string) {
	glog.Fatal(msg)
}
