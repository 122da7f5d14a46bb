// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

import "errors"

// DefaultErrorExitCode is used when no exit code could otherwise be
// determined for a non-nil error.
const DefaultErrorExitCode int = 1

// ExitCoder is an optional interface that an error can implement to supply
// an associated exit code with that error.
type ExitCoder interface {
	// ExitCode returns the exit code associated with this error.
	ExitCode() int
}

type exitCodeErr struct {
	error
	exitCode int
}

func (ece exitCodeErr) ExitCode() int {
	return ece.exitCode
}

func (ece exitCodeErr) Unwrap() error {
	return ece.error
}

// UseExitCode associates an existing error with an exit code.  The returned
// error implements ExitCoder and unwraps to err.
//
// If err is nil, this function immediately panics so as not to delay a panic
// until the returned error is used.
func UseExitCode(err error, exitCode int) error {
	if err == nil {
		panic("cannot associate a nil error with an exit code")
	}

	return exitCodeErr{
		error:    err,
		exitCode: exitCode,
	}
}

// ExitCodeFor determines the process exit code for an error:
//
//   - If err is nil, zero (0) is returned
//   - If anything in err's chain implements ExitCoder, that exit code is returned
//   - Otherwise, DefaultErrorExitCode is returned
func ExitCodeFor(err error) int {
	var ec ExitCoder
	switch {
	case err == nil:
		return 0

	case errors.As(err, &ec):
		return ec.ExitCode()

	default:
		return DefaultErrorExitCode
	}
}
