// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrClosed is reported for fetches started after Client.Close.
	ErrClosed = errors.New("the client is closed")

	// ErrNilFetcher is returned by New when no Fetcher is supplied.
	ErrNilFetcher = errors.New("a fetcher is required")

	// ErrNilDoer is returned by NewAPI when no Doer is supplied.
	ErrNilDoer = errors.New("an http doer is required")

	// ErrInvalidBaseURL indicates a base URL that is not an absolute http or https URL.
	ErrInvalidBaseURL = errors.New("the base URL must be an absolute http or https URL")
)

// Exit codes associated with each kind of fetch failure.
const (
	TransportErrorExitCode = 2
	StatusErrorExitCode    = 3
	DecodeErrorExitCode    = 4
)

// TransportError indicates that no response was received, e.g. due to a
// network failure, a timeout, or a canceled context.
type TransportError struct {
	Endpoint Endpoint
	Err      error
}

func (te *TransportError) Error() string {
	return te.Endpoint.String() + ": " + te.Err.Error()
}

func (te *TransportError) Unwrap() error {
	return te.Err
}

func (te *TransportError) ExitCode() int {
	return TransportErrorExitCode
}

// StatusError indicates that the server returned a non-2xx status.
type StatusError struct {
	Endpoint   Endpoint
	URL        string
	StatusCode int
}

func (se *StatusError) Error() string {
	var o strings.Builder
	o.WriteString(se.Endpoint.String())
	o.WriteString(": GET ")
	o.WriteString(se.URL)
	o.WriteString(" returned status ")
	o.WriteString(strconv.Itoa(se.StatusCode))
	return o.String()
}

func (se *StatusError) ExitCode() int {
	return StatusErrorExitCode
}

// DecodeError indicates a response body that was malformed, too large,
// or did not have the expected shape.
type DecodeError struct {
	Endpoint Endpoint
	Reason   string
}

func (de *DecodeError) Error() string {
	return de.Endpoint.String() + ": " + de.Reason
}

func (de *DecodeError) ExitCode() int {
	return DecodeErrorExitCode
}
