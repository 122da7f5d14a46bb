// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestatshttp

import "net/http"

// RoundTripperFunc is a function type that implements http.RoundTripper.
// Useful for simple decoration and testing.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper
func (rtf RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return rtf(r)
}

// RoundTripperConstructor is a strategy for decorating an http.RoundTripper.
type RoundTripperConstructor func(http.RoundTripper) http.RoundTripper

// RoundTripperChain is an immutable sequence of RoundTripperConstructors.
// The zero value is a valid, empty chain that will not decorate anything.
type RoundTripperChain struct {
	c []RoundTripperConstructor
}

// NewRoundTripperChain creates a chain from a sequence of constructors.  Nil
// constructors are skipped.
func NewRoundTripperChain(c ...RoundTripperConstructor) RoundTripperChain {
	return RoundTripperChain{}.Append(c...)
}

// Len returns the number of constructors in this chain.
func (rc RoundTripperChain) Len() int {
	return len(rc.c)
}

// Append returns a new chain with the additional constructors.  This chain
// is not modified.
func (rc RoundTripperChain) Append(more ...RoundTripperConstructor) RoundTripperChain {
	if len(more) == 0 {
		return rc
	}

	c := make([]RoundTripperConstructor, 0, len(rc.c)+len(more))
	c = append(c, rc.c...)
	for _, m := range more {
		if m != nil {
			c = append(c, m)
		}
	}

	return RoundTripperChain{c: c}
}

// Extend is like Append, except that the additional constructors come from
// another chain.
func (rc RoundTripperChain) Extend(more RoundTripperChain) RoundTripperChain {
	return rc.Append(more.c...)
}

// Then decorates next with every constructor in this chain.  The first
// constructor in the chain is the outermost decorator, so it sees each request
// first.  A nil next decorates http.DefaultTransport.
func (rc RoundTripperChain) Then(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	for i := len(rc.c) - 1; i >= 0; i-- {
		next = rc.c[i](next)
	}

	return next
}
