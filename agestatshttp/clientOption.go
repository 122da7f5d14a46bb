// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestatshttp

import (
	"net/http"

	"go.uber.org/multierr"
)

// ClientOption is a general-purpose modifier for an *http.Client.
type ClientOption interface {
	// Apply modifies the given client.
	Apply(*http.Client) error
}

// ClientOptionFunc is a function type that implements ClientOption.
type ClientOptionFunc func(*http.Client) error

func (cof ClientOptionFunc) Apply(c *http.Client) error {
	return cof(c)
}

// ClientOptions is an aggregate set of ClientOption that acts as a single option.
type ClientOptions []ClientOption

// Apply invokes each option in order.  Options are always invoked, even when
// one or more errors occur.  The returned error may be an aggregate error
// and can always be inspected via go.uber.org/multierr.
func (co ClientOptions) Apply(c *http.Client) (err error) {
	for _, o := range co {
		err = multierr.Append(err, o.Apply(c))
	}

	return
}

// Middleware returns a ClientOption that decorates the client's Transport
// with the given constructors.  A nil Transport is treated as http.DefaultTransport.
func Middleware(c ...RoundTripperConstructor) ClientOption {
	chain := NewRoundTripperChain(c...)
	return ClientOptionFunc(func(client *http.Client) error {
		if chain.Len() > 0 {
			client.Transport = chain.Then(client.Transport)
		}

		return nil
	})
}
