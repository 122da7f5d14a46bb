// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestatshttp

import "net/http"

// Header is an immutable, canonicalized set of HTTP headers that are
// added to every outgoing request.  The zero value is an empty Header.
type Header struct {
	h http.Header
}

// NewHeader makes a deep copy of src with each key canonicalized.  Empty
// keys and keys with no values are dropped.
func NewHeader(src http.Header) Header {
	var cleaned http.Header
	for key, values := range src {
		if len(key) == 0 || len(values) == 0 {
			continue
		}

		if cleaned == nil {
			cleaned = make(http.Header, len(src))
		}

		key = http.CanonicalHeaderKey(key)
		cleaned[key] = append(cleaned[key], values...)
	}

	return Header{h: cleaned}
}

// Len returns the count of keys in this header
func (h Header) Len() int {
	return len(h.h)
}

// AddTo appends this Header's key/values to the given http.Header.
func (h Header) AddTo(dst http.Header) {
	for key, values := range h.h {
		dst[key] = append(dst[key], values...)
	}
}

// AddRequest is a RoundTripperConstructor that adds all headers to each
// request.  The request is cloned before modification.  An empty Header
// returns next undecorated.
func (h Header) AddRequest(next http.RoundTripper) http.RoundTripper {
	if h.Len() == 0 {
		return next
	}

	return RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
		request = request.Clone(request.Context())
		if request.Header == nil {
			request.Header = make(http.Header, h.Len())
		}

		h.AddTo(request.Header)
		return next.RoundTrip(request)
	})
}
