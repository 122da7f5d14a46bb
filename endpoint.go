// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

import "strconv"

// Endpoint identifies one of the server's endpoints.
type Endpoint int

const (
	// EndpointAge is GET /?name={name}
	EndpointAge Endpoint = iota

	// EndpointStats is GET /stats
	EndpointStats

	// EndpointMaxAge is GET /max-age-name
	EndpointMaxAge

	endpointCount
)

var endpointPaths = [endpointCount]string{
	EndpointAge:    "/",
	EndpointStats:  "/stats",
	EndpointMaxAge: "/max-age-name",
}

var endpointNames = [endpointCount]string{
	EndpointAge:    "age",
	EndpointStats:  "stats",
	EndpointMaxAge: "maxAge",
}

func (e Endpoint) valid() bool {
	return e >= 0 && e < endpointCount
}

// Path returns the request path of this endpoint, relative to the base URL.
func (e Endpoint) Path() string {
	if e.valid() {
		return endpointPaths[e]
	}

	return ""
}

// String returns a short, human readable name for this endpoint.
func (e Endpoint) String() string {
	if e.valid() {
		return endpointNames[e]
	}

	return "Endpoint(" + strconv.Itoa(int(e)) + ")"
}
