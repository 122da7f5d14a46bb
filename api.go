// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultMaxResponseBytes is the largest response body API accepts when no
// other limit is configured.
const DefaultMaxResponseBytes int64 = 1 << 20

// Doer is the subset of *http.Client used by API.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Fetcher performs the three server requests synchronously.  API is the
// HTTP implementation.
type Fetcher interface {
	// Age fetches the age for a name.
	Age(ctx context.Context, name string) (AgeResponse, error)

	// Stats fetches the per-name request counts.
	Stats(ctx context.Context) ([]Stat, error)

	// MaxAge fetches the maximum age the server knows about.
	MaxAge(ctx context.Context) (AgeResponse, error)
}

// APIOption tailors an API created by NewAPI.
type APIOption func(*API)

// WithMaxResponseBytes limits the size of response bodies.  Nonpositive values
// restore DefaultMaxResponseBytes.
func WithMaxResponseBytes(n int64) APIOption {
	return func(a *API) {
		if n <= 0 {
			n = DefaultMaxResponseBytes
		}

		a.maxResponseBytes = n
	}
}

// API is the HTTP Fetcher.  It issues GET requests relative to a base URL
// and decodes each response into an explicit schema type.
type API struct {
	base             url.URL
	doer             Doer
	maxResponseBytes int64
}

var _ Fetcher = (*API)(nil)

// NewAPI creates an API for the given base URL.  The base URL must be an
// absolute http or https URL.  Typically, d will be an *http.Client.
func NewAPI(base *url.URL, d Doer, opts ...APIOption) (*API, error) {
	if err := checkBaseURL(base); err != nil {
		return nil, err
	}

	if d == nil {
		return nil, ErrNilDoer
	}

	a := &API{
		base:             *base,
		doer:             d,
		maxResponseBytes: DefaultMaxResponseBytes,
	}

	for _, o := range opts {
		o(a)
	}

	return a, nil
}

// URL returns the full request URL for an endpoint.  The query may be nil.
func (a *API) URL(e Endpoint, query url.Values) string {
	u := a.base
	u.Path = strings.TrimSuffix(a.base.Path, "/") + e.Path()
	u.RawPath = ""
	u.RawQuery = query.Encode()
	u.Fragment = ""
	return u.String()
}

// Age sends GET /?name={name}.  The name is URL-encoded here, so callers pass
// it as entered.
func (a *API) Age(ctx context.Context, name string) (AgeResponse, error) {
	body, err := a.get(ctx, EndpointAge, url.Values{"name": {name}})
	if err != nil {
		return AgeResponse{}, err
	}

	return decodeAge(EndpointAge, body)
}

// Stats sends GET /stats.
func (a *API) Stats(ctx context.Context) ([]Stat, error) {
	body, err := a.get(ctx, EndpointStats, nil)
	if err != nil {
		return nil, err
	}

	return decodeStats(EndpointStats, body)
}

// MaxAge sends GET /max-age-name.  Only the response's age field is consumed,
// even though the endpoint's name suggests it identifies a name.
func (a *API) MaxAge(ctx context.Context) (AgeResponse, error) {
	body, err := a.get(ctx, EndpointMaxAge, nil)
	if err != nil {
		return AgeResponse{}, err
	}

	return decodeAge(EndpointMaxAge, body)
}

// get issues the request and returns the entire body of a 2xx response.
func (a *API) get(ctx context.Context, e Endpoint, query url.Values) ([]byte, error) {
	target := a.URL(e, query)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: e, Err: err}
	}

	request.Header.Set("Accept", "application/json")
	response, err := a.doer.Do(request)
	if err != nil {
		return nil, &TransportError{Endpoint: e, Err: err}
	}

	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode > 299 {
		// drain a bounded amount so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(response.Body, a.maxResponseBytes))
		return nil, &StatusError{
			Endpoint:   e,
			URL:        target,
			StatusCode: response.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, a.maxResponseBytes+1))
	switch {
	case err != nil:
		return nil, &TransportError{Endpoint: e, Err: err}

	case int64(len(body)) > a.maxResponseBytes:
		return nil, &DecodeError{
			Endpoint: e,
			Reason:   "response exceeds " + strconv.FormatInt(a.maxResponseBytes, 10) + " bytes",
		}
	}

	return body, nil
}

func checkBaseURL(u *url.URL) error {
	if u == nil || !u.IsAbs() || len(u.Host) == 0 || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidBaseURL
	}

	return nil
}
