// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/xmidt-org/agestats/agestatshttp"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the server address used when none is configured.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultTimeout is the overall request timeout used when none is configured.
	DefaultTimeout = 10 * time.Second
)

var (
	// ErrNegativeMaxResponseBytes indicates an invalid Config.MaxResponseBytes.
	ErrNegativeMaxResponseBytes = errors.New("maxResponseBytes cannot be negative")

	// ErrNegativeTimeout indicates an invalid client timeout.
	ErrNegativeTimeout = errors.New("the client timeout cannot be negative")
)

// BaseURL is an absolute http or https URL that every endpoint is resolved
// against.  It implements encoding.TextUnmarshaler, so it can be unmarshaled
// directly from a configuration string.
type BaseURL struct {
	u *url.URL
}

// ParseBaseURL parses and validates a base URL.
func ParseBaseURL(v string) (BaseURL, error) {
	u, err := url.Parse(v)
	if err != nil {
		return BaseURL{}, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}

	if err := checkBaseURL(u); err != nil {
		return BaseURL{}, err
	}

	return BaseURL{u: u}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BaseURL) UnmarshalText(text []byte) (err error) {
	*b, err = ParseBaseURL(string(text))
	return
}

// MarshalText implements encoding.TextMarshaler.
func (b BaseURL) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// IsZero tests if this BaseURL was never set.
func (b BaseURL) IsZero() bool {
	return b.u == nil
}

// URL returns a copy of the underlying URL, or nil if this BaseURL is unset.
func (b BaseURL) URL() *url.URL {
	if b.u == nil {
		return nil
	}

	c := *b.u
	return &c
}

func (b BaseURL) String() string {
	if b.u == nil {
		return ""
	}

	return b.u.String()
}

// Config is the unmarshaled configuration for an API and its *http.Client.
//
//	baseURL: "http://localhost:8080"
//	maxResponseBytes: 1048576
//	client:
//	  timeout: "10s"
//	  header:
//	    X-Client: ["agestats"]
type Config struct {
	// BaseURL is the server address.
	BaseURL BaseURL

	// MaxResponseBytes limits response bodies.  Zero means DefaultMaxResponseBytes.
	MaxResponseBytes int64

	// Client configures the *http.Client.
	Client agestatshttp.ClientConfig
}

// DefaultConfig returns the Config used as the starting point for unmarshaling.
func DefaultConfig() Config {
	base, _ := ParseBaseURL(DefaultBaseURL)
	return Config{
		BaseURL:          base,
		MaxResponseBytes: DefaultMaxResponseBytes,
		Client: agestatshttp.ClientConfig{
			Timeout: DefaultTimeout,
		},
	}
}

// Validate checks this configuration.  All problems are returned as one
// aggregate error.
func (c Config) Validate() (err error) {
	if c.BaseURL.IsZero() {
		err = multierr.Append(err, ErrInvalidBaseURL)
	}

	if c.MaxResponseBytes < 0 {
		err = multierr.Append(err, ErrNegativeMaxResponseBytes)
	}

	if c.Client.Timeout < 0 {
		err = multierr.Append(err, ErrNegativeTimeout)
	}

	return
}

// NewHTTPClient creates the *http.Client described by this configuration.
// Every request is stamped with a request id and logged at debug level.
func (c Config) NewHTTPClient(logger *zap.Logger, more ...agestatshttp.RoundTripperConstructor) (*http.Client, error) {
	return c.Client.NewClient(
		agestatshttp.Middleware(
			append(
				[]agestatshttp.RoundTripperConstructor{
					agestatshttp.RequestID(""),
					agestatshttp.Logging(logger),
				},
				more...,
			)...,
		),
	)
}

// NewAPI creates an API from this configuration that sends requests through d.
func (c Config) NewAPI(d Doer) (*API, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return NewAPI(c.BaseURL.URL(), d, WithMaxResponseBytes(c.MaxResponseBytes))
}
