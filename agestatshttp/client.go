// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestatshttp

import (
	"net/http"
	"time"
)

// TransportConfig holds the unmarshaled configuration for an *http.Transport.
// Zero values carry the same meaning as the corresponding http.Transport fields.
type TransportConfig struct {
	TLSHandshakeTimeout    time.Duration
	DisableKeepAlives      bool
	DisableCompression     bool
	MaxIdleConns           int
	MaxIdleConnsPerHost    int
	MaxConnsPerHost        int
	IdleConnTimeout        time.Duration
	ResponseHeaderTimeout  time.Duration
	ExpectContinueTimeout  time.Duration
	ProxyConnectHeader     http.Header
	MaxResponseHeaderBytes int64
	WriteBufferSize        int
	ReadBufferSize         int
	ForceAttemptHTTP2      bool
}

// NewTransport creates an *http.Transport from this configuration.  Proxies
// are taken from the environment.
func (tc TransportConfig) NewTransport() *http.Transport {
	return &http.Transport{
		Proxy:                  http.ProxyFromEnvironment,
		TLSHandshakeTimeout:    tc.TLSHandshakeTimeout,
		DisableKeepAlives:      tc.DisableKeepAlives,
		DisableCompression:     tc.DisableCompression,
		MaxIdleConns:           tc.MaxIdleConns,
		MaxIdleConnsPerHost:    tc.MaxIdleConnsPerHost,
		MaxConnsPerHost:        tc.MaxConnsPerHost,
		IdleConnTimeout:        tc.IdleConnTimeout,
		ResponseHeaderTimeout:  tc.ResponseHeaderTimeout,
		ExpectContinueTimeout:  tc.ExpectContinueTimeout,
		ProxyConnectHeader:     tc.ProxyConnectHeader.Clone(),
		MaxResponseHeaderBytes: tc.MaxResponseHeaderBytes,
		WriteBufferSize:        tc.WriteBufferSize,
		ReadBufferSize:         tc.ReadBufferSize,
		ForceAttemptHTTP2:      tc.ForceAttemptHTTP2,
	}
}

// ClientConfig holds the unmarshaled configuration for an *http.Client.
type ClientConfig struct {
	// Timeout is the overall request timeout.  Zero means no timeout.
	Timeout time.Duration

	// Header is the set of headers added to every request.
	Header http.Header

	// Transport configures the client's *http.Transport.
	Transport TransportConfig
}

// Apply tailors an existing client with this configuration.  The client's
// Transport, if any, is preserved and decorated with the configured headers.
func (cc ClientConfig) Apply(c *http.Client) error {
	c.Timeout = cc.Timeout
	if header := NewHeader(cc.Header); header.Len() > 0 {
		c.Transport = NewRoundTripperChain(header.AddRequest).Then(c.Transport)
	}

	return nil
}

// NewClient creates an *http.Client from this configuration.  Options are
// applied first, and the configured headers are added outside of any middleware
// they install, so every middleware sees the configured headers.
func (cc ClientConfig) NewClient(opts ...ClientOption) (*http.Client, error) {
	client := &http.Client{
		Transport: cc.Transport.NewTransport(),
	}

	if err := ClientOptions(opts).Apply(client); err != nil {
		return nil, err
	}

	if err := cc.Apply(client); err != nil {
		return nil, err
	}

	return client, nil
}
