// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestatshttp

import (
	"net/http"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"
)

// DefaultRequestIDHeader is the header RequestID uses when no header name is supplied.
const DefaultRequestIDHeader = "X-Request-Id"

// RequestID returns a RoundTripperConstructor that stamps each request with
// a unique id under the given header.  Requests that already carry the header
// are passed through unchanged.
func RequestID(header string) RoundTripperConstructor {
	if len(header) == 0 {
		header = DefaultRequestIDHeader
	}

	header = http.CanonicalHeaderKey(header)
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
			if len(request.Header.Get(header)) > 0 {
				return next.RoundTrip(request)
			}

			request = request.Clone(request.Context())
			if request.Header == nil {
				request.Header = make(http.Header, 1)
			}

			request.Header.Set(header, xid.New().String())
			return next.RoundTrip(request)
		})
	}
}

// Logging returns a RoundTripperConstructor that writes one debug entry to
// the logger for each round trip.  A nil logger disables logging.
func Logging(logger *zap.Logger) RoundTripperConstructor {
	return func(next http.RoundTripper) http.RoundTripper {
		if logger == nil {
			return next
		}

		return RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
			start := time.Now()
			response, err := next.RoundTrip(request)

			fields := []zap.Field{
				zap.String("method", request.Method),
				zap.String("url", request.URL.String()),
				zap.Duration("duration", time.Since(start)),
			}

			if id := request.Header.Get(DefaultRequestIDHeader); len(id) > 0 {
				fields = append(fields, zap.String("requestID", id))
			}

			if err != nil {
				logger.Debug("round trip failed", append(fields, zap.Error(err))...)
			} else {
				logger.Debug("round trip", append(fields, zap.Int("status", response.StatusCode))...)
			}

			return response, err
		})
	}
}
