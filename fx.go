// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

import (
	"context"
	"net/http"

	"github.com/xmidt-org/agestats/agestatshttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// HTTPClientName is the fx component name of the *http.Client created by Provide.
	HTTPClientName = "agestats.client"

	// ListenerGroup is the fx value group from which Provide collects Listeners.
	ListenerGroup = "agestats.listeners"

	// MiddlewareGroup is the fx value group from which Provide collects additional
	// round tripper constructors for the *http.Client.
	MiddlewareGroup = "agestats.middleware"
)

// ConfigIn is the set of dependencies for unmarshaling a Config.
type ConfigIn struct {
	fx.In

	Unmarshaler Unmarshaler
}

// HTTPClientIn is the set of dependencies for the *http.Client.
type HTTPClientIn struct {
	fx.In

	Config     Config
	Logger     *zap.Logger                            `optional:"true"`
	Middleware []agestatshttp.RoundTripperConstructor `group:"agestats.middleware"`
}

// APIIn is the set of dependencies for the API component.
type APIIn struct {
	fx.In

	Config     Config
	HTTPClient *http.Client `name:"agestats.client"`
}

// ClientIn is the set of dependencies for the Client component.
type ClientIn struct {
	fx.In

	API       *API
	Lifecycle fx.Lifecycle
	Logger    *zap.Logger `optional:"true"`
	Listeners []Listener  `group:"agestats.listeners"`
}

// Provide emits the following components into the enclosing fx.App:
//
//   - Config, unmarshaled from the given key on top of DefaultConfig.  An empty
//     key unmarshals the root of the configuration.
//   - a *http.Client named HTTPClientName
//   - *API
//   - *Client, closed when the application stops
//
// An Unmarshaler component, e.g. from ForViper, is required.  A *zap.Logger
// component is optional.
func Provide(key string) fx.Option {
	return fx.Provide(
		func(in ConfigIn) (Config, error) {
			cfg := DefaultConfig()
			var err error
			if len(key) > 0 {
				err = in.Unmarshaler.UnmarshalKey(key, &cfg)
			} else {
				err = in.Unmarshaler.Unmarshal(&cfg)
			}

			if err == nil {
				err = cfg.Validate()
			}

			return cfg, err
		},
		fx.Annotated{
			Name: HTTPClientName,
			Target: func(in HTTPClientIn) (*http.Client, error) {
				return in.Config.NewHTTPClient(in.Logger, in.Middleware...)
			},
		},
		func(in APIIn) (*API, error) {
			return in.Config.NewAPI(in.HTTPClient)
		},
		func(in ClientIn) (*Client, error) {
			c, err := New(
				in.API,
				WithLogger(in.Logger),
				WithListeners(in.Listeners...),
			)

			if err == nil {
				in.Lifecycle.Append(fx.Hook{
					OnStop: func(context.Context) error {
						return c.Close()
					},
				})
			}

			return c, err
		},
	)
}
