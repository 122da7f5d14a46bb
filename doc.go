// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package agestats is a client for an age statistics server.

The server exposes three JSON endpoints: the age for a name, the per-name request
counts, and the maximum known age.  API performs synchronous requests against
those endpoints and decodes each response into an explicit schema type.  Client
layers UI-bound state on top of a Fetcher such as API: each fetch runs in the
background and, when it completes, overwrites the corresponding State field and
notifies any Listeners.

A newer fetch for a field always supersedes an older one.  The older request is
canceled and its result, if any, is discarded.

Configuration is unmarshaled through viper, and Provide wires everything into
an enclosing go.uber.org/fx application:

	v := viper.New()
	// ... read configuration ...

	app := fx.New(
		agestats.ForViper(v),
		agestats.Provide("agestats"),
		fx.Invoke(func(c *agestats.Client) {
			c.FetchStats(context.Background())
		}),
	)
*/
package agestats
