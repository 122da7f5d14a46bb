// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

import (
	"errors"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrNilListener is returned by New when a nil Listener is supplied.
var ErrNilListener = errors.New("listeners cannot be nil")

// Option tailors a Client created by New.
type Option interface {
	apply(*Client) error
}

type optionFunc func(*Client) error

func (of optionFunc) apply(c *Client) error {
	return of(c)
}

// Options is an aggregate Option.  Every option is applied, and all errors
// are combined via go.uber.org/multierr.
type Options []Option

func (o Options) apply(c *Client) (err error) {
	for _, opt := range o {
		err = multierr.Append(err, opt.apply(c))
	}

	return
}

// WithLogger sets the client's logger.  A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *Client) error {
		if l == nil {
			l = zap.NewNop()
		}

		c.logger = l
		return nil
	})
}

// WithListeners appends listeners that receive every Event.
func WithListeners(ls ...Listener) Option {
	return optionFunc(func(c *Client) error {
		for _, l := range ls {
			if l == nil {
				return ErrNilListener
			}
		}

		c.listeners = append(c.listeners, ls...)
		return nil
	})
}

// WithName sets the initial name state.
func WithName(name string) Option {
	return optionFunc(func(c *Client) error {
		c.state.Name = name
		return nil
	})
}
