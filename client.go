// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// slot tracks the in-flight fetch, if any, for one state field.
type slot struct {
	generation uint64
	cancel     context.CancelFunc
}

// Client holds UI-bound state and updates it from background fetches.
// All methods are safe for concurrent use.
//
// Each state field is owned by one endpoint.  Starting a fetch cancels any
// fetch already in flight for the same field, and only the newest fetch may
// write the field.  A failed fetch never changes state.  Failures are logged and
// reported to listeners through Event.Err.
type Client struct {
	fetcher   Fetcher
	logger    *zap.Logger
	listeners Listeners

	lock     sync.Mutex
	idle     *sync.Cond
	inFlight int
	closed   bool
	state    State
	slots    [endpointCount]slot
}

// New creates a Client backed by the given Fetcher.
func New(f Fetcher, opts ...Option) (*Client, error) {
	if f == nil {
		return nil, ErrNilFetcher
	}

	c := &Client{
		fetcher: f,
		logger:  zap.NewNop(),
	}

	c.idle = sync.NewCond(&c.lock)

	if err := Options(opts).apply(c); err != nil {
		return nil, err
	}

	return c, nil
}

// State returns a deep copy of the current state.
func (c *Client) State() State {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.state.clone()
}

// Name returns the current name state.
func (c *Client) Name() string {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.state.Name
}

// SetName updates the name state.  No request is made.
func (c *Client) SetName(name string) {
	c.lock.Lock()
	c.state.Name = name
	c.lock.Unlock()
}

// FetchAge starts a background request for the age of name and returns
// immediately.  An empty name means the current Name state.
func (c *Client) FetchAge(ctx context.Context, name string) {
	if len(name) == 0 {
		name = c.Name()
	}

	c.start(ctx, EndpointAge, func(ctx context.Context) (func(*State), error) {
		response, err := c.fetcher.Age(ctx, name)
		if err != nil {
			return nil, err
		}

		return func(s *State) {
			s.Age = &response.Age
		}, nil
	})
}

// ClearAge sets the age state to the empty string.  No request is made, and
// any age fetch still in flight is canceled so it cannot overwrite the cleared value.
func (c *Client) ClearAge() {
	c.lock.Lock()
	s := &c.slots[EndpointAge]
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.generation++
	cleared := ""
	c.state.Age = &cleared
	snapshot := c.state.clone()
	c.lock.Unlock()

	c.listeners.OnEvent(Event{Endpoint: EndpointAge, State: snapshot})
}

// FetchStats starts a background request for the per-name request counts
// and returns immediately.
func (c *Client) FetchStats(ctx context.Context) {
	c.start(ctx, EndpointStats, func(ctx context.Context) (func(*State), error) {
		stats, err := c.fetcher.Stats(ctx)
		if err != nil {
			return nil, err
		}

		return func(s *State) {
			s.Stats = stats
		}, nil
	})
}

// FetchMaxAge starts a background request for the max-age-name endpoint and
// returns immediately.  The response's age field becomes the MaxAge state.
func (c *Client) FetchMaxAge(ctx context.Context) {
	c.start(ctx, EndpointMaxAge, func(ctx context.Context) (func(*State), error) {
		response, err := c.fetcher.MaxAge(ctx)
		if err != nil {
			return nil, err
		}

		return func(s *State) {
			s.MaxAge = &response.Age
		}, nil
	})
}

// Wait blocks until no fetch is in flight.  It may be called concurrently
// with the Fetch methods.
func (c *Client) Wait() {
	c.lock.Lock()
	c.waitIdle()
	c.lock.Unlock()
}

// waitIdle must be called with the lock held.
func (c *Client) waitIdle() {
	for c.inFlight > 0 {
		c.idle.Wait()
	}
}

// Close cancels every fetch in flight and waits for them to finish.  Fetches
// started afterwards fail with ErrClosed.  This method is idempotent.
func (c *Client) Close() error {
	c.lock.Lock()
	c.closed = true
	for i := range c.slots {
		if s := &c.slots[i]; s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
	}

	c.waitIdle()
	c.lock.Unlock()
	return nil
}

// fetchFunc performs a request and returns the state mutation to apply on success.
type fetchFunc func(context.Context) (func(*State), error)

// start claims the slot for e, superseding whatever was in flight, and runs
// f on a new goroutine.
func (c *Client) start(parent context.Context, e Endpoint, f fetchFunc) {
	if parent == nil {
		parent = context.Background()
	}

	c.lock.Lock()
	if c.closed {
		snapshot := c.state.clone()
		c.lock.Unlock()
		c.report(e, snapshot, ErrClosed)
		return
	}

	s := &c.slots[e]
	if s.cancel != nil {
		s.cancel()
	}

	s.generation++
	generation := s.generation
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	c.inFlight++
	c.lock.Unlock()

	go func() {
		defer c.done()
		defer cancel()

		mutate, err := f(ctx)
		c.finish(e, generation, mutate, err)
	}()
}

// finish applies the outcome of a fetch, provided it has not been superseded.
func (c *Client) finish(e Endpoint, generation uint64, mutate func(*State), err error) {
	c.lock.Lock()
	s := &c.slots[e]
	if c.closed || s.generation != generation {
		c.lock.Unlock()
		c.logger.Debug("discarding superseded fetch",
			zap.Stringer("endpoint", e),
			zap.Uint64("generation", generation),
			zap.NamedError("cause", err),
		)

		return
	}

	s.cancel = nil
	if err == nil {
		mutate(&c.state)
	}

	snapshot := c.state.clone()
	c.lock.Unlock()

	if err != nil {
		c.report(e, snapshot, err)
		return
	}

	c.logger.Debug("fetch complete", zap.Stringer("endpoint", e))
	c.listeners.OnEvent(Event{Endpoint: e, State: snapshot})
}

// done marks one fetch as no longer in flight, waking Wait and Close once
// nothing remains.
func (c *Client) done() {
	c.lock.Lock()
	c.inFlight--
	if c.inFlight == 0 {
		c.idle.Broadcast()
	}

	c.lock.Unlock()
}

func (c *Client) report(e Endpoint, snapshot State, err error) {
	c.logger.Error("fetch failed", zap.Stringer("endpoint", e), zap.Error(err))
	c.listeners.OnEvent(Event{Endpoint: e, State: snapshot, Err: err})
}
