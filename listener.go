// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

// Event describes a change to a Client's state, or a failed attempt at one.
type Event struct {
	// Endpoint is the endpoint whose state field this event concerns.
	// ClearAge produces events for EndpointAge.
	Endpoint Endpoint

	// State is a snapshot of the client's state after the event.  On failure,
	// this is the unchanged state.
	State State

	// Err is nil for successful fetches and clears.
	Err error
}

// Listener is a sink for client events.  Listeners are invoked serially for
// each event, on the goroutine that completed the fetch.  A listener must not
// block.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc is a closure type that implements Listener.
type ListenerFunc func(Event)

func (lf ListenerFunc) OnEvent(e Event) {
	lf(e)
}

// Listeners is an aggregate Listener.
type Listeners []Listener

func (ls Listeners) OnEvent(e Event) {
	for _, l := range ls {
		l.OnEvent(e)
	}
}
