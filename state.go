// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

// Stat is the number of requests the server has seen for a single name.
type Stat struct {
	Name     string
	Requests int
}

// AgeResponse is the decoded body of the age and max-age endpoints.
type AgeResponse struct {
	// Name is the name the server echoed back, if any.
	Name string

	// Age is always text, even when the server encodes it as a JSON number.
	Age string
}

// State is a snapshot of a Client's UI-bound state.  Optional fields are nil
// until the corresponding fetch has succeeded at least once.
type State struct {
	// Name is the user-entered name.
	Name string

	// Age is the most recently fetched age, or the empty string after ClearAge.
	Age *string

	// Stats holds the request counts in the order the server listed them.
	// A successful fetch of an empty object yields a non-nil, empty slice.
	Stats []Stat

	// MaxAge is the age field of the most recent max-age response.
	MaxAge *string
}

// clone returns a deep copy that shares no memory with s.
func (s State) clone() State {
	c := State{
		Name:   s.Name,
		Age:    copyString(s.Age),
		MaxAge: copyString(s.MaxAge),
	}

	if s.Stats != nil {
		c.Stats = append(make([]Stat, 0, len(s.Stats)), s.Stats...)
	}

	return c
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}

	v := *p
	return &v
}
