// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAge(t *testing.T) {
	testData := []struct {
		body     string
		expected AgeResponse
	}{
		{
			body:     `{"age": "30"}`,
			expected: AgeResponse{Age: "30"},
		},
		{
			body:     `{"name": "alice", "age": "30"}`,
			expected: AgeResponse{Name: "alice", Age: "30"},
		},
		{
			body:     `{"age": 42}`,
			expected: AgeResponse{Age: "42"},
		},
		{
			body:     `{"age": 0, "name": 17}`,
			expected: AgeResponse{Age: "0"},
		},
		{
			body:     `{"age": ""}`,
			expected: AgeResponse{Age: ""},
		},
	}

	for _, record := range testData {
		t.Run(record.body, func(t *testing.T) {
			actual, err := decodeAge(EndpointAge, []byte(record.body))
			require.NoError(t, err)
			assert.Equal(t, record.expected, actual)
		})
	}
}

func TestDecodeAgeError(t *testing.T) {
	for _, body := range []string{
		``,
		`not json`,
		`{"age": "30"`,
		`["age"]`,
		`"30"`,
		`{}`,
		`{"name": "alice"}`,
		`{"age": null}`,
		`{"age": true}`,
		`{"age": {"years": 30}}`,
	} {
		t.Run(body, func(t *testing.T) {
			var (
				assert = assert.New(t)
				de     *DecodeError
			)

			_, err := decodeAge(EndpointMaxAge, []byte(body))
			assert.True(errors.As(err, &de))
			if de != nil {
				assert.Equal(EndpointMaxAge, de.Endpoint)
				assert.NotEmpty(de.Reason)
			}
		})
	}
}

func TestDecodeStats(t *testing.T) {
	testData := []struct {
		body     string
		expected []Stat
	}{
		{
			body:     `{}`,
			expected: []Stat{},
		},
		{
			body:     `{"alice": 3, "bob": 5}`,
			expected: []Stat{{Name: "alice", Requests: 3}, {Name: "bob", Requests: 5}},
		},
		{
			body:     `{"zed": 1, "amy": 2, "moe": 0}`,
			expected: []Stat{{Name: "zed", Requests: 1}, {Name: "amy", Requests: 2}, {Name: "moe", Requests: 0}},
		},
		{
			body:     `{"a.b": 7, "with \"quotes\"": 2.0}`,
			expected: []Stat{{Name: "a.b", Requests: 7}, {Name: `with "quotes"`, Requests: 2}},
		},
		{
			body:     `{"bob": 5, "alice": 3, "bob": 7}`,
			expected: []Stat{{Name: "bob", Requests: 7}, {Name: "alice", Requests: 3}},
		},
	}

	for _, record := range testData {
		t.Run(record.body, func(t *testing.T) {
			actual, err := decodeStats(EndpointStats, []byte(record.body))
			require.NoError(t, err)
			assert.Equal(t, record.expected, actual)
		})
	}
}

func TestDecodeStatsError(t *testing.T) {
	for _, body := range []string{
		``,
		`[]`,
		`{"alice": "3"}`,
		`{"alice": 3, "bob": null}`,
		`{"alice": 1.5}`,
		`{"alice": {"requests": 3}}`,
	} {
		t.Run(body, func(t *testing.T) {
			var de *DecodeError
			stats, err := decodeStats(EndpointStats, []byte(body))
			assert.Nil(t, stats)
			assert.True(t, errors.As(err, &de))
		})
	}
}
