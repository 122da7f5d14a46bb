// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUseExitCode(t *testing.T) {
	var (
		assert = assert.New(t)
		cause  = errors.New("expected")
		err    = UseExitCode(cause, 17)
	)

	assert.ErrorIs(err, cause)
	assert.Equal(cause.Error(), err.Error())
	assert.Equal(17, ExitCodeFor(err))
	assert.Equal(17, ExitCodeFor(fmt.Errorf("wrapped: %w", err)))

	assert.Panics(func() {
		UseExitCode(nil, 1)
	})
}

func TestExitCodeFor(t *testing.T) {
	testData := []struct {
		err      error
		expected int
	}{
		{nil, 0},
		{errors.New("plain"), DefaultErrorExitCode},
		{&TransportError{Endpoint: EndpointAge, Err: errors.New("refused")}, TransportErrorExitCode},
		{&StatusError{Endpoint: EndpointStats, StatusCode: 500}, StatusErrorExitCode},
		{&DecodeError{Endpoint: EndpointMaxAge, Reason: "bad"}, DecodeErrorExitCode},
		{fmt.Errorf("wrapped: %w", &DecodeError{}), DecodeErrorExitCode},
	}

	for i, record := range testData {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			assert.Equal(t, record.expected, ExitCodeFor(record.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(
		"stats: GET http://localhost:8080/stats returned status 503",
		(&StatusError{Endpoint: EndpointStats, URL: "http://localhost:8080/stats", StatusCode: 503}).Error(),
	)

	assert.Equal(`maxAge: missing field "age"`, (&DecodeError{Endpoint: EndpointMaxAge, Reason: `missing field "age"`}).Error())
	assert.Equal("age: refused", (&TransportError{Endpoint: EndpointAge, Err: errors.New("refused")}).Error())
}
