// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestatstest

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xmidt-org/agestats"
)

// MockFetcher is a mocked agestats.Fetcher.
type MockFetcher struct {
	mock.Mock
}

var _ agestats.Fetcher = (*MockFetcher)(nil)

func (m *MockFetcher) Age(ctx context.Context, name string) (agestats.AgeResponse, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(agestats.AgeResponse), args.Error(1)
}

func (m *MockFetcher) Stats(ctx context.Context) ([]agestats.Stat, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).([]agestats.Stat)
	return stats, args.Error(1)
}

func (m *MockFetcher) MaxAge(ctx context.Context) (agestats.AgeResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(agestats.AgeResponse), args.Error(1)
}

// ExpectAge sets an expectation for an Age call with the given name.
func (m *MockFetcher) ExpectAge(name string) *mock.Call {
	return m.On("Age", mock.Anything, name)
}

// ExpectStats sets an expectation for a Stats call.
func (m *MockFetcher) ExpectStats() *mock.Call {
	return m.On("Stats", mock.Anything)
}

// ExpectMaxAge sets an expectation for a MaxAge call.
func (m *MockFetcher) ExpectMaxAge() *mock.Call {
	return m.On("MaxAge", mock.Anything)
}
