// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/agestats"
	"github.com/xmidt-org/agestats/agestatstest"
	"go.uber.org/zap/zaptest"
)

const eventTimeout = 5 * time.Second

type ClientSuite struct {
	suite.Suite
	fetcher *agestatstest.MockFetcher
	events  chan agestats.Event
	client  *agestats.Client
}

func (suite *ClientSuite) SetupTest() {
	suite.fetcher = new(agestatstest.MockFetcher)
	suite.events = make(chan agestats.Event, 10)

	var err error
	suite.client, err = agestats.New(
		suite.fetcher,
		agestats.WithLogger(zaptest.NewLogger(suite.T())),
		agestats.WithListeners(agestats.ListenerFunc(func(e agestats.Event) {
			suite.events <- e
		})),
	)

	suite.Require().NoError(err)
}

func (suite *ClientSuite) TearDownTest() {
	suite.NoError(suite.client.Close())
	suite.fetcher.AssertExpectations(suite.T())
}

func (suite *ClientSuite) nextEvent() agestats.Event {
	select {
	case e := <-suite.events:
		return e
	case <-time.After(eventTimeout):
		suite.FailNow("no event received")
		return agestats.Event{}
	}
}

func (suite *ClientSuite) assertNoEvents() {
	select {
	case e := <-suite.events:
		suite.Failf("unexpected event", "%#v", e)
	default:
	}
}

func (suite *ClientSuite) TestNew() {
	c, err := agestats.New(nil)
	suite.Nil(c)
	suite.ErrorIs(err, agestats.ErrNilFetcher)

	c, err = agestats.New(suite.fetcher, agestats.WithListeners(nil))
	suite.Nil(c)
	suite.ErrorIs(err, agestats.ErrNilListener)

	c, err = agestats.New(suite.fetcher, agestats.WithName("alice"), agestats.WithLogger(nil))
	suite.Require().NoError(err)
	suite.Equal(agestats.State{Name: "alice"}, c.State())
}

func (suite *ClientSuite) TestInitialState() {
	suite.Equal(agestats.State{}, suite.client.State())
}

func (suite *ClientSuite) TestName() {
	suite.client.SetName("bob")
	suite.Equal("bob", suite.client.Name())
	suite.Equal("bob", suite.client.State().Name)
}

func (suite *ClientSuite) TestFetchAge() {
	suite.fetcher.ExpectAge("alice").Return(agestats.AgeResponse{Name: "alice", Age: "30"}, nil).Once()

	suite.client.FetchAge(context.Background(), "alice")
	e := suite.nextEvent()
	suite.NoError(e.Err)
	suite.Equal(agestats.EndpointAge, e.Endpoint)
	suite.Require().NotNil(e.State.Age)
	suite.Equal("30", *e.State.Age)

	suite.client.Wait()
	state := suite.client.State()
	suite.Require().NotNil(state.Age)
	suite.Equal("30", *state.Age)
}

func (suite *ClientSuite) TestFetchAgeUsesNameState() {
	suite.fetcher.ExpectAge("bob").Return(agestats.AgeResponse{Age: "45"}, nil).Once()

	suite.client.SetName("bob")
	suite.client.FetchAge(context.Background(), "")
	suite.NoError(suite.nextEvent().Err)
}

func (suite *ClientSuite) TestClearAge() {
	suite.client.ClearAge()
	e := suite.nextEvent()
	suite.NoError(e.Err)
	suite.Equal(agestats.EndpointAge, e.Endpoint)
	suite.Require().NotNil(e.State.Age)
	suite.Equal("", *e.State.Age)

	suite.fetcher.ExpectAge("alice").Return(agestats.AgeResponse{Age: "30"}, nil).Once()
	suite.client.FetchAge(context.Background(), "alice")
	suite.nextEvent()

	suite.client.ClearAge()
	suite.nextEvent()
	suite.Equal("", *suite.client.State().Age)

	// ClearAge itself never reaches the fetcher
	suite.fetcher.AssertNumberOfCalls(suite.T(), "Age", 1)
}

func (suite *ClientSuite) TestClearAgeSupersedesFetch() {
	var (
		release = make(chan struct{})
		started = make(chan context.Context, 1)
	)

	suite.fetcher.ExpectAge("alice").
		Run(func(args mock.Arguments) {
			started <- args.Get(0).(context.Context)
			<-release
		}).
		Return(agestats.AgeResponse{Age: "30"}, nil).Once()

	suite.client.FetchAge(context.Background(), "alice")
	ctx := <-started

	suite.client.ClearAge()
	suite.nextEvent()
	suite.ErrorIs(ctx.Err(), context.Canceled)

	close(release)
	suite.client.Wait()
	suite.Equal("", *suite.client.State().Age)
	suite.assertNoEvents()
}

func (suite *ClientSuite) TestFetchStats() {
	expected := []agestats.Stat{
		{Name: "alice", Requests: 3},
		{Name: "bob", Requests: 5},
	}

	suite.fetcher.ExpectStats().Return(expected, nil).Once()
	suite.client.FetchStats(context.Background())

	e := suite.nextEvent()
	suite.NoError(e.Err)
	suite.Equal(agestats.EndpointStats, e.Endpoint)
	suite.Equal(expected, e.State.Stats)
	suite.Equal(expected, suite.client.State().Stats)
}

func (suite *ClientSuite) TestFetchStatsFailure() {
	var (
		expected    = []agestats.Stat{{Name: "alice", Requests: 3}}
		expectedErr = &agestats.StatusError{Endpoint: agestats.EndpointStats, StatusCode: 503}
	)

	suite.fetcher.ExpectStats().Return(expected, nil).Once()
	suite.client.FetchStats(context.Background())
	suite.NoError(suite.nextEvent().Err)

	suite.fetcher.ExpectStats().Return(nil, expectedErr).Once()
	suite.client.FetchStats(context.Background())

	e := suite.nextEvent()
	suite.Equal(agestats.EndpointStats, e.Endpoint)
	suite.Equal(expectedErr, e.Err)
	suite.Equal(expected, e.State.Stats, "a failed fetch must not change state")
	suite.Equal(expected, suite.client.State().Stats)
}

func (suite *ClientSuite) TestFetchMaxAge() {
	suite.fetcher.ExpectMaxAge().Return(agestats.AgeResponse{Age: "42"}, nil).Once()
	suite.client.FetchMaxAge(context.Background())

	e := suite.nextEvent()
	suite.NoError(e.Err)
	suite.Equal(agestats.EndpointMaxAge, e.Endpoint)
	suite.Require().NotNil(e.State.MaxAge)
	suite.Equal("42", *e.State.MaxAge)
}

func (suite *ClientSuite) TestFetchMaxAgeFailure() {
	expectedErr := errors.New("expected")
	suite.fetcher.ExpectMaxAge().Return(agestats.AgeResponse{}, expectedErr).Once()
	suite.client.FetchMaxAge(context.Background())

	e := suite.nextEvent()
	suite.Equal(expectedErr, e.Err)
	suite.Nil(e.State.MaxAge)
	suite.Nil(suite.client.State().MaxAge)
}

// TestNewerFetchWins issues x then y, and lets y's response arrive first.
func (suite *ClientSuite) TestNewerFetchWins() {
	var (
		releaseX = make(chan struct{})
		startedX = make(chan context.Context, 1)
	)

	suite.fetcher.ExpectAge("x").
		Run(func(args mock.Arguments) {
			startedX <- args.Get(0).(context.Context)
			<-releaseX
		}).
		Return(agestats.AgeResponse{Age: "1"}, nil).Once()

	suite.fetcher.ExpectAge("y").Return(agestats.AgeResponse{Age: "2"}, nil).Once()

	suite.client.FetchAge(context.Background(), "x")
	ctxX := <-startedX

	suite.client.FetchAge(context.Background(), "y")
	e := suite.nextEvent()
	suite.NoError(e.Err)
	suite.Equal("2", *e.State.Age)
	suite.ErrorIs(ctxX.Err(), context.Canceled, "the older fetch must be canceled")

	close(releaseX)
	suite.client.Wait()
	suite.Equal("2", *suite.client.State().Age)
	suite.assertNoEvents()
}

func (suite *ClientSuite) TestIndependentEndpoints() {
	suite.fetcher.ExpectAge("alice").Return(agestats.AgeResponse{Age: "30"}, nil).Once()
	suite.fetcher.ExpectStats().Return([]agestats.Stat{{Name: "Alice", Requests: 1}}, nil).Once()
	suite.fetcher.ExpectMaxAge().Return(agestats.AgeResponse{Age: "30"}, nil).Once()

	ctx := context.Background()
	suite.client.FetchAge(ctx, "alice")
	suite.client.FetchStats(ctx)
	suite.client.FetchMaxAge(ctx)

	for i := 0; i < 3; i++ {
		suite.NoError(suite.nextEvent().Err)
	}

	state := suite.client.State()
	suite.Equal("30", *state.Age)
	suite.Equal([]agestats.Stat{{Name: "Alice", Requests: 1}}, state.Stats)
	suite.Equal("30", *state.MaxAge)
}

func (suite *ClientSuite) TestCallerContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	suite.fetcher.ExpectStats().
		Return(nil, &agestats.TransportError{Endpoint: agestats.EndpointStats, Err: context.Canceled}).
		Once()

	suite.client.FetchStats(ctx)
	e := suite.nextEvent()
	suite.ErrorIs(e.Err, context.Canceled)
	suite.Nil(e.State.Stats)
}

func (suite *ClientSuite) TestClose() {
	started := make(chan struct{})
	suite.fetcher.ExpectStats().
		Run(func(args mock.Arguments) {
			close(started)
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.Canceled).Once()

	suite.client.FetchStats(context.Background())
	<-started

	suite.NoError(suite.client.Close())
	suite.assertNoEvents()

	suite.client.FetchMaxAge(context.Background())
	e := suite.nextEvent()
	suite.Equal(agestats.EndpointMaxAge, e.Endpoint)
	suite.ErrorIs(e.Err, agestats.ErrClosed)

	suite.NoError(suite.client.Close())
}

// TestWaitDuringFetches calls Wait on an idle client while other goroutines
// start fetches.
func (suite *ClientSuite) TestWaitDuringFetches() {
	const rounds = 50
	suite.fetcher.ExpectMaxAge().Return(agestats.AgeResponse{Age: "1"}, nil).Times(rounds)

	for i := 0; i < rounds; i++ {
		started := make(chan struct{})
		go func() {
			defer close(started)
			suite.client.FetchMaxAge(context.Background())
		}()

		suite.client.Wait()
		<-started
		suite.client.Wait()
		suite.NoError(suite.nextEvent().Err)
	}

	suite.Require().NotNil(suite.client.State().MaxAge)
	suite.Equal("1", *suite.client.State().MaxAge)
}

func (suite *ClientSuite) TestStateIsACopy() {
	suite.fetcher.ExpectStats().Return([]agestats.Stat{{Name: "alice", Requests: 1}}, nil).Once()
	suite.client.FetchStats(context.Background())
	suite.nextEvent()

	state := suite.client.State()
	state.Stats[0].Requests = 100
	suite.Equal(1, suite.client.State().Stats[0].Requests)
}

func TestClient(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}
