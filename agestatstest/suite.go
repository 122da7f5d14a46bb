// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestatstest

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/agestats"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// Suite is an embeddable type that makes configuration-driven tests simpler.
// Embed this type in testify/suite-style test types.
type Suite struct {
	suite.Suite

	viper  *viper.Viper
	logger *zap.Logger
}

var _ suite.SetupTestSuite = (*Suite)(nil)

// SetupTest initializes a new viper instance and test logger for each test
func (suite *Suite) SetupTest() {
	suite.viper = viper.New()
	suite.logger = zaptest.NewLogger(suite.T())
}

// Viper returns the viper instance for the current test.
func (suite *Suite) Viper() *viper.Viper {
	return suite.viper
}

// Logger returns a logger that writes to the current test.
func (suite *Suite) Logger() *zap.Logger {
	return suite.logger
}

// YAML is a shorthand for bootstrapping the current test's viper environment
// with a given YAML configuration
func (suite *Suite) YAML(v string) {
	suite.viper.SetConfigType("yaml")
	suite.Require().NoError(
		suite.viper.ReadConfig(strings.NewReader(v)),
	)
}

func (suite *Suite) options(more []fx.Option) []fx.Option {
	return append(
		[]fx.Option{
			fx.WithLogger(func() fxevent.Logger {
				return &fxevent.ZapLogger{Logger: suite.logger}
			}),
			fx.Supply(suite.logger),
			agestats.ForViper(suite.viper),
		},
		more...,
	)
}

// Fxtest is a convenience for doing fxtest.New(...) with the current
// viper environment, test logging, and the additional fx.Options
func (suite *Suite) Fxtest(more ...fx.Option) *fxtest.App {
	return fxtest.New(suite.T(), suite.options(more)...)
}

// Fx is like Fxtest, but returns an *fx.App.  Useful for apps that are
// expected to fail.
func (suite *Suite) Fx(more ...fx.Option) *fx.App {
	return fx.New(suite.options(more)...)
}
