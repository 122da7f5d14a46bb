// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrNilViper is returned to the fx.App when the externally supplied Viper
// instance is nil
var ErrNilViper = errors.New("the viper instance cannot be nil")

// Unmarshaler is the strategy used to unmarshal configuration into objects.
type Unmarshaler interface {
	// Unmarshal reads configuration data into the given struct
	Unmarshal(value interface{}) error

	// UnmarshalKey reads configuration data from a key into the given struct
	UnmarshalKey(key string, value interface{}) error
}

// ViperUnmarshaler is the standard Unmarshaler.  DefaultDecodeHooks is always
// applied before any Options.
type ViperUnmarshaler struct {
	// Viper is the required Viper instance to which all unmarshal operations are delegated
	Viper *viper.Viper

	// Options is the optional slice of viper.DecoderConfigOptions passed to all
	// unmarshal calls
	Options []viper.DecoderConfigOption

	// Logger is the optional sink for debug output
	Logger *zap.Logger
}

func (vu ViperUnmarshaler) decoderOption() viper.DecoderConfigOption {
	return Merge(
		[]viper.DecoderConfigOption{DefaultDecodeHooks},
		vu.Options,
	)
}

func (vu ViperUnmarshaler) debug(key string, value interface{}) {
	if vu.Logger != nil {
		vu.Logger.Debug("unmarshal", zap.String("key", key), zap.String("type", fmt.Sprintf("%T", value)))
	}
}

// Unmarshal implements Unmarshaler
func (vu ViperUnmarshaler) Unmarshal(value interface{}) error {
	vu.debug("", value)
	return vu.Viper.Unmarshal(value, vu.decoderOption())
}

// UnmarshalKey implements Unmarshaler
func (vu ViperUnmarshaler) UnmarshalKey(key string, value interface{}) error {
	vu.debug(key, value)
	return vu.Viper.UnmarshalKey(key, value, vu.decoderOption())
}

// ViperUnmarshalerIn is the set of dependencies required to build a ViperUnmarshaler.
// Note that the actual viper instance must be supplied externally.
type ViperUnmarshalerIn struct {
	fx.In

	// Options is the optional slice of viper.DecoderConfigOption that will be
	// applied to every unmarshal or unmarshal key operation
	Options []viper.DecoderConfigOption `optional:"true"`

	// Logger is the optional logger for unmarshal operations
	Logger *zap.Logger `optional:"true"`
}

// ForViper creates an Unmarshaler component backed by an externally supplied
// viper instance.  The viper instance itself is not made a component.
//
// The decoder options used are those supplied to this function followed by an
// optional []viper.DecoderConfigOption component.
func ForViper(v *viper.Viper, o ...viper.DecoderConfigOption) fx.Option {
	if v == nil {
		return fx.Error(ErrNilViper)
	}

	return fx.Provide(
		func(in ViperUnmarshalerIn) Unmarshaler {
			return ViperUnmarshaler{
				Viper: v,
				Options: append(
					append([]viper.DecoderConfigOption{}, o...),
					in.Options...,
				),
				Logger: in.Logger,
			}
		},
	)
}
