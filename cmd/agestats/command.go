// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xmidt-org/agestats"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "AGESTATS"

// envKeys are the configuration keys that can be overridden through the
// environment, e.g. client.transport.idleConnTimeout is read from
// AGESTATS_CLIENT_TRANSPORT_IDLECONNTIMEOUT.  Headers are maps and can only
// come from a configuration file.
var envKeys = []string{
	"baseURL",
	"maxResponseBytes",
	"client.timeout",
	"client.transport.tlsHandshakeTimeout",
	"client.transport.disableKeepAlives",
	"client.transport.disableCompression",
	"client.transport.maxIdleConns",
	"client.transport.maxIdleConnsPerHost",
	"client.transport.maxConnsPerHost",
	"client.transport.idleConnTimeout",
	"client.transport.responseHeaderTimeout",
	"client.transport.expectContinueTimeout",
	"client.transport.maxResponseHeaderBytes",
	"client.transport.writeBufferSize",
	"client.transport.readBufferSize",
	"client.transport.forceAttemptHTTP2",
}

// flags holds the values of the persistent command line flags.
type flags struct {
	config   string
	envFile  string
	logLevel string
}

// cli carries what every subcommand needs.
type cli struct {
	flags  flags
	viper  *viper.Viper
	stdout io.Writer
	stderr io.Writer
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{
		viper:  viper.New(),
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:               "agestats",
		Short:             "Query an age statistics server",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.configure,
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.config, "config", "", "configuration file (yaml, json, or toml)")
	pf.StringVar(&c.flags.envFile, "env-file", ".env", "optional file of environment variables to load")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "log level (debug, info, warn, error); logging is off when unset")
	pf.String("base-url", agestats.DefaultBaseURL, "base URL of the server")
	pf.Duration("timeout", agestats.DefaultTimeout, "overall timeout of each request")

	// these cannot fail, as the flags were just defined
	c.viper.BindPFlag("baseURL", pf.Lookup("base-url"))
	c.viper.BindPFlag("client.timeout", pf.Lookup("timeout"))

	root.AddCommand(
		&cobra.Command{
			Use:   "age NAME",
			Short: "Fetch the age for a name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.fetch(cmd.Context(), viewAge, func(ctx context.Context, client *agestats.Client) {
					client.SetName(args[0])
					client.FetchAge(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Fetch the request counts for every name",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.fetch(cmd.Context(), viewStats, func(ctx context.Context, client *agestats.Client) {
					client.FetchStats(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "max-age",
			Short: "Fetch the maximum known age",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.fetch(cmd.Context(), viewMaxAge, func(ctx context.Context, client *agestats.Client) {
					client.FetchMaxAge(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "show NAME",
			Short: "Fetch the age for a name, the request counts, and the maximum age",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.fetch(cmd.Context(), viewAll, func(ctx context.Context, client *agestats.Client) {
					client.SetName(args[0])
					client.FetchAge(ctx, args[0])
					client.FetchStats(ctx)
					client.FetchMaxAge(ctx)
				})
			},
		},
	)

	return root
}

// configure loads the optional env file and configuration file, and sets up
// environment variable overrides.
func (c *cli) configure(*cobra.Command, []string) error {
	if len(c.flags.envFile) > 0 {
		if err := godotenv.Load(c.flags.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	c.viper.SetEnvPrefix(envPrefix)
	c.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.viper.AutomaticEnv()

	// Unmarshal only sees keys viper already knows about
	for _, key := range envKeys {
		if err := c.viper.BindEnv(key); err != nil {
			return err
		}
	}

	if len(c.flags.config) > 0 {
		c.viper.SetConfigFile(c.flags.config)
		if err := c.viper.ReadInConfig(); err != nil {
			return err
		}
	}

	return nil
}

func (c *cli) newLogger() (*zap.Logger, error) {
	if len(c.flags.logLevel) == 0 {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(c.flags.logLevel)
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// fetch builds a client, issues the requests, waits for them, and renders
// the resulting state.  Every failed fetch contributes to the returned error.
func (c *cli) fetch(ctx context.Context, v view, issue func(context.Context, *agestats.Client)) (err error) {
	logger, err := c.newLogger()
	if err != nil {
		return err
	}

	defer logger.Sync()

	var (
		lock     sync.Mutex
		fetchErr error
		client   *agestats.Client

		app = fx.New(
			fx.WithLogger(func() fxevent.Logger {
				return &fxevent.ZapLogger{Logger: logger}
			}),
			fx.Supply(logger),
			agestats.ForViper(c.viper),
			agestats.Provide(""),
			fx.Provide(
				fx.Annotated{
					Group: agestats.ListenerGroup,
					Target: func() agestats.Listener {
						return agestats.ListenerFunc(func(e agestats.Event) {
							if e.Err != nil {
								lock.Lock()
								fetchErr = multierr.Append(fetchErr, e.Err)
								lock.Unlock()
							}
						})
					},
				},
			),
			fx.Populate(&client),
		)
	)

	if err = app.Start(ctx); err != nil {
		return err
	}

	defer func() {
		err = multierr.Append(err, app.Stop(context.Background()))
	}()

	issue(ctx, client)
	client.Wait()

	if err = render(c.stdout, v, client.State()); err != nil {
		return err
	}

	lock.Lock()
	defer lock.Unlock()
	return fetchErr
}
