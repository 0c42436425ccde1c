package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/jusunglee/bart-go/internal/config"
	"github.com/jusunglee/bart-go/internal/fixtures"
	"github.com/jusunglee/bart-go/internal/logging"
	"github.com/jusunglee/bart-go/internal/models"
	"github.com/jusunglee/bart-go/pkg/bart"
)

// selfCheckToken in place of a station replays the local fixtures instead of querying BART
const selfCheckToken = "testing"

func main() {
	logging.Setup(os.Stderr, false)

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "departures",
		Usage:     "List minutes until each BART departure from a station",
		ArgsUsage: "[STATION | testing]",
		Writer:    stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "direction",
				Aliases: []string{"d"},
				Usage:   "direction filter, s (south-bound) or n (north-bound)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print the request URL and response body",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"BART_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "BART API key (overrides BART_API_KEY)",
			},
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "ETD endpoint URL",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "request timeout",
			},
			&cli.StringFlag{
				Name:  "fixtures",
				Usage: "directory holding test*.json fixtures for the testing mode",
				Value: ".",
			},
		},
		Before: func(c *cli.Context) error {
			logging.Setup(c.App.ErrWriter, c.Bool("verbose"))
			return nil
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() > 1 {
		return errors.Errorf("expected at most one station, got %d arguments", c.NArg())
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("api-key") {
		cfg.APIKey = c.String("api-key")
	}
	if c.IsSet("endpoint") {
		cfg.Endpoint = c.String("endpoint")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("direction") {
		cfg.Direction = c.String("direction")
		if cfg.Direction != models.DirectionSouth && cfg.Direction != models.DirectionNorth {
			return errors.Errorf("direction must be s or n, got %q", cfg.Direction)
		}
	}

	clientConfig := cfg.Client()
	clientConfig.DebugOutput = c.App.Writer
	fetcher := bart.New(clientConfig)

	// Only the positional argument selects the self-check; a configured
	// station named "testing" is looked up like any other
	station := cfg.Station
	if c.NArg() == 1 {
		station = c.Args().First()
		if station == selfCheckToken {
			return selfCheck(c, fetcher)
		}
	}

	result := fetcher.GetDepartures(c.Context, bart.Query{
		Origin:    station,
		Direction: cfg.Direction,
		Verbose:   c.Bool("verbose"),
	})

	// An absent result has already been logged; print nothing
	if result.Present() {
		fmt.Fprintln(c.App.Writer, result.String())
	}

	return nil
}

func selfCheck(c *cli.Context, client bart.Client) error {
	results, err := fixtures.Run(c.Context, client, c.String("fixtures"), fixtures.DefaultOrigin)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		log.Warn().Str("dir", c.String("fixtures")).Msgf("No %s fixtures found", fixtures.Pattern)
	}

	for _, r := range results {
		fmt.Fprintln(c.App.Writer, r.Name)
		if r.Departures.Present() {
			fmt.Fprintln(c.App.Writer, r.Departures.String())
		}
		fmt.Fprintln(c.App.Writer, "-----")
	}

	return nil
}
