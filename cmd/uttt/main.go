package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/config"
	"github.com/rs/zerolog"
)

const usage = `usage: uttt [-config file] [-log-level level] <command> [flags]

commands:
  serve    run the http server
  versus   play a series of games between two bots
  play     play a single game in the terminal
  think    search a position and print the result
`

var (
	configPath = flag.String("config", "", "path to the json config file")
	logLevel   = flag.String("log-level", "", "override the log level from the config")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	logger := newLogger(cfg, os.Stderr)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()[1:]
	switch flag.Arg(0) {
	case "serve":
		err = runServe(ctx, cfg, logger, args)
	case "versus":
		err = runVersus(ctx, cfg, logger, args)
	case "play":
		err = runPlay(ctx, cfg, logger, args)
	case "think":
		err = runThink(ctx, cfg, logger, args)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error().Err(err).Str("command", flag.Arg(0)).Msg("failed")
		stop()
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	if cfg.Log.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(cfg.LogLevel()).With().Timestamp().Logger()
}
