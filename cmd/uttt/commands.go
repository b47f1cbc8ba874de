package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/arena"
	"github.com/IlikeChooros/go-uttt/pkg/bot"
	"github.com/IlikeChooros/go-uttt/pkg/config"
	"github.com/IlikeChooros/go-uttt/pkg/render"
	"github.com/IlikeChooros/go-uttt/pkg/search"
	"github.com/IlikeChooros/go-uttt/pkg/server"
	"github.com/IlikeChooros/go-uttt/pkg/session"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func runServe(ctx context.Context, cfg *config.Config, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Server.Addr, "listen address")
	_ = fs.Parse(args)

	store := session.NewStore(cfg.BotOptions(&logger), logger)
	srv := server.New(store, logger).
		SetWatchInterval(time.Duration(cfg.Server.WatchIntervalMs) * time.Millisecond)
	return srv.ListenAndServe(ctx, *addr)
}

func runVersus(ctx context.Context, cfg *config.Config, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("versus", flag.ExitOnError)
	p1 := fs.String("p1", bot.Medium, "difficulty of the first bot")
	p2 := fs.String("p2", bot.Hard, "difficulty of the second bot")
	games := fs.Int("games", cfg.Arena.Games, "number of games")
	workers := fs.Int("workers", cfg.Arena.Workers, "games played in parallel")
	_ = fs.Parse(args)

	// Search logs of every move would drown the game results
	quiet := logger
	if logger.GetLevel() < zerolog.InfoLevel {
		quiet = logger.Level(zerolog.InfoLevel)
	}
	opts := cfg.BotOptions(&quiet)

	va := arena.NewVersusArena(
		func() bot.Policy { return bot.New(*p1, opts) },
		func() bot.Policy { return bot.New(*p2, opts) },
	).WithContext(ctx).WithLogger(logger).Setup(*games, *workers)

	summary, err := va.Run(arena.NewLogListener(logger))
	fmt.Println(summary.String())
	if ferr := va.ForfeitErrors(); ferr != nil {
		logger.Warn().Err(ferr).Int("forfeits", va.Forfeits()).Msg("some games were forfeited")
	}
	return err
}

func runPlay(ctx context.Context, cfg *config.Config, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	x := fs.String("x", humanName, "player X: a difficulty or \"human\"")
	o := fs.String("o", bot.Medium, "player O: a difficulty or \"human\"")
	_ = fs.Parse(args)

	r := render.New(os.Stdout)
	opts := cfg.BotOptions(&logger)
	policy := func(name string) bot.Policy {
		if name == humanName {
			return newHuman(os.Stdin, r)
		}
		return bot.New(name, opts)
	}

	first, second := policy(*x), policy(*o)
	record, err := arena.PlayGame(ctx, first, second, func(pos *uttt.Position, move uttt.Move) {
		fmt.Printf("%v plays %v\n", pos.ToMove().Opponent(), move)
	})
	if err != nil {
		return err
	}

	final := uttt.NewPosition()
	for _, m := range record.Moves {
		final.ApplyMove(m)
	}
	if err := r.Print(final); err != nil {
		return err
	}
	if record.Forfeit != nil {
		fmt.Println("forfeit:", record.Forfeit.Error())
	}
	return nil
}

func runThink(ctx context.Context, cfg *config.Config, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("think", flag.ExitOnError)
	notation := fs.String("position", "9/9/9/9/9/9/9/9/9 x -", "position notation")
	depth := fs.Int("depth", search.DefaultDepthLimit, "max search depth")
	movetime := fs.Int("movetime", 0, "time limit in milliseconds, 0 for none")
	weights := fs.String("weights", "default", "evaluation weights, \"default\" or \"classic\"")
	verbose := fs.Bool("v", false, "print every scored root move")
	_ = fs.Parse(args)

	pos, err := uttt.FromNotation(*notation)
	if err != nil {
		return err
	}

	conf := search.DefaultConfig()
	conf.Limits.SetDepth(*depth)
	if *movetime > 0 {
		conf.Limits.SetMovetime(*movetime)
	}
	w, ok := bot.WeightsByName(*weights)
	if !ok {
		return errors.Errorf("unknown weights %q", *weights)
	}
	conf.Weights = w

	listener := search.NewListener()
	if *verbose {
		listener.OnCandidate(func(stats search.CandidateStats) {
			fmt.Printf("  %2d. %v score %s nodes %d (%dms)\n",
				stats.Index+1, stats.Move, candidateScore(stats), stats.Nodes, stats.Elapsed.Milliseconds())
		})
	}

	engine := search.NewEngine(conf).SetLogger(logger).SetListener(listener)
	if err := render.New(os.Stdout).Print(pos); err != nil {
		return err
	}
	result, err := engine.Search(ctx, pos)
	if err != nil {
		return err
	}
	fmt.Println(result.String())
	return nil
}

// Moves that failed low only have an upper bound on their score
func candidateScore(stats search.CandidateStats) string {
	if stats.Bound == search.BoundUpper {
		return fmt.Sprintf("<= %.1f", stats.Score)
	}
	return fmt.Sprintf("%.1f", stats.Score)
}
