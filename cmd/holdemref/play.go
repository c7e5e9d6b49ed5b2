package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/lox/holdemref/cmd/holdemref/shared"
	"github.com/lox/holdemref/internal/bot"
	"github.com/lox/holdemref/internal/config"
	"github.com/lox/holdemref/internal/equity"
	"github.com/lox/holdemref/internal/game"
	"github.com/lox/holdemref/internal/handlog"
	"github.com/lox/holdemref/internal/phh"
	"github.com/lox/holdemref/internal/randutil"
	"github.com/lox/holdemref/internal/statistics"
	"github.com/rs/zerolog"
)

// PlayCmd runs a session of bot hands.
type PlayCmd struct {
	Config    string `short:"c" help:"HCL session config (defaults are used when the file is missing)" default:"holdemref.hcl" type:"path"`
	Hands     int    `short:"n" help:"Hands to play (overrides the config)"`
	Seed      *int64 `help:"Random seed for reproducible sessions"`
	History   string `help:"Append hand records to this JSON-lines file (overrides the config)" type:"path"`
	PHH       string `name:"phh" help:"Append hands in PHH format to this .phhs file (overrides the config)" type:"path"`
	RedisAddr string `name:"redis-addr" help:"Push hand records onto a Redis list at this address (overrides the config)"`
	Quiet     bool   `short:"q" help:"Only print the final standings"`
	Debug     bool   `help:"Enable debug logging"`
}

func (cmd *PlayCmd) Run(kctx *kong.Context) error {
	logger := shared.SetupLogger(cmd.Debug)
	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()
	return cmd.run(ctx, logger, kctx.Stdout)
}

func (cmd *PlayCmd) run(ctx context.Context, logger zerolog.Logger, w io.Writer) error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Hands > 0 {
		cfg.Table.Hands = cmd.Hands
	}
	if cmd.History != "" {
		cfg.History.File = cmd.History
	}
	if cmd.PHH != "" {
		cfg.History.PHHFile = cmd.PHH
	}
	if cmd.RedisAddr != "" {
		cfg.History.RedisAddr = cmd.RedisAddr
	}

	eval, err := loadEvaluator(cfg.Lookup.Path, logger)
	if err != nil {
		return err
	}

	rng, seed := randutil.NewFromTime()
	if cmd.Seed != nil {
		seed = *cmd.Seed
		rng = randutil.New(seed)
	}
	logger.Info().Int64("seed", seed).Int("players", len(cfg.Players)).Int("hands", cfg.Table.Hands).Msg("Session starting")

	agents := make(map[string]game.Agent, len(cfg.Players))
	for _, p := range cfg.Players {
		agent, err := bot.New(p.Strategy, randutil.Derive(rng), logger.With().Str("player", p.Name).Logger())
		if err != nil {
			return fmt.Errorf("player %s: %w", p.Name, err)
		}
		agents[p.Name] = agent
	}

	calc := equity.NewCalculator(eval, equity.WithWorkers(cfg.Equity.Workers), equity.WithLogger(logger))
	engine := game.NewEngine(eval, calc, agents,
		game.WithLogger(logger),
		game.WithRand(randutil.Derive(rng)),
		game.WithEquityIterations(cfg.Equity.Iterations),
	)
	table, err := game.NewTable(engine, cfg.Seats(), cfg.TableSettings())
	if err != nil {
		return err
	}

	sink, err := openSinks(ctx, cfg.History, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logger.Error().Err(err).Msg("Closing hand log failed")
		}
	}()

	start := table.Stacks()
	stats := statistics.NewTracker(cfg.Table.BigBlind)
	for n := 1; n <= cfg.Table.Hands; n++ {
		result, err := table.PlayHand(ctx)
		if errors.Is(err, game.ErrTableFinished) {
			logger.Info().Int("hands", table.HandsPlayed()).Msg("One player left, session over")
			break
		}
		if errors.Is(err, context.Canceled) {
			logger.Info().Int("hands", table.HandsPlayed()).Msg("Session interrupted")
			break
		}
		if err != nil {
			return err
		}

		stats.Record(result)
		if !cmd.Quiet {
			writeHand(w, n, result)
		}
		if err := sink.Write(ctx, handlog.NewRecord("", n, cfg.TableSettings(), result)); err != nil {
			return err
		}
	}

	if err := sink.Flush(); err != nil {
		return err
	}
	writeStandings(w, table.HandsPlayed(), table.Stacks(), start, stats)
	return nil
}

func openSinks(ctx context.Context, hc *config.HistoryConfig, logger zerolog.Logger) (handlog.Multi, error) {
	var sinks handlog.Multi
	if hc.File != "" {
		fs, err := handlog.NewFileSink(hc.File, handlog.WithFileLogger(logger))
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fs)
	}
	if hc.PHHFile != "" {
		ps, err := phh.NewFileSink(hc.PHHFile, logger)
		if err != nil {
			_ = sinks.Close()
			return nil, err
		}
		sinks = append(sinks, ps)
	}
	if hc.RedisAddr != "" {
		rs, err := handlog.NewRedisSink(ctx, hc.RedisAddr, "", 0, hc.RedisKey)
		if err != nil {
			_ = sinks.Close()
			return nil, err
		}
		sinks = append(sinks, rs)
	}
	return sinks, nil
}
