package main

import (
	"context"
	"errors"
	"io"

	"github.com/alecthomas/kong"
	"github.com/lox/holdemref/cmd/holdemref/shared"
	"github.com/lox/holdemref/internal/config"
	"github.com/lox/holdemref/internal/handlog"
	"github.com/rs/zerolog"
)

// HistoryCmd replays recorded hands from a JSON-lines file or a Redis list.
type HistoryCmd struct {
	File      string `short:"f" help:"JSON-lines hand log to read" type:"path" xor:"source"`
	RedisAddr string `name:"redis-addr" help:"Read hands from the Redis list at this address" xor:"source"`
	RedisKey  string `name:"redis-key" help:"Redis list key" default:"${redis_key}"`
	Last      int    `short:"n" help:"Only show the last N hands (0 for all)"`
	Debug     bool   `help:"Enable debug logging"`
}

func (cmd *HistoryCmd) Run(kctx *kong.Context) error {
	logger := shared.SetupLogger(cmd.Debug)
	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()
	return cmd.run(ctx, logger, kctx.Stdout)
}

func (cmd *HistoryCmd) run(ctx context.Context, logger zerolog.Logger, w io.Writer) error {
	recs, err := cmd.load(ctx)
	if err != nil {
		return err
	}
	logger.Debug().Int("hands", len(recs)).Msg("Hand history loaded")

	for _, rec := range recs {
		writeHand(w, rec.HandNumber, rec.Result())
	}
	return nil
}

func (cmd *HistoryCmd) load(ctx context.Context) ([]handlog.Record, error) {
	switch {
	case cmd.File != "":
		recs, err := handlog.ReadFile(cmd.File)
		if err != nil {
			return nil, err
		}
		if cmd.Last > 0 && len(recs) > cmd.Last {
			recs = recs[len(recs)-cmd.Last:]
		}
		return recs, nil

	case cmd.RedisAddr != "":
		key := cmd.RedisKey
		if key == "" {
			key = config.DefaultRedisKey
		}
		sink, err := handlog.NewRedisSink(ctx, cmd.RedisAddr, "", 0, key)
		if err != nil {
			return nil, err
		}
		defer sink.Close()
		start := int64(0)
		if cmd.Last > 0 {
			start = -int64(cmd.Last)
		}
		return sink.Range(ctx, start, -1)

	default:
		return nil, errors.New("one of --file or --redis-addr is required")
	}
}
