package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lox/holdemref/cmd/holdemref/shared"
	"github.com/lox/holdemref/internal/equity"
	"github.com/lox/holdemref/internal/randutil"
	"github.com/lox/holdemref/poker"
	"github.com/rs/zerolog"
)

// EquityCmd estimates a hand's equity against random opponents.
type EquityCmd struct {
	Hole       string `arg:"" help:"Two hole cards, e.g. 'AsAh'"`
	Board      string `short:"b" help:"Community cards (0-5), e.g. 'Td7s8h'"`
	Opponents  int    `short:"o" help:"Number of opponents with random hands" default:"1"`
	Iterations int    `short:"i" help:"Number of Monte Carlo iterations" default:"100000"`
	Workers    int    `short:"w" help:"Parallel workers (0 = one per CPU, up to 8)"`
	Seed       *int64 `help:"Random seed for reproducible results"`
	Lookup     string `help:"Lookup table file (built in memory when empty)" type:"path"`
	Debug      bool   `help:"Enable debug logging"`
}

func (cmd *EquityCmd) Run(kctx *kong.Context) error {
	logger := shared.SetupLogger(cmd.Debug)
	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()
	return cmd.run(ctx, logger, kctx.Stdout)
}

func (cmd *EquityCmd) run(ctx context.Context, logger zerolog.Logger, w io.Writer) error {
	hole, err := poker.ParseCards(cmd.Hole)
	if err != nil {
		return fmt.Errorf("hole cards: %w", err)
	}
	board, err := poker.ParseCards(cmd.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}

	eval, err := loadEvaluator(cmd.Lookup, logger)
	if err != nil {
		return err
	}
	calc := equity.NewCalculator(eval, equity.WithWorkers(cmd.Workers), equity.WithLogger(logger))

	rng, seed := randutil.NewFromTime()
	if cmd.Seed != nil {
		seed = *cmd.Seed
		rng = randutil.New(seed)
	}

	start := time.Now()
	res, err := calc.Simulate(ctx, hole, board, cmd.Opponents, cmd.Iterations, rng)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s  board %s  vs %d\n",
		headerStyle.Render("hand"), renderCards(poker.CardStrings(hole)), renderCards(poker.CardStrings(board)), cmd.Opponents)
	fmt.Fprintf(w, "%s %s  (win %.2f%%, tie %.2f%%)\n",
		headerStyle.Render("equity"),
		winStyle.Render(fmt.Sprintf("%.2f%%", 100*res.Equity())),
		100*float64(res.Wins)/float64(res.Iterations),
		100*float64(res.Ties)/float64(res.Iterations))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d iterations in %s, seed %d", res.Iterations, time.Since(start).Round(time.Millisecond), seed)))
	return nil
}
