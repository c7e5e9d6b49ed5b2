// Package equity estimates the share of the pot a hand wins on average by
// Monte Carlo simulation against random opponent holdings.
package equity

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"

	"github.com/lox/holdemref/internal/randutil"
	"github.com/lox/holdemref/poker"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidArgument is returned for a non-positive opponent or iteration count.
var ErrInvalidArgument = errors.New("invalid equity argument")

const (
	maxWorkers = 8
	// Below this many iterations the goroutine overhead outweighs the gain.
	parallelThreshold = 500
	cancelCheckEvery  = 256
)

// Result holds the raw tallies of a simulation.
type Result struct {
	Wins       int
	Ties       int
	Iterations int
}

// Equity is (wins + ties/2) / iterations.
func (r Result) Equity() float64 {
	if r.Iterations == 0 {
		return 0
	}
	return (float64(r.Wins) + float64(r.Ties)/2) / float64(r.Iterations)
}

func (r *Result) add(o Result) {
	r.Wins += o.Wins
	r.Ties += o.Ties
	r.Iterations += o.Iterations
}

// Calculator runs equity simulations. It holds no per-call state and may be
// shared between goroutines.
type Calculator struct {
	eval    *poker.Evaluator
	workers int
	logger  zerolog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithWorkers sets the number of parallel simulation workers.
func WithWorkers(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// NewCalculator returns a calculator that scores hands with eval.
func NewCalculator(eval *poker.Evaluator, opts ...Option) *Calculator {
	c := &Calculator{
		eval:    eval,
		workers: min(runtime.NumCPU(), maxWorkers),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "equity").Logger()
	return c
}

// Estimate returns the equity of hole on board against opponents random
// hands, averaged over iterations deals of the unseen cards. Caller slices
// are never modified.
func (c *Calculator) Estimate(ctx context.Context, hole, board []poker.Card, opponents, iterations int, rng *rand.Rand) (float64, error) {
	res, err := c.Simulate(ctx, hole, board, opponents, iterations, rng)
	if err != nil {
		return 0, err
	}
	return res.Equity(), nil
}

// Simulate is Estimate returning the raw tallies.
func (c *Calculator) Simulate(ctx context.Context, hole, board []poker.Card, opponents, iterations int, rng *rand.Rand) (Result, error) {
	unseen, err := validate(hole, board, opponents, iterations)
	if err != nil {
		return Result{}, err
	}

	job := simulation{
		eval:      c.eval,
		opponents: opponents,
		need:      (5 - len(board)) + 2*opponents,
		unseen:    unseen,
	}
	copy(job.hero[:2], hole)
	job.boardLen = copy(job.hero[2:], board)

	workers := c.workers
	if iterations < parallelThreshold || workers < 1 {
		workers = 1
	}
	workers = min(workers, iterations)

	var total Result
	if workers == 1 {
		total, err = job.run(ctx, iterations, rng)
	} else {
		total, err = c.fanOut(ctx, job, iterations, workers, rng)
	}
	if err != nil {
		return Result{}, err
	}

	c.logger.Debug().
		Strs("hole", poker.CardStrings(hole)).
		Strs("board", poker.CardStrings(board)).
		Int("opponents", opponents).
		Int("iterations", total.Iterations).
		Float64("equity", total.Equity()).
		Msg("Equity estimated")
	return total, nil
}

func (c *Calculator) fanOut(ctx context.Context, job simulation, iterations, workers int, rng *rand.Rand) (Result, error) {
	streams := randutil.Split(rng, workers)
	results := make([]Result, workers)

	per, remainder := iterations/workers, iterations%workers
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		n := per
		if w < remainder {
			n++
		}
		g.Go(func() error {
			res, err := job.run(gctx, n, streams[w])
			results[w] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Result
	for _, r := range results {
		total.add(r)
	}
	return total, nil
}

// EstimateMany returns the equity of each hand in holes against the number
// of opponents implied by the other entries, as on a table where hole cards
// are hidden from each other. Entries are computed in parallel, each with its
// own stream derived from rng.
func (c *Calculator) EstimateMany(ctx context.Context, holes [][]poker.Card, board []poker.Card, iterations int, rng *rand.Rand) ([]float64, error) {
	out := make([]float64, len(holes))
	if len(holes) < 2 {
		for i := range out {
			out[i] = 1
		}
		return out, nil
	}

	streams := randutil.Split(rng, len(holes))
	g, gctx := errgroup.WithContext(ctx)
	for i, hole := range holes {
		g.Go(func() error {
			eq, err := c.Estimate(gctx, hole, board, len(holes)-1, iterations, streams[i])
			if err != nil {
				return fmt.Errorf("player %d: %w", i, err)
			}
			out[i] = eq
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func validate(hole, board []poker.Card, opponents, iterations int) ([]poker.Card, error) {
	if len(hole) != 2 {
		return nil, fmt.Errorf("%w: need 2 hole cards, got %d", poker.ErrInvalidHandSize, len(hole))
	}
	if len(board) > 5 {
		return nil, fmt.Errorf("%w: board has %d cards", poker.ErrInvalidHandSize, len(board))
	}
	if opponents < 1 {
		return nil, fmt.Errorf("%w: opponents = %d", ErrInvalidArgument, opponents)
	}
	if iterations < 1 {
		return nil, fmt.Errorf("%w: iterations = %d", ErrInvalidArgument, iterations)
	}
	if err := poker.CheckDistinct(hole, board); err != nil {
		return nil, err
	}

	var used cardSet
	used.addAll(hole)
	used.addAll(board)
	unseen := make([]poker.Card, 0, 52-len(hole)-len(board))
	for _, card := range poker.FullDeck() {
		if !used.contains(card) {
			unseen = append(unseen, card)
		}
	}

	need := (5 - len(board)) + 2*opponents
	if need > len(unseen) {
		return nil, fmt.Errorf("%w: %d opponents need %d unseen cards, only %d remain",
			poker.ErrInsufficientCards, opponents, need, len(unseen))
	}
	return unseen, nil
}
