package equity

import (
	"context"
	"math/rand/v2"

	"github.com/lox/holdemref/poker"
)

// cardSet is a bitset of cards keyed by the one-hot rank and suit bits.
type cardSet uint64

func cardBit(c poker.Card) uint64 {
	rank := uint64(c.Rank() - poker.Two)
	return 1 << (rank*4 + uint64(c.Suit()))
}

func (s *cardSet) addAll(cards []poker.Card) {
	for _, c := range cards {
		*s |= cardSet(cardBit(c))
	}
}

func (s cardSet) contains(c poker.Card) bool {
	return uint64(s)&cardBit(c) != 0
}

// simulation is the immutable description of one estimate. Each worker runs
// it against its own copy of the unseen cards.
type simulation struct {
	eval      *poker.Evaluator
	hero      [7]poker.Card // hole cards then known board, completed per iteration
	boardLen  int
	opponents int
	need      int
	unseen    []poker.Card
}

func (s simulation) run(ctx context.Context, iterations int, rng *rand.Rand) (Result, error) {
	pool := make([]poker.Card, len(s.unseen))
	copy(pool, s.unseen)

	hero := s.hero
	var opp [7]poker.Card
	res := Result{}

	for it := 0; it < iterations; it++ {
		if it%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		// Partial Fisher-Yates: pool[:need] becomes a uniform sample.
		for k := 0; k < s.need; k++ {
			j := k + rng.IntN(len(pool)-k)
			pool[k], pool[j] = pool[j], pool[k]
		}

		fill := 5 - s.boardLen
		copy(hero[2+s.boardLen:], pool[:fill])
		heroStrength, err := s.eval.Strength7(&hero)
		if err != nil {
			return res, err
		}

		copy(opp[2:], hero[2:])
		var best poker.Strength
		for o := 0; o < s.opponents; o++ {
			opp[0], opp[1] = pool[fill+2*o], pool[fill+2*o+1]
			st, err := s.eval.Strength7(&opp)
			if err != nil {
				return res, err
			}
			best = max(best, st)
		}

		switch {
		case heroStrength > best:
			res.Wins++
		case heroStrength == best:
			res.Ties++
		}
		res.Iterations++
	}
	return res, nil
}
