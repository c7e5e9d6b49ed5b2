package bot

import (
	"context"
	"math/rand/v2"

	"github.com/lox/holdemref/internal/game"
	"github.com/rs/zerolog"
)

// RandBot picks uniformly among the actions open to it.
type RandBot struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger zerolog.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	options := []game.ActionKind{game.ActionCall}
	if v.Owed() == 0 {
		options[0] = game.ActionCheck
	} else {
		options = append(options, game.ActionFold)
	}

	minTo, maxTo := v.MinRaiseTo(), allInTo(v)
	if maxTo > v.MaxBet {
		options = append(options, game.ActionRaise)
	}

	d := game.Decision{Action: options[r.rng.IntN(len(options))], Reasoning: "rand-bot random action"}
	if d.Action == game.ActionRaise {
		d.Amount = maxTo
		if maxTo > minTo {
			d.Amount = minTo + r.rng.IntN(maxTo-minTo+1)
		}
	}
	return d, nil
}
