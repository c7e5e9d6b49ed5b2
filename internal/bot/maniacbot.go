package bot

import (
	"context"
	"math/rand/v2"

	"github.com/lox/holdemref/internal/game"
	"github.com/rs/zerolog"
)

// ManiacBot is an extremely aggressive bot that shoves frequently
type ManiacBot struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger zerolog.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger}
}

func (m *ManiacBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	me := v.Me()
	shove := game.Decision{Action: game.ActionRaise, Amount: allInTo(v)}

	if v.Owed() == 0 {
		if m.rng.Float64() >= 0.85 {
			return game.Decision{Action: game.ActionCheck, Reasoning: "maniac checking"}, nil
		}
		if me.Stack <= 20*v.BigBlind || m.rng.Float64() < 0.3 {
			shove.Reasoning = "maniac shove"
			return shove, nil
		}
		// Three quarters of the way from a min-raise to all-in.
		minTo := v.MinRaiseTo()
		to := minTo + (allInTo(v)-minTo)*3/4
		return game.Decision{Action: game.ActionRaise, Amount: to, Reasoning: "maniac big raise"}, nil
	}

	switch r := m.rng.Float64(); {
	case r < 0.4:
		shove.Reasoning = "maniac shove over bet"
		return shove, nil
	case r < 0.8:
		return game.Decision{Action: game.ActionCall, Reasoning: "maniac call"}, nil
	default:
		return game.Decision{Action: game.ActionFold, Reasoning: "maniac fold"}, nil
	}
}
