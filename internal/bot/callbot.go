package bot

import (
	"context"

	"github.com/lox/holdemref/internal/game"
	"github.com/rs/zerolog"
)

// CallBot checks or calls down every street. It gives up on the river when
// facing a bet bigger than most of the pot and shoves a short stack when
// nobody has raised pre-flop.
type CallBot struct {
	logger zerolog.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger zerolog.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	me := v.Me()

	if v.Street == game.River && v.Owed() > 0 {
		// Pot already includes the bet being faced.
		if bet := v.Owed(); float64(bet) > 0.8*float64(v.Pot-bet) {
			return game.Decision{Action: game.ActionFold, Reasoning: "folding river to large bet"}, nil
		}
	}

	if v.Street == game.PreFlop && v.MaxBet <= v.BigBlind && me.Stack < 10*v.BigBlind {
		return game.Decision{Action: game.ActionRaise, Amount: allInTo(v), Reasoning: "shoving with short stack"}, nil
	}

	return checkOrCall(v, "call-bot"), nil
}
