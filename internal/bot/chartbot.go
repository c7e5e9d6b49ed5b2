package bot

import (
	"context"

	"github.com/lox/holdemref/internal/game"
	"github.com/lox/holdemref/poker"
	"github.com/rs/zerolog"
)

// ChartBot implements a simple push-fold pre-flop chart and check/call post-flop
type ChartBot struct {
	logger zerolog.Logger
}

// NewChartBot creates a new ChartBot instance
func NewChartBot(logger zerolog.Logger) *ChartBot {
	return &ChartBot{logger: logger}
}

func (c *ChartBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	me := v.Me()
	if v.Street != game.PreFlop {
		return checkOrCall(v, "chart-bot post-flop"), nil
	}

	switch cat := poker.CategorizeHoleStrings(me.HoleCards); {
	case (cat == poker.CategoryPremium || cat == poker.CategoryStrong) && me.Stack <= 20*v.BigBlind:
		return game.Decision{Action: game.ActionRaise, Amount: allInTo(v), Reasoning: "chart-bot push with " + string(cat)}, nil
	case v.MaxBet > v.BigBlind && !cat.Playable():
		return checkOrFold(v, "chart-bot facing a raise"), nil
	}
	return checkOrCall(v, "chart-bot"), nil
}
