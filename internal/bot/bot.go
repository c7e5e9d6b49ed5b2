package bot

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/lox/holdemref/internal/game"
	"github.com/rs/zerolog"
)

// Strategy names accepted by New.
const (
	StrategyCall   = "call"
	StrategyFold   = "fold"
	StrategyRandom = "random"
	StrategyManiac = "maniac"
	StrategyTAG    = "tag"
	StrategyChart  = "chart"
)

type factory func(rng *rand.Rand, logger zerolog.Logger) game.Agent

var strategies = map[string]factory{
	StrategyCall:   func(_ *rand.Rand, l zerolog.Logger) game.Agent { return NewCallBot(l) },
	StrategyFold:   func(_ *rand.Rand, l zerolog.Logger) game.Agent { return NewFoldBot(l) },
	StrategyRandom: func(r *rand.Rand, l zerolog.Logger) game.Agent { return NewRandBot(r, l) },
	StrategyManiac: func(r *rand.Rand, l zerolog.Logger) game.Agent { return NewManiacBot(r, l) },
	StrategyTAG:    func(r *rand.Rand, l zerolog.Logger) game.Agent { return NewTAGBot(r, l) },
	StrategyChart:  func(_ *rand.Rand, l zerolog.Logger) game.Agent { return NewChartBot(l) },
}

// New builds the bot for a strategy name. Bots that use rng are not safe for
// concurrent use; give every seat its own.
func New(strategy string, rng *rand.Rand, logger zerolog.Logger) (game.Agent, error) {
	f, ok := strategies[strings.ToLower(strategy)]
	if !ok {
		return nil, fmt.Errorf("unknown bot strategy %q (want one of %s)", strategy, strings.Join(Strategies(), ", "))
	}
	return f(rng, logger.With().Str("bot", strategy).Logger()), nil
}

// Strategies lists the known strategy names in sorted order.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HandStrength is a coarse bucket of a hand's equity.
type HandStrength int

const (
	VeryWeak HandStrength = iota
	Weak
	Medium
	Strong
	VeryStrong
)

func (hs HandStrength) String() string {
	switch hs {
	case VeryWeak:
		return "Very Weak"
	case Weak:
		return "Weak"
	case Medium:
		return "Medium"
	case Strong:
		return "Strong"
	case VeryStrong:
		return "Very Strong"
	default:
		return "Unknown"
	}
}

// equityToHandStrength buckets an equity in [0, 1].
func equityToHandStrength(equity float64) HandStrength {
	switch {
	case equity >= 0.80:
		return VeryStrong
	case equity >= 0.65:
		return Strong
	case equity >= 0.45:
		return Medium
	case equity >= 0.25:
		return Weak
	default:
		return VeryWeak
	}
}

// positionFactor is below 1 for seats that act early and above 1 for late
// seats.
func positionFactor(p game.Position) float64 {
	switch {
	case p == game.PositionSmallBlind, p == game.PositionBigBlind:
		return 0.8
	case p == game.PositionUnderTheGun:
		return 0.7
	case p == game.PositionMiddle, strings.HasPrefix(string(p), "MP"):
		return 0.9
	case p == game.PositionCutoff:
		return 1.1
	case p == game.PositionButton, p == game.PositionButtonSmall:
		return 1.2
	default:
		return 1.0
	}
}

// requiredEquity is the share of the final pot a call has to win to break
// even. Zero when nothing is owed.
func requiredEquity(v game.View) float64 {
	owed := min(v.Owed(), v.Me().Stack)
	if owed == 0 {
		return 0
	}
	return float64(owed) / float64(v.Pot+owed)
}

// allInTo is the bet that puts the acting player all-in.
func allInTo(v game.View) int {
	me := v.Me()
	return me.Bet + me.Stack
}

// thinking collects the reasons behind a decision.
type thinking struct {
	thoughts []string
}

func (t *thinking) add(format string, args ...any) {
	t.thoughts = append(t.thoughts, fmt.Sprintf(format, args...))
}

func (t *thinking) String() string {
	if len(t.thoughts) == 0 {
		return "no clear reasoning"
	}
	return strings.Join(t.thoughts, ". ")
}

// checkOrFold checks when nothing is owed and folds otherwise.
func checkOrFold(v game.View, reason string) game.Decision {
	if v.Owed() == 0 {
		return game.Decision{Action: game.ActionCheck, Reasoning: reason + ", checking"}
	}
	return game.Decision{Action: game.ActionFold, Reasoning: reason + ", folding"}
}

// checkOrCall checks when nothing is owed and calls otherwise.
func checkOrCall(v game.View, reason string) game.Decision {
	if v.Owed() == 0 {
		return game.Decision{Action: game.ActionCheck, Reasoning: reason + ", checking"}
	}
	return game.Decision{Action: game.ActionCall, Reasoning: reason + ", calling"}
}
