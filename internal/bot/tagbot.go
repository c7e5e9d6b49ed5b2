package bot

import (
	"context"
	"math/rand/v2"

	"github.com/lox/holdemref/internal/game"
	"github.com/lox/holdemref/poker"
	"github.com/rs/zerolog"
)

// TAGBot is a tight aggressive bot. Pre-flop it plays from a hole-card
// chart; after the flop it weighs the equity shown in its View against the
// price of calling and its position.
type TAGBot struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewTAGBot creates a new TAGBot instance
func NewTAGBot(rng *rand.Rand, logger zerolog.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: logger}
}

func (t *TAGBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	me := v.Me()
	th := &thinking{}
	pf := positionFactor(me.Position)

	var d game.Decision
	if v.Street == game.PreFlop || me.Equity <= 0 {
		d = t.preFlop(v, pf, th)
	} else {
		d = t.postFlop(v, pf, th)
	}
	d.Reasoning = th.String()

	t.logger.Debug().
		Str("player", me.Name).
		Stringer("street", v.Street).
		Strs("hole", me.HoleCards).
		Float64("equity", me.Equity).
		Float64("position_factor", pf).
		Str("action", string(d.Action)).
		Int("amount", d.Amount).
		Msg("TAG decision")
	return d, nil
}

func (t *TAGBot) preFlop(v game.View, pf float64, th *thinking) game.Decision {
	cat := poker.CategorizeHoleStrings(v.Me().HoleCards)
	th.add("%s hole cards from %s", cat, v.Me().Position)
	raised := v.MaxBet > v.BigBlind

	switch cat {
	case poker.CategoryPremium:
		th.add("raising for value")
		return t.raise(v, 3)
	case poker.CategoryStrong:
		if !raised {
			th.add("opening")
			return t.raise(v, 2.5)
		}
		th.add("calling the raise")
		return game.Decision{Action: game.ActionCall}
	case poker.CategoryMedium:
		if raised && pf < 1 {
			th.add("too weak to call a raise out of position")
			return checkOrFold(v, "")
		}
		if !raised && pf > 1 && t.rng.Float64() < 0.5 {
			th.add("stealing from late position")
			return t.raise(v, 2.5)
		}
		th.add("limping along")
		return checkOrCall(v, "")
	}

	if v.Owed() == 0 {
		th.add("free look")
		return game.Decision{Action: game.ActionCheck}
	}
	th.add("not worth a call")
	return game.Decision{Action: game.ActionFold}
}

func (t *TAGBot) postFlop(v game.View, pf float64, th *thinking) game.Decision {
	me := v.Me()
	strength := equityToHandStrength(me.Equity)
	need := requiredEquity(v)
	th.add("equity %.2f (%s), need %.2f to call", me.Equity, strength, need)

	// Position stretches the equity a little in late seats and shrinks it early.
	effective := me.Equity * pf

	switch {
	case strength >= Strong:
		if t.rng.Float64() < 0.8 {
			th.add("value betting")
			return t.raise(v, 0.75)
		}
		th.add("slow playing")
		return checkOrCall(v, "")
	case v.Owed() == 0:
		if strength == Medium && pf > 1 && t.rng.Float64() < 0.3 {
			th.add("betting for protection in position")
			return t.raise(v, 0.5)
		}
		th.add("checking")
		return game.Decision{Action: game.ActionCheck}
	case effective >= need:
		th.add("price is right")
		return game.Decision{Action: game.ActionCall}
	}
	th.add("folding to the bet")
	return game.Decision{Action: game.ActionFold}
}

// raise sizes a raise. Pre-flop size is in big blinds over the current bet;
// post-flop it is a fraction of the pot.
func (t *TAGBot) raise(v game.View, size float64) game.Decision {
	var to int
	if v.Street == game.PreFlop {
		to = v.MaxBet + int(size*float64(v.BigBlind))
	} else {
		to = v.MaxBet + int(size*float64(v.Pot))
	}
	to = max(to, v.MinRaiseTo())
	return game.Decision{Action: game.ActionRaise, Amount: min(to, allInTo(v))}
}
