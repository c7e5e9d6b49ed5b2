package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lox/holdemref/cmd/holdemref/shared"
	"github.com/lox/holdemref/poker"
	"github.com/rs/zerolog"
)

// EvalCmd scores a hand.
type EvalCmd struct {
	Cards  []string `arg:"" help:"5 to 7 cards, e.g. 'As Ks Qs Js Ts' or AsKsQsJsTs"`
	Lookup string   `help:"Lookup table file (built in memory when empty)" type:"path"`
	Debug  bool     `help:"Enable debug logging"`
}

func (cmd *EvalCmd) Run(kctx *kong.Context) error {
	return cmd.run(shared.SetupLogger(cmd.Debug), kctx.Stdout)
}

func (cmd *EvalCmd) run(logger zerolog.Logger, w io.Writer) error {
	cards, err := poker.ParseCards(strings.Join(cmd.Cards, " "))
	if err != nil {
		return err
	}
	if err := poker.CheckDistinct(cards); err != nil {
		return err
	}

	eval, err := loadEvaluator(cmd.Lookup, logger)
	if err != nil {
		return err
	}
	best, score, err := bestOf(eval, cards)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("cards"), renderCards(poker.CardStrings(cards)))
	fmt.Fprintf(w, "%s  %s\n", headerStyle.Render("best"), renderCards(poker.CardStrings(best)))
	fmt.Fprintf(w, "%s  %s (%d)\n", headerStyle.Render("rank"), categoryStyle.Render(score.Strength.Category().String()), uint32(score.Strength))
	return nil
}

// bestOf tries every five-card subset of 5 to 7 cards.
func bestOf(eval *poker.Evaluator, cards []poker.Card) ([]poker.Card, poker.Score, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return nil, poker.Score{}, fmt.Errorf("%w: eval needs 5-7 cards, got %d", poker.ErrInvalidHandSize, len(cards))
	}
	if len(cards) == 7 {
		return eval.BestHand(cards)
	}

	var (
		best  []poker.Card
		top   poker.Score
		combo = make([]poker.Card, 0, 5)
	)
	// Skipping one card of six, or none of five, covers every subset.
	for skip := range len(cards) {
		if len(cards) == 5 && skip > 0 {
			break
		}
		combo = combo[:0]
		for i, c := range cards {
			if len(cards) == 6 && i == skip {
				continue
			}
			combo = append(combo, c)
		}
		score, err := eval.Evaluate(combo)
		if err != nil {
			return nil, poker.Score{}, err
		}
		if best == nil || score.Compare(top) > 0 {
			best, top = append([]poker.Card(nil), combo...), score
		}
	}
	return best, top, nil
}
