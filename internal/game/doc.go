// Package game referees Texas Hold'em hands.
//
// The Engine owns a TableState for the duration of one hand: it posts
// antes and blinds, deals, asks each acting Agent for a Decision on an
// immutable View, normalises and applies that decision, and settles side
// pots at showdown. Stacks plus pot are checked against the starting total
// after every chip movement.
//
// # Basic Usage
//
//	eval, _ := poker.NewEvaluator(table)
//	engine := game.NewEngine(eval, equity.NewCalculator(eval), agents,
//	    game.WithRand(randutil.New(42)))
//	result, err := engine.PlayHand(ctx, game.HandConfig{
//	    Seats:      []game.Seat{{Name: "alice", Stack: 1000}, {Name: "bob", Stack: 1000}},
//	    SmallBlind: 5,
//	    BigBlind:   10,
//	})
//
// Table wraps an Engine to play consecutive hands with a moving button.
//
// # Agent contract
//
// Agents may return any action token and amount. Unknown tokens, negative
// amounts and errors become a check when nothing is owed and a fold
// otherwise. A fold with nothing owed is applied as a check, and a raise
// that cannot exceed the current bet is applied as a call.
package game
