package game

import (
	"fmt"

	"github.com/lox/holdemref/poker"
)

// dealer holds the deck and the real cards for one hand. Agents only ever
// see the string copies it writes into the TableState.
type dealer struct {
	deck *poker.Deck
	ts   *TableState
}

// postForcedBets collects antes, then the small and big blinds. Every
// payment is capped at the payer's stack.
func (d *dealer) postForcedBets() {
	ts := d.ts
	n := len(ts.Players)

	if ts.Ante > 0 {
		for _, p := range ts.Players {
			paid := min(ts.Ante, p.Stack)
			ts.commit(p, paid, false)
			ts.logf("[%s] posts ante %d", p.Name, paid)
		}
	}

	sb := ts.Players[smallBlindSeat(n, ts.Button)]
	bb := ts.Players[bigBlindSeat(n, ts.Button)]
	for _, blind := range []struct {
		p      *PlayerState
		amount int
		label  string
	}{
		{sb, ts.SmallBlind, "small blind"},
		{bb, ts.BigBlind, "big blind"},
	} {
		if blind.p.Status != StatusActive {
			continue
		}
		paid := min(blind.amount, blind.p.Stack)
		ts.commit(blind.p, paid, true)
		ts.logf("[%s] posts %s %d", blind.p.Name, blind.label, paid)
	}

	ts.MaxBet = ts.BigBlind
	ts.Cursor = (bb.Seat + 1) % n
}

// dealHoleCards gives two cards to every seat in seat order.
func (d *dealer) dealHoleCards() error {
	for _, p := range d.ts.Players {
		cards, err := d.deck.Deal(2)
		if err != nil {
			return fmt.Errorf("deal hole cards to %s: %w", p.Name, err)
		}
		p.hole = cards
		p.HoleCards = poker.CardStrings(cards)
	}
	return nil
}

// dealCommunity adds n cards to the board.
func (d *dealer) dealCommunity(n int) error {
	cards, err := d.deck.Deal(n)
	if err != nil {
		return fmt.Errorf("deal %d community cards: %w", n, err)
	}
	d.ts.board = append(d.ts.board, cards...)
	d.ts.Community = poker.CardStrings(d.ts.board)
	return nil
}
