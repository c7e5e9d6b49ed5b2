package poker

import (
	"fmt"
	"math/rand/v2"
)

// Deck is an ordered sequence of unique cards. Cards are dealt from the end
// of the sequence; a deck is never refilled mid-hand.
type Deck struct {
	cards [numDeckCards]Card
	n     int        // cards remaining; cards[:n] are undealt
	rng   *rand.Rand // random source for deterministic shuffling
}

// NewDeck creates a full, unshuffled deck with an explicit RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	copy(d.cards[:], FullDeck())
	d.n = numDeckCards
	return d
}

// NewDeckFromCards creates a deck that deals the given cards in order, first
// card first. Used for stacked decks in scenarios and tests.
func NewDeckFromCards(cards []Card) (*Deck, error) {
	if len(cards) > numDeckCards {
		return nil, fmt.Errorf("deck holds at most %d cards, got %d", numDeckCards, len(cards))
	}
	if err := CheckDistinct(cards); err != nil {
		return nil, err
	}
	d := &Deck{n: len(cards)}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d, nil
}

// Shuffle applies a Fisher-Yates permutation to the undealt cards.
func (d *Deck) Shuffle() {
	for i := d.n - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the n most recently accessible cards. It fails
// without dealing anything when fewer than n cards remain.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("deal %d cards: negative count", n)
	}
	if n > d.n {
		return nil, fmt.Errorf("%w: requested %d, remaining %d", ErrInsufficientCards, n, d.n)
	}
	out := make([]Card, n)
	for i := range out {
		d.n--
		out[i] = d.cards[d.n]
	}
	return out, nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return d.n
}

// String implements fmt.Stringer.
func (d *Deck) String() string {
	return fmt.Sprintf("Deck(remaining=%d)", d.n)
}
