package poker

import (
	"errors"
	"fmt"
)

const (
	broadwayMask = 0x1F00 // T-J-Q-K-A
	wheelMask    = 0x100F // A-2-3-4-5; the ace bit is not adjacent to the deuce
)

// straightMasks lists every five-rank straight, best first. The wheel is a
// literal: it cannot be derived by shifting because the ace sits at bit 12.
var straightMasks = [10]uint32{
	0x1F00, 0x0F80, 0x07C0, 0x03E0, 0x01F0,
	0x00F8, 0x007C, 0x003E, 0x001F, wheelMask,
}

// straightTops holds the high rank of the straight at the same index in
// straightMasks. The wheel plays as a five-high straight.
var straightTops = [10]Rank{Ace, King, Queen, Jack, Ten, Nine, Eight, Seven, Six, Five}

// straightHigh returns the top rank of the straight spelled by rankMask, or 0
// if the mask is not exactly one of the ten straights.
func straightHigh(rankMask uint32) Rank {
	for i, m := range straightMasks {
		if rankMask == m {
			return straightTops[i]
		}
	}
	return 0
}

// bitCategory classifies a five-card hand from its rank mask and flush flag
// for the categories that are scored without the lookup table. ok is false
// when the hand needs a table lookup.
func bitCategory(rankMask uint32, flush bool) (Strength, bool) {
	if high := straightHigh(rankMask); high != 0 {
		switch {
		case flush && rankMask == broadwayMask:
			return makeStrength(RoyalFlush, uint32(high)), true
		case flush:
			return makeStrength(StraightFlush, uint32(high)), true
		default:
			return makeStrength(Straight, uint32(high)), true
		}
	}
	if flush {
		return makeStrength(Flush, rankMask), true
	}
	return 0, false
}

// bestOfSeven lists the 21 index combinations of five out of seven cards.
var bestOfSeven = func() [21][5]uint8 {
	var combos [21][5]uint8
	n := 0
	for a := uint8(0); a < 3; a++ {
		for b := a + 1; b < 4; b++ {
			for c := b + 1; c < 5; c++ {
				for d := c + 1; d < 6; d++ {
					for e := d + 1; e < 7; e++ {
						combos[n] = [5]uint8{a, b, c, d, e}
						n++
					}
				}
			}
		}
	}
	return combos
}()

// Evaluator scores poker hands. It holds an immutable lookup table and is
// safe for concurrent use.
type Evaluator struct {
	table *LookupTable
}

// NewEvaluator returns an evaluator backed by table. The table must pass
// validation.
func NewEvaluator(table *LookupTable) (*Evaluator, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", ErrCorruptTable)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{table: table}, nil
}

// Table returns the lookup table the evaluator reads from.
func (e *Evaluator) Table() *LookupTable {
	return e.table
}

// Evaluate scores exactly five cards.
func (e *Evaluator) Evaluate(cards []Card) (Score, error) {
	if len(cards) != 5 {
		return Score{}, fmt.Errorf("%w: evaluate needs 5 cards, got %d", ErrInvalidHandSize, len(cards))
	}
	if err := checkCards(cards); err != nil {
		return Score{}, err
	}
	return e.evaluate5(uint32(cards[0]), uint32(cards[1]), uint32(cards[2]), uint32(cards[3]), uint32(cards[4]))
}

func (e *Evaluator) evaluate5(c0, c1, c2, c3, c4 uint32) (Score, error) {
	rankMask := (c0 | c1 | c2 | c3 | c4) & rankBitsMask
	suitCheck := c0 & c1 & c2 & c3 & c4 & suitBitsMask

	if s, ok := bitCategory(rankMask, suitCheck != 0); ok {
		return Score{Strength: s, Mask: uint16(rankMask)}, nil
	}

	product := (c0 >> primeShift) * (c1 >> primeShift) * (c2 >> primeShift) *
		(c3 >> primeShift) * (c4 >> primeShift)
	s, ok := e.table.Lookup(product)
	if !ok {
		return Score{}, fmt.Errorf("%w: no entry for prime product %d", ErrCorruptTable, product)
	}
	return Score{Strength: s, Mask: uint16(rankMask)}, nil
}

// BestHand returns the strongest five-card hand out of exactly seven cards.
// Ties between combinations keep the first one found, so the result is
// deterministic for a given input order.
func (e *Evaluator) BestHand(cards []Card) ([]Card, Score, error) {
	if len(cards) != 7 {
		return nil, Score{}, fmt.Errorf("%w: best hand needs 7 cards, got %d", ErrInvalidHandSize, len(cards))
	}
	if err := checkCards(cards); err != nil {
		return nil, Score{}, err
	}
	var raw [7]Card
	copy(raw[:], cards)

	score, idx, err := e.best7(&raw)
	if err != nil {
		return nil, Score{}, err
	}
	combo := bestOfSeven[idx]
	best := make([]Card, 5)
	for i, j := range combo {
		best[i] = raw[j]
	}
	return best, score, nil
}

// Strength7 returns only the best strength of seven cards. It is the hot path
// of equity simulation and allocates nothing.
func (e *Evaluator) Strength7(cards *[7]Card) (Strength, error) {
	score, _, err := e.best7(cards)
	return score.Strength, err
}

func (e *Evaluator) best7(cards *[7]Card) (Score, int, error) {
	var best Score
	bestIdx := -1
	for i, combo := range bestOfSeven {
		s, err := e.evaluate5(
			uint32(cards[combo[0]]), uint32(cards[combo[1]]), uint32(cards[combo[2]]),
			uint32(cards[combo[3]]), uint32(cards[combo[4]]))
		if err != nil {
			return Score{}, 0, err
		}
		if bestIdx < 0 || s.Strength > best.Strength {
			best, bestIdx = s, i
		}
	}
	return best, bestIdx, nil
}

func checkCards(cards []Card) error {
	for i, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: card %d is malformed (%#x)", ErrInvalidCard, i, uint32(c))
		}
	}
	return nil
}

// IsCorrupt reports whether err stems from a bad lookup table.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptTable)
}
