package poker

import "fmt"

// BuildLookupTable enumerates every five-card combination of the deck and
// records the strength of each non-flush, non-straight rank multiset keyed by
// its prime product. It takes a second or two and is meant to run offline via
// the gen-lookup command.
func BuildLookupTable() (*LookupTable, error) {
	deck := FullDeck()
	entries := make(map[uint32]Strength, LookupTableSize)
	hand := make([]Card, 5)

	n := len(deck)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						hand[0], hand[1], hand[2], hand[3], hand[4] = deck[a], deck[b], deck[c], deck[d], deck[e]
						if err := addCombination(entries, hand); err != nil {
							return nil, err
						}
					}
				}
			}
		}
	}
	return NewLookupTable(entries)
}

func addCombination(entries map[uint32]Strength, hand []Card) error {
	var rankMask, suitCheck uint32 = 0, suitBitsMask
	product := uint32(1)
	for _, c := range hand {
		rankMask |= c.RankBit()
		suitCheck &= c.SuitBits()
		product *= c.Prime()
	}
	if _, ok := bitCategory(rankMask, suitCheck != 0); ok {
		return nil
	}
	if _, seen := entries[product]; seen {
		return nil
	}

	s, err := ReferenceEvaluate(hand)
	if err != nil {
		return err
	}
	if !s.Category().tableDriven() {
		return fmt.Errorf("%w: %v scored %s but bit tests saw no flush or straight", ErrCorruptTable, CardStrings(hand), s)
	}
	entries[product] = s
	return nil
}
