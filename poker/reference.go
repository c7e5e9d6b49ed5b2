package poker

import (
	"fmt"
	"sort"
)

// groupWeights are the positional weights 15^(4-i) used to fold up to five
// rank groups into one tiebreak. 15 exceeds the highest rank so positions
// never overlap.
var groupWeights = [5]uint32{50625, 3375, 225, 15, 1}

type rankGroup struct {
	rank  Rank
	count int
}

// ReferenceEvaluate scores five cards from rank and suit counts alone,
// without the bit tricks or lookup table of Evaluator. It produces the same
// strengths and is used to build the table and to cross-check the evaluator.
func ReferenceEvaluate(cards []Card) (Strength, error) {
	if len(cards) != 5 {
		return 0, fmt.Errorf("%w: reference evaluate needs 5 cards, got %d", ErrInvalidHandSize, len(cards))
	}

	var rankCounts [Ace + 1]int
	var suitCounts [numSuits]int
	for _, c := range cards {
		if !c.Valid() {
			return 0, fmt.Errorf("%w: encoding %#x", ErrInvalidCard, uint32(c))
		}
		rankCounts[c.Rank()]++
		suitCounts[c.Suit()]++
	}

	groups := make([]rankGroup, 0, 5)
	for r := Ace; r >= Two; r-- {
		if rankCounts[r] > 0 {
			groups = append(groups, rankGroup{rank: r, count: rankCounts[r]})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})

	flush := false
	for _, n := range suitCounts {
		if n == 5 {
			flush = true
		}
	}

	var straightTop Rank
	if len(groups) == 5 {
		switch {
		case groups[0].rank-groups[4].rank == 4:
			straightTop = groups[0].rank
		case groups[0].rank == Ace && groups[1].rank == Five:
			straightTop = Five
		}
	}

	switch {
	case straightTop != 0 && flush && straightTop == Ace:
		return makeStrength(RoyalFlush, uint32(straightTop)), nil
	case straightTop != 0 && flush:
		return makeStrength(StraightFlush, uint32(straightTop)), nil
	case groups[0].count == 4:
		return groupStrength(FourOfAKind, groups), nil
	case groups[0].count == 3 && groups[1].count == 2:
		return groupStrength(FullHouse, groups), nil
	case flush:
		var ranks uint32
		for _, g := range groups {
			ranks |= 1 << (g.rank - Two)
		}
		return makeStrength(Flush, ranks), nil
	case straightTop != 0:
		return makeStrength(Straight, uint32(straightTop)), nil
	case groups[0].count == 3:
		return groupStrength(ThreeOfAKind, groups), nil
	case groups[0].count == 2 && groups[1].count == 2:
		return groupStrength(TwoPair, groups), nil
	case groups[0].count == 2:
		return groupStrength(Pair, groups), nil
	default:
		return groupStrength(HighCard, groups), nil
	}
}

func groupStrength(hc HandCategory, groups []rankGroup) Strength {
	var tiebreak uint32
	for i, g := range groups {
		tiebreak += uint32(g.rank) * groupWeights[i]
	}
	return makeStrength(hc, tiebreak)
}
