package poker

import "fmt"

// HandCategory enumerates the classes of five-card poker hands ordered from
// weakest to strongest.
type HandCategory uint8

const (
	HighCard HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// CategoryBand separates the numeric bands of each category. Every tiebreak
// is strictly below it, so comparing two strengths as integers orders hands.
const CategoryBand = 1_000_000

// String returns a human-readable category name.
func (hc HandCategory) String() string {
	switch hc {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// tableDriven reports whether hands of this category are scored through the
// lookup table rather than from the rank mask.
func (hc HandCategory) tableDriven() bool {
	switch hc {
	case HighCard, Pair, TwoPair, ThreeOfAKind, FullHouse, FourOfAKind:
		return true
	}
	return false
}

// Strength is the totally ordered value of a five-card hand. Higher is better
// and equal strengths are exactly equal hands.
type Strength uint32

func makeStrength(hc HandCategory, tiebreak uint32) Strength {
	return Strength(uint32(hc)*CategoryBand + tiebreak)
}

// Category returns the hand class encoded in the strength.
func (s Strength) Category() HandCategory {
	return HandCategory(s / CategoryBand)
}

// Tiebreak returns the within-category component.
func (s Strength) Tiebreak() uint32 {
	return uint32(s % CategoryBand)
}

// String returns the category name with the raw value.
func (s Strength) String() string {
	return fmt.Sprintf("%s (%d)", s.Category(), uint32(s))
}

// Score is the result of evaluating five cards: the strength plus the OR of
// the five rank bits.
type Score struct {
	Strength Strength
	Mask     uint16
}

// Compare returns 1 if s beats other, -1 if other wins and 0 for a tie.
func (s Score) Compare(other Score) int {
	switch {
	case s.Strength > other.Strength:
		return 1
	case s.Strength < other.Strength:
		return -1
	}
	return 0
}
