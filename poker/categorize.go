package poker

// HoleCardCategory is a coarse pre-flop strength bucket for two hole cards.
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// Playable reports whether a tight player would enter the pot with the hand.
func (c HoleCardCategory) Playable() bool {
	switch c {
	case CategoryPremium, CategoryStrong, CategoryMedium:
		return true
	}
	return false
}

// CategorizeHoleCards buckets two hole cards:
// Premium (JJ+, AK), Strong (TT, AQ, AJ), Medium (77-99, suited broadway),
// Weak (22-66, suited cards within two ranks) and Trash.
func CategorizeHoleCards(card1, card2 Card) HoleCardCategory {
	if !card1.Valid() || !card2.Valid() || card1 == card2 {
		return CategoryUnknown
	}

	lo, hi := card1.Rank(), card2.Rank()
	if lo > hi {
		lo, hi = hi, lo
	}
	pair := lo == hi
	suited := card1.Suit() == card2.Suit()

	switch {
	case pair && lo >= Jack, lo == King && hi == Ace:
		return CategoryPremium
	case pair && lo == Ten, hi == Ace && (lo == Queen || lo == Jack):
		return CategoryStrong
	case pair && lo >= Seven, suited && lo >= Ten:
		return CategoryMedium
	case pair, suited && hi-lo <= 2:
		return CategoryWeak
	}
	return CategoryTrash
}

// CategorizeHoleStrings categorizes hole cards given in text form, as agents
// see them in a View.
func CategorizeHoleStrings(cards []string) HoleCardCategory {
	if len(cards) != 2 {
		return CategoryUnknown
	}
	c1, err := ParseCard(cards[0])
	if err != nil {
		return CategoryUnknown
	}
	c2, err := ParseCard(cards[1])
	if err != nil {
		return CategoryUnknown
	}
	return CategorizeHoleCards(c1, c2)
}
