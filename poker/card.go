package poker

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Card is a playing card packed into a single integer so hand logic can work
// on it with bitwise operations:
//
//	bits  0-12  one-hot rank bit (bit = rank-2)
//	bits 13-16  one-hot suit bit
//	bits 17-20  rank value (2-14)
//	bits 21-26  rank prime (2, 3, 5, ... 41)
//
// Two cards are equal iff their encodings are equal.
type Card uint32

// Suit is one of the four card suits.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Rank is the face value of a card, 2 through 14 (Ace high).
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	rankBitsMask  = 0x1FFF
	suitBitsMask  = 0x1E000
	suitShift     = 13
	rankValShift  = 17
	rankValMask   = 0xF
	primeShift    = 21
	primeMask     = 0x3F
	numRanks      = 13
	numSuits      = 4
	numDeckCards  = numRanks * numSuits
	noCard        = Card(0)
	suitLetters   = "shdc"
	rankCharacter = "23456789TJQKA"
)

// rankPrimes maps rank-2 to the prime embedded in the card encoding.
var rankPrimes = [numRanks]uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

var suitSymbols = [numSuits]string{"♠", "♥", "♦", "♣"}

// String returns the suit glyph.
func (s Suit) String() string {
	if int(s) < len(suitSymbols) {
		return suitSymbols[s]
	}
	return "?"
}

// Letter returns the ascii suit letter (s, h, d, c).
func (s Suit) Letter() byte {
	if int(s) < numSuits {
		return suitLetters[s]
	}
	return '?'
}

// IsRed reports whether the suit is hearts or diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether r is a real card rank.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// String returns the single character rank notation (2-9, T, J, Q, K, A).
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rankCharacter[r-Two])
}

// Prime returns the prime assigned to the rank.
func (r Rank) Prime() uint32 {
	return rankPrimes[r-Two]
}

// NewCard encodes a card from rank and suit. It panics on out-of-range input
// since a card constant with a bad rank is a programming error; use ParseCard
// for untrusted text.
func NewCard(rank Rank, suit Suit) Card {
	if !rank.Valid() || suit >= numSuits {
		panic(fmt.Sprintf("poker: invalid card rank=%d suit=%d", rank, suit))
	}
	idx := uint32(rank - Two)
	return Card(1<<idx |
		1<<(suitShift+uint32(suit)) |
		uint32(rank)<<rankValShift |
		rankPrimes[idx]<<primeShift)
}

// Rank returns the card's rank value.
func (c Card) Rank() Rank {
	return Rank((uint32(c) >> rankValShift) & rankValMask)
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	bits := (uint32(c) & suitBitsMask) >> suitShift
	switch bits {
	case 1:
		return Spades
	case 2:
		return Hearts
	case 4:
		return Diamonds
	default:
		return Clubs
	}
}

// RankBit returns the one-hot rank bit (bits 0-12).
func (c Card) RankBit() uint32 {
	return uint32(c) & rankBitsMask
}

// SuitBits returns the one-hot suit field still in position (bits 13-16).
func (c Card) SuitBits() uint32 {
	return uint32(c) & suitBitsMask
}

// Prime returns the rank prime embedded in the card.
func (c Card) Prime() uint32 {
	return (uint32(c) >> primeShift) & primeMask
}

// Valid reports whether c is a well-formed encoding produced by NewCard.
func (c Card) Valid() bool {
	r := c.Rank()
	if !r.Valid() {
		return false
	}
	s := c.SuitBits() >> suitShift
	if s == 0 || s&(s-1) != 0 {
		return false
	}
	return c == NewCard(r, c.Suit())
}

// String returns the agent-visible form, e.g. "A♠" or "T♥".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + c.Suit().String()
}

// ASCII returns the two-letter form, e.g. "As".
func (c Card) ASCII() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + string(c.Suit().Letter())
}

// index returns a dense 0-51 index, used for duplicate detection.
func (c Card) index() int {
	return int(c.Rank()-Two)*numSuits + int(c.Suit())
}

// FullDeck returns the 52 cards in canonical (suit, rank) order.
func FullDeck() []Card {
	cards := make([]Card, 0, numDeckCards)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// ParseCard parses a single card in "A♠" or "As" form.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return noCard, fmt.Errorf("%w: empty string", ErrInvalidCard)
	}

	rank, err := parseRank(s[0])
	if err != nil {
		return noCard, fmt.Errorf("%w: %q: %v", ErrInvalidCard, s, err)
	}

	rest := s[1:]
	r, size := utf8.DecodeRuneInString(rest)
	if size == 0 || size != len(rest) {
		return noCard, fmt.Errorf("%w: %q: expected one suit character", ErrInvalidCard, s)
	}
	suit, err := parseSuit(r)
	if err != nil {
		return noCard, fmt.Errorf("%w: %q: %v", ErrInvalidCard, s, err)
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses a run of cards such as "A♠K♥", "AsKh" or "As Kh 7d".
func ParseCards(s string) ([]Card, error) {
	s = strings.Join(strings.Fields(s), "")
	var cards []Card
	for len(s) > 0 {
		_, size := utf8.DecodeRuneInString(s[1:])
		if len(s) < 2 || size == 0 {
			return nil, fmt.Errorf("%w: incomplete card %q", ErrInvalidCard, s)
		}
		c, err := ParseCard(s[:1+size])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
		s = s[1+size:]
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error. Intended for tests and
// package-level fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

// CardStrings renders cards in agent-visible form.
func CardStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// SortByRank sorts cards high to low by rank only; suits keep their relative
// order.
func SortByRank(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Rank() > cards[j].Rank()
	})
}

// CheckDistinct returns ErrDuplicateCard if any card appears twice, or
// ErrInvalidCard for a malformed encoding.
func CheckDistinct(groups ...[]Card) error {
	var seen uint64
	for _, group := range groups {
		for _, c := range group {
			if !c.Valid() {
				return fmt.Errorf("%w: encoding %#x", ErrInvalidCard, uint32(c))
			}
			bit := uint64(1) << c.index()
			if seen&bit != 0 {
				return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
			}
			seen |= bit
		}
	}
	return nil
}

func parseRank(b byte) (Rank, error) {
	switch b {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if b >= '2' && b <= '9' {
		return Rank(b-'2') + Two, nil
	}
	return 0, fmt.Errorf("unknown rank %q", b)
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case '♠', 's', 'S':
		return Spades, nil
	case '♥', 'h', 'H':
		return Hearts, nil
	case '♦', 'd', 'D':
		return Diamonds, nil
	case '♣', 'c', 'C':
		return Clubs, nil
	}
	return 0, fmt.Errorf("unknown suit %q", r)
}
