package poker

import "errors"

var (
	// ErrInsufficientCards is returned when a deal asks for more cards than remain.
	ErrInsufficientCards = errors.New("insufficient cards")
	// ErrInvalidHandSize is returned when an evaluator receives the wrong number of cards.
	ErrInvalidHandSize = errors.New("invalid hand size")
	// ErrCorruptTable is returned when the lookup table is missing, malformed or
	// does not cover a hand it should.
	ErrCorruptTable = errors.New("corrupt lookup table")
	// ErrInvalidCard is returned for unparseable or malformed cards.
	ErrInvalidCard = errors.New("invalid card")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("duplicate card")
)
