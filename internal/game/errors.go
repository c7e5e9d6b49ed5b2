package game

import "errors"

var (
	// ErrChipConservation signals that stacks plus pot no longer add up to the
	// chips the hand started with. It is a programming error.
	ErrChipConservation = errors.New("chip conservation violated")
	// ErrInvalidConfig is returned for an unplayable hand or table setup.
	ErrInvalidConfig = errors.New("invalid hand configuration")
	// ErrTableFinished is returned when fewer than two seats have chips.
	ErrTableFinished = errors.New("table finished")
	// ErrActionLimit is returned when a street exceeds the action cap.
	ErrActionLimit = errors.New("too many actions in one street")
)
