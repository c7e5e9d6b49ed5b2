package game

import "fmt"

// Position is a seat's role label for one hand.
type Position string

const (
	PositionButton      Position = "BTN"
	PositionButtonSmall Position = "BTN/SB"
	PositionSmallBlind  Position = "SB"
	PositionBigBlind    Position = "BB"
	PositionUnderTheGun Position = "UTG"
	PositionMiddle      Position = "MP"
	PositionCutoff      Position = "CO"
)

// MaxSeats is the largest table the engine deals to.
const MaxSeats = 10

// shortHanded lists the roles for small tables, starting from the small blind.
var shortHanded = map[int][]Position{
	3: {PositionSmallBlind, PositionBigBlind, PositionButton},
	4: {PositionSmallBlind, PositionBigBlind, PositionUnderTheGun, PositionButton},
	5: {PositionSmallBlind, PositionBigBlind, PositionUnderTheGun, PositionCutoff, PositionButton},
	6: {PositionSmallBlind, PositionBigBlind, PositionUnderTheGun, PositionMiddle, PositionCutoff, PositionButton},
}

// roleOrder returns the n roles in order of play starting from the small
// blind. Seven or more seats get numbered middle positions MP1..MP(n-5).
func roleOrder(n int) []Position {
	if roles, ok := shortHanded[n]; ok {
		return roles
	}
	roles := []Position{PositionSmallBlind, PositionBigBlind, PositionUnderTheGun}
	for i := 1; i <= n-5; i++ {
		roles = append(roles, Position(fmt.Sprintf("MP%d", i)))
	}
	return append(roles, PositionCutoff, PositionButton)
}

// AssignPositions returns the role of every seat, indexed by seat, for a
// table of n seats with the dealer button at seat button.
func AssignPositions(n, button int) ([]Position, error) {
	if n < 1 || n > MaxSeats {
		return nil, fmt.Errorf("%w: %d seats, want 1-%d", ErrInvalidConfig, n, MaxSeats)
	}
	if button < 0 || button >= n {
		return nil, fmt.Errorf("%w: button %d outside %d seats", ErrInvalidConfig, button, n)
	}

	switch n {
	case 1:
		return []Position{PositionButton}, nil
	case 2:
		out := make([]Position, 2)
		out[button] = PositionButtonSmall
		out[1-button] = PositionBigBlind
		return out, nil
	}

	roles := roleOrder(n)
	sb := smallBlindSeat(n, button)
	out := make([]Position, n)
	for seat := range out {
		out[seat] = roles[(seat-sb+n)%n]
	}
	return out, nil
}

// smallBlindSeat is the button itself heads-up, else the seat after it.
func smallBlindSeat(n, button int) int {
	if n <= 2 {
		return button
	}
	return (button + 1) % n
}

func bigBlindSeat(n, button int) int {
	return (smallBlindSeat(n, button) + 1) % n
}

// IsSmallBlind reports whether p posts the small blind.
func (p Position) IsSmallBlind() bool {
	return p == PositionSmallBlind || p == PositionButtonSmall
}
