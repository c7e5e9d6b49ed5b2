package game

import (
	"fmt"

	"github.com/lox/holdemref/poker"
)

// Street is one betting round of a hand.
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	switch s {
	case PreFlop:
		return "Pre-Flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	case Showdown:
		return "Showdown"
	default:
		return "Unknown"
	}
}

// Status is a player's standing in the current hand.
type Status int

const (
	StatusActive Status = iota
	StatusFolded
	StatusAllIn
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "all_in"
	default:
		return "unknown"
	}
}

// PlayerState is the engine's mutable record of one seat during a hand.
type PlayerState struct {
	Name      string
	Persona   string
	Seat      int
	Position  Position
	Stack     int
	Bet       int // chips put in on the current street
	Invested  int // chips put in over the whole hand, antes included
	Status    Status
	Acted     bool
	HoleCards []string
	Equity    float64

	hole []poker.Card
}

// TableState is the ledger of a single hand. It is owned by the engine and
// never shared with agents directly; they receive a View.
type TableState struct {
	HandID     string
	Street     Street
	Pot        int
	Community  []string
	MaxBet     int
	Cursor     int
	Button     int
	SmallBlind int
	BigBlind   int
	Ante       int
	Players    []*PlayerState
	History    []string

	board        []poker.Card
	initialTotal int
}

func newTableState(cfg HandConfig, positions []Position) *TableState {
	ts := &TableState{
		HandID:     cfg.HandID,
		Street:     PreFlop,
		Button:     cfg.Button,
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
		Ante:       cfg.Ante,
		Players:    make([]*PlayerState, len(cfg.Seats)),
	}
	for i, seat := range cfg.Seats {
		ts.Players[i] = &PlayerState{
			Name:     seat.Name,
			Persona:  seat.Persona,
			Seat:     i,
			Position: positions[i],
			Stack:    seat.Stack,
			Status:   StatusActive,
		}
		ts.initialTotal += seat.Stack
	}
	return ts
}

// commit moves amount chips from p's stack into the pot. streetBet is false
// for antes, which count toward the pot but not toward calling.
func (ts *TableState) commit(p *PlayerState, amount int, streetBet bool) {
	p.Stack -= amount
	p.Invested += amount
	if streetBet {
		p.Bet += amount
	}
	ts.Pot += amount
	if p.Stack == 0 && p.Status == StatusActive {
		p.Status = StatusAllIn
	}
}

func (ts *TableState) countUnfolded() int {
	n := 0
	for _, p := range ts.Players {
		if p.Status != StatusFolded {
			n++
		}
	}
	return n
}

func (ts *TableState) countActive() int {
	n := 0
	for _, p := range ts.Players {
		if p.Status == StatusActive {
			n++
		}
	}
	return n
}

// resolved reports whether the current street's betting is over.
func (ts *TableState) resolved() bool {
	if ts.countUnfolded() <= 1 {
		return true
	}
	// Holds vacuously when nobody is left to act.
	for _, p := range ts.Players {
		if p.Status == StatusActive && (!p.Acted || p.Bet != ts.MaxBet) {
			return false
		}
	}
	return true
}

func (ts *TableState) advanceCursor() {
	ts.Cursor = (ts.Cursor + 1) % len(ts.Players)
}

func (ts *TableState) logf(format string, args ...any) {
	ts.History = append(ts.History, fmt.Sprintf(format, args...))
}

// checkConservation verifies that no chips were created or destroyed.
func (ts *TableState) checkConservation() error {
	total := ts.Pot
	for _, p := range ts.Players {
		if p.Stack < 0 {
			return fmt.Errorf("%w: %s has negative stack %d", ErrChipConservation, p.Name, p.Stack)
		}
		total += p.Stack
	}
	if total != ts.initialTotal {
		return fmt.Errorf("%w: stacks+pot = %d, started with %d", ErrChipConservation, total, ts.initialTotal)
	}
	return nil
}

// PlayerView is the agent-visible copy of one seat.
type PlayerView struct {
	Name      string
	Persona   string
	Seat      int
	Position  Position
	Stack     int
	Bet       int
	Invested  int
	Status    Status
	Equity    float64
	HoleCards []string // only set for the acting player
}

// View is an immutable snapshot of the table handed to the acting agent.
// Nothing in it aliases engine state.
type View struct {
	HandID     string
	Street     Street
	Pot        int
	Community  []string
	MaxBet     int
	Button     int
	SmallBlind int
	BigBlind   int
	Ante       int
	Acting     int
	Players    []PlayerView
	History    []string
}

// View builds the snapshot shown to the player in seat acting.
func (ts *TableState) View(acting int) View {
	v := View{
		HandID:     ts.HandID,
		Street:     ts.Street,
		Pot:        ts.Pot,
		Community:  append([]string(nil), ts.Community...),
		MaxBet:     ts.MaxBet,
		Button:     ts.Button,
		SmallBlind: ts.SmallBlind,
		BigBlind:   ts.BigBlind,
		Ante:       ts.Ante,
		Acting:     acting,
		Players:    make([]PlayerView, len(ts.Players)),
		History:    append([]string(nil), ts.History...),
	}
	for i, p := range ts.Players {
		pv := PlayerView{
			Name:     p.Name,
			Persona:  p.Persona,
			Seat:     p.Seat,
			Position: p.Position,
			Stack:    p.Stack,
			Bet:      p.Bet,
			Invested: p.Invested,
			Status:   p.Status,
			Equity:   p.Equity,
		}
		if i == acting {
			pv.HoleCards = append([]string(nil), p.HoleCards...)
		}
		v.Players[i] = pv
	}
	return v
}

// Me returns the acting player's entry.
func (v View) Me() PlayerView {
	return v.Players[v.Acting]
}

// Owed is the amount the acting player must add to call.
func (v View) Owed() int {
	return max(0, v.MaxBet-v.Me().Bet)
}

// MinRaiseTo is the smallest legal raise target.
func (v View) MinRaiseTo() int {
	return v.MaxBet + v.BigBlind
}

// Opponents counts the other players still holding cards.
func (v View) Opponents() int {
	n := 0
	for i, p := range v.Players {
		if i != v.Acting && p.Status != StatusFolded {
			n++
		}
	}
	return n
}
