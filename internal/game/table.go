package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// TableConfig holds the stakes of a table session.
type TableConfig struct {
	SmallBlind int
	BigBlind   int
	Ante       int
	Button     int
}

// Table runs consecutive hands for a fixed set of seats, carrying stacks
// from hand to hand and moving the button. Busted seats sit out.
type Table struct {
	engine *Engine
	seats  []Seat
	cfg    TableConfig
	button int
	played int
	logger zerolog.Logger
}

// NewTable seats players for a session.
func NewTable(engine *Engine, seats []Seat, cfg TableConfig) (*Table, error) {
	if len(seats) < 2 || len(seats) > MaxSeats {
		return nil, fmt.Errorf("%w: %d seats, want 2-%d", ErrInvalidConfig, len(seats), MaxSeats)
	}
	if cfg.Button < 0 || cfg.Button >= len(seats) {
		return nil, fmt.Errorf("%w: button %d outside %d seats", ErrInvalidConfig, cfg.Button, len(seats))
	}
	t := &Table{
		engine: engine,
		seats:  append([]Seat(nil), seats...),
		cfg:    cfg,
		button: cfg.Button,
		logger: engine.logger.With().Str("component", "table").Logger(),
	}
	if t.seats[t.button].Stack <= 0 {
		t.button = t.nextLive(t.button)
	}
	return t, nil
}

// PlayHand plays the next hand with the current stacks and moves the button.
// A failed hand leaves stacks and the button untouched.
func (t *Table) PlayHand(ctx context.Context) (*HandResult, error) {
	var live []int
	buttonIdx := 0
	for i, s := range t.seats {
		if s.Stack <= 0 {
			continue
		}
		if i == t.button {
			buttonIdx = len(live)
		}
		live = append(live, i)
	}
	if len(live) < 2 {
		return nil, ErrTableFinished
	}

	cfg := HandConfig{
		Button:     buttonIdx,
		SmallBlind: t.cfg.SmallBlind,
		BigBlind:   t.cfg.BigBlind,
		Ante:       t.cfg.Ante,
	}
	for _, i := range live {
		cfg.Seats = append(cfg.Seats, t.seats[i])
	}

	result, err := t.engine.PlayHand(ctx, cfg)
	if err != nil {
		return nil, err
	}
	for _, pr := range result.Players {
		t.seats[live[pr.Seat]].Stack = pr.EndStack
	}
	t.played++
	t.button = t.nextLive(t.button)

	t.logger.Debug().Int("hands", t.played).Interface("stacks", t.Stacks()).Msg("Stacks updated")
	return result, nil
}

// nextLive returns the next seat after from that still has chips.
func (t *Table) nextLive(from int) int {
	for step := 1; step <= len(t.seats); step++ {
		i := (from + step) % len(t.seats)
		if t.seats[i].Stack > 0 {
			return i
		}
	}
	return from
}

// Stacks returns the current chip count of every seat by name.
func (t *Table) Stacks() map[string]int {
	out := make(map[string]int, len(t.seats))
	for _, s := range t.seats {
		out[s.Name] = s.Stack
	}
	return out
}

// Seats returns a copy of the seats in order.
func (t *Table) Seats() []Seat {
	return append([]Seat(nil), t.seats...)
}

// HandsPlayed returns the number of completed hands.
func (t *Table) HandsPlayed() int {
	return t.played
}

// Live reports how many seats still have chips.
func (t *Table) Live() int {
	n := 0
	for _, s := range t.seats {
		if s.Stack > 0 {
			n++
		}
	}
	return n
}
