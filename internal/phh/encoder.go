package phh

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lox/holdemref/internal/game"
	"github.com/lox/holdemref/internal/handlog"
	"github.com/lox/holdemref/poker"
)

// Encode writes a single hand as a PHH document.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}
	return toml.NewEncoder(w).Encode(hand)
}

// EncodeSection writes hand as the table [key], the layout of a .phhs file
// holding many hands.
func EncodeSection(w io.Writer, key string, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	return enc.Encode(map[string]*HandHistory{key: hand})
}

// FormatAction converts an applied action to its PHH string. player is the
// 1-based PHH player number.
func FormatAction(player int, rec game.ActionRecord) string {
	p := fmt.Sprintf("p%d", player)
	switch rec.Action {
	case game.ActionFold:
		return p + " f"
	case game.ActionCheck, game.ActionCall:
		return p + " cc"
	case game.ActionRaise:
		return fmt.Sprintf("%s cbr %d", p, rec.BetTo)
	default:
		return fmt.Sprintf("# %s %s %d", p, rec.Action, rec.BetTo)
	}
}

// ASCIICards joins cards into the compact two-letter form PHH uses, e.g.
// "AsKh".
func ASCIICards(cards []string) (string, error) {
	var b strings.Builder
	for _, s := range cards {
		c, err := poker.ParseCard(s)
		if err != nil {
			return "", fmt.Errorf("phh: %w", err)
		}
		b.WriteString(c.ASCII())
	}
	return b.String(), nil
}

// FromRecord converts a stored hand.
func FromRecord(rec handlog.Record) (*HandHistory, error) {
	n := len(rec.Players)
	if n < 2 {
		return nil, fmt.Errorf("phh: hand %s has %d players", rec.HandID, n)
	}

	// order[i] is the index into rec.Players of PHH player i+1.
	order := make([]int, 0, n)
	bySeat := make(map[int]int, n)
	for i := range n {
		idx := (rec.Button + 1 + i) % n
		order = append(order, idx)
		bySeat[rec.Players[idx].Seat] = len(order)
	}

	h := &HandHistory{
		Variant:           Variant,
		Table:             rec.Table,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            rec.BigBlind,
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Winnings:          make([]int, n),
		Players:           make([]string, n),
		HandID:            rec.HandID,
	}
	if !rec.StartedAt.IsZero() {
		t := rec.StartedAt.UTC()
		h.Time = t.Format("15:04:05")
		h.TimeZone = "UTC"
		h.Day, h.Month, h.Year = t.Day(), int(t.Month()), t.Year()
	}

	for i, idx := range order {
		p := rec.Players[idx]
		h.Seats[i] = p.Seat + 1
		h.Players[i] = p.Name
		h.StartingStacks[i] = p.StartStack
		h.FinishingStacks[i] = p.EndStack

		ante := min(rec.Ante, p.StartStack)
		h.Antes[i] = ante
		switch p.Position {
		case game.PositionSmallBlind, game.PositionButtonSmall:
			h.BlindsOrStraddles[i] = min(rec.SmallBlind, p.StartStack-ante)
		case game.PositionBigBlind:
			h.BlindsOrStraddles[i] = min(rec.BigBlind, p.StartStack-ante)
		}

		hole, err := ASCIICards(p.HoleCards)
		if err != nil {
			return nil, err
		}
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", i+1, hole))
	}

	for _, pot := range rec.Pots {
		for j, seat := range pot.Winners {
			h.Winnings[bySeat[seat]-1] += pot.Shares[j]
		}
	}

	street := game.PreFlop
	for _, a := range rec.Actions {
		for street < a.Street {
			street++
			if err := h.dealBoard(rec.Board, street); err != nil {
				return nil, err
			}
		}
		h.Actions = append(h.Actions, FormatAction(bySeat[a.Seat], a))
	}
	// All-in runouts deal the rest of the board without further action.
	for street < game.River && boardSize(street+1) <= len(rec.Board) {
		street++
		if err := h.dealBoard(rec.Board, street); err != nil {
			return nil, err
		}
	}

	if rec.Showdown {
		for i, idx := range order {
			p := rec.Players[idx]
			if p.Folded {
				continue
			}
			hole, err := ASCIICards(p.HoleCards)
			if err != nil {
				return nil, err
			}
			h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", i+1, hole))
		}
	}
	return h, nil
}

// boardSize is the number of community cards out once street is dealt.
func boardSize(street game.Street) int {
	switch street {
	case game.Flop:
		return 3
	case game.Turn:
		return 4
	case game.River, game.Showdown:
		return 5
	default:
		return 0
	}
}

func (h *HandHistory) dealBoard(board []string, street game.Street) error {
	from, to := boardSize(street-1), boardSize(street)
	if to > len(board) || from == to {
		return nil
	}
	cards, err := ASCIICards(board[from:to])
	if err != nil {
		return err
	}
	h.Actions = append(h.Actions, "d db "+cards)
	return nil
}
