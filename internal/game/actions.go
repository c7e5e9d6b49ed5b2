package game

import "fmt"

// ActionRecord is one applied action as it ended up on the table.
type ActionRecord struct {
	Street    Street     `json:"street"`
	Seat      int        `json:"seat"`
	Player    string     `json:"player"`
	Requested ActionKind `json:"requested,omitempty"`
	Action    ActionKind `json:"action"`
	Paid      int        `json:"paid"`
	BetTo     int        `json:"bet_to"`
	AllIn     bool       `json:"all_in,omitempty"`
	Reasoning string     `json:"reasoning,omitempty"`
	Clamped   string     `json:"clamped,omitempty"`
}

// normalise turns whatever the agent produced into a legal action kind and
// amount. clamp explains any substitution and is empty when the decision was
// taken as given.
func normalise(p *PlayerState, maxBet int, d Decision, agentErr error) (kind ActionKind, amount int, clamp string) {
	owed := maxBet - p.Bet
	fallback := func(reason string) (ActionKind, int, string) {
		if owed <= 0 {
			return ActionCheck, 0, reason + "; checking"
		}
		return ActionFold, 0, reason + "; folding"
	}

	if agentErr != nil {
		return fallback(fmt.Sprintf("agent error: %v", agentErr))
	}
	kind, err := ParseAction(string(d.Action))
	if err != nil {
		return fallback(err.Error())
	}
	if kind != ActionRaise {
		// Only a raise carries an amount.
		if kind == ActionFold && owed <= 0 {
			return ActionCheck, 0, "fold with nothing owed; checking"
		}
		return kind, 0, ""
	}
	if d.Amount < 0 {
		return fallback(fmt.Sprintf("negative amount %d", d.Amount))
	}
	return kind, d.Amount, ""
}

// apply executes a normalised action for p and returns what happened.
func (ts *TableState) apply(p *PlayerState, kind ActionKind, amount int) ActionRecord {
	rec := ActionRecord{Street: ts.Street, Seat: p.Seat, Player: p.Name, Action: kind}
	p.Acted = true

	switch kind {
	case ActionFold:
		p.Status = StatusFolded
		ts.logf("[%s] folds", p.Name)

	case ActionCheck, ActionCall:
		owed := ts.MaxBet - p.Bet
		if owed <= 0 {
			rec.Action = ActionCheck
			ts.logf("[%s] checks", p.Name)
			break
		}
		rec.Action = ActionCall
		rec.Paid = min(owed, p.Stack)
		ts.commit(p, rec.Paid, true)
		if p.Status == StatusAllIn {
			ts.logf("[%s] calls all-in for %d", p.Name, rec.Paid)
		} else {
			ts.logf("[%s] calls %d", p.Name, rec.Paid)
		}

	case ActionRaise:
		target := max(amount, ts.MaxBet+ts.BigBlind)
		rec.Paid = min(target-p.Bet, p.Stack)
		ts.commit(p, rec.Paid, true)
		if p.Bet <= ts.MaxBet {
			// Could not out-raise the table: a capped call.
			rec.Action = ActionCall
			ts.logf("[%s] raise capped to all-in call of %d", p.Name, rec.Paid)
			break
		}
		ts.MaxBet = p.Bet
		for _, other := range ts.Players {
			if other != p && other.Status == StatusActive {
				other.Acted = false
			}
		}
		if p.Status == StatusAllIn {
			ts.logf("[%s] raises all-in to %d", p.Name, p.Bet)
		} else {
			ts.logf("[%s] raises to %d", p.Name, p.Bet)
		}
	}

	rec.BetTo = p.Bet
	rec.AllIn = p.Status == StatusAllIn
	return rec
}
