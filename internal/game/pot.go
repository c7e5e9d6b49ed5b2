package game

import "sort"

// Contribution is one seat's input to side-pot computation.
type Contribution struct {
	Seat     int
	Invested int
	Folded   bool
}

// SidePot is one layer of the pot and the seats that can win it.
type SidePot struct {
	Amount   int   `json:"amount"`
	Eligible []int `json:"eligible"`
}

// ComputeSidePots layers the pot by the distinct amounts invested by
// players still holding cards. The first pot is the main pot. Each layer
// takes every player's marginal contribution at that level, and only
// unfolded players who reached the level are eligible. Chips folded players
// put in above the top level are added to the last layer, so the pots always
// sum to the total invested.
func ComputeSidePots(contribs []Contribution) []SidePot {
	levelSet := make(map[int]struct{})
	total := 0
	for _, c := range contribs {
		total += c.Invested
		if !c.Folded && c.Invested > 0 {
			levelSet[c.Invested] = struct{}{}
		}
	}
	if len(levelSet) == 0 {
		if total == 0 {
			return nil
		}
		return []SidePot{{Amount: total}}
	}

	levels := make([]int, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	remaining := make([]int, len(contribs))
	for i, c := range contribs {
		remaining[i] = c.Invested
	}

	var pots []SidePot
	prev := 0
	for _, level := range levels {
		marginal := level - prev
		pot := SidePot{}
		for i, c := range contribs {
			take := min(marginal, remaining[i])
			remaining[i] -= take
			pot.Amount += take
			if !c.Folded && c.Invested >= level {
				pot.Eligible = append(pot.Eligible, c.Seat)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = level
	}

	residue := 0
	for _, r := range remaining {
		residue += r
	}
	pots[len(pots)-1].Amount += residue
	return pots
}

// oddChipOrder sorts winners clockwise starting with the first seat left of
// the button, the order in which odd chips are handed out.
func oddChipOrder(winners []int, button, seats int) []int {
	out := append([]int(nil), winners...)
	dist := func(seat int) int { return (seat - button - 1 + seats) % seats }
	sort.Slice(out, func(i, j int) bool { return dist(out[i]) < dist(out[j]) })
	return out
}

// splitPot divides amount among winners, giving leftover chips one at a time
// in odd-chip order. The result is parallel to the ordered winners.
func splitPot(amount int, winners []int, button, seats int) (ordered []int, shares []int) {
	ordered = oddChipOrder(winners, button, seats)
	shares = make([]int, len(ordered))
	base, odd := amount/len(ordered), amount%len(ordered)
	for i := range shares {
		shares[i] = base
		if i < odd {
			shares[i]++
		}
	}
	return ordered, shares
}
