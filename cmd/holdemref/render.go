package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/holdemref/internal/game"
	"github.com/lox/holdemref/internal/statistics"
	"github.com/lox/holdemref/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	redCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	blackCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// renderCard colours a card by suit. Unparseable text is shown as is.
func renderCard(s string) string {
	c, err := poker.ParseCard(s)
	if err != nil {
		return s
	}
	if c.Suit().IsRed() {
		return redCardStyle.Render(c.String())
	}
	return blackCardStyle.Render(c.String())
}

func renderCards(cards []string) string {
	if len(cards) == 0 {
		return dimStyle.Render("--")
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = renderCard(c)
	}
	return strings.Join(out, " ")
}

func renderNet(n int) string {
	switch {
	case n > 0:
		return winStyle.Render(fmt.Sprintf("+%d", n))
	case n < 0:
		return lossStyle.Render(fmt.Sprintf("%d", n))
	}
	return dimStyle.Render("0")
}

// writeHand prints a one-hand summary: the board, each player's cards and
// result, and how the pots were split.
func writeHand(w io.Writer, number int, r *game.HandResult) {
	fmt.Fprintf(w, "%s %s  board %s\n",
		headerStyle.Render(fmt.Sprintf("Hand #%d", number)),
		dimStyle.Render(r.HandID),
		renderCards(r.Board))

	for _, p := range r.Players {
		line := fmt.Sprintf("  %-7s %-10s %s  %6s", p.Position, p.Name, renderCards(p.HoleCards), renderNet(p.Net))
		switch {
		case p.Folded:
			line += dimStyle.Render("  folded")
		case p.HandName != "":
			line += "  " + categoryStyle.Render(p.HandName) + " " + renderCards(p.BestHand)
		}
		fmt.Fprintln(w, line)
	}

	for i, pot := range r.Pots {
		label := "main pot"
		if i > 0 {
			label = fmt.Sprintf("side pot %d", i)
		}
		winners := make([]string, len(pot.Winners))
		for j, seat := range pot.Winners {
			winners[j] = fmt.Sprintf("%s %d", r.Players[seat].Name, pot.Shares[j])
		}
		fmt.Fprintf(w, "  %s %d -> %s\n", dimStyle.Render(label), pot.Amount, strings.Join(winners, ", "))
	}
}

// writeStandings prints stacks from biggest to smallest.
func writeStandings(w io.Writer, hands int, stacks map[string]int, start map[string]int, stats *statistics.Tracker) {
	names := make([]string, 0, len(stacks))
	for name := range stacks {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if stacks[names[i]] != stacks[names[j]] {
			return stacks[names[i]] > stacks[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Fprintf(w, "\n%s after %d hands\n", headerStyle.Render("Standings"), hands)
	for i, name := range names {
		fmt.Fprintf(w, "  %2d. %-10s %8d  %s", i+1, name, stacks[name], renderNet(stacks[name]-start[name]))
		if s := stats.Player(name); s != nil && s.Hands > 0 {
			lo, hi := s.ConfidenceInterval95()
			fmt.Fprintf(w, "  %s", dimStyle.Render(fmt.Sprintf("%+.1f bb/100 [%+.1f, %+.1f]  won %d (%d at showdown)",
				s.BBPer100(), 100*lo, 100*hi, s.ShowdownWins+s.NonShowdownWins, s.ShowdownWins)))
		}
		fmt.Fprintln(w)
	}
}
