// Package statistics tracks per-player results over a session in big blinds.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/holdemref/internal/game"
)

// bigPotBB is the pot size, in big blinds, above which a hand counts as a
// big pot.
const bigPotBB = 50

// PositionStats tracks results from one table position.
type PositionStats struct {
	Hands int
	SumBB float64
}

// Statistics accumulates one player's results.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // sum of squares for the variance
	Values []float64 // every result, for median and percentiles

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64

	Positions map[game.Position]*PositionStats

	MaxPotBB  float64
	BigPots   int
	BigPotsBB float64
}

// Result is one player's outcome in one hand.
type Result struct {
	NetBB    float64
	Showdown bool
	Position game.Position
	PotBB    float64
}

// Mean returns the arithmetic mean of all results in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// BBPer100 is the win rate in big blinds per hundred hands.
func (s *Statistics) BBPer100() float64 {
	return 100 * s.Mean()
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates one hand.
func (s *Statistics) Add(r Result) {
	s.Hands++
	s.SumBB += r.NetBB
	s.SumBB2 += r.NetBB * r.NetBB
	s.Values = append(s.Values, r.NetBB)

	if r.Showdown {
		s.ShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.NonShowdownWins++
		}
	}

	if s.Positions == nil {
		s.Positions = make(map[game.Position]*PositionStats)
	}
	ps := s.Positions[r.Position]
	if ps == nil {
		ps = &PositionStats{}
		s.Positions[r.Position] = ps
	}
	ps.Hands++
	ps.SumBB += r.NetBB

	s.MaxPotBB = max(s.MaxPotBB, r.PotBB)
	if r.PotBB >= bigPotBB {
		s.BigPots++
		s.BigPotsBB += r.NetBB
	}
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// interpolating between neighbours.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), s.Values...)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result from one position.
func (s *Statistics) PositionMean(p game.Position) float64 {
	ps := s.Positions[p]
	if ps == nil || ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// Validate checks the internal accounting.
func (s *Statistics) Validate() error {
	if math.Abs(s.SumBB-s.ShowdownBB-s.NonShowdownBB) > 1e-6 {
		return fmt.Errorf("ledger mismatch: total=%.6f, showdown=%.6f, non-showdown=%.6f",
			s.SumBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	positionHands := 0
	for _, ps := range s.Positions {
		positionHands += ps.Hands
	}
	if positionHands != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)", positionHands, s.Hands)
	}
	return nil
}

// Tracker keeps Statistics for every player at a table.
type Tracker struct {
	bigBlind int
	players  map[string]*Statistics
}

// NewTracker measures results in units of bigBlind chips.
func NewTracker(bigBlind int) *Tracker {
	return &Tracker{bigBlind: max(bigBlind, 1), players: make(map[string]*Statistics)}
}

// Record adds every dealt-in player's result from a hand.
func (t *Tracker) Record(r *game.HandResult) {
	pot := 0
	for _, p := range r.Pots {
		pot += p.Amount
	}
	bb := float64(t.bigBlind)
	for _, p := range r.Players {
		s := t.players[p.Name]
		if s == nil {
			s = &Statistics{}
			t.players[p.Name] = s
		}
		s.Add(Result{
			NetBB:    float64(p.Net) / bb,
			Showdown: r.Showdown && !p.Folded,
			Position: p.Position,
			PotBB:    float64(pot) / bb,
		})
	}
}

// Player returns the statistics for name, or nil if they never played.
func (t *Tracker) Player(name string) *Statistics {
	return t.players[name]
}

// Names lists tracked players in sorted order.
func (t *Tracker) Names() []string {
	names := make([]string, 0, len(t.players))
	for name := range t.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
