package game

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/holdemref/internal/handid"
	"github.com/lox/holdemref/internal/randutil"
	"github.com/lox/holdemref/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeSeats(stack int) []Seat {
	return []Seat{{Name: "A", Stack: stack}, {Name: "B", Stack: stack}, {Name: "C", Stack: stack}}
}

func TestFoldToBigBlind(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, map[string]*scriptedAgent{
		"A": script("FOLD"),
		"B": script("FOLD"),
		"C": script(),
	})
	result, err := engine.PlayHand(t.Context(), HandConfig{
		Seats: threeSeats(1000), Button: 0, SmallBlind: 5, BigBlind: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"A": 1000, "B": 995, "C": 1005}, endStacks(result))
	assert.False(t, result.Showdown)
	assert.Empty(t, result.Board)
	require.Len(t, result.Pots, 1)
	assert.True(t, result.Pots[0].Uncontested)
	assert.Equal(t, []int{2}, result.Pots[0].Winners)
	assert.Contains(t, result.History, "[C] wins 15")
	assert.Empty(t, result.Players[2].BestHand, "uncontested hands are not shown down")
}

func TestFourWayAllInSidePots(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, map[string]*scriptedAgent{
		"A": script("CALL"),
		"B": script("CALL"),
		"C": script("CALL"),
		"D": script("RAISE 600"),
	})
	// Holes go out two per seat in order, then the board.
	deck := stackedDeck(t, "Ks Kh Jh Jd 3c 4h 3d 4s 2c 7d 9h Js Kd")
	result, err := engine.PlayHand(t.Context(), HandConfig{
		Seats: []Seat{
			{Name: "A", Stack: 100},
			{Name: "B", Stack: 300},
			{Name: "C", Stack: 600},
			{Name: "D", Stack: 600},
		},
		Button: 0, SmallBlind: 5, BigBlind: 10, Deck: deck,
	})
	require.NoError(t, err)

	assert.True(t, result.Showdown)
	assert.Equal(t, []string{"2♣", "7♦", "9♥", "J♠", "K♦"}, result.Board)
	assert.Equal(t, map[string]int{"A": 400, "B": 600, "C": 300, "D": 300}, endStacks(result))

	require.Len(t, result.Pots, 3)
	assert.Equal(t, 400, result.Pots[0].Amount)
	assert.Equal(t, []int{0, 1, 2, 3}, result.Pots[0].Eligible)
	assert.Equal(t, []int{0}, result.Pots[0].Winners)
	assert.Equal(t, 600, result.Pots[1].Amount)
	assert.Equal(t, []int{1}, result.Pots[1].Winners)
	assert.Equal(t, 600, result.Pots[2].Amount)
	assert.Equal(t, []int{2, 3}, result.Pots[2].Winners)
	assert.Equal(t, []int{300, 300}, result.Pots[2].Shares)

	assert.Equal(t, "Three of a Kind", result.Players[0].HandName)
	for _, p := range result.Players {
		assert.Len(t, p.BestHand, 5, p.Name)
	}
}

func TestAgentErrorFallsBack(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, map[string]*scriptedAgent{
		"A": script("ERROR"),
		"B": script("ERROR"),
		"C": script(),
	})
	result, err := engine.PlayHand(t.Context(), HandConfig{
		Seats: threeSeats(500), Button: 0, SmallBlind: 5, BigBlind: 10,
	})
	require.NoError(t, err)

	require.Len(t, result.Actions, 2)
	for _, a := range result.Actions {
		assert.Equal(t, ActionFold, a.Action)
		assert.Contains(t, a.Clamped, errScripted.Error())
	}
	assert.Equal(t, map[string]int{"A": 500, "B": 495, "C": 505}, endStacks(result))
}

func TestInvalidDecisionsAreClamped(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, map[string]*scriptedAgent{
		"A": script("SHOVE"),
		"B": script("CALL"),
		"C": script("FOLD"),
	})
	result, err := engine.PlayHand(t.Context(), HandConfig{
		Seats: threeSeats(500), Button: 0, SmallBlind: 5, BigBlind: 10,
	})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(result.Actions), 3)
	assert.Equal(t, ActionKind("SHOVE"), result.Actions[0].Requested)
	assert.Equal(t, ActionFold, result.Actions[0].Action)
	// The big blind owes nothing, so its fold becomes a check.
	assert.Equal(t, ActionFold, result.Actions[2].Requested)
	assert.Equal(t, ActionCheck, result.Actions[2].Action)
	assert.NotEmpty(t, result.Actions[2].Clamped)
}

func TestViewHidesOpponentHoleCards(t *testing.T) {
	t.Parallel()

	a, b := script(), script()
	engine := newTestEngine(t, map[string]*scriptedAgent{"A": a, "B": b})
	_, err := engine.PlayHand(t.Context(), HandConfig{
		Seats:  []Seat{{Name: "A", Stack: 200}, {Name: "B", Stack: 200}},
		Button: 0, SmallBlind: 5, BigBlind: 10,
	})
	require.NoError(t, err)

	for name, agent := range map[string]*scriptedAgent{"A": a, "B": b} {
		views := agent.seen()
		require.NotEmpty(t, views, name)
		for _, v := range views {
			assert.Equal(t, name, v.Me().Name)
			assert.Len(t, v.Me().HoleCards, 2)
			for i, p := range v.Players {
				if i != v.Acting {
					assert.Nil(t, p.HoleCards, "%s saw %s's cards", name, p.Name)
				}
			}
		}
	}
}

func TestViewIsACopy(t *testing.T) {
	t.Parallel()

	var first View
	tamper := AgentFunc(func(_ context.Context, v View) (Decision, error) {
		if first.HandID == "" {
			first = v
			v.Players[0].Stack = 1_000_000
			v.Community = append(v.Community, "A♠")
			v.History[0] = "tampered"
		}
		return Decision{Action: ActionCall}, nil
	})
	engine := NewEngine(evaluator(t), nil, map[string]Agent{"A": tamper, "B": tamper},
		WithRand(randutil.New(3)), WithEquityIterations(0))

	result, err := engine.PlayHand(t.Context(), HandConfig{
		Seats:  []Seat{{Name: "A", Stack: 100}, {Name: "B", Stack: 100}},
		Button: 0, SmallBlind: 5, BigBlind: 10,
	})
	require.NoError(t, err)
	assert.Len(t, result.Board, 5)
	assert.NotEqual(t, "tampered", result.History[0])
	assert.Equal(t, 200, result.Players[0].EndStack+result.Players[1].EndStack)
}

func TestRaiseReopensBetting(t *testing.T) {
	t.Parallel()

	a := script("CALL", "CALL")
	engine := newTestEngine(t, map[string]*scriptedAgent{
		"A": a,
		"B": script("CALL", "FOLD"),
		"C": script("RAISE 40"),
	})
	result, err := engine.PlayHand(t.Context(), HandConfig{
		Seats: threeSeats(1000), Button: 0, SmallBlind: 5, BigBlind: 10,
	})
	require.NoError(t, err)

	var preflop []ActionRecord
	for _, rec := range result.Actions {
		if rec.Street == PreFlop {
			preflop = append(preflop, rec)
		}
	}
	require.Len(t, preflop, 5)
	assert.Equal(t, []string{"A", "B", "C", "A", "B"}, []string{
		preflop[0].Player, preflop[1].Player, preflop[2].Player, preflop[3].Player, preflop[4].Player,
	})
	assert.Equal(t, ActionRaise, preflop[2].Action)
	assert.Equal(t, 40, preflop[2].BetTo)
	assert.Equal(t, 30, preflop[3].Paid)
	assert.Equal(t, ActionFold, preflop[4].Action)

	assert.Equal(t, 990, endStacks(result)["B"])
	assert.Equal(t, 3000, sumStacks(result))
	assert.True(t, result.Showdown)
}

func TestShortBigBlind(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, map[string]*scriptedAgent{
		"A": script(), "B": script(), "C": script(),
	})
	result, err := engine.PlayHand(t.Context(), HandConfig{
		Seats:  []Seat{{Name: "A", Stack: 100}, {Name: "B", Stack: 100}, {Name: "C", Stack: 4}},
		Button: 0, SmallBlind: 5, BigBlind: 10,
	})
	require.NoError(t, err)

	assert.Contains(t, result.History, "[C] posts big blind 4")
	assert.Equal(t, 10, result.Actions[0].BetTo, "the bet to call stays at the big blind")
	require.Len(t, result.Pots, 2)
	assert.Equal(t, 12, result.Pots[0].Amount)
	assert.Equal(t, []int{0, 1, 2}, result.Pots[0].Eligible)
	assert.Equal(t, 12, result.Pots[1].Amount)
	assert.Equal(t, []int{0, 1}, result.Pots[1].Eligible)
	assert.Equal(t, 204, sumStacks(result))
}

func TestAnteCanPutPlayerAllIn(t *testing.T) {
	t.Parallel()

	a := script()
	engine := newTestEngine(t, map[string]*scriptedAgent{"A": a, "B": script(), "C": script()})
	result, err := engine.PlayHand(t.Context(), HandConfig{
		Seats:  []Seat{{Name: "A", Stack: 10}, {Name: "B", Stack: 200}, {Name: "C", Stack: 200}},
		Button: 0, SmallBlind: 5, BigBlind: 10, Ante: 10,
	})
	require.NoError(t, err)

	assert.Empty(t, a.seen(), "an all-in player is never asked to act")
	assert.Contains(t, result.History, "[A] posts ante 10")
	require.Len(t, result.Pots, 2)
	assert.Equal(t, 30, result.Pots[0].Amount)
	assert.Equal(t, []int{0, 1, 2}, result.Pots[0].Eligible)
	assert.Equal(t, 20, result.Pots[1].Amount)
	assert.Equal(t, []int{1, 2}, result.Pots[1].Eligible)
	assert.Equal(t, 410, sumStacks(result))
}

func TestHeadsUpButtonActsFirstEveryStreet(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, map[string]*scriptedAgent{"A": script(), "B": script()})
	result, err := engine.PlayHand(t.Context(), HandConfig{
		Seats:  []Seat{{Name: "A", Stack: 100}, {Name: "B", Stack: 100}},
		Button: 0, SmallBlind: 5, BigBlind: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, PositionButtonSmall, result.Players[0].Position)
	assert.Equal(t, PositionBigBlind, result.Players[1].Position)

	first := map[Street]int{}
	for _, rec := range result.Actions {
		if _, ok := first[rec.Street]; !ok {
			first[rec.Street] = rec.Seat
		}
	}
	assert.Equal(t, map[Street]int{PreFlop: 0, Flop: 0, Turn: 0, River: 0}, first)
	assert.Equal(t, 5, result.Actions[0].Paid, "the button completes the small blind")
	assert.True(t, result.Showdown)
}

func TestPlayHandRejectsBadConfig(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, map[string]*scriptedAgent{"A": script(), "B": script()})
	two := []Seat{{Name: "A", Stack: 100}, {Name: "B", Stack: 100}}

	tests := []struct {
		name string
		cfg  HandConfig
	}{
		{"one seat", HandConfig{Seats: two[:1], BigBlind: 10}},
		{"button out of range", HandConfig{Seats: two, Button: 2, BigBlind: 10}},
		{"no big blind", HandConfig{Seats: two}},
		{"small above big", HandConfig{Seats: two, SmallBlind: 20, BigBlind: 10}},
		{"negative ante", HandConfig{Seats: two, BigBlind: 10, Ante: -1}},
		{"duplicate names", HandConfig{Seats: []Seat{two[0], two[0]}, BigBlind: 10}},
		{"empty stack", HandConfig{Seats: []Seat{two[0], {Name: "B"}}, BigBlind: 10}},
		{"unknown agent", HandConfig{Seats: []Seat{two[0], {Name: "Z", Stack: 100}}, BigBlind: 10}},
	}
	for _, tt := range tests {
		_, err := engine.PlayHand(t.Context(), tt.cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig, tt.name)
	}
}

func TestPlayHandShortDeck(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, map[string]*scriptedAgent{"A": script(), "B": script()})
	_, err := engine.PlayHand(t.Context(), HandConfig{
		Seats:  []Seat{{Name: "A", Stack: 100}, {Name: "B", Stack: 100}},
		Button: 0, SmallBlind: 5, BigBlind: 10,
		Deck: stackedDeck(t, "As Ah Ks Kh 2c"),
	})
	assert.ErrorIs(t, err, poker.ErrInsufficientCards)
}

func TestPlayHandCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	quit := AgentFunc(func(context.Context, View) (Decision, error) {
		cancel()
		return Decision{Action: ActionCall}, nil
	})
	engine := NewEngine(evaluator(t), nil, map[string]Agent{"A": quit, "B": quit}, WithRand(randutil.New(1)))

	_, err := engine.PlayHand(ctx, HandConfig{
		Seats:  []Seat{{Name: "A", Stack: 100}, {Name: "B", Stack: 100}},
		Button: 0, SmallBlind: 5, BigBlind: 10,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestActionLimit(t *testing.T) {
	t.Parallel()

	raiser := AgentFunc(func(context.Context, View) (Decision, error) {
		return Decision{Action: ActionRaise}, nil
	})
	engine := NewEngine(evaluator(t), nil, map[string]Agent{"A": raiser, "B": raiser},
		WithRand(randutil.New(1)), WithEquityIterations(0))

	_, err := engine.PlayHand(t.Context(), HandConfig{
		Seats:  []Seat{{Name: "A", Stack: 1_000_000}, {Name: "B", Stack: 1_000_000}},
		Button: 0, SmallBlind: 1, BigBlind: 2,
	})
	assert.ErrorIs(t, err, ErrActionLimit)
}

func TestEquityShownToAgents(t *testing.T) {
	t.Parallel()

	a, b := script(), script()
	engine := newTestEngine(t, map[string]*scriptedAgent{"A": a, "B": b}, WithEquityIterations(300))
	_, err := engine.PlayHand(t.Context(), HandConfig{
		Seats:  []Seat{{Name: "A", Stack: 100}, {Name: "B", Stack: 100}},
		Button: 0, SmallBlind: 5, BigBlind: 10,
	})
	require.NoError(t, err)

	v := a.seen()[0]
	for _, p := range v.Players {
		assert.Greater(t, p.Equity, 0.0, p.Name)
		assert.LessOrEqual(t, p.Equity, 1.0, p.Name)
	}
}

func TestEngineSeededReproducibly(t *testing.T) {
	t.Parallel()

	play := func() *HandResult {
		engine := newTestEngine(t, map[string]*scriptedAgent{"A": script(), "B": script(), "C": script()})
		result, err := engine.PlayHand(t.Context(), HandConfig{
			HandID: "fixed", Seats: threeSeats(300), Button: 1, SmallBlind: 5, BigBlind: 10,
		})
		require.NoError(t, err)
		return result
	}
	r1, r2 := play(), play()
	assert.Equal(t, r1.Board, r2.Board)
	assert.Equal(t, r1.Players, r2.Players)
	assert.Equal(t, r1.History, r2.History)
}

func TestHandIDAndTimestamps(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	start := time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC)
	clock.Set(start)

	engine := newTestEngine(t, map[string]*scriptedAgent{"A": script("FOLD"), "B": script()}, WithClock(clock))
	result, err := engine.PlayHand(t.Context(), HandConfig{
		Seats:  []Seat{{Name: "A", Stack: 100}, {Name: "B", Stack: 100}},
		Button: 0, SmallBlind: 5, BigBlind: 10,
	})
	require.NoError(t, err)

	require.NoError(t, handid.Validate(result.HandID))
	issued, err := handid.Time(result.HandID)
	require.NoError(t, err)
	assert.True(t, issued.Equal(start))
	assert.Equal(t, start, result.StartedAt)
	assert.Equal(t, start, result.EndedAt)
}

func TestEngineConcurrentHands(t *testing.T) {
	t.Parallel()

	agents := map[string]Agent{}
	for _, name := range []string{"A", "B", "C"} {
		agents[name] = AgentFunc(func(context.Context, View) (Decision, error) {
			return Decision{Action: ActionCall}, nil
		})
	}
	engine := NewEngine(evaluator(t), nil, agents, WithRand(randutil.New(9)), WithEquityIterations(0))

	errs := make(chan error, 8)
	for range 8 {
		go func() {
			_, err := engine.PlayHand(context.Background(), HandConfig{
				Seats: threeSeats(100), Button: 0, SmallBlind: 1, BigBlind: 2,
			})
			errs <- err
		}()
	}
	for range 8 {
		assert.NoError(t, <-errs)
	}
}

func sumStacks(r *HandResult) int {
	total := 0
	for _, p := range r.Players {
		total += p.EndStack
	}
	return total
}
