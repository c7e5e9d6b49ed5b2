package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/holdemref/internal/equity"
	"github.com/lox/holdemref/internal/handid"
	"github.com/lox/holdemref/internal/randutil"
	"github.com/lox/holdemref/poker"
	"github.com/rs/zerolog"
)

const (
	defaultEquityIterations = 2000
	maxActionsPerStreet     = 1000
)

// Seat is a player sitting down for a hand.
type Seat struct {
	Name    string
	Persona string
	Stack   int
}

// HandConfig describes one hand to play.
type HandConfig struct {
	HandID     string // generated when empty
	Seats      []Seat
	Button     int
	SmallBlind int
	BigBlind   int
	Ante       int
	// Deck, when set, is dealt from as is instead of a fresh shuffled deck.
	Deck *poker.Deck
}

// Validate checks that the hand can be dealt.
func (c HandConfig) Validate() error {
	if len(c.Seats) < 2 || len(c.Seats) > MaxSeats {
		return fmt.Errorf("%w: %d seats, want 2-%d", ErrInvalidConfig, len(c.Seats), MaxSeats)
	}
	if c.Button < 0 || c.Button >= len(c.Seats) {
		return fmt.Errorf("%w: button %d outside %d seats", ErrInvalidConfig, c.Button, len(c.Seats))
	}
	if c.BigBlind <= 0 || c.SmallBlind < 0 || c.SmallBlind > c.BigBlind || c.Ante < 0 {
		return fmt.Errorf("%w: blinds %d/%d ante %d", ErrInvalidConfig, c.SmallBlind, c.BigBlind, c.Ante)
	}
	names := make(map[string]struct{}, len(c.Seats))
	for i, s := range c.Seats {
		if s.Name == "" {
			return fmt.Errorf("%w: seat %d has no name", ErrInvalidConfig, i)
		}
		if _, dup := names[s.Name]; dup {
			return fmt.Errorf("%w: duplicate player %q", ErrInvalidConfig, s.Name)
		}
		names[s.Name] = struct{}{}
		if s.Stack <= 0 {
			return fmt.Errorf("%w: %s has no chips", ErrInvalidConfig, s.Name)
		}
	}
	return nil
}

// PotResult records how one pot layer was settled.
type PotResult struct {
	Amount      int            `json:"amount"`
	Eligible    []int          `json:"eligible"`
	Winners     []int          `json:"winners"`
	Shares      []int          `json:"shares"`
	Strength    poker.Strength `json:"strength,omitempty"`
	Uncontested bool           `json:"uncontested,omitempty"`
}

// PlayerResult is a seat's outcome.
type PlayerResult struct {
	Seat       int      `json:"seat"`
	Name       string   `json:"name"`
	Position   Position `json:"position"`
	StartStack int      `json:"start_stack"`
	EndStack   int      `json:"end_stack"`
	Net        int      `json:"net"`
	Folded     bool     `json:"folded,omitempty"`
	HoleCards  []string `json:"hole_cards"`
	BestHand   []string `json:"best_hand,omitempty"`
	HandName   string   `json:"hand_name,omitempty"`
}

// HandResult is everything that happened in a finished hand.
type HandResult struct {
	HandID    string         `json:"hand_id"`
	Button    int            `json:"button"`
	Board     []string       `json:"board"`
	Showdown  bool           `json:"showdown"`
	Pots      []PotResult    `json:"pots"`
	Players   []PlayerResult `json:"players"`
	Actions   []ActionRecord `json:"actions"`
	History   []string       `json:"history"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   time.Time      `json:"ended_at"`
}

// Engine referees hands. It holds no per-hand state, so one Engine can run
// hands for several tables concurrently.
type Engine struct {
	eval       *poker.Evaluator
	calc       *equity.Calculator
	agents     map[string]Agent
	logger     zerolog.Logger
	clock      quartz.Clock
	iterations int
	ids        *handid.Generator

	mu  sync.Mutex
	rng *rand.Rand
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithClock sets the clock used for hand timestamps and ids.
func WithClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithRand sets the random source for shuffling and equity sampling.
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) { e.rng = rng }
}

// WithEquityIterations sets the Monte Carlo iterations per equity refresh.
// Zero disables equity refreshes.
func WithEquityIterations(n int) EngineOption {
	return func(e *Engine) { e.iterations = n }
}

// NewEngine returns an engine that scores hands with eval, refreshes
// equities with calc (nil disables it) and asks agents, keyed by player
// name, for decisions.
func NewEngine(eval *poker.Evaluator, calc *equity.Calculator, agents map[string]Agent, opts ...EngineOption) *Engine {
	e := &Engine{
		eval:       eval,
		calc:       calc,
		agents:     agents,
		logger:     zerolog.Nop(),
		clock:      quartz.NewReal(),
		iterations: defaultEquityIterations,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		var seed int64
		e.rng, seed = randutil.NewFromTime()
		e.logger.Debug().Int64("seed", seed).Msg("Engine seeded from clock")
	}
	e.ids = handid.NewGenerator(e.clock, randutil.Derive(e.rng))
	e.logger = e.logger.With().Str("component", "engine").Logger()
	return e
}

// hand bundles the state of one PlayHand call.
type hand struct {
	ts      *TableState
	dealer  *dealer
	rng     *rand.Rand
	logger  zerolog.Logger
	actions []ActionRecord
}

// PlayHand plays one hand to completion. An error aborts only this hand;
// the engine remains usable.
func (e *Engine) PlayHand(ctx context.Context, cfg HandConfig) (*HandResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, s := range cfg.Seats {
		if e.agents[s.Name] == nil {
			return nil, fmt.Errorf("%w: no agent for %q", ErrInvalidConfig, s.Name)
		}
	}
	positions, err := AssignPositions(len(cfg.Seats), cfg.Button)
	if err != nil {
		return nil, err
	}
	if cfg.HandID == "" {
		cfg.HandID = e.ids.Next()
	}

	e.mu.Lock()
	rng := randutil.Derive(e.rng)
	e.mu.Unlock()

	deck := cfg.Deck
	if deck == nil {
		deck = poker.NewDeck(rng)
		deck.Shuffle()
	}

	ts := newTableState(cfg, positions)
	h := &hand{
		ts:     ts,
		dealer: &dealer{deck: deck, ts: ts},
		rng:    rng,
		logger: e.logger.With().Str("hand_id", cfg.HandID).Logger(),
	}
	started := e.clock.Now()
	h.logger.Debug().Int("players", len(cfg.Seats)).Int("button", cfg.Button).Msg("Hand starting")

	if err := e.play(ctx, h); err != nil {
		h.logger.Error().Err(err).Msg("Hand aborted")
		return nil, fmt.Errorf("hand %s: %w", cfg.HandID, err)
	}

	result, err := e.showdown(h)
	if err != nil {
		h.logger.Error().Err(err).Msg("Settlement failed")
		return nil, fmt.Errorf("hand %s: %w", cfg.HandID, err)
	}
	result.StartedAt = started
	result.EndedAt = e.clock.Now()

	h.logger.Info().
		Strs("board", result.Board).
		Bool("showdown", result.Showdown).
		Int("pots", len(result.Pots)).
		Msg("Hand complete")
	return result, nil
}

func (e *Engine) play(ctx context.Context, h *hand) error {
	ts := h.ts
	h.dealer.postForcedBets()
	if err := ts.checkConservation(); err != nil {
		return err
	}
	if err := h.dealer.dealHoleCards(); err != nil {
		return err
	}

	if err := e.playStreet(ctx, h, PreFlop); err != nil {
		return err
	}
	for _, step := range []struct {
		street Street
		cards  int
	}{{Flop, 3}, {Turn, 1}, {River, 1}} {
		if ts.countActive() < 2 {
			break
		}
		if err := h.dealer.dealCommunity(step.cards); err != nil {
			return err
		}
		if err := e.playStreet(ctx, h, step.street); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) playStreet(ctx context.Context, h *hand, street Street) error {
	ts := h.ts
	ts.Street = street
	for _, p := range ts.Players {
		p.Acted = false
	}
	if street != PreFlop {
		for _, p := range ts.Players {
			p.Bet = 0
		}
		ts.MaxBet = 0
		ts.Cursor = smallBlindSeat(len(ts.Players), ts.Button)
	}
	h.logger.Debug().Stringer("street", street).Strs("board", ts.Community).Int("pot", ts.Pot).Msg("Street starting")

	if err := e.refreshEquity(ctx, h); err != nil {
		return err
	}

	for steps := 0; !ts.resolved(); steps++ {
		if steps >= maxActionsPerStreet {
			return fmt.Errorf("%w: %s", ErrActionLimit, street)
		}
		p := ts.Players[ts.Cursor]
		if p.Status != StatusActive {
			p.Acted = true
			ts.advanceCursor()
			continue
		}

		decision, agentErr := e.agents[p.Name].Decide(ctx, ts.View(p.Seat))
		if err := ctx.Err(); err != nil {
			return err
		}
		kind, amount, clamp := normalise(p, ts.MaxBet, decision, agentErr)
		if clamp != "" {
			h.logger.Warn().
				Str("player", p.Name).
				Str("action", string(decision.Action)).
				Int("amount", decision.Amount).
				Str("reason", clamp).
				Msg("Agent decision clamped")
		}

		rec := ts.apply(p, kind, amount)
		rec.Requested = decision.Action
		rec.Reasoning = decision.Reasoning
		rec.Clamped = clamp
		h.actions = append(h.actions, rec)
		h.logger.Debug().
			Str("player", p.Name).
			Str("action", string(rec.Action)).
			Int("paid", rec.Paid).
			Int("bet_to", rec.BetTo).
			Int("pot", ts.Pot).
			Msg("Action applied")

		if err := ts.checkConservation(); err != nil {
			return err
		}
		ts.advanceCursor()
	}
	return nil
}

// refreshEquity recomputes every unfolded player's equity against the
// number of other unfolded players.
func (e *Engine) refreshEquity(ctx context.Context, h *hand) error {
	ts := h.ts
	var contenders []*PlayerState
	for _, p := range ts.Players {
		p.Equity = 0
		if p.Status != StatusFolded {
			contenders = append(contenders, p)
		}
	}
	if len(contenders) == 1 {
		contenders[0].Equity = 1
		return nil
	}
	if e.calc == nil || e.iterations <= 0 {
		return nil
	}

	holes := make([][]poker.Card, len(contenders))
	for i, p := range contenders {
		holes[i] = p.hole
	}
	eqs, err := e.calc.EstimateMany(ctx, holes, ts.board, e.iterations, h.rng)
	if err != nil {
		return fmt.Errorf("refresh equity: %w", err)
	}
	for i, p := range contenders {
		p.Equity = eqs[i]
	}
	return nil
}

// showdown deals out the board when needed, settles every pot layer and
// builds the result.
func (e *Engine) showdown(h *hand) (*HandResult, error) {
	ts := h.ts
	ts.Street = Showdown
	contested := ts.countUnfolded() >= 2
	if contested && len(ts.board) < 5 {
		if err := h.dealer.dealCommunity(5 - len(ts.board)); err != nil {
			return nil, err
		}
	}

	result := &HandResult{
		HandID:   ts.HandID,
		Button:   ts.Button,
		Board:    append([]string(nil), ts.Community...),
		Showdown: contested,
		Actions:  h.actions,
		Players:  make([]PlayerResult, len(ts.Players)),
	}

	strengths := make([]poker.Strength, len(ts.Players))
	contribs := make([]Contribution, len(ts.Players))
	for i, p := range ts.Players {
		contribs[i] = Contribution{Seat: p.Seat, Invested: p.Invested, Folded: p.Status == StatusFolded}
		result.Players[i] = PlayerResult{
			Seat:       p.Seat,
			Name:       p.Name,
			Position:   p.Position,
			StartStack: p.Stack + p.Invested,
			Folded:     p.Status == StatusFolded,
			HoleCards:  p.HoleCards,
		}
		if !contested || p.Status == StatusFolded {
			continue
		}
		seven := append(append(make([]poker.Card, 0, 7), p.hole...), ts.board...)
		best, score, err := e.eval.BestHand(seven)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", p.Name, err)
		}
		strengths[i] = score.Strength
		result.Players[i].BestHand = poker.CardStrings(best)
		result.Players[i].HandName = score.Strength.Category().String()
	}

	pots := ComputeSidePots(contribs)
	sum := 0
	for _, pot := range pots {
		sum += pot.Amount
	}
	if sum != ts.Pot {
		return nil, fmt.Errorf("%w: side pots total %d, pot is %d", ErrChipConservation, sum, ts.Pot)
	}

	for _, pot := range pots {
		pr := PotResult{Amount: pot.Amount, Eligible: pot.Eligible}
		switch len(pot.Eligible) {
		case 0:
			return nil, fmt.Errorf("%w: pot of %d has no eligible players", ErrChipConservation, pot.Amount)
		case 1:
			pr.Uncontested = true
			pr.Winners = []int{pot.Eligible[0]}
			pr.Shares = []int{pot.Amount}
		default:
			var top poker.Strength
			var winners []int
			for _, seat := range pot.Eligible {
				switch s := strengths[seat]; {
				case s > top:
					top, winners = s, []int{seat}
				case s == top:
					winners = append(winners, seat)
				}
			}
			pr.Strength = top
			pr.Winners, pr.Shares = splitPot(pot.Amount, winners, ts.Button, len(ts.Players))
		}

		for i, seat := range pr.Winners {
			p := ts.Players[seat]
			p.Stack += pr.Shares[i]
			ts.Pot -= pr.Shares[i]
			ts.logf("[%s] wins %d", p.Name, pr.Shares[i])
		}
		if err := ts.checkConservation(); err != nil {
			return nil, err
		}
		result.Pots = append(result.Pots, pr)
		h.logger.Debug().Int("amount", pr.Amount).Ints("winners", pr.Winners).Ints("shares", pr.Shares).Msg("Pot awarded")
	}
	if ts.Pot != 0 {
		return nil, fmt.Errorf("%w: %d chips left in pot after settlement", ErrChipConservation, ts.Pot)
	}

	for i, p := range ts.Players {
		result.Players[i].EndStack = p.Stack
		result.Players[i].Net = p.Stack - result.Players[i].StartStack
	}
	result.History = append([]string(nil), ts.History...)
	return result, nil
}
