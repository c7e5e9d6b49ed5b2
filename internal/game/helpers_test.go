package game

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/lox/holdemref/internal/equity"
	"github.com/lox/holdemref/internal/randutil"
	"github.com/lox/holdemref/poker"
	"github.com/stretchr/testify/require"
)

var (
	evalOnce sync.Once
	testEval *poker.Evaluator
	evalErr  error
)

func evaluator(t testing.TB) *poker.Evaluator {
	t.Helper()
	evalOnce.Do(func() {
		var table *poker.LookupTable
		table, evalErr = poker.BuildLookupTable()
		if evalErr == nil {
			testEval, evalErr = poker.NewEvaluator(table)
		}
	})
	require.NoError(t, evalErr)
	return testEval
}

var errScripted = errors.New("scripted failure")

// scriptedAgent replays decisions written as "RAISE 60", "CALL", "FOLD",
// "ERROR" (returns an error) or any other token verbatim. Once the script
// runs out it calls.
type scriptedAgent struct {
	mu     sync.Mutex
	script []string
	views  []View
}

func script(steps ...string) *scriptedAgent {
	return &scriptedAgent{script: steps}
}

func (a *scriptedAgent) Decide(_ context.Context, view View) (Decision, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.views = append(a.views, view)
	if len(a.script) == 0 {
		return Decision{Action: ActionCall}, nil
	}
	step := a.script[0]
	a.script = a.script[1:]

	fields := strings.Fields(step)
	if fields[0] == "ERROR" {
		return Decision{}, errScripted
	}
	d := Decision{Action: ActionKind(fields[0]), Reasoning: "scripted"}
	if len(fields) > 1 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return Decision{}, err
		}
		d.Amount = n
	}
	return d, nil
}

func (a *scriptedAgent) seen() []View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]View(nil), a.views...)
}

// newTestEngine builds an engine with equity refresh disabled unless opts
// turn it back on.
func newTestEngine(t testing.TB, agents map[string]*scriptedAgent, opts ...EngineOption) *Engine {
	t.Helper()
	eval := evaluator(t)
	m := make(map[string]Agent, len(agents))
	for name, a := range agents {
		m[name] = a
	}
	base := []EngineOption{WithRand(randutil.New(42)), WithEquityIterations(0)}
	return NewEngine(eval, equity.NewCalculator(eval, equity.WithWorkers(2)), m, append(base, opts...)...)
}

func stackedDeck(t testing.TB, cards string) *poker.Deck {
	t.Helper()
	d, err := poker.NewDeckFromCards(poker.MustParseCards(cards))
	require.NoError(t, err)
	return d
}

func endStacks(r *HandResult) map[string]int {
	out := make(map[string]int, len(r.Players))
	for _, p := range r.Players {
		out[p.Name] = p.EndStack
	}
	return out
}
