package game

import (
	"context"
	"fmt"
	"strings"
)

// ActionKind is the action token an agent returns.
type ActionKind string

const (
	ActionFold  ActionKind = "FOLD"
	ActionCheck ActionKind = "CHECK"
	ActionCall  ActionKind = "CALL"
	ActionRaise ActionKind = "RAISE"
)

// ParseAction normalises an action token. CHECK and CALL are distinct
// tokens but are applied identically.
func ParseAction(s string) (ActionKind, error) {
	switch kind := ActionKind(strings.ToUpper(strings.TrimSpace(s))); kind {
	case ActionFold, ActionCheck, ActionCall, ActionRaise:
		return kind, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Decision is an agent's answer. Amount is the raise target and is ignored
// for other actions.
type Decision struct {
	Action    ActionKind
	Amount    int
	Reasoning string
}

// Agent decides for one seat. It sees only the View it is given and must
// not retain it. An error makes the engine apply its default action.
type Agent interface {
	Decide(ctx context.Context, view View) (Decision, error)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(ctx context.Context, view View) (Decision, error)

// Decide calls f.
func (f AgentFunc) Decide(ctx context.Context, view View) (Decision, error) {
	return f(ctx, view)
}
