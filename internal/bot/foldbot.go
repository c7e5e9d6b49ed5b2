package bot

import (
	"context"

	"github.com/lox/holdemref/internal/game"
	"github.com/rs/zerolog"
)

// FoldBot is a simple bot that always folds (or checks when possible)
type FoldBot struct {
	logger zerolog.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger zerolog.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	return checkOrFold(v, "fold-bot"), nil
}
