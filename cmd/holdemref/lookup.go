package main

import (
	"fmt"
	"time"

	"github.com/lox/holdemref/poker"
	"github.com/rs/zerolog"
)

// loadEvaluator reads the lookup table from path, or builds it in memory
// when path is empty.
func loadEvaluator(path string, logger zerolog.Logger) (*poker.Evaluator, error) {
	start := time.Now()
	var (
		table *poker.LookupTable
		err   error
	)
	if path == "" {
		table, err = poker.BuildLookupTable()
	} else {
		table, err = poker.LoadLookupTableFile(path)
	}
	if poker.IsCorrupt(err) {
		return nil, fmt.Errorf("lookup table %s is unusable, regenerate it with gen-lookup: %w", path, err)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("path", path).
		Int("entries", table.Len()).
		Dur("took", time.Since(start)).
		Msg("Lookup table ready")
	return poker.NewEvaluator(table)
}
