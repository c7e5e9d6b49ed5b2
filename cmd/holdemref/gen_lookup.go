package main

import (
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lox/holdemref/cmd/holdemref/shared"
	"github.com/lox/holdemref/internal/fileutil"
	"github.com/lox/holdemref/poker"
	"github.com/rs/zerolog"
)

// GenLookupCmd builds the lookup table offline.
type GenLookupCmd struct {
	Out   string `short:"o" help:"Output file" default:"lookup.json" type:"path"`
	Debug bool   `help:"Enable debug logging"`
}

func (cmd *GenLookupCmd) Run(kctx *kong.Context) error {
	return cmd.run(shared.SetupLogger(cmd.Debug), kctx.Stdout)
}

func (cmd *GenLookupCmd) run(logger zerolog.Logger, w io.Writer) error {
	start := time.Now()

	table, err := poker.BuildLookupTable()
	if err != nil {
		return fmt.Errorf("build lookup table: %w", err)
	}
	if err := fileutil.WriteAtomic(cmd.Out, 0o644, table.WriteJSON); err != nil {
		return fmt.Errorf("write %s: %w", cmd.Out, err)
	}

	logger.Debug().Dur("took", time.Since(start)).Msg("Lookup table generated")
	fmt.Fprintf(w, "%s %d entries to %s\n", headerStyle.Render("wrote"), table.Len(), cmd.Out)
	return nil
}
