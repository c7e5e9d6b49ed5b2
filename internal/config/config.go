// Package config loads the HCL file that describes a table session: stakes,
// equity settings, the lookup table location, hand log sinks and the seated
// players.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/holdemref/internal/bot"
	"github.com/lox/holdemref/internal/game"
)

// Config is a complete session configuration.
type Config struct {
	Table   *TableConfig   `hcl:"table,block"`
	Equity  *EquityConfig  `hcl:"equity,block"`
	Lookup  *LookupConfig  `hcl:"lookup,block"`
	History *HistoryConfig `hcl:"history,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// TableConfig holds the stakes.
type TableConfig struct {
	SmallBlind int `hcl:"small_blind"`
	BigBlind   int `hcl:"big_blind"`
	Ante       int `hcl:"ante,optional"`
	Button     int `hcl:"button,optional"`
	Hands      int `hcl:"hands,optional"`
}

// EquityConfig controls the per-street Monte Carlo refresh.
type EquityConfig struct {
	Iterations int `hcl:"iterations,optional"`
	Workers    int `hcl:"workers,optional"`
}

// LookupConfig points at a lookup table written by gen-lookup. An empty path
// builds the table in memory at startup.
type LookupConfig struct {
	Path string `hcl:"path,optional"`
}

// HistoryConfig selects where finished hands are recorded.
type HistoryConfig struct {
	File      string `hcl:"file,optional"`
	PHHFile   string `hcl:"phh_file,optional"`
	RedisAddr string `hcl:"redis_addr,optional"`
	RedisKey  string `hcl:"redis_key,optional"`
}

// PlayerConfig seats one bot.
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
	Stack    int    `hcl:"stack,optional"`
	Persona  string `hcl:"persona,optional"`
}

const (
	DefaultHands            = 100
	DefaultEquityIterations = 2000
	DefaultRedisKey         = "holdemref:hands"
	DefaultStrategy         = bot.StrategyTAG
	defaultStackBigBlinds   = 100
)

// Default returns a six-handed table of built-in bots at 5/10.
func Default() *Config {
	cfg := &Config{
		Table: &TableConfig{SmallBlind: 5, BigBlind: 10, Hands: DefaultHands},
	}
	for _, p := range []struct{ name, strategy string }{
		{"Ada", bot.StrategyTAG},
		{"Bo", bot.StrategyCall},
		{"Cy", bot.StrategyManiac},
		{"Di", bot.StrategyChart},
		{"Ed", bot.StrategyRandom},
		{"Flo", bot.StrategyTAG},
	} {
		cfg.Players = append(cfg.Players, PlayerConfig{Name: p.name, Strategy: p.strategy})
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads and decodes an HCL file, applies defaults and validates the
// result. A missing file yields Default.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableConfig{SmallBlind: 5, BigBlind: 10}
	}
	if c.Table.Hands == 0 {
		c.Table.Hands = DefaultHands
	}
	if c.Equity == nil {
		c.Equity = &EquityConfig{Iterations: DefaultEquityIterations}
	}
	if c.Lookup == nil {
		c.Lookup = &LookupConfig{}
	}
	if c.History == nil {
		c.History = &HistoryConfig{}
	}
	if c.History.RedisKey == "" {
		c.History.RedisKey = DefaultRedisKey
	}

	for i := range c.Players {
		if c.Players[i].Strategy == "" {
			c.Players[i].Strategy = DefaultStrategy
		}
		if c.Players[i].Stack == 0 {
			c.Players[i].Stack = c.Table.BigBlind * defaultStackBigBlinds
		}
	}
}

// Validate checks the configuration for a playable session.
func (c *Config) Validate() error {
	t := c.Table
	if t.BigBlind <= 0 {
		return fmt.Errorf("table: big blind must be positive")
	}
	if t.SmallBlind < 0 || t.SmallBlind > t.BigBlind {
		return fmt.Errorf("table: small blind must be between 0 and the big blind")
	}
	if t.Ante < 0 {
		return fmt.Errorf("table: ante cannot be negative")
	}
	if t.Hands < 0 {
		return fmt.Errorf("table: hands cannot be negative")
	}
	if len(c.Players) < 2 || len(c.Players) > game.MaxSeats {
		return fmt.Errorf("need 2-%d players, got %d", game.MaxSeats, len(c.Players))
	}
	if t.Button < 0 || t.Button >= len(c.Players) {
		return fmt.Errorf("table: button %d outside %d players", t.Button, len(c.Players))
	}

	if c.Equity.Iterations < 0 {
		return fmt.Errorf("equity: iterations cannot be negative")
	}
	if c.Equity.Workers < 0 {
		return fmt.Errorf("equity: workers cannot be negative")
	}

	valid := make(map[string]bool)
	for _, s := range bot.Strategies() {
		valid[s] = true
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if !valid[p.Strategy] {
			return fmt.Errorf("player %s: invalid strategy %s", p.Name, p.Strategy)
		}
		if p.Stack <= 0 {
			return fmt.Errorf("player %s: stack must be positive", p.Name)
		}
	}
	return nil
}

// Seats returns the players as engine seats in file order.
func (c *Config) Seats() []game.Seat {
	seats := make([]game.Seat, len(c.Players))
	for i, p := range c.Players {
		seats[i] = game.Seat{Name: p.Name, Persona: p.Persona, Stack: p.Stack}
	}
	return seats
}

// TableSettings returns the stakes in the form game.NewTable takes.
func (c *Config) TableSettings() game.TableConfig {
	return game.TableConfig{
		SmallBlind: c.Table.SmallBlind,
		BigBlind:   c.Table.BigBlind,
		Ante:       c.Table.Ante,
		Button:     c.Table.Button,
	}
}
