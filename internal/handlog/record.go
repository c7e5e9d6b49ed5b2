// Package handlog records finished hands to JSON-lines files or Redis lists.
package handlog

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/lox/holdemref/internal/game"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is the persisted form of one hand.
type Record struct {
	Table      string              `json:"table,omitempty"`
	HandNumber int                 `json:"hand_number"`
	HandID     string              `json:"hand_id"`
	Button     int                 `json:"button"`
	SmallBlind int                 `json:"small_blind"`
	BigBlind   int                 `json:"big_blind"`
	Ante       int                 `json:"ante,omitempty"`
	Board      []string            `json:"board"`
	Showdown   bool                `json:"showdown"`
	Players    []game.PlayerResult `json:"players"`
	Pots       []game.PotResult    `json:"pots"`
	Actions    []game.ActionRecord `json:"actions"`
	StartedAt  time.Time           `json:"started_at"`
	DurationMS int64               `json:"duration_ms"`
}

// NewRecord flattens a hand result for storage.
func NewRecord(table string, handNumber int, stakes game.TableConfig, r *game.HandResult) Record {
	return Record{
		Table:      table,
		HandNumber: handNumber,
		HandID:     r.HandID,
		Button:     r.Button,
		SmallBlind: stakes.SmallBlind,
		BigBlind:   stakes.BigBlind,
		Ante:       stakes.Ante,
		Board:      r.Board,
		Showdown:   r.Showdown,
		Players:    r.Players,
		Pots:       r.Pots,
		Actions:    r.Actions,
		StartedAt:  r.StartedAt,
		DurationMS: r.EndedAt.Sub(r.StartedAt).Milliseconds(),
	}
}

// Result rebuilds the hand result a record was made from. Table stakes are
// not part of a HandResult and are dropped.
func (rec Record) Result() *game.HandResult {
	return &game.HandResult{
		HandID:    rec.HandID,
		Button:    rec.Button,
		Board:     rec.Board,
		Showdown:  rec.Showdown,
		Pots:      rec.Pots,
		Players:   rec.Players,
		Actions:   rec.Actions,
		StartedAt: rec.StartedAt,
		EndedAt:   rec.StartedAt.Add(time.Duration(rec.DurationMS) * time.Millisecond),
	}
}

// Sink stores records.
type Sink interface {
	Write(ctx context.Context, rec Record) error
	Close() error
}

// Multi writes every record to all sinks, stopping at the first error.
type Multi []Sink

func (m Multi) Write(ctx context.Context, rec Record) error {
	for _, s := range m {
		if err := s.Write(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every sink that buffers records.
func (m Multi) Flush() error {
	for _, s := range m {
		if f, ok := s.(interface{ Flush() error }); ok {
			if err := f.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink and returns the first error.
func (m Multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
