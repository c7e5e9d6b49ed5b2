package phh

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/lox/holdemref/internal/handlog"
	"github.com/rs/zerolog"
)

// FileSink appends hands to a .phhs file, each under its hand ID.
type FileSink struct {
	logger zerolog.Logger

	mu     sync.Mutex
	f      *os.File
	w      *bufio.Writer
	closed bool
}

var _ handlog.Sink = (*FileSink)(nil)

// NewFileSink opens path for appending, creating parent directories.
func NewFileSink(path string, logger zerolog.Logger) (*FileSink, error) {
	if path == "" {
		return nil, errors.New("phh: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("phh: create dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("phh: open %s: %w", path, err)
	}
	logger.Debug().Str("path", path).Msg("PHH history opened")
	return &FileSink{logger: logger, f: f, w: bufio.NewWriter(f)}, nil
}

func (s *FileSink) Write(_ context.Context, rec handlog.Record) error {
	h, err := FromRecord(rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("phh: sink closed")
	}
	if err := EncodeSection(s.w, rec.HandID, h); err != nil {
		return fmt.Errorf("phh: encode hand %s: %w", rec.HandID, err)
	}
	if _, err := s.w.WriteString("\n"); err != nil {
		return err
	}
	return s.w.Flush()
}

// Close flushes and closes the file. Closing twice is a no-op.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.w.Flush(); err != nil {
		_ = s.f.Close()
		return err
	}
	return s.f.Close()
}

// ReadFile decodes a .phhs file keyed by hand ID.
func ReadFile(path string) (map[string]HandHistory, error) {
	var hands map[string]HandHistory
	if _, err := toml.DecodeFile(path, &hands); err != nil {
		return nil, fmt.Errorf("phh: read %s: %w", path, err)
	}
	return hands, nil
}
