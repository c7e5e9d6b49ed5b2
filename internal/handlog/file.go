package handlog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

const defaultFlushHands = 50

// FileSink appends records as JSON lines. Lines are buffered and flushed
// every FlushHands records and on Close.
type FileSink struct {
	logger     zerolog.Logger
	flushHands int

	mu      sync.Mutex
	f       *os.File
	w       *bufio.Writer
	pending int
	closed  bool
}

// FileOption configures a FileSink.
type FileOption func(*FileSink)

// WithFlushHands sets how many records are buffered before a flush.
func WithFlushHands(n int) FileOption {
	return func(s *FileSink) {
		if n > 0 {
			s.flushHands = n
		}
	}
}

// WithFileLogger sets the sink logger.
func WithFileLogger(logger zerolog.Logger) FileOption {
	return func(s *FileSink) { s.logger = logger }
}

// NewFileSink opens path for appending, creating parent directories.
func NewFileSink(path string, opts ...FileOption) (*FileSink, error) {
	if path == "" {
		return nil, errors.New("handlog: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("handlog: create dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("handlog: open %s: %w", path, err)
	}

	s := &FileSink{
		logger:     zerolog.Nop(),
		flushHands: defaultFlushHands,
		f:          f,
		w:          bufio.NewWriter(f),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "handlog").Str("path", path).Logger()
	return s, nil
}

func (s *FileSink) Write(_ context.Context, rec Record) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("handlog: encode %s: %w", rec.HandID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("handlog: write to closed sink")
	}
	if _, err := s.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("handlog: write: %w", err)
	}
	s.pending++
	if s.pending >= s.flushHands {
		return s.flushLocked()
	}
	return nil
}

// Flush writes buffered records to disk.
func (s *FileSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *FileSink) flushLocked() error {
	if s.pending == 0 {
		return nil
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("handlog: flush: %w", err)
	}
	s.logger.Debug().Int("hands", s.pending).Msg("Flushed hand records")
	s.pending = 0
	return nil
}

// Close flushes and closes the file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	flushErr := s.flushLocked()
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("handlog: close: %w", err)
	}
	return flushErr
}

// ReadFile decodes every record in a JSON-lines file.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("handlog: %s line %d: %w", path, line, err)
		}
		out = append(out, rec)
	}
	return out, scanner.Err()
}
