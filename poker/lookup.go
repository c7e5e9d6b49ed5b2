package poker

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// LookupTableSize is the number of distinct five-card rank multisets that are
// neither flushes nor straights: every hand class the table must cover.
const LookupTableSize = 6165

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LookupTable maps the prime product of five card ranks to the strength of
// that rank multiset. It is read-only once built and safe for concurrent use.
type LookupTable struct {
	entries map[uint32]Strength
}

// NewLookupTable wraps entries in a table and validates it. The map is not
// copied; callers must not modify it afterwards.
func NewLookupTable(entries map[uint32]Strength) (*LookupTable, error) {
	t := &LookupTable{entries: entries}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the strength stored for a prime product.
func (t *LookupTable) Lookup(product uint32) (Strength, bool) {
	s, ok := t.entries[product]
	return s, ok
}

// Len returns the number of entries.
func (t *LookupTable) Len() int {
	return len(t.entries)
}

// Validate checks the entry count and that every strength falls in a
// category the table is responsible for.
func (t *LookupTable) Validate() error {
	if len(t.entries) != LookupTableSize {
		return fmt.Errorf("%w: %d entries, want %d", ErrCorruptTable, len(t.entries), LookupTableSize)
	}
	for product, s := range t.entries {
		if product < 2*2*2*2*3 {
			return fmt.Errorf("%w: prime product %d too small", ErrCorruptTable, product)
		}
		if cat := s.Category(); cat > RoyalFlush || !cat.tableDriven() {
			return fmt.Errorf("%w: product %d maps to %d outside table categories", ErrCorruptTable, product, uint32(s))
		}
	}
	return nil
}

// WriteJSON encodes the table as a flat JSON object keyed by the decimal
// prime product. Keys are sorted so output is stable.
func (t *LookupTable) WriteJSON(w io.Writer) error {
	out := make(map[string]uint32, len(t.entries))
	for product, s := range t.entries {
		out[strconv.FormatUint(uint64(product), 10)] = uint32(s)
	}
	bw := bufio.NewWriter(w)
	if err := json.NewEncoder(bw).Encode(out); err != nil {
		return fmt.Errorf("encode lookup table: %w", err)
	}
	return bw.Flush()
}

// LoadLookupTable decodes and validates a table written by WriteJSON.
func LoadLookupTable(r io.Reader) (*LookupTable, error) {
	var raw map[string]int64
	if err := json.NewDecoder(bufio.NewReader(r)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCorruptTable, err)
	}

	entries := make(map[uint32]Strength, len(raw))
	for key, value := range raw {
		product, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q is not a prime product", ErrCorruptTable, key)
		}
		if value < 0 || value >= int64(RoyalFlush+1)*CategoryBand {
			return nil, fmt.Errorf("%w: strength %d for key %q out of range", ErrCorruptTable, value, key)
		}
		entries[uint32(product)] = Strength(value)
	}
	return NewLookupTable(entries)
}

// LoadLookupTableFile loads a table from disk. A missing file is reported as
// a corrupt table since the evaluator cannot run without one.
func LoadLookupTableFile(path string) (*LookupTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTable, err)
	}
	defer f.Close()

	t, err := LoadLookupTable(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}
