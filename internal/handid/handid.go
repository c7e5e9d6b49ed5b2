// Package handid generates sortable hand identifiers: a UUIDv7 written as 26
// characters of Crockford base32, so identifiers sort by creation time.
package handid

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
)

const (
	alphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	idLength = 26
	idBits   = idLength * 5 // 130; the top two bits are always zero
)

// Generator produces hand IDs from an injected clock and random stream.
// It is safe for concurrent use.
type Generator struct {
	clock quartz.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator. A nil clock means the real clock.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// Next returns a new identifier.
func (g *Generator) Next() string {
	var id [16]byte
	ms := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	g.mu.Lock()
	for i := 6; i < 16; i++ {
		id[i] = byte(g.rng.UintN(256))
	}
	g.mu.Unlock()

	id[6] = id[6]&0x0f | 0x70 // version 7
	id[8] = id[8]&0x3f | 0x80 // RFC 4122 variant
	return encode(id)
}

// bit returns bit k of the 130-bit big-endian value whose top two bits are
// zero padding in front of data.
func bit(data *[16]byte, k int) byte {
	k -= idBits - 128
	if k < 0 {
		return 0
	}
	return data[k/8] >> (7 - k%8) & 1
}

func encode(data [16]byte) string {
	var sb strings.Builder
	sb.Grow(idLength)
	for i := 0; i < idLength; i++ {
		var v byte
		for j := 0; j < 5; j++ {
			v = v<<1 | bit(&data, i*5+j)
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

func decode(id string) ([16]byte, error) {
	var data [16]byte
	if len(id) != idLength {
		return data, fmt.Errorf("hand id must be %d characters, got %d", idLength, len(id))
	}
	if id[0] > '7' {
		return data, fmt.Errorf("hand id %q overflows 128 bits", id)
	}
	for i := 0; i < idLength; i++ {
		v := strings.IndexByte(alphabet, id[i])
		if v < 0 {
			return data, fmt.Errorf("invalid character %q at position %d", id[i], i)
		}
		for j := 0; j < 5; j++ {
			k := i*5 + j - (idBits - 128)
			if k < 0 {
				continue
			}
			if v>>(4-j)&1 == 1 {
				data[k/8] |= 1 << (7 - k%8)
			}
		}
	}
	return data, nil
}

// Validate checks that id is well formed.
func Validate(id string) error {
	_, err := UUID(id)
	return err
}

// UUID returns id in its standard form.
func UUID(id string) (uuid.UUID, error) {
	data, err := decode(id)
	if err != nil {
		return uuid.Nil, err
	}
	u := uuid.UUID(data)
	if u.Version() != 7 || u.Variant() != uuid.RFC4122 {
		return uuid.Nil, fmt.Errorf("hand id %q is not a version 7 UUID", id)
	}
	return u, nil
}

// Time returns the creation time embedded in id.
func Time(id string) (time.Time, error) {
	data, err := decode(id)
	if err != nil {
		return time.Time{}, err
	}
	var ms int64
	for i := 0; i < 6; i++ {
		ms = ms<<8 | int64(data[i])
	}
	return time.UnixMilli(ms), nil
}
