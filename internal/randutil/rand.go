// Package randutil derives reproducible math/rand/v2 generators from seeds.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const weylStep = 0x9e3779b97f4a7c15

// New returns a PCG-backed generator seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+weylStep)))
}

// NewFromTime seeds a generator from the wall clock and returns the seed so
// callers can log it and replay the run.
func NewFromTime() (*rand.Rand, int64) {
	seed := time.Now().UnixNano()
	return New(seed), seed
}

// Derive draws fresh seed material from parent and returns an independent
// child stream. The parent advances by two values.
func Derive(parent *rand.Rand) *rand.Rand {
	hi, lo := parent.Uint64(), parent.Uint64()
	return rand.New(rand.NewPCG(splitmix(hi), splitmix(lo^weylStep)))
}

// Split returns n independent streams derived from parent, one per worker.
func Split(parent *rand.Rand, n int) []*rand.Rand {
	out := make([]*rand.Rand, n)
	for i := range out {
		out[i] = Derive(parent)
	}
	return out
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
