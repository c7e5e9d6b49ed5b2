package handid

import (
	"sort"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/holdemref/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorIsDeterministic(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	a := NewGenerator(clock, randutil.New(1)).Next()
	b := NewGenerator(clock, randutil.New(1)).Next()
	assert.Equal(t, a, b)
	assert.Len(t, a, idLength)
	require.NoError(t, Validate(a))
}

func TestIDsSortByTime(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.Set(start)
	gen := NewGenerator(clock, randutil.New(2))

	var ids []string
	for i := 0; i < 20; i++ {
		ids = append(ids, gen.Next())
		clock.Advance(time.Millisecond * 3).MustWait(t.Context())
	}
	assert.True(t, sort.StringsAreSorted(ids))

	ts, err := Time(ids[0])
	require.NoError(t, err)
	assert.True(t, ts.Equal(start), "got %s", ts)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	rng := randutil.New(3)
	for i := 0; i < 100; i++ {
		var data [16]byte
		for j := range data {
			data[j] = byte(rng.UintN(256))
		}
		got, err := decode(encode(data))
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	assert.Error(t, Validate("short"))
	assert.Error(t, Validate("8zzzzzzzzzzzzzzzzzzzzzzzzz"))
	assert.Error(t, Validate("0000000000000000000000000u"))
	assert.ErrorContains(t, Validate("00000000000000000000000000"), "not a version 7 UUID")
}

func TestUUID(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	id := NewGenerator(clock, randutil.New(4)).Next()

	u, err := UUID(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), u.Version())
	assert.Equal(t, uuid.RFC4122, u.Variant())
	assert.Len(t, u.String(), 36)

	back, err := uuid.Parse(u.String())
	require.NoError(t, err)
	assert.Equal(t, u, back)
}
