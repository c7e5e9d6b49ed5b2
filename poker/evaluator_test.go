package poker

import (
	"math/bits"
	"math/rand/v2"
	"sort"
	"testing"

	chpoker "github.com/chehsunliu/poker"
	phpoker "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	eval := testEvaluator(t)

	tests := []struct {
		hand     string
		category HandCategory
	}{
		{"As Ks Qs Js Ts", RoyalFlush},
		{"9h 8h 7h 6h 5h", StraightFlush},
		{"5d 4d 3d 2d Ad", StraightFlush},
		{"Kc Kd Kh Ks 2c", FourOfAKind},
		{"Qc Qd Qh 9s 9c", FullHouse},
		{"Ah Jh 8h 4h 2h", Flush},
		{"Ts 9h 8d 7c 6s", Straight},
		{"5s 4h 3d 2c As", Straight},
		{"7s 7h 7d Kc 2s", ThreeOfAKind},
		{"Js Jh 4d 4c As", TwoPair},
		{"Ts Th 8d 5c 2s", Pair},
		{"As Qh 9d 6c 3s", HighCard},
	}
	for _, tt := range tests {
		score, err := eval.Evaluate(MustParseCards(tt.hand))
		require.NoError(t, err, tt.hand)
		assert.Equal(t, tt.category, score.Strength.Category(), tt.hand)

		ref, err := ReferenceEvaluate(MustParseCards(tt.hand))
		require.NoError(t, err)
		assert.Equal(t, ref, score.Strength, "reference disagrees on %s", tt.hand)
	}
}

func TestEvaluateCategoryOrder(t *testing.T) {
	t.Parallel()
	eval := testEvaluator(t)

	// Alternates the strongest and weakest hand of each category, so every rung
	// must beat the one before it.
	ladder := []string{
		"As Kh Qd Jc 9s", // best high card
		"2s 2h 3d 4c 5s",
		"As Ah Kd Qc Js",
		"2s 2h 3d 3c 4s",
		"As Ah Kd Kc Qs",
		"2s 2h 2d 3c 4s",
		"As Ah Ad Kc Qs",
		"5s 4h 3d 2c As",
		"As Kh Qd Jc Ts",
		"7s 5s 4s 3s 2s",
		"As Ks Qs Js 9s",
		"2s 2h 2d 3c 3s",
		"As Ah Ad Kc Ks",
		"2s 2h 2d 2c 3s",
		"As Ah Ad Ac Ks",
		"5d 4d 3d 2d Ad",
		"Kd Qd Jd Td 9d",
		"As Ks Qs Js Ts",
	}
	var prev Strength
	for i, hand := range ladder {
		score, err := eval.Evaluate(MustParseCards(hand))
		require.NoError(t, err, hand)
		if i > 0 {
			assert.Greater(t, score.Strength, prev, "%s should beat previous rung", hand)
		}
		prev = score.Strength
	}
}

func TestEvaluateIgnoresCardOrder(t *testing.T) {
	t.Parallel()
	eval := testEvaluator(t)
	rng := rand.New(rand.NewPCG(7, 7))

	for i := 0; i < 500; i++ {
		d := NewDeck(rng)
		d.Shuffle()
		hand, err := d.Deal(5)
		require.NoError(t, err)

		want, err := eval.Evaluate(hand)
		require.NoError(t, err)
		rng.Shuffle(len(hand), func(a, b int) { hand[a], hand[b] = hand[b], hand[a] })
		got, err := eval.Evaluate(hand)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestStraightsStrictlyOrdered(t *testing.T) {
	t.Parallel()
	eval := testEvaluator(t)

	suits := []Suit{Spades, Hearts, Diamonds, Clubs, Spades}
	var prevPlain, prevFlush Strength
	// Walk from the wheel up to broadway.
	for i := len(straightMasks) - 1; i >= 0; i-- {
		mask := straightMasks[i]
		var plain, suited []Card
		n := 0
		for b := 0; b < numRanks; b++ {
			if mask&(1<<b) == 0 {
				continue
			}
			r := Rank(b) + Two
			plain = append(plain, NewCard(r, suits[n]))
			suited = append(suited, NewCard(r, Hearts))
			n++
		}
		ps, err := eval.Evaluate(plain)
		require.NoError(t, err)
		fs, err := eval.Evaluate(suited)
		require.NoError(t, err)

		assert.Equal(t, Straight, ps.Strength.Category())
		assert.Equal(t, uint16(mask), ps.Mask)
		if i < len(straightMasks)-1 {
			assert.Greater(t, ps.Strength, prevPlain, "straight %#x", mask)
			assert.Greater(t, fs.Strength, prevFlush, "straight flush %#x", mask)
		}
		prevPlain, prevFlush = ps.Strength, fs.Strength
	}
	assert.Equal(t, RoyalFlush, prevFlush.Category())
}

func TestFlushesStrictlyOrdered(t *testing.T) {
	t.Parallel()
	eval := testEvaluator(t)

	var masks []uint32
	for m := uint32(0); m < 1<<numRanks; m++ {
		if bits.OnesCount32(m) == 5 && straightHigh(m) == 0 {
			masks = append(masks, m)
		}
	}
	require.Len(t, masks, 1277)

	type scored struct {
		mask     uint32
		strength Strength
	}
	all := make([]scored, 0, len(masks))
	for _, m := range masks {
		var hand []Card
		for b := 0; b < numRanks; b++ {
			if m&(1<<b) != 0 {
				hand = append(hand, NewCard(Rank(b)+Two, Diamonds))
			}
		}
		s, err := eval.Evaluate(hand)
		require.NoError(t, err)
		require.Equal(t, Flush, s.Strength.Category())
		all = append(all, scored{m, s.Strength})
	}

	// Sort by rank lexicographic order: compare highest differing rank.
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i].mask, all[j].mask
		diff := a ^ b
		top := uint32(1) << (31 - bits.LeadingZeros32(diff))
		return b&top != 0
	})
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].strength, all[i-1].strength, "flush %#x vs %#x", all[i].mask, all[i-1].mask)
	}
}

func TestBuilderAgreesWithReference(t *testing.T) {
	t.Parallel()
	eval := testEvaluator(t)
	require.Equal(t, LookupTableSize, eval.Table().Len())

	deck := FullDeck()
	hand := make([]Card, 5)
	distinct := make(map[Strength]struct{})
	for a := 0; a < 48; a++ {
		for b := a + 1; b < 49; b++ {
			for c := b + 1; c < 50; c++ {
				for d := c + 1; d < 51; d++ {
					for e := d + 1; e < 52; e++ {
						hand[0], hand[1], hand[2], hand[3], hand[4] = deck[a], deck[b], deck[c], deck[d], deck[e]
						got, err := eval.Evaluate(hand)
						if err != nil {
							t.Fatalf("evaluate %v: %v", CardStrings(hand), err)
						}
						want, err := ReferenceEvaluate(hand)
						if err != nil {
							t.Fatalf("reference %v: %v", CardStrings(hand), err)
						}
						if got.Strength != want {
							t.Fatalf("%v: evaluator %d, reference %d", CardStrings(hand), got.Strength, want)
						}
						distinct[got.Strength] = struct{}{}
					}
				}
			}
		}
	}
	assert.Len(t, distinct, 7462)
}

func TestEvaluateInvalidSize(t *testing.T) {
	t.Parallel()
	eval := testEvaluator(t)

	_, err := eval.Evaluate(MustParseCards("As Ks Qs Js"))
	assert.ErrorIs(t, err, ErrInvalidHandSize)
	_, _, err = eval.BestHand(MustParseCards("As Ks Qs Js Ts"))
	assert.ErrorIs(t, err, ErrInvalidHandSize)
	_, err = ReferenceEvaluate(nil)
	assert.ErrorIs(t, err, ErrInvalidHandSize)
}

func TestBestHandBeatsEverySubset(t *testing.T) {
	t.Parallel()
	eval := testEvaluator(t)
	rng := rand.New(rand.NewPCG(11, 13))

	for i := 0; i < 300; i++ {
		d := NewDeck(rng)
		d.Shuffle()
		seven, err := d.Deal(7)
		require.NoError(t, err)

		best, score, err := eval.BestHand(seven)
		require.NoError(t, err)
		require.Len(t, best, 5)
		require.NoError(t, CheckDistinct(best))

		check, err := eval.Evaluate(best)
		require.NoError(t, err)
		assert.Equal(t, score, check)

		var arr [7]Card
		copy(arr[:], seven)
		s7, err := eval.Strength7(&arr)
		require.NoError(t, err)
		assert.Equal(t, score.Strength, s7)

		for _, combo := range bestOfSeven {
			sub := []Card{seven[combo[0]], seven[combo[1]], seven[combo[2]], seven[combo[3]], seven[combo[4]]}
			s, err := eval.Evaluate(sub)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, score.Strength, s.Strength)
		}
	}
}

func TestBestHandFindsRoyal(t *testing.T) {
	t.Parallel()
	eval := testEvaluator(t)

	best, score, err := eval.BestHand(MustParseCards("2c As Ks 7d Qs Js Ts"))
	require.NoError(t, err)
	assert.Equal(t, RoyalFlush, score.Strength.Category())
	SortByRank(best)
	assert.Equal(t, []string{"A♠", "K♠", "Q♠", "J♠", "T♠"}, CardStrings(best))
}

func TestEvaluatorAgreesWithThirdParty(t *testing.T) {
	t.Parallel()
	eval := testEvaluator(t)
	rng := rand.New(rand.NewPCG(99, 1))

	toLib := func(cards []Card) []chpoker.Card {
		out := make([]chpoker.Card, len(cards))
		for i, c := range cards {
			out[i] = chpoker.NewCard(c.ASCII())
		}
		return out
	}

	for i := 0; i < 2000; i++ {
		d := NewDeck(rng)
		d.Shuffle()
		cards, err := d.Deal(14)
		require.NoError(t, err)
		a, b := cards[:7], cards[7:]

		_, sa, err := eval.BestHand(a)
		require.NoError(t, err)
		_, sb, err := eval.BestHand(b)
		require.NoError(t, err)

		// Library ranks are lower-is-better.
		ra, rb := chpoker.Evaluate(toLib(a)), chpoker.Evaluate(toLib(b))
		want := 0
		switch {
		case ra < rb:
			want = 1
		case ra > rb:
			want = -1
		}
		assert.Equal(t, want, sa.Compare(sb), "%v vs %v", CardStrings(a), CardStrings(b))
	}
}

// toSeven converts cards for an evaluator that numbers ranks Ace-low 1..13.
func toSeven(t *testing.T, cards []Card) *[7]phpoker.Card {
	t.Helper()
	suits := map[Suit]phpoker.Suit{
		Spades:   phpoker.Spade,
		Hearts:   phpoker.Heart,
		Diamonds: phpoker.Diamond,
		Clubs:    phpoker.Club,
	}
	var out [7]phpoker.Card
	for i, c := range cards {
		r := int(c.Rank())
		if c.Rank() == Ace {
			r = 1
		}
		pc, err := phpoker.MakeCard(suits[c.Suit()], phpoker.Rank(r))
		require.NoError(t, err, c.String())
		out[i] = pc
	}
	return &out
}

func TestEvaluatorAgreesWithEval7(t *testing.T) {
	t.Parallel()
	eval := testEvaluator(t)
	rng := rand.New(rand.NewPCG(7, 3))

	for i := 0; i < 2000; i++ {
		d := NewDeck(rng)
		d.Shuffle()
		cards, err := d.Deal(14)
		require.NoError(t, err)
		a, b := cards[:7], cards[7:]

		_, sa, err := eval.BestHand(a)
		require.NoError(t, err)
		_, sb, err := eval.BestHand(b)
		require.NoError(t, err)

		// Eval7 scores are higher-is-better.
		ra, rb := phpoker.Eval7(toSeven(t, a)), phpoker.Eval7(toSeven(t, b))
		want := 0
		switch {
		case ra > rb:
			want = 1
		case ra < rb:
			want = -1
		}
		assert.Equal(t, want, sa.Compare(sb), "%v vs %v", CardStrings(a), CardStrings(b))
	}
}

func TestNewEvaluatorRejectsBadTable(t *testing.T) {
	t.Parallel()

	_, err := NewEvaluator(nil)
	assert.ErrorIs(t, err, ErrCorruptTable)

	_, err = NewLookupTable(map[uint32]Strength{48: 1})
	assert.ErrorIs(t, err, ErrCorruptTable)
	assert.True(t, IsCorrupt(err))
	assert.False(t, IsCorrupt(ErrInvalidCard))
}

func TestEvaluateRejectsMalformedCards(t *testing.T) {
	t.Parallel()

	eval := testEvaluator(t)

	five := MustParseCards("As Ks Qs Js Ts")
	five[2] = Card(0)
	_, err := eval.Evaluate(five)
	require.ErrorIs(t, err, ErrInvalidCard)
	assert.NotErrorIs(t, err, ErrCorruptTable)
	assert.ErrorContains(t, err, "card 2")

	seven := MustParseCards("As Ks Qs Js Ts 2c 3d")
	seven[6] = Card(0)
	_, _, err = eval.BestHand(seven)
	require.ErrorIs(t, err, ErrInvalidCard)
	assert.NotErrorIs(t, err, ErrCorruptTable)
}
