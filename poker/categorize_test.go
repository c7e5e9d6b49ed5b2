package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeHoleCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hole     string
		expected HoleCardCategory
	}{
		{"pocket aces", "As Ah", CategoryPremium},
		{"pocket jacks", "Jh Jd", CategoryPremium},
		{"ace king offsuit", "Ac Kh", CategoryPremium},

		{"pocket tens", "Tc Th", CategoryStrong},
		{"ace queen suited", "As Qs", CategoryStrong},
		{"ace jack offsuit", "Ad Jc", CategoryStrong},

		{"pocket nines", "9c 9h", CategoryMedium},
		{"pocket sevens", "7h 7c", CategoryMedium},
		{"king queen suited", "Ks Qs", CategoryMedium},
		{"queen jack suited", "Qd Jd", CategoryMedium},

		{"pocket sixes", "6c 6h", CategoryWeak},
		{"pocket twos", "2c 2h", CategoryWeak},
		{"seven six suited", "7h 6h", CategoryWeak},
		{"five three suited", "5d 3d", CategoryWeak},

		{"seven deuce offsuit", "7c 2h", CategoryTrash},
		{"jack four offsuit", "Jh 4c", CategoryTrash},
		{"king queen offsuit", "Ks Qh", CategoryTrash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cards := MustParseCards(tt.hole)
			assert.Equal(t, tt.expected, CategorizeHoleCards(cards[0], cards[1]))
			assert.Equal(t, tt.expected, CategorizeHoleCards(cards[1], cards[0]), "order must not matter")
		})
	}
}

func TestCategorizeHoleStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CategoryPremium, CategorizeHoleStrings([]string{"A♠", "A♥"}))
	assert.Equal(t, CategoryUnknown, CategorizeHoleStrings([]string{"A♠"}))
	assert.Equal(t, CategoryUnknown, CategorizeHoleStrings([]string{"A♠", "Xx"}))
	assert.Equal(t, CategoryUnknown, CategorizeHoleStrings([]string{"A♠", "A♠"}))
	assert.True(t, CategoryMedium.Playable())
	assert.False(t, CategoryWeak.Playable())
}
