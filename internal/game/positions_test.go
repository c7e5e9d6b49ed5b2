package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignPositions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, button int
		want      []Position
	}{
		{1, 0, []Position{"BTN"}},
		{2, 0, []Position{"BTN/SB", "BB"}},
		{2, 1, []Position{"BB", "BTN/SB"}},
		{3, 0, []Position{"BTN", "SB", "BB"}},
		{4, 3, []Position{"SB", "BB", "UTG", "BTN"}},
		{5, 0, []Position{"BTN", "SB", "BB", "UTG", "CO"}},
		{6, 2, []Position{"MP", "CO", "BTN", "SB", "BB", "UTG"}},
		{7, 0, []Position{"BTN", "SB", "BB", "UTG", "MP1", "MP2", "CO"}},
		{9, 8, []Position{"SB", "BB", "UTG", "MP1", "MP2", "MP3", "MP4", "CO", "BTN"}},
		{10, 0, []Position{"BTN", "SB", "BB", "UTG", "MP1", "MP2", "MP3", "MP4", "MP5", "CO"}},
	}
	for _, tt := range tests {
		got, err := AssignPositions(tt.n, tt.button)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "n=%d button=%d", tt.n, tt.button)
	}
}

func TestAssignPositionsOneRolePerSeat(t *testing.T) {
	t.Parallel()

	for n := 2; n <= MaxSeats; n++ {
		for button := 0; button < n; button++ {
			got, err := AssignPositions(n, button)
			require.NoError(t, err)
			require.Len(t, got, n)

			seen := make(map[Position]bool)
			for _, p := range got {
				assert.False(t, seen[p], "n=%d duplicate %s", n, p)
				seen[p] = true
			}
			assert.True(t, got[smallBlindSeat(n, button)].IsSmallBlind())
			assert.Equal(t, PositionBigBlind, got[bigBlindSeat(n, button)])
		}
	}
}

func TestAssignPositionsInvalid(t *testing.T) {
	t.Parallel()

	_, err := AssignPositions(0, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = AssignPositions(11, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = AssignPositions(4, 4)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
