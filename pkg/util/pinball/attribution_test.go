package pinball

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionsForEveryRound(t *testing.T) {
	testCases := []struct {
		round int
		home  []int
		away  []int
	}{
		{1, []int{2, 4}, []int{1, 3}},
		{2, []int{1}, []int{2}},
		{3, []int{2}, []int{1}},
		{4, []int{1, 3}, []int{2, 4}},
	}

	for _, tc := range testCases {
		home, err := PositionsFor(tc.round, Home)
		require.NoError(t, err)
		assert.Equal(t, tc.home, home, "home positions in round %d", tc.round)

		away, err := PositionsFor(tc.round, Away)
		require.NoError(t, err)
		assert.Equal(t, tc.away, away, "away positions in round %d", tc.round)
	}
}

func TestPresentPositions(t *testing.T) {
	for _, round := range []int{1, 4} {
		present, err := PresentPositions(round)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4}, present, "doubles round %d", round)
	}
	for _, round := range []int{2, 3} {
		present, err := PresentPositions(round)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, present, "singles round %d", round)
	}
}

func TestSidesPartitionPresentPositions(t *testing.T) {
	for round := FirstRound; round <= LastRound; round++ {
		present, err := PresentPositions(round)
		require.NoError(t, err)

		home, err := PositionsFor(round, Home)
		require.NoError(t, err)
		away, err := PositionsFor(round, Away)
		require.NoError(t, err)

		assert.Len(t, present, len(home)+len(away), "round %d", round)
		seen := map[int]Side{}
		for _, p := range home {
			seen[p] = Home
		}
		for _, p := range away {
			if _, dup := seen[p]; dup {
				t.Errorf("round %d: position %d attributed to both sides", round, p)
			}
			seen[p] = Away
		}
		for _, p := range present {
			side, err := SideOfPosition(round, p)
			require.NoError(t, err)
			assert.Equal(t, seen[p], side, "round %d position %d", round, p)
		}
	}
}

func TestSideOfPositionRejectsAbsent(t *testing.T) {
	if _, err := SideOfPosition(2, 3); err == nil {
		t.Error("expected an error for position 3 in a singles round")
	}
	if _, err := SideOfPosition(3, 4); err == nil {
		t.Error("expected an error for position 4 in a singles round")
	}
}

func TestRoundRangeIsEnforced(t *testing.T) {
	for _, round := range []int{0, 5, -1, 99} {
		if _, err := ModeOf(round); err == nil {
			t.Errorf("ModeOf(%d) should error", round)
		}
		if _, err := PresentPositions(round); err == nil {
			t.Errorf("PresentPositions(%d) should error", round)
		}
		if _, err := PositionsFor(round, Home); err == nil {
			t.Errorf("PositionsFor(%d, Home) should error", round)
		}
		if _, err := PickingSide(round); err == nil {
			t.Errorf("PickingSide(%d) should error", round)
		}
	}
}

func TestModeOf(t *testing.T) {
	for _, round := range []int{1, 4} {
		mode, err := ModeOf(round)
		require.NoError(t, err)
		assert.Equal(t, Doubles, mode)
	}
	for _, round := range []int{2, 3} {
		mode, err := ModeOf(round)
		require.NoError(t, err)
		assert.Equal(t, Singles, mode)
	}
}

func TestPickingSide(t *testing.T) {
	testCases := []struct {
		round  int
		picker Side
	}{
		{1, Away},
		{2, Home},
		{3, Away},
		{4, Home},
	}

	for _, tc := range testCases {
		picker, err := PickingSide(tc.round)
		require.NoError(t, err)
		assert.Equal(t, tc.picker, picker, "picking side in round %d", tc.round)

		picks, err := PicksInRound(tc.round, tc.picker)
		require.NoError(t, err)
		assert.True(t, picks)

		picks, err = PicksInRound(tc.round, tc.picker.Opposite())
		require.NoError(t, err)
		assert.False(t, picks)
	}
}

func TestPickingSideDiffersFromPositionOwnership(t *testing.T) {
	// Round 1: the away side picks, yet home occupies positions 2 and 4.
	picker, err := PickingSide(1)
	require.NoError(t, err)
	assert.Equal(t, Away, picker)

	side, err := SideOfPosition(1, 2)
	require.NoError(t, err)
	assert.Equal(t, Home, side, "position ownership must not follow pick attribution")
}

func TestSideHelpers(t *testing.T) {
	assert.Equal(t, "home", Home.String())
	assert.Equal(t, "away", Away.String())
	assert.Equal(t, Away, Home.Opposite())
	assert.Equal(t, Home, Away.Opposite())
	assert.Equal(t, "doubles", Doubles.String())
	assert.Equal(t, "singles", Singles.String())
}
