package pinball

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doublesGame() *Game {
	return &Game{
		Machine: "GZ",
		Done:    true,
		Player1: "dtp-nia", Player2: "jup-owen", Player3: "dtp-pria", Player4: "jup-sara",
		Score1: 1000000, Score2: 2500000, Score3: 3000000, Score4: 750000,
		Points1: 1, Points2: 2, Points3: 2, Points4: 0,
		HomePoints: 2, AwayPoints: 3,
	}
}

func singlesGame() *Game {
	return &Game{
		Machine: "TZ",
		Done:    true,
		Player1: "jup-owen", Player2: "dtp-nia",
		Score1: 41000000, Score2: 36000000,
		Points1: 2, Points2: 1,
		HomePoints: 2, AwayPoints: 1,
	}
}

func TestAccumulateMachineFoldsBothSides(t *testing.T) {
	acc := &Accumulator{Key: "godzilla"}
	counted := acc.AccumulateMachine(doublesGame(), 1)
	require.True(t, counted)

	assert.Equal(t, 1, acc.Games)
	// round 1: home holds positions 2 and 4, away holds 1 and 3
	assert.Equal(t, 2, acc.HomePoints)
	assert.Equal(t, 3, acc.AwayPoints)
	assert.Equal(t, 5, acc.TotalPoints())
	assert.ElementsMatch(t, []int{1000000, 2500000, 3000000, 750000}, acc.Scores)
}

func TestAccumulateTeamAwayRoundOne(t *testing.T) {
	// The away side in round 1 owns positions 1 and 3: its score list must
	// be exactly those two scores and nothing from the home side.
	acc := &Accumulator{Key: "DTP"}
	counted := acc.AccumulateTeam(doublesGame(), 1, Away)
	require.True(t, counted)

	assert.Equal(t, []int{1000000, 3000000}, acc.Scores)
	assert.Equal(t, 3, acc.AwayPoints)
	assert.Equal(t, 0, acc.HomePoints)
	assert.Equal(t, 3, acc.EarnedPoints, "away side earned the game's away points")
	assert.Equal(t, 5, acc.AvailablePoints)
	assert.Equal(t, 60.0, acc.POPS())
}

func TestAccumulateTeamHomeRoundOne(t *testing.T) {
	acc := &Accumulator{Key: "JUP"}
	require.True(t, acc.AccumulateTeam(doublesGame(), 1, Home))

	assert.Equal(t, []int{2500000, 750000}, acc.Scores, "home positions in round 1 are 2 and 4")
	assert.Equal(t, 2, acc.EarnedPoints)
	assert.Equal(t, 5, acc.AvailablePoints)
}

func TestAccumulateTeamSinglesRounds(t *testing.T) {
	// Round 2 puts home at position 1; round 3 flips it.
	home := &Accumulator{Key: "JUP"}
	require.True(t, home.AccumulateTeam(singlesGame(), 2, Home))
	assert.Equal(t, []int{41000000}, home.Scores)

	away := &Accumulator{Key: "DTP"}
	require.True(t, away.AccumulateTeam(singlesGame(), 2, Away))
	assert.Equal(t, []int{36000000}, away.Scores)

	flipped := &Accumulator{Key: "JUP"}
	require.True(t, flipped.AccumulateTeam(singlesGame(), 3, Home))
	assert.Equal(t, []int{36000000}, flipped.Scores, "round 3 home is position 2")
}

func TestNotDoneGamesAreIgnored(t *testing.T) {
	g := doublesGame()
	g.Done = false

	acc := &Accumulator{}
	assert.False(t, acc.AccumulateMachine(g, 1))
	assert.False(t, acc.AccumulateTeam(g, 1, Home))
	assert.Equal(t, 0, acc.Games)
	assert.Empty(t, acc.Scores)
}

func TestBadRoundIsSkippedNotFatal(t *testing.T) {
	acc := &Accumulator{}
	assert.False(t, acc.AccumulateMachine(doublesGame(), 5))
	assert.False(t, acc.AccumulateTeam(doublesGame(), 0, Away))
	assert.Equal(t, 0, acc.Games)
}

func TestMissingPositionsAreSkipped(t *testing.T) {
	g := doublesGame()
	g.Player3 = ""

	acc := &Accumulator{}
	assert.False(t, acc.AccumulateMachine(g, 1), "a doubles game without position 3 must not count")

	// The away side needs positions 1 and 3; home only needs 2 and 4 and
	// still counts.
	away := &Accumulator{}
	assert.False(t, away.AccumulateTeam(g, 1, Away))
	home := &Accumulator{}
	assert.True(t, home.AccumulateTeam(g, 1, Home))
}

func TestAccumulateIsCallerScopedNotIdempotent(t *testing.T) {
	acc := &Accumulator{}
	require.True(t, acc.AccumulateMachine(doublesGame(), 1))
	require.True(t, acc.AccumulateMachine(doublesGame(), 1))
	assert.Equal(t, 2, acc.Games, "folding the same game twice double-counts; visiting once is the caller's job")
	assert.Len(t, acc.Scores, 8)
}

func TestAccumulatorsKeyScoping(t *testing.T) {
	set := NewAccumulators()
	set.Get("godzilla").AccumulateMachine(doublesGame(), 1)
	set.Get("twilight-zone").AccumulateMachine(singlesGame(), 2)

	gz, ok := set.Lookup("godzilla")
	require.True(t, ok)
	tz, ok := set.Lookup("twilight-zone")
	require.True(t, ok)

	assert.Equal(t, 1, gz.Games)
	assert.Equal(t, 1, tz.Games)
	assert.Len(t, gz.Scores, 4)
	assert.Len(t, tz.Scores, 2)

	_, ok = set.Lookup("never-seen")
	assert.False(t, ok)

	assert.Equal(t, []string{"godzilla", "twilight-zone"}, set.Keys(), "keys keep first-insertion order")
	assert.Equal(t, []string{"godzilla", "twilight-zone"}, set.SortedKeys())
	assert.Equal(t, 2, set.Len())
}

func TestGetReturnsSameAccumulator(t *testing.T) {
	set := NewAccumulators()
	a := set.Get("x")
	b := set.Get("x")
	if a != b {
		t.Fatal("Get must return the same accumulator for the same key")
	}
}

func TestAccumulatePlayers(t *testing.T) {
	set := NewAccumulators()
	AccumulatePlayers(set, doublesGame(), 1)

	nia, ok := set.Lookup("dtp-nia")
	require.True(t, ok)
	assert.Equal(t, []int{1000000}, nia.Scores)
	assert.Equal(t, 1, nia.EarnedPoints)
	assert.Equal(t, 1, nia.Games)
	assert.Equal(t, 1, nia.AwayPoints, "position 1 in round 1 is an away position")

	owen, ok := set.Lookup("jup-owen")
	require.True(t, ok)
	assert.Equal(t, []int{2500000}, owen.Scores)
	assert.Equal(t, 2, owen.EarnedPoints)
	assert.Equal(t, 2, owen.HomePoints)

	assert.Equal(t, 4, set.Len())
}

func TestAccumulatePlayersSkipsNotDoneAndBadRounds(t *testing.T) {
	set := NewAccumulators()
	g := doublesGame()
	g.Done = false
	AccumulatePlayers(set, g, 1)
	assert.Equal(t, 0, set.Len())

	AccumulatePlayers(set, doublesGame(), 7)
	assert.Equal(t, 0, set.Len())
}

// End-to-end shape of the away-team path: parse a record, walk its rounds,
// fold one team. Mirrors how the report layer consumes a match.
func TestAwayTeamEndToEnd(t *testing.T) {
	m, err := ParseMatchFromString(sampleMatchJSON)
	require.NoError(t, err)

	side, ok := m.SideOf("DTP")
	require.True(t, ok)
	require.Equal(t, Away, side)

	acc := &Accumulator{Key: "DTP"}
	for _, r := range m.SortedRounds() {
		for i := range r.Games {
			acc.AccumulateTeam(&r.Games[i], r.N, side)
		}
	}

	// Round 1 doubles gives DTP positions 1 and 3 (1000000 and 3000000);
	// round 2 singles gives it position 2 (36000000). The not-done game
	// contributes nothing.
	assert.Equal(t, []int{1000000, 3000000, 36000000}, acc.Scores)
	assert.Equal(t, 2, acc.Games)
	assert.Equal(t, 4, acc.EarnedPoints)
	assert.Equal(t, 8, acc.AvailablePoints)
}
