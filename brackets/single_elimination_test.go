package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/Dosada05/playoff-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Seed%d", i+1)
	}
	return names
}

func buildBracket(t *testing.T, n int) []*models.Match {
	t.Helper()
	matches, err := NewSingleElimination().Build(context.Background(), BuildParams{
		StageID:      "t1",
		TournamentID: 1,
		Teams:        seedNames(n),
	})
	require.NoError(t, err)
	return matches
}

func indexByID(matches []*models.Match) map[string]*models.Match {
	index := make(map[string]*models.Match, len(matches))
	for _, m := range matches {
		index[m.ID] = m
	}
	return index
}

func TestBuildRejectsTooFewTeams(t *testing.T) {
	gen := NewSingleElimination()
	for _, n := range []int{0, 1} {
		_, err := gen.Build(context.Background(), BuildParams{
			StageID: "t1", TournamentID: 1, Teams: seedNames(n),
		})
		assert.ErrorIs(t, err, ErrInsufficientTeams, "n=%d", n)
	}
}

// A knockout of N teams always plays exactly N-1 matches.
func TestBuildMatchCount(t *testing.T) {
	for n := 2; n <= 33; n++ {
		matches := buildBracket(t, n)
		assert.Len(t, matches, n-1, "n=%d", n)
	}
}

// Sizes in the upper quarter of a bracket need a play-in larger than
// half the first regular round; they must still build cleanly.
func TestBuildLargePlayIn(t *testing.T) {
	for _, n := range []int{7, 13, 14, 15, 25, 31} {
		matches := buildBracket(t, n)
		assert.Len(t, matches, n-1, "n=%d", n)
	}

	// n=7: three play-in matches, seed 1 the lone bye.
	matches := buildBracket(t, 7)
	index := indexByID(matches)

	byRound := map[int]int{}
	for _, m := range matches {
		byRound[m.Round]++
	}
	assert.Equal(t, map[int]int{1: 1, 2: 2, 3: 3}, byRound)

	playIn := index["t1_r3_m1"]
	require.NotNil(t, playIn.Team1)
	require.NotNil(t, playIn.Team2)
	assert.Equal(t, "Seed2", *playIn.Team1)
	assert.Equal(t, "Seed7", *playIn.Team2)

	semi := index["t1_r2_m1"]
	require.NotNil(t, semi.Team1)
	assert.Equal(t, "Seed1", *semi.Team1)
}

func TestBuildStructuralInvariants(t *testing.T) {
	for n := 2; n <= 33; n++ {
		matches := buildBracket(t, n)
		index := indexByID(matches)

		finals := 0
		claimed := make(map[string]bool)
		for _, m := range matches {
			if m.Round == 1 {
				finals++
				assert.Nil(t, m.NextMatchID, "n=%d final has no successor", n)
				continue
			}
			require.NotNil(t, m.NextMatchID, "n=%d match %s", n, m.ID)
			require.NotNil(t, m.DestinationSlot, "n=%d match %s", n, m.ID)

			next, ok := index[*m.NextMatchID]
			require.True(t, ok, "n=%d successor of %s exists", n, m.ID)
			assert.Equal(t, m.Round-1, next.Round, "n=%d successor is one round later", n)

			key := *m.NextMatchID + "/" + string(*m.DestinationSlot)
			assert.False(t, claimed[key], "n=%d slot %s claimed twice", n, key)
			claimed[key] = true
		}
		assert.Equal(t, 1, finals, "n=%d exactly one final", n)
	}
}

// Every registered team appears in exactly one earliest-round slot.
func TestBuildEveryTeamPlacedOnce(t *testing.T) {
	for n := 2; n <= 33; n++ {
		matches := buildBracket(t, n)

		seen := make(map[string]int)
		for _, m := range matches {
			if m.Team1 != nil {
				seen[*m.Team1]++
			}
			if m.Team2 != nil {
				seen[*m.Team2]++
			}
		}
		for _, name := range seedNames(n) {
			assert.Equal(t, 1, seen[name], "n=%d team %s placed once", n, name)
		}
	}
}

func TestBuildPowerOfTwo(t *testing.T) {
	matches := buildBracket(t, 8)
	index := indexByID(matches)

	// Three rounds, no play-in: 4 quarter-finals, 2 semis, 1 final.
	byRound := map[int]int{}
	for _, m := range matches {
		byRound[m.Round]++
	}
	assert.Equal(t, map[int]int{1: 1, 2: 2, 3: 4}, byRound)

	// Standard seeding: 1v8, 4v5, 2v7, 3v6 in some order; seed 1 and
	// seed 2 start in opposite halves.
	m1 := index["t1_r3_m1"]
	require.NotNil(t, m1.Team1)
	require.NotNil(t, m1.Team2)
	assert.Equal(t, "Seed1", *m1.Team1)
	assert.Equal(t, "Seed8", *m1.Team2)

	one := index["t1_r3_m1"]
	two := index["t1_r3_m3"]
	require.NotNil(t, two.Team1)
	assert.Equal(t, "Seed2", *two.Team1)
	assert.NotEqual(t, *one.NextMatchID, *two.NextMatchID)
}

func TestBuildFiveTeams(t *testing.T) {
	matches := buildBracket(t, 5)
	index := indexByID(matches)

	// rounds = 3, play-in of one match, three byes.
	byRound := map[int]int{}
	for _, m := range matches {
		byRound[m.Round]++
	}
	assert.Equal(t, map[int]int{1: 1, 2: 2, 3: 1}, byRound)

	playIn := index["t1_r3_m1"]
	require.NotNil(t, playIn)
	require.NotNil(t, playIn.Team1)
	require.NotNil(t, playIn.Team2)
	assert.Equal(t, "Seed4", *playIn.Team1)
	assert.Equal(t, "Seed5", *playIn.Team2)
	assert.Equal(t, models.MatchStatusUpcoming, playIn.Status)

	// The play-in winner meets seed 1.
	require.NotNil(t, playIn.NextMatchID)
	next := index[*playIn.NextMatchID]
	require.NotNil(t, next.TeamInSlot(models.SlotTeam1))
	assert.Equal(t, "Seed1", *next.TeamInSlot(models.SlotTeam1))
	require.NotNil(t, playIn.DestinationSlot)
	assert.Nil(t, next.TeamInSlot(*playIn.DestinationSlot))

	// Byes go to the top three seeds; no match is pre-completed.
	for _, m := range matches {
		assert.Equal(t, models.MatchStatusUpcoming, m.Status)
		assert.Nil(t, m.Winner)
	}
}

func TestBuildSixTeams(t *testing.T) {
	matches := buildBracket(t, 6)

	// Two play-in matches: 3v6 and 4v5 by seed.
	var playIns []*models.Match
	for _, m := range matches {
		if m.Round == 3 {
			playIns = append(playIns, m)
		}
	}
	require.Len(t, playIns, 2)
	assert.Equal(t, "Seed3", *playIns[0].Team1)
	assert.Equal(t, "Seed6", *playIns[0].Team2)
	assert.Equal(t, "Seed4", *playIns[1].Team1)
	assert.Equal(t, "Seed5", *playIns[1].Team2)
}

func TestBuildTwoTeams(t *testing.T) {
	matches := buildBracket(t, 2)
	require.Len(t, matches, 1)

	final := matches[0]
	assert.Equal(t, 1, final.Round)
	assert.Equal(t, "Seed1", *final.Team1)
	assert.Equal(t, "Seed2", *final.Team2)
	assert.Nil(t, final.NextMatchID)
}

func TestBuildDeterministic(t *testing.T) {
	first := buildBracket(t, 11)
	second := buildBracket(t, 11)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, *first[i], *second[i])
	}
}

func TestBuildMatchNumbersFollowPlayOrder(t *testing.T) {
	matches := buildBracket(t, 9)

	for i, m := range matches {
		assert.Equal(t, i+1, m.MatchNumber)
	}
	// Later rounds never play before earlier ones.
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Round, matches[i].Round)
	}
}

func TestRoundName(t *testing.T) {
	assert.Equal(t, "Finals", RoundName(1))
	assert.Equal(t, "Semi-Finals", RoundName(2))
	assert.Equal(t, "Quarter-Finals", RoundName(3))
	assert.Equal(t, "Round of 16", RoundName(4))
	assert.Equal(t, "Round of 32", RoundName(5))
	assert.Equal(t, "Round 6", RoundName(6))
}
