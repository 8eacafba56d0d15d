package scoring

import (
	"testing"

	"github.com/Dosada05/playoff-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveMatch() *models.Match {
	team1, team2 := "Falcons", "Otters"
	return &models.Match{
		ID:           "t1_r1_m1",
		TournamentID: 1,
		Round:        1,
		Team1:        &team1,
		Team2:        &team2,
		Status:       models.MatchStatusUpcoming,
	}
}

func scorePoints(t *testing.T, sb *Scoreboard, slot models.Slot, points int) {
	t.Helper()
	for i := 0; i < points; i++ {
		require.NoError(t, sb.IncrementScore(slot))
	}
}

func TestNewScoreboard(t *testing.T) {
	sb, err := NewScoreboard(liveMatch(), volleyballRules())
	require.NoError(t, err)

	assert.Equal(t, "t1_r1_m1", sb.MatchID)
	assert.Equal(t, ScoreboardActive, sb.Status)
	assert.Equal(t, 1, sb.CurrentSet)
	require.Len(t, sb.Sets, 3)
	assert.Equal(t, 1, sb.Sets[0].Index)
	assert.Equal(t, 3, sb.Sets[2].Index)
	assert.Nil(t, sb.Winner)
}

func TestNewScoreboardUnresolvedTeams(t *testing.T) {
	match := liveMatch()
	match.Team2 = nil

	_, err := NewScoreboard(match, volleyballRules())
	assert.ErrorIs(t, err, ErrTeamsUnresolved)
}

func TestNewScoreboardInvalidRules(t *testing.T) {
	_, err := NewScoreboard(liveMatch(), models.MatchRules{FirstTo: 21, WinBy: 2, Cap: 30, BestOf: 2})
	assert.ErrorIs(t, err, ErrInvalidRules)
}

// Full best-of-3 walkthrough: two straight sets end the match in review.
func TestScoreboardStraightSetsToReview(t *testing.T) {
	sb, err := NewScoreboard(liveMatch(), volleyballRules())
	require.NoError(t, err)

	// Set 1: 21-15.
	scorePoints(t, sb, models.SlotTeam2, 15)
	scorePoints(t, sb, models.SlotTeam1, 21)

	assert.Equal(t, 1, sb.Team1SetsWon)
	assert.Equal(t, 0, sb.Team2SetsWon)
	assert.Equal(t, 2, sb.CurrentSet)
	require.NotNil(t, sb.Sets[0].Winner)
	assert.Equal(t, models.SlotTeam1, *sb.Sets[0].Winner)

	// Set 2: 21-19.
	scorePoints(t, sb, models.SlotTeam2, 19)
	scorePoints(t, sb, models.SlotTeam1, 21)

	assert.Equal(t, ScoreboardReview, sb.Status)
	require.NotNil(t, sb.Winner)
	assert.Equal(t, models.SlotTeam1, *sb.Winner)
	require.NotNil(t, sb.WinnerName())
	assert.Equal(t, "Falcons", *sb.WinnerName())

	// Nothing mutates once the match is in review.
	assert.ErrorIs(t, sb.IncrementScore(models.SlotTeam2), ErrScoreboardLocked)
	assert.ErrorIs(t, sb.ResetCurrentSet(), ErrScoreboardLocked)

	played := sb.PlayedSets()
	require.Len(t, played, 2)
	assert.Equal(t, models.SetScore{Score1: 21, Score2: 15}, played[0])
	assert.Equal(t, models.SetScore{Score1: 21, Score2: 19}, played[1])
}

func TestScoreboardThreeSetMatch(t *testing.T) {
	sb, err := NewScoreboard(liveMatch(), volleyballRules())
	require.NoError(t, err)

	scorePoints(t, sb, models.SlotTeam1, 21) // 21-0
	scorePoints(t, sb, models.SlotTeam2, 21) // 0-21
	assert.Equal(t, 3, sb.CurrentSet)
	assert.Equal(t, ScoreboardActive, sb.Status)

	scorePoints(t, sb, models.SlotTeam2, 21) // 0-21
	assert.Equal(t, ScoreboardReview, sb.Status)
	require.NotNil(t, sb.WinnerName())
	assert.Equal(t, "Otters", *sb.WinnerName())
}

// At 20-20 the set must continue to a two point margin; at 29-29 one more
// point ends it at the cap.
func TestScoreboardDeuceAndCap(t *testing.T) {
	sb, err := NewScoreboard(liveMatch(), volleyballRules())
	require.NoError(t, err)

	for i := 0; i < 29; i++ {
		scorePoints(t, sb, models.SlotTeam1, 1)
		scorePoints(t, sb, models.SlotTeam2, 1)
	}
	assert.Equal(t, 1, sb.CurrentSet)
	assert.Nil(t, sb.Sets[0].Winner)

	scorePoints(t, sb, models.SlotTeam1, 1) // 30-29
	assert.Equal(t, 2, sb.CurrentSet)
	require.NotNil(t, sb.Sets[0].Winner)
	assert.Equal(t, models.SlotTeam1, *sb.Sets[0].Winner)
}

func TestScoreboardDecrement(t *testing.T) {
	sb, err := NewScoreboard(liveMatch(), volleyballRules())
	require.NoError(t, err)

	scorePoints(t, sb, models.SlotTeam1, 2)
	require.NoError(t, sb.DecrementScore(models.SlotTeam1))
	assert.Equal(t, 1, sb.Sets[0].Score1)

	// Decrement at zero is a silent no-op.
	require.NoError(t, sb.DecrementScore(models.SlotTeam2))
	assert.Equal(t, 0, sb.Sets[0].Score2)
}

func TestScoreboardResetCurrentSet(t *testing.T) {
	sb, err := NewScoreboard(liveMatch(), volleyballRules())
	require.NoError(t, err)

	scorePoints(t, sb, models.SlotTeam1, 21) // set 1 done
	scorePoints(t, sb, models.SlotTeam1, 5)
	scorePoints(t, sb, models.SlotTeam2, 3)

	require.NoError(t, sb.ResetCurrentSet())
	assert.Equal(t, 0, sb.Sets[1].Score1)
	assert.Equal(t, 0, sb.Sets[1].Score2)

	// The finished set and the counters are untouched.
	assert.Equal(t, 21, sb.Sets[0].Score1)
	assert.Equal(t, 1, sb.Team1SetsWon)
	assert.Equal(t, 2, sb.CurrentSet)
}

func TestScoreboardLock(t *testing.T) {
	sb, err := NewScoreboard(liveMatch(), volleyballRules())
	require.NoError(t, err)

	sb.Locked = true
	assert.ErrorIs(t, sb.IncrementScore(models.SlotTeam1), ErrScoreboardLocked)
	assert.ErrorIs(t, sb.DecrementScore(models.SlotTeam1), ErrScoreboardLocked)
	assert.ErrorIs(t, sb.ResetCurrentSet(), ErrScoreboardLocked)

	sb.Locked = false
	assert.NoError(t, sb.IncrementScore(models.SlotTeam1))
}

func TestScoreboardComplete(t *testing.T) {
	sb, err := NewScoreboard(liveMatch(), volleyballRules())
	require.NoError(t, err)

	// Not in review yet.
	assert.ErrorIs(t, sb.Complete(), ErrNotInReview)

	scorePoints(t, sb, models.SlotTeam1, 21)
	scorePoints(t, sb, models.SlotTeam1, 21)
	require.Equal(t, ScoreboardReview, sb.Status)

	require.NoError(t, sb.Complete())
	assert.Equal(t, ScoreboardCompleted, sb.Status)

	// Completed is terminal.
	assert.ErrorIs(t, sb.Complete(), ErrNotInReview)
	assert.ErrorIs(t, sb.IncrementScore(models.SlotTeam1), ErrScoreboardLocked)
}
