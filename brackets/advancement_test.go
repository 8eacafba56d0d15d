package brackets

import (
	"context"
	"testing"

	"github.com/Dosada05/playoff-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeMatch(m *models.Match, winner string) *models.Match {
	done := *m
	done.Winner = &winner
	done.Status = models.MatchStatusCompleted
	return &done
}

func TestAdvanceWinnerIntoSuccessor(t *testing.T) {
	matches := buildBracket(t, 4)
	index := indexByID(matches)

	semi := index["t1_r2_m1"]
	done := completeMatch(semi, *semi.Team1)
	index[done.ID] = done

	final, err := Advance(done, index)
	require.NoError(t, err)
	require.NotNil(t, final)

	assert.Equal(t, *semi.NextMatchID, final.ID)
	occupant := final.TeamInSlot(*semi.DestinationSlot)
	require.NotNil(t, occupant)
	assert.Equal(t, *done.Winner, *occupant)

	// The stored successor is untouched; only the returned copy changed.
	assert.Nil(t, index[final.ID].TeamInSlot(*semi.DestinationSlot))
}

func TestAdvanceRejectsUnfinishedMatch(t *testing.T) {
	matches := buildBracket(t, 4)
	index := indexByID(matches)

	_, err := Advance(index["t1_r2_m1"], index)
	assert.ErrorIs(t, err, ErrMatchNotCompleted)

	// Completed status without a winner is equally invalid.
	broken := *index["t1_r2_m1"]
	broken.Status = models.MatchStatusCompleted
	_, err = Advance(&broken, index)
	assert.ErrorIs(t, err, ErrMatchNotCompleted)
}

func TestAdvanceFinalEndsTournament(t *testing.T) {
	matches := buildBracket(t, 2)
	final := completeMatch(matches[0], *matches[0].Team1)

	successor, err := Advance(final, indexByID(matches))
	require.NoError(t, err)
	assert.Nil(t, successor)
}

// Re-running Advance with the same completed match is a no-op, so
// approval retries are safe.
func TestAdvanceIdempotent(t *testing.T) {
	matches := buildBracket(t, 4)
	index := indexByID(matches)

	semi := index["t1_r2_m1"]
	done := completeMatch(semi, *semi.Team1)
	index[done.ID] = done

	first, err := Advance(done, index)
	require.NoError(t, err)
	index[first.ID] = first

	second, err := Advance(done, index)
	require.NoError(t, err)
	assert.Equal(t, *first, *second)
}

func TestAdvanceSlotConflict(t *testing.T) {
	matches := buildBracket(t, 4)
	index := indexByID(matches)

	semi := index["t1_r2_m1"]
	done := completeMatch(semi, *semi.Team1)
	index[done.ID] = done

	// Someone else already sits in the destination slot.
	intruder := "Intruder"
	index[*semi.NextMatchID].SetTeamInSlot(*semi.DestinationSlot, intruder)

	_, err := Advance(done, index)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestAdvanceMissingSuccessor(t *testing.T) {
	matches := buildBracket(t, 4)
	index := indexByID(matches)

	semi := index["t1_r2_m1"]
	done := completeMatch(semi, *semi.Team1)
	delete(index, *semi.NextMatchID)

	_, err := Advance(done, index)
	assert.ErrorIs(t, err, ErrSuccessorNotFound)
}

// Winners propagate play-in -> semi-final -> final across a five team
// bracket.
func TestAdvanceFullTournament(t *testing.T) {
	matches, err := NewSingleElimination().Build(context.Background(), BuildParams{
		StageID:      "t1",
		TournamentID: 1,
		Teams:        seedNames(5),
	})
	require.NoError(t, err)
	index := indexByID(matches)

	// Play the bracket in match order, always advancing Team1.
	for _, m := range matches {
		current := index[m.ID]
		require.NotNil(t, current.Team1, "match %s has team1 resolved", m.ID)
		require.NotNil(t, current.Team2, "match %s has team2 resolved", m.ID)

		done := completeMatch(current, *current.Team1)
		index[done.ID] = done

		successor, advErr := Advance(done, index)
		require.NoError(t, advErr)
		if successor != nil {
			index[successor.ID] = successor
		} else {
			assert.Equal(t, 1, done.Round)
		}
	}

	final := index["t1_r1_m1"]
	require.NotNil(t, final.Winner)
	assert.Equal(t, "Seed1", *final.Winner)
}
