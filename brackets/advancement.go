package brackets

import (
	"errors"
	"fmt"

	"github.com/Dosada05/playoff-system/models"
)

var (
	ErrMatchNotCompleted = errors.New("match is not completed or has no winner")
	ErrSuccessorNotFound = errors.New("successor match not found in collection")
	ErrNoDestinationSlot = errors.New("completed match carries no destination slot")

	// ErrSlotConflict means the successor slot already holds a different
	// team. That is a caller or construction bug, never overwritten.
	ErrSlotConflict = errors.New("successor slot already holds a different team")
)

// Advance pushes the winner of a completed match into its pre-wired slot
// of the successor and returns an updated copy of that successor for the
// caller to persist. The input collection is never mutated.
//
// The destination slot was fixed at construction time; no positional
// arithmetic happens here. Calling Advance twice with the same completed
// match yields the same successor state, so retries are safe.
//
// A nil, nil return means the completed match was the final and the
// tournament is decided.
func Advance(completed *models.Match, all map[string]*models.Match) (*models.Match, error) {
	if completed.Status != models.MatchStatusCompleted || completed.Winner == nil {
		return nil, fmt.Errorf("%w: match %s", ErrMatchNotCompleted, completed.ID)
	}
	if completed.NextMatchID == nil {
		return nil, nil
	}
	if completed.DestinationSlot == nil {
		return nil, fmt.Errorf("%w: match %s", ErrNoDestinationSlot, completed.ID)
	}

	successor, ok := all[*completed.NextMatchID]
	if !ok {
		return nil, fmt.Errorf("%w: %s (from match %s)", ErrSuccessorNotFound, *completed.NextMatchID, completed.ID)
	}

	updated := *successor
	if occupant := updated.TeamInSlot(*completed.DestinationSlot); occupant != nil {
		if *occupant == *completed.Winner {
			return &updated, nil
		}
		return nil, fmt.Errorf("%w: match %s slot %s holds %q, winner is %q",
			ErrSlotConflict, updated.ID, *completed.DestinationSlot, *occupant, *completed.Winner)
	}
	updated.SetTeamInSlot(*completed.DestinationSlot, *completed.Winner)
	return &updated, nil
}
