package scoring

import (
	"errors"
	"fmt"

	"github.com/Dosada05/playoff-system/models"
)

// Validation failures are returned as wrapped sentinel errors so callers
// can map them to structured rejections. None of them indicate engine
// state; no function in this package has side effects.
var (
	ErrInvalidRules    = errors.New("invalid match rules")
	ErrNegativeScore   = errors.New("set scores must be non-negative")
	ErrScoreExceedsCap = errors.New("set score exceeds the cap")
	ErrCapWinByOne     = errors.New("a set ending at the cap must be won by exactly one point")
	ErrSetIncomplete   = errors.New("set incomplete")
	ErrWinByNotMet     = errors.New("winning margin too small")
)

// ValidateRules rejects rule configurations before any match state exists.
func ValidateRules(r models.MatchRules) error {
	if r.FirstTo <= 0 {
		return fmt.Errorf("%w: first_to must be positive, got %d", ErrInvalidRules, r.FirstTo)
	}
	if r.WinBy <= 0 {
		return fmt.Errorf("%w: win_by must be positive, got %d", ErrInvalidRules, r.WinBy)
	}
	if r.Cap < r.FirstTo {
		return fmt.Errorf("%w: cap %d is below first_to %d", ErrInvalidRules, r.Cap, r.FirstTo)
	}
	if r.BestOf < 1 || r.BestOf%2 == 0 {
		return fmt.Errorf("%w: best_of must be an odd positive number, got %d", ErrInvalidRules, r.BestOf)
	}
	return nil
}

// ValidateSet decides whether a pair of scores is a finished, legal set
// under the given rules, and if so which side won it.
//
// Below the cap the usual rules apply: the winner must reach FirstTo with
// a margin of at least WinBy. At the cap the margin rule relaxes to
// win-by-one: play stops the moment a side reaches Cap, so the only legal
// final score there is Cap to Cap-1. Scores past the cap cannot come from
// legal play and are rejected. Ties are never valid.
func ValidateSet(score1, score2 int, rules models.MatchRules) (models.Slot, error) {
	if score1 < 0 || score2 < 0 {
		return "", fmt.Errorf("%w: got %d-%d", ErrNegativeScore, score1, score2)
	}

	hi, lo := score1, score2
	winner := models.SlotTeam1
	if score2 > score1 {
		hi, lo = score2, score1
		winner = models.SlotTeam2
	}

	if hi >= rules.Cap {
		if hi > rules.Cap {
			return "", fmt.Errorf("%w: %d is past the cap of %d", ErrScoreExceedsCap, hi, rules.Cap)
		}
		if hi-lo != 1 {
			return "", fmt.Errorf("%w: got %d-%d at cap %d", ErrCapWinByOne, score1, score2, rules.Cap)
		}
		return winner, nil
	}

	if hi < rules.FirstTo {
		return "", fmt.Errorf("%w: neither side reached %d", ErrSetIncomplete, rules.FirstTo)
	}
	if hi-lo < rules.WinBy {
		return "", fmt.Errorf("%w: must win by %d, got %d-%d", ErrWinByNotMet, rules.WinBy, score1, score2)
	}
	return winner, nil
}

// MatchWinner reports which side has won enough sets to take the match.
// The second return is false while the match is still undecided; callers
// must treat that as "match incomplete" and refuse submission.
func MatchWinner(team1SetsWon, team2SetsWon int, rules models.MatchRules) (models.Slot, bool) {
	need := rules.SetsToWin()
	switch {
	case team1SetsWon >= need:
		return models.SlotTeam1, true
	case team2SetsWon >= need:
		return models.SlotTeam2, true
	default:
		return "", false
	}
}
