package scoring

import (
	"errors"
	"fmt"

	"github.com/Dosada05/playoff-system/models"
)

type ScoreboardStatus string

const (
	ScoreboardActive    ScoreboardStatus = "active"
	ScoreboardReview    ScoreboardStatus = "review"
	ScoreboardCompleted ScoreboardStatus = "completed"
)

var (
	// ErrScoreboardLocked covers every blocked mutation: an explicit lock,
	// a scoreboard already in review, or a completed one.
	ErrScoreboardLocked = errors.New("scoreboard does not accept score changes")

	// ErrSetIndexOutOfRange is an internal-consistency fault, not a user
	// error: CurrentSet stepped outside the pre-allocated set list.
	ErrSetIndexOutOfRange = errors.New("current set index out of range")

	ErrTeamsUnresolved = errors.New("both contenders must be known before a scoreboard is created")
	ErrMatchUndecided  = errors.New("match winner not decided yet")
	ErrNotInReview     = errors.New("scoreboard is not awaiting review")
)

// Set is one scoring segment of a live match. Winner stays nil until the
// set validates as finished.
type Set struct {
	Index  int          `json:"index"`
	Score1 int          `json:"score1"`
	Score2 int          `json:"score2"`
	Winner *models.Slot `json:"winner,omitempty"`
}

// Scoreboard is the live session for one in-progress match. It owns the
// per-set state machine; persistence and concurrent access are the
// caller's concern (one logical writer per match, read-modify-write
// against the store).
//
// Status moves ACTIVE → REVIEW → COMPLETED and never back. A rejected
// submission discards the scoreboard entirely rather than reopening it.
type Scoreboard struct {
	MatchID      string            `json:"match_id"`
	Team1        string            `json:"team1"`
	Team2        string            `json:"team2"`
	Rules        models.MatchRules `json:"rules"`
	Sets         []Set             `json:"sets"`
	CurrentSet   int               `json:"current_set"`
	Team1SetsWon int               `json:"team1_sets_won"`
	Team2SetsWon int               `json:"team2_sets_won"`
	Winner       *models.Slot      `json:"winner,omitempty"`
	Status       ScoreboardStatus  `json:"status"`
	Locked       bool              `json:"locked"`
}

// NewScoreboard starts a live session for a match whose contenders are
// both known. Sets are pre-allocated to BestOf; CurrentSet is 1-indexed.
func NewScoreboard(match *models.Match, rules models.MatchRules) (*Scoreboard, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}
	if match.Team1 == nil || match.Team2 == nil {
		return nil, fmt.Errorf("%w: match %s", ErrTeamsUnresolved, match.ID)
	}

	sets := make([]Set, rules.BestOf)
	for i := range sets {
		sets[i].Index = i + 1
	}

	return &Scoreboard{
		MatchID:    match.ID,
		Team1:      *match.Team1,
		Team2:      *match.Team2,
		Rules:      rules,
		Sets:       sets,
		CurrentSet: 1,
		Status:     ScoreboardActive,
	}, nil
}

func (sb *Scoreboard) IncrementScore(slot models.Slot) error {
	return sb.applyScore(slot, 1)
}

// DecrementScore undoes a point. Going below zero is a no-op, not an
// error.
func (sb *Scoreboard) DecrementScore(slot models.Slot) error {
	return sb.applyScore(slot, -1)
}

func (sb *Scoreboard) applyScore(slot models.Slot, delta int) error {
	if err := sb.mutable(); err != nil {
		return err
	}
	set, err := sb.currentSet()
	if err != nil {
		return err
	}

	target := &set.Score1
	if slot == models.SlotTeam2 {
		target = &set.Score2
	}
	if *target+delta < 0 {
		return nil
	}
	*target += delta

	sb.settleCurrentSet(set)
	return nil
}

// settleCurrentSet runs after every mutation. While the set does not
// validate as finished nothing happens; once it does, the set winner is
// recorded and play moves on or the whole match goes to review.
func (sb *Scoreboard) settleCurrentSet(set *Set) {
	winner, err := ValidateSet(set.Score1, set.Score2, sb.Rules)
	if err != nil {
		return
	}

	set.Winner = &winner
	if winner == models.SlotTeam1 {
		sb.Team1SetsWon++
	} else {
		sb.Team2SetsWon++
	}

	if matchWinner, decided := MatchWinner(sb.Team1SetsWon, sb.Team2SetsWon, sb.Rules); decided {
		sb.Winner = &matchWinner
		sb.Status = ScoreboardReview
		return
	}
	sb.CurrentSet++
}

// ResetCurrentSet zeroes both scores of the set in play. Counters and
// CurrentSet are untouched; finished sets cannot be reset.
func (sb *Scoreboard) ResetCurrentSet() error {
	if err := sb.mutable(); err != nil {
		return err
	}
	set, err := sb.currentSet()
	if err != nil {
		return err
	}
	set.Score1 = 0
	set.Score2 = 0
	return nil
}

// Complete is the REVIEW → COMPLETED transition, taken only once an
// external approver accepts the submitted score.
func (sb *Scoreboard) Complete() error {
	if sb.Status != ScoreboardReview {
		return fmt.Errorf("%w: status is %s", ErrNotInReview, sb.Status)
	}
	sb.Status = ScoreboardCompleted
	return nil
}

// WinnerName resolves the winning slot to a team name, or nil while the
// match is undecided.
func (sb *Scoreboard) WinnerName() *string {
	if sb.Winner == nil {
		return nil
	}
	name := sb.Team1
	if *sb.Winner == models.SlotTeam2 {
		name = sb.Team2
	}
	return &name
}

// PlayedSets returns the finished sets in order, for submission records.
func (sb *Scoreboard) PlayedSets() []models.SetScore {
	scores := make([]models.SetScore, 0, len(sb.Sets))
	for _, set := range sb.Sets {
		if set.Winner == nil {
			continue
		}
		scores = append(scores, models.SetScore{Score1: set.Score1, Score2: set.Score2})
	}
	return scores
}

func (sb *Scoreboard) mutable() error {
	if sb.Status != ScoreboardActive || sb.Locked {
		return fmt.Errorf("%w: status=%s locked=%t", ErrScoreboardLocked, sb.Status, sb.Locked)
	}
	return nil
}

func (sb *Scoreboard) currentSet() (*Set, error) {
	if sb.CurrentSet < 1 || sb.CurrentSet > len(sb.Sets) {
		return nil, fmt.Errorf("%w: set %d of %d", ErrSetIndexOutOfRange, sb.CurrentSet, len(sb.Sets))
	}
	return &sb.Sets[sb.CurrentSet-1], nil
}
