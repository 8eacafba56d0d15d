package models

import "time"

type MatchStatus string

const (
	MatchStatusUpcoming  MatchStatus = "upcoming"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
)

// Slot identifies one of the two sides of a match. A completed match
// carries the slot of its successor that its winner feeds into; the slot
// is fixed once at bracket construction and never recomputed afterwards.
type Slot string

const (
	SlotTeam1 Slot = "team1"
	SlotTeam2 Slot = "team2"
)

// Match is one node of the bracket graph. Round 1 is the final; round
// numbers increase toward earlier rounds. NextMatchID is nil only for the
// final.
type Match struct {
	ID           string      `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	Round        int         `json:"round" db:"round"`
	MatchNumber  int         `json:"match_number" db:"match_number"`
	Team1        *string     `json:"team1,omitempty" db:"team1"`
	Team2        *string     `json:"team2,omitempty" db:"team2"`
	Score1       *int        `json:"score1,omitempty" db:"score1"`
	Score2       *int        `json:"score2,omitempty" db:"score2"`
	Winner       *string     `json:"winner,omitempty" db:"winner"`
	Status       MatchStatus `json:"status" db:"status"`

	NextMatchID     *string `json:"next_match_id,omitempty" db:"next_match_id"`
	DestinationSlot *Slot   `json:"destination_slot,omitempty" db:"destination_slot"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty" db:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	ApprovedBy  *int       `json:"approved_by,omitempty" db:"approved_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// TeamInSlot returns the team currently occupying the given slot, or nil.
func (m *Match) TeamInSlot(slot Slot) *string {
	if slot == SlotTeam1 {
		return m.Team1
	}
	return m.Team2
}

// SetTeamInSlot writes a team into the given slot without touching the
// other one.
func (m *Match) SetTeamInSlot(slot Slot, team string) {
	if slot == SlotTeam1 {
		m.Team1 = &team
	} else {
		m.Team2 = &team
	}
}
