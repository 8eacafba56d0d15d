package models

import "time"

// Team is a registered contender. The name is the identity: matches and
// scoreboards reference teams by name, equality is by value.
type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	Seed         int       `json:"seed" db:"seed"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
