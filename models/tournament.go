package models

import "time"

// TournamentStatus mirrors the ENUM in the database.
type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

// SeedingMode controls how the registered team order is turned into the
// seed order fed to the bracket builder.
type SeedingMode string

const (
	SeedingManual SeedingMode = "manual"
	SeedingRandom SeedingMode = "random"
)

type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Sport       *string          `json:"sport,omitempty" db:"sport"`
	OrganizerID int              `json:"organizer_id" db:"organizer_id"`
	Status      TournamentStatus `json:"status" db:"status"`
	SeedingMode SeedingMode      `json:"seeding_mode" db:"seeding_mode"`

	// DefaultRules applies to every round; FinalsRules, when present,
	// overrides it for round 1.
	DefaultRules MatchRules  `json:"default_rules" db:"default_rules"`
	FinalsRules  *MatchRules `json:"finals_rules,omitempty" db:"finals_rules"`

	LogoKey   *string   `json:"-" db:"logo_key"`
	LogoURL   *string   `json:"logo_url,omitempty" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Related entities, loaded on demand.
	Teams   []Team  `json:"teams,omitempty" db:"-"`
	Matches []Match `json:"matches,omitempty" db:"-"`
}

// RulesForRound picks the rules for a round, applying the finals override.
func (t *Tournament) RulesForRound(round int) MatchRules {
	if round == 1 && t.FinalsRules != nil {
		return *t.FinalsRules
	}
	return t.DefaultRules
}
