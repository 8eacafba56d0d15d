package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrInvalidSeedingMode     = errors.New("seeding mode must be manual or random")
	ErrRegistrationNotOpen    = errors.New("tournament registration is not open")

	// Bracket lifecycle
	ErrBracketAlreadyGenerated = errors.New("bracket has already been generated for this tournament")
	ErrTournamentNotStartable  = errors.New("tournament is not in a state that allows bracket generation")

	// Live scoring lifecycle
	ErrScoreboardExists        = errors.New("a live scoreboard already exists for this match")
	ErrMatchAlreadyCompleted   = errors.New("match is already completed")
	ErrMatchNotAwaitingReview  = errors.New("match has no score awaiting review")
	ErrSubmissionPendingReview = errors.New("a pending submission must be reviewed before the scoreboard can be discarded")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Tournament status machine
	ErrTournamentInvalidStatus           = errors.New("invalid tournament status provided")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
)
