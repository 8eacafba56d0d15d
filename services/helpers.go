package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/playoff-system/models"
	"github.com/Dosada05/playoff-system/storage"
)

// withTransaction wraps fn in a transaction. A panic inside fn rolls back
// and re-panics; any returned error rolls back.
func withTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()
	return fn(tx)
}

// tournamentRoom is the websocket room key shared by handlers and
// services broadcasting for one tournament.
func tournamentRoom(tournamentID int) string {
	return fmt.Sprintf("tournament_%d", tournamentID)
}

// isValidStatusTransition encodes the tournament lifecycle. Completed and
// canceled are terminal.
func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusSoon:         {models.StatusRegistration, models.StatusCanceled},
		models.StatusRegistration: {models.StatusActive, models.StatusCanceled},
		models.StatusActive:       {models.StatusCompleted, models.StatusCanceled},
		models.StatusCompleted:    {},
		models.StatusCanceled:     {},
	}
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

// bracketResolved reports whether an approved result just decided the
// whole bracket: the completed match feeds no successor, so it was the
// final of a still-active tournament.
func bracketResolved(successor *models.Match, tournament *models.Tournament) bool {
	return successor == nil && tournament.Status == models.StatusActive
}

func hasPendingSubmission(submissions []*models.Submission) bool {
	for _, sub := range submissions {
		if sub != nil && sub.Status == models.SubmissionPending {
			return true
		}
	}
	return false
}

func isKnownStatus(status models.TournamentStatus) bool {
	switch status {
	case models.StatusSoon, models.StatusRegistration, models.StatusActive,
		models.StatusCompleted, models.StatusCanceled:
		return true
	}
	return false
}

func populateTournamentLogoURL(tournament *models.Tournament, uploader storage.FileUploader) {
	if tournament == nil || uploader == nil {
		return
	}
	if tournament.LogoKey != nil && *tournament.LogoKey != "" {
		url := uploader.GetPublicURL(*tournament.LogoKey)
		tournament.LogoURL = &url
	}
}

func matchesToValues(matches []*models.Match) []models.Match {
	if matches == nil {
		return []models.Match{}
	}
	result := make([]models.Match, len(matches))
	for i, m := range matches {
		if m != nil {
			result[i] = *m
		}
	}
	return result
}

func teamsToValues(teams []*models.Team) []models.Team {
	if teams == nil {
		return []models.Team{}
	}
	result := make([]models.Team, len(teams))
	for i, t := range teams {
		if t != nil {
			result[i] = *t
		}
	}
	return result
}
