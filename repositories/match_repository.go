package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/playoff-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchIDConflict        = errors.New("match id already exists")
)

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, round *int) ([]*models.Match, error)
	UpdateTeams(ctx context.Context, exec SQLExecutor, id string, team1, team2 *string) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.MatchStatus) error
	MarkSubmitted(ctx context.Context, exec SQLExecutor, id string, submittedAt time.Time) error
	Complete(ctx context.Context, exec SQLExecutor, id string, score1, score2 int, winner string, approvedBy int, approvedAt time.Time) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, tournament_id, round, match_number, team1, team2, score1, score2,
	winner, status, next_match_id, destination_slot, submitted_at,
	approved_at, approved_by, created_at`

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	query := `
		INSERT INTO matches
			(id, tournament_id, round, match_number, team1, team2, winner,
			 status, next_match_id, destination_slot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	for _, m := range matches {
		var slot *string
		if m.DestinationSlot != nil {
			s := string(*m.DestinationSlot)
			slot = &s
		}
		err := exec.QueryRowContext(ctx, query,
			m.ID,
			m.TournamentID,
			m.Round,
			m.MatchNumber,
			m.Team1,
			m.Team2,
			m.Winner,
			m.Status,
			m.NextMatchID,
			slot,
		).Scan(&m.CreatedAt)
		if err != nil {
			return r.handleMatchError(err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %s: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int, round *int) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	if round != nil {
		queryBuilder.WriteString(" AND round = $" + strconv.Itoa(len(args)+1))
		args = append(args, *round)
	}
	queryBuilder.WriteString(" ORDER BY match_number ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateTeams(ctx context.Context, exec SQLExecutor, id string, team1, team2 *string) error {
	query := `UPDATE matches SET team1 = $1, team2 = $2 WHERE id = $3`
	result, err := exec.ExecContext(ctx, query, team1, team2, id)
	if err != nil {
		return fmt.Errorf("UpdateTeams: failed to execute query for match %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.MatchStatus) error {
	query := `UPDATE matches SET status = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("UpdateStatus: failed to execute query for match %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) MarkSubmitted(ctx context.Context, exec SQLExecutor, id string, submittedAt time.Time) error {
	query := `UPDATE matches SET submitted_at = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, submittedAt, id)
	if err != nil {
		return fmt.Errorf("MarkSubmitted: failed to execute query for match %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Complete(ctx context.Context, exec SQLExecutor, id string, score1, score2 int, winner string, approvedBy int, approvedAt time.Time) error {
	query := `
		UPDATE matches
		SET score1 = $1, score2 = $2, winner = $3, status = $4,
		    approved_by = $5, approved_at = $6
		WHERE id = $7`
	result, err := exec.ExecContext(ctx, query,
		score1, score2, winner, models.MatchStatusCompleted, approvedBy, approvedAt, id)
	if err != nil {
		return fmt.Errorf("Complete: failed to execute query for match %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	_, err := exec.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("DeleteByTournament: failed for tournament %d: %w", tournamentID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var match models.Match
	var slot sql.NullString
	err := row.Scan(
		&match.ID,
		&match.TournamentID,
		&match.Round,
		&match.MatchNumber,
		&match.Team1,
		&match.Team2,
		&match.Score1,
		&match.Score2,
		&match.Winner,
		&match.Status,
		&match.NextMatchID,
		&slot,
		&match.SubmittedAt,
		&match.ApprovedAt,
		&match.ApprovedBy,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if slot.Valid {
		s := models.Slot(slot.String)
		match.DestinationSlot = &s
	}
	return &match, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_pkey":
			return ErrMatchIDConflict
		}
	}
	return err
}
