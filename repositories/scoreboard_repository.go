package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/playoff-system/scoring"
)

var ErrScoreboardNotFound = errors.New("scoreboard not found")

// ScoreboardRepository stores the live session as one JSONB document per
// match. Every mutation is a whole-document upsert, which gives the
// single-writer read-modify-write semantics the state machine assumes.
type ScoreboardRepository interface {
	Upsert(ctx context.Context, exec SQLExecutor, tournamentID int, scoreboard *scoring.Scoreboard) error
	GetByMatchID(ctx context.Context, matchID string) (*scoring.Scoreboard, error)
	Delete(ctx context.Context, exec SQLExecutor, matchID string) error
}

type postgresScoreboardRepository struct {
	db *sql.DB
}

func NewPostgresScoreboardRepository(db *sql.DB) ScoreboardRepository {
	return &postgresScoreboardRepository{db: db}
}

// Upsert writes on exec when given; a nil exec uses the repository pool.
func (r *postgresScoreboardRepository) Upsert(ctx context.Context, exec SQLExecutor, tournamentID int, scoreboard *scoring.Scoreboard) error {
	if exec == nil {
		exec = r.db
	}
	payload, err := json.Marshal(scoreboard)
	if err != nil {
		return fmt.Errorf("failed to marshal scoreboard for match %s: %w", scoreboard.MatchID, err)
	}

	query := `
		INSERT INTO scoreboards (match_id, tournament_id, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (match_id)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`

	if _, err = exec.ExecContext(ctx, query, scoreboard.MatchID, tournamentID, payload); err != nil {
		return fmt.Errorf("failed to upsert scoreboard for match %s: %w", scoreboard.MatchID, err)
	}
	return nil
}

func (r *postgresScoreboardRepository) GetByMatchID(ctx context.Context, matchID string) (*scoring.Scoreboard, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM scoreboards WHERE match_id = $1`, matchID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreboardNotFound
		}
		return nil, fmt.Errorf("failed to query scoreboard for match %s: %w", matchID, err)
	}

	var scoreboard scoring.Scoreboard
	if err = json.Unmarshal(payload, &scoreboard); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scoreboard for match %s: %w", matchID, err)
	}
	return &scoreboard, nil
}

func (r *postgresScoreboardRepository) Delete(ctx context.Context, exec SQLExecutor, matchID string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM scoreboards WHERE match_id = $1`, matchID)
	if err != nil {
		return fmt.Errorf("failed to delete scoreboard for match %s: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrScoreboardNotFound)
}
