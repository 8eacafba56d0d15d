package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/playoff-system/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, limit, offset int) ([]*models.Tournament, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error
	UpdateLogoKey(ctx context.Context, id int, logoKey string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	defaultRules, err := json.Marshal(tournament.DefaultRules)
	if err != nil {
		return fmt.Errorf("failed to marshal default rules: %w", err)
	}
	var finalsRules []byte
	if tournament.FinalsRules != nil {
		if finalsRules, err = json.Marshal(tournament.FinalsRules); err != nil {
			return fmt.Errorf("failed to marshal finals rules: %w", err)
		}
	}

	query := `
		INSERT INTO tournaments
			(name, sport, organizer_id, status, seeding_mode, default_rules, finals_rules)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		tournament.Name,
		tournament.Sport,
		tournament.OrganizerID,
		tournament.Status,
		tournament.SeedingMode,
		defaultRules,
		finalsRules,
	).Scan(&tournament.ID, &tournament.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "tournaments_name_key" {
		return ErrTournamentNameConflict
	}
	return err
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, sport, organizer_id, status, seeding_mode,
		       default_rules, finals_rules, logo_key, created_at
		FROM tournaments
		WHERE id = $1`

	tournament, err := scanTournament(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, limit, offset int) ([]*models.Tournament, error) {
	query := `
		SELECT id, name, sport, organizer_id, status, seeding_mode,
		       default_rules, finals_rules, logo_key, created_at
		FROM tournaments
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		tournament, scanErr := scanTournament(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", scanErr)
		}
		tournaments = append(tournaments, tournament)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}

// UpdateStatus runs on exec when given, so callers can fold the status
// change into a larger transaction. A nil exec uses the repository pool.
func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx, `UPDATE tournaments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("UpdateStatus: failed to execute query for tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, id int, logoKey string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tournaments SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return fmt.Errorf("UpdateLogoKey: failed to execute query for tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	var tournament models.Tournament
	var defaultRules []byte
	var finalsRules []byte
	err := row.Scan(
		&tournament.ID,
		&tournament.Name,
		&tournament.Sport,
		&tournament.OrganizerID,
		&tournament.Status,
		&tournament.SeedingMode,
		&defaultRules,
		&finalsRules,
		&tournament.LogoKey,
		&tournament.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(defaultRules, &tournament.DefaultRules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal default rules: %w", err)
	}
	if len(finalsRules) > 0 {
		tournament.FinalsRules = &models.MatchRules{}
		if err = json.Unmarshal(finalsRules, tournament.FinalsRules); err != nil {
			return nil, fmt.Errorf("failed to unmarshal finals rules: %w", err)
		}
	}
	return &tournament, nil
}
