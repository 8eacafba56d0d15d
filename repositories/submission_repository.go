package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/playoff-system/models"
)

var (
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrSubmissionNotPending = errors.New("submission already reviewed")
)

type SubmissionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, submission *models.Submission) error
	GetByID(ctx context.Context, id int) (*models.Submission, error)
	ListByMatch(ctx context.Context, matchID string) ([]*models.Submission, error)
	Review(ctx context.Context, exec SQLExecutor, id int, status models.SubmissionStatus, reviewedBy int, reviewedAt time.Time) error
}

type postgresSubmissionRepository struct {
	db *sql.DB
}

func NewPostgresSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &postgresSubmissionRepository{db: db}
}

func (r *postgresSubmissionRepository) Create(ctx context.Context, exec SQLExecutor, submission *models.Submission) error {
	setScores, err := json.Marshal(submission.SetScores)
	if err != nil {
		return fmt.Errorf("failed to marshal set scores: %w", err)
	}

	query := `
		INSERT INTO submissions (match_id, score1, score2, set_scores, submitted_by, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, submitted_at`

	return exec.QueryRowContext(ctx, query,
		submission.MatchID,
		submission.Score1,
		submission.Score2,
		setScores,
		submission.SubmittedBy,
		submission.Status,
	).Scan(&submission.ID, &submission.SubmittedAt)
}

func (r *postgresSubmissionRepository) GetByID(ctx context.Context, id int) (*models.Submission, error) {
	query := `
		SELECT id, match_id, score1, score2, set_scores, submitted_by,
		       status, submitted_at, reviewed_at, reviewed_by
		FROM submissions
		WHERE id = $1`

	submission, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to scan submission %d: %w", id, err)
	}
	return submission, nil
}

func (r *postgresSubmissionRepository) ListByMatch(ctx context.Context, matchID string) ([]*models.Submission, error) {
	query := `
		SELECT id, match_id, score1, score2, set_scores, submitted_by,
		       status, submitted_at, reviewed_at, reviewed_by
		FROM submissions
		WHERE match_id = $1
		ORDER BY submitted_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions for match %s: %w", matchID, err)
	}
	defer rows.Close()

	submissions := make([]*models.Submission, 0)
	for rows.Next() {
		submission, scanErr := scanSubmission(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", scanErr)
		}
		submissions = append(submissions, submission)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during submission rows iteration: %w", err)
	}
	return submissions, nil
}

// Review flips a pending submission to approved or rejected. The status
// guard in the WHERE clause keeps the history append-only: a reviewed
// submission can never be reviewed again.
func (r *postgresSubmissionRepository) Review(ctx context.Context, exec SQLExecutor, id int, status models.SubmissionStatus, reviewedBy int, reviewedAt time.Time) error {
	query := `
		UPDATE submissions
		SET status = $1, reviewed_by = $2, reviewed_at = $3
		WHERE id = $4 AND status = $5`

	result, err := exec.ExecContext(ctx, query, status, reviewedBy, reviewedAt, id, models.SubmissionPending)
	if err != nil {
		return fmt.Errorf("Review: failed to execute query for submission %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrSubmissionNotPending)
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var submission models.Submission
	var setScores []byte
	err := row.Scan(
		&submission.ID,
		&submission.MatchID,
		&submission.Score1,
		&submission.Score2,
		&setScores,
		&submission.SubmittedBy,
		&submission.Status,
		&submission.SubmittedAt,
		&submission.ReviewedAt,
		&submission.ReviewedBy,
	)
	if err != nil {
		return nil, err
	}
	if len(setScores) > 0 {
		if err = json.Unmarshal(setScores, &submission.SetScores); err != nil {
			return nil, fmt.Errorf("failed to unmarshal set scores: %w", err)
		}
	}
	return &submission, nil
}
