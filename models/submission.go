package models

import "time"

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// SetScore is one finished set as recorded in a submission.
type SetScore struct {
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

// Submission is a proposed final score awaiting an approval decision.
// Rows are append-only per match: a rejected submission stays rejected and
// a new one is created from a fresh scoreboard.
type Submission struct {
	ID          int              `json:"id" db:"id"`
	MatchID     string           `json:"match_id" db:"match_id"`
	Score1      int              `json:"score1" db:"score1"`
	Score2      int              `json:"score2" db:"score2"`
	SetScores   []SetScore       `json:"set_scores" db:"set_scores"`
	SubmittedBy int              `json:"submitted_by" db:"submitted_by"`
	Status      SubmissionStatus `json:"status" db:"status"`
	SubmittedAt time.Time        `json:"submitted_at" db:"submitted_at"`
	ReviewedAt  *time.Time       `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewedBy  *int             `json:"reviewed_by,omitempty" db:"reviewed_by"`
}
