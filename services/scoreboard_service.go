package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/playoff-system/brackets"
	"github.com/Dosada05/playoff-system/models"
	"github.com/Dosada05/playoff-system/repositories"
	"github.com/Dosada05/playoff-system/scoring"
)

type ScoreboardService interface {
	Start(ctx context.Context, matchID string) (*scoring.Scoreboard, error)
	Get(ctx context.Context, matchID string) (*scoring.Scoreboard, error)
	Increment(ctx context.Context, matchID string, slot models.Slot) (*scoring.Scoreboard, error)
	Decrement(ctx context.Context, matchID string, slot models.Slot) (*scoring.Scoreboard, error)
	ResetCurrentSet(ctx context.Context, matchID string) (*scoring.Scoreboard, error)
	SetLocked(ctx context.Context, matchID string, locked bool) (*scoring.Scoreboard, error)
	Submit(ctx context.Context, matchID string, submittedBy int) (*models.Submission, error)
	Discard(ctx context.Context, matchID string) error
}

type scoreboardService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	scoreboardRepo repositories.ScoreboardRepository
	submissionRepo repositories.SubmissionRepository
	hub            *brackets.Hub
	logger         *slog.Logger
}

func NewScoreboardService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	scoreboardRepo repositories.ScoreboardRepository,
	submissionRepo repositories.SubmissionRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) ScoreboardService {
	return &scoreboardService{
		db:             db,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		scoreboardRepo: scoreboardRepo,
		submissionRepo: submissionRepo,
		hub:            hub,
		logger:         logger,
	}
}

// Start opens a live scoreboard for an upcoming match with both teams
// resolved. The match goes live in the same transaction.
func (s *scoreboardService) Start(ctx context.Context, matchID string) (*scoring.Scoreboard, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, ErrMatchAlreadyCompleted
	}

	if _, err = s.scoreboardRepo.GetByMatchID(ctx, matchID); err == nil {
		return nil, ErrScoreboardExists
	} else if !errors.Is(err, repositories.ErrScoreboardNotFound) {
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, err
	}

	scoreboard, err := scoring.NewScoreboard(match, tournament.RulesForRound(match.Round))
	if err != nil {
		return nil, err
	}

	err = withTransaction(ctx, s.db, func(tx *sql.Tx) error {
		if txErr := s.scoreboardRepo.Upsert(ctx, tx, match.TournamentID, scoreboard); txErr != nil {
			return txErr
		}
		return s.matchRepo.UpdateStatus(ctx, tx, matchID, models.MatchStatusLive)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("scoreboard started",
		slog.String("match_id", matchID),
		slog.Int("tournament_id", match.TournamentID),
		slog.String("round", brackets.RoundName(match.Round)))
	s.broadcast(match.TournamentID, scoreboard)
	return scoreboard, nil
}

func (s *scoreboardService) Get(ctx context.Context, matchID string) (*scoring.Scoreboard, error) {
	return s.scoreboardRepo.GetByMatchID(ctx, matchID)
}

func (s *scoreboardService) Increment(ctx context.Context, matchID string, slot models.Slot) (*scoring.Scoreboard, error) {
	return s.mutate(ctx, matchID, func(sb *scoring.Scoreboard) error {
		return sb.IncrementScore(slot)
	})
}

func (s *scoreboardService) Decrement(ctx context.Context, matchID string, slot models.Slot) (*scoring.Scoreboard, error) {
	return s.mutate(ctx, matchID, func(sb *scoring.Scoreboard) error {
		return sb.DecrementScore(slot)
	})
}

func (s *scoreboardService) ResetCurrentSet(ctx context.Context, matchID string) (*scoring.Scoreboard, error) {
	return s.mutate(ctx, matchID, func(sb *scoring.Scoreboard) error {
		return sb.ResetCurrentSet()
	})
}

// SetLocked pauses or resumes score entry without touching any scores.
func (s *scoreboardService) SetLocked(ctx context.Context, matchID string, locked bool) (*scoring.Scoreboard, error) {
	return s.mutate(ctx, matchID, func(sb *scoring.Scoreboard) error {
		if sb.Status != scoring.ScoreboardActive {
			return fmt.Errorf("%w: status is %s", scoring.ErrScoreboardLocked, sb.Status)
		}
		sb.Locked = locked
		return nil
	})
}

// Submit turns a scoreboard in review into a pending submission for the
// organizer to approve or reject.
func (s *scoreboardService) Submit(ctx context.Context, matchID string, submittedBy int) (*models.Submission, error) {
	scoreboard, err := s.scoreboardRepo.GetByMatchID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if scoreboard.Status != scoring.ScoreboardReview {
		return nil, fmt.Errorf("%w: status is %s", scoring.ErrNotInReview, scoreboard.Status)
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		MatchID:     matchID,
		Score1:      scoreboard.Team1SetsWon,
		Score2:      scoreboard.Team2SetsWon,
		SetScores:   scoreboard.PlayedSets(),
		SubmittedBy: submittedBy,
		Status:      models.SubmissionPending,
	}
	err = withTransaction(ctx, s.db, func(tx *sql.Tx) error {
		if txErr := s.submissionRepo.Create(ctx, tx, submission); txErr != nil {
			return txErr
		}
		return s.matchRepo.MarkSubmitted(ctx, tx, matchID, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("score submitted for review",
		slog.String("match_id", matchID),
		slog.Int("submission_id", submission.ID),
		slog.Int("submitted_by", submittedBy))
	s.hub.BroadcastToRoom(tournamentRoom(match.TournamentID), brackets.EventMatchUpdated, submission)
	return submission, nil
}

// Discard drops the live scoreboard and returns the match to upcoming.
// Used when a session was started by mistake. Once the score has been
// submitted the organizer owns it: a pending submission blocks the
// discard and must be rejected through the match service instead.
func (s *scoreboardService) Discard(ctx context.Context, matchID string) error {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if match.Status == models.MatchStatusCompleted {
		return ErrMatchAlreadyCompleted
	}

	submissions, err := s.submissionRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if hasPendingSubmission(submissions) {
		return fmt.Errorf("%w: match %s", ErrSubmissionPendingReview, matchID)
	}

	err = withTransaction(ctx, s.db, func(tx *sql.Tx) error {
		if txErr := s.scoreboardRepo.Delete(ctx, tx, matchID); txErr != nil {
			return txErr
		}
		return s.matchRepo.UpdateStatus(ctx, tx, matchID, models.MatchStatusUpcoming)
	})
	if err != nil {
		return err
	}

	s.logger.Info("scoreboard discarded", slog.String("match_id", matchID))
	s.hub.BroadcastToRoom(tournamentRoom(match.TournamentID), brackets.EventScoreboardUpdated, map[string]any{
		"match_id":  matchID,
		"discarded": true,
	})
	return nil
}

// mutate is the shared read-modify-write cycle for score changes: load
// the scoreboard, apply fn, persist, broadcast. One logical writer per
// match is assumed; the JSONB upsert keeps the document atomic.
func (s *scoreboardService) mutate(ctx context.Context, matchID string, fn func(*scoring.Scoreboard) error) (*scoring.Scoreboard, error) {
	scoreboard, err := s.scoreboardRepo.GetByMatchID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err = fn(scoreboard); err != nil {
		return nil, err
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err = s.scoreboardRepo.Upsert(ctx, nil, match.TournamentID, scoreboard); err != nil {
		return nil, err
	}

	s.broadcast(match.TournamentID, scoreboard)
	return scoreboard, nil
}

func (s *scoreboardService) broadcast(tournamentID int, scoreboard *scoring.Scoreboard) {
	s.hub.BroadcastToRoom(tournamentRoom(tournamentID), brackets.EventScoreboardUpdated, scoreboard)
}
