package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/playoff-system/brackets"
	"github.com/Dosada05/playoff-system/models"
	"github.com/Dosada05/playoff-system/repositories"
	"github.com/Dosada05/playoff-system/scoring"
)

type MatchService interface {
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, round *int) ([]models.Match, error)
	ListSubmissions(ctx context.Context, matchID string) ([]*models.Submission, error)
	ApproveSubmission(ctx context.Context, submissionID int, reviewedBy int) (*models.Match, error)
	RejectSubmission(ctx context.Context, submissionID int, reviewedBy int) error
}

type matchService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	scoreboardRepo repositories.ScoreboardRepository
	submissionRepo repositories.SubmissionRepository
	hub            *brackets.Hub
	logger         *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	scoreboardRepo repositories.ScoreboardRepository,
	submissionRepo repositories.SubmissionRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:             db,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		scoreboardRepo: scoreboardRepo,
		submissionRepo: submissionRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *matchService) GetByID(ctx context.Context, id string) (*models.Match, error) {
	return s.matchRepo.GetByID(ctx, id)
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int, round *int) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, round)
	if err != nil {
		return nil, err
	}
	return matchesToValues(matches), nil
}

func (s *matchService) ListSubmissions(ctx context.Context, matchID string) ([]*models.Submission, error) {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return nil, err
	}
	return s.submissionRepo.ListByMatch(ctx, matchID)
}

// ApproveSubmission is the approval boundary: only here does a submitted
// score become final, complete the match, and feed the winner into the
// successor slot. Everything happens in one transaction.
func (s *matchService) ApproveSubmission(ctx context.Context, submissionID int, reviewedBy int) (*models.Match, error) {
	_, match, tournament, err := s.loadReviewContext(ctx, submissionID, reviewedBy)
	if err != nil {
		return nil, err
	}

	scoreboard, err := s.scoreboardRepo.GetByMatchID(ctx, match.ID)
	if err != nil {
		return nil, err
	}
	winner := scoreboard.WinnerName()
	if winner == nil {
		return nil, scoring.ErrMatchUndecided
	}
	if err = scoreboard.Complete(); err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListByTournament(ctx, match.TournamentID, nil)
	if err != nil {
		return nil, err
	}
	arena := make(map[string]*models.Match, len(matches))
	for _, m := range matches {
		arena[m.ID] = m
	}

	now := time.Now().UTC()
	match.Score1 = &scoreboard.Team1SetsWon
	match.Score2 = &scoreboard.Team2SetsWon
	match.Winner = winner
	match.Status = models.MatchStatusCompleted
	arena[match.ID] = match

	successor, err := brackets.Advance(match, arena)
	if err != nil {
		return nil, err
	}

	err = withTransaction(ctx, s.db, func(tx *sql.Tx) error {
		if txErr := s.submissionRepo.Review(ctx, tx, submissionID, models.SubmissionApproved, reviewedBy, now); txErr != nil {
			return txErr
		}
		if txErr := s.scoreboardRepo.Upsert(ctx, tx, match.TournamentID, scoreboard); txErr != nil {
			return txErr
		}
		if txErr := s.matchRepo.Complete(ctx, tx, match.ID,
			scoreboard.Team1SetsWon, scoreboard.Team2SetsWon, *winner, reviewedBy, now); txErr != nil {
			return txErr
		}
		if successor != nil {
			return s.matchRepo.UpdateTeams(ctx, tx, successor.ID, successor.Team1, successor.Team2)
		}
		if bracketResolved(successor, tournament) {
			// Final approved: the bracket is done, close the tournament
			// in the same transaction as the match itself.
			return s.tournamentRepo.UpdateStatus(ctx, tx, tournament.ID, models.StatusCompleted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	match.ApprovedBy = &reviewedBy
	match.ApprovedAt = &now

	s.logger.Info("score approved",
		slog.String("match_id", match.ID),
		slog.Int("submission_id", submissionID),
		slog.String("winner", *winner),
		slog.Int("reviewed_by", reviewedBy))

	room := tournamentRoom(match.TournamentID)
	s.hub.BroadcastToRoom(room, brackets.EventMatchUpdated, match)
	if successor != nil {
		s.hub.BroadcastToRoom(room, brackets.EventBracketUpdated, successor)
	}
	return match, nil
}

// RejectSubmission voids the submitted score. The scoreboard is dropped
// rather than reopened; the match returns to upcoming so a fresh session
// can be started.
func (s *matchService) RejectSubmission(ctx context.Context, submissionID int, reviewedBy int) error {
	_, match, _, err := s.loadReviewContext(ctx, submissionID, reviewedBy)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = withTransaction(ctx, s.db, func(tx *sql.Tx) error {
		if txErr := s.submissionRepo.Review(ctx, tx, submissionID, models.SubmissionRejected, reviewedBy, now); txErr != nil {
			return txErr
		}
		if txErr := s.scoreboardRepo.Delete(ctx, tx, match.ID); txErr != nil {
			return txErr
		}
		return s.matchRepo.UpdateStatus(ctx, tx, match.ID, models.MatchStatusUpcoming)
	})
	if err != nil {
		return err
	}

	s.logger.Info("score rejected",
		slog.String("match_id", match.ID),
		slog.Int("submission_id", submissionID),
		slog.Int("reviewed_by", reviewedBy))
	s.hub.BroadcastToRoom(tournamentRoom(match.TournamentID), brackets.EventMatchUpdated, match)
	return nil
}

// loadReviewContext resolves a pending submission with its match and
// tournament, and checks the reviewer is the organizer.
func (s *matchService) loadReviewContext(ctx context.Context, submissionID int, reviewedBy int) (*models.Submission, *models.Match, *models.Tournament, error) {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, nil, nil, err
	}
	if submission.Status != models.SubmissionPending {
		return nil, nil, nil, repositories.ErrSubmissionNotPending
	}

	match, err := s.matchRepo.GetByID(ctx, submission.MatchID)
	if err != nil {
		return nil, nil, nil, err
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, nil, nil, ErrMatchAlreadyCompleted
	}
	if match.SubmittedAt == nil {
		return nil, nil, nil, fmt.Errorf("%w: match %s", ErrMatchNotAwaitingReview, match.ID)
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, nil, nil, err
	}
	if tournament.OrganizerID != reviewedBy {
		return nil, nil, nil, ErrForbiddenOperation
	}
	return submission, match, tournament, nil
}
