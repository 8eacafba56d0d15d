package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Dosada05/playoff-system/brackets"
	"github.com/Dosada05/playoff-system/models"
	"github.com/Dosada05/playoff-system/repositories"
)

type BracketService interface {
	GenerateAndSaveBracket(ctx context.Context, tournamentID int, requestedBy int) ([]models.Match, error)
}

type bracketService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	hub            *brackets.Hub
	logger         *slog.Logger
}

func NewBracketService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		db:             db,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		hub:            hub,
		logger:         logger,
	}
}

// GenerateAndSaveBracket builds the single-elimination bracket for a
// tournament and persists all matches in one transaction. Generation is
// allowed exactly once, from the registration status, by the organizer.
func (s *bracketService) GenerateAndSaveBracket(ctx context.Context, tournamentID int, requestedBy int) ([]models.Match, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != requestedBy {
		return nil, ErrForbiddenOperation
	}
	if tournament.Status != models.StatusRegistration {
		return nil, fmt.Errorf("%w: status is %s", ErrTournamentNotStartable, tournament.Status)
	}

	existing, err := s.matchRepo.ListByTournament(ctx, tournamentID, nil)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrBracketAlreadyGenerated
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	generator := brackets.NewSingleElimination()
	matches, err := generator.Build(ctx, brackets.BuildParams{
		StageID:      fmt.Sprintf("t%d", tournamentID),
		TournamentID: tournamentID,
		Teams:        brackets.SeedOrder(teamsToValues(teams), tournament.SeedingMode),
	})
	if err != nil {
		return nil, err
	}

	err = withTransaction(ctx, s.db, func(tx *sql.Tx) error {
		if txErr := s.matchRepo.CreateBatch(ctx, tx, matches); txErr != nil {
			return txErr
		}
		return s.tournamentRepo.UpdateStatus(ctx, tx, tournamentID, models.StatusActive)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bracket generated",
		slog.Int("tournament_id", tournamentID),
		slog.String("generator", generator.Name()),
		slog.Int("teams", len(teams)),
		slog.Int("matches", len(matches)))

	result := make([]models.Match, len(matches))
	for i, m := range matches {
		result[i] = *m
	}
	s.hub.BroadcastToRoom(tournamentRoom(tournamentID), brackets.EventBracketUpdated, result)
	return result, nil
}
