package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Dosada05/playoff-system/models"
	"github.com/Dosada05/playoff-system/repositories"
	"github.com/Dosada05/playoff-system/scoring"
	"github.com/Dosada05/playoff-system/storage"
	"golang.org/x/sync/errgroup"
)

type CreateTournamentInput struct {
	Name         string             `json:"name"`
	Sport        *string            `json:"sport,omitempty"`
	SeedingMode  models.SeedingMode `json:"seeding_mode"`
	DefaultRules models.MatchRules  `json:"default_rules"`
	FinalsRules  *models.MatchRules `json:"finals_rules,omitempty"`
}

type RegisterTeamInput struct {
	Name string `json:"name"`
	Seed int    `json:"seed"`
}

type TournamentService interface {
	Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, limit, offset int) ([]*models.Tournament, error)
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus, userID int) (*models.Tournament, error)
	RegisterTeam(ctx context.Context, tournamentID int, input RegisterTeamInput) (*models.Team, error)
	UploadLogo(ctx context.Context, tournamentID int, userID int, contentType string, file io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	seeding := input.SeedingMode
	if seeding == "" {
		seeding = models.SeedingManual
	}
	if seeding != models.SeedingManual && seeding != models.SeedingRandom {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidSeedingMode, input.SeedingMode)
	}
	// Rules are validated before anything is persisted; a tournament with
	// an unplayable configuration must never exist.
	if err := scoring.ValidateRules(input.DefaultRules); err != nil {
		return nil, err
	}
	if input.FinalsRules != nil {
		if err := scoring.ValidateRules(*input.FinalsRules); err != nil {
			return nil, err
		}
	}

	tournament := &models.Tournament{
		Name:         input.Name,
		Sport:        input.Sport,
		OrganizerID:  organizerID,
		Status:       models.StatusSoon,
		SeedingMode:  seeding,
		DefaultRules: input.DefaultRules,
		FinalsRules:  input.FinalsRules,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

// GetByID loads the tournament together with its teams and matches. The
// three fetches are independent, so they run in parallel.
func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	var tournament *models.Tournament
	var teams []*models.Team
	var matches []*models.Match

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournament, err = s.tournamentRepo.GetByID(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gCtx, id, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tournament.Teams = teamsToValues(teams)
	tournament.Matches = matchesToValues(matches)
	populateTournamentLogoURL(tournament, s.uploader)
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, limit, offset int) ([]*models.Tournament, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	tournaments, err := s.tournamentRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, t := range tournaments {
		populateTournamentLogoURL(t, s.uploader)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus, userID int) (*models.Tournament, error) {
	if !isKnownStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrTournamentInvalidStatus, status)
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != userID {
		return nil, ErrForbiddenOperation
	}
	if !isValidStatusTransition(tournament.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatusTransition, tournament.Status, status)
	}
	if err = s.tournamentRepo.UpdateStatus(ctx, nil, id, status); err != nil {
		return nil, err
	}
	tournament.Status = status
	return tournament, nil
}

func (s *tournamentService) RegisterTeam(ctx context.Context, tournamentID int, input RegisterTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.StatusRegistration {
		return nil, ErrRegistrationNotOpen
	}

	seed := input.Seed
	if seed <= 0 {
		existing, listErr := s.teamRepo.ListByTournament(ctx, tournamentID)
		if listErr != nil {
			return nil, listErr
		}
		seed = len(existing) + 1
	}

	team := &models.Team{
		TournamentID: tournamentID,
		Name:         input.Name,
		Seed:         seed,
	}
	if err = s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, tournamentID int, userID int, contentType string, file io.Reader) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != userID {
		return nil, ErrForbiddenOperation
	}

	key := fmt.Sprintf("tournaments/%d/logo", tournamentID)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}
	if err = s.tournamentRepo.UpdateLogoKey(ctx, tournamentID, result.Key); err != nil {
		return nil, err
	}

	tournament.LogoKey = &result.Key
	populateTournamentLogoURL(tournament, s.uploader)
	s.logger.Info("tournament logo updated",
		slog.Int("tournament_id", tournamentID), slog.String("key", result.Key))
	return tournament, nil
}
