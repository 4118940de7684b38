package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/roadmap-planner/internal/domain"
	"github.com/pkordes/roadmap-planner/internal/repo"
)

// TeamService implements business logic for Team operations.
// It holds the initiatives repo only to report initiatives orphaned by a
// team delete.
type TeamService struct {
	teams       repo.TeamRepo
	initiatives repo.InitiativeRepo
	logger      *slog.Logger
}

// NewTeamService constructs a TeamService. A nil logger falls back to slog.Default().
func NewTeamService(teams repo.TeamRepo, initiatives repo.InitiativeRepo, logger *slog.Logger) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TeamService{teams: teams, initiatives: initiatives, logger: logger}
}

// List returns every team ordered by name.
func (s *TeamService) List(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TeamService.List: %w", err)
	}
	if teams == nil {
		return []domain.Team{}, nil
	}
	return teams, nil
}

// GetByID returns domain.ErrNotFound if no team has that id.
func (s *TeamService) GetByID(ctx context.Context, id string) (domain.Team, error) {
	t, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("service.TeamService.GetByID: %w", err)
	}
	return t, nil
}

// Create derives the team id from its name and stores it.
// Returns domain.ErrValidation if the name normalizes to nothing and
// domain.ErrConflict if another team already owns the derived id.
func (s *TeamService) Create(ctx context.Context, t domain.Team) (domain.Team, error) {
	var fe fieldErrors
	requireText(&fe, "name", t.Name)
	requireText(&fe, "color", t.Color)
	if err := fe.err(); err != nil {
		return domain.Team{}, err
	}

	t.ID = domain.TeamIDFromName(t.Name)
	if t.ID == "" {
		return domain.Team{}, domain.NewValidationError("name", "name must contain at least one letter or digit")
	}

	created, err := s.teams.Create(ctx, t)
	if err != nil {
		return domain.Team{}, fmt.Errorf("service.TeamService.Create: %w", err)
	}
	return created, nil
}

// Patch merges the provided fields. Renaming a team keeps its id.
func (s *TeamService) Patch(ctx context.Context, id string, p domain.TeamPatch) (domain.Team, error) {
	var fe fieldErrors
	if p.Name != nil {
		requireText(&fe, "name", *p.Name)
	}
	if p.Color != nil {
		requireText(&fe, "color", *p.Color)
	}
	if err := fe.err(); err != nil {
		return domain.Team{}, err
	}

	if p.IsEmpty() {
		return s.GetByID(ctx, id)
	}
	updated, err := s.teams.Patch(ctx, id, p)
	if err != nil {
		return domain.Team{}, fmt.Errorf("service.TeamService.Patch: %w", err)
	}
	return updated, nil
}

// Delete removes the team. Its initiatives are left in place and keep the
// now-dangling team id; how many were orphaned is logged.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	if err := s.teams.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TeamService.Delete: %w", err)
	}

	list, err := s.initiatives.List(ctx)
	if err != nil {
		// The delete has already committed.
		s.logger.ErrorContext(ctx, "count orphaned initiatives", "team", id, "error", err)
		return nil
	}
	orphans := len(domain.InitiativeFilter{Teams: []string{id}}.Apply(list))
	if orphans > 0 {
		s.logger.WarnContext(ctx, "team deleted with initiatives still assigned",
			"team", id, "orphaned_initiatives", orphans)
	}
	return nil
}
