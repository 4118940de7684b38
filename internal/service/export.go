package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/roadmap-planner/internal/domain"
	"github.com/pkordes/roadmap-planner/internal/repo"
)

// ExportService assembles a flat export of the roadmap.
type ExportService struct {
	initiatives repo.InitiativeRepo
	teams       repo.TeamRepo
	now         func() time.Time
}

// NewExportService constructs an ExportService backed by the provided repos.
// now stamps the export file name; nil means time.Now.
func NewExportService(initiatives repo.InitiativeRepo, teams repo.TeamRepo, now func() time.Time) *ExportService {
	if now == nil {
		now = time.Now
	}
	return &ExportService{initiatives: initiatives, teams: teams, now: now}
}

// Export returns one row per initiative matching f, in listing order, with
// the team's display name joined in. Rows whose team is gone carry the raw
// team id as the name.
func (s *ExportService) Export(ctx context.Context, f domain.InitiativeFilter) (domain.Export, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return domain.Export{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	list, err := s.initiatives.List(ctx)
	if err != nil {
		return domain.Export{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	list = f.Apply(list)

	rows := make([]domain.ExportRow, 0, len(list))
	for _, in := range list {
		name, ok := names[in.Team]
		if !ok {
			name = in.Team
		}
		rows = append(rows, domain.ExportRow{
			ID:          in.ID,
			Title:       in.Title,
			Description: in.Description,
			TeamID:      in.Team,
			TeamName:    name,
			Priority:    in.Priority,
			StartDate:   in.StartDate.Format(domain.DateLayout),
			EndDate:     in.EndDate.Format(domain.DateLayout),
			Quarter:     in.Quarter,
			Position:    in.Position,
			Assignees:   in.Assignees,
			CreatedAt:   in.CreatedAt,
		})
	}

	return domain.Export{
		BaseName: "roadmap-" + s.now().UTC().Format(domain.DateLayout),
		Rows:     rows,
	}, nil
}
