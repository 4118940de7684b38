package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/pkordes/roadmap-planner/internal/domain"
	"github.com/pkordes/roadmap-planner/internal/metrics"
	"github.com/pkordes/roadmap-planner/internal/repo"
	"github.com/pkordes/roadmap-planner/internal/timeline"
)

// DanglingTeamColor is the color of rows synthesized for initiatives whose
// team no longer exists.
const DanglingTeamColor = "#6b7280"

// Board is the timeline grid: one row per team, one cell per period.
type Board struct {
	Granularity   timeline.Granularity
	SelectedMonth int
	Periods       []string
	Rows          []BoardRow
}

// BoardRow is a team's lane on the board.
// Count is the number of distinct initiatives in the lane, which can be
// smaller than the sum of cell sizes when initiatives span periods.
type BoardRow struct {
	Team  domain.Team
	Cells []timeline.Bucket
	Count int
}

// BoardService renders the timeline and applies drag-and-drop moves.
type BoardService struct {
	initiatives repo.InitiativeRepo
	teams       repo.TeamRepo
}

// NewBoardService constructs a BoardService backed by the provided repos.
func NewBoardService(initiatives repo.InitiativeRepo, teams repo.TeamRepo) *BoardService {
	return &BoardService{initiatives: initiatives, teams: teams}
}

// Timeline buckets the initiatives matching f into the periods of g.
// Rows follow team listing order. Initiatives that reference a missing team
// get a synthetic row named after the raw id, appended after the real teams.
// When f restricts teams, only those teams get rows.
func (s *BoardService) Timeline(ctx context.Context, g timeline.Granularity, selectedMonth int, f domain.InitiativeFilter) (Board, error) {
	periods, err := timeline.Periods(g, selectedMonth)
	if err != nil {
		return Board{}, err
	}

	teams, err := s.teams.List(ctx)
	if err != nil {
		return Board{}, fmt.Errorf("service.BoardService.Timeline: %w", err)
	}
	list, err := s.initiatives.List(ctx)
	if err != nil {
		return Board{}, fmt.Errorf("service.BoardService.Timeline: %w", err)
	}
	list = f.Apply(list)

	byTeam := make(map[string][]domain.Initiative)
	for _, in := range list {
		byTeam[in.Team] = append(byTeam[in.Team], in)
	}

	known := make(map[string]bool, len(teams))
	lanes := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		known[t.ID] = true
		if len(f.Teams) == 0 || slices.Contains(f.Teams, t.ID) {
			lanes = append(lanes, t)
		}
	}
	var dangling []string
	for id := range byTeam {
		if !known[id] {
			dangling = append(dangling, id)
		}
	}
	slices.Sort(dangling)
	for _, id := range dangling {
		lanes = append(lanes, domain.Team{ID: id, Name: id, Color: DanglingTeamColor})
	}

	board := Board{
		Granularity:   g,
		SelectedMonth: selectedMonth,
		Periods:       periods,
		Rows:          make([]BoardRow, 0, len(lanes)),
	}
	for _, t := range lanes {
		cells, err := timeline.BucketAll(byTeam[t.ID], g, selectedMonth)
		if err != nil {
			return Board{}, err
		}
		board.Rows = append(board.Rows, BoardRow{Team: t, Cells: cells, Count: len(byTeam[t.ID])})
	}
	return board, nil
}

// Move drops the initiative id onto the board cell described by drop.
// It reports whether anything changed; dropping an initiative onto the cell
// it already occupies performs no write.
func (s *BoardService) Move(ctx context.Context, id string, drop timeline.Drop) (domain.Initiative, bool, error) {
	result := metrics.MoveError
	defer func() { metrics.Moves.WithLabelValues(string(drop.Granularity), result).Inc() }()

	in, err := s.initiatives.GetByID(ctx, id)
	if err != nil {
		return domain.Initiative{}, false, fmt.Errorf("service.BoardService.Move: %w", err)
	}

	patch, err := timeline.Resolve(in, drop)
	if err != nil {
		return domain.Initiative{}, false, err
	}
	if patch.IsEmpty() {
		result = metrics.MoveNoop
		return in, false, nil
	}

	updated, err := s.initiatives.Patch(ctx, id, patch)
	if err != nil {
		return domain.Initiative{}, false, fmt.Errorf("service.BoardService.Move: %w", err)
	}
	result = metrics.MoveChanged
	return updated, true, nil
}
