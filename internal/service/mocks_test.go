package service_test

import (
	"context"
	"time"

	"github.com/pkordes/roadmap-planner/internal/domain"
	"github.com/pkordes/roadmap-planner/internal/repo"
)

// mockInitiativeRepo is a hand-written test double for repo.InitiativeRepo.
// Each method is a function field; set only the ones your test needs.
type mockInitiativeRepo struct {
	list    func(ctx context.Context) ([]domain.Initiative, error)
	getByID func(ctx context.Context, id string) (domain.Initiative, error)
	create  func(ctx context.Context, in domain.Initiative) (domain.Initiative, error)
	patch   func(ctx context.Context, id string, p domain.InitiativePatch) (domain.Initiative, error)
	delete  func(ctx context.Context, id string) error
}

func (m *mockInitiativeRepo) List(ctx context.Context) ([]domain.Initiative, error) {
	return m.list(ctx)
}
func (m *mockInitiativeRepo) GetByID(ctx context.Context, id string) (domain.Initiative, error) {
	return m.getByID(ctx, id)
}
func (m *mockInitiativeRepo) Create(ctx context.Context, in domain.Initiative) (domain.Initiative, error) {
	return m.create(ctx, in)
}
func (m *mockInitiativeRepo) Patch(ctx context.Context, id string, p domain.InitiativePatch) (domain.Initiative, error) {
	return m.patch(ctx, id, p)
}
func (m *mockInitiativeRepo) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

var _ repo.InitiativeRepo = (*mockInitiativeRepo)(nil)

// mockTeamRepo is a hand-written test double for repo.TeamRepo.
type mockTeamRepo struct {
	list    func(ctx context.Context) ([]domain.Team, error)
	getByID func(ctx context.Context, id string) (domain.Team, error)
	create  func(ctx context.Context, t domain.Team) (domain.Team, error)
	patch   func(ctx context.Context, id string, p domain.TeamPatch) (domain.Team, error)
	delete  func(ctx context.Context, id string) error
}

func (m *mockTeamRepo) List(ctx context.Context) ([]domain.Team, error) {
	return m.list(ctx)
}
func (m *mockTeamRepo) GetByID(ctx context.Context, id string) (domain.Team, error) {
	return m.getByID(ctx, id)
}
func (m *mockTeamRepo) Create(ctx context.Context, t domain.Team) (domain.Team, error) {
	return m.create(ctx, t)
}
func (m *mockTeamRepo) Patch(ctx context.Context, id string, p domain.TeamPatch) (domain.Team, error) {
	return m.patch(ctx, id, p)
}
func (m *mockTeamRepo) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

var _ repo.TeamRepo = (*mockTeamRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func day(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func validInitiative() domain.Initiative {
	return domain.Initiative{
		ID:          "init-1",
		Title:       "API Gateway v2.0",
		Description: "Redesign core API infrastructure",
		Team:        "engineering",
		Priority:    domain.PriorityHigh,
		StartDate:   day("2024-01-15"),
		EndDate:     day("2024-03-30"),
		Assignees:   []string{"JS"},
		Quarter:     domain.Q1,
	}
}

func listOf(list ...domain.Initiative) func(context.Context) ([]domain.Initiative, error) {
	return func(context.Context) ([]domain.Initiative, error) { return list, nil }
}

func teamsOf(list ...domain.Team) func(context.Context) ([]domain.Team, error) {
	return func(context.Context) ([]domain.Team, error) { return list, nil }
}

func ptr[T any](v T) *T { return &v }
