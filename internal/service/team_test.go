package service_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/roadmap-planner/internal/domain"
	"github.com/pkordes/roadmap-planner/internal/service"
)

func TestTeamService_Create_DerivesID(t *testing.T) {
	var stored domain.Team
	svc := service.NewTeamService(&mockTeamRepo{
		create: func(_ context.Context, tm domain.Team) (domain.Team, error) {
			stored = tm
			return tm, nil
		},
	}, &mockInitiativeRepo{}, nil)

	got, err := svc.Create(context.Background(), domain.Team{Name: "Platform Ops", Color: "#123456"})

	require.NoError(t, err)
	assert.Equal(t, "platform-ops", stored.ID)
	assert.Equal(t, "platform-ops", got.ID)
	assert.Equal(t, "Platform Ops", got.Name)
}

func TestTeamService_Create_Conflict(t *testing.T) {
	svc := service.NewTeamService(&mockTeamRepo{
		create: func(context.Context, domain.Team) (domain.Team, error) {
			return domain.Team{}, domain.ErrConflict
		},
	}, &mockInitiativeRepo{}, nil)

	_, err := svc.Create(context.Background(), domain.Team{Name: "design", Color: "#000000"})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTeamService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		team  domain.Team
		field string
	}{
		{name: "blank name", team: domain.Team{Name: "  ", Color: "#000000"}, field: "name"},
		{name: "blank color", team: domain.Team{Name: "Design", Color: ""}, field: "color"},
		{name: "name without letters or digits", team: domain.Team{Name: "!!!", Color: "#000000"}, field: "name"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewTeamService(&mockTeamRepo{}, &mockInitiativeRepo{}, nil)

			_, err := svc.Create(context.Background(), tc.team)

			require.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Fields[0].Field)
		})
	}
}

func TestTeamService_Patch_KeepsID(t *testing.T) {
	svc := service.NewTeamService(&mockTeamRepo{
		patch: func(_ context.Context, id string, p domain.TeamPatch) (domain.Team, error) {
			return p.Apply(domain.Team{ID: id, Name: "Design", Color: "#8b5cf6"}), nil
		},
	}, &mockInitiativeRepo{}, nil)

	got, err := svc.Patch(context.Background(), "design", domain.TeamPatch{Name: ptr("Brand Design")})

	require.NoError(t, err)
	assert.Equal(t, "design", got.ID)
	assert.Equal(t, "Brand Design", got.Name)
}

func TestTeamService_Delete_LeavesInitiativesAndLogsOrphans(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	a := validInitiative()
	b := validInitiative()
	b.ID = "init-2"
	c := validInitiative()
	c.ID, c.Team = "init-3", "design"

	deleted := ""
	svc := service.NewTeamService(
		&mockTeamRepo{delete: func(_ context.Context, id string) error { deleted = id; return nil }},
		&mockInitiativeRepo{
			list:   listOf(a, b, c),
			delete: func(context.Context, string) error { t.Fatal("initiatives must not be deleted"); return nil },
		},
		logger,
	)

	err := svc.Delete(context.Background(), "engineering")

	require.NoError(t, err)
	assert.Equal(t, "engineering", deleted)
	assert.Contains(t, buf.String(), `"orphaned_initiatives":2`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestTeamService_Delete_NotFound(t *testing.T) {
	svc := service.NewTeamService(&mockTeamRepo{
		delete: func(context.Context, string) error { return domain.ErrNotFound },
	}, &mockInitiativeRepo{}, nil)

	err := svc.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
