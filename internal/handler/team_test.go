package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/roadmap-planner/internal/domain"
	"github.com/pkordes/roadmap-planner/internal/handler"
)

func teamsHandler(svc *mockTeamServicer) http.Handler {
	return newHTTPHandler(handler.Deps{Teams: svc})
}

type teamBody struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

func TestListTeams_200(t *testing.T) {
	svc := &mockTeamServicer{
		list: func(context.Context) ([]domain.Team, error) { return []domain.Team{teamFixture()}, nil },
	}

	rec := do(t, teamsHandler(svc), http.MethodGet, "/api/teams", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []teamBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "engineering", resp[0].ID)
}

func TestCreateTeam_201(t *testing.T) {
	svc := &mockTeamServicer{
		create: func(_ context.Context, tm domain.Team) (domain.Team, error) {
			assert.Empty(t, tm.ID, "the handler never picks the id")
			tm.ID = domain.TeamIDFromName(tm.Name)
			return tm, nil
		},
	}

	rec := do(t, teamsHandler(svc), http.MethodPost, "/api/teams",
		map[string]any{"name": "Platform Ops", "color": "#123456"})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp teamBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "platform-ops", resp.ID)
	assert.Equal(t, "Platform Ops", resp.Name)
}

func TestCreateTeam_409_IDCollision(t *testing.T) {
	svc := &mockTeamServicer{
		create: func(context.Context, domain.Team) (domain.Team, error) {
			return domain.Team{}, domain.ErrConflict
		},
	}

	rec := do(t, teamsHandler(svc), http.MethodPost, "/api/teams",
		map[string]any{"name": "design", "color": "#000000"})

	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "conflict", resp.Error.Code)
	assert.Equal(t, "team already exists", resp.Error.Message)
}

func TestCreateTeam_400_MissingColor(t *testing.T) {
	rec := do(t, teamsHandler(&mockTeamServicer{}), http.MethodPost, "/api/teams", map[string]any{"name": "Design"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"color"}, fieldNames(decodeError(t, rec).Error.Fields))
}

func TestGetTeam_404(t *testing.T) {
	svc := &mockTeamServicer{
		getByID: func(context.Context, string) (domain.Team, error) { return domain.Team{}, domain.ErrNotFound },
	}

	rec := do(t, teamsHandler(svc), http.MethodGet, "/api/teams/ghost", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchTeam_200(t *testing.T) {
	var got domain.TeamPatch
	svc := &mockTeamServicer{
		patch: func(_ context.Context, id string, p domain.TeamPatch) (domain.Team, error) {
			got = p
			return p.Apply(teamFixture()), nil
		},
	}

	rec := do(t, teamsHandler(svc), http.MethodPatch, "/api/teams/engineering", map[string]any{"color": "#000000"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Color)
	assert.Nil(t, got.Name)
	var resp teamBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "#000000", resp.Color)
	assert.Equal(t, "Engineering", resp.Name)
}

func TestPatchTeam_400_BlankName(t *testing.T) {
	rec := do(t, teamsHandler(&mockTeamServicer{}), http.MethodPatch, "/api/teams/engineering", map[string]any{"name": " "})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"name"}, fieldNames(decodeError(t, rec).Error.Fields))
}

func TestDeleteTeam_204(t *testing.T) {
	svc := &mockTeamServicer{delete: func(context.Context, string) error { return nil }}

	rec := do(t, teamsHandler(svc), http.MethodDelete, "/api/teams/engineering", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteTeam_404(t *testing.T) {
	svc := &mockTeamServicer{delete: func(context.Context, string) error { return domain.ErrNotFound }}

	rec := do(t, teamsHandler(svc), http.MethodDelete, "/api/teams/ghost", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
