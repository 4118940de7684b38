package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/roadmap-planner/internal/domain"
)

type teamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type createTeamRequest struct {
	Name        string `json:"name" validate:"notblank"`
	Color       string `json:"color" validate:"notblank"`
	Description string `json:"description"`
}

type patchTeamRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,notblank"`
	Color       *string `json:"color,omitempty" validate:"omitnil,notblank"`
	Description *string `json:"description,omitempty"`
}

// listTeams handles GET /api/teams.
func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.teams.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "team")
		return
	}
	out := make([]teamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// createTeam handles POST /api/teams. The id is derived from the name;
// a name that maps onto an existing id yields 409.
func (s *Server) createTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	created, err := s.teams.Create(r.Context(), domain.Team{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(w, r, err, "team")
		return
	}
	writeJSON(w, http.StatusCreated, toTeamResponse(created))
}

// getTeam handles GET /api/teams/{id}.
func (s *Server) getTeam(w http.ResponseWriter, r *http.Request) {
	t, err := s.teams.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, "team")
		return
	}
	writeJSON(w, http.StatusOK, toTeamResponse(t))
}

// patchTeam handles PATCH /api/teams/{id}.
func (s *Server) patchTeam(w http.ResponseWriter, r *http.Request) {
	var req patchTeamRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	updated, err := s.teams.Patch(r.Context(), chi.URLParam(r, "id"), domain.TeamPatch{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(w, r, err, "team")
		return
	}
	writeJSON(w, http.StatusOK, toTeamResponse(updated))
}

// deleteTeam handles DELETE /api/teams/{id}. Initiatives of the team are kept.
func (s *Server) deleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := s.teams.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err, "team")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toTeamResponse(t domain.Team) teamResponse {
	return teamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Color:       t.Color,
		Description: t.Description,
		CreatedAt:   t.CreatedAt.UTC(),
	}
}
