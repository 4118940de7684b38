package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/roadmap-planner/internal/domain"
	"github.com/pkordes/roadmap-planner/internal/timeline"
)

type initiativeResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Team        string             `json:"team"`
	Priority    string             `json:"priority"`
	StartDate   openapi_types.Date `json:"startDate"`
	EndDate     openapi_types.Date `json:"endDate"`
	Assignees   []string           `json:"assignees"`
	Quarter     string             `json:"quarter"`
	Position    int                `json:"position"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// createInitiativeRequest is the body of POST /api/initiatives.
type createInitiativeRequest struct {
	Title       string   `json:"title" validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	Team        string   `json:"team" validate:"notblank"`
	Priority    string   `json:"priority" validate:"required,oneof=high medium low"`
	StartDate   string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string   `json:"endDate" validate:"required,datetime=2006-01-02"`
	Assignees   []string `json:"assignees" validate:"omitempty,dive,notblank"`
	Quarter     string   `json:"quarter" validate:"required,oneof=Q1 Q2 Q3 Q4"`
	Position    int      `json:"position" validate:"gte=-2147483648,lte=2147483647"`
}

// patchInitiativeRequest is the body of PATCH /api/initiatives/{id}.
// Absent fields are left unchanged; present ones obey the create rules.
type patchInitiativeRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitnil,notblank"`
	Description *string   `json:"description,omitempty" validate:"omitnil,notblank"`
	Team        *string   `json:"team,omitempty" validate:"omitnil,notblank"`
	Priority    *string   `json:"priority,omitempty" validate:"omitnil,oneof=high medium low"`
	StartDate   *string   `json:"startDate,omitempty" validate:"omitnil,datetime=2006-01-02"`
	EndDate     *string   `json:"endDate,omitempty" validate:"omitnil,datetime=2006-01-02"`
	Assignees   *[]string `json:"assignees,omitempty" validate:"omitnil,dive,notblank"`
	Quarter     *string   `json:"quarter,omitempty" validate:"omitnil,oneof=Q1 Q2 Q3 Q4"`
	Position    *int      `json:"position,omitempty" validate:"omitnil,gte=-2147483648,lte=2147483647"`
}

// moveInitiativeRequest is the body of POST /api/initiatives/{id}/move.
type moveInitiativeRequest struct {
	Team        string `json:"team" validate:"notblank"`
	Period      string `json:"period" validate:"notblank"`
	Granularity string `json:"granularity" validate:"required,oneof=quarters months weeks days"`
	Month       int    `json:"month" validate:"gte=0,lte=11"`
}

type moveInitiativeResponse struct {
	Initiative initiativeResponse `json:"initiative"`
	Changed    bool               `json:"changed"`
}

// listInitiatives handles GET /api/initiatives.
func (s *Server) listInitiatives(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	list, err := s.initiatives.List(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err, "initiative")
		return
	}
	writeJSON(w, http.StatusOK, toInitiativeResponses(list))
}

// createInitiative handles POST /api/initiatives.
func (s *Server) createInitiative(w http.ResponseWriter, r *http.Request) {
	var req createInitiativeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	// Formats were checked by decodeBody, so these parses cannot fail.
	start, _ := time.Parse(domain.DateLayout, req.StartDate)
	end, _ := time.Parse(domain.DateLayout, req.EndDate)
	assignees := req.Assignees
	if assignees == nil {
		assignees = []string{}
	}

	created, err := s.initiatives.Create(r.Context(), domain.Initiative{
		Title:       req.Title,
		Description: req.Description,
		Team:        req.Team,
		Priority:    domain.Priority(req.Priority),
		StartDate:   start,
		EndDate:     end,
		Assignees:   assignees,
		Quarter:     domain.Quarter(req.Quarter),
		Position:    req.Position,
	})
	if err != nil {
		s.writeError(w, r, err, "initiative")
		return
	}
	writeJSON(w, http.StatusCreated, toInitiativeResponse(created))
}

// getInitiative handles GET /api/initiatives/{id}.
func (s *Server) getInitiative(w http.ResponseWriter, r *http.Request) {
	in, err := s.initiatives.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, "initiative")
		return
	}
	writeJSON(w, http.StatusOK, toInitiativeResponse(in))
}

// patchInitiative handles PATCH /api/initiatives/{id}.
func (s *Server) patchInitiative(w http.ResponseWriter, r *http.Request) {
	var req patchInitiativeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	updated, err := s.initiatives.Patch(r.Context(), chi.URLParam(r, "id"), req.toPatch())
	if err != nil {
		s.writeError(w, r, err, "initiative")
		return
	}
	writeJSON(w, http.StatusOK, toInitiativeResponse(updated))
}

// deleteInitiative handles DELETE /api/initiatives/{id}.
func (s *Server) deleteInitiative(w http.ResponseWriter, r *http.Request) {
	if err := s.initiatives.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err, "initiative")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// moveInitiative handles POST /api/initiatives/{id}/move: a drop on the board.
func (s *Server) moveInitiative(w http.ResponseWriter, r *http.Request) {
	var req moveInitiativeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	in, changed, err := s.board.Move(r.Context(), chi.URLParam(r, "id"), timeline.Drop{
		TeamID:        req.Team,
		Period:        req.Period,
		Granularity:   timeline.Granularity(req.Granularity),
		SelectedMonth: req.Month,
	})
	if err != nil {
		s.writeError(w, r, err, "initiative")
		return
	}
	writeJSON(w, http.StatusOK, moveInitiativeResponse{Initiative: toInitiativeResponse(in), Changed: changed})
}

func (req patchInitiativeRequest) toPatch() domain.InitiativePatch {
	p := domain.InitiativePatch{
		Title:       req.Title,
		Description: req.Description,
		Team:        req.Team,
		Assignees:   req.Assignees,
		Position:    req.Position,
	}
	if req.Priority != nil {
		v := domain.Priority(*req.Priority)
		p.Priority = &v
	}
	if req.Quarter != nil {
		v := domain.Quarter(*req.Quarter)
		p.Quarter = &v
	}
	if req.StartDate != nil {
		v, _ := time.Parse(domain.DateLayout, *req.StartDate)
		p.StartDate = &v
	}
	if req.EndDate != nil {
		v, _ := time.Parse(domain.DateLayout, *req.EndDate)
		p.EndDate = &v
	}
	return p
}

func toInitiativeResponse(in domain.Initiative) initiativeResponse {
	assignees := in.Assignees
	if assignees == nil {
		assignees = []string{}
	}
	return initiativeResponse{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Team:        in.Team,
		Priority:    string(in.Priority),
		StartDate:   openapi_types.Date{Time: in.StartDate},
		EndDate:     openapi_types.Date{Time: in.EndDate},
		Assignees:   assignees,
		Quarter:     string(in.Quarter),
		Position:    in.Position,
		CreatedAt:   in.CreatedAt.UTC(),
	}
}

func toInitiativeResponses(list []domain.Initiative) []initiativeResponse {
	out := make([]initiativeResponse, 0, len(list))
	for _, in := range list {
		out = append(out, toInitiativeResponse(in))
	}
	return out
}
