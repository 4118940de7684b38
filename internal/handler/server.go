// Package handler implements the HTTP API of the roadmap planner.
// All handlers are methods on Server and are split into domain-specific files
// (initiative.go, team.go, board.go, ...). Routes wires them onto a chi router.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/roadmap-planner/internal/domain"
	"github.com/pkordes/roadmap-planner/internal/service"
	"github.com/pkordes/roadmap-planner/internal/timeline"
)

// InitiativeServicer defines the initiative operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the service or repo layers.
type InitiativeServicer interface {
	List(ctx context.Context, f domain.InitiativeFilter) ([]domain.Initiative, error)
	GetByID(ctx context.Context, id string) (domain.Initiative, error)
	Create(ctx context.Context, in domain.Initiative) (domain.Initiative, error)
	Patch(ctx context.Context, id string, p domain.InitiativePatch) (domain.Initiative, error)
	Delete(ctx context.Context, id string) error
}

// TeamServicer defines the team operations the handlers depend on.
type TeamServicer interface {
	List(ctx context.Context) ([]domain.Team, error)
	GetByID(ctx context.Context, id string) (domain.Team, error)
	Create(ctx context.Context, t domain.Team) (domain.Team, error)
	Patch(ctx context.Context, id string, p domain.TeamPatch) (domain.Team, error)
	Delete(ctx context.Context, id string) error
}

// BoardServicer renders the timeline and applies drops.
type BoardServicer interface {
	Timeline(ctx context.Context, g timeline.Granularity, selectedMonth int, f domain.InitiativeFilter) (service.Board, error)
	Move(ctx context.Context, id string, drop timeline.Drop) (domain.Initiative, bool, error)
}

// Exporter produces the flat roadmap export.
type Exporter interface {
	Export(ctx context.Context, f domain.InitiativeFilter) (domain.Export, error)
}

// Deps holds everything the Server needs. Nil services leave their routes
// unregistered, which keeps narrowly-scoped handler tests small.
type Deps struct {
	Initiatives InitiativeServicer
	Teams       TeamServicer
	Board       BoardServicer
	Export      Exporter
	OpenAPISpec []byte
	Logger      *slog.Logger
}

// Server serves every API endpoint.
type Server struct {
	initiatives InitiativeServicer
	teams       TeamServicer
	board       BoardServicer
	export      Exporter
	openapi     *openAPIDoc
	logger      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		initiatives: deps.Initiatives,
		teams:       deps.Teams,
		board:       deps.Board,
		export:      deps.Export,
		openapi:     newOpenAPIDoc(deps.OpenAPISpec),
		logger:      logger,
	}
}

// Routes returns a chi router with every endpoint registered.
// Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusNotFound, codeNotFound, "route not found", nil)
	})

	r.Get("/healthz", s.getHealth)
	r.Handle("/metrics", promhttp.Handler())
	if s.openapi != nil {
		r.Get("/openapi.yaml", s.getOpenAPIYAML)
		r.Get("/openapi.json", s.getOpenAPIJSON)
	}

	r.Route("/api", func(r chi.Router) {
		if s.initiatives != nil {
			r.Route("/initiatives", func(r chi.Router) {
				r.Get("/", s.listInitiatives)
				r.Post("/", s.createInitiative)
				r.Get("/{id}", s.getInitiative)
				r.Patch("/{id}", s.patchInitiative)
				r.Delete("/{id}", s.deleteInitiative)
				if s.board != nil {
					r.Post("/{id}/move", s.moveInitiative)
				}
			})
		}
		if s.teams != nil {
			r.Route("/teams", func(r chi.Router) {
				r.Get("/", s.listTeams)
				r.Post("/", s.createTeam)
				r.Get("/{id}", s.getTeam)
				r.Patch("/{id}", s.patchTeam)
				r.Delete("/{id}", s.deleteTeam)
			})
		}
		if s.board != nil {
			r.Get("/timeline", s.getTimeline)
		}
		r.Get("/periods", s.getPeriods)
		if s.export != nil {
			r.Get("/export", s.getExport)
		}
	})
	return r
}
