package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/roadmap-planner/internal/domain"
	"github.com/pkordes/roadmap-planner/internal/handler"
	"github.com/pkordes/roadmap-planner/internal/service"
	"github.com/pkordes/roadmap-planner/internal/timeline"
)

// mockInitiativeServicer is a test double for handler.InitiativeServicer.
// Set only the method fields your test needs.
type mockInitiativeServicer struct {
	list    func(ctx context.Context, f domain.InitiativeFilter) ([]domain.Initiative, error)
	getByID func(ctx context.Context, id string) (domain.Initiative, error)
	create  func(ctx context.Context, in domain.Initiative) (domain.Initiative, error)
	patch   func(ctx context.Context, id string, p domain.InitiativePatch) (domain.Initiative, error)
	delete  func(ctx context.Context, id string) error
}

func (m *mockInitiativeServicer) List(ctx context.Context, f domain.InitiativeFilter) ([]domain.Initiative, error) {
	return m.list(ctx, f)
}
func (m *mockInitiativeServicer) GetByID(ctx context.Context, id string) (domain.Initiative, error) {
	return m.getByID(ctx, id)
}
func (m *mockInitiativeServicer) Create(ctx context.Context, in domain.Initiative) (domain.Initiative, error) {
	return m.create(ctx, in)
}
func (m *mockInitiativeServicer) Patch(ctx context.Context, id string, p domain.InitiativePatch) (domain.Initiative, error) {
	return m.patch(ctx, id, p)
}
func (m *mockInitiativeServicer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

var _ handler.InitiativeServicer = (*mockInitiativeServicer)(nil)

// mockTeamServicer is a test double for handler.TeamServicer.
type mockTeamServicer struct {
	list    func(ctx context.Context) ([]domain.Team, error)
	getByID func(ctx context.Context, id string) (domain.Team, error)
	create  func(ctx context.Context, t domain.Team) (domain.Team, error)
	patch   func(ctx context.Context, id string, p domain.TeamPatch) (domain.Team, error)
	delete  func(ctx context.Context, id string) error
}

func (m *mockTeamServicer) List(ctx context.Context) ([]domain.Team, error) {
	return m.list(ctx)
}
func (m *mockTeamServicer) GetByID(ctx context.Context, id string) (domain.Team, error) {
	return m.getByID(ctx, id)
}
func (m *mockTeamServicer) Create(ctx context.Context, t domain.Team) (domain.Team, error) {
	return m.create(ctx, t)
}
func (m *mockTeamServicer) Patch(ctx context.Context, id string, p domain.TeamPatch) (domain.Team, error) {
	return m.patch(ctx, id, p)
}
func (m *mockTeamServicer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

var _ handler.TeamServicer = (*mockTeamServicer)(nil)

// mockBoardServicer is a test double for handler.BoardServicer.
type mockBoardServicer struct {
	timeline func(ctx context.Context, g timeline.Granularity, month int, f domain.InitiativeFilter) (service.Board, error)
	move     func(ctx context.Context, id string, drop timeline.Drop) (domain.Initiative, bool, error)
}

func (m *mockBoardServicer) Timeline(ctx context.Context, g timeline.Granularity, month int, f domain.InitiativeFilter) (service.Board, error) {
	return m.timeline(ctx, g, month, f)
}
func (m *mockBoardServicer) Move(ctx context.Context, id string, drop timeline.Drop) (domain.Initiative, bool, error) {
	return m.move(ctx, id, drop)
}

var _ handler.BoardServicer = (*mockBoardServicer)(nil)

// mockExporter is a test double for handler.Exporter.
type mockExporter struct {
	export func(ctx context.Context, f domain.InitiativeFilter) (domain.Export, error)
}

func (m *mockExporter) Export(ctx context.Context, f domain.InitiativeFilter) (domain.Export, error) {
	return m.export(ctx, f)
}

var _ handler.Exporter = (*mockExporter)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given deps into its chi router,
// the same way main.go does.
func newHTTPHandler(deps handler.Deps) http.Handler {
	return handler.NewServer(deps).Routes()
}

// errorBody mirrors the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Fields  []domain.FieldError `json:"fields"`
	} `json:"error"`
}

type initiativeBody struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Team        string   `json:"team"`
	Priority    string   `json:"priority"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Assignees   []string `json:"assignees"`
	Quarter     string   `json:"quarter"`
	Position    int      `json:"position"`
	CreatedAt   string   `json:"createdAt"`
}

func initiativeFixture() domain.Initiative {
	return domain.Initiative{
		ID:          "0b6c1f4e-6f7e-4f59-9d1a-4ad0b2b1c001",
		Title:       "API Gateway v2.0",
		Description: "Redesign core API infrastructure",
		Team:        "engineering",
		Priority:    domain.PriorityHigh,
		StartDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC),
		Assignees:   []string{"JS", "MK"},
		Quarter:     domain.Q1,
		Position:    0,
		CreatedAt:   time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
	}
}

func teamFixture() domain.Team {
	return domain.Team{
		ID:        "engineering",
		Name:      "Engineering",
		Color:     "#3b82f6",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func fieldNames(fields []domain.FieldError) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Field
	}
	return out
}

func doRaw(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
