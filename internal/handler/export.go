package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/roadmap-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"id", "title", "description", "team_id", "team_name", "priority",
	"start_date", "end_date", "quarter", "position", "assignees", "created_at",
}

type exportRowResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TeamID      string    `json:"teamId"`
	TeamName    string    `json:"teamName"`
	Priority    string    `json:"priority"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Quarter     string    `json:"quarter"`
	Position    int       `json:"position"`
	Assignees   []string  `json:"assignees"`
	CreatedAt   time.Time `json:"createdAt"`
}

// getExport handles GET /api/export.
// The response is an attachment named after the export date. Use ?format=csv
// to receive CSV; the default is indented JSON. The list filters of
// GET /api/initiatives apply.
func (s *Server) getExport(w http.ResponseWriter, r *http.Request) {
	format := "json"
	if err := bindQuery(r, "format", &format); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	if format != "json" && format != "csv" {
		s.writeError(w, r, domain.NewValidationError("format", "format must be one of json, csv"), "")
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	export, err := s.export.Export(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	var body []byte
	contentType := "application/json"
	if format == "csv" {
		body, err = buildCSV(export.Rows)
		contentType = "text/csv; charset=utf-8"
	} else {
		body, err = buildJSON(export.Rows)
	}
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.BaseName+"."+format+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(body)
}

// buildJSON encodes rows as a two-space indented JSON array.
func buildJSON(rows []domain.ExportRow) ([]byte, error) {
	out := make([]exportRowResponse, 0, len(rows))
	for _, r := range rows {
		assignees := r.Assignees
		if assignees == nil {
			assignees = []string{}
		}
		out = append(out, exportRowResponse{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			TeamID:      r.TeamID,
			TeamName:    r.TeamName,
			Priority:    string(r.Priority),
			StartDate:   r.StartDate,
			EndDate:     r.EndDate,
			Quarter:     string(r.Quarter),
			Position:    r.Position,
			Assignees:   assignees,
			CreatedAt:   r.CreatedAt.UTC(),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

// buildCSV encodes rows as CSV with a header line.
// Assignees within a row are pipe-separated ("|") to keep each initiative on
// a single CSV line.
func buildCSV(rows []domain.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write([]string{
			r.ID,
			r.Title,
			r.Description,
			r.TeamID,
			r.TeamName,
			string(r.Priority),
			r.StartDate,
			r.EndDate,
			string(r.Quarter),
			strconv.Itoa(r.Position),
			strings.Join(r.Assignees, "|"),
			r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
