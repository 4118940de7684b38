package handler

import (
	"net/http"

	"github.com/pkordes/roadmap-planner/internal/service"
	"github.com/pkordes/roadmap-planner/internal/timeline"
)

type boardResponse struct {
	Granularity string             `json:"granularity"`
	Month       int                `json:"month"`
	Periods     []string           `json:"periods"`
	Rows        []boardRowResponse `json:"rows"`
}

type boardRowResponse struct {
	Team  teamResponse   `json:"team"`
	Count int            `json:"count"`
	Cells []cellResponse `json:"cells"`
}

type cellResponse struct {
	Period      string               `json:"period"`
	Initiatives []initiativeResponse `json:"initiatives"`
}

type periodsResponse struct {
	Granularity string   `json:"granularity"`
	Month       int      `json:"month"`
	Periods     []string `json:"periods"`
}

// getTimeline handles GET /api/timeline?granularity=&month=&team=&priority=&q=.
func (s *Server) getTimeline(w http.ResponseWriter, r *http.Request) {
	g, month, err := parseBoardQuery(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	board, err := s.board.Timeline(r.Context(), g, month, f)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, toBoardResponse(board))
}

// getPeriods handles GET /api/periods?granularity=&month=.
func (s *Server) getPeriods(w http.ResponseWriter, r *http.Request) {
	g, month, err := parseBoardQuery(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	periods, err := timeline.Periods(g, month)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, periodsResponse{Granularity: string(g), Month: month, Periods: periods})
}

func toBoardResponse(b service.Board) boardResponse {
	out := boardResponse{
		Granularity: string(b.Granularity),
		Month:       b.SelectedMonth,
		Periods:     b.Periods,
		Rows:        make([]boardRowResponse, 0, len(b.Rows)),
	}
	for _, row := range b.Rows {
		cells := make([]cellResponse, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, cellResponse{Period: c.Period, Initiatives: toInitiativeResponses(c.Initiatives)})
		}
		out.Rows = append(out.Rows, boardRowResponse{Team: toTeamResponse(row.Team), Count: row.Count, Cells: cells})
	}
	return out
}
