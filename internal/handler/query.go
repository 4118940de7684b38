package handler

import (
	"net/http"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/roadmap-planner/internal/domain"
	"github.com/pkordes/roadmap-planner/internal/timeline"
)

// bindQuery binds the optional form-style query parameter name into dest.
// A value that cannot be parsed is reported as a field error on name.
func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return domain.NewValidationError(name, "invalid "+name+" parameter: "+err.Error())
	}
	return nil
}

// splitList flattens repeated and comma-separated values: ?team=a&team=b,c.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// parseFilter reads ?team=, ?priority= and ?q= into an InitiativeFilter.
// Unknown priorities are rejected rather than silently matching nothing.
func parseFilter(r *http.Request) (domain.InitiativeFilter, error) {
	var f domain.InitiativeFilter
	var teams, priorities []string
	if err := bindQuery(r, "team", &teams); err != nil {
		return f, err
	}
	if err := bindQuery(r, "priority", &priorities); err != nil {
		return f, err
	}
	if err := bindQuery(r, "q", &f.Search); err != nil {
		return f, err
	}

	f.Teams = splitList(teams)
	for _, raw := range splitList(priorities) {
		p, ok := domain.ParsePriority(raw)
		if !ok {
			return f, domain.NewValidationError("priority", "priority must be one of high, medium, low")
		}
		f.Priorities = append(f.Priorities, p)
	}
	return f, nil
}

// parseBoardQuery reads ?granularity= (default quarters) and ?month= (default 0).
func parseBoardQuery(r *http.Request) (timeline.Granularity, int, error) {
	raw := string(timeline.Quarters)
	if err := bindQuery(r, "granularity", &raw); err != nil {
		return "", 0, err
	}
	g, err := timeline.ParseGranularity(raw)
	if err != nil {
		return "", 0, err
	}
	month := 0
	if err := bindQuery(r, "month", &month); err != nil {
		return "", 0, err
	}
	return g, month, nil
}
