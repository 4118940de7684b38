package domain

import "time"

// ExportRow is a single row in the roadmap export.
// It is a flat view of one initiative with its team's display name joined in.
// TeamName falls back to the raw team id when the team record is gone.
type ExportRow struct {
	ID          string
	Title       string
	Description string
	TeamID      string
	TeamName    string
	Priority    Priority
	StartDate   string // "2006-01-02"
	EndDate     string // "2006-01-02"
	Quarter     Quarter
	Position    int
	Assignees   []string
	CreatedAt   time.Time
}

// Export is the result of an export run: the rows plus the suggested file
// name without extension, e.g. "roadmap-2024-03-01".
type Export struct {
	BaseName string
	Rows     []ExportRow
}
