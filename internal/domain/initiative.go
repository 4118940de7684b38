// Package domain contains the core data types for the roadmap planner.
// This package has no dependencies outside the standard library and is
// imported by every other internal package (timeline, repo, service, handler).
package domain

import (
	"math"
	"slices"
	"strings"
	"time"
)

// Priority is the urgency of an initiative.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every valid Priority in display order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority decodes a wire string. Anything outside the enum is rejected.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(s)
	return p, slices.Contains(Priorities, p)
}

// Quarter is a calendar quarter of the reference year.
type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

// Quarters lists every valid Quarter in calendar order.
var Quarters = []Quarter{Q1, Q2, Q3, Q4}

// ParseQuarter decodes a wire string. Anything outside the enum is rejected.
func ParseQuarter(s string) (Quarter, bool) {
	q := Quarter(s)
	return q, slices.Contains(Quarters, q)
}

// Rank returns the sort rank of q (Q1=0 .. Q4=3), or len(Quarters) for an
// unknown value so that bad data sorts last instead of first.
func (q Quarter) Rank() int {
	if i := slices.Index(Quarters, q); i >= 0 {
		return i
	}
	return len(Quarters)
}

// DateLayout is the wire and storage format for initiative dates.
const DateLayout = "2006-01-02"

// Position bounds. Positions are stored as 32-bit integers.
const (
	MinPosition = math.MinInt32
	MaxPosition = math.MaxInt32
)

// Initiative is a plannable work item placed on the roadmap.
//
// Quarter is redundant with StartDate. It is kept in sync by callers (the
// create form, the drop resolver) and never recomputed by the store.
type Initiative struct {
	ID          string
	Title       string
	Description string
	Team        string // Team.ID; not enforced as a foreign key
	Priority    Priority
	StartDate   time.Time // midnight UTC
	EndDate     time.Time // midnight UTC
	Assignees   []string
	Quarter     Quarter
	Position    int
	CreatedAt   time.Time
}

// InitiativePatch is a partial update. Nil fields are left unchanged.
// ID and CreatedAt are deliberately absent: they can never be patched.
type InitiativePatch struct {
	Title       *string
	Description *string
	Team        *string
	Priority    *Priority
	StartDate   *time.Time
	EndDate     *time.Time
	Assignees   *[]string
	Quarter     *Quarter
	Position    *int
}

// IsEmpty reports whether applying p would change nothing.
func (p InitiativePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Team == nil &&
		p.Priority == nil && p.StartDate == nil && p.EndDate == nil &&
		p.Assignees == nil && p.Quarter == nil && p.Position == nil
}

// Apply returns a copy of in with every non-nil field of p merged in.
func (p InitiativePatch) Apply(in Initiative) Initiative {
	out := in
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Team != nil {
		out.Team = *p.Team
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.StartDate != nil {
		out.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		out.EndDate = *p.EndDate
	}
	if p.Assignees != nil {
		out.Assignees = slices.Clone(*p.Assignees)
	}
	if p.Quarter != nil {
		out.Quarter = *p.Quarter
	}
	if p.Position != nil {
		out.Position = *p.Position
	}
	if out.Assignees == nil {
		out.Assignees = []string{}
	}
	return out
}

// InitiativeFilter narrows an initiative listing the same way the board's
// sidebar does. Empty sets match everything.
type InitiativeFilter struct {
	Teams      []string
	Priorities []Priority
	// Search matches case-insensitively against title or description.
	Search string
}

// Matches reports whether in passes every criterion of f.
func (f InitiativeFilter) Matches(in Initiative) bool {
	if len(f.Teams) > 0 && !slices.Contains(f.Teams, in.Team) {
		return false
	}
	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, in.Priority) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(in.Title), q) ||
			strings.Contains(strings.ToLower(in.Description), q)
	}
	return true
}

// Apply returns the initiatives that match f, preserving input order.
// The result is never nil.
func (f InitiativeFilter) Apply(list []Initiative) []Initiative {
	out := make([]Initiative, 0, len(list))
	for _, in := range list {
		if f.Matches(in) {
			out = append(out, in)
		}
	}
	return out
}

// CompareInitiatives is the listing order: quarter, then team id, then
// position. CreatedAt and ID break remaining ties so the order is total.
func CompareInitiatives(a, b Initiative) int {
	if c := a.Quarter.Rank() - b.Quarter.Rank(); c != 0 {
		return c
	}
	if c := strings.Compare(a.Team, b.Team); c != 0 {
		return c
	}
	if a.Position != b.Position {
		if a.Position < b.Position {
			return -1
		}
		return 1
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
