package domain

import (
	"strings"
	"time"
	"unicode"
)

// Team groups initiatives on the board.
// Identity is determined by ID, which is derived from the name on creation
// (lowercase, hyphenated). Renaming a team later keeps the first ID.
type Team struct {
	ID          string
	Name        string
	Color       string
	Description string
	CreatedAt   time.Time
}

// TeamPatch is a partial update. Nil fields are left unchanged.
type TeamPatch struct {
	Name        *string
	Color       *string
	Description *string
}

// IsEmpty reports whether applying p would change nothing.
func (p TeamPatch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil && p.Description == nil
}

// Apply returns a copy of t with every non-nil field of p merged in.
func (p TeamPatch) Apply(t Team) Team {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	return t
}

// TeamIDFromName lower-cases name and joins its words with single hyphens.
// "Platform Ops" -> "platform-ops", "  R&D  " -> "r-d".
// Distinct names can collide ("Design" and "design"); callers must treat an
// existing ID as a conflict rather than overwrite it.
func TeamIDFromName(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// CompareTeams orders teams by name, then by ID.
func CompareTeams(a, b Team) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
