package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/roadmap-planner/internal/domain"
)

// SeedTeams are the teams a fresh board starts with.
var SeedTeams = []domain.Team{
	{ID: "design", Name: "Design", Color: "#8b5cf6", Description: "Product and visual design"},
	{ID: "engineering", Name: "Engineering", Color: "#3b82f6", Description: "Platform and application engineering"},
	{ID: "marketing", Name: "Marketing", Color: "#f59e0b", Description: "Campaigns and launches"},
	{ID: "product", Name: "Product", Color: "#10b981", Description: "Product management and research"},
	{ID: "sales", Name: "Sales", Color: "#ef4444", Description: "Sales enablement"},
}

// SeedInitiatives are the sample initiatives a fresh board starts with.
func SeedInitiatives() []domain.Initiative {
	d := func(s string) time.Time {
		t, err := time.Parse(domain.DateLayout, s)
		if err != nil {
			panic("repo: bad seed date " + s)
		}
		return t
	}
	return []domain.Initiative{
		{Title: "API Gateway v2.0", Description: "Redesign core API infrastructure for better performance",
			Team: "engineering", Priority: domain.PriorityHigh, StartDate: d("2024-01-15"), EndDate: d("2024-03-30"),
			Assignees: []string{"JS", "MK"}, Quarter: domain.Q1, Position: 0},
		{Title: "Database Migration", Description: "Migrate legacy database to new infrastructure",
			Team: "engineering", Priority: domain.PriorityMedium, StartDate: d("2024-02-01"), EndDate: d("2024-03-15"),
			Assignees: []string{"AL"}, Quarter: domain.Q1, Position: 1},
		{Title: "Design System v3", Description: "Update design system with new components",
			Team: "design", Priority: domain.PriorityHigh, StartDate: d("2024-01-01"), EndDate: d("2024-03-31"),
			Assignees: []string{"EJ", "TC"}, Quarter: domain.Q1, Position: 0},
		{Title: "Mobile App Backend", Description: "Build backend services for mobile application",
			Team: "engineering", Priority: domain.PriorityHigh, StartDate: d("2024-04-01"), EndDate: d("2024-06-30"),
			Assignees: []string{"RH", "LM"}, Quarter: domain.Q2, Position: 0},
		{Title: "Mobile App UX", Description: "Design mobile application user experience",
			Team: "design", Priority: domain.PriorityMedium, StartDate: d("2024-04-15"), EndDate: d("2024-06-15"),
			Assignees: []string{"NP"}, Quarter: domain.Q2, Position: 0},
		{Title: "Market Research", Description: "Conduct comprehensive market analysis",
			Team: "product", Priority: domain.PriorityHigh, StartDate: d("2024-01-08"), EndDate: d("2024-02-28"),
			Assignees: []string{"SB"}, Quarter: domain.Q1, Position: 0},
	}
}

// Seed fills empty stores with the sample board. Each store is only seeded
// when it has no records, so restarting against a database is harmless.
// It reports how many teams and initiatives were inserted.
func Seed(ctx context.Context, initiatives InitiativeRepo, teams TeamRepo) (int, int, error) {
	var nTeams, nInitiatives int

	existingTeams, err := teams.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("repo.Seed: list teams: %w", err)
	}
	if len(existingTeams) == 0 {
		for _, t := range SeedTeams {
			if _, err := teams.Create(ctx, t); err != nil {
				return nTeams, 0, fmt.Errorf("repo.Seed: team %q: %w", t.ID, err)
			}
			nTeams++
		}
	}

	existing, err := initiatives.List(ctx)
	if err != nil {
		return nTeams, 0, fmt.Errorf("repo.Seed: list initiatives: %w", err)
	}
	if len(existing) == 0 {
		for _, in := range SeedInitiatives() {
			if _, err := initiatives.Create(ctx, in); err != nil {
				return nTeams, nInitiatives, fmt.Errorf("repo.Seed: initiative %q: %w", in.Title, err)
			}
			nInitiatives++
		}
	}

	return nTeams, nInitiatives, nil
}
