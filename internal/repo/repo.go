// Package repo contains the persistence layer for the roadmap planner.
// Each entity has an interface plus two implementations: an in-memory store
// (the default, process-lifetime only) and a Postgres store used when a
// database URL is configured. No business logic lives here and nothing is
// validated: the store trusts its caller.
package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/roadmap-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// InitiativeRepo defines the persistence operations for Initiatives.
type InitiativeRepo interface {
	// List returns every initiative ordered by quarter, team id, then position.
	List(ctx context.Context) ([]domain.Initiative, error)

	// GetByID returns domain.ErrNotFound if no initiative has that id.
	GetByID(ctx context.Context, id string) (domain.Initiative, error)

	// Create assigns a fresh id and createdAt and stores the initiative as given.
	Create(ctx context.Context, in domain.Initiative) (domain.Initiative, error)

	// Patch merges the non-nil fields of p into the stored initiative and
	// returns the result. Returns domain.ErrNotFound if the id is absent.
	Patch(ctx context.Context, id string, p domain.InitiativePatch) (domain.Initiative, error)

	// Delete returns domain.ErrNotFound if the id is absent.
	Delete(ctx context.Context, id string) error
}

// TeamRepo defines the persistence operations for Teams.
type TeamRepo interface {
	// List returns every team ordered by name.
	List(ctx context.Context) ([]domain.Team, error)

	// GetByID returns domain.ErrNotFound if no team has that id.
	GetByID(ctx context.Context, id string) (domain.Team, error)

	// Create stores a team under t.ID and stamps createdAt.
	// Returns domain.ErrConflict if the id is already taken.
	Create(ctx context.Context, t domain.Team) (domain.Team, error)

	// Patch merges the non-nil fields of p. Returns domain.ErrNotFound if absent.
	Patch(ctx context.Context, id string, p domain.TeamPatch) (domain.Team, error)

	// Delete removes the team only. Initiatives referencing it are left alone.
	// Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}
