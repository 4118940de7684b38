package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/roadmap-planner/internal/domain"
)

const initiativeColumns = `id, title, description, team, priority, start_date, end_date, assignees, quarter, position, created_at`

// pgInitiativeRepo is the Postgres implementation of InitiativeRepo.
type pgInitiativeRepo struct {
	db db
}

// NewInitiativeRepo constructs an InitiativeRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewInitiativeRepo(db db) InitiativeRepo {
	return &pgInitiativeRepo{db: db}
}

// List returns all initiatives in listing order. COLLATE "C" keeps team
// ordering byte-wise so it matches the in-memory store.
func (r *pgInitiativeRepo) List(ctx context.Context) ([]domain.Initiative, error) {
	const q = `
		SELECT ` + initiativeColumns + `
		FROM initiatives
		ORDER BY quarter COLLATE "C", team COLLATE "C", position, created_at, id COLLATE "C"`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.InitiativeRepo.List: %w", err)
	}
	defer rows.Close()

	out := []domain.Initiative{}
	for rows.Next() {
		in, err := scanInitiative(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.InitiativeRepo.List: scan: %w", err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.InitiativeRepo.List: rows: %w", err)
	}
	return out, nil
}

func (r *pgInitiativeRepo) GetByID(ctx context.Context, id string) (domain.Initiative, error) {
	const q = `SELECT ` + initiativeColumns + ` FROM initiatives WHERE id = @id`

	in, err := scanInitiative(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Initiative{}, fmt.Errorf("repo.InitiativeRepo.GetByID: %w", err)
	}
	return in, nil
}

// Create inserts a new row. The id is generated here rather than by the
// database so both store implementations hand out the same kind of id.
func (r *pgInitiativeRepo) Create(ctx context.Context, in domain.Initiative) (domain.Initiative, error) {
	const q = `
		INSERT INTO initiatives (id, title, description, team, priority, start_date, end_date, assignees, quarter, position)
		VALUES (@id, @title, @description, @team, @priority, @start_date, @end_date, @assignees, @quarter, @position)
		RETURNING ` + initiativeColumns

	assignees := in.Assignees
	if assignees == nil {
		assignees = []string{}
	}
	args := pgx.NamedArgs{
		"id":          uuid.NewString(),
		"title":       in.Title,
		"description": in.Description,
		"team":        in.Team,
		"priority":    string(in.Priority),
		"start_date":  in.StartDate,
		"end_date":    in.EndDate,
		"assignees":   assignees,
		"quarter":     string(in.Quarter),
		"position":    in.Position,
	}

	created, err := scanInitiative(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Initiative{}, fmt.Errorf("repo.InitiativeRepo.Create: %w", err)
	}
	return created, nil
}

// Patch updates only the columns whose argument is non-NULL. The whole merge
// happens in one statement so concurrent patches cannot interleave.
func (r *pgInitiativeRepo) Patch(ctx context.Context, id string, p domain.InitiativePatch) (domain.Initiative, error) {
	const q = `
		UPDATE initiatives
		SET title       = COALESCE(@title, title),
		    description = COALESCE(@description, description),
		    team        = COALESCE(@team, team),
		    priority    = COALESCE(@priority, priority),
		    start_date  = COALESCE(@start_date::date, start_date),
		    end_date    = COALESCE(@end_date::date, end_date),
		    assignees   = COALESCE(@assignees::text[], assignees),
		    quarter     = COALESCE(@quarter, quarter),
		    position    = COALESCE(@position::integer, position)
		WHERE id = @id
		RETURNING ` + initiativeColumns

	args := pgx.NamedArgs{
		"id":          id,
		"title":       nullable(p.Title),
		"description": nullable(p.Description),
		"team":        nullable(p.Team),
		"priority":    nullableString(p.Priority),
		"start_date":  nullable(p.StartDate),
		"end_date":    nullable(p.EndDate),
		"assignees":   nullable(p.Assignees),
		"quarter":     nullableString(p.Quarter),
		"position":    nullable(p.Position),
	}

	updated, err := scanInitiative(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Initiative{}, fmt.Errorf("repo.InitiativeRepo.Patch: %w", err)
	}
	return updated, nil
}

func (r *pgInitiativeRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM initiatives WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.InitiativeRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.InitiativeRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanInitiative maps a single database row into a domain.Initiative.
func scanInitiative(s scanner) (domain.Initiative, error) {
	var (
		in                 domain.Initiative
		priority, quarter  string
		startDate, endDate pgtype.Date
		createdAt          time.Time
	)

	err := s.Scan(&in.ID, &in.Title, &in.Description, &in.Team, &priority,
		&startDate, &endDate, &in.Assignees, &quarter, &in.Position, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Initiative{}, domain.ErrNotFound
		}
		return domain.Initiative{}, err
	}

	in.Priority = domain.Priority(priority)
	in.Quarter = domain.Quarter(quarter)
	in.StartDate = startDate.Time
	in.EndDate = endDate.Time
	in.CreatedAt = createdAt.UTC()
	if in.Assignees == nil {
		in.Assignees = []string{}
	}
	return in, nil
}

// nullable turns a nil pointer into an untyped SQL NULL and dereferences
// anything else, so COALESCE can fall back to the current column value.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// nullableString is nullable for string-kinded enums, which are sent as plain text.
func nullableString[T ~string](p *T) any {
	if p == nil {
		return nil
	}
	return string(*p)
}
