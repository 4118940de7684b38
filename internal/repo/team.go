package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/roadmap-planner/internal/domain"
)

const teamColumns = `id, name, color, description, created_at`

// pgTeamRepo is the Postgres implementation of TeamRepo.
type pgTeamRepo struct {
	db db
}

// NewTeamRepo constructs a TeamRepo backed by the provided db connection.
func NewTeamRepo(db db) TeamRepo {
	return &pgTeamRepo{db: db}
}

func (r *pgTeamRepo) List(ctx context.Context) ([]domain.Team, error) {
	const q = `SELECT ` + teamColumns + ` FROM teams ORDER BY name COLLATE "C", id COLLATE "C"`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.List: %w", err)
	}
	defer rows.Close()

	teams := []domain.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TeamRepo.List: scan: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.List: rows: %w", err)
	}
	return teams, nil
}

func (r *pgTeamRepo) GetByID(ctx context.Context, id string) (domain.Team, error) {
	const q = `SELECT ` + teamColumns + ` FROM teams WHERE id = @id`

	t, err := scanTeam(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.GetByID: %w", err)
	}
	return t, nil
}

// Create inserts a team. ON CONFLICT DO NOTHING returns no row when the id
// is taken, which is reported as domain.ErrConflict instead of overwriting.
func (r *pgTeamRepo) Create(ctx context.Context, t domain.Team) (domain.Team, error) {
	const q = `
		INSERT INTO teams (id, name, color, description)
		VALUES (@id, @name, @color, @description)
		ON CONFLICT (id) DO NOTHING
		RETURNING ` + teamColumns

	args := pgx.NamedArgs{
		"id":          t.ID,
		"name":        t.Name,
		"color":       t.Color,
		"description": t.Description,
	}

	created, err := scanTeam(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Team{}, fmt.Errorf("repo.TeamRepo.Create: team %q: %w", t.ID, domain.ErrConflict)
		}
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.Create: %w", err)
	}
	return created, nil
}

func (r *pgTeamRepo) Patch(ctx context.Context, id string, p domain.TeamPatch) (domain.Team, error) {
	const q = `
		UPDATE teams
		SET name        = COALESCE(@name, name),
		    color       = COALESCE(@color, color),
		    description = COALESCE(@description, description)
		WHERE id = @id
		RETURNING ` + teamColumns

	args := pgx.NamedArgs{
		"id":          id,
		"name":        nullable(p.Name),
		"color":       nullable(p.Color),
		"description": nullable(p.Description),
	}

	updated, err := scanTeam(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.Patch: %w", err)
	}
	return updated, nil
}

func (r *pgTeamRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM teams WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TeamRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TeamRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTeam maps a single database row into a domain.Team.
func scanTeam(s scanner) (domain.Team, error) {
	var (
		t         domain.Team
		createdAt time.Time
	)
	err := s.Scan(&t.ID, &t.Name, &t.Color, &t.Description, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Team{}, domain.ErrNotFound
		}
		return domain.Team{}, err
	}
	t.CreatedAt = createdAt.UTC()
	return t, nil
}
