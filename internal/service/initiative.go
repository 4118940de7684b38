// Package service contains the business logic for the roadmap planner.
// Services enforce business rules and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/roadmap-planner/internal/domain"
	"github.com/pkordes/roadmap-planner/internal/repo"
)

// InitiativeService implements business logic for Initiative operations.
type InitiativeService struct {
	repo repo.InitiativeRepo
}

// NewInitiativeService constructs an InitiativeService backed by the provided repo.
func NewInitiativeService(r repo.InitiativeRepo) *InitiativeService {
	return &InitiativeService{repo: r}
}

// List returns the initiatives matching f in listing order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *InitiativeService) List(ctx context.Context, f domain.InitiativeFilter) ([]domain.Initiative, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.InitiativeService.List: %w", err)
	}
	return f.Apply(list), nil
}

// GetByID returns domain.ErrNotFound if no initiative has that id.
func (s *InitiativeService) GetByID(ctx context.Context, id string) (domain.Initiative, error) {
	in, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Initiative{}, fmt.Errorf("service.InitiativeService.GetByID: %w", err)
	}
	return in, nil
}

// Create validates and persists a new initiative. Any ID or CreatedAt on the
// input is ignored; the store assigns both.
func (s *InitiativeService) Create(ctx context.Context, in domain.Initiative) (domain.Initiative, error) {
	if err := validateInitiative(in); err != nil {
		return domain.Initiative{}, err
	}
	if in.Assignees == nil {
		in.Assignees = []string{}
	}
	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return domain.Initiative{}, fmt.Errorf("service.InitiativeService.Create: %w", err)
	}
	return created, nil
}

// Patch validates the provided fields and merges them into the stored
// initiative. An empty patch returns the current record without writing.
func (s *InitiativeService) Patch(ctx context.Context, id string, p domain.InitiativePatch) (domain.Initiative, error) {
	if err := validateInitiativePatch(p); err != nil {
		return domain.Initiative{}, err
	}
	if p.IsEmpty() {
		return s.GetByID(ctx, id)
	}
	updated, err := s.repo.Patch(ctx, id, p)
	if err != nil {
		return domain.Initiative{}, fmt.Errorf("service.InitiativeService.Patch: %w", err)
	}
	return updated, nil
}

// Delete returns domain.ErrNotFound if no initiative has that id.
func (s *InitiativeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.InitiativeService.Delete: %w", err)
	}
	return nil
}

// fieldErrors accumulates field-level failures into a single ValidationError.
type fieldErrors []domain.FieldError

func (fe *fieldErrors) add(field, message string) {
	*fe = append(*fe, domain.FieldError{Field: field, Message: message})
}

func (fe fieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fe}
}

func requireText(fe *fieldErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		fe.add(field, field+" is required")
	}
}

func checkPriority(fe *fieldErrors, p domain.Priority) {
	if _, ok := domain.ParsePriority(string(p)); !ok {
		fe.add("priority", "priority must be one of high, medium, low")
	}
}

func checkPosition(fe *fieldErrors, pos int) {
	if pos < domain.MinPosition || pos > domain.MaxPosition {
		fe.add("position", fmt.Sprintf("position must be between %d and %d", domain.MinPosition, domain.MaxPosition))
	}
}

// checkDate rejects the zero time, which is what a missing or year-1 date
// decodes to.
func checkDate(fe *fieldErrors, field string, d time.Time) {
	if d.IsZero() {
		fe.add(field, field+" must be a calendar date after year 1")
	}
}

func checkQuarter(fe *fieldErrors, q domain.Quarter) {
	if _, ok := domain.ParseQuarter(string(q)); !ok {
		fe.add("quarter", "quarter must be one of Q1, Q2, Q3, Q4")
	}
}

// validateInitiative enforces the rules every stored initiative satisfies.
// StartDate after EndDate is tolerated; the board simply shows nothing for it.
func validateInitiative(in domain.Initiative) error {
	var fe fieldErrors
	requireText(&fe, "title", in.Title)
	requireText(&fe, "description", in.Description)
	requireText(&fe, "team", in.Team)
	checkPriority(&fe, in.Priority)
	checkDate(&fe, "startDate", in.StartDate)
	checkDate(&fe, "endDate", in.EndDate)
	checkQuarter(&fe, in.Quarter)
	checkPosition(&fe, in.Position)
	return fe.err()
}

// validateInitiativePatch applies the same rules to each provided field.
func validateInitiativePatch(p domain.InitiativePatch) error {
	var fe fieldErrors
	if p.Title != nil {
		requireText(&fe, "title", *p.Title)
	}
	if p.Description != nil {
		requireText(&fe, "description", *p.Description)
	}
	if p.Team != nil {
		requireText(&fe, "team", *p.Team)
	}
	if p.Priority != nil {
		checkPriority(&fe, *p.Priority)
	}
	if p.StartDate != nil {
		checkDate(&fe, "startDate", *p.StartDate)
	}
	if p.EndDate != nil {
		checkDate(&fe, "endDate", *p.EndDate)
	}
	if p.Quarter != nil {
		checkQuarter(&fe, *p.Quarter)
	}
	if p.Position != nil {
		checkPosition(&fe, *p.Position)
	}
	return fe.err()
}
