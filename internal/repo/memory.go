package repo

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/roadmap-planner/internal/domain"
)

// memInitiativeRepo keeps initiatives in a map for the lifetime of the process.
// Every read-modify-write runs under mu, so concurrent patches to the same id
// cannot lose updates. Values handed out are copies.
type memInitiativeRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Initiative
	now  func() time.Time
}

// NewMemoryInitiativeRepo constructs an empty in-memory InitiativeRepo.
func NewMemoryInitiativeRepo() InitiativeRepo {
	return &memInitiativeRepo{byID: map[string]domain.Initiative{}, now: time.Now}
}

func (r *memInitiativeRepo) List(_ context.Context) ([]domain.Initiative, error) {
	r.mu.RLock()
	out := make([]domain.Initiative, 0, len(r.byID))
	for _, in := range r.byID {
		out = append(out, cloneInitiative(in))
	}
	r.mu.RUnlock()

	slices.SortFunc(out, domain.CompareInitiatives)
	return out, nil
}

func (r *memInitiativeRepo) GetByID(_ context.Context, id string) (domain.Initiative, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	in, ok := r.byID[id]
	if !ok {
		return domain.Initiative{}, fmt.Errorf("repo.InitiativeRepo.GetByID: %w", domain.ErrNotFound)
	}
	return cloneInitiative(in), nil
}

func (r *memInitiativeRepo) Create(_ context.Context, in domain.Initiative) (domain.Initiative, error) {
	in = cloneInitiative(in)
	in.ID = uuid.NewString()
	in.CreatedAt = r.now().UTC()

	r.mu.Lock()
	r.byID[in.ID] = in
	r.mu.Unlock()

	return cloneInitiative(in), nil
}

func (r *memInitiativeRepo) Patch(_ context.Context, id string, p domain.InitiativePatch) (domain.Initiative, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, ok := r.byID[id]
	if !ok {
		return domain.Initiative{}, fmt.Errorf("repo.InitiativeRepo.Patch: %w", domain.ErrNotFound)
	}
	updated := p.Apply(in)
	r.byID[id] = updated
	return cloneInitiative(updated), nil
}

func (r *memInitiativeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("repo.InitiativeRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.byID, id)
	return nil
}

func cloneInitiative(in domain.Initiative) domain.Initiative {
	in.Assignees = slices.Clone(in.Assignees)
	if in.Assignees == nil {
		in.Assignees = []string{}
	}
	return in
}

// memTeamRepo is the in-memory TeamRepo. See memInitiativeRepo for the
// locking rules.
type memTeamRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Team
	now  func() time.Time
}

// NewMemoryTeamRepo constructs an empty in-memory TeamRepo.
func NewMemoryTeamRepo() TeamRepo {
	return &memTeamRepo{byID: map[string]domain.Team{}, now: time.Now}
}

func (r *memTeamRepo) List(_ context.Context) ([]domain.Team, error) {
	r.mu.RLock()
	out := make([]domain.Team, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, domain.CompareTeams)
	return out, nil
}

func (r *memTeamRepo) GetByID(_ context.Context, id string) (domain.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.GetByID: %w", domain.ErrNotFound)
	}
	return t, nil
}

func (r *memTeamRepo) Create(_ context.Context, t domain.Team) (domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; exists {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.Create: team %q: %w", t.ID, domain.ErrConflict)
	}
	t.CreatedAt = r.now().UTC()
	r.byID[t.ID] = t
	return t, nil
}

func (r *memTeamRepo) Patch(_ context.Context, id string, p domain.TeamPatch) (domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.Patch: %w", domain.ErrNotFound)
	}
	updated := p.Apply(t)
	r.byID[id] = updated
	return updated, nil
}

func (r *memTeamRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("repo.TeamRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.byID, id)
	return nil
}
