package memory

import (
	"context"
	"errors"
	"strings"

	"pet-adoption-center/internal/domain/applications"
	"pet-adoption-center/internal/ports/storage"
)

type applicationRepo struct {
	s *Store
}

func NewApplicationRepo(s *Store) applications.Repository {
	return &applicationRepo{s: s}
}

func (r *applicationRepo) Create(ctx context.Context, a applications.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	if _, exists := r.s.applications[a.ID]; exists {
		return storage.ErrConflict
	}
	if _, ok := r.s.adopters[a.AdopterID]; !ok {
		return storage.ErrNotFound
	}
	r.s.applications[a.ID] = a
	return nil
}

// Update solo persiste preferencias; status lo escribe el workflow.
func (r *applicationRepo) Update(ctx context.Context, a applications.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, exists := r.s.applications[a.ID]
	if !exists {
		return storage.ErrNotFound
	}
	prev.PreferredPetAge = a.PreferredPetAge
	prev.ExperienceLevel = a.ExperienceLevel
	prev.UpdatedAt = a.UpdatedAt
	r.s.applications[a.ID] = prev
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.applications[id]
	if !ok {
		return applications.Application{}, storage.ErrNotFound
	}
	return a, nil
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.applications[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.applications, id)
	return nil
}

func (r *applicationRepo) List(ctx context.Context, filter applications.ListFilter) ([]applications.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return collect(r.s.applications, filter.Matches, func(a, b applications.Application) bool {
		if a.ApplicationDate.Equal(b.ApplicationDate) {
			return a.ID < b.ID
		}
		return a.ApplicationDate.After(b.ApplicationDate)
	}), nil
}
