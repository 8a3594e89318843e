package memory

import (
	"context"
	"errors"
	"strings"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/ports/storage"
)

type adopterRepo struct {
	s *Store
}

func NewAdopterRepo(s *Store) adopters.Repository {
	return &adopterRepo{s: s}
}

func (r *adopterRepo) Create(ctx context.Context, a adopters.Adopter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("adopter id required")
	}
	if _, exists := r.s.adopters[a.ID]; exists || r.s.contactTaken(a) {
		return storage.ErrConflict
	}
	r.s.adopters[a.ID] = a
	return nil
}

func (r *adopterRepo) Update(ctx context.Context, a adopters.Adopter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, exists := r.s.adopters[a.ID]
	if !exists {
		return storage.ErrNotFound
	}
	if r.s.contactTaken(a) {
		return storage.ErrConflict
	}
	a.CreatedAt = prev.CreatedAt
	r.s.adopters[a.ID] = a
	return nil
}

func (r *adopterRepo) GetByID(ctx context.Context, id string) (adopters.Adopter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.adopters[id]
	if !ok {
		return adopters.Adopter{}, storage.ErrNotFound
	}
	return a, nil
}

func (r *adopterRepo) GetByEmail(ctx context.Context, email string) (adopters.Adopter, error) {
	return r.findBy(func(a adopters.Adopter) bool { return a.Email == email })
}

func (r *adopterRepo) GetByPhone(ctx context.Context, phone string) (adopters.Adopter, error) {
	return r.findBy(func(a adopters.Adopter) bool { return a.Phone == phone })
}

func (r *adopterRepo) findBy(match func(adopters.Adopter) bool) (adopters.Adopter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.adopters {
		if match(a) {
			return a, nil
		}
	}
	return adopters.Adopter{}, storage.ErrNotFound
}

func (r *adopterRepo) List(ctx context.Context, filter adopters.ListFilter) ([]adopters.Adopter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return collect(r.s.adopters, filter.Matches, func(a, b adopters.Adopter) bool {
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.ID < b.ID
	}), nil
}

// contactTaken: email o teléfono usados por otro adoptante.
func (s *Store) contactTaken(a adopters.Adopter) bool {
	for _, other := range s.adopters {
		if other.ID == a.ID {
			continue
		}
		if other.Email == a.Email || other.Phone == a.Phone {
			return true
		}
	}
	return false
}
