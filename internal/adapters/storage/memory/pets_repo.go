package memory

import (
	"context"
	"errors"
	"strings"

	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/ports/storage"
)

type petRepo struct {
	s *Store
}

func NewPetRepo(s *Store) pets.Repository {
	return &petRepo{s: s}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return storage.ErrConflict
	}
	if _, ok := r.s.shelters[p.ShelterID]; !ok {
		return storage.ErrNotFound
	}
	r.s.pets[p.ID] = p
	return nil
}

// Update no pisa status ni shelter_id: esos los escribe el workflow.
func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, exists := r.s.pets[p.ID]
	if !exists {
		return storage.ErrNotFound
	}
	p.Status = prev.Status
	p.ShelterID = prev.ShelterID
	p.CreatedAt = prev.CreatedAt
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, storage.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) Search(ctx context.Context, filter pets.SearchFilter) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// Orden estable por created_at asc
	return collect(r.s.pets, filter.Matches, func(a, b pets.Pet) bool {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}), nil
}
