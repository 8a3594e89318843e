package memory

import (
	"context"

	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/ports/storage"
)

type adoptionRepo struct {
	s *Store
}

func NewAdoptionRepo(s *Store) adoptions.Repository {
	return &adoptionRepo{s: s}
}

func (r *adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.adoptions[id]
	if !ok {
		return adoptions.Adoption{}, storage.ErrNotFound
	}
	return a, nil
}

func (r *adoptionRepo) List(ctx context.Context, filter adoptions.ListFilter) ([]adoptions.Adoption, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := collect(r.s.adoptions, filter.Matches, func(a, b adoptions.Adoption) bool {
		if a.AdoptionDate.Equal(b.AdoptionDate) {
			return a.ID < b.ID
		}
		return a.AdoptionDate.After(b.AdoptionDate)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// UpdateDetails solo persiste fee y notes.
func (r *adoptionRepo) UpdateDetails(ctx context.Context, a adoptions.Adoption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, exists := r.s.adoptions[a.ID]
	if !exists {
		return storage.ErrNotFound
	}
	prev.Fee = a.Fee
	prev.Notes = a.Notes
	prev.UpdatedAt = a.UpdatedAt
	r.s.adoptions[a.ID] = prev
	return nil
}
