package memory

import (
	"context"
	"errors"
	"strings"

	"pet-adoption-center/internal/domain/shelters"
	"pet-adoption-center/internal/ports/storage"
)

type shelterRepo struct {
	s *Store
}

func NewShelterRepo(s *Store) shelters.Repository {
	return &shelterRepo{s: s}
}

func (r *shelterRepo) Create(ctx context.Context, sh shelters.Shelter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(sh.ID) == "" {
		return errors.New("shelter id required")
	}
	if _, exists := r.s.shelters[sh.ID]; exists {
		return storage.ErrConflict
	}
	r.s.shelters[sh.ID] = sh
	return nil
}

func (r *shelterRepo) Update(ctx context.Context, sh shelters.Shelter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, exists := r.s.shelters[sh.ID]
	if !exists {
		return storage.ErrNotFound
	}
	sh.CreatedAt = prev.CreatedAt
	r.s.shelters[sh.ID] = sh
	return nil
}

func (r *shelterRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sh, ok := r.s.shelters[id]
	if !ok {
		return shelters.Shelter{}, storage.ErrNotFound
	}
	return sh, nil
}

func (r *shelterRepo) List(ctx context.Context, filter shelters.ListFilter) ([]shelters.Shelter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return collect(r.s.shelters,
		func(sh shelters.Shelter) bool {
			return filter.City == "" || strings.EqualFold(sh.City, filter.City)
		},
		func(a, b shelters.Shelter) bool { return a.Name < b.Name },
	), nil
}

func (r *shelterRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.shelters[id]; !ok {
		return storage.ErrNotFound
	}
	if r.s.countPets(id) > 0 {
		return storage.ErrConflict
	}
	for _, st := range r.s.staff {
		if st.ShelterID == id {
			return storage.ErrConflict
		}
	}
	delete(r.s.shelters, id)
	return nil
}

func (r *shelterRepo) CountPets(ctx context.Context, shelterID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.countPets(shelterID), nil
}

type staffRepo struct {
	s *Store
}

func NewStaffRepo(s *Store) shelters.StaffRepository {
	return &staffRepo{s: s}
}

func (r *staffRepo) Create(ctx context.Context, st shelters.Staff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(st.ID) == "" {
		return errors.New("staff id required")
	}
	if _, ok := r.s.shelters[st.ShelterID]; !ok {
		return storage.ErrNotFound
	}
	if _, exists := r.s.staff[st.ID]; exists || r.s.staffEmailTaken(st.Email, st.ID) {
		return storage.ErrConflict
	}
	r.s.staff[st.ID] = st
	return nil
}

func (r *staffRepo) Update(ctx context.Context, st shelters.Staff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.staff[st.ID]; !exists {
		return storage.ErrNotFound
	}
	if _, ok := r.s.shelters[st.ShelterID]; !ok {
		return storage.ErrNotFound
	}
	if r.s.staffEmailTaken(st.Email, st.ID) {
		return storage.ErrConflict
	}
	r.s.staff[st.ID] = st
	return nil
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (shelters.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st, ok := r.s.staff[id]
	if !ok {
		return shelters.Staff{}, storage.ErrNotFound
	}
	return st, nil
}

func (r *staffRepo) GetByEmail(ctx context.Context, email string) (shelters.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, st := range r.s.staff {
		if st.Email == email {
			return st, nil
		}
	}
	return shelters.Staff{}, storage.ErrNotFound
}

func (r *staffRepo) List(ctx context.Context, filter shelters.StaffFilter) ([]shelters.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return collect(r.s.staff,
		func(st shelters.Staff) bool {
			if filter.ShelterID != "" && st.ShelterID != filter.ShelterID {
				return false
			}
			return filter.Role == "" || strings.EqualFold(st.Role, filter.Role)
		},
		func(a, b shelters.Staff) bool {
			if a.LastName != b.LastName {
				return a.LastName < b.LastName
			}
			return a.FirstName < b.FirstName
		},
	), nil
}

func (r *staffRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.staff[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.staff, id)
	return nil
}

func (s *Store) staffEmailTaken(email, selfID string) bool {
	for _, st := range s.staff {
		if st.ID != selfID && st.Email == email {
			return true
		}
	}
	return false
}
