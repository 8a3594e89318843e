package memory

import (
	"context"
	"time"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/applications"
	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/domain/shelters"
	"pet-adoption-center/internal/ports/storage"
)

// memTx corre con s.mu tomado en escritura. Cada escritura agrega su inversa
// a undo; rollback las aplica en orden inverso.
type memTx struct {
	s    *Store
	undo []func()
}

func (t *memTx) record(fn func()) {
	t.undo = append(t.undo, fn)
}

func (t *memTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *memTx) FindPetByID(ctx context.Context, id string) (pets.Pet, error) {
	p, ok := t.s.pets[id]
	if !ok {
		return pets.Pet{}, storage.ErrNotFound
	}
	return p, nil
}

func (t *memTx) UpdatePetStatus(ctx context.Context, id string, status pets.Status, at time.Time) error {
	p, ok := t.s.pets[id]
	if !ok {
		return storage.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = at
	t.record(put(t.s.pets, id, p))
	return nil
}

func (t *memTx) UpdatePetShelter(ctx context.Context, id, shelterID string, at time.Time) error {
	p, ok := t.s.pets[id]
	if !ok {
		return storage.ErrNotFound
	}
	if _, ok := t.s.shelters[shelterID]; !ok {
		return storage.ErrNotFound
	}
	p.ShelterID = shelterID
	p.UpdatedAt = at
	t.record(put(t.s.pets, id, p))
	return nil
}

func (t *memTx) DeletePetIfUnreferenced(ctx context.Context, id string) error {
	if _, ok := t.s.pets[id]; !ok {
		return storage.ErrNotFound
	}
	for _, a := range t.s.adoptions {
		if a.PetID == id {
			return storage.ErrConflict
		}
	}
	t.record(remove(t.s.pets, id))
	return nil
}

func (t *memTx) DeleteInactiveAdoptionsForPet(ctx context.Context, petID string) error {
	for id, a := range t.s.adoptions {
		if a.PetID == petID && !a.Status.IsActive() {
			t.record(remove(t.s.adoptions, id))
		}
	}
	return nil
}

func (t *memTx) FindShelterByID(ctx context.Context, id string) (shelters.Shelter, error) {
	sh, ok := t.s.shelters[id]
	if !ok {
		return shelters.Shelter{}, storage.ErrNotFound
	}
	return sh, nil
}

func (t *memTx) CountPetsInShelter(ctx context.Context, shelterID string) (int, error) {
	return t.s.countPets(shelterID), nil
}

func (t *memTx) FindAdopterByID(ctx context.Context, id string) (adopters.Adopter, error) {
	a, ok := t.s.adopters[id]
	if !ok {
		return adopters.Adopter{}, storage.ErrNotFound
	}
	return a, nil
}

func (t *memTx) DeleteAdopterIfUnreferenced(ctx context.Context, id string) error {
	if _, ok := t.s.adopters[id]; !ok {
		return storage.ErrNotFound
	}
	for _, app := range t.s.applications {
		if app.AdopterID == id {
			return storage.ErrConflict
		}
	}
	for _, a := range t.s.adoptions {
		if a.AdopterID == id {
			return storage.ErrConflict
		}
	}
	t.record(remove(t.s.adopters, id))
	return nil
}

func (t *memTx) ListAdoptionsForAdopter(ctx context.Context, adopterID string) ([]adoptions.Adoption, error) {
	return collect(t.s.adoptions,
		func(a adoptions.Adoption) bool { return a.AdopterID == adopterID },
		func(a, b adoptions.Adoption) bool { return a.ID < b.ID },
	), nil
}

func (t *memTx) DeleteApplicationsForAdopter(ctx context.Context, adopterID string) error {
	for id, app := range t.s.applications {
		if app.AdopterID == adopterID {
			t.record(remove(t.s.applications, id))
		}
	}
	return nil
}

func (t *memTx) FindApplicationByID(ctx context.Context, id string) (applications.Application, error) {
	app, ok := t.s.applications[id]
	if !ok {
		return applications.Application{}, storage.ErrNotFound
	}
	return app, nil
}

// FindApprovedApplicationForAdopter devuelve la aprobada más reciente.
func (t *memTx) FindApprovedApplicationForAdopter(ctx context.Context, adopterID string) (applications.Application, error) {
	var (
		winner applications.Application
		found  bool
	)
	for _, app := range t.s.applications {
		if app.AdopterID != adopterID || app.Status != applications.StatusApproved {
			continue
		}
		if !found || app.ApplicationDate.After(winner.ApplicationDate) {
			winner = app
			found = true
		}
	}
	if !found {
		return applications.Application{}, storage.ErrNotFound
	}
	return winner, nil
}

func (t *memTx) UpdateApplicationStatus(ctx context.Context, id string, status applications.Status, at time.Time) error {
	app, ok := t.s.applications[id]
	if !ok {
		return storage.ErrNotFound
	}
	app.Status = status
	app.UpdatedAt = at
	t.record(put(t.s.applications, id, app))
	return nil
}

func (t *memTx) FindAdoptionByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	a, ok := t.s.adoptions[id]
	if !ok {
		return adoptions.Adoption{}, storage.ErrNotFound
	}
	return a, nil
}

func (t *memTx) FindActiveAdoptionForPet(ctx context.Context, petID string) (adoptions.Adoption, error) {
	a, ok := t.s.activeAdoptionFor(petID, "")
	if !ok {
		return adoptions.Adoption{}, storage.ErrNotFound
	}
	return a, nil
}

func (t *memTx) CountCompletedAdoptionsForAdopter(ctx context.Context, adopterID string) (int, error) {
	n := 0
	for _, a := range t.s.adoptions {
		if a.AdopterID == adopterID && a.Status == adoptions.StatusCompleted {
			n++
		}
	}
	return n, nil
}

func (t *memTx) InsertAdoption(ctx context.Context, a adoptions.Adoption) error {
	if _, ok := t.s.adoptions[a.ID]; ok {
		return storage.ErrConflict
	}
	if _, ok := t.s.pets[a.PetID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := t.s.adopters[a.AdopterID]; !ok {
		return storage.ErrNotFound
	}
	if a.Status.IsActive() {
		if _, ok := t.s.activeAdoptionFor(a.PetID, a.ID); ok {
			return storage.ErrConflict
		}
	}
	t.record(put(t.s.adoptions, a.ID, a))
	return nil
}

func (t *memTx) UpdateAdoptionStatus(ctx context.Context, id string, status adoptions.Status, at time.Time) error {
	a, ok := t.s.adoptions[id]
	if !ok {
		return storage.ErrNotFound
	}
	if status.IsActive() {
		if _, ok := t.s.activeAdoptionFor(a.PetID, a.ID); ok {
			return storage.ErrConflict
		}
	}
	a.Status = status
	a.UpdatedAt = at
	t.record(put(t.s.adoptions, id, a))
	return nil
}

func (t *memTx) DeleteAdoption(ctx context.Context, id string) error {
	if _, ok := t.s.adoptions[id]; !ok {
		return storage.ErrNotFound
	}
	t.record(remove(t.s.adoptions, id))
	return nil
}

// Helpers sin lock: el caller ya tiene s.mu.

func (s *Store) countPets(shelterID string) int {
	n := 0
	for _, p := range s.pets {
		if p.ShelterID == shelterID {
			n++
		}
	}
	return n
}

// activeAdoptionFor ignora exceptID (la adopción que se está escribiendo).
func (s *Store) activeAdoptionFor(petID, exceptID string) (adoptions.Adoption, bool) {
	for _, a := range s.adoptions {
		if a.PetID == petID && a.ID != exceptID && a.Status.IsActive() {
			return a, true
		}
	}
	return adoptions.Adoption{}, false
}
