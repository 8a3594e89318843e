package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error

	// Update persiste solo el perfil; status y shelter_id los cambia el workflow.
	Update(ctx context.Context, p Pet) error

	GetByID(ctx context.Context, id string) (Pet, error)
	Search(ctx context.Context, filter SearchFilter) ([]Pet, error)
}

// SearchFilter: campos vacíos / nil no filtran.
type SearchFilter struct {
	Species   Species
	Status    Status
	Size      Size
	Gender    Gender
	ShelterID string
	MinAge    *int
	MaxAge    *int
}

// Matches aplica el filtro en memoria (lo usan el adapter memory y los tests).
func (f SearchFilter) Matches(p Pet) bool {
	if f.Species != "" && p.Species != f.Species {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Size != "" && p.Size != f.Size {
		return false
	}
	if f.Gender != "" && p.Gender != f.Gender {
		return false
	}
	if f.ShelterID != "" && p.ShelterID != f.ShelterID {
		return false
	}
	if f.MinAge != nil && p.Age < *f.MinAge {
		return false
	}
	if f.MaxAge != nil && p.Age > *f.MaxAge {
		return false
	}
	return true
}
