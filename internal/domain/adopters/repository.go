package adopters

import "context"

// Repository no expone Delete: el borrado es una operación del workflow
// (se bloquea si hay adopciones completadas).
type Repository interface {
	Create(ctx context.Context, a Adopter) error
	Update(ctx context.Context, a Adopter) error
	GetByID(ctx context.Context, id string) (Adopter, error)

	// GetByEmail / GetByPhone devuelven storage.ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (Adopter, error)
	GetByPhone(ctx context.Context, phone string) (Adopter, error)

	List(ctx context.Context, filter ListFilter) ([]Adopter, error)
}

type ListFilter struct {
	HousingType HousingType
	HasYard     *bool
}

func (f ListFilter) Matches(a Adopter) bool {
	if f.HousingType != "" && a.HousingType != f.HousingType {
		return false
	}
	if f.HasYard != nil && a.HasYard != *f.HasYard {
		return false
	}
	return true
}
