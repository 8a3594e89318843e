package shelters

import "context"

type Repository interface {
	Create(ctx context.Context, s Shelter) error
	Update(ctx context.Context, s Shelter) error
	GetByID(ctx context.Context, id string) (Shelter, error)
	List(ctx context.Context, filter ListFilter) ([]Shelter, error)

	// Delete devuelve storage.ErrConflict si hay mascotas o staff referenciando el refugio.
	Delete(ctx context.Context, id string) error

	CountPets(ctx context.Context, shelterID string) (int, error)
}

type StaffRepository interface {
	Create(ctx context.Context, s Staff) error
	Update(ctx context.Context, s Staff) error
	GetByID(ctx context.Context, id string) (Staff, error)
	GetByEmail(ctx context.Context, email string) (Staff, error)
	List(ctx context.Context, filter StaffFilter) ([]Staff, error)
	Delete(ctx context.Context, id string) error
}

type ListFilter struct {
	City string
}

type StaffFilter struct {
	ShelterID string
	Role      string
}
