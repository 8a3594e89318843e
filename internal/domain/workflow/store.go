package workflow

import (
	"context"
	"time"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/applications"
	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/domain/shelters"
)

// Store es el colaborador de storage del engine. WithinTx ejecuta fn en una
// única transacción: si fn devuelve error no queda ninguna escritura aplicada.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx son las lecturas y escrituras que el engine hace dentro de una transacción.
// Los Find* devuelven storage.ErrNotFound si no hay fila.
//
// FindPetByID y FindShelterByID bloquean la fila hasta el fin de la
// transacción (SELECT ... FOR UPDATE o equivalente); así se serializan las
// operaciones concurrentes sobre la misma mascota o refugio.
type Tx interface {
	FindPetByID(ctx context.Context, id string) (pets.Pet, error)
	UpdatePetStatus(ctx context.Context, id string, status pets.Status, at time.Time) error
	UpdatePetShelter(ctx context.Context, id, shelterID string, at time.Time) error
	DeletePetIfUnreferenced(ctx context.Context, id string) error // storage.ErrConflict si tiene adopciones
	DeleteInactiveAdoptionsForPet(ctx context.Context, petID string) error

	FindShelterByID(ctx context.Context, id string) (shelters.Shelter, error)
	CountPetsInShelter(ctx context.Context, shelterID string) (int, error)

	FindAdopterByID(ctx context.Context, id string) (adopters.Adopter, error)
	DeleteAdopterIfUnreferenced(ctx context.Context, id string) error // storage.ErrConflict si tiene solicitudes/adopciones
	ListAdoptionsForAdopter(ctx context.Context, adopterID string) ([]adoptions.Adoption, error)
	DeleteApplicationsForAdopter(ctx context.Context, adopterID string) error

	FindApplicationByID(ctx context.Context, id string) (applications.Application, error)
	FindApprovedApplicationForAdopter(ctx context.Context, adopterID string) (applications.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status applications.Status, at time.Time) error

	FindAdoptionByID(ctx context.Context, id string) (adoptions.Adoption, error)
	FindActiveAdoptionForPet(ctx context.Context, petID string) (adoptions.Adoption, error)
	CountCompletedAdoptionsForAdopter(ctx context.Context, adopterID string) (int, error)

	// InsertAdoption devuelve storage.ErrConflict si la mascota ya tiene una adopción activa.
	InsertAdoption(ctx context.Context, a adoptions.Adoption) error
	UpdateAdoptionStatus(ctx context.Context, id string, status adoptions.Status, at time.Time) error
	DeleteAdoption(ctx context.Context, id string) error
}

// Recorder recibe el resultado de cada operación (ok o el code del error).
type Recorder interface {
	ObserveWorkflow(operation, result string)
}
