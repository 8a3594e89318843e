package adoptions

import "time"

// Status de una adopción.
// @Enum Completed, Trial Period, Returned, Cancelled
type Status string

const (
	StatusCompleted   Status = "Completed"
	StatusTrialPeriod Status = "Trial Period"
	StatusReturned    Status = "Returned"
	StatusCancelled   Status = "Cancelled"
)

// IsActive: una adopción activa mantiene a la mascota en Adopted.
// Una mascota tiene como mucho una adopción activa.
func (s Status) IsActive() bool {
	return s == StatusCompleted || s == StatusTrialPeriod
}

// ActiveStatuses en orden estable (lo usan los adapters SQL).
var ActiveStatuses = []Status{StatusCompleted, StatusTrialPeriod}

type Adoption struct {
	ID        string
	AdopterID string
	PetID     string

	AdoptionDate time.Time
	Fee          float64 // [0, 50000]
	Notes        string
	Status       Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProcessInput son los datos para concretar una adopción.
type ProcessInput struct {
	AdopterID    string
	PetID        string
	Fee          float64
	Notes        string
	Status       Status     // opcional: Completed (default) o Trial Period
	AdoptionDate *time.Time // default: ahora
}
