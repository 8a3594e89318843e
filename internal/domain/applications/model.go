package applications

import "time"

// Status de una solicitud de adopción.
// @Enum Pending, Approved, Rejected, Under Review
type Status string

const (
	StatusPending     Status = "Pending"
	StatusApproved    Status = "Approved"
	StatusRejected    Status = "Rejected"
	StatusUnderReview Status = "Under Review"
)

// Application es la solicitud de un adoptante. Una solicitud Approved
// habilita al adoptante a concretar adopciones.
type Application struct {
	ID        string
	AdopterID string

	ApplicationDate time.Time
	Status          Status

	PreferredPetAge string // Puppy/Kitten, Young, Adult, Senior, Any
	ExperienceLevel string // First-time, Beginner, Intermediate, Experienced

	CreatedAt time.Time
	UpdatedAt time.Time
}
