package adopters

import "time"

// HousingType describe la vivienda del adoptante.
// @Enum House, Apartment, Condo, Other
type HousingType string

const (
	HousingHouse     HousingType = "House"
	HousingApartment HousingType = "Apartment"
	HousingCondo     HousingType = "Condo"
	HousingOther     HousingType = "Other"
)

func (h HousingType) Valid() bool {
	switch h {
	case HousingHouse, HousingApartment, HousingCondo, HousingOther:
		return true
	}
	return false
}

// Adopter es una persona que puede solicitar y concretar adopciones.
// Email y Phone son únicos entre todos los adoptantes.
type Adopter struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string

	HousingType HousingType
	HasYard     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
