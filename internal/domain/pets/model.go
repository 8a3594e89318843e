package pets

import "time"

// Species define las especies soportadas.
// @Enum Dog, Cat, Bird, Rabbit, Other
type Species string

const (
	SpeciesDog    Species = "Dog"
	SpeciesCat    Species = "Cat"
	SpeciesBird   Species = "Bird"
	SpeciesRabbit Species = "Rabbit"
	SpeciesOther  Species = "Other"
)

// AllSpecies en el orden en que se reportan.
var AllSpecies = []Species{SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesOther}

func (s Species) Valid() bool {
	for _, v := range AllSpecies {
		if v == s {
			return true
		}
	}
	return false
}

// Gender define el sexo de la mascota.
// @Enum Male, Female, Unknown
type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = "Unknown"
)

// Size define el tamaño de la mascota.
// @Enum Small, Medium, Large
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// Status es el estado de adopción. Lo administra el workflow de adopciones;
// el perfil de la mascota no lo edita directamente.
// @Enum Available, Pending, Adopted
type Status string

const (
	StatusAvailable Status = "Available"
	StatusPending   Status = "Pending"
	StatusAdopted   Status = "Adopted"
)

// Pet representa una mascota alojada en un refugio.
type Pet struct {
	ID        string
	ShelterID string

	Name    string
	Species Species
	Breed   string
	Age     int // años
	Gender  Gender
	Color   string
	Weight  float64 // kg
	Size    Size

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
