package shelters

import "time"

// Shelter es un refugio con capacidad fija de mascotas.
type Shelter struct {
	ID      string
	Name    string
	Address string
	City    string
	Phone   string

	Capacity int // > 0

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Staff es un empleado de un refugio.
type Staff struct {
	ID        string
	ShelterID string

	FirstName string
	LastName  string
	Email     string // único
	Role      string

	HireDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Occupancy resume la ocupación de un refugio.
type Occupancy struct {
	ShelterID string
	Occupied  int
	Capacity  int
}
