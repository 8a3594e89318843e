package reports

import "time"

// Los reportes son modelos de lectura: se serializan tal cual.

type AdoptionStats struct {
	TotalAdoptions int     `json:"total_adoptions"`
	TotalRevenue   float64 `json:"total_revenue"`
	AverageFee     float64 `json:"average_fee"`
	UniqueAdopters int     `json:"unique_adopters"`
}

type MonthlyAdoptions struct {
	Month   int     `json:"month"` // 1..12
	Count   int     `json:"adoption_count"`
	Revenue float64 `json:"monthly_revenue"`
}

type PendingApplication struct {
	ApplicationID   string    `json:"application_id"`
	AdopterID       string    `json:"adopter_id"`
	AdopterName     string    `json:"adopter_name"`
	AdopterEmail    string    `json:"adopter_email"`
	ApplicationDate time.Time `json:"application_date"`
	PreferredPetAge string    `json:"preferred_pet_age"`
	ExperienceLevel string    `json:"experience_level"`
	DaysPending     int       `json:"days_pending"`
}

type SpeciesFee struct {
	Species    string  `json:"species"`
	Adoptions  int     `json:"adoption_count"`
	AverageFee float64 `json:"average_fee"`
}

// ShelterOccupancy: Rate = occupied/capacity y Percentage = Rate*100,
// ambos redondeados a 2 decimales.
type ShelterOccupancy struct {
	ShelterID      string  `json:"shelter_id"`
	Name           string  `json:"name"`
	Capacity       int     `json:"capacity"`
	Occupied       int     `json:"current_occupancy"`
	AvailableSpace int     `json:"available_space"`
	Rate           float64 `json:"occupancy_rate"`
	Percentage     float64 `json:"occupancy_percentage"`
	AtCapacity     bool    `json:"at_capacity"`
}

type ShelterSummary struct {
	ShelterOccupancy
	City          string `json:"city"`
	AvailablePets int    `json:"available_pets"`
	StaffCount    int    `json:"staff_count"`
}

type StatusShare struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type PetStat struct {
	Status  string `json:"status"`
	Species string `json:"species"`
	Count   int    `json:"count"`
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

type ApplicationLine struct {
	ID              string    `json:"id"`
	ApplicationDate time.Time `json:"application_date"`
	Status          string    `json:"status"`
}

type AdoptionLine struct {
	ID           string    `json:"id"`
	PetID        string    `json:"pet_id"`
	PetName      string    `json:"pet_name"`
	Species      string    `json:"species"`
	AdopterID    string    `json:"adopter_id"`
	AdopterName  string    `json:"adopter_name"`
	AdoptionDate time.Time `json:"adoption_date"`
	Fee          float64   `json:"adoption_fee"`
	Status       string    `json:"status"`
}

type AdopterSummary struct {
	AdopterID          string            `json:"adopter_id"`
	Name               string            `json:"name"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	CompletedAdoptions int               `json:"completed_adoptions"`
	Applications       []ApplicationLine `json:"applications"`
	Adoptions          []AdoptionLine    `json:"adoptions"`
}

// Dashboard junta los agregados principales.
type Dashboard struct {
	Adoptions    AdoptionStats    `json:"adoptions"`
	Applications []StatusShare    `json:"applications"`
	Pets         []PetStat        `json:"pets"`
	Shelters     []ShelterSummary `json:"shelters"`
	Recent       []AdoptionLine   `json:"recent_adoptions"`
}
