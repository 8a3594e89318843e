package adoptions

import (
	"context"
	"time"
)

// Repository cubre lecturas y edición de detalles. Alta y cambios de status
// pasan por el workflow (transacción con la mascota).
type Repository interface {
	GetByID(ctx context.Context, id string) (Adoption, error)

	// List ordena por AdoptionDate descendente y aplica Limit si > 0.
	List(ctx context.Context, filter ListFilter) ([]Adoption, error)

	// UpdateDetails persiste fee y notes.
	UpdateDetails(ctx context.Context, a Adoption) error
}

// ListFilter: campos vacíos / nil no filtran. From/To son inclusivos.
type ListFilter struct {
	AdopterID string
	PetID     string
	Status    Status
	From      *time.Time
	To        *time.Time
	MinFee    *float64
	MaxFee    *float64
	Limit     int
}

func (f ListFilter) Matches(a Adoption) bool {
	if f.AdopterID != "" && a.AdopterID != f.AdopterID {
		return false
	}
	if f.PetID != "" && a.PetID != f.PetID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.From != nil && a.AdoptionDate.Before(*f.From) {
		return false
	}
	if f.To != nil && a.AdoptionDate.After(*f.To) {
		return false
	}
	if f.MinFee != nil && a.Fee < *f.MinFee {
		return false
	}
	if f.MaxFee != nil && a.Fee > *f.MaxFee {
		return false
	}
	return true
}
