package applications

import "context"

type Repository interface {
	Create(ctx context.Context, a Application) error

	// Update persiste preferencias; el status lo cambia el workflow.
	Update(ctx context.Context, a Application) error

	GetByID(ctx context.Context, id string) (Application, error)

	// List ordena por ApplicationDate descendente.
	List(ctx context.Context, filter ListFilter) ([]Application, error)

	Delete(ctx context.Context, id string) error
}

type ListFilter struct {
	AdopterID string
	Status    Status
}

func (f ListFilter) Matches(a Application) bool {
	if f.AdopterID != "" && a.AdopterID != f.AdopterID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}
