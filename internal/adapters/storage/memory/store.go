// Package memory implementa todos los repositorios y el workflow.Store en
// memoria. Un único RWMutex protege todas las entidades; WithinTx toma el
// lock de escritura y deshace sus cambios si fn falla.
package memory

import (
	"context"
	"sort"
	"sync"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/applications"
	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/domain/shelters"
	"pet-adoption-center/internal/domain/workflow"
)

type Store struct {
	mu sync.RWMutex

	shelters     map[string]shelters.Shelter
	staff        map[string]shelters.Staff
	pets         map[string]pets.Pet
	adopters     map[string]adopters.Adopter
	applications map[string]applications.Application
	adoptions    map[string]adoptions.Adoption
}

func NewStore() *Store {
	return &Store{
		shelters:     make(map[string]shelters.Shelter),
		staff:        make(map[string]shelters.Staff),
		pets:         make(map[string]pets.Pet),
		adopters:     make(map[string]adopters.Adopter),
		applications: make(map[string]applications.Application),
		adoptions:    make(map[string]adoptions.Adoption),
	}
}

// WithinTx serializa las transacciones del workflow.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx workflow.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{s: s}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// put guarda v en m y devuelve la operación inversa.
func put[T any](m map[string]T, id string, v T) func() {
	prev, existed := m[id]
	m[id] = v
	return func() {
		if existed {
			m[id] = prev
		} else {
			delete(m, id)
		}
	}
}

// remove borra id de m y devuelve la operación inversa.
func remove[T any](m map[string]T, id string) func() {
	prev, existed := m[id]
	delete(m, id)
	return func() {
		if existed {
			m[id] = prev
		}
	}
}

// collect filtra y ordena; no toma el lock.
func collect[T any](m map[string]T, keep func(T) bool, less func(a, b T) bool) []T {
	out := make([]T, 0)
	for _, v := range m {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
