package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/applications"
	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/domain/shelters"
	"pet-adoption-center/internal/domain/workflow"
	"pet-adoption-center/internal/ports/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

func seed(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, NewShelterRepo(s).Create(ctx, shelters.Shelter{ID: "S1", Name: "Norte", Capacity: 2}))
	require.NoError(t, NewPetRepo(s).Create(ctx, pets.Pet{ID: "P1", ShelterID: "S1", Name: "Luna", Status: pets.StatusAvailable, CreatedAt: t0}))
	require.NoError(t, NewAdopterRepo(s).Create(ctx, adopters.Adopter{ID: "A1", Email: "a@b.com", Phone: "1234567890"}))
	return s
}

func insertAdoption(s *Store, a adoptions.Adoption) error {
	return s.WithinTx(context.Background(), func(ctx context.Context, tx workflow.Tx) error {
		return tx.InsertAdoption(ctx, a)
	})
}

func TestWithinTx_UndoRestoresEveryWrite(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context, tx workflow.Tx) error {
		if err := tx.InsertAdoption(ctx, adoptions.Adoption{ID: "AD1", PetID: "P1", AdopterID: "A1", Status: adoptions.StatusCompleted}); err != nil {
			return err
		}
		if err := tx.UpdatePetStatus(ctx, "P1", pets.StatusAdopted, t0.Add(time.Hour)); err != nil {
			return err
		}
		if err := tx.UpdatePetStatus(ctx, "P1", pets.StatusPending, t0.Add(2*time.Hour)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := NewPetRepo(s).GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAvailable, p.Status)
	assert.True(t, p.UpdatedAt.IsZero())

	_, err = NewAdoptionRepo(s).GetByID(ctx, "AD1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWithinTx_CanceledContext(t *testing.T) {
	s := seed(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.WithinTx(ctx, func(ctx context.Context, tx workflow.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestInsertAdoption_OneActivePerPet(t *testing.T) {
	s := seed(t)

	require.NoError(t, insertAdoption(s, adoptions.Adoption{ID: "AD1", PetID: "P1", AdopterID: "A1", Status: adoptions.StatusTrialPeriod}))
	err := insertAdoption(s, adoptions.Adoption{ID: "AD2", PetID: "P1", AdopterID: "A1", Status: adoptions.StatusCompleted})
	assert.ErrorIs(t, err, storage.ErrConflict)

	// las inactivas no cuentan
	require.NoError(t, insertAdoption(s, adoptions.Adoption{ID: "AD3", PetID: "P1", AdopterID: "A1", Status: adoptions.StatusReturned}))

	err = s.WithinTx(context.Background(), func(ctx context.Context, tx workflow.Tx) error {
		return tx.UpdateAdoptionStatus(ctx, "AD3", adoptions.StatusCompleted, t0)
	})
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestDeleteGuards(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	require.NoError(t, NewApplicationRepo(s).Create(ctx, applications.Application{ID: "APP1", AdopterID: "A1", Status: applications.StatusPending}))
	require.NoError(t, insertAdoption(s, adoptions.Adoption{ID: "AD1", PetID: "P1", AdopterID: "A1", Status: adoptions.StatusCancelled}))

	err := s.WithinTx(ctx, func(ctx context.Context, tx workflow.Tx) error {
		return tx.DeletePetIfUnreferenced(ctx, "P1")
	})
	assert.ErrorIs(t, err, storage.ErrConflict)

	err = s.WithinTx(ctx, func(ctx context.Context, tx workflow.Tx) error {
		return tx.DeleteAdopterIfUnreferenced(ctx, "A1")
	})
	assert.ErrorIs(t, err, storage.ErrConflict)

	err = NewShelterRepo(s).Delete(ctx, "S1")
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestAdopterRepo_ContactUniqueness(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	repo := NewAdopterRepo(s)

	err := repo.Create(ctx, adopters.Adopter{ID: "A2", Email: "a@b.com", Phone: "0000000000"})
	assert.ErrorIs(t, err, storage.ErrConflict)

	err = repo.Create(ctx, adopters.Adopter{ID: "A3", Email: "c@d.com", Phone: "1234567890"})
	assert.ErrorIs(t, err, storage.ErrConflict)

	got, err := repo.GetByPhone(ctx, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "A1", got.ID)
}

func TestPetRepo_UpdateKeepsWorkflowFields(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	repo := NewPetRepo(s)

	err := repo.Update(ctx, pets.Pet{ID: "P1", ShelterID: "other", Name: "Luna II", Status: pets.StatusAdopted})
	require.NoError(t, err)

	p, err := repo.GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "Luna II", p.Name)
	assert.Equal(t, pets.StatusAvailable, p.Status)
	assert.Equal(t, "S1", p.ShelterID)
	assert.Equal(t, t0, p.CreatedAt)
}

func TestAdoptionRepo_ListNewestFirstWithLimit(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	for i, st := range []adoptions.Status{adoptions.StatusReturned, adoptions.StatusCancelled, adoptions.StatusCompleted} {
		require.NoError(t, insertAdoption(s, adoptions.Adoption{
			ID:           string(rune('a' + i)),
			PetID:        "P1",
			AdopterID:    "A1",
			Status:       st,
			AdoptionDate: t0.AddDate(0, 0, i),
		}))
	}

	items, err := NewAdoptionRepo(s).List(ctx, adoptions.ListFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
}
