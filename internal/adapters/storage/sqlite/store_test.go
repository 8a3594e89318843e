package sqlite_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"pet-adoption-center/internal/adapters/storage/sqldb"
	"pet-adoption-center/internal/adapters/storage/sqlite"
	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/applications"
	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/domain/shelters"
	"pet-adoption-center/internal/domain/workflow"
	"pet-adoption-center/internal/ports/storage"

	"github.com/stretchr/testify/require"
)

var seeded = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *sqldb.DB {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlite.Migrate(db))
	return sqlite.NewStore(db)
}

// seed: refugio S1 con P101 Available, adoptante A55 con solicitud aprobada.
func seed(t *testing.T, db *sqldb.DB) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, sqldb.NewShelterRepo(db).Create(ctx, shelters.Shelter{
		ID: "S1", Name: "Norte", City: "Rosario", Capacity: 2, CreatedAt: seeded, UpdatedAt: seeded,
	}))
	require.NoError(t, sqldb.NewPetRepo(db).Create(ctx, pets.Pet{
		ID: "P101", ShelterID: "S1", Name: "Rex", Species: pets.SpeciesDog, Status: pets.StatusAvailable,
		CreatedAt: seeded, UpdatedAt: seeded,
	}))
	require.NoError(t, sqldb.NewAdopterRepo(db).Create(ctx, adopters.Adopter{
		ID: "A55", FirstName: "Ana", LastName: "Paz", Email: "a@b.com", Phone: "3415550000",
		HousingType: adopters.HousingHouse, HasYard: true, CreatedAt: seeded, UpdatedAt: seeded,
	}))
	require.NoError(t, sqldb.NewApplicationRepo(db).Create(ctx, applications.Application{
		ID: "7", AdopterID: "A55", ApplicationDate: seeded, Status: applications.StatusApproved,
		CreatedAt: seeded, UpdatedAt: seeded,
	}))
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, sqlite.Migrate(db))
	require.NoError(t, sqlite.Migrate(db))
}

func TestRepos_ConstraintsMapToStorageErrors(t *testing.T) {
	db := openStore(t)
	seed(t, db)
	ctx := context.Background()

	// email único
	err := sqldb.NewAdopterRepo(db).Create(ctx, adopters.Adopter{
		ID: "A99", FirstName: "Otro", LastName: "X", Email: "a@b.com", Phone: "3415559999",
		CreatedAt: seeded, UpdatedAt: seeded,
	})
	require.ErrorIs(t, err, storage.ErrConflict)

	// refugio inexistente
	err = sqldb.NewPetRepo(db).Create(ctx, pets.Pet{
		ID: "P2", ShelterID: "nope", Name: "Mia", Species: pets.SpeciesCat, Status: pets.StatusAvailable,
		CreatedAt: seeded, UpdatedAt: seeded,
	})
	require.ErrorIs(t, err, storage.ErrNotFound)

	// refugio con mascotas
	err = sqldb.NewShelterRepo(db).Delete(ctx, "S1")
	require.ErrorIs(t, err, storage.ErrConflict)
}

func TestRepos_RoundTripFields(t *testing.T) {
	db := openStore(t)
	seed(t, db)
	ctx := context.Background()

	a, err := sqldb.NewAdopterRepo(db).GetByPhone(ctx, "3415550000")
	require.NoError(t, err)
	require.Equal(t, "A55", a.ID)
	require.True(t, a.HasYard)
	require.True(t, a.CreatedAt.Equal(seeded))

	list, err := sqldb.NewShelterRepo(db).List(ctx, shelters.ListFilter{City: "rosario"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	n, err := sqldb.NewShelterRepo(db).CountPets(ctx, "S1")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestWorkflow_ProcessAdoptionOnSQLite(t *testing.T) {
	db := openStore(t)
	seed(t, db)
	ctx := context.Background()
	engine := workflow.NewEngine(db, nil)

	ad, err := engine.ProcessAdoption(ctx, adoptions.ProcessInput{AdopterID: "A55", PetID: "P101", Fee: 250})
	require.NoError(t, err)
	require.Equal(t, adoptions.StatusCompleted, ad.Status)

	p, err := sqldb.NewPetRepo(db).GetByID(ctx, "P101")
	require.NoError(t, err)
	require.Equal(t, pets.StatusAdopted, p.Status)

	// la mascota ya no está disponible
	_, err = engine.ProcessAdoption(ctx, adoptions.ProcessInput{AdopterID: "A55", PetID: "P101", Fee: 10})
	require.True(t, apperr.Is(err, apperr.CodePetNotAvailable), "got %v", err)

	// con adopción activa no se puede borrar
	_, err = engine.DeletePet(ctx, "P101")
	require.True(t, apperr.Is(err, apperr.CodePetHasActiveAdoption), "got %v", err)

	// Returned libera la mascota
	_, err = engine.UpdateAdoptionStatus(ctx, ad.ID, string(adoptions.StatusReturned))
	require.NoError(t, err)
	p, err = sqldb.NewPetRepo(db).GetByID(ctx, "P101")
	require.NoError(t, err)
	require.Equal(t, pets.StatusAvailable, p.Status)

	// sin adopciones Completed pero con historial: la FK bloquea el borrado
	_, err = engine.DeleteAdopter(ctx, "A55")
	require.True(t, apperr.Is(err, apperr.CodeAdopterHasReferences), "got %v", err)
}

func TestWorkflow_FeeTooHighLeavesNoTrace(t *testing.T) {
	db := openStore(t)
	seed(t, db)
	ctx := context.Background()
	engine := workflow.NewEngine(db, nil)

	_, err := engine.ProcessAdoption(ctx, adoptions.ProcessInput{AdopterID: "A55", PetID: "P101", Fee: 60000})
	require.True(t, apperr.Is(err, apperr.CodeFeeOutOfRange), "got %v", err)

	list, err := sqldb.NewAdoptionRepo(db).List(ctx, adoptions.ListFilter{PetID: "P101"})
	require.NoError(t, err)
	require.Empty(t, list)

	p, err := sqldb.NewPetRepo(db).GetByID(ctx, "P101")
	require.NoError(t, err)
	require.Equal(t, pets.StatusAvailable, p.Status)
}

func TestWorkflow_ConcurrentAdoptionsOnlyOneWins(t *testing.T) {
	db := openStore(t)
	seed(t, db)
	ctx := context.Background()
	engine := workflow.NewEngine(db, nil)

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.ProcessAdoption(ctx, adoptions.ProcessInput{AdopterID: "A55", PetID: "P101", Fee: 100})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, wins)
	list, err := sqldb.NewAdoptionRepo(db).List(ctx, adoptions.ListFilter{PetID: "P101"})
	require.NoError(t, err)
	require.Len(t, list, 1)
}
