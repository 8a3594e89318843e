package workflow_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"pet-adoption-center/internal/adapters/storage/memory"
	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/applications"
	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/domain/rules"
	"pet-adoption-center/internal/domain/shelters"
	"pet-adoption-center/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

type fakeRecorder struct {
	mu  sync.Mutex
	got []string
}

func (r *fakeRecorder) ObserveWorkflow(op, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, op+":"+result)
}

type fixture struct {
	t      *testing.T
	store  *memory.Store
	engine *workflow.Engine
	rec    *fakeRecorder
}

// newFixture: refugio S1 (cap 10) con P101 Available; S2 (cap 1) lleno con P900;
// adoptante A55 con la solicitud #7 Approved; adoptante A77 sin solicitudes aprobadas.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	sh := memory.NewShelterRepo(store)
	require.NoError(t, sh.Create(ctx, shelters.Shelter{ID: "S1", Name: "Norte", Capacity: 10}))
	require.NoError(t, sh.Create(ctx, shelters.Shelter{ID: "S2", Name: "Sur", Capacity: 1}))

	f := &fixture{t: t, store: store, rec: &fakeRecorder{}}
	f.addPet("P101", "S1", pets.StatusAvailable)
	f.addPet("P900", "S2", pets.StatusAvailable)

	ad := memory.NewAdopterRepo(store)
	require.NoError(t, ad.Create(ctx, adopters.Adopter{ID: "A55", Email: "a55@b.com", Phone: "1111111111"}))
	require.NoError(t, ad.Create(ctx, adopters.Adopter{ID: "A77", Email: "a77@b.com", Phone: "2222222222"}))

	apps := memory.NewApplicationRepo(store)
	require.NoError(t, apps.Create(ctx, applications.Application{ID: "7", AdopterID: "A55", Status: applications.StatusApproved, ApplicationDate: now.AddDate(0, 0, -3)}))
	require.NoError(t, apps.Create(ctx, applications.Application{ID: "8", AdopterID: "A77", Status: applications.StatusPending, ApplicationDate: now.AddDate(0, 0, -1)}))

	f.engine = workflow.NewEngine(store, f.rec)
	f.engine.SetNow(func() time.Time { return now })
	return f
}

func (f *fixture) addPet(id, shelterID string, status pets.Status) {
	f.t.Helper()
	require.NoError(f.t, memory.NewPetRepo(f.store).Create(context.Background(), pets.Pet{
		ID: id, ShelterID: shelterID, Name: id, Species: pets.SpeciesDog, Status: status, CreatedAt: now,
	}))
}

func (f *fixture) pet(id string) pets.Pet {
	f.t.Helper()
	p, err := memory.NewPetRepo(f.store).GetByID(context.Background(), id)
	require.NoError(f.t, err)
	return p
}

func (f *fixture) adoptionsFor(petID string) []adoptions.Adoption {
	f.t.Helper()
	items, err := memory.NewAdoptionRepo(f.store).List(context.Background(), adoptions.ListFilter{PetID: petID})
	require.NoError(f.t, err)
	return items
}

func (f *fixture) activeCount(petID string) int {
	n := 0
	for _, a := range f.adoptionsFor(petID) {
		if a.Status.IsActive() {
			n++
		}
	}
	return n
}

func (f *fixture) adopt(adopterID, petID string, fee float64) (adoptions.Adoption, error) {
	return f.engine.ProcessAdoption(context.Background(), adoptions.ProcessInput{
		AdopterID: adopterID, PetID: petID, Fee: fee,
	})
}

func requireCode(t *testing.T, err error, code apperr.Code) *apperr.Error {
	t.Helper()
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %T: %v", err, err)
	require.Equal(t, code, e.Code, "unexpected error: %v", err)
	return e
}

// -------------------------
// ProcessAdoption
// -------------------------

func TestProcessAdoption_Success(t *testing.T) {
	f := newFixture(t)

	a, err := f.adopt("A55", "P101", 250)
	require.NoError(t, err)

	assert.Equal(t, adoptions.StatusCompleted, a.Status)
	assert.Equal(t, 250.0, a.Fee)
	assert.Equal(t, "A55", a.AdopterID)
	assert.Equal(t, now, a.AdoptionDate)
	assert.Equal(t, pets.StatusAdopted, f.pet("P101").Status)
	assert.Equal(t, 1, f.activeCount("P101"))
	assert.Equal(t, []string{"process_adoption:ok"}, f.rec.got)
}

func TestProcessAdoption_FeeTooHigh_NoWrites(t *testing.T) {
	f := newFixture(t)

	_, err := f.adopt("A55", "P101", 60000)
	e := requireCode(t, err, apperr.CodeFeeOutOfRange)
	assert.Equal(t, string(rules.FeeTooHigh), e.Reason)
	assert.Equal(t, apperr.KindValidationFailed, e.Kind)

	assert.Empty(t, f.adoptionsFor("P101"))
	assert.Equal(t, pets.StatusAvailable, f.pet("P101").Status)
	assert.Equal(t, []string{"process_adoption:FeeOutOfRange"}, f.rec.got)
}

func TestProcessAdoption_FeeBounds(t *testing.T) {
	cases := []struct {
		fee    float64
		reason rules.Reason // vacío = aceptado
	}{
		{-0.01, rules.FeeNegative},
		{-100, rules.FeeNegative},
		{0, ""},
		{49999.99, ""},
		{50000, ""},
		{50000.01, rules.FeeTooHigh},
	}

	for _, tc := range cases {
		f := newFixture(t)
		_, err := f.adopt("A55", "P101", tc.fee)
		if tc.reason == "" {
			assert.NoError(t, err, "fee %.2f", tc.fee)
			continue
		}
		e := requireCode(t, err, apperr.CodeFeeOutOfRange)
		assert.Equal(t, string(tc.reason), e.Reason, "fee %.2f", tc.fee)
	}
}

func TestProcessAdoption_PetNotAvailable(t *testing.T) {
	for _, st := range []pets.Status{pets.StatusPending, pets.StatusAdopted} {
		f := newFixture(t)
		f.addPet("P5", "S1", st)

		// un fee inválido no cambia el resultado: gana la primera precondición
		_, err := f.adopt("A55", "P5", -1)
		e := requireCode(t, err, apperr.CodePetNotAvailable)
		assert.Equal(t, apperr.KindPreconditionFailed, e.Kind)
		assert.Empty(t, f.adoptionsFor("P5"))
		assert.Equal(t, st, f.pet("P5").Status)
	}
}

func TestProcessAdoption_PetNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.adopt("A55", "nope", 10)
	e := requireCode(t, err, apperr.CodePetNotFound)
	assert.Equal(t, apperr.KindNotFound, e.Kind)
}

func TestProcessAdoption_NoApprovedApplication(t *testing.T) {
	f := newFixture(t)

	_, err := f.adopt("A77", "P101", 10)
	requireCode(t, err, apperr.CodeNoApprovedApplication)

	_, err = f.adopt("ghost", "P101", 10)
	requireCode(t, err, apperr.CodeNoApprovedApplication)

	assert.Equal(t, pets.StatusAvailable, f.pet("P101").Status)
}

func TestProcessAdoption_DuplicateActiveAdoption(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.adopt("A55", "P101", 100)
	require.NoError(t, err)

	// mascota vuelve a Available por fuera del workflow, pero la adopción sigue activa
	require.NoError(t, f.store.WithinTx(ctx, func(ctx context.Context, tx workflow.Tx) error {
		return tx.UpdatePetStatus(ctx, "P101", pets.StatusAvailable, now)
	}))

	_, err = f.adopt("A55", "P101", 100)
	requireCode(t, err, apperr.CodeDuplicateActiveAdoption)
	assert.Equal(t, 1, f.activeCount("P101"))
	assert.Equal(t, a.ID, f.adoptionsFor("P101")[0].ID)
}

func TestProcessAdoption_InitialStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.ProcessAdoption(ctx, adoptions.ProcessInput{
		AdopterID: "A55", PetID: "P101", Fee: 10, Status: adoptions.StatusReturned,
	})
	requireCode(t, err, apperr.CodeInvalidStatus)

	date := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	a, err := f.engine.ProcessAdoption(ctx, adoptions.ProcessInput{
		AdopterID: "A55", PetID: "P101", Fee: 10, Status: adoptions.StatusTrialPeriod,
		Notes: "  prueba de 2 semanas ", AdoptionDate: &date,
	})
	require.NoError(t, err)
	assert.Equal(t, adoptions.StatusTrialPeriod, a.Status)
	assert.Equal(t, "prueba de 2 semanas", a.Notes)
	assert.Equal(t, date, a.AdoptionDate)
	assert.Equal(t, pets.StatusAdopted, f.pet("P101").Status)
}

func TestProcessAdoption_ConcurrentSamePet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// más adoptantes aprobados compitiendo por la misma mascota
	const n = 16
	ad := memory.NewAdopterRepo(f.store)
	apps := memory.NewApplicationRepo(f.store)
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "C" + string(rune('a'+i))
		require.NoError(t, ad.Create(ctx, adopters.Adopter{ID: ids[i], Email: ids[i] + "@x.com", Phone: "30000000" + string(rune('a'+i))}))
		require.NoError(t, apps.Create(ctx, applications.Application{ID: "app-" + ids[i], AdopterID: ids[i], Status: applications.StatusApproved}))
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		codes   = map[apperr.Code]int{}
	)
	for _, id := range ids {
		wg.Add(1)
		go func(adopterID string) {
			defer wg.Done()
			_, err := f.adopt(adopterID, "P101", 50)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				success++
				return
			}
			codes[apperr.CodeOf(err)]++
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	for code := range codes {
		assert.Contains(t, []apperr.Code{apperr.CodePetNotAvailable, apperr.CodeDuplicateActiveAdoption}, code)
	}
	assert.Equal(t, 1, f.activeCount("P101"))
	assert.Equal(t, pets.StatusAdopted, f.pet("P101").Status)
}

// -------------------------
// UpdateAdoptionStatus
// -------------------------

func TestUpdateAdoptionStatus_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.adopt("A55", "P101", 250)
	require.NoError(t, err)

	got, err := f.engine.UpdateAdoptionStatus(ctx, a.ID, "Returned")
	require.NoError(t, err)
	assert.Equal(t, adoptions.StatusReturned, got.Status)
	assert.Equal(t, pets.StatusAvailable, f.pet("P101").Status)

	_, err = f.engine.UpdateAdoptionStatus(ctx, a.ID, "Completed")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAdopted, f.pet("P101").Status)

	// idempotente
	_, err = f.engine.UpdateAdoptionStatus(ctx, a.ID, "Completed")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAdopted, f.pet("P101").Status)
	assert.Equal(t, 1, f.activeCount("P101"))

	_, err = f.engine.UpdateAdoptionStatus(ctx, a.ID, "Trial Period")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAdopted, f.pet("P101").Status)

	_, err = f.engine.UpdateAdoptionStatus(ctx, a.ID, "Cancelled")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAvailable, f.pet("P101").Status)
}

func TestUpdateAdoptionStatus_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.UpdateAdoptionStatus(ctx, "nope", "Completed")
	requireCode(t, err, apperr.CodeAdoptionNotFound)

	a, err := f.adopt("A55", "P101", 250)
	require.NoError(t, err)

	_, err = f.engine.UpdateAdoptionStatus(ctx, a.ID, "Lost")
	requireCode(t, err, apperr.CodeInvalidStatus)
	assert.Equal(t, pets.StatusAdopted, f.pet("P101").Status)
}

func TestUpdateAdoptionStatus_ReactivationKeepsSingleActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.adopt("A55", "P101", 100)
	require.NoError(t, err)
	_, err = f.engine.UpdateAdoptionStatus(ctx, first.ID, "Returned")
	require.NoError(t, err)

	second, err := f.adopt("A55", "P101", 120)
	require.NoError(t, err)

	_, err = f.engine.UpdateAdoptionStatus(ctx, first.ID, "Completed")
	requireCode(t, err, apperr.CodeDuplicateActiveAdoption)

	// cancelar la vieja no libera a la mascota: la segunda sigue activa
	_, err = f.engine.UpdateAdoptionStatus(ctx, first.ID, "Cancelled")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAdopted, f.pet("P101").Status)

	got, err := memory.NewAdoptionRepo(f.store).GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, adoptions.StatusCompleted, got.Status)
	assert.Equal(t, 1, f.activeCount("P101"))
}

// -------------------------
// UpdateApplicationStatus
// -------------------------

func TestUpdateApplicationStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.UpdateApplicationStatus(ctx, "nope", "Approved")
	requireCode(t, err, apperr.CodeApplicationNotFound)

	_, err = f.engine.UpdateApplicationStatus(ctx, "8", "Accepted")
	requireCode(t, err, apperr.CodeInvalidStatus)

	app, err := f.engine.UpdateApplicationStatus(ctx, "8", "Approved")
	require.NoError(t, err)
	assert.Equal(t, applications.StatusApproved, app.Status)
	assert.Equal(t, now, app.UpdatedAt)

	// ahora A77 puede adoptar
	_, err = f.adopt("A77", "P101", 75)
	require.NoError(t, err)
}

// -------------------------
// DeletePet / DeleteAdopter
// -------------------------

func TestDeletePet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.DeletePet(ctx, "nope")
	requireCode(t, err, apperr.CodePetNotFound)

	a, err := f.adopt("A55", "P101", 100)
	require.NoError(t, err)

	_, err = f.engine.DeletePet(ctx, "P101")
	e := requireCode(t, err, apperr.CodePetHasActiveAdoption)
	assert.Equal(t, apperr.KindReferentialConflict, e.Kind)

	f.addPet("P2", "S1", pets.StatusAvailable)
	p, err := f.engine.DeletePet(ctx, "P2")
	require.NoError(t, err)
	assert.Equal(t, "P2", p.ID)

	_, err = memory.NewPetRepo(f.store).GetByID(ctx, "P2")
	assert.Error(t, err)

	// solo historial inactivo: se borra junto con la mascota
	_, err = f.engine.UpdateAdoptionStatus(ctx, a.ID, "Returned")
	require.NoError(t, err)
	_, err = f.engine.DeletePet(ctx, "P101")
	require.NoError(t, err)
	assert.Empty(t, f.adoptionsFor("P101"))
}

func TestDeletePet_KeepsHistoryWhenBlocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.adopt("A55", "P101", 100)
	require.NoError(t, err)
	_, err = f.engine.UpdateAdoptionStatus(ctx, first.ID, "Cancelled")
	require.NoError(t, err)
	_, err = f.adopt("A55", "P101", 120)
	require.NoError(t, err)

	_, err = f.engine.DeletePet(ctx, "P101")
	requireCode(t, err, apperr.CodePetHasActiveAdoption)
	assert.Len(t, f.adoptionsFor("P101"), 2)
}

func TestDeleteAdopter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.DeleteAdopter(ctx, "nope")
	requireCode(t, err, apperr.CodeAdopterNotFound)

	f.addPet("P2", "S1", pets.StatusAvailable)
	_, err = f.adopt("A55", "P101", 10)
	require.NoError(t, err)
	_, err = f.adopt("A55", "P2", 10)
	require.NoError(t, err)

	_, err = f.engine.DeleteAdopter(ctx, "A55")
	e := requireCode(t, err, apperr.CodeAdopterHasCompletedAdoptions)
	assert.Equal(t, 2, e.Count)

	// A77 solo tiene una solicitud Pending: se borra con ella
	ad, err := f.engine.DeleteAdopter(ctx, "A77")
	require.NoError(t, err)
	assert.Equal(t, "A77", ad.ID)

	_, err = memory.NewAdopterRepo(f.store).GetByID(ctx, "A77")
	assert.Error(t, err)
	_, err = memory.NewApplicationRepo(f.store).GetByID(ctx, "8")
	assert.Error(t, err)

	require.NoError(t, memory.NewAdopterRepo(f.store).Create(ctx, adopters.Adopter{ID: "A99", Email: "z@z.com", Phone: "9999999999"}))
	ad, err = f.engine.DeleteAdopter(ctx, "A99")
	require.NoError(t, err)
	assert.Equal(t, "A99", ad.ID)
}

func TestDeleteAdopter_ReleasesTrialAndHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addPet("P2", "S1", pets.StatusAvailable)
	returned, err := f.adopt("A55", "P2", 10)
	require.NoError(t, err)
	_, err = f.engine.UpdateAdoptionStatus(ctx, returned.ID, "Returned")
	require.NoError(t, err)

	_, err = f.engine.ProcessAdoption(ctx, adoptions.ProcessInput{
		AdopterID: "A55", PetID: "P101", Fee: 10, Status: adoptions.StatusTrialPeriod,
	})
	require.NoError(t, err)
	require.Equal(t, pets.StatusAdopted, f.pet("P101").Status)

	_, err = f.engine.DeleteAdopter(ctx, "A55")
	require.NoError(t, err)

	assert.Equal(t, pets.StatusAvailable, f.pet("P101").Status)
	assert.Empty(t, f.adoptionsFor("P101"))
	assert.Empty(t, f.adoptionsFor("P2"))
	_, err = memory.NewApplicationRepo(f.store).GetByID(ctx, "7")
	assert.Error(t, err)

	// la mascota liberada se puede volver a adoptar
	_, err = f.engine.UpdateApplicationStatus(ctx, "8", "Approved")
	require.NoError(t, err)
	_, err = f.adopt("A77", "P101", 30)
	require.NoError(t, err)
}

// -------------------------
// DeleteAdoption
// -------------------------

func TestDeleteAdoption(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.DeleteAdoption(ctx, "nope")
	requireCode(t, err, apperr.CodeAdoptionNotFound)

	a, err := f.adopt("A55", "P101", 100)
	require.NoError(t, err)

	_, err = f.engine.DeleteAdoption(ctx, a.ID)
	e := requireCode(t, err, apperr.CodeAdoptionIsActive)
	assert.Equal(t, apperr.KindReferentialConflict, e.Kind)
	assert.Equal(t, pets.StatusAdopted, f.pet("P101").Status)

	_, err = f.engine.UpdateAdoptionStatus(ctx, a.ID, "Cancelled")
	require.NoError(t, err)

	got, err := f.engine.DeleteAdoption(ctx, " "+a.ID+" ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Empty(t, f.adoptionsFor("P101"))
	assert.Equal(t, pets.StatusAvailable, f.pet("P101").Status)
	assert.Contains(t, f.rec.got, "delete_adoption:ok")
	assert.Contains(t, f.rec.got, "delete_adoption:AdoptionIsActive")
}

// -------------------------
// TransferPet
// -------------------------

func TestTransferPet_TargetAtCapacity(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.TransferPet(context.Background(), "P101", "S2")
	requireCode(t, err, apperr.CodeTargetShelterAtCapacity)
	assert.Equal(t, "S1", f.pet("P101").ShelterID)
}

func TestTransferPet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.TransferPet(ctx, "nope", "S1")
	requireCode(t, err, apperr.CodePetNotFound)

	_, err = f.engine.TransferPet(ctx, "P900", "S9")
	requireCode(t, err, apperr.CodeShelterNotFound)

	// mismo refugio: no-op aunque esté lleno
	p, err := f.engine.TransferPet(ctx, "P900", "S2")
	require.NoError(t, err)
	assert.Equal(t, "S2", p.ShelterID)

	p, err = f.engine.TransferPet(ctx, "P900", "S1")
	require.NoError(t, err)
	assert.Equal(t, "S1", p.ShelterID)
	assert.Equal(t, "S1", f.pet("P900").ShelterID)

	_, err = f.adopt("A55", "P101", 10)
	require.NoError(t, err)
	_, err = f.engine.TransferPet(ctx, "P101", "S2")
	requireCode(t, err, apperr.CodePetIsAdopted)
}
