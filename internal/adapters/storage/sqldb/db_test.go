package sqldb

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/domain/shelters"
	"pet-adoption-center/internal/domain/workflow"
	"pet-adoption-center/internal/ports/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var (
	errUnique = errors.New("unique violation")
	errFK     = errors.New("fk violation")
)

// testDialect se comporta como Postgres pero con errores de driver falsos.
func testDialect() Dialect {
	return Dialect{
		Name:                  "test",
		Numbered:              true,
		ForUpdate:             " FOR UPDATE",
		IsUniqueViolation:     func(err error) bool { return errors.Is(err, errUnique) },
		IsForeignKeyViolation: func(err error) bool { return errors.Is(err, errFK) },
	}
}

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, testDialect()), mock
}

func TestPetRepo_Update_NoRowsIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE pets")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewPetRepo(db).Update(context.Background(), pets.Pet{ID: "missing", Name: "Rex"})
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShelterRepo_Create_UniqueViolationIsConflict(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shelters")).
		WithArgs("S1", "Norte", "", "", "", 10, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errUnique)

	err := NewShelterRepo(db).Create(context.Background(), shelters.Shelter{ID: "S1", Name: "Norte", Capacity: 10})
	require.ErrorIs(t, err, storage.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetRepo_Create_MissingShelterIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pets")).WillReturnError(errFK)

	err := NewPetRepo(db).Create(context.Background(), pets.Pet{ID: "P1", ShelterID: "nope", Name: "Rex"})
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShelterRepo_Delete_ReferencedIsConflict(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shelters WHERE id = $1")).
		WithArgs("S1").
		WillReturnError(errFK)

	err := NewShelterRepo(db).Delete(context.Background(), "S1")
	require.ErrorIs(t, err, storage.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShelterRepo_GetByID_NoRowsIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM shelters WHERE id = $1")).
		WithArgs("S404").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewShelterRepo(db).GetByID(context.Background(), "S404")
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_LocksPetAndCommits(t *testing.T) {
	db, mock := newMockDB(t)
	at := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

	cols := []string{"id", "shelter_id", "name", "species", "breed", "age", "gender", "color", "weight", "size", "status", "created_at", "updated_at"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM pets WHERE id = $1 FOR UPDATE")).
		WithArgs("P101").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("P101", "S1", "Rex", "Dog", "", 3, "Male", "", 12.5, "Medium", "Available", at, at))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE pets SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(pets.StatusAdopted, at, "P101").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.WithinTx(context.Background(), func(ctx context.Context, tx workflow.Tx) error {
		p, err := tx.FindPetByID(ctx, "P101")
		if err != nil {
			return err
		}
		require.Equal(t, pets.StatusAvailable, p.Status)
		return tx.UpdatePetStatus(ctx, p.ID, pets.StatusAdopted, at)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.WithinTx(context.Background(), func(context.Context, workflow.Tx) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_InsertAdoption_UniqueIndexIsConflict(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO adoptions")).WillReturnError(errUnique)
	mock.ExpectRollback()

	err := db.WithinTx(context.Background(), func(ctx context.Context, tx workflow.Tx) error {
		return tx.InsertAdoption(ctx, adoptions.Adoption{
			ID: "AD2", AdopterID: "A55", PetID: "P101", Fee: 100, Status: adoptions.StatusCompleted,
		})
	})
	require.ErrorIs(t, err, storage.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_DeleteInactiveAdoptionsForPet_OnlyHistory(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM adoptions WHERE pet_id = $1 AND status IN ($2, $3)")).
		WithArgs("P101", adoptions.StatusReturned, adoptions.StatusCancelled).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pets WHERE id = $1")).
		WithArgs("P101").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.WithinTx(context.Background(), func(ctx context.Context, tx workflow.Tx) error {
		if err := tx.DeleteInactiveAdoptionsForPet(ctx, "P101"); err != nil {
			return err
		}
		return tx.DeletePetIfUnreferenced(ctx, "P101")
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_DeleteAdoption_NoRowsIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM adoptions WHERE id = $1")).
		WithArgs("AD404").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := db.WithinTx(context.Background(), func(ctx context.Context, tx workflow.Tx) error {
		return tx.DeleteAdoption(ctx, "AD404")
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM applications WHERE id = $1")).
		WithArgs("8").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewApplicationRepo(db).Delete(context.Background(), "8"))
	require.NoError(t, mock.ExpectationsWereMet())
}
