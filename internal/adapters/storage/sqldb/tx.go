package sqldb

import (
	"context"
	"time"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/applications"
	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/domain/shelters"
)

// sqlTx implementa workflow.Tx sobre un *sql.Tx.
type sqlTx struct {
	q conn
}

func (t *sqlTx) FindPetByID(ctx context.Context, id string) (pets.Pet, error) {
	return findPet(ctx, t.q, id, true)
}

func (t *sqlTx) UpdatePetStatus(ctx context.Context, id string, status pets.Status, at time.Time) error {
	return t.q.execOne(ctx, `UPDATE pets SET status = ?, updated_at = ? WHERE id = ?`, status, at, id)
}

func (t *sqlTx) UpdatePetShelter(ctx context.Context, id, shelterID string, at time.Time) error {
	return t.q.execOne(ctx, `UPDATE pets SET shelter_id = ?, updated_at = ? WHERE id = ?`, shelterID, at, id)
}

func (t *sqlTx) DeletePetIfUnreferenced(ctx context.Context, id string) error {
	return t.q.deleteOne(ctx, `DELETE FROM pets WHERE id = ?`, id)
}

func (t *sqlTx) DeleteInactiveAdoptionsForPet(ctx context.Context, petID string) error {
	_, err := t.q.exec(ctx, `DELETE FROM adoptions WHERE pet_id = ? AND status IN (?, ?)`,
		petID, adoptions.StatusReturned, adoptions.StatusCancelled)
	return err
}

func (t *sqlTx) FindShelterByID(ctx context.Context, id string) (shelters.Shelter, error) {
	return findShelter(ctx, t.q, id, true)
}

func (t *sqlTx) CountPetsInShelter(ctx context.Context, shelterID string) (int, error) {
	return countPets(ctx, t.q, shelterID)
}

func (t *sqlTx) FindAdopterByID(ctx context.Context, id string) (adopters.Adopter, error) {
	return findAdopter(ctx, t.q, "id", id)
}

func (t *sqlTx) DeleteAdopterIfUnreferenced(ctx context.Context, id string) error {
	return t.q.deleteOne(ctx, `DELETE FROM adopters WHERE id = ?`, id)
}

func (t *sqlTx) ListAdoptionsForAdopter(ctx context.Context, adopterID string) ([]adoptions.Adoption, error) {
	rows, err := t.q.query(ctx, `SELECT `+adoptionColumns+` FROM adoptions WHERE adopter_id = ? ORDER BY id`, adopterID)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanAdoption)
}

func (t *sqlTx) DeleteApplicationsForAdopter(ctx context.Context, adopterID string) error {
	_, err := t.q.exec(ctx, `DELETE FROM applications WHERE adopter_id = ?`, adopterID)
	return err
}

func (t *sqlTx) FindApplicationByID(ctx context.Context, id string) (applications.Application, error) {
	return findApplication(ctx, t.q, id)
}

func (t *sqlTx) FindApprovedApplicationForAdopter(ctx context.Context, adopterID string) (applications.Application, error) {
	a, err := scanApplication(t.q.queryRow(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE adopter_id = ? AND status = ?
		ORDER BY application_date DESC, id
		LIMIT 1
	`, adopterID, applications.StatusApproved))
	if err != nil {
		return applications.Application{}, notFound(err)
	}
	return a, nil
}

func (t *sqlTx) UpdateApplicationStatus(ctx context.Context, id string, status applications.Status, at time.Time) error {
	return t.q.execOne(ctx, `UPDATE applications SET status = ?, updated_at = ? WHERE id = ?`, status, at, id)
}

func (t *sqlTx) FindAdoptionByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	return findAdoption(ctx, t.q, id)
}

func (t *sqlTx) FindActiveAdoptionForPet(ctx context.Context, petID string) (adoptions.Adoption, error) {
	a, err := scanAdoption(t.q.queryRow(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoptions
		WHERE pet_id = ? AND status IN (?, ?)
		LIMIT 1
	`, petID, adoptions.StatusCompleted, adoptions.StatusTrialPeriod))
	if err != nil {
		return adoptions.Adoption{}, notFound(err)
	}
	return a, nil
}

func (t *sqlTx) CountCompletedAdoptionsForAdopter(ctx context.Context, adopterID string) (int, error) {
	return t.q.count(ctx, `SELECT COUNT(*) FROM adoptions WHERE adopter_id = ? AND status = ?`, adopterID, adoptions.StatusCompleted)
}

// InsertAdoption: el índice único parcial sobre (pet_id) para status
// activos convierte una segunda adopción activa en storage.ErrConflict.
func (t *sqlTx) InsertAdoption(ctx context.Context, a adoptions.Adoption) error {
	return t.q.insert(ctx, `
		INSERT INTO adoptions (`+adoptionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.AdopterID, a.PetID, a.AdoptionDate, a.Fee, a.Notes, a.Status, a.CreatedAt, a.UpdatedAt)
}

func (t *sqlTx) UpdateAdoptionStatus(ctx context.Context, id string, status adoptions.Status, at time.Time) error {
	return t.q.execOne(ctx, `UPDATE adoptions SET status = ?, updated_at = ? WHERE id = ?`, status, at, id)
}

func (t *sqlTx) DeleteAdoption(ctx context.Context, id string) error {
	return t.q.deleteOne(ctx, `DELETE FROM adoptions WHERE id = ?`, id)
}
