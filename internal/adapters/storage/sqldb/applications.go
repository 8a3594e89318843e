package sqldb

import (
	"context"

	"pet-adoption-center/internal/domain/applications"
)

const applicationColumns = `id, adopter_id, application_date, status, preferred_pet_age, experience_level, created_at, updated_at`

func scanApplication(sc scanner) (applications.Application, error) {
	var a applications.Application
	err := sc.Scan(&a.ID, &a.AdopterID, &a.ApplicationDate, &a.Status, &a.PreferredPetAge, &a.ExperienceLevel, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

type ApplicationRepo struct {
	db *DB
}

func NewApplicationRepo(db *DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

func (r *ApplicationRepo) Create(ctx context.Context, a applications.Application) error {
	return r.db.conn().insert(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.AdopterID, a.ApplicationDate, a.Status, a.PreferredPetAge, a.ExperienceLevel, a.CreatedAt, a.UpdatedAt)
}

// Update no toca status.
func (r *ApplicationRepo) Update(ctx context.Context, a applications.Application) error {
	return r.db.conn().execOne(ctx, `
		UPDATE applications
		SET preferred_pet_age = ?, experience_level = ?, updated_at = ?
		WHERE id = ?
	`, a.PreferredPetAge, a.ExperienceLevel, a.UpdatedAt, a.ID)
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	return findApplication(ctx, r.db.conn(), id)
}

func (r *ApplicationRepo) List(ctx context.Context, f applications.ListFilter) ([]applications.Application, error) {
	var w where
	if f.AdopterID != "" {
		w.add("adopter_id = ?", f.AdopterID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	rows, err := r.db.conn().query(ctx, `SELECT `+applicationColumns+` FROM applications`+w.String()+` ORDER BY application_date DESC, id`, w.args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanApplication)
}

func (r *ApplicationRepo) Delete(ctx context.Context, id string) error {
	return r.db.conn().deleteOne(ctx, `DELETE FROM applications WHERE id = ?`, id)
}

func findApplication(ctx context.Context, c conn, id string) (applications.Application, error) {
	a, err := scanApplication(c.queryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id))
	if err != nil {
		return applications.Application{}, notFound(err)
	}
	return a, nil
}
