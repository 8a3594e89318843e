package sqldb

import (
	"context"

	"pet-adoption-center/internal/domain/adoptions"
)

const adoptionColumns = `id, adopter_id, pet_id, adoption_date, adoption_fee, notes, status, created_at, updated_at`

func scanAdoption(sc scanner) (adoptions.Adoption, error) {
	var a adoptions.Adoption
	err := sc.Scan(&a.ID, &a.AdopterID, &a.PetID, &a.AdoptionDate, &a.Fee, &a.Notes, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

type AdoptionRepo struct {
	db *DB
}

func NewAdoptionRepo(db *DB) *AdoptionRepo {
	return &AdoptionRepo{db: db}
}

func (r *AdoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	return findAdoption(ctx, r.db.conn(), id)
}

func (r *AdoptionRepo) List(ctx context.Context, f adoptions.ListFilter) ([]adoptions.Adoption, error) {
	var w where
	if f.AdopterID != "" {
		w.add("adopter_id = ?", f.AdopterID)
	}
	if f.PetID != "" {
		w.add("pet_id = ?", f.PetID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.From != nil {
		w.add("adoption_date >= ?", f.From.UTC())
	}
	if f.To != nil {
		w.add("adoption_date <= ?", f.To.UTC())
	}
	if f.MinFee != nil {
		w.add("adoption_fee >= ?", *f.MinFee)
	}
	if f.MaxFee != nil {
		w.add("adoption_fee <= ?", *f.MaxFee)
	}

	q := `SELECT ` + adoptionColumns + ` FROM adoptions` + w.String() + ` ORDER BY adoption_date DESC, id`
	args := w.args
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	rows, err := r.db.conn().query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanAdoption)
}

func (r *AdoptionRepo) UpdateDetails(ctx context.Context, a adoptions.Adoption) error {
	return r.db.conn().execOne(ctx, `
		UPDATE adoptions SET adoption_fee = ?, notes = ?, updated_at = ? WHERE id = ?
	`, a.Fee, a.Notes, a.UpdatedAt, a.ID)
}

func findAdoption(ctx context.Context, c conn, id string) (adoptions.Adoption, error) {
	a, err := scanAdoption(c.queryRow(ctx, `SELECT `+adoptionColumns+` FROM adoptions WHERE id = ?`, id))
	if err != nil {
		return adoptions.Adoption{}, notFound(err)
	}
	return a, nil
}
