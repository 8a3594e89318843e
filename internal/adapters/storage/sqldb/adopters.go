package sqldb

import (
	"context"

	"pet-adoption-center/internal/domain/adopters"
)

const adopterColumns = `id, first_name, last_name, email, phone, address, housing_type, has_yard, created_at, updated_at`

func scanAdopter(sc scanner) (adopters.Adopter, error) {
	var a adopters.Adopter
	err := sc.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.Address, &a.HousingType, &a.HasYard, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

type AdopterRepo struct {
	db *DB
}

func NewAdopterRepo(db *DB) *AdopterRepo {
	return &AdopterRepo{db: db}
}

func (r *AdopterRepo) Create(ctx context.Context, a adopters.Adopter) error {
	return r.db.conn().insert(ctx, `
		INSERT INTO adopters (`+adopterColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.FirstName, a.LastName, a.Email, a.Phone, a.Address, a.HousingType, a.HasYard, a.CreatedAt, a.UpdatedAt)
}

func (r *AdopterRepo) Update(ctx context.Context, a adopters.Adopter) error {
	return r.db.conn().execOne(ctx, `
		UPDATE adopters
		SET first_name = ?, last_name = ?, email = ?, phone = ?, address = ?,
		    housing_type = ?, has_yard = ?, updated_at = ?
		WHERE id = ?
	`, a.FirstName, a.LastName, a.Email, a.Phone, a.Address, a.HousingType, a.HasYard, a.UpdatedAt, a.ID)
}

func (r *AdopterRepo) GetByID(ctx context.Context, id string) (adopters.Adopter, error) {
	return findAdopter(ctx, r.db.conn(), "id", id)
}

func (r *AdopterRepo) GetByEmail(ctx context.Context, email string) (adopters.Adopter, error) {
	return findAdopter(ctx, r.db.conn(), "email", email)
}

func (r *AdopterRepo) GetByPhone(ctx context.Context, phone string) (adopters.Adopter, error) {
	return findAdopter(ctx, r.db.conn(), "phone", phone)
}

func (r *AdopterRepo) List(ctx context.Context, f adopters.ListFilter) ([]adopters.Adopter, error) {
	var w where
	if f.HousingType != "" {
		w.add("housing_type = ?", f.HousingType)
	}
	if f.HasYard != nil {
		w.add("has_yard = ?", *f.HasYard)
	}
	rows, err := r.db.conn().query(ctx, `SELECT `+adopterColumns+` FROM adopters`+w.String()+` ORDER BY last_name, id`, w.args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanAdopter)
}

// findAdopter: column es una constante interna (id, email, phone).
func findAdopter(ctx context.Context, c conn, column, value string) (adopters.Adopter, error) {
	a, err := scanAdopter(c.queryRow(ctx, `SELECT `+adopterColumns+` FROM adopters WHERE `+column+` = ?`, value))
	if err != nil {
		return adopters.Adopter{}, notFound(err)
	}
	return a, nil
}
