package sqldb

import (
	"context"
	"strings"

	"pet-adoption-center/internal/domain/pets"
)

const petColumns = `id, shelter_id, name, species, breed, age, gender, color, weight, size, status, created_at, updated_at`

func scanPet(sc scanner) (pets.Pet, error) {
	var p pets.Pet
	err := sc.Scan(
		&p.ID, &p.ShelterID, &p.Name, &p.Species, &p.Breed, &p.Age,
		&p.Gender, &p.Color, &p.Weight, &p.Size, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

type PetRepo struct {
	db *DB
}

func NewPetRepo(db *DB) *PetRepo {
	return &PetRepo{db: db}
}

func (r *PetRepo) Create(ctx context.Context, p pets.Pet) error {
	return r.db.conn().insert(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.ShelterID, p.Name, p.Species, p.Breed, p.Age,
		p.Gender, p.Color, p.Weight, p.Size, p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
}

// Update no toca status ni shelter_id.
func (r *PetRepo) Update(ctx context.Context, p pets.Pet) error {
	return r.db.conn().execOne(ctx, `
		UPDATE pets
		SET name = ?, species = ?, breed = ?, age = ?, gender = ?,
		    color = ?, weight = ?, size = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.Species, p.Breed, p.Age, p.Gender, p.Color, p.Weight, p.Size, p.UpdatedAt, p.ID)
}

func (r *PetRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	return findPet(ctx, r.db.conn(), strings.TrimSpace(id), false)
}

func (r *PetRepo) Search(ctx context.Context, f pets.SearchFilter) ([]pets.Pet, error) {
	var w where
	if f.Species != "" {
		w.add("species = ?", f.Species)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Size != "" {
		w.add("size = ?", f.Size)
	}
	if f.Gender != "" {
		w.add("gender = ?", f.Gender)
	}
	if f.ShelterID != "" {
		w.add("shelter_id = ?", f.ShelterID)
	}
	if f.MinAge != nil {
		w.add("age >= ?", *f.MinAge)
	}
	if f.MaxAge != nil {
		w.add("age <= ?", *f.MaxAge)
	}

	rows, err := r.db.conn().query(ctx, `SELECT `+petColumns+` FROM pets`+w.String()+` ORDER BY created_at, id`, w.args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanPet)
}

func findPet(ctx context.Context, c conn, id string, lock bool) (pets.Pet, error) {
	q := `SELECT ` + petColumns + ` FROM pets WHERE id = ?`
	if lock {
		q += c.d.ForUpdate
	}
	p, err := scanPet(c.queryRow(ctx, q, id))
	if err != nil {
		return pets.Pet{}, notFound(err)
	}
	return p, nil
}
