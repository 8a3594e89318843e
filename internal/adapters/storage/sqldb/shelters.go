package sqldb

import (
	"context"
	"strings"

	"pet-adoption-center/internal/domain/shelters"
)

const shelterColumns = `id, name, address, city, phone, capacity, created_at, updated_at`

func scanShelter(sc scanner) (shelters.Shelter, error) {
	var sh shelters.Shelter
	err := sc.Scan(&sh.ID, &sh.Name, &sh.Address, &sh.City, &sh.Phone, &sh.Capacity, &sh.CreatedAt, &sh.UpdatedAt)
	return sh, err
}

type ShelterRepo struct {
	db *DB
}

func NewShelterRepo(db *DB) *ShelterRepo {
	return &ShelterRepo{db: db}
}

func (r *ShelterRepo) Create(ctx context.Context, sh shelters.Shelter) error {
	return r.db.conn().insert(ctx, `
		INSERT INTO shelters (`+shelterColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sh.ID, sh.Name, sh.Address, sh.City, sh.Phone, sh.Capacity, sh.CreatedAt, sh.UpdatedAt)
}

func (r *ShelterRepo) Update(ctx context.Context, sh shelters.Shelter) error {
	return r.db.conn().execOne(ctx, `
		UPDATE shelters
		SET name = ?, address = ?, city = ?, phone = ?, capacity = ?, updated_at = ?
		WHERE id = ?
	`, sh.Name, sh.Address, sh.City, sh.Phone, sh.Capacity, sh.UpdatedAt, sh.ID)
}

func (r *ShelterRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	return findShelter(ctx, r.db.conn(), strings.TrimSpace(id), false)
}

func (r *ShelterRepo) List(ctx context.Context, filter shelters.ListFilter) ([]shelters.Shelter, error) {
	var w where
	if filter.City != "" {
		w.add("LOWER(city) = LOWER(?)", filter.City)
	}
	rows, err := r.db.conn().query(ctx, `SELECT `+shelterColumns+` FROM shelters`+w.String()+` ORDER BY name, id`, w.args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanShelter)
}

func (r *ShelterRepo) Delete(ctx context.Context, id string) error {
	return r.db.conn().deleteOne(ctx, `DELETE FROM shelters WHERE id = ?`, id)
}

func (r *ShelterRepo) CountPets(ctx context.Context, shelterID string) (int, error) {
	return countPets(ctx, r.db.conn(), shelterID)
}

func findShelter(ctx context.Context, c conn, id string, lock bool) (shelters.Shelter, error) {
	q := `SELECT ` + shelterColumns + ` FROM shelters WHERE id = ?`
	if lock {
		q += c.d.ForUpdate
	}
	sh, err := scanShelter(c.queryRow(ctx, q, id))
	if err != nil {
		return shelters.Shelter{}, notFound(err)
	}
	return sh, nil
}

func countPets(ctx context.Context, c conn, shelterID string) (int, error) {
	return c.count(ctx, `SELECT COUNT(*) FROM pets WHERE shelter_id = ?`, shelterID)
}

// -------------------------
// Staff
// -------------------------

const staffColumns = `id, shelter_id, first_name, last_name, email, role, hire_date, created_at, updated_at`

func scanStaff(sc scanner) (shelters.Staff, error) {
	var st shelters.Staff
	err := sc.Scan(&st.ID, &st.ShelterID, &st.FirstName, &st.LastName, &st.Email, &st.Role, &st.HireDate, &st.CreatedAt, &st.UpdatedAt)
	return st, err
}

type StaffRepo struct {
	db *DB
}

func NewStaffRepo(db *DB) *StaffRepo {
	return &StaffRepo{db: db}
}

func (r *StaffRepo) Create(ctx context.Context, st shelters.Staff) error {
	return r.db.conn().insert(ctx, `
		INSERT INTO staff (`+staffColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, st.ID, st.ShelterID, st.FirstName, st.LastName, st.Email, st.Role, st.HireDate, st.CreatedAt, st.UpdatedAt)
}

func (r *StaffRepo) Update(ctx context.Context, st shelters.Staff) error {
	return r.db.conn().execOne(ctx, `
		UPDATE staff
		SET shelter_id = ?, first_name = ?, last_name = ?, email = ?, role = ?, updated_at = ?
		WHERE id = ?
	`, st.ShelterID, st.FirstName, st.LastName, st.Email, st.Role, st.UpdatedAt, st.ID)
}

func (r *StaffRepo) GetByID(ctx context.Context, id string) (shelters.Staff, error) {
	st, err := scanStaff(r.db.conn().queryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = ?`, id))
	if err != nil {
		return shelters.Staff{}, notFound(err)
	}
	return st, nil
}

func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (shelters.Staff, error) {
	st, err := scanStaff(r.db.conn().queryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE email = ?`, email))
	if err != nil {
		return shelters.Staff{}, notFound(err)
	}
	return st, nil
}

func (r *StaffRepo) List(ctx context.Context, filter shelters.StaffFilter) ([]shelters.Staff, error) {
	var w where
	if filter.ShelterID != "" {
		w.add("shelter_id = ?", filter.ShelterID)
	}
	if filter.Role != "" {
		w.add("LOWER(role) = LOWER(?)", filter.Role)
	}
	rows, err := r.db.conn().query(ctx, `SELECT `+staffColumns+` FROM staff`+w.String()+` ORDER BY last_name, first_name, id`, w.args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanStaff)
}

func (r *StaffRepo) Delete(ctx context.Context, id string) error {
	return r.db.conn().deleteOne(ctx, `DELETE FROM staff WHERE id = ?`, id)
}
