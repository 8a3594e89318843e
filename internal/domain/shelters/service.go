package shelters

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/domain/rules"
	"pet-adoption-center/internal/ports/storage"

	"github.com/google/uuid"
)

type Service struct {
	repo  Repository
	staff StaffRepository
	now   func() time.Time
}

func NewService(repo Repository, staff StaffRepository) *Service {
	return &Service{
		repo:  repo,
		staff: staff,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name     string
	Address  string
	City     string
	Phone    string
	Capacity int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Shelter, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Shelter{}, apperr.InvalidInput("name is required")
	}
	if in.Capacity <= 0 {
		return Shelter{}, apperr.InvalidInput("capacity must be a positive integer")
	}

	now := s.now().UTC()
	sh := Shelter{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		Phone:     strings.TrimSpace(in.Phone),
		Capacity:  in.Capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, sh); err != nil {
		return Shelter{}, err
	}
	return sh, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Shelter, error) {
	sh, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Shelter{}, shelterErr(err)
	}
	return sh, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Shelter, error) {
	filter.City = strings.TrimSpace(filter.City)
	return s.repo.List(ctx, filter)
}

type UpdateInput struct {
	// nil = no tocar
	Name     *string
	Address  *string
	City     *string
	Phone    *string
	Capacity *int
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Shelter, error) {
	sh, err := s.GetByID(ctx, id)
	if err != nil {
		return Shelter{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Shelter{}, apperr.InvalidInput("name cannot be empty")
		}
		sh.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		sh.Address = strings.TrimSpace(*in.Address)
	}
	if in.City != nil {
		sh.City = strings.TrimSpace(*in.City)
	}
	if in.Phone != nil {
		sh.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Capacity != nil {
		if *in.Capacity <= 0 {
			return Shelter{}, apperr.InvalidInput("capacity must be a positive integer")
		}
		occupied, err := s.repo.CountPets(ctx, sh.ID)
		if err != nil {
			return Shelter{}, err
		}
		if *in.Capacity < occupied {
			return Shelter{}, apperr.InvalidInput("capacity cannot be lower than current occupancy")
		}
		sh.Capacity = *in.Capacity
	}

	sh.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, sh); err != nil {
		return Shelter{}, shelterErr(err)
	}
	return sh, nil
}

func (s *Service) Delete(ctx context.Context, id string) (Shelter, error) {
	sh, err := s.GetByID(ctx, id)
	if err != nil {
		return Shelter{}, err
	}
	if err := s.repo.Delete(ctx, sh.ID); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return Shelter{}, apperr.Conflict(apperr.CodeShelterInUse, "shelter still has pets or staff")
		}
		return Shelter{}, shelterErr(err)
	}
	return sh, nil
}

// Occupancy devuelve mascotas alojadas vs capacidad.
func (s *Service) Occupancy(ctx context.Context, shelterID string) (Occupancy, error) {
	sh, err := s.GetByID(ctx, shelterID)
	if err != nil {
		return Occupancy{}, err
	}
	n, err := s.repo.CountPets(ctx, sh.ID)
	if err != nil {
		return Occupancy{}, err
	}
	return Occupancy{ShelterID: sh.ID, Occupied: n, Capacity: sh.Capacity}, nil
}

// -------------------------
// Staff
// -------------------------

type CreateStaffInput struct {
	ShelterID string
	FirstName string
	LastName  string
	Email     string
	Role      string
	HireDate  *time.Time
}

func (s *Service) CreateStaff(ctx context.Context, in CreateStaffInput) (Staff, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return Staff{}, apperr.InvalidInput("first_name and last_name are required")
	}
	if strings.TrimSpace(in.Role) == "" {
		return Staff{}, apperr.InvalidInput("role is required")
	}
	email := normalizeEmail(in.Email)
	if err := rules.ValidateEmail(email); err != nil {
		return Staff{}, apperr.Validation(apperr.CodeInvalidEmailFormat, string(rules.InvalidEmailFormat), err.Error())
	}
	if _, err := s.GetByID(ctx, in.ShelterID); err != nil {
		return Staff{}, err
	}
	if err := s.ensureStaffEmailFree(ctx, email, ""); err != nil {
		return Staff{}, err
	}

	now := s.now().UTC()
	hire := now
	if in.HireDate != nil {
		hire = in.HireDate.UTC()
	}

	st := Staff{
		ID:        uuid.NewString(),
		ShelterID: strings.TrimSpace(in.ShelterID),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
		Role:      strings.TrimSpace(in.Role),
		HireDate:  hire,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.staff.Create(ctx, st); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return Staff{}, apperr.Precondition(apperr.CodeDuplicateEmail, "email already registered")
		}
		return Staff{}, err
	}
	return st, nil
}

func (s *Service) GetStaff(ctx context.Context, id string) (Staff, error) {
	st, err := s.staff.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Staff{}, staffErr(err)
	}
	return st, nil
}

func (s *Service) ListStaff(ctx context.Context, filter StaffFilter) ([]Staff, error) {
	filter.ShelterID = strings.TrimSpace(filter.ShelterID)
	filter.Role = strings.TrimSpace(filter.Role)
	return s.staff.List(ctx, filter)
}

type UpdateStaffInput struct {
	ShelterID *string
	FirstName *string
	LastName  *string
	Email     *string
	Role      *string
}

func (s *Service) UpdateStaff(ctx context.Context, id string, in UpdateStaffInput) (Staff, error) {
	st, err := s.GetStaff(ctx, id)
	if err != nil {
		return Staff{}, err
	}

	if in.FirstName != nil {
		st.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		st.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Role != nil {
		st.Role = strings.TrimSpace(*in.Role)
	}
	if st.FirstName == "" || st.LastName == "" || st.Role == "" {
		return Staff{}, apperr.InvalidInput("first_name, last_name and role cannot be empty")
	}
	if in.ShelterID != nil {
		if _, err := s.GetByID(ctx, *in.ShelterID); err != nil {
			return Staff{}, err
		}
		st.ShelterID = strings.TrimSpace(*in.ShelterID)
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if err := rules.ValidateEmail(email); err != nil {
			return Staff{}, apperr.Validation(apperr.CodeInvalidEmailFormat, string(rules.InvalidEmailFormat), err.Error())
		}
		if err := s.ensureStaffEmailFree(ctx, email, st.ID); err != nil {
			return Staff{}, err
		}
		st.Email = email
	}

	st.UpdatedAt = s.now().UTC()
	if err := s.staff.Update(ctx, st); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return Staff{}, apperr.Precondition(apperr.CodeDuplicateEmail, "email already registered")
		}
		return Staff{}, staffErr(err)
	}
	return st, nil
}

func (s *Service) DeleteStaff(ctx context.Context, id string) (Staff, error) {
	st, err := s.GetStaff(ctx, id)
	if err != nil {
		return Staff{}, err
	}
	if err := s.staff.Delete(ctx, st.ID); err != nil {
		return Staff{}, staffErr(err)
	}
	return st, nil
}

func (s *Service) ensureStaffEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.staff.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return apperr.Precondition(apperr.CodeDuplicateEmail, "email already registered")
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func shelterErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(apperr.CodeShelterNotFound, "shelter not found")
	}
	return err
}

func staffErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(apperr.CodeStaffNotFound, "staff member not found")
	}
	return err
}
