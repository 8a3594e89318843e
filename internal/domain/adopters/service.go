package adopters

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
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Address     string
	HousingType string
	HasYard     bool
}

// Create valida contacto y unicidad de email/teléfono antes de escribir.
func (s *Service) Create(ctx context.Context, in CreateInput) (Adopter, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return Adopter{}, apperr.InvalidInput("first_name and last_name are required")
	}
	email := normalizeEmail(in.Email)
	phone := normalizePhone(in.Phone)
	if err := contactErr(rules.ValidateContact(email, phone)); err != nil {
		return Adopter{}, err
	}
	housing := HousingType(strings.TrimSpace(in.HousingType))
	if housing != "" && !housing.Valid() {
		return Adopter{}, apperr.InvalidInput("housing_type must be one of House, Apartment, Condo, Other")
	}

	if err := s.ensureContactFree(ctx, email, phone, ""); err != nil {
		return Adopter{}, err
	}

	now := s.now().UTC()
	a := Adopter{
		ID:          uuid.NewString(),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       email,
		Phone:       phone,
		Address:     strings.TrimSpace(in.Address),
		HousingType: housing,
		HasYard:     in.HasYard,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		// carrera entre el chequeo y el insert: lo resuelve el índice único
		if errors.Is(err, storage.ErrConflict) {
			return Adopter{}, apperr.Precondition(apperr.CodeDuplicateEmail, "email or phone already registered")
		}
		return Adopter{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Adopter, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Adopter{}, adopterErr(err)
	}
	return a, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Adopter, error) {
	a, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return Adopter{}, adopterErr(err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Adopter, error) {
	if filter.HousingType != "" && !filter.HousingType.Valid() {
		return nil, apperr.InvalidInput("unknown housing_type")
	}
	return s.repo.List(ctx, filter)
}

type UpdateInput struct {
	// nil = no tocar
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	Address     *string
	HousingType *string
	HasYard     *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Adopter, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Adopter{}, err
	}

	if in.FirstName != nil {
		a.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		a.LastName = strings.TrimSpace(*in.LastName)
	}
	if a.FirstName == "" || a.LastName == "" {
		return Adopter{}, apperr.InvalidInput("first_name and last_name cannot be empty")
	}
	if in.Email != nil {
		a.Email = normalizeEmail(*in.Email)
	}
	if in.Phone != nil {
		a.Phone = normalizePhone(*in.Phone)
	}
	if in.Address != nil {
		a.Address = strings.TrimSpace(*in.Address)
	}
	if in.HousingType != nil {
		h := HousingType(strings.TrimSpace(*in.HousingType))
		if h != "" && !h.Valid() {
			return Adopter{}, apperr.InvalidInput("housing_type must be one of House, Apartment, Condo, Other")
		}
		a.HousingType = h
	}
	if in.HasYard != nil {
		a.HasYard = *in.HasYard
	}

	if err := contactErr(rules.ValidateContact(a.Email, a.Phone)); err != nil {
		return Adopter{}, err
	}
	if err := s.ensureContactFree(ctx, a.Email, a.Phone, a.ID); err != nil {
		return Adopter{}, err
	}

	a.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return Adopter{}, apperr.Precondition(apperr.CodeDuplicateEmail, "email or phone already registered")
		}
		return Adopter{}, adopterErr(err)
	}
	return a, nil
}

// ensureContactFree: email primero, después teléfono. selfID se excluye (update).
func (s *Service) ensureContactFree(ctx context.Context, email, phone, selfID string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return err
	case existing.ID != selfID:
		return apperr.Precondition(apperr.CodeDuplicateEmail, "email already registered")
	}

	existing, err = s.repo.GetByPhone(ctx, phone)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return err
	case existing.ID != selfID:
		return apperr.Precondition(apperr.CodeDuplicatePhone, "phone already registered")
	}
	return nil
}

func contactErr(err error) error {
	if err == nil {
		return nil
	}
	reason, _ := rules.ReasonOf(err)
	code := apperr.CodeInvalidEmailFormat
	if reason == rules.PhoneTooShort {
		code = apperr.CodePhoneTooShort
	}
	return apperr.Validation(code, string(reason), err.Error())
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizePhone deja solo dígitos (y el + inicial), así "555-123-4567"
// y "5551234567" son el mismo teléfono para la unicidad.
func normalizePhone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	if strings.HasPrefix(s, "+") {
		b.WriteByte('+')
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func adopterErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(apperr.CodeAdopterNotFound, "adopter not found")
	}
	return err
}
