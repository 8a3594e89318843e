package adoptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/domain/rules"
	"pet-adoption-center/internal/ports/storage"
)

// DefaultRecentLimit es el tamaño por defecto de Recent.
const DefaultRecentLimit = 10

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

func (s *Service) GetByID(ctx context.Context, id string) (Adoption, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Adoption{}, adoptionErr(err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Adoption, error) {
	if filter.Status != "" {
		if err := rules.ValidateStatusTransition(rules.KindAdoption, "", string(filter.Status)); err != nil {
			return nil, apperr.Validation(apperr.CodeInvalidStatus, string(rules.InvalidStatus), err.Error())
		}
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperr.InvalidInput("from must not be after to")
	}
	if filter.Limit < 0 {
		return nil, apperr.InvalidInput("limit cannot be negative")
	}
	return s.repo.List(ctx, filter)
}

// Recent devuelve las últimas adopciones completadas.
func (s *Service) Recent(ctx context.Context, limit int) ([]Adoption, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.repo.List(ctx, ListFilter{Status: StatusCompleted, Limit: limit})
}

type UpdateDetailsInput struct {
	Fee   *float64
	Notes *string
}

// UpdateDetails edita fee y notas. El status no se toca acá.
func (s *Service) UpdateDetails(ctx context.Context, id string, in UpdateDetailsInput) (Adoption, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Adoption{}, err
	}
	if in.Fee != nil {
		if err := FeeError(rules.ValidateFee(*in.Fee)); err != nil {
			return Adoption{}, err
		}
		a.Fee = *in.Fee
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}

	a.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateDetails(ctx, a); err != nil {
		return Adoption{}, adoptionErr(err)
	}
	return a, nil
}

// FeeError traduce la violación de rules.ValidateFee a FeeOutOfRange.
func FeeError(err error) error {
	if err == nil {
		return nil
	}
	reason, _ := rules.ReasonOf(err)
	return apperr.Validation(apperr.CodeFeeOutOfRange, string(reason), err.Error())
}

func adoptionErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(apperr.CodeAdoptionNotFound, "adoption not found")
	}
	return err
}
