package applications

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/domain/rules"
	"pet-adoption-center/internal/ports/storage"

	"github.com/google/uuid"
)

// AdopterLookup: solo necesitamos saber si el adoptante existe.
type AdopterLookup interface {
	GetByID(ctx context.Context, id string) (adopters.Adopter, error)
}

type Service struct {
	repo     Repository
	adopters AdopterLookup
	now      func() time.Time
}

func NewService(repo Repository, adopters AdopterLookup) *Service {
	return &Service{
		repo:     repo,
		adopters: adopters,
		now:      time.Now,
	}
}

type CreateInput struct {
	AdopterID       string
	ApplicationDate *time.Time // default: hoy
	Status          string     // default: Pending
	PreferredPetAge string
	ExperienceLevel string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Application, error) {
	status := StatusPending
	if raw := strings.TrimSpace(in.Status); raw != "" {
		if err := rules.ValidateStatusTransition(rules.KindApplication, "", raw); err != nil {
			return Application{}, apperr.Validation(apperr.CodeInvalidStatus, string(rules.InvalidStatus), err.Error())
		}
		status = Status(raw)
	}

	ad, err := s.adopters.GetByID(ctx, in.AdopterID)
	if err != nil {
		return Application{}, err
	}

	now := s.now().UTC()
	date := now
	if in.ApplicationDate != nil {
		date = in.ApplicationDate.UTC()
	}

	a := Application{
		ID:              uuid.NewString(),
		AdopterID:       ad.ID,
		ApplicationDate: date,
		Status:          status,
		PreferredPetAge: strings.TrimSpace(in.PreferredPetAge),
		ExperienceLevel: strings.TrimSpace(in.ExperienceLevel),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Application, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Application{}, applicationErr(err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Application, error) {
	if filter.Status != "" {
		if err := rules.ValidateStatusTransition(rules.KindApplication, "", string(filter.Status)); err != nil {
			return nil, apperr.Validation(apperr.CodeInvalidStatus, string(rules.InvalidStatus), err.Error())
		}
	}
	filter.AdopterID = strings.TrimSpace(filter.AdopterID)
	return s.repo.List(ctx, filter)
}

type UpdateDetailsInput struct {
	PreferredPetAge *string
	ExperienceLevel *string
}

func (s *Service) UpdateDetails(ctx context.Context, id string, in UpdateDetailsInput) (Application, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if in.PreferredPetAge != nil {
		a.PreferredPetAge = strings.TrimSpace(*in.PreferredPetAge)
	}
	if in.ExperienceLevel != nil {
		a.ExperienceLevel = strings.TrimSpace(*in.ExperienceLevel)
	}

	a.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, applicationErr(err)
	}
	return a, nil
}

// Delete borra la solicitud. Las adopciones no la referencian, así que no
// hay nada que bloquee el borrado.
func (s *Service) Delete(ctx context.Context, id string) (Application, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if err := s.repo.Delete(ctx, a.ID); err != nil {
		return Application{}, applicationErr(err)
	}
	return a, nil
}

func applicationErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(apperr.CodeApplicationNotFound, "application not found")
	}
	return err
}
