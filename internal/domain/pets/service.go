package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/domain/rules"
	"pet-adoption-center/internal/domain/shelters"
	"pet-adoption-center/internal/ports/storage"

	"github.com/google/uuid"
)

// ShelterCapacity evita que pets dependa del Service concreto de shelters.
type ShelterCapacity interface {
	Occupancy(ctx context.Context, shelterID string) (shelters.Occupancy, error)
}

type Service struct {
	repo     Repository
	capacity ShelterCapacity
	now      func() time.Time
}

func NewService(repo Repository, capacity ShelterCapacity) *Service {
	return &Service{
		repo:     repo,
		capacity: capacity,
		now:      time.Now,
	}
}

type CreateInput struct {
	ShelterID string
	Name      string
	Species   string
	Breed     string
	Age       int
	Gender    string
	Color     string
	Weight    float64
	Size      string
	Status    string // opcional: Available (default) o Pending
}

// Create da de alta una mascota en un refugio con lugar disponible.
func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, apperr.InvalidInput("name is required")
	}
	species := Species(strings.TrimSpace(in.Species))
	if !species.Valid() {
		return Pet{}, apperr.InvalidInput("species must be one of Dog, Cat, Bird, Rabbit, Other")
	}
	if in.Age < 0 || in.Weight < 0 {
		return Pet{}, apperr.InvalidInput("age and weight cannot be negative")
	}

	status := StatusAvailable
	if raw := strings.TrimSpace(in.Status); raw != "" {
		if err := rules.ValidateStatusTransition(rules.KindPet, "", raw); err != nil {
			return Pet{}, apperr.Validation(apperr.CodeInvalidStatus, string(rules.InvalidStatus), err.Error())
		}
		// Adopted solo se alcanza vía workflow de adopción.
		if Status(raw) == StatusAdopted {
			return Pet{}, apperr.Validation(apperr.CodeInvalidStatus, string(rules.InvalidStatus), "a new pet cannot start as Adopted")
		}
		status = Status(raw)
	}

	occ, err := s.capacity.Occupancy(ctx, in.ShelterID)
	if err != nil {
		return Pet{}, err
	}
	if err := rules.ValidateCapacity(occ.Occupied, occ.Capacity); err != nil {
		return Pet{}, apperr.Precondition(apperr.CodeShelterAtCapacity, err.Error())
	}

	now := s.now().UTC()
	p := Pet{
		ID:        uuid.NewString(),
		ShelterID: occ.ShelterID,
		Name:      strings.TrimSpace(in.Name),
		Species:   species,
		Breed:     strings.TrimSpace(in.Breed),
		Age:       in.Age,
		Gender:    Gender(strings.TrimSpace(in.Gender)),
		Color:     strings.TrimSpace(in.Color),
		Weight:    in.Weight,
		Size:      Size(strings.TrimSpace(in.Size)),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Pet{}, petErr(err)
	}
	return p, nil
}

func (s *Service) Search(ctx context.Context, filter SearchFilter) ([]Pet, error) {
	if filter.Species != "" && !filter.Species.Valid() {
		return nil, apperr.InvalidInput("unknown species")
	}
	if filter.Status != "" {
		if err := rules.ValidateStatusTransition(rules.KindPet, "", string(filter.Status)); err != nil {
			return nil, apperr.Validation(apperr.CodeInvalidStatus, string(rules.InvalidStatus), err.Error())
		}
	}
	return s.repo.Search(ctx, filter)
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name    *string
	Species *string
	Breed   *string
	Age     *int
	Gender  *string
	Color   *string
	Weight  *float64
	Size    *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, apperr.InvalidInput("name cannot be empty")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		sp := Species(strings.TrimSpace(*in.Species))
		if !sp.Valid() {
			return Pet{}, apperr.InvalidInput("species must be one of Dog, Cat, Bird, Rabbit, Other")
		}
		p.Species = sp
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, apperr.InvalidInput("age cannot be negative")
		}
		p.Age = *in.Age
	}
	if in.Gender != nil {
		p.Gender = Gender(strings.TrimSpace(*in.Gender))
	}
	if in.Color != nil {
		p.Color = strings.TrimSpace(*in.Color)
	}
	if in.Weight != nil {
		if *in.Weight < 0 {
			return Pet{}, apperr.InvalidInput("weight cannot be negative")
		}
		p.Weight = *in.Weight
	}
	if in.Size != nil {
		p.Size = Size(strings.TrimSpace(*in.Size))
	}

	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, petErr(err)
	}
	return p, nil
}

func petErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(apperr.CodePetNotFound, "pet not found")
	}
	return err
}
