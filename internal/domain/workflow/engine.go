// Package workflow es el engine de adopciones: valida precondiciones entre
// entidades y aplica los cambios de status de forma atómica.
package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/applications"
	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/domain/rules"
	"pet-adoption-center/internal/platform/logger"
	"pet-adoption-center/internal/ports/storage"

	"github.com/google/uuid"
)

const (
	OpProcessAdoption         = "process_adoption"
	OpUpdateAdoptionStatus    = "update_adoption_status"
	OpUpdateApplicationStatus = "update_application_status"
	OpDeletePet               = "delete_pet"
	OpDeleteAdopter           = "delete_adopter"
	OpTransferPet             = "transfer_pet"
	OpDeleteAdoption          = "delete_adoption"
)

// Engine no guarda estado entre llamadas; todo pasa por Store.
type Engine struct {
	store   Store
	metrics Recorder
	now     func() time.Time
}

// NewEngine acepta metrics nil.
func NewEngine(store Store, metrics Recorder) *Engine {
	return &Engine{
		store:   store,
		metrics: metrics,
		now:     time.Now,
	}
}

// ProcessAdoption concreta una adopción. Las precondiciones se evalúan en
// orden y la primera que falla gana: mascota existe, está Available, el
// adoptante tiene una solicitud Approved, no hay otra adopción activa y el
// fee está en rango.
func (e *Engine) ProcessAdoption(ctx context.Context, in adoptions.ProcessInput) (adoptions.Adoption, error) {
	var out adoptions.Adoption
	err := e.run(ctx, OpProcessAdoption, func(ctx context.Context, tx Tx) error {
		pet, err := tx.FindPetByID(ctx, strings.TrimSpace(in.PetID))
		if err != nil {
			return notFound(err, apperr.CodePetNotFound, "pet not found")
		}
		if pet.Status != pets.StatusAvailable {
			return apperr.Precondition(apperr.CodePetNotAvailable, "pet is not available for adoption (status "+string(pet.Status)+")")
		}

		app, err := tx.FindApprovedApplicationForAdopter(ctx, strings.TrimSpace(in.AdopterID))
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.Precondition(apperr.CodeNoApprovedApplication, "adopter must have an approved application")
		}
		if err != nil {
			return err
		}

		switch _, err := tx.FindActiveAdoptionForPet(ctx, pet.ID); {
		case err == nil:
			return apperr.Precondition(apperr.CodeDuplicateActiveAdoption, "pet already has an active adoption")
		case !errors.Is(err, storage.ErrNotFound):
			return err
		}

		if err := adoptions.FeeError(rules.ValidateFee(in.Fee)); err != nil {
			return err
		}

		status := adoptions.StatusCompleted
		if in.Status != "" {
			if err := rules.ValidateStatusTransition(rules.KindAdoption, "", string(in.Status)); err != nil || !in.Status.IsActive() {
				return apperr.Validation(apperr.CodeInvalidStatus, string(rules.InvalidStatus),
					"initial adoption status must be Completed or Trial Period")
			}
			status = in.Status
		}

		now := e.now().UTC()
		date := now
		if in.AdoptionDate != nil {
			date = in.AdoptionDate.UTC()
		}

		a := adoptions.Adoption{
			ID:           uuid.NewString(),
			AdopterID:    app.AdopterID,
			PetID:        pet.ID,
			AdoptionDate: date,
			Fee:          in.Fee,
			Notes:        strings.TrimSpace(in.Notes),
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.InsertAdoption(ctx, a); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return apperr.Precondition(apperr.CodeDuplicateActiveAdoption, "pet already has an active adoption")
			}
			return err
		}
		if err := tx.UpdatePetStatus(ctx, pet.ID, pets.StatusAdopted, now); err != nil {
			return err
		}

		out = a
		return nil
	})
	if err != nil {
		return adoptions.Adoption{}, err
	}

	logger.FromContext(ctx).Info("adoption processed", map[string]any{
		"adoption_id": out.ID,
		"pet_id":      out.PetID,
		"adopter_id":  out.AdopterID,
		"status":      string(out.Status),
	})
	return out, nil
}

// UpdateAdoptionStatus persiste el nuevo status y deriva el de la mascota:
// Completed / Trial Period => Adopted; Returned / Cancelled => Available.
// Repetir el mismo status es idempotente.
func (e *Engine) UpdateAdoptionStatus(ctx context.Context, adoptionID, newStatus string) (adoptions.Adoption, error) {
	var out adoptions.Adoption
	err := e.run(ctx, OpUpdateAdoptionStatus, func(ctx context.Context, tx Tx) error {
		a, err := tx.FindAdoptionByID(ctx, strings.TrimSpace(adoptionID))
		if err != nil {
			return notFound(err, apperr.CodeAdoptionNotFound, "adoption not found")
		}
		if err := rules.ValidateStatusTransition(rules.KindAdoption, string(a.Status), newStatus); err != nil {
			return apperr.Validation(apperr.CodeInvalidStatus, string(rules.InvalidStatus), err.Error())
		}
		to := adoptions.Status(newStatus)

		pet, err := tx.FindPetByID(ctx, a.PetID)
		if err != nil {
			return notFound(err, apperr.CodePetNotFound, "pet not found")
		}
		// releer bajo el lock de la mascota
		if a, err = tx.FindAdoptionByID(ctx, a.ID); err != nil {
			return notFound(err, apperr.CodeAdoptionNotFound, "adoption not found")
		}

		other, err := tx.FindActiveAdoptionForPet(ctx, pet.ID)
		otherActive := err == nil && other.ID != a.ID
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		// Returned/Cancelled no son terminales, pero reactivar no puede
		// dejar dos adopciones activas para la misma mascota.
		if to.IsActive() && otherActive {
			return apperr.Precondition(apperr.CodeDuplicateActiveAdoption, "pet already has another active adoption")
		}

		now := e.now().UTC()
		if err := tx.UpdateAdoptionStatus(ctx, a.ID, to, now); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return apperr.Precondition(apperr.CodeDuplicateActiveAdoption, "pet already has another active adoption")
			}
			return err
		}

		petStatus := pets.StatusAvailable
		if to.IsActive() || otherActive {
			petStatus = pets.StatusAdopted
		}
		if err := tx.UpdatePetStatus(ctx, pet.ID, petStatus, now); err != nil {
			return err
		}

		a.Status = to
		a.UpdatedAt = now
		out = a
		return nil
	})
	if err != nil {
		return adoptions.Adoption{}, err
	}

	logger.FromContext(ctx).Info("adoption status updated", map[string]any{
		"adoption_id": out.ID,
		"pet_id":      out.PetID,
		"status":      string(out.Status),
	})
	return out, nil
}

// UpdateApplicationStatus no tiene efectos en cascada.
func (e *Engine) UpdateApplicationStatus(ctx context.Context, applicationID, newStatus string) (applications.Application, error) {
	var out applications.Application
	err := e.run(ctx, OpUpdateApplicationStatus, func(ctx context.Context, tx Tx) error {
		app, err := tx.FindApplicationByID(ctx, strings.TrimSpace(applicationID))
		if err != nil {
			return notFound(err, apperr.CodeApplicationNotFound, "application not found")
		}
		if err := rules.ValidateStatusTransition(rules.KindApplication, string(app.Status), newStatus); err != nil {
			return apperr.Validation(apperr.CodeInvalidStatus, string(rules.InvalidStatus), err.Error())
		}

		now := e.now().UTC()
		if err := tx.UpdateApplicationStatus(ctx, app.ID, applications.Status(newStatus), now); err != nil {
			return err
		}
		app.Status = applications.Status(newStatus)
		app.UpdatedAt = now
		out = app
		return nil
	})
	if err != nil {
		return applications.Application{}, err
	}

	logger.FromContext(ctx).Info("application status updated", map[string]any{
		"application_id": out.ID,
		"adopter_id":     out.AdopterID,
		"status":         string(out.Status),
	})
	return out, nil
}

// DeletePet borra una mascota sin adopción activa junto con su historial
// (adopciones Returned / Cancelled), en la misma transacción.
func (e *Engine) DeletePet(ctx context.Context, petID string) (pets.Pet, error) {
	var out pets.Pet
	err := e.run(ctx, OpDeletePet, func(ctx context.Context, tx Tx) error {
		pet, err := tx.FindPetByID(ctx, strings.TrimSpace(petID))
		if err != nil {
			return notFound(err, apperr.CodePetNotFound, "pet not found")
		}

		switch _, err := tx.FindActiveAdoptionForPet(ctx, pet.ID); {
		case err == nil:
			return apperr.Conflict(apperr.CodePetHasActiveAdoption, "cannot delete a pet with an active adoption")
		case !errors.Is(err, storage.ErrNotFound):
			return err
		}

		if err := tx.DeleteInactiveAdoptionsForPet(ctx, pet.ID); err != nil {
			return err
		}
		if err := tx.DeletePetIfUnreferenced(ctx, pet.ID); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return apperr.Conflict(apperr.CodePetHasAdoptionHistory, "pet is referenced by past adoptions")
			}
			return notFound(err, apperr.CodePetNotFound, "pet not found")
		}
		out = pet
		return nil
	})
	if err != nil {
		return pets.Pet{}, err
	}

	logger.FromContext(ctx).Info("pet deleted", map[string]any{"pet_id": out.ID})
	return out, nil
}

// DeleteAdopter falla con AdopterHasCompletedAdoptions (con Count) si el
// adoptante tiene adopciones completadas. Si no, borra también sus
// solicitudes y adopciones; una adopción en Trial Period devuelve la
// mascota a Available.
func (e *Engine) DeleteAdopter(ctx context.Context, adopterID string) (adopters.Adopter, error) {
	var out adopters.Adopter
	err := e.run(ctx, OpDeleteAdopter, func(ctx context.Context, tx Tx) error {
		ad, err := tx.FindAdopterByID(ctx, strings.TrimSpace(adopterID))
		if err != nil {
			return notFound(err, apperr.CodeAdopterNotFound, "adopter not found")
		}

		n, err := tx.CountCompletedAdoptionsForAdopter(ctx, ad.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			cerr := apperr.Conflict(apperr.CodeAdopterHasCompletedAdoptions, "cannot delete an adopter with completed adoptions")
			cerr.Count = n
			return cerr
		}

		if err := e.releaseAdoptions(ctx, tx, ad.ID); err != nil {
			return err
		}
		if err := tx.DeleteApplicationsForAdopter(ctx, ad.ID); err != nil {
			return err
		}
		if err := tx.DeleteAdopterIfUnreferenced(ctx, ad.ID); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return apperr.Conflict(apperr.CodeAdopterHasReferences, "adopter is referenced by applications or adoptions")
			}
			return notFound(err, apperr.CodeAdopterNotFound, "adopter not found")
		}
		out = ad
		return nil
	})
	if err != nil {
		return adopters.Adopter{}, err
	}

	logger.FromContext(ctx).Info("adopter deleted", map[string]any{"adopter_id": out.ID})
	return out, nil
}

// releaseAdoptions borra las adopciones del adoptante. Se llama después
// del chequeo de completadas, así que las activas son Trial Period.
func (e *Engine) releaseAdoptions(ctx context.Context, tx Tx, adopterID string) error {
	items, err := tx.ListAdoptionsForAdopter(ctx, adopterID)
	if err != nil {
		return err
	}
	now := e.now().UTC()
	for _, a := range items {
		if a.Status.IsActive() {
			if _, err := tx.FindPetByID(ctx, a.PetID); err != nil {
				return notFound(err, apperr.CodePetNotFound, "pet not found")
			}
			if err := tx.UpdatePetStatus(ctx, a.PetID, pets.StatusAvailable, now); err != nil {
				return err
			}
		}
		if err := tx.DeleteAdoption(ctx, a.ID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAdoption borra una adopción Returned o Cancelled. Una activa se
// rechaza con AdoptionIsActive: primero hay que cambiarle el status para
// que la mascota se re-derive.
func (e *Engine) DeleteAdoption(ctx context.Context, adoptionID string) (adoptions.Adoption, error) {
	var out adoptions.Adoption
	err := e.run(ctx, OpDeleteAdoption, func(ctx context.Context, tx Tx) error {
		a, err := tx.FindAdoptionByID(ctx, strings.TrimSpace(adoptionID))
		if err != nil {
			return notFound(err, apperr.CodeAdoptionNotFound, "adoption not found")
		}
		// lock de la mascota: serializa con los cambios de status
		if _, err := tx.FindPetByID(ctx, a.PetID); err != nil {
			return notFound(err, apperr.CodePetNotFound, "pet not found")
		}
		if a, err = tx.FindAdoptionByID(ctx, a.ID); err != nil {
			return notFound(err, apperr.CodeAdoptionNotFound, "adoption not found")
		}
		if a.Status.IsActive() {
			return apperr.Conflict(apperr.CodeAdoptionIsActive, "return or cancel the adoption before deleting it")
		}
		if err := tx.DeleteAdoption(ctx, a.ID); err != nil {
			return notFound(err, apperr.CodeAdoptionNotFound, "adoption not found")
		}
		out = a
		return nil
	})
	if err != nil {
		return adoptions.Adoption{}, err
	}

	logger.FromContext(ctx).Info("adoption deleted", map[string]any{
		"adoption_id": out.ID,
		"pet_id":      out.PetID,
	})
	return out, nil
}

// TransferPet mueve una mascota no adoptada a otro refugio con lugar.
// Transferir al refugio actual no cambia nada.
func (e *Engine) TransferPet(ctx context.Context, petID, newShelterID string) (pets.Pet, error) {
	var out pets.Pet
	err := e.run(ctx, OpTransferPet, func(ctx context.Context, tx Tx) error {
		pet, err := tx.FindPetByID(ctx, strings.TrimSpace(petID))
		if err != nil {
			return notFound(err, apperr.CodePetNotFound, "pet not found")
		}
		if pet.Status == pets.StatusAdopted {
			return apperr.Precondition(apperr.CodePetIsAdopted, "cannot transfer an adopted pet")
		}

		sh, err := tx.FindShelterByID(ctx, strings.TrimSpace(newShelterID))
		if err != nil {
			return notFound(err, apperr.CodeShelterNotFound, "shelter not found")
		}
		if sh.ID == pet.ShelterID {
			out = pet
			return nil
		}

		occupied, err := tx.CountPetsInShelter(ctx, sh.ID)
		if err != nil {
			return err
		}
		if err := rules.ValidateCapacity(occupied, sh.Capacity); err != nil {
			return apperr.Precondition(apperr.CodeTargetShelterAtCapacity, err.Error())
		}

		now := e.now().UTC()
		if err := tx.UpdatePetShelter(ctx, pet.ID, sh.ID, now); err != nil {
			return err
		}
		pet.ShelterID = sh.ID
		pet.UpdatedAt = now
		out = pet
		return nil
	})
	if err != nil {
		return pets.Pet{}, err
	}

	logger.FromContext(ctx).Info("pet transferred", map[string]any{
		"pet_id":     out.ID,
		"shelter_id": out.ShelterID,
	})
	return out, nil
}

// run ejecuta fn en una transacción y registra el resultado.
func (e *Engine) run(ctx context.Context, op string, fn func(ctx context.Context, tx Tx) error) error {
	err := e.store.WithinTx(ctx, fn)

	result := "ok"
	if err != nil {
		result = "error"
		if code := apperr.CodeOf(err); code != "" {
			result = string(code)
			logger.FromContext(ctx).Debug("workflow rejected", map[string]any{
				"operation": op,
				"code":      result,
			})
		}
	}
	if e.metrics != nil {
		e.metrics.ObserveWorkflow(op, result)
	}
	return err
}

// notFound traduce storage.ErrNotFound al code de la entidad.
func notFound(err error, code apperr.Code, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(code, msg)
	}
	return err
}
