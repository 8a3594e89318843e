package applications

import (
	"context"
	"net/http"
	"time"

	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

// StatusUpdater lo implementa el workflow engine.
type StatusUpdater interface {
	UpdateApplicationStatus(ctx context.Context, applicationID, newStatus string) (Application, error)
}

func RegisterRoutes(r chi.Router, svc *Service, updater StatusUpdater) {
	r.Route("/applications", func(ar chi.Router) {
		ar.Post("/", createApplicationHandler(svc))
		ar.Get("/", listApplicationsHandler(svc))
		ar.Get("/{applicationID}", getApplicationHandler(svc))
		ar.Patch("/{applicationID}", updateApplicationHandler(svc))
		ar.Delete("/{applicationID}", deleteApplicationHandler(svc))

		// Workflow
		ar.Patch("/{applicationID}/status", updateApplicationStatusHandler(updater))
	})
}

type createApplicationRequest struct {
	AdopterID       string `json:"adopter_id"`
	ApplicationDate string `json:"application_date"` // YYYY-MM-DD opcional
	Status          string `json:"status"`           // opcional, default Pending
	PreferredPetAge string `json:"preferred_pet_age"`
	ExperienceLevel string `json:"experience_level"`
}

type updateApplicationRequest struct {
	PreferredPetAge *string `json:"preferred_pet_age"`
	ExperienceLevel *string `json:"experience_level"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type applicationResponse struct {
	ID              string    `json:"id"`
	AdopterID       string    `json:"adopter_id"`
	ApplicationDate time.Time `json:"application_date"`
	Status          Status    `json:"status"`
	PreferredPetAge string    `json:"preferred_pet_age,omitempty"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// createApplicationHandler godoc
// @Summary Crear solicitud de adopción
// @Tags applications
// @Accept json
// @Produce json
// @Param payload body createApplicationRequest true "Solicitud"
// @Success 201 {object} applicationResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse "AdopterNotFound"
// @Router /applications [post]
func createApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createApplicationRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}

		var date *time.Time
		if req.ApplicationDate != "" {
			t, err := httpjson.ParseDate(req.ApplicationDate)
			if err != nil {
				httpjson.Error(w, r, apperr.InvalidInput("application_date must be YYYY-MM-DD"))
				return
			}
			date = &t
		}

		a, err := svc.Create(r.Context(), CreateInput{
			AdopterID:       req.AdopterID,
			ApplicationDate: date,
			Status:          req.Status,
			PreferredPetAge: req.PreferredPetAge,
			ExperienceLevel: req.ExperienceLevel,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toApplicationResponse(a))
	}
}

// listApplicationsHandler godoc
// @Summary Listar solicitudes
// @Tags applications
// @Produce json
// @Param adopter_id query string false "Filtrar por adoptante"
// @Param status query string false "Pending, Approved, Rejected, Under Review"
// @Success 200 {array} applicationResponse
// @Router /applications [get]
func listApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListFilter{
			AdopterID: q.Get("adopter_id"),
			Status:    Status(q.Get("status")),
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toApplicationResponse(a))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "applicationID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toApplicationResponse(a))
	}
}

func deleteApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Delete(r.Context(), chi.URLParam(r, "applicationID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toApplicationResponse(a))
	}
}

func updateApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateApplicationRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}
		a, err := svc.UpdateDetails(r.Context(), chi.URLParam(r, "applicationID"), UpdateDetailsInput{
			PreferredPetAge: req.PreferredPetAge,
			ExperienceLevel: req.ExperienceLevel,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toApplicationResponse(a))
	}
}

// updateApplicationStatusHandler godoc
// @Summary Cambiar status de una solicitud
// @Tags applications
// @Accept json
// @Produce json
// @Param applicationID path string true "ID de la solicitud"
// @Param payload body updateStatusRequest true "Nuevo status"
// @Success 200 {object} applicationResponse
// @Failure 400 {object} httpjson.ErrorResponse "InvalidStatus"
// @Failure 404 {object} httpjson.ErrorResponse "ApplicationNotFound"
// @Router /applications/{applicationID}/status [patch]
func updateApplicationStatusHandler(updater StatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}
		a, err := updater.UpdateApplicationStatus(r.Context(), chi.URLParam(r, "applicationID"), req.Status)
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toApplicationResponse(a))
	}
}

func toApplicationResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:              a.ID,
		AdopterID:       a.AdopterID,
		ApplicationDate: a.ApplicationDate,
		Status:          a.Status,
		PreferredPetAge: a.PreferredPetAge,
		ExperienceLevel: a.ExperienceLevel,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
