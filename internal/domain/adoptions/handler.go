package adoptions

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

// Processor son las operaciones del workflow sobre adopciones.
type Processor interface {
	ProcessAdoption(ctx context.Context, in ProcessInput) (Adoption, error)
	UpdateAdoptionStatus(ctx context.Context, adoptionID, newStatus string) (Adoption, error)
	DeleteAdoption(ctx context.Context, adoptionID string) (Adoption, error)
}

func RegisterRoutes(r chi.Router, svc *Service, processor Processor) {
	r.Route("/adoptions", func(ar chi.Router) {
		ar.Post("/", processAdoptionHandler(processor))
		ar.Get("/", listAdoptionsHandler(svc))
		ar.Get("/recent", recentAdoptionsHandler(svc))
		ar.Get("/{adoptionID}", getAdoptionHandler(svc))
		ar.Patch("/{adoptionID}", updateAdoptionHandler(svc))
		ar.Patch("/{adoptionID}/status", updateAdoptionStatusHandler(processor))
		ar.Delete("/{adoptionID}", deleteAdoptionHandler(processor))
	})
}

type processAdoptionRequest struct {
	AdopterID    string   `json:"adopter_id"`
	PetID        string   `json:"pet_id"`
	AdoptionFee  *float64 `json:"adoption_fee"`
	Notes        string   `json:"notes"`
	Status       string   `json:"status"`        // opcional
	AdoptionDate string   `json:"adoption_date"` // YYYY-MM-DD opcional
}

type updateAdoptionRequest struct {
	AdoptionFee *float64 `json:"adoption_fee"`
	Notes       *string  `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type adoptionResponse struct {
	ID           string    `json:"id"`
	AdopterID    string    `json:"adopter_id"`
	PetID        string    `json:"pet_id"`
	AdoptionDate time.Time `json:"adoption_date"`
	AdoptionFee  float64   `json:"adoption_fee"`
	Notes        string    `json:"notes,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// processAdoptionHandler godoc
// @Summary Concretar adopción
// @Description Requiere mascota Available y una solicitud Approved del adoptante. Fee entre 0 y 50000.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param payload body processAdoptionRequest true "Adopción"
// @Success 201 {object} adoptionResponse
// @Failure 400 {object} httpjson.ErrorResponse "InvalidInput / FeeOutOfRange / InvalidStatus"
// @Failure 404 {object} httpjson.ErrorResponse "PetNotFound"
// @Failure 409 {object} httpjson.ErrorResponse "PetNotAvailable / NoApprovedApplication / DuplicateActiveAdoption"
// @Router /adoptions [post]
func processAdoptionHandler(processor Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req processAdoptionRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}
		if strings.TrimSpace(req.AdopterID) == "" || strings.TrimSpace(req.PetID) == "" || req.AdoptionFee == nil {
			httpjson.Error(w, r, apperr.InvalidInput("adopter_id, pet_id and adoption_fee are required"))
			return
		}

		var date *time.Time
		if req.AdoptionDate != "" {
			t, err := httpjson.ParseDate(req.AdoptionDate)
			if err != nil {
				httpjson.Error(w, r, apperr.InvalidInput("adoption_date must be YYYY-MM-DD"))
				return
			}
			date = &t
		}

		a, err := processor.ProcessAdoption(r.Context(), ProcessInput{
			AdopterID:    req.AdopterID,
			PetID:        req.PetID,
			Fee:          *req.AdoptionFee,
			Notes:        req.Notes,
			Status:       Status(req.Status),
			AdoptionDate: date,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toAdoptionResponse(a))
	}
}

// listAdoptionsHandler godoc
// @Summary Buscar adopciones
// @Tags adoptions
// @Produce json
// @Param adopter_id query string false "Adoptante"
// @Param pet_id query string false "Mascota"
// @Param status query string false "Completed, Trial Period, Returned, Cancelled"
// @Param from query string false "Desde (YYYY-MM-DD)"
// @Param to query string false "Hasta (YYYY-MM-DD)"
// @Param min_fee query number false "Fee mínimo"
// @Param max_fee query number false "Fee máximo"
// @Param limit query int false "Máximo de resultados"
// @Success 200 {array} adoptionResponse
// @Router /adoptions [get]
func listAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := ListFilter{
			AdopterID: q.Get("adopter_id"),
			PetID:     q.Get("pet_id"),
			Status:    Status(q.Get("status")),
		}

		var err error
		if filter.From, err = httpjson.QueryDate(r, "from"); err != nil {
			httpjson.Error(w, r, err)
			return
		}
		if filter.To, err = httpjson.QueryDate(r, "to"); err != nil {
			httpjson.Error(w, r, err)
			return
		}
		if filter.To != nil {
			// "to" es inclusivo: hasta el final del día
			end := filter.To.Add(24*time.Hour - time.Nanosecond)
			filter.To = &end
		}
		if filter.MinFee, err = httpjson.QueryFloat(r, "min_fee"); err != nil {
			httpjson.Error(w, r, err)
			return
		}
		if filter.MaxFee, err = httpjson.QueryFloat(r, "max_fee"); err != nil {
			httpjson.Error(w, r, err)
			return
		}
		limit, err := httpjson.QueryInt(r, "limit")
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		if limit != nil {
			filter.Limit = *limit
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toAdoptionResponses(items))
	}
}

func recentAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := httpjson.QueryInt(r, "limit")
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		n := 0
		if limit != nil {
			n = *limit
		}
		items, err := svc.Recent(r.Context(), n)
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toAdoptionResponses(items))
	}
}

func getAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "adoptionID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toAdoptionResponse(a))
	}
}

func updateAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAdoptionRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}
		a, err := svc.UpdateDetails(r.Context(), chi.URLParam(r, "adoptionID"), UpdateDetailsInput{
			Fee:   req.AdoptionFee,
			Notes: req.Notes,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toAdoptionResponse(a))
	}
}

// updateAdoptionStatusHandler godoc
// @Summary Cambiar status de una adopción
// @Description Completed / Trial Period dejan la mascota Adopted; Returned / Cancelled la vuelven Available.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param adoptionID path string true "ID de la adopción"
// @Param payload body updateStatusRequest true "Nuevo status"
// @Success 200 {object} adoptionResponse
// @Failure 400 {object} httpjson.ErrorResponse "InvalidStatus"
// @Failure 404 {object} httpjson.ErrorResponse "AdoptionNotFound"
// @Failure 409 {object} httpjson.ErrorResponse "DuplicateActiveAdoption"
// @Router /adoptions/{adoptionID}/status [patch]
func updateAdoptionStatusHandler(processor Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}
		a, err := processor.UpdateAdoptionStatus(r.Context(), chi.URLParam(r, "adoptionID"), req.Status)
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toAdoptionResponse(a))
	}
}

// deleteAdoptionHandler godoc
// @Summary Eliminar adopción
// @Description Solo Returned o Cancelled; una adopción activa responde 409 AdoptionIsActive.
// @Tags adoptions
// @Produce json
// @Param adoptionID path string true "ID de la adopción"
// @Success 200 {object} adoptionResponse
// @Failure 404 {object} httpjson.ErrorResponse "AdoptionNotFound"
// @Failure 409 {object} httpjson.ErrorResponse "AdoptionIsActive"
// @Router /adoptions/{adoptionID} [delete]
func deleteAdoptionHandler(processor Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := processor.DeleteAdoption(r.Context(), chi.URLParam(r, "adoptionID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toAdoptionResponse(a))
	}
}

func toAdoptionResponse(a Adoption) adoptionResponse {
	return adoptionResponse{
		ID:           a.ID,
		AdopterID:    a.AdopterID,
		PetID:        a.PetID,
		AdoptionDate: a.AdoptionDate,
		AdoptionFee:  a.Fee,
		Notes:        a.Notes,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toAdoptionResponses(items []Adoption) []adoptionResponse {
	out := make([]adoptionResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAdoptionResponse(a))
	}
	return out
}
