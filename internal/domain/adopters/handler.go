package adopters

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

// Remover es el borrado guardado del workflow.
type Remover interface {
	DeleteAdopter(ctx context.Context, adopterID string) (Adopter, error)
}

func RegisterRoutes(r chi.Router, svc *Service, remover Remover) {
	r.Route("/adopters", func(ar chi.Router) {
		ar.Post("/", createAdopterHandler(svc))
		ar.Get("/", listAdoptersHandler(svc))
		ar.Get("/{adopterID}", getAdopterHandler(svc))
		ar.Patch("/{adopterID}", updateAdopterHandler(svc))
		ar.Delete("/{adopterID}", deleteAdopterHandler(remover))
	})
}

type createAdopterRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	HousingType string `json:"housing_type"`
	HasYard     bool   `json:"has_yard"`
}

type updateAdopterRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	HousingType *string `json:"housing_type"`
	HasYard     *bool   `json:"has_yard"`
}

type adopterResponse struct {
	ID          string      `json:"id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
	HousingType HousingType `json:"housing_type"`
	HasYard     bool        `json:"has_yard"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// createAdopterHandler godoc
// @Summary Registrar adoptante
// @Description Email y teléfono se validan y deben ser únicos.
// @Tags adopters
// @Accept json
// @Produce json
// @Param payload body createAdopterRequest true "Datos del adoptante"
// @Success 201 {object} adopterResponse
// @Failure 400 {object} httpjson.ErrorResponse "InvalidEmailFormat / PhoneTooShort"
// @Failure 409 {object} httpjson.ErrorResponse "DuplicateEmail / DuplicatePhone"
// @Router /adopters [post]
func createAdopterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAdopterRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       req.Phone,
			Address:     req.Address,
			HousingType: req.HousingType,
			HasYard:     req.HasYard,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toAdopterResponse(a))
	}
}

func listAdoptersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := ListFilter{HousingType: HousingType(q.Get("housing_type"))}
		if raw := q.Get("has_yard"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				httpjson.Error(w, r, apperr.InvalidInput("has_yard must be true or false"))
				return
			}
			filter.HasYard = &v
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		out := make([]adopterResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAdopterResponse(a))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getAdopterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "adopterID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toAdopterResponse(a))
	}
}

func updateAdopterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAdopterRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "adopterID"), UpdateInput{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       req.Phone,
			Address:     req.Address,
			HousingType: req.HousingType,
			HasYard:     req.HasYard,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toAdopterResponse(a))
	}
}

// deleteAdopterHandler godoc
// @Summary Eliminar adoptante
// @Description 409 AdopterHasCompletedAdoptions (con count) si tiene adopciones completadas.
// @Tags adopters
// @Produce json
// @Param adopterID path string true "ID del adoptante"
// @Success 200 {object} adopterResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Failure 409 {object} httpjson.ErrorResponse
// @Router /adopters/{adopterID} [delete]
func deleteAdopterHandler(remover Remover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := remover.DeleteAdopter(r.Context(), chi.URLParam(r, "adopterID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toAdopterResponse(a))
	}
}

func toAdopterResponse(a Adopter) adopterResponse {
	return adopterResponse{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		Phone:       a.Phone,
		Address:     a.Address,
		HousingType: a.HousingType,
		HasYard:     a.HasYard,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
