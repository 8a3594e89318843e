package shelters

import (
	"net/http"
	"time"

	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/shelters", func(sr chi.Router) {
		sr.Post("/", createShelterHandler(svc))
		sr.Get("/", listSheltersHandler(svc))
		sr.Get("/{shelterID}", getShelterHandler(svc))
		sr.Patch("/{shelterID}", updateShelterHandler(svc))
		sr.Delete("/{shelterID}", deleteShelterHandler(svc))

		// Staff del refugio
		sr.Get("/{shelterID}/staff", listShelterStaffHandler(svc))
	})

	r.Route("/staff", func(st chi.Router) {
		st.Post("/", createStaffHandler(svc))
		st.Get("/", listStaffHandler(svc))
		st.Get("/{staffID}", getStaffHandler(svc))
		st.Patch("/{staffID}", updateStaffHandler(svc))
		st.Delete("/{staffID}", deleteStaffHandler(svc))
	})
}

type createShelterRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
	Capacity int    `json:"capacity"`
}

type updateShelterRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Phone    *string `json:"phone"`
	Capacity *int    `json:"capacity"`
}

type shelterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Phone     string    `json:"phone"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type createStaffRequest struct {
	ShelterID string `json:"shelter_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	HireDate  string `json:"hire_date"` // YYYY-MM-DD opcional
}

type updateStaffRequest struct {
	ShelterID *string `json:"shelter_id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
}

type staffResponse struct {
	ID        string    `json:"id"`
	ShelterID string    `json:"shelter_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	HireDate  time.Time `json:"hire_date"`
}

// createShelterHandler godoc
// @Summary Crear refugio
// @Tags shelters
// @Accept json
// @Produce json
// @Param payload body createShelterRequest true "Datos del refugio; capacity > 0"
// @Success 201 {object} shelterResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Router /shelters [post]
func createShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createShelterRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}

		sh, err := svc.Create(r.Context(), CreateInput{
			Name:     req.Name,
			Address:  req.Address,
			City:     req.City,
			Phone:    req.Phone,
			Capacity: req.Capacity,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toShelterResponse(sh))
	}
}

func listSheltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{City: r.URL.Query().Get("city")})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}

		out := make([]shelterResponse, 0, len(items))
		for _, sh := range items {
			out = append(out, toShelterResponse(sh))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh, err := svc.GetByID(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toShelterResponse(sh))
	}
}

func updateShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateShelterRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}

		sh, err := svc.Update(r.Context(), chi.URLParam(r, "shelterID"), UpdateInput{
			Name:     req.Name,
			Address:  req.Address,
			City:     req.City,
			Phone:    req.Phone,
			Capacity: req.Capacity,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toShelterResponse(sh))
	}
}

func deleteShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh, err := svc.Delete(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toShelterResponse(sh))
	}
}

func listShelterStaffHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh, err := svc.GetByID(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		items, err := svc.ListStaff(r.Context(), StaffFilter{ShelterID: sh.ID})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toStaffResponses(items))
	}
}

func createStaffHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createStaffRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}

		var hire *time.Time
		if req.HireDate != "" {
			t, err := httpjson.ParseDate(req.HireDate)
			if err != nil {
				httpjson.Error(w, r, apperr.InvalidInput("hire_date must be YYYY-MM-DD"))
				return
			}
			hire = &t
		}

		st, err := svc.CreateStaff(r.Context(), CreateStaffInput{
			ShelterID: req.ShelterID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Role:      req.Role,
			HireDate:  hire,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toStaffResponse(st))
	}
}

func listStaffHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.ListStaff(r.Context(), StaffFilter{
			ShelterID: q.Get("shelter_id"),
			Role:      q.Get("role"),
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toStaffResponses(items))
	}
}

func getStaffHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.GetStaff(r.Context(), chi.URLParam(r, "staffID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toStaffResponse(st))
	}
}

func updateStaffHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStaffRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}
		st, err := svc.UpdateStaff(r.Context(), chi.URLParam(r, "staffID"), UpdateStaffInput{
			ShelterID: req.ShelterID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Role:      req.Role,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toStaffResponse(st))
	}
}

func deleteStaffHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.DeleteStaff(r.Context(), chi.URLParam(r, "staffID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toStaffResponse(st))
	}
}

func toShelterResponse(sh Shelter) shelterResponse {
	return shelterResponse{
		ID:        sh.ID,
		Name:      sh.Name,
		Address:   sh.Address,
		City:      sh.City,
		Phone:     sh.Phone,
		Capacity:  sh.Capacity,
		CreatedAt: sh.CreatedAt,
		UpdatedAt: sh.UpdatedAt,
	}
}

func toStaffResponse(st Staff) staffResponse {
	return staffResponse{
		ID:        st.ID,
		ShelterID: st.ShelterID,
		FirstName: st.FirstName,
		LastName:  st.LastName,
		Email:     st.Email,
		Role:      st.Role,
		HireDate:  st.HireDate,
	}
}

func toStaffResponses(items []Staff) []staffResponse {
	out := make([]staffResponse, 0, len(items))
	for _, st := range items {
		out = append(out, toStaffResponse(st))
	}
	return out
}
