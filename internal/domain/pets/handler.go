package pets

import (
	"context"
	"net/http"
	"time"

	"pet-adoption-center/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

// Lifecycle son las operaciones del workflow que tocan mascotas.
// Se define acá para no importar el paquete workflow (rompe ciclos).
type Lifecycle interface {
	DeletePet(ctx context.Context, petID string) (Pet, error)
	TransferPet(ctx context.Context, petID, newShelterID string) (Pet, error)
}

func RegisterRoutes(r chi.Router, svc *Service, lifecycle Lifecycle) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", searchPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))

		// Workflow
		pr.Delete("/{petID}", deletePetHandler(lifecycle))
		pr.Post("/{petID}/transfer", transferPetHandler(lifecycle))
	})
}

type createPetRequest struct {
	ShelterID string  `json:"shelter_id"`
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Breed     string  `json:"breed"`
	Age       int     `json:"age"`
	Gender    string  `json:"gender"`
	Color     string  `json:"color"`
	Weight    float64 `json:"weight"`
	Size      string  `json:"size"`
	Status    string  `json:"status"` // opcional
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar. status no es editable acá.
	Name    *string  `json:"name"`
	Species *string  `json:"species"`
	Breed   *string  `json:"breed"`
	Age     *int     `json:"age"`
	Gender  *string  `json:"gender"`
	Color   *string  `json:"color"`
	Weight  *float64 `json:"weight"`
	Size    *string  `json:"size"`
}

type transferPetRequest struct {
	ShelterID string `json:"shelter_id"`
}

type petResponse struct {
	ID        string    `json:"id"`
	ShelterID string    `json:"shelter_id"`
	Name      string    `json:"name"`
	Species   Species   `json:"species"`
	Breed     string    `json:"breed"`
	Age       int       `json:"age"`
	Gender    Gender    `json:"gender"`
	Color     string    `json:"color"`
	Weight    float64   `json:"weight"`
	Size      Size      `json:"size"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota en un refugio
// @Description Falla con 409 ShelterAtCapacity si el refugio está lleno.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse "shelter not found"
// @Failure 409 {object} httpjson.ErrorResponse "ShelterAtCapacity"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			ShelterID: req.ShelterID,
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Age:       req.Age,
			Gender:    req.Gender,
			Color:     req.Color,
			Weight:    req.Weight,
			Size:      req.Size,
			Status:    req.Status,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, toPetResponse(p))
	}
}

// searchPetsHandler godoc
// @Summary Buscar mascotas
// @Tags pets
// @Produce json
// @Param species query string false "Dog, Cat, Bird, Rabbit, Other"
// @Param status query string false "Available, Pending, Adopted"
// @Param size query string false "Small, Medium, Large"
// @Param gender query string false "Male, Female"
// @Param shelter_id query string false "ID del refugio"
// @Param min_age query int false "Edad mínima"
// @Param max_age query int false "Edad máxima"
// @Success 200 {array} petResponse
// @Router /pets [get]
func searchPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		minAge, err := httpjson.QueryInt(r, "min_age")
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		maxAge, err := httpjson.QueryInt(r, "max_age")
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}

		items, err := svc.Search(r.Context(), SearchFilter{
			Species:   Species(q.Get("species")),
			Status:    Status(q.Get("status")),
			Size:      Size(q.Get("size")),
			Gender:    Gender(q.Get("gender")),
			ShelterID: q.Get("shelter_id"),
			MinAge:    minAge,
			MaxAge:    maxAge,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), UpdateProfileInput{
			Name:    req.Name,
			Species: req.Species,
			Breed:   req.Breed,
			Age:     req.Age,
			Gender:  req.Gender,
			Color:   req.Color,
			Weight:  req.Weight,
			Size:    req.Size,
		})
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Description Bloqueado (409 PetHasActiveAdoption) si la mascota tiene una adopción activa.
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Failure 409 {object} httpjson.ErrorResponse
// @Router /pets/{petID} [delete]
func deletePetHandler(lifecycle Lifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := lifecycle.DeletePet(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPetResponse(p))
	}
}

// transferPetHandler godoc
// @Summary Transferir mascota a otro refugio
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body transferPetRequest true "Refugio destino"
// @Success 200 {object} petResponse
// @Failure 404 {object} httpjson.ErrorResponse "PetNotFound / ShelterNotFound"
// @Failure 409 {object} httpjson.ErrorResponse "PetIsAdopted / TargetShelterAtCapacity"
// @Router /pets/{petID}/transfer [post]
func transferPetHandler(lifecycle Lifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transferPetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, r, err)
			return
		}

		p, err := lifecycle.TransferPet(r.Context(), chi.URLParam(r, "petID"), req.ShelterID)
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		ShelterID: p.ShelterID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Age:       p.Age,
		Gender:    p.Gender,
		Color:     p.Color,
		Weight:    p.Weight,
		Size:      p.Size,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
