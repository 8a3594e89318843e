package reports

import (
	"net/http"

	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/dashboard", dashboardHandler(svc))

		rr.Get("/adoptions/stats", adoptionStatsHandler(svc))
		rr.Get("/adoptions/monthly", monthlyAdoptionsHandler(svc))
		rr.Get("/adoptions/fee-by-species", feeBySpeciesHandler(svc))
		rr.Get("/adoptions/recent", recentAdoptionsHandler(svc))

		rr.Get("/applications/pending", pendingApplicationsHandler(svc))
		rr.Get("/applications/stats", applicationStatsHandler(svc))

		rr.Get("/pets/stats", petStatsHandler(svc))

		rr.Get("/shelters", shelterSummariesHandler(svc))
		rr.Get("/shelters/{shelterID}/occupancy", shelterOccupancyHandler(svc))

		rr.Get("/staff/roles", staffByRoleHandler(svc))

		rr.Get("/adopters/{adopterID}", adopterSummaryHandler(svc))
	})
}

// dashboardHandler godoc
// @Summary Tablero con los agregados principales
// @Tags reports
// @Produce json
// @Success 200 {object} Dashboard
// @Router /reports/dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Dashboard(r.Context())
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, d)
	}
}

// adoptionStatsHandler godoc
// @Summary Estadísticas de adopciones Completed
// @Tags reports
// @Produce json
// @Success 200 {object} AdoptionStats
// @Router /reports/adoptions/stats [get]
func adoptionStatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.AdoptionStats(r.Context())
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, st)
	}
}

// monthlyAdoptionsHandler godoc
// @Summary Adopciones y recaudación por mes
// @Tags reports
// @Produce json
// @Param year query int false "Año (default: año actual)"
// @Success 200 {array} MonthlyAdoptions
// @Failure 400 {object} httpjson.ErrorResponse
// @Router /reports/adoptions/monthly [get]
func monthlyAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := httpjson.QueryInt(r, "year")
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		y := svc.now().UTC().Year()
		if year != nil {
			y = *year
		}

		items, err := svc.MonthlyAdoptions(r.Context(), y)
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, items)
	}
}

func feeBySpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.AverageFeeBySpecies(r.Context())
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, items)
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

		items, err := svc.RecentAdoptions(r.Context(), n)
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, items)
	}
}

// pendingApplicationsHandler godoc
// @Summary Solicitudes pendientes con días de espera
// @Tags reports
// @Produce json
// @Success 200 {array} PendingApplication
// @Router /reports/applications/pending [get]
func pendingApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.PendingApplications(r.Context())
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, items)
	}
}

func applicationStatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ApplicationStats(r.Context())
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, items)
	}
}

func petStatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.PetStats(r.Context())
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, items)
	}
}

func shelterSummariesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ShelterSummaries(r.Context())
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, items)
	}
}

// shelterOccupancyHandler godoc
// @Summary Ocupación de un refugio
// @Tags reports
// @Produce json
// @Param shelterID path string true "ID del refugio"
// @Success 200 {object} ShelterOccupancy
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /reports/shelters/{shelterID}/occupancy [get]
func shelterOccupancyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.ShelterOccupancy(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, o)
	}
}

func staffByRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.StaffByRole(r.Context())
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, items)
	}
}

func adopterSummaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "adopterID")
		if id == "" {
			httpjson.Error(w, r, apperr.InvalidInput("adopter id is required"))
			return
		}
		s, err := svc.AdopterSummary(r.Context(), id)
		if err != nil {
			httpjson.Error(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusOK, s)
	}
}
