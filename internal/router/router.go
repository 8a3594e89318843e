package router

import (
	"net/http"

	_ "pet-adoption-center/docs"
	mem "pet-adoption-center/internal/adapters/storage/memory"
	"pet-adoption-center/internal/adapters/storage/sqldb"
	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/applications"
	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/domain/reports"
	"pet-adoption-center/internal/domain/shelters"
	"pet-adoption-center/internal/domain/workflow"
	"pet-adoption-center/internal/middleware"
	"pet-adoption-center/internal/platform/httpjson"
	"pet-adoption-center/internal/platform/logger"
	"pet-adoption-center/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Repositories agrupa los repos de un backend y su workflow.Store.
type Repositories struct {
	Driver string // memory | postgres | sqlite, se informa en /health

	Store        workflow.Store
	Shelters     shelters.Repository
	Staff        shelters.StaffRepository
	Pets         pets.Repository
	Adopters     adopters.Repository
	Applications applications.Repository
	Adoptions    adoptions.Repository
}

func MemoryRepositories() Repositories {
	s := mem.NewStore()
	return Repositories{
		Driver:       "memory",
		Store:        s,
		Shelters:     mem.NewShelterRepo(s),
		Staff:        mem.NewStaffRepo(s),
		Pets:         mem.NewPetRepo(s),
		Adopters:     mem.NewAdopterRepo(s),
		Applications: mem.NewApplicationRepo(s),
		Adoptions:    mem.NewAdoptionRepo(s),
	}
}

// SQLRepositories arma los repos sobre Postgres o SQLite (ya migrados).
func SQLRepositories(db *sqldb.DB) Repositories {
	return Repositories{
		Driver:       db.Dialect().Name,
		Store:        db,
		Shelters:     sqldb.NewShelterRepo(db),
		Staff:        sqldb.NewStaffRepo(db),
		Pets:         sqldb.NewPetRepo(db),
		Adopters:     sqldb.NewAdopterRepo(db),
		Applications: sqldb.NewApplicationRepo(db),
		Adoptions:    sqldb.NewAdoptionRepo(db),
	}
}

type Options struct {
	Logger  logger.Logger    // nil => Nop
	Metrics *metrics.Metrics // nil => sin /metrics

	// Cero => in-memory.
	Repositories Repositories
}

func NewRouter(opts Options) http.Handler {
	repos := opts.Repositories
	if repos.Store == nil {
		repos = MemoryRepositories()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestIDHeader)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.Recover)
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Write(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"storage": repos.Driver,
		})
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Services por módulo
	sheltersSvc := shelters.NewService(repos.Shelters, repos.Staff)
	petsSvc := pets.NewService(repos.Pets, sheltersSvc)
	adoptersSvc := adopters.NewService(repos.Adopters)
	applicationsSvc := applications.NewService(repos.Applications, adoptersSvc)
	adoptionsSvc := adoptions.NewService(repos.Adoptions)
	reportsSvc := reports.NewService(reports.Sources{
		Shelters:     repos.Shelters,
		Staff:        repos.Staff,
		Pets:         repos.Pets,
		Adopters:     repos.Adopters,
		Applications: repos.Applications,
		Adoptions:    repos.Adoptions,
	})

	var recorder workflow.Recorder
	if opts.Metrics != nil {
		recorder = opts.Metrics
	}
	engine := workflow.NewEngine(repos.Store, recorder)

	// Rutas por módulo; el engine cubre las operaciones transaccionales.
	shelters.RegisterRoutes(r, sheltersSvc)
	pets.RegisterRoutes(r, petsSvc, engine)
	adopters.RegisterRoutes(r, adoptersSvc, engine)
	applications.RegisterRoutes(r, applicationsSvc, engine)
	adoptions.RegisterRoutes(r, adoptionsSvc, engine)
	reports.RegisterRoutes(r, reportsSvc)

	return r
}
