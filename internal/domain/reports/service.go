// Package reports agrega datos de solo lectura sobre los repositorios.
// Los agregados se calculan en Go para que memory, Postgres y SQLite den
// exactamente los mismos números.
package reports

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/applications"
	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/domain/pets"
	"pet-adoption-center/internal/domain/rules"
	"pet-adoption-center/internal/domain/shelters"
	"pet-adoption-center/internal/ports/storage"

	"golang.org/x/sync/errgroup"
)

const DefaultRecentLimit = 5

type ShelterReader interface {
	GetByID(ctx context.Context, id string) (shelters.Shelter, error)
	List(ctx context.Context, filter shelters.ListFilter) ([]shelters.Shelter, error)
	CountPets(ctx context.Context, shelterID string) (int, error)
}

type StaffReader interface {
	List(ctx context.Context, filter shelters.StaffFilter) ([]shelters.Staff, error)
}

type PetReader interface {
	Search(ctx context.Context, filter pets.SearchFilter) ([]pets.Pet, error)
}

type AdopterReader interface {
	GetByID(ctx context.Context, id string) (adopters.Adopter, error)
	List(ctx context.Context, filter adopters.ListFilter) ([]adopters.Adopter, error)
}

type ApplicationReader interface {
	List(ctx context.Context, filter applications.ListFilter) ([]applications.Application, error)
}

type AdoptionReader interface {
	List(ctx context.Context, filter adoptions.ListFilter) ([]adoptions.Adoption, error)
}

// Sources son los repositorios que lee el servicio. Los repos del
// adapter de storage cumplen estas interfaces directamente.
type Sources struct {
	Shelters     ShelterReader
	Staff        StaffReader
	Pets         PetReader
	Adopters     AdopterReader
	Applications ApplicationReader
	Adoptions    AdoptionReader
}

type Service struct {
	src Sources
	now func() time.Time
}

func NewService(src Sources) *Service {
	return &Service{src: src, now: time.Now}
}

// AdoptionStats: solo cuentan adopciones Completed.
func (s *Service) AdoptionStats(ctx context.Context) (AdoptionStats, error) {
	items, err := s.src.Adoptions.List(ctx, adoptions.ListFilter{Status: adoptions.StatusCompleted})
	if err != nil {
		return AdoptionStats{}, err
	}

	var out AdoptionStats
	seen := make(map[string]struct{})
	for _, a := range items {
		out.TotalAdoptions++
		out.TotalRevenue += a.Fee
		seen[a.AdopterID] = struct{}{}
	}
	out.UniqueAdopters = len(seen)
	if out.TotalAdoptions > 0 {
		out.AverageFee = round2(out.TotalRevenue / float64(out.TotalAdoptions))
	}
	out.TotalRevenue = round2(out.TotalRevenue)
	return out, nil
}

// MonthlyAdoptions devuelve solo los meses con adopciones Completed del año.
func (s *Service) MonthlyAdoptions(ctx context.Context, year int) ([]MonthlyAdoptions, error) {
	if year < 1 || year > 9999 {
		return nil, apperr.InvalidInput("year must be between 1 and 9999")
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0).Add(-time.Nanosecond)
	items, err := s.src.Adoptions.List(ctx, adoptions.ListFilter{
		Status: adoptions.StatusCompleted,
		From:   &from,
		To:     &to,
	})
	if err != nil {
		return nil, err
	}

	var byMonth [12]MonthlyAdoptions
	for _, a := range items {
		m := int(a.AdoptionDate.UTC().Month())
		byMonth[m-1].Count++
		byMonth[m-1].Revenue += a.Fee
	}

	out := make([]MonthlyAdoptions, 0, 12)
	for i, m := range byMonth {
		if m.Count == 0 {
			continue
		}
		out = append(out, MonthlyAdoptions{Month: i + 1, Count: m.Count, Revenue: round2(m.Revenue)})
	}
	return out, nil
}

// PendingApplications: de la más vieja a la más nueva, con días en espera
// (fecha actual - fecha de la solicitud, en días calendario UTC).
func (s *Service) PendingApplications(ctx context.Context) ([]PendingApplication, error) {
	items, err := s.src.Applications.List(ctx, applications.ListFilter{Status: applications.StatusPending})
	if err != nil {
		return nil, err
	}

	today := truncateDay(s.now())
	names := make(map[string]adopters.Adopter)
	out := make([]PendingApplication, 0, len(items))
	for _, app := range items {
		ad, ok := names[app.AdopterID]
		if !ok {
			ad, err = s.src.Adopters.GetByID(ctx, app.AdopterID)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return nil, err
			}
			names[app.AdopterID] = ad
		}

		days := int(today.Sub(truncateDay(app.ApplicationDate)).Hours() / 24)
		if days < 0 {
			days = 0
		}
		out = append(out, PendingApplication{
			ApplicationID:   app.ID,
			AdopterID:       app.AdopterID,
			AdopterName:     fullName(ad.FirstName, ad.LastName),
			AdopterEmail:    ad.Email,
			ApplicationDate: app.ApplicationDate,
			PreferredPetAge: app.PreferredPetAge,
			ExperienceLevel: app.ExperienceLevel,
			DaysPending:     days,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ApplicationDate.Before(out[j].ApplicationDate)
	})
	return out, nil
}

// AverageFeeBySpecies sobre adopciones Completed, ordenado por especie.
func (s *Service) AverageFeeBySpecies(ctx context.Context) ([]SpeciesFee, error) {
	items, err := s.src.Adoptions.List(ctx, adoptions.ListFilter{Status: adoptions.StatusCompleted})
	if err != nil {
		return nil, err
	}
	petsByID, err := s.petIndex(ctx)
	if err != nil {
		return nil, err
	}

	type acc struct {
		n   int
		sum float64
	}
	bySpecies := make(map[string]*acc)
	for _, a := range items {
		p, ok := petsByID[a.PetID]
		if !ok {
			continue
		}
		k := string(p.Species)
		if bySpecies[k] == nil {
			bySpecies[k] = &acc{}
		}
		bySpecies[k].n++
		bySpecies[k].sum += a.Fee
	}

	out := make([]SpeciesFee, 0, len(bySpecies))
	for sp, v := range bySpecies {
		out = append(out, SpeciesFee{Species: sp, Adoptions: v.n, AverageFee: round2(v.sum / float64(v.n))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Species < out[j].Species })
	return out, nil
}

func (s *Service) ShelterOccupancy(ctx context.Context, shelterID string) (ShelterOccupancy, error) {
	sh, err := s.src.Shelters.GetByID(ctx, strings.TrimSpace(shelterID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ShelterOccupancy{}, apperr.NotFound(apperr.CodeShelterNotFound, "shelter not found")
		}
		return ShelterOccupancy{}, err
	}
	housed, err := s.src.Shelters.CountPets(ctx, sh.ID)
	if err != nil {
		return ShelterOccupancy{}, err
	}
	return occupancyOf(sh, housed), nil
}

// ShelterSummaries: ocupación, mascotas disponibles y staff por refugio.
func (s *Service) ShelterSummaries(ctx context.Context) ([]ShelterSummary, error) {
	list, err := s.src.Shelters.List(ctx, shelters.ListFilter{})
	if err != nil {
		return nil, err
	}
	allPets, err := s.src.Pets.Search(ctx, pets.SearchFilter{})
	if err != nil {
		return nil, err
	}
	staff, err := s.src.Staff.List(ctx, shelters.StaffFilter{})
	if err != nil {
		return nil, err
	}

	housed := make(map[string]int)
	available := make(map[string]int)
	for _, p := range allPets {
		housed[p.ShelterID]++
		if p.Status == pets.StatusAvailable {
			available[p.ShelterID]++
		}
	}
	staffCount := make(map[string]int)
	for _, st := range staff {
		staffCount[st.ShelterID]++
	}

	out := make([]ShelterSummary, 0, len(list))
	for _, sh := range list {
		out = append(out, ShelterSummary{
			ShelterOccupancy: occupancyOf(sh, housed[sh.ID]),
			City:             sh.City,
			AvailablePets:    available[sh.ID],
			StaffCount:       staffCount[sh.ID],
		})
	}
	return out, nil
}

var applicationStatuses = []applications.Status{
	applications.StatusPending,
	applications.StatusUnderReview,
	applications.StatusApproved,
	applications.StatusRejected,
}

// ApplicationStats incluye los cuatro status aunque tengan 0.
func (s *Service) ApplicationStats(ctx context.Context) ([]StatusShare, error) {
	items, err := s.src.Applications.List(ctx, applications.ListFilter{})
	if err != nil {
		return nil, err
	}

	counts := make(map[applications.Status]int, len(applicationStatuses))
	for _, a := range items {
		counts[a.Status]++
	}

	out := make([]StatusShare, 0, len(applicationStatuses))
	for _, st := range applicationStatuses {
		share := StatusShare{Status: string(st), Count: counts[st]}
		if len(items) > 0 {
			share.Percentage = round2(float64(share.Count) * 100 / float64(len(items)))
		}
		out = append(out, share)
	}
	return out, nil
}

// PetStats cuenta mascotas por (status, especie).
func (s *Service) PetStats(ctx context.Context) ([]PetStat, error) {
	all, err := s.src.Pets.Search(ctx, pets.SearchFilter{})
	if err != nil {
		return nil, err
	}

	type key struct{ status, species string }
	counts := make(map[key]int)
	for _, p := range all {
		counts[key{string(p.Status), string(p.Species)}]++
	}

	out := make([]PetStat, 0, len(counts))
	for k, n := range counts {
		out = append(out, PetStat{Status: k.status, Species: k.species, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return out[i].Status < out[j].Status
		}
		return out[i].Species < out[j].Species
	})
	return out, nil
}

func (s *Service) StaffByRole(ctx context.Context) ([]RoleCount, error) {
	staff, err := s.src.Staff.List(ctx, shelters.StaffFilter{})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, st := range staff {
		counts[st.Role]++
	}
	out := make([]RoleCount, 0, len(counts))
	for role, n := range counts {
		out = append(out, RoleCount{Role: role, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Role < out[j].Role
	})
	return out, nil
}

// AdopterSummary: datos del adoptante con sus solicitudes y adopciones.
func (s *Service) AdopterSummary(ctx context.Context, adopterID string) (AdopterSummary, error) {
	ad, err := s.src.Adopters.GetByID(ctx, strings.TrimSpace(adopterID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return AdopterSummary{}, apperr.NotFound(apperr.CodeAdopterNotFound, "adopter not found")
		}
		return AdopterSummary{}, err
	}

	apps, err := s.src.Applications.List(ctx, applications.ListFilter{AdopterID: ad.ID})
	if err != nil {
		return AdopterSummary{}, err
	}
	adopted, err := s.src.Adoptions.List(ctx, adoptions.ListFilter{AdopterID: ad.ID})
	if err != nil {
		return AdopterSummary{}, err
	}
	petsByID, err := s.petIndex(ctx)
	if err != nil {
		return AdopterSummary{}, err
	}

	out := AdopterSummary{
		AdopterID:    ad.ID,
		Name:         fullName(ad.FirstName, ad.LastName),
		Email:        ad.Email,
		Phone:        ad.Phone,
		Applications: make([]ApplicationLine, 0, len(apps)),
		Adoptions:    make([]AdoptionLine, 0, len(adopted)),
	}
	for _, a := range apps {
		out.Applications = append(out.Applications, ApplicationLine{ID: a.ID, ApplicationDate: a.ApplicationDate, Status: string(a.Status)})
	}
	for _, a := range adopted {
		if a.Status == adoptions.StatusCompleted {
			out.CompletedAdoptions++
		}
		line := adoptionLine(a, petsByID[a.PetID])
		line.AdopterName = out.Name
		out.Adoptions = append(out.Adoptions, line)
	}
	return out, nil
}

// RecentAdoptions: últimas adopciones Completed con nombre de mascota y adoptante.
func (s *Service) RecentAdoptions(ctx context.Context, limit int) ([]AdoptionLine, error) {
	if limit < 0 {
		return nil, apperr.InvalidInput("limit cannot be negative")
	}
	if limit == 0 {
		limit = DefaultRecentLimit
	}

	items, err := s.src.Adoptions.List(ctx, adoptions.ListFilter{Status: adoptions.StatusCompleted, Limit: limit})
	if err != nil {
		return nil, err
	}
	petsByID, err := s.petIndex(ctx)
	if err != nil {
		return nil, err
	}
	people, err := s.src.Adopters.List(ctx, adopters.ListFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(people))
	for _, ad := range people {
		names[ad.ID] = fullName(ad.FirstName, ad.LastName)
	}

	out := make([]AdoptionLine, 0, len(items))
	for _, a := range items {
		line := adoptionLine(a, petsByID[a.PetID])
		line.AdopterName = names[a.AdopterID]
		out = append(out, line)
	}
	return out, nil
}

// Dashboard corre los agregados en paralelo; el primer error cancela el resto.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Adoptions, err = s.AdoptionStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Applications, err = s.ApplicationStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Pets, err = s.PetStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Shelters, err = s.ShelterSummaries(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Recent, err = s.RecentAdoptions(gctx, DefaultRecentLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

func (s *Service) petIndex(ctx context.Context) (map[string]pets.Pet, error) {
	all, err := s.src.Pets.Search(ctx, pets.SearchFilter{})
	if err != nil {
		return nil, err
	}
	out := make(map[string]pets.Pet, len(all))
	for _, p := range all {
		out[p.ID] = p
	}
	return out, nil
}

func occupancyOf(sh shelters.Shelter, occupied int) ShelterOccupancy {
	o := ShelterOccupancy{
		ShelterID:      sh.ID,
		Name:           sh.Name,
		Capacity:       sh.Capacity,
		Occupied:       occupied,
		AvailableSpace: max(sh.Capacity-occupied, 0),
		AtCapacity:     rules.ValidateCapacity(occupied, sh.Capacity) != nil,
	}
	if sh.Capacity > 0 {
		ratio := float64(occupied) / float64(sh.Capacity)
		o.Rate = round2(ratio)
		o.Percentage = round2(ratio * 100)
	}
	return o
}

func adoptionLine(a adoptions.Adoption, p pets.Pet) AdoptionLine {
	return AdoptionLine{
		ID:           a.ID,
		PetID:        a.PetID,
		PetName:      p.Name,
		Species:      string(p.Species),
		AdopterID:    a.AdopterID,
		AdoptionDate: a.AdoptionDate,
		Fee:          a.Fee,
		Status:       string(a.Status),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
