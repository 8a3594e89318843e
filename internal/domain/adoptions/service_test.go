package adoptions

import (
	"context"
	"sort"
	"testing"
	"time"

	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/domain/rules"
	"pet-adoption-center/internal/ports/storage"
)

type testRepo struct {
	byID map[string]Adoption
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Adoption, error) {
	a, ok := r.byID[id]
	if !ok {
		return Adoption{}, storage.ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Adoption, error) {
	out := make([]Adoption, 0)
	for _, a := range r.byID {
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AdoptionDate.After(out[j].AdoptionDate) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *testRepo) UpdateDetails(ctx context.Context, a Adoption) error {
	if _, ok := r.byID[a.ID]; !ok {
		return storage.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func seededService() *Service {
	repo := &testRepo{byID: map[string]Adoption{
		"ad-1": {ID: "ad-1", PetID: "P1", AdopterID: "A1", Fee: 100, Status: StatusCompleted, AdoptionDate: day(1)},
		"ad-2": {ID: "ad-2", PetID: "P2", AdopterID: "A1", Fee: 300, Status: StatusReturned, AdoptionDate: day(2)},
		"ad-3": {ID: "ad-3", PetID: "P3", AdopterID: "A2", Fee: 200, Status: StatusCompleted, AdoptionDate: day(3)},
	}}
	svc := NewService(repo)
	svc.now = func() time.Time { return day(10) }
	return svc
}

func TestStatus_IsActive(t *testing.T) {
	active := map[Status]bool{
		StatusCompleted:   true,
		StatusTrialPeriod: true,
		StatusReturned:    false,
		StatusCancelled:   false,
	}
	for st, want := range active {
		if st.IsActive() != want {
			t.Fatalf("%q: expected active=%v", st, want)
		}
	}
}

func TestService_Recent_OnlyCompletedNewestFirst(t *testing.T) {
	svc := seededService()

	items, err := svc.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 2 || items[0].ID != "ad-3" || items[1].ID != "ad-1" {
		t.Fatalf("unexpected recent adoptions: %+v", items)
	}
}

func TestService_List_FeeRange(t *testing.T) {
	svc := seededService()

	lo, hi := 150.0, 300.0
	items, err := svc.List(context.Background(), ListFilter{MinFee: &lo, MaxFee: &hi})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 adoptions in range, got %d", len(items))
	}
}

func TestService_List_RejectsInvertedDates(t *testing.T) {
	svc := seededService()

	from, to := day(5), day(1)
	_, err := svc.List(context.Background(), ListFilter{From: &from, To: &to})
	if !apperr.Is(err, apperr.CodeInvalidInput) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestService_UpdateDetails_FeeValidated(t *testing.T) {
	svc := seededService()
	ctx := context.Background()

	tooHigh := 60000.0
	_, err := svc.UpdateDetails(ctx, "ad-1", UpdateDetailsInput{Fee: &tooHigh})
	if !apperr.Is(err, apperr.CodeFeeOutOfRange) {
		t.Fatalf("expected FeeOutOfRange, got %v", err)
	}
	if e, _ := apperr.As(err); e.Reason != string(rules.FeeTooHigh) {
		t.Fatalf("expected FeeTooHigh reason, got %q", e.Reason)
	}

	fee, notes := 50000.0, "  vacunado  "
	a, err := svc.UpdateDetails(ctx, "ad-1", UpdateDetailsInput{Fee: &fee, Notes: &notes})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Fee != 50000 || a.Notes != "vacunado" || a.Status != StatusCompleted {
		t.Fatalf("unexpected adoption after update: %+v", a)
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := seededService()

	_, err := svc.GetByID(context.Background(), "nope")
	if !apperr.Is(err, apperr.CodeAdoptionNotFound) {
		t.Fatalf("expected AdoptionNotFound, got %v", err)
	}
}
