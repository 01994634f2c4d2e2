package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"leadmarket_backend/internal/distribution/repository"
	"leadmarket_backend/internal/events"
	"leadmarket_backend/platform/apperr"
	"leadmarket_backend/platform/logger"
)

type fakeRepo struct {
	leads    map[uuid.UUID]repository.Lead
	realtors []repository.Realtor

	leadErr    error
	realtorErr error
	updateErr  error

	assignments map[uuid.UUID]uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		leads:       make(map[uuid.UUID]repository.Lead),
		assignments: make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeRepo) FindLeadByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	if f.leadErr != nil {
		return repository.Lead{}, f.leadErr
	}
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, apperr.NotFound("Lead not found")
	}
	return lead, nil
}

func (f *fakeRepo) FindVerifiedRealtors(_ context.Context) ([]repository.Realtor, error) {
	if f.realtorErr != nil {
		return nil, f.realtorErr
	}
	return f.realtors, nil
}

func (f *fakeRepo) UpdateLeadAgent(_ context.Context, leadID, realtorID uuid.UUID) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.assignments[leadID] = realtorID
	return nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func newTestService(repo repository.Repository) *Service {
	return New(repo, events.NewInMemoryBus(logger.New("test")), logger.New("test"), 0)
}

func verifiedRealtor(name, cities, states, languages string, assigned int) repository.Realtor {
	r := repository.Realtor{
		ID:            uuid.New(),
		Name:          name,
		Email:         name + "@example.com",
		IsVerified:    true,
		AssignedLeads: assigned,
	}
	if cities != "" {
		r.Cities = []string{cities}
	}
	if states != "" {
		r.States = []string{states}
	}
	if languages != "" {
		r.Languages = []string{languages}
	}
	return r
}

func seedLead(repo *fakeRepo, city, zip, language string) uuid.UUID {
	id := uuid.New()
	lead := repository.Lead{ID: id, City: city, ZipCode: zip}
	if language != "" {
		lead.LanguagePreference = &language
	}
	repo.leads[id] = lead
	return id
}

func TestDistributeRanksAndTruncates(t *testing.T) {
	repo := newFakeRepo()
	leadID := seedLead(repo, "Frisco", "75034", "Spanish")

	// 6 realtors in the lead's city, all qualifying; default cap is 5.
	for i := 0; i < 6; i++ {
		repo.realtors = append(repo.realtors, verifiedRealtor("R", "frisco", "TX", "english", i*6))
	}

	svc := newTestService(repo)
	matches, err := svc.Distribute(context.Background(), leadID, Options{})
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}

	if len(matches) != 5 {
		t.Fatalf("got %d matches, want 5 after truncation", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].TotalScore > matches[i-1].TotalScore {
			t.Fatalf("matches not sorted descending at index %d: %d > %d",
				i, matches[i].TotalScore, matches[i-1].TotalScore)
		}
	}
}

func TestDistributeStableOrderForEqualTotals(t *testing.T) {
	repo := newFakeRepo()
	leadID := seedLead(repo, "Frisco", "75034", "Spanish")

	first := verifiedRealtor("First", "frisco", "", "spanish", 0)
	second := verifiedRealtor("Second", "frisco", "", "spanish", 0)
	repo.realtors = []repository.Realtor{first, second}

	svc := newTestService(repo)
	matches, err := svc.Distribute(context.Background(), leadID, Options{})
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}

	if matches[0].RealtorID != first.ID || matches[1].RealtorID != second.ID {
		t.Fatalf("equal totals must keep pool order, got %s then %s",
			matches[0].RealtorName, matches[1].RealtorName)
	}
}

func TestDistributeLeadNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.realtors = []repository.Realtor{verifiedRealtor("R", "frisco", "", "english", 0)}

	svc := newTestService(repo)
	_, err := svc.Distribute(context.Background(), uuid.New(), Options{})
	if err == nil {
		t.Fatal("expected error for missing lead")
	}
	if apperr.UserMessage(err) != "Lead not found" {
		t.Fatalf("error message = %q, want %q", apperr.UserMessage(err), "Lead not found")
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("error kind = %v, want not-found", apperr.GetKind(err))
	}
}

func TestDistributeEmptyPool(t *testing.T) {
	repo := newFakeRepo()
	leadID := seedLead(repo, "Frisco", "75034", "")

	svc := newTestService(repo)
	_, err := svc.Distribute(context.Background(), leadID, Options{})
	if apperr.UserMessage(err) != "No verified realtors available" {
		t.Fatalf("error message = %q, want %q", apperr.UserMessage(err), "No verified realtors available")
	}
}

func TestDistributeNoMatches(t *testing.T) {
	repo := newFakeRepo()
	leadID := seedLead(repo, "Springfield", "99999", "Mandarin")
	// Zero location affinity and a weak total: filtered out.
	repo.realtors = []repository.Realtor{verifiedRealtor("R", "newark", "NJ", "french", 40)}

	svc := newTestService(repo)
	_, err := svc.Distribute(context.Background(), leadID, Options{})
	if apperr.UserMessage(err) != "No matching realtors found" {
		t.Fatalf("error message = %q, want %q", apperr.UserMessage(err), "No matching realtors found")
	}
}

func TestDistributeRepositoryFailureIsGeneric(t *testing.T) {
	repo := newFakeRepo()
	leadID := seedLead(repo, "Frisco", "75034", "")
	repo.realtorErr = errors.New("connection refused: 10.0.0.7:5432")

	svc := newTestService(repo)
	_, err := svc.Distribute(context.Background(), leadID, Options{})
	if apperr.UserMessage(err) != "Failed to distribute lead" {
		t.Fatalf("error message = %q, want generic failure", apperr.UserMessage(err))
	}
}

func TestInclusionFilterBoundary(t *testing.T) {
	repo := newFakeRepo()
	// City misses everything and the state table has no entry, so location
	// stays 0 and inclusion rides purely on the >50 total filter.
	leadID := seedLead(repo, "Springfield", "99999", "Spanish/Catalan")

	// language 30 (direct) + verification 20 + availability 1 = 51: included.
	in := verifiedRealtor("In", "newark", "", "spanish", 40)
	// language 20 (split overlap) + verification 20 + availability 10 = 50:
	// excluded, the filter is strictly greater-than.
	out := verifiedRealtor("Out", "newark", "", "spanish (latam)", 0)
	repo.realtors = []repository.Realtor{in, out}

	svc := newTestService(repo)
	matches, err := svc.Distribute(context.Background(), leadID, Options{})
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("got %d matches, want only the 51-point realtor", len(matches))
	}
	if matches[0].RealtorID != in.ID || matches[0].TotalScore != 51 {
		t.Fatalf("match = %+v, want realtor In with total 51", matches[0])
	}
}

func TestAutoAssignPersistsTopMatch(t *testing.T) {
	repo := newFakeRepo()
	leadID := seedLead(repo, "Frisco", "75034", "Spanish")

	best := verifiedRealtor("Best", "frisco", "TX", "spanish", 0)
	worse := verifiedRealtor("Worse", "frisco", "TX", "english", 25)
	repo.realtors = []repository.Realtor{worse, best}

	svc := newTestService(repo)
	assignment, err := svc.AutoAssign(context.Background(), leadID)
	if err != nil {
		t.Fatalf("auto-assign: %v", err)
	}

	if assignment.AssignedTo != "Best" {
		t.Fatalf("assigned to %q, want %q", assignment.AssignedTo, "Best")
	}
	if repo.assignments[leadID] != best.ID {
		t.Fatalf("persisted agent = %v, want %v", repo.assignments[leadID], best.ID)
	}
}

func TestAutoAssignUpdateFailureIsGeneric(t *testing.T) {
	repo := newFakeRepo()
	leadID := seedLead(repo, "Frisco", "75034", "")
	repo.realtors = []repository.Realtor{verifiedRealtor("R", "frisco", "", "english", 0)}
	repo.updateErr = errors.New("deadlock detected")

	svc := newTestService(repo)
	_, err := svc.AutoAssign(context.Background(), leadID)
	if apperr.UserMessage(err) != "Failed to auto-assign lead" {
		t.Fatalf("error message = %q, want generic auto-assign failure", apperr.UserMessage(err))
	}
}

func TestRecommendationsNeverMutate(t *testing.T) {
	repo := newFakeRepo()
	leadID := seedLead(repo, "Frisco", "75034", "")
	for i := 0; i < 12; i++ {
		repo.realtors = append(repo.realtors, verifiedRealtor("R", "frisco", "", "english", i))
	}

	svc := newTestService(repo)
	matches, err := svc.Recommendations(context.Background(), leadID)
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}

	if len(matches) != 10 {
		t.Fatalf("got %d recommendations, want cap of 10", len(matches))
	}
	if len(repo.assignments) != 0 {
		t.Fatalf("recommendations must not assign, got %d assignments", len(repo.assignments))
	}
}

func TestBatchDistributeIsolatesFailures(t *testing.T) {
	repo := newFakeRepo()
	missing := uuid.New()
	good := seedLead(repo, "Frisco", "75034", "")
	repo.realtors = []repository.Realtor{verifiedRealtor("R", "frisco", "", "english", 0)}

	svc := newTestService(repo)
	results := svc.BatchDistribute(context.Background(), []uuid.UUID{missing, good})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Assigned || results[0].Error != "Lead not found" {
		t.Fatalf("first result = %+v, want unassigned with lead-not-found error", results[0])
	}
	if !results[1].Assigned || results[1].AssignedTo != "R" {
		t.Fatalf("second result = %+v, want assigned to R", results[1])
	}
	if results[0].LeadID != missing.String() || results[1].LeadID != good.String() {
		t.Fatal("results must keep input order")
	}
}

func TestBatchDistributeEmptyInput(t *testing.T) {
	svc := newTestService(newFakeRepo())
	results := svc.BatchDistribute(context.Background(), nil)
	if len(results) != 0 {
		t.Fatalf("got %d results for empty input, want 0", len(results))
	}
}
