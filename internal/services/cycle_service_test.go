package services

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/terraincognita07/cyclekeeper/internal/models"
)

type cycleRepositoryStub struct {
	cycles    []models.Cycle
	nextID    uint
	createErr error
	saveErr   error
}

func newCycleRepositoryStub() *cycleRepositoryStub {
	return &cycleRepositoryStub{nextID: 1}
}

func (stub *cycleRepositoryStub) FindPredecessor(userID uint, before time.Time) (models.Cycle, bool, error) {
	var best models.Cycle
	found := false
	for _, cycle := range stub.cycles {
		if cycle.UserID != userID || !cycle.StartDate.Before(before) {
			continue
		}
		if !found || cycle.StartDate.After(best.StartDate) {
			best = cycle
			found = true
		}
	}
	return best, found, nil
}

func (stub *cycleRepositoryStub) ListRecentByUser(userID uint, limit int) ([]models.Cycle, error) {
	cycles, _ := stub.ListAllByUser(userID)
	sort.SliceStable(cycles, func(i, j int) bool {
		return cycles[i].StartDate.After(cycles[j].StartDate)
	})
	if len(cycles) > limit {
		cycles = cycles[:limit]
	}
	return cycles, nil
}

func (stub *cycleRepositoryStub) ListAllByUser(userID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	for _, cycle := range stub.cycles {
		if cycle.UserID == userID {
			cycles = append(cycles, cycle)
		}
	}
	return cycles, nil
}

func (stub *cycleRepositoryStub) FindByIDForUser(cycleID uint, userID uint) (models.Cycle, bool, error) {
	for _, cycle := range stub.cycles {
		if cycle.ID == cycleID && cycle.UserID == userID {
			return cycle, true, nil
		}
	}
	return models.Cycle{}, false, nil
}

func (stub *cycleRepositoryStub) Create(cycle *models.Cycle) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	cycle.ID = stub.nextID
	stub.nextID++
	stub.cycles = append(stub.cycles, *cycle)
	return nil
}

func (stub *cycleRepositoryStub) Save(cycle *models.Cycle) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	for index := range stub.cycles {
		if stub.cycles[index].ID == cycle.ID {
			stub.cycles[index] = *cycle
			return nil
		}
	}
	return errors.New("cycle missing")
}

func (stub *cycleRepositoryStub) SaveMetricsBatch(cycles []models.Cycle) error {
	for index := range cycles {
		if err := stub.Save(&cycles[index]); err != nil {
			return err
		}
	}
	return nil
}

type profileRepositoryStub struct {
	profiles map[uint]models.UserCycleProfile
	err      error
}

func (stub *profileRepositoryStub) FindByUser(userID uint) (models.UserCycleProfile, bool, error) {
	if stub.err != nil {
		return models.UserCycleProfile{}, false, stub.err
	}
	profile, ok := stub.profiles[userID]
	if !ok {
		return models.UserCycleProfile{UserID: userID}, false, nil
	}
	return profile, true, nil
}

func newCycleServiceForTest() (*CycleService, *cycleRepositoryStub, *profileRepositoryStub) {
	cycles := newCycleRepositoryStub()
	profiles := &profileRepositoryStub{profiles: map[uint]models.UserCycleProfile{}}
	return NewCycleService(cycles, profiles), cycles, profiles
}

func TestCreateCycleRequiresStartDate(t *testing.T) {
	service, _, _ := newCycleServiceForTest()

	_, err := service.CreateCycle(1, CreateCycleInput{})
	if !errors.Is(err, ErrCycleStartRequired) {
		t.Fatalf("expected ErrCycleStartRequired, got %v", err)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected start date error to classify as invalid input, got %v", err)
	}
}

func TestCreateCycleFirstCycleHasNoCycleLength(t *testing.T) {
	service, _, _ := newCycleServiceForTest()
	start := mustParseDay("2025-01-01")
	end := mustParseDay("2025-01-05")

	cycle, err := service.CreateCycle(1, CreateCycleInput{StartDate: &start, EndDate: &end, Notes: "  first  "})
	if err != nil {
		t.Fatalf("create cycle: %v", err)
	}
	if cycle.CycleLength != nil {
		t.Fatalf("expected no cycle length for first cycle, got %d", *cycle.CycleLength)
	}
	if cycle.PeriodLength == nil || *cycle.PeriodLength != 5 {
		t.Fatalf("expected period length 5, got %v", formatIntPointer(cycle.PeriodLength))
	}
	if cycle.Notes != "first" {
		t.Fatalf("expected trimmed notes, got %q", cycle.Notes)
	}
}

func TestCreateCycleBackfillUsesChronologicalPredecessor(t *testing.T) {
	service, _, _ := newCycleServiceForTest()

	for _, raw := range []string{"2025-01-01", "2025-02-26"} {
		start := mustParseDay(raw)
		if _, err := service.CreateCycle(1, CreateCycleInput{StartDate: &start}); err != nil {
			t.Fatalf("create cycle %s: %v", raw, err)
		}
	}

	backfill := mustParseDay("2025-01-29")
	cycle, err := service.CreateCycle(1, CreateCycleInput{StartDate: &backfill})
	if err != nil {
		t.Fatalf("create backfilled cycle: %v", err)
	}
	if cycle.CycleLength == nil || *cycle.CycleLength != 28 {
		t.Fatalf("expected backfilled cycle length 28, got %v", formatIntPointer(cycle.CycleLength))
	}

	earliest := mustParseDay("2024-12-01")
	first, err := service.CreateCycle(1, CreateCycleInput{StartDate: &earliest})
	if err != nil {
		t.Fatalf("create earliest cycle: %v", err)
	}
	if first.CycleLength != nil {
		t.Fatalf("expected chronologically first cycle to have no cycle length, got %d", *first.CycleLength)
	}
}

func TestCreateCycleIgnoresOtherUsersHistory(t *testing.T) {
	service, _, _ := newCycleServiceForTest()
	other := mustParseDay("2025-01-01")
	if _, err := service.CreateCycle(2, CreateCycleInput{StartDate: &other}); err != nil {
		t.Fatalf("create other user cycle: %v", err)
	}

	start := mustParseDay("2025-01-29")
	cycle, err := service.CreateCycle(1, CreateCycleInput{StartDate: &start})
	if err != nil {
		t.Fatalf("create cycle: %v", err)
	}
	if cycle.CycleLength != nil {
		t.Fatalf("expected no predecessor from another user, got %d", *cycle.CycleLength)
	}
}

func TestCreateCycleWrapsRepositoryFailure(t *testing.T) {
	service, cycles, _ := newCycleServiceForTest()
	cycles.createErr = errors.New("disk full")
	start := mustParseDay("2025-01-01")

	_, err := service.CreateCycle(1, CreateCycleInput{StartDate: &start})
	if !errors.Is(err, ErrCycleCreateFailed) {
		t.Fatalf("expected ErrCycleCreateFailed, got %v", err)
	}
}

func TestUpdateCycleValidation(t *testing.T) {
	service, _, _ := newCycleServiceForTest()
	notes := "x"

	if _, err := service.UpdateCycle(1, UpdateCycleInput{Notes: &notes}); !errors.Is(err, ErrCycleIDRequired) {
		t.Fatalf("expected ErrCycleIDRequired, got %v", err)
	}
	if _, err := service.UpdateCycle(1, UpdateCycleInput{ID: 4}); !errors.Is(err, ErrNoCycleFields) {
		t.Fatalf("expected ErrNoCycleFields, got %v", err)
	}
}

func TestUpdateCycleNotOwnedIsNotFound(t *testing.T) {
	service, _, _ := newCycleServiceForTest()
	start := mustParseDay("2025-01-01")
	cycle, err := service.CreateCycle(2, CreateCycleInput{StartDate: &start})
	if err != nil {
		t.Fatalf("create cycle: %v", err)
	}

	end := mustParseDay("2025-01-04")
	_, err = service.UpdateCycle(1, UpdateCycleInput{ID: cycle.ID, EndDate: &end})
	if !errors.Is(err, ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound, got %v", err)
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Fatal("expected not found to be distinct from invalid input")
	}
}

func TestUpdateCycleClosesCycleAndKeepsCycleLength(t *testing.T) {
	service, _, _ := newCycleServiceForTest()
	for _, raw := range []string{"2025-01-01", "2025-01-29"} {
		start := mustParseDay(raw)
		if _, err := service.CreateCycle(1, CreateCycleInput{StartDate: &start}); err != nil {
			t.Fatalf("create cycle %s: %v", raw, err)
		}
	}

	end := mustParseDay("2025-02-01")
	notes := "closed"
	updated, err := service.UpdateCycle(1, UpdateCycleInput{ID: 2, EndDate: &end, Notes: &notes})
	if err != nil {
		t.Fatalf("update cycle: %v", err)
	}
	if updated.PeriodLength == nil || *updated.PeriodLength != 4 {
		t.Fatalf("expected period length 4, got %v", formatIntPointer(updated.PeriodLength))
	}
	if updated.CycleLength == nil || *updated.CycleLength != 28 {
		t.Fatalf("expected cycle length 28 to be kept, got %v", formatIntPointer(updated.CycleLength))
	}
	if updated.Notes != "closed" {
		t.Fatalf("expected notes closed, got %q", updated.Notes)
	}
}

func TestListCyclesWithPredictionUsesProfileDefaults(t *testing.T) {
	service, _, _ := newCycleServiceForTest()
	today := mustParseDay("2025-03-01")

	cycles, prediction, err := service.ListCyclesWithPrediction(1, 12, today)
	if err != nil {
		t.Fatalf("list cycles: %v", err)
	}
	if len(cycles) != 0 {
		t.Fatalf("expected no cycles, got %d", len(cycles))
	}
	assertDay(t, "next period", prediction.NextPeriod, "2025-03-29")
	if prediction.CurrentPhase != PhaseUnknown {
		t.Fatalf("expected unknown phase, got %s", prediction.CurrentPhase)
	}
}

func TestListCyclesWithPredictionUsesProfileAverages(t *testing.T) {
	service, _, profiles := newCycleServiceForTest()
	cycleLength := 30
	periodLength := 7
	profiles.profiles[1] = models.UserCycleProfile{UserID: 1, AverageCycleLength: &cycleLength, AveragePeriodLength: &periodLength}

	start := mustParseDay("2025-03-01")
	if _, err := service.CreateCycle(1, CreateCycleInput{StartDate: &start}); err != nil {
		t.Fatalf("create cycle: %v", err)
	}

	cycles, prediction, err := service.ListCyclesWithPrediction(1, 12, mustParseDay("2025-03-07"))
	if err != nil {
		t.Fatalf("list cycles: %v", err)
	}
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(cycles))
	}
	assertDay(t, "next period", prediction.NextPeriod, "2025-03-31")
	if prediction.CurrentPhase != PhaseMenstruation {
		t.Fatalf("expected menstruation with 7-day average period, got %s", prediction.CurrentPhase)
	}
}

func TestListCyclesWithPredictionRejectsNonPositiveLimit(t *testing.T) {
	service, _, _ := newCycleServiceForTest()
	if _, _, err := service.ListCyclesWithPrediction(1, 0, time.Now()); !errors.Is(err, ErrInvalidCycleLimit) {
		t.Fatalf("expected ErrInvalidCycleLimit, got %v", err)
	}
}

func TestListCyclesWithPredictionWrapsProfileFailure(t *testing.T) {
	service, _, profiles := newCycleServiceForTest()
	profiles.err = errors.New("boom")
	if _, _, err := service.ListCyclesWithPrediction(1, 12, time.Now()); !errors.Is(err, ErrProfileLoadFailed) {
		t.Fatalf("expected ErrProfileLoadFailed, got %v", err)
	}
}

func TestRecomputeUserHistoryPersistsChangedCycles(t *testing.T) {
	service, cycles, _ := newCycleServiceForTest()
	for _, raw := range []string{"2025-01-01", "2025-02-26"} {
		start := mustParseDay(raw)
		if _, err := service.CreateCycle(1, CreateCycleInput{StartDate: &start}); err != nil {
			t.Fatalf("create cycle %s: %v", raw, err)
		}
	}
	backfill := mustParseDay("2025-01-29")
	if _, err := service.CreateCycle(1, CreateCycleInput{StartDate: &backfill}); err != nil {
		t.Fatalf("create backfilled cycle: %v", err)
	}

	changed, err := service.RecomputeUserHistory(1)
	if err != nil {
		t.Fatalf("recompute history: %v", err)
	}
	if changed != 1 {
		t.Fatalf("expected 1 changed cycle, got %d", changed)
	}

	stored, _, _ := cycles.FindByIDForUser(2, 1)
	if stored.CycleLength == nil || *stored.CycleLength != 28 {
		t.Fatalf("expected successor repaired to 28, got %v", formatIntPointer(stored.CycleLength))
	}

	again, err := service.RecomputeUserHistory(1)
	if err != nil {
		t.Fatalf("recompute history again: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected second recompute to be a no-op, got %d", again)
	}
}
