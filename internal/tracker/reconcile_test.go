package tracker

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/subpair/habit-tracker/internal/models"
	"github.com/subpair/habit-tracker/internal/storage/sqlite"
	"github.com/subpair/habit-tracker/internal/utils"
)

func setupTestTracker(t *testing.T) (*Tracker, *sqlite.Store) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tr := New(store)
	tr.Today = utils.Date(2025, time.January, 1)
	return tr, store
}

func mustCreate(t *testing.T, tr *Tracker, name string, periodicity, defaultTime int) models.Habit {
	t.Helper()
	h, err := tr.Create(name, "", periodicity, defaultTime)
	if err != nil {
		t.Fatalf("failed to create habit %q: %v", name, err)
	}
	return h
}

func TestCreateSetsFirstDueDate(t *testing.T) {
	tr, store := setupTestTracker(t)

	daily := mustCreate(t, tr, "drink water", 1, 0)
	weekly := mustCreate(t, tr, "clean flat", 7, 30)

	if got, want := daily.NextDueDate, utils.Date(2025, time.January, 2); !got.Equal(want) {
		t.Errorf("daily due date = %v, want %v", got, want)
	}
	if got, want := weekly.NextDueDate, utils.Date(2025, time.January, 8); !got.Equal(want) {
		t.Errorf("weekly due date = %v, want %v", got, want)
	}

	due, err := store.DueDate(daily.ID)
	if err != nil {
		t.Fatalf("failed to read due date: %v", err)
	}
	if !due.Equal(daily.NextDueDate) {
		t.Errorf("stored due date = %v, want %v", due, daily.NextDueDate)
	}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	tr, _ := setupTestTracker(t)
	mustCreate(t, tr, "drink water", 1, 0)

	if _, err := tr.Create("drink water", "", 1, 0); err != ErrDuplicateName {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestReconcileOnTime(t *testing.T) {
	tr, store := setupTestTracker(t)
	h := mustCreate(t, tr, "drink water", 1, 0)

	tr.TravelDays(1)
	res, err := tr.Reconcile(h.ID, tr.Today, true, 10)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if res.Status != StatusNormal {
		t.Errorf("status = %v, want %v", res.Status, StatusNormal)
	}
	if want := utils.Date(2025, time.January, 1); !res.WindowStart.Equal(want) {
		t.Errorf("window start = %v, want %v", res.WindowStart, want)
	}

	due, err := store.DueDate(h.ID)
	if err != nil {
		t.Fatalf("failed to read due date: %v", err)
	}
	if want := utils.Date(2025, time.January, 3); !due.Equal(want) {
		t.Errorf("due date after reconcile = %v, want %v", due, want)
	}

	events, err := store.Events(h.ID)
	if err != nil {
		t.Fatalf("failed to read events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if !e.Completed || e.Time != 10 {
		t.Errorf("event = completed %v time %d, want completed true time 10", e.Completed, e.Time)
	}
	if want := utils.Date(2025, time.January, 1); !e.PeriodicityDate.Equal(want) {
		t.Errorf("event window = %v, want %v", e.PeriodicityDate, want)
	}
}

func TestReconcileTooEarlyWritesNothing(t *testing.T) {
	tr, store := setupTestTracker(t)
	h := mustCreate(t, tr, "drink water", 1, 0)

	// Close the current window, then try again the same day.
	if _, err := tr.Reconcile(h.ID, tr.Today, true, 5); err != nil {
		t.Fatalf("first reconcile failed: %v", err)
	}
	res, err := tr.Reconcile(h.ID, tr.Today, true, 5)
	if err != nil {
		t.Fatalf("second reconcile failed: %v", err)
	}

	if res.Status != StatusTooEarly {
		t.Fatalf("status = %v, want %v", res.Status, StatusTooEarly)
	}
	if want := utils.Date(2025, time.January, 2); !res.WindowStart.Equal(want) {
		t.Errorf("earliest legal date = %v, want %v", res.WindowStart, want)
	}

	events, err := store.Events(h.ID)
	if err != nil {
		t.Fatalf("failed to read events: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("premature attempt wrote an event: got %d events, want 1", len(events))
	}
	due, err := store.DueDate(h.ID)
	if err != nil {
		t.Fatalf("failed to read due date: %v", err)
	}
	if want := utils.Date(2025, time.January, 3); !due.Equal(want) {
		t.Errorf("premature attempt moved the due date: got %v, want %v", due, want)
	}
}

func TestReconcileTooEarlyIsRepeatable(t *testing.T) {
	tr, store := setupTestTracker(t)
	h := mustCreate(t, tr, "drink water", 1, 0)
	if _, err := tr.Reconcile(h.ID, tr.Today, true, 5); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		res, err := tr.Reconcile(h.ID, tr.Today, true, 5)
		if err != nil {
			t.Fatalf("attempt %d failed: %v", i, err)
		}
		if res.Status != StatusTooEarly {
			t.Fatalf("attempt %d status = %v, want %v", i, res.Status, StatusTooEarly)
		}
	}

	events, err := store.Events(h.ID)
	if err != nil {
		t.Fatalf("failed to read events: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("repeated premature attempts changed state: %d events", len(events))
	}
}

func TestReconcileBackfillsMissedWindows(t *testing.T) {
	tr, store := setupTestTracker(t)
	h := mustCreate(t, tr, "drink water", 1, 20)

	// Eight full windows elapse unrecorded before the user returns.
	tr.Today = utils.Date(2025, time.January, 10)
	res, err := tr.Reconcile(h.ID, tr.Today, true, 0)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if res.Status != StatusWithFill {
		t.Fatalf("status = %v, want %v", res.Status, StatusWithFill)
	}
	if len(res.Missed) != 8 {
		t.Fatalf("missed windows = %d, want 8", len(res.Missed))
	}
	for i, d := range res.Missed {
		want := utils.Date(2025, time.January, 1+i)
		if !d.Equal(want) {
			t.Errorf("missed[%d] = %v, want %v", i, d, want)
		}
	}
	if want := utils.Date(2025, time.January, 9); !res.WindowStart.Equal(want) {
		t.Errorf("final window start = %v, want %v", res.WindowStart, want)
	}

	events, err := store.Events(h.ID)
	if err != nil {
		t.Fatalf("failed to read events: %v", err)
	}
	if len(events) != 9 {
		t.Fatalf("expected 9 events (8 fills + 1 outcome), got %d", len(events))
	}
	for i := 0; i < 8; i++ {
		if events[i].Completed {
			t.Errorf("fill event %d marked completed", i)
		}
		if events[i].Time != 0 {
			t.Errorf("fill event %d has time %d, want 0", i, events[i].Time)
		}
	}
	last := events[8]
	if !last.Completed {
		t.Error("final outcome not marked completed")
	}
	if last.Time != 20 {
		t.Errorf("final outcome time = %d, want default time 20", last.Time)
	}

	due, err := store.DueDate(h.ID)
	if err != nil {
		t.Fatalf("failed to read due date: %v", err)
	}
	if want := utils.Date(2025, time.January, 11); !due.Equal(want) {
		t.Errorf("due date after backfill = %v, want %v", due, want)
	}
}

func TestReconcileBoundaryCountsOneMiss(t *testing.T) {
	tr, store := setupTestTracker(t)
	h := mustCreate(t, tr, "drink water", 1, 0)

	// Exactly one periodicity past the due date: one miss, never two.
	tr.Today = utils.Date(2025, time.January, 3)
	res, err := tr.Reconcile(h.ID, tr.Today, true, 5)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if res.Status != StatusWithFill {
		t.Fatalf("status = %v, want %v", res.Status, StatusWithFill)
	}
	if len(res.Missed) != 1 {
		t.Fatalf("missed windows = %d, want exactly 1", len(res.Missed))
	}

	events, err := store.Events(h.ID)
	if err != nil {
		t.Fatalf("failed to read events: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events, got %d", len(events))
	}
}

func TestReconcileWeeklyBackfill(t *testing.T) {
	tr, store := setupTestTracker(t)
	h := mustCreate(t, tr, "clean flat", 7, 30)

	tr.Today = utils.Date(2025, time.January, 22)
	res, err := tr.Reconcile(h.ID, tr.Today, true, 0)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if res.Status != StatusWithFill {
		t.Fatalf("status = %v, want %v", res.Status, StatusWithFill)
	}
	want := []time.Time{
		utils.Date(2025, time.January, 1),
		utils.Date(2025, time.January, 8),
	}
	if len(res.Missed) != len(want) {
		t.Fatalf("missed windows = %d, want %d", len(res.Missed), len(want))
	}
	for i := range want {
		if !res.Missed[i].Equal(want[i]) {
			t.Errorf("missed[%d] = %v, want %v", i, res.Missed[i], want[i])
		}
	}

	due, err := store.DueDate(h.ID)
	if err != nil {
		t.Fatalf("failed to read due date: %v", err)
	}
	if wantDue := utils.Date(2025, time.January, 29); !due.Equal(wantDue) {
		t.Errorf("due date = %v, want %v", due, wantDue)
	}
}

func TestReconcileFailureStoresZeroTime(t *testing.T) {
	tr, store := setupTestTracker(t)
	h := mustCreate(t, tr, "drink water", 1, 20)

	tr.TravelDays(1)
	if _, err := tr.Reconcile(h.ID, tr.Today, false, 45); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	events, err := store.Events(h.ID)
	if err != nil {
		t.Fatalf("failed to read events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Completed {
		t.Error("failed outcome marked completed")
	}
	if events[0].Time != 0 {
		t.Errorf("failed outcome time = %d, want 0", events[0].Time)
	}
}

func TestReconcileZeroMinutesUsesDefaultTime(t *testing.T) {
	tr, store := setupTestTracker(t)
	h := mustCreate(t, tr, "drink water", 1, 25)

	tr.TravelDays(1)
	if _, err := tr.Reconcile(h.ID, tr.Today, true, 0); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	events, err := store.Events(h.ID)
	if err != nil {
		t.Fatalf("failed to read events: %v", err)
	}
	if events[0].Time != 25 {
		t.Errorf("event time = %d, want default 25", events[0].Time)
	}
}
