package app_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"labelscanner/internal/app"
	"labelscanner/internal/domain"
)

// storeBackedFoodRepo is a map-backed mock for the flows that need real
// delete/restore state.
func storeBackedFoodRepo(entries map[string]domain.LogEntry) *mockFoodLogRepo {
	n := 0
	return &mockFoodLogRepo{
		addFn: func(_ context.Context, e domain.LogEntry) (string, error) {
			n++
			e.ID = "gen-" + string(rune('a'+n))
			entries[e.ID] = e
			return e.ID, nil
		},
		putFn: func(_ context.Context, e domain.LogEntry) error {
			entries[e.ID] = e
			return nil
		},
		getFn: func(_ context.Context, _ int64, id string) (*domain.LogEntry, error) {
			if e, ok := entries[id]; ok {
				return &e, nil
			}
			return nil, nil
		},
		deleteFn: func(_ context.Context, _ int64, id string) error {
			delete(entries, id)
			return nil
		},
		listFn: func(_ context.Context, _ int64) ([]domain.LogEntry, error) {
			out := make([]domain.LogEntry, 0, len(entries))
			for _, e := range entries {
				out = append(out, e)
			}
			return out, nil
		},
	}
}

func newLogService(food *mockFoodLogRepo, totals *mockTotalsRepo, window time.Duration) *app.LogService {
	ts := app.NewTotalsService(food, &mockWaterLogRepo{}, totals)
	return app.NewLogService(food, ts, nil, window)
}

func TestCreate_MissingName(t *testing.T) {
	svc := newLogService(&mockFoodLogRepo{}, &mockTotalsRepo{}, time.Second)
	_, err := svc.Create(context.Background(), domain.LogEntry{Calories: 100})
	if err != app.ErrMissingName {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

func TestCreate_DefaultsAndRecalc(t *testing.T) {
	var recalcDate string
	totals := &mockTotalsRepo{
		putFn: func(_ context.Context, _ int64, dt domain.DailyTotals) error {
			recalcDate = dt.Date
			return nil
		},
	}
	entries := map[string]domain.LogEntry{}
	svc := newLogService(storeBackedFoodRepo(entries), totals, time.Second)

	got, err := svc.Create(context.Background(), domain.LogEntry{UserID: 1, ProductName: "Oats", Calories: 389})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == "" {
		t.Error("expected generated id")
	}
	if got.Portions != 1 {
		t.Errorf("expected portions defaulted to 1, got %v", got.Portions)
	}
	if got.Timestamp == 0 {
		t.Error("expected timestamp defaulted to now")
	}
	if recalcDate != domain.DayKey(got.Timestamp) {
		t.Errorf("expected totals recomputed for %s, got %s", domain.DayKey(got.Timestamp), recalcDate)
	}
}

func TestCreate_ManualSkipsHabits(t *testing.T) {
	habitPuts := 0
	habits := app.NewHabitService(&mockHabitRepo{
		putFn: func(_ context.Context, _ int64, _ domain.HabitStats) error {
			habitPuts++
			return nil
		},
	}, &mockTotalsRepo{}, &mockSettingsRepo{})

	food := &mockFoodLogRepo{}
	ts := app.NewTotalsService(food, &mockWaterLogRepo{}, &mockTotalsRepo{})
	svc := app.NewLogService(food, ts, habits, time.Second)

	_, err := svc.Create(context.Background(), domain.LogEntry{UserID: 1, ProductName: "Homemade dal", Manual: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if habitPuts != 0 {
		t.Errorf("manual entry advanced habit stats %d times", habitPuts)
	}

	_, err = svc.Create(context.Background(), domain.LogEntry{UserID: 1, ProductName: "Granola"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if habitPuts != 1 {
		t.Errorf("scan entry should advance habit stats once, got %d", habitPuts)
	}
}

func TestCreate_HabitFailureDoesNotFailSave(t *testing.T) {
	habits := app.NewHabitService(&mockHabitRepo{
		getFn: func(_ context.Context, _ int64) (*domain.HabitStats, error) {
			return nil, context.DeadlineExceeded
		},
	}, &mockTotalsRepo{}, &mockSettingsRepo{})

	food := &mockFoodLogRepo{}
	ts := app.NewTotalsService(food, &mockWaterLogRepo{}, &mockTotalsRepo{})
	svc := app.NewLogService(food, ts, habits, time.Second)

	got, err := svc.Create(context.Background(), domain.LogEntry{UserID: 1, ProductName: "Granola"})
	if err != nil {
		t.Fatalf("save must survive a habit update failure, got %v", err)
	}
	if got == nil {
		t.Fatal("expected saved entry")
	}
}

func TestUpdate_RescalePortions(t *testing.T) {
	now := time.Now().UnixMilli()
	entries := map[string]domain.LogEntry{
		"log-1": {ID: "log-1", UserID: 1, ProductName: "Oats", Timestamp: now,
			Calories: 200, Protein: 10.4, Carbohydrates: 30, TotalFat: 8.2, Portions: 2},
	}
	svc := newLogService(storeBackedFoodRepo(entries), &mockTotalsRepo{}, time.Second)

	portions := 3.0
	got, err := svc.Update(context.Background(), 1, "log-1", app.LogPatch{Portions: &portions})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Calories != 300 {
		t.Errorf("expected calories 300, got %v", got.Calories)
	}
	if got.Protein != 15.6 {
		t.Errorf("expected protein 15.6, got %v", got.Protein)
	}
	if got.Carbohydrates != 45 {
		t.Errorf("expected carbs 45, got %v", got.Carbohydrates)
	}
	if got.TotalFat != 12.3 {
		t.Errorf("expected fat 12.3, got %v", got.TotalFat)
	}
	if got.Portions != 3 {
		t.Errorf("expected portions 3, got %v", got.Portions)
	}
	if entries["log-1"].Calories != 300 {
		t.Error("expected rescaled entry persisted")
	}
}

func TestUpdate_DayChangeRecomputesNewDayOnly(t *testing.T) {
	now := time.Now().UnixMilli()
	yesterday := now - domain.DayMillis

	entries := map[string]domain.LogEntry{
		"log-1": {ID: "log-1", UserID: 1, ProductName: "Oats", Timestamp: now, Calories: 200, Portions: 1},
	}

	var recalcDates []string
	totals := &mockTotalsRepo{
		putFn: func(_ context.Context, _ int64, dt domain.DailyTotals) error {
			recalcDates = append(recalcDates, dt.Date)
			return nil
		},
	}
	svc := newLogService(storeBackedFoodRepo(entries), totals, time.Second)

	_, err := svc.Update(context.Background(), 1, "log-1", app.LogPatch{Timestamp: &yesterday})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(recalcDates) != 1 {
		t.Fatalf("expected exactly one recompute, got %v", recalcDates)
	}
	if recalcDates[0] != domain.DayKey(yesterday) {
		t.Errorf("expected recompute for the new day %s, got %s", domain.DayKey(yesterday), recalcDates[0])
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newLogService(&mockFoodLogRepo{}, &mockTotalsRepo{}, time.Second)
	name := "Renamed"
	_, err := svc.Update(context.Background(), 1, "missing", app.LogPatch{ProductName: &name})
	if err != app.ErrLogNotFound {
		t.Fatalf("expected ErrLogNotFound, got %v", err)
	}
}

func TestDeleteUndo_RoundTrip(t *testing.T) {
	now := time.Now().UnixMilli()
	entries := map[string]domain.LogEntry{
		"log-1": {ID: "log-1", UserID: 1, ProductName: "Oats", Timestamp: now,
			Calories: 389, Protein: 16.9, Sugar: domain.Sugar{LabelSugar: 1.1}, Portions: 2},
	}
	original := entries["log-1"]

	svc := newLogService(storeBackedFoodRepo(entries), &mockTotalsRepo{}, time.Second)

	if err := svc.Delete(context.Background(), 1, "log-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := entries["log-1"]; ok {
		t.Fatal("expected entry removed from store")
	}

	restored, err := svc.Undo(context.Background(), 1)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !reflect.DeepEqual(*restored, original) {
		t.Errorf("restored entry diverges from original:\n got %+v\nwant %+v", *restored, original)
	}
	if stored, ok := entries["log-1"]; !ok || !reflect.DeepEqual(stored, original) {
		t.Error("expected entry restored at its original id")
	}
}

func TestUndo_NothingPending(t *testing.T) {
	svc := newLogService(&mockFoodLogRepo{}, &mockTotalsRepo{}, time.Second)
	_, err := svc.Undo(context.Background(), 1)
	if err != app.ErrNothingToUndo {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestUndo_WindowExpired(t *testing.T) {
	now := time.Now().UnixMilli()
	entries := map[string]domain.LogEntry{
		"log-1": {ID: "log-1", UserID: 1, ProductName: "Oats", Timestamp: now, Portions: 1},
	}
	svc := newLogService(storeBackedFoodRepo(entries), &mockTotalsRepo{}, 10*time.Millisecond)

	if err := svc.Delete(context.Background(), 1, "log-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	_, err := svc.Undo(context.Background(), 1)
	if err != app.ErrNothingToUndo {
		t.Fatalf("expected ErrNothingToUndo after window elapsed, got %v", err)
	}
}

func TestDelete_SecondDeleteReplacesSlot(t *testing.T) {
	now := time.Now().UnixMilli()
	entries := map[string]domain.LogEntry{
		"log-1": {ID: "log-1", UserID: 1, ProductName: "Oats", Timestamp: now, Portions: 1},
		"log-2": {ID: "log-2", UserID: 1, ProductName: "Granola", Timestamp: now, Portions: 1},
	}
	svc := newLogService(storeBackedFoodRepo(entries), &mockTotalsRepo{}, time.Second)

	if err := svc.Delete(context.Background(), 1, "log-1"); err != nil {
		t.Fatalf("delete log-1: %v", err)
	}
	if err := svc.Delete(context.Background(), 1, "log-2"); err != nil {
		t.Fatalf("delete log-2: %v", err)
	}

	restored, err := svc.Undo(context.Background(), 1)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if restored.ID != "log-2" {
		t.Errorf("expected the most recent delete restored, got %s", restored.ID)
	}

	// The first deletion is gone for good.
	if _, err := svc.Undo(context.Background(), 1); err != app.ErrNothingToUndo {
		t.Fatalf("expected ErrNothingToUndo for the replaced slot, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := newLogService(&mockFoodLogRepo{}, &mockTotalsRepo{}, time.Second)
	if err := svc.Delete(context.Background(), 1, "missing"); err != app.ErrLogNotFound {
		t.Fatalf("expected ErrLogNotFound, got %v", err)
	}
}

func TestListDay_WindowAndOrder(t *testing.T) {
	now := time.Now()
	today := domain.LocalDayString(now)
	ts := now.UnixMilli()

	food := &mockFoodLogRepo{
		listFn: func(_ context.Context, _ int64) ([]domain.LogEntry, error) {
			return []domain.LogEntry{
				{ID: "old", Timestamp: ts - 2*domain.DayMillis},
				{ID: "first", Timestamp: ts - 2},
				{ID: "second", Timestamp: ts - 1},
			}, nil
		},
	}
	svc := newLogService(food, &mockTotalsRepo{}, time.Second)

	got, err := svc.ListDay(context.Background(), 1, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries in the day window, got %d", len(got))
	}
	if got[0].ID != "second" || got[1].ID != "first" {
		t.Errorf("expected newest first, got %s then %s", got[0].ID, got[1].ID)
	}
}
