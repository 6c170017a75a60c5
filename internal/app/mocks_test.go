package app_test

import (
	"context"

	"labelscanner/internal/domain"
)

// Function-field mocks shared by the service tests.

type mockFoodLogRepo struct {
	addFn    func(ctx context.Context, e domain.LogEntry) (string, error)
	putFn    func(ctx context.Context, e domain.LogEntry) error
	getFn    func(ctx context.Context, userID int64, id string) (*domain.LogEntry, error)
	deleteFn func(ctx context.Context, userID int64, id string) error
	listFn   func(ctx context.Context, userID int64) ([]domain.LogEntry, error)
}

func (m *mockFoodLogRepo) AddLogEntry(ctx context.Context, e domain.LogEntry) (string, error) {
	if m.addFn != nil {
		return m.addFn(ctx, e)
	}
	return "log-1", nil
}

func (m *mockFoodLogRepo) PutLogEntry(ctx context.Context, e domain.LogEntry) error {
	if m.putFn != nil {
		return m.putFn(ctx, e)
	}
	return nil
}

func (m *mockFoodLogRepo) GetLogEntry(ctx context.Context, userID int64, id string) (*domain.LogEntry, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return nil, nil
}

func (m *mockFoodLogRepo) DeleteLogEntry(ctx context.Context, userID int64, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockFoodLogRepo) ListLogEntries(ctx context.Context, userID int64) ([]domain.LogEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

type mockWaterLogRepo struct {
	addFn    func(ctx context.Context, e domain.WaterEntry) (string, error)
	listFn   func(ctx context.Context, userID int64) ([]domain.WaterEntry, error)
	recentFn func(ctx context.Context, userID int64, limit int) ([]domain.WaterEntry, error)
}

func (m *mockWaterLogRepo) AddWaterEntry(ctx context.Context, e domain.WaterEntry) (string, error) {
	if m.addFn != nil {
		return m.addFn(ctx, e)
	}
	return "water-1", nil
}

func (m *mockWaterLogRepo) ListWaterEntries(ctx context.Context, userID int64) ([]domain.WaterEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWaterLogRepo) ListRecentWaterEntries(ctx context.Context, userID int64, limit int) ([]domain.WaterEntry, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

type mockTotalsRepo struct {
	putFn func(ctx context.Context, userID int64, t domain.DailyTotals) error
	getFn func(ctx context.Context, userID int64, date string) (*domain.DailyTotals, error)
}

func (m *mockTotalsRepo) PutDailyTotals(ctx context.Context, userID int64, t domain.DailyTotals) error {
	if m.putFn != nil {
		return m.putFn(ctx, userID, t)
	}
	return nil
}

func (m *mockTotalsRepo) GetDailyTotals(ctx context.Context, userID int64, date string) (*domain.DailyTotals, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, date)
	}
	return nil, nil
}

type mockHabitRepo struct {
	getFn func(ctx context.Context, userID int64) (*domain.HabitStats, error)
	putFn func(ctx context.Context, userID int64, stats domain.HabitStats) error
}

func (m *mockHabitRepo) GetHabitStats(ctx context.Context, userID int64) (*domain.HabitStats, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockHabitRepo) PutHabitStats(ctx context.Context, userID int64, stats domain.HabitStats) error {
	if m.putFn != nil {
		return m.putFn(ctx, userID, stats)
	}
	return nil
}

type mockSettingsRepo struct {
	getFn func(ctx context.Context, userID int64) (*domain.UserSettings, error)
	putFn func(ctx context.Context, userID int64, s domain.UserSettings) error
}

func (m *mockSettingsRepo) GetSettings(ctx context.Context, userID int64) (*domain.UserSettings, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockSettingsRepo) PutSettings(ctx context.Context, userID int64, s domain.UserSettings) error {
	if m.putFn != nil {
		return m.putFn(ctx, userID, s)
	}
	return nil
}

type mockFavoriteRepo struct {
	putFn    func(ctx context.Context, userID int64, f domain.Favorite) error
	deleteFn func(ctx context.Context, userID int64, key string) error
	getFn    func(ctx context.Context, userID int64, key string) (*domain.Favorite, error)
	listFn   func(ctx context.Context, userID int64) ([]domain.Favorite, error)
}

func (m *mockFavoriteRepo) PutFavorite(ctx context.Context, userID int64, f domain.Favorite) error {
	if m.putFn != nil {
		return m.putFn(ctx, userID, f)
	}
	return nil
}

func (m *mockFavoriteRepo) DeleteFavorite(ctx context.Context, userID int64, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, key)
	}
	return nil
}

func (m *mockFavoriteRepo) GetFavorite(ctx context.Context, userID int64, key string) (*domain.Favorite, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, key)
	}
	return nil, nil
}

func (m *mockFavoriteRepo) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}
