package app

import (
	"context"
	"time"

	"labelscanner/internal/domain"
)

// TotalsService owns the daily totals cache: it recomputes a day's sums
// from the complete log collections and overwrites the stored record.
type TotalsService struct {
	foodLogs  domain.FoodLogRepository
	waterLogs domain.WaterLogRepository
	totals    domain.DailyTotalsRepository
}

// NewTotalsService creates a TotalsService backed by the given repositories.
func NewTotalsService(fl domain.FoodLogRepository, wl domain.WaterLogRepository, tr domain.DailyTotalsRepository) *TotalsService {
	return &TotalsService{foodLogs: fl, waterLogs: wl, totals: tr}
}

// Recalculate recomputes the totals for the local day containing tsMillis
// and overwrites the stored DailyTotals for that date. The fetch has no
// store-side date filter, so it re-sums the full day's records from the
// user's whole history on every call; calling twice with unchanged data
// yields the same stored sums.
func (s *TotalsService) Recalculate(ctx context.Context, userID int64, tsMillis int64) (*domain.DailyTotals, error) {
	start, end := domain.DayWindow(tsMillis)
	date := domain.DayKey(tsMillis)

	logs, err := s.foodLogs.ListLogEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	var calories, protein, carbs, fat float64
	for _, l := range logs {
		if l.Timestamp >= start && l.Timestamp < end {
			calories += l.Calories
			protein += l.Protein
			carbs += l.Carbohydrates
			fat += l.TotalFat
		}
	}

	waters, err := s.waterLogs.ListWaterEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	var water float64
	for _, w := range waters {
		if w.Timestamp >= start && w.Timestamp < end {
			water += w.Amount
		}
	}

	t := domain.DailyTotals{
		Date:        date,
		Calories:    domain.RoundCalories(calories),
		Protein:     domain.Round1(protein),
		Carbs:       domain.Round1(carbs),
		TotalFat:    domain.Round1(fat),
		Water:       domain.Round2(water),
		LastUpdated: time.Now().UnixMilli(),
	}

	if err := s.totals.PutDailyTotals(ctx, userID, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ForDate returns the cached totals for a local YYYY-MM-DD date,
// regenerating the cache when no record exists yet.
func (s *TotalsService) ForDate(ctx context.Context, userID int64, date string) (*domain.DailyTotals, error) {
	t, err := s.totals.GetDailyTotals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if t != nil {
		return t, nil
	}

	start, err := domain.DayStartMillis(date)
	if err != nil {
		return nil, err
	}
	return s.Recalculate(ctx, userID, start)
}
