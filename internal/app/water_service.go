package app

import (
	"context"
	"errors"
	"time"

	"labelscanner/internal/domain"
)

// DefaultWaterPortion is the amount added when the client does not specify
// one: a 250 ml glass.
const DefaultWaterPortion = 0.25

// WaterService encapsulates the hydration-tracking use cases.
type WaterService struct {
	waterLogs domain.WaterLogRepository
	totals    *TotalsService
}

// NewWaterService creates a WaterService backed by the given repository.
func NewWaterService(wl domain.WaterLogRepository, totals *TotalsService) *WaterService {
	return &WaterService{waterLogs: wl, totals: totals}
}

// Add validates and stores a water intake event and recomputes the day's
// totals so the hydration sum in the cache stays fresh.
func (s *WaterService) Add(ctx context.Context, userID int64, amount float64) (*domain.WaterEntry, error) {
	if amount == 0 {
		amount = DefaultWaterPortion
	}
	if amount < 0 || amount > 10 {
		return nil, errors.New("amount must be within (0, 10] liters")
	}

	e := domain.WaterEntry{
		UserID:    userID,
		Amount:    amount,
		Timestamp: time.Now().UnixMilli(),
	}
	id, err := s.waterLogs.AddWaterEntry(ctx, e)
	if err != nil {
		return nil, err
	}
	e.ID = id

	if _, err := s.totals.Recalculate(ctx, userID, e.Timestamp); err != nil {
		return nil, err
	}
	return &e, nil
}

// TodayTotal sums today's water entries, rounded to two decimals. The sum
// is computed from the full collection, not the totals cache.
func (s *WaterService) TodayTotal(ctx context.Context, userID int64) (float64, string, error) {
	now := time.Now()
	today := domain.LocalDayString(now)
	start, end := domain.DayWindow(now.UnixMilli())

	all, err := s.waterLogs.ListWaterEntries(ctx, userID)
	if err != nil {
		return 0, today, err
	}

	var total float64
	for _, w := range all {
		if w.Timestamp >= start && w.Timestamp < end {
			total += w.Amount
		}
	}
	return domain.Round2(total), today, nil
}

// ListRecent returns the most recent water entries up to limit.
func (s *WaterService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.WaterEntry, error) {
	return s.waterLogs.ListRecentWaterEntries(ctx, userID, limit)
}
