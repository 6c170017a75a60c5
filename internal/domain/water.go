package domain

import "context"

// WaterEntry represents a single water intake event in liters. Entries are
// immutable once written.
type WaterEntry struct {
	ID        string  `json:"id"`
	UserID    int64   `json:"-"`
	Amount    float64 `json:"amount"`
	Timestamp int64   `json:"timestamp"`
}

// WaterLogRepository is the port for water log persistence. ListWaterEntries
// returns the user's complete collection, mirroring FoodLogRepository.
type WaterLogRepository interface {
	AddWaterEntry(ctx context.Context, e WaterEntry) (string, error)
	ListWaterEntries(ctx context.Context, userID int64) ([]WaterEntry, error)
	ListRecentWaterEntries(ctx context.Context, userID int64, limit int) ([]WaterEntry, error)
}
