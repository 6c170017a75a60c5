package domain

import (
	"context"
	"math"
)

// DailyTotals is the derived per-day aggregate of nutrition and hydration
// sums, keyed by a local YYYY-MM-DD date. It is a cache: always safe to
// discard and regenerate from the log collections.
type DailyTotals struct {
	Date        string  `json:"date"`
	Calories    int     `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	TotalFat    float64 `json:"totalFat"`
	Water       float64 `json:"water"`
	LastUpdated int64   `json:"lastUpdated"`
}

// DailyTotalsRepository is the port for the totals cache. Put overwrites
// the whole record for the date; there is no merge.
type DailyTotalsRepository interface {
	PutDailyTotals(ctx context.Context, userID int64, t DailyTotals) error
	GetDailyTotals(ctx context.Context, userID int64, date string) (*DailyTotals, error)
}

// RoundCalories rounds a calorie sum to the nearest integer.
func RoundCalories(v float64) int {
	return int(math.Round(v))
}

// Round1 rounds to one decimal place, used for macro gram sums.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places, used for water liter sums.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
