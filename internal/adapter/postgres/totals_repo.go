package postgres

import (
	"context"
	"database/sql"
	"errors"

	"labelscanner/internal/domain"
)

// PutDailyTotals overwrites the totals record for the date.
func (d *DB) PutDailyTotals(ctx context.Context, userID int64, t domain.DailyTotals) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO daily_totals (user_id, date, calories, protein, carbs, total_fat, water, last_updated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id, date) DO UPDATE SET calories=EXCLUDED.calories, protein=EXCLUDED.protein, carbs=EXCLUDED.carbs, total_fat=EXCLUDED.total_fat, water=EXCLUDED.water, last_updated=EXCLUDED.last_updated;`,
		userID, t.Date, t.Calories, t.Protein, t.Carbs, t.TotalFat, t.Water, t.LastUpdated,
	)
	return err
}

// GetDailyTotals returns the cached totals for a date, or nil when absent.
func (d *DB) GetDailyTotals(ctx context.Context, userID int64, date string) (*domain.DailyTotals, error) {
	var t domain.DailyTotals
	err := d.sql.QueryRowContext(ctx,
		"SELECT date, calories, protein, carbs, total_fat, water, last_updated FROM daily_totals WHERE user_id=$1 AND date=$2;",
		userID, date,
	).Scan(&t.Date, &t.Calories, &t.Protein, &t.Carbs, &t.TotalFat, &t.Water, &t.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
