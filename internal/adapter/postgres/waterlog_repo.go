package postgres

import (
	"context"

	"labelscanner/internal/domain"

	"github.com/google/uuid"
)

// AddWaterEntry inserts a new water intake entry, assigning its id.
func (d *DB) AddWaterEntry(ctx context.Context, e domain.WaterEntry) (string, error) {
	id := uuid.NewString()
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO water_logs (id, user_id, amount, ts_millis) VALUES ($1, $2, $3, $4);",
		id, e.UserID, e.Amount, e.Timestamp,
	)
	return id, err
}

// ListWaterEntries returns the user's complete water log, unfiltered.
func (d *DB) ListWaterEntries(ctx context.Context, userID int64) ([]domain.WaterEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, amount, ts_millis FROM water_logs WHERE user_id=$1;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.WaterEntry
	for rows.Next() {
		var e domain.WaterEntry
		if err := rows.Scan(&e.ID, &e.Amount, &e.Timestamp); err != nil {
			return nil, err
		}
		e.UserID = userID
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListRecentWaterEntries returns the most recent water entries up to limit.
func (d *DB) ListRecentWaterEntries(ctx context.Context, userID int64, limit int) ([]domain.WaterEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, amount, ts_millis FROM water_logs WHERE user_id=$1 ORDER BY ts_millis DESC LIMIT $2;", userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WaterEntry, 0, limit)
	for rows.Next() {
		var e domain.WaterEntry
		if err := rows.Scan(&e.ID, &e.Amount, &e.Timestamp); err != nil {
			return nil, err
		}
		e.UserID = userID
		out = append(out, e)
	}
	return out, rows.Err()
}
