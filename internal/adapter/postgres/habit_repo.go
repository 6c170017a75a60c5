package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"labelscanner/internal/domain"
)

// GetHabitStats returns the user's habit stats, or nil when none exist.
func (d *DB) GetHabitStats(ctx context.Context, userID int64) (*domain.HabitStats, error) {
	var (
		s   domain.HabitStats
		ach []byte
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT current_streak, last_logged_date, total_scans, total_logged_days, low_sugar_count, achievements FROM habit_stats WHERE user_id=$1;",
		userID,
	).Scan(&s.CurrentStreak, &s.LastLoggedDate, &s.TotalScans, &s.TotalLoggedDays, &s.LowSugarCount, &ach)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(ach, &s.Achievements); err != nil {
		return nil, fmt.Errorf("unmarshal achievements: %w", err)
	}
	return &s, nil
}

// PutHabitStats overwrites the user's habit stats record.
func (d *DB) PutHabitStats(ctx context.Context, userID int64, s domain.HabitStats) error {
	ach, err := json.Marshal(orEmpty(s.Achievements))
	if err != nil {
		return fmt.Errorf("marshal achievements: %w", err)
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO habit_stats (user_id, current_streak, last_logged_date, total_scans, total_logged_days, low_sugar_count, achievements)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE SET current_streak=EXCLUDED.current_streak, last_logged_date=EXCLUDED.last_logged_date, total_scans=EXCLUDED.total_scans, total_logged_days=EXCLUDED.total_logged_days, low_sugar_count=EXCLUDED.low_sugar_count, achievements=EXCLUDED.achievements;`,
		userID, s.CurrentStreak, s.LastLoggedDate, s.TotalScans, s.TotalLoggedDays, s.LowSugarCount, ach,
	)
	return err
}
