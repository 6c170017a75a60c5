package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"labelscanner/internal/domain"
)

// GetSettings returns the user's settings, or nil when the user never onboarded.
func (d *DB) GetSettings(ctx context.Context, userID int64) (*domain.UserSettings, error) {
	var data []byte
	err := d.sql.QueryRowContext(ctx, "SELECT data FROM settings WHERE user_id=$1;", userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s domain.UserSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return &s, nil
}

// PutSettings overwrites the user's settings record.
func (d *DB) PutSettings(ctx context.Context, userID int64, s domain.UserSettings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = d.sql.ExecContext(ctx,
		"INSERT INTO settings (user_id, data) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET data=EXCLUDED.data;",
		userID, data,
	)
	return err
}
