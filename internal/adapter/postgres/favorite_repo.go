package postgres

import (
	"context"
	"database/sql"
	"errors"

	"labelscanner/internal/domain"
)

// PutFavorite inserts or refreshes a favorite under its key.
func (d *DB) PutFavorite(ctx context.Context, userID int64, f domain.Favorite) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO favorites (user_id, key, product_name, calories, protein, ts_millis)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, key) DO UPDATE SET product_name=EXCLUDED.product_name, calories=EXCLUDED.calories, protein=EXCLUDED.protein, ts_millis=EXCLUDED.ts_millis;`,
		userID, f.Key, f.ProductName, f.Calories, f.Protein, f.Timestamp,
	)
	return err
}

// DeleteFavorite removes a favorite. Deleting a missing key is not an error.
func (d *DB) DeleteFavorite(ctx context.Context, userID int64, key string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM favorites WHERE user_id=$1 AND key=$2;", userID, key)
	return err
}

// GetFavorite returns a favorite by key, or nil when absent.
func (d *DB) GetFavorite(ctx context.Context, userID int64, key string) (*domain.Favorite, error) {
	var f domain.Favorite
	err := d.sql.QueryRowContext(ctx,
		"SELECT key, product_name, calories, protein, ts_millis FROM favorites WHERE user_id=$1 AND key=$2;",
		userID, key,
	).Scan(&f.Key, &f.ProductName, &f.Calories, &f.Protein, &f.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFavorites returns the user's favorites, most recent first.
func (d *DB) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT key, product_name, calories, protein, ts_millis FROM favorites WHERE user_id=$1 ORDER BY ts_millis DESC;",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.Key, &f.ProductName, &f.Calories, &f.Protein, &f.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
