package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"labelscanner/internal/domain"

	"github.com/google/uuid"
)

const foodLogColumns = "id, product_name, ts_millis, calories, protein, carbohydrates, total_fat, fiber, label_sugar, hidden_sugars, health_score, vegetarian_status, allergens, alternatives, notes, portions, image_uri, manual"

// AddLogEntry inserts a new food log entry, assigning its id.
func (d *DB) AddLogEntry(ctx context.Context, e domain.LogEntry) (string, error) {
	e.ID = uuid.NewString()
	if err := d.putLogEntry(ctx, e); err != nil {
		return "", err
	}
	return e.ID, nil
}

// PutLogEntry writes the entry at its id, overwriting any existing row.
// Used for edits and for restoring a deleted entry at the same id.
func (d *DB) PutLogEntry(ctx context.Context, e domain.LogEntry) error {
	return d.putLogEntry(ctx, e)
}

func (d *DB) putLogEntry(ctx context.Context, e domain.LogEntry) error {
	hidden, err := json.Marshal(orEmpty(e.Sugar.HiddenSugars))
	if err != nil {
		return fmt.Errorf("marshal hidden sugars: %w", err)
	}
	allergens, err := json.Marshal(orEmpty(e.Allergens))
	if err != nil {
		return fmt.Errorf("marshal allergens: %w", err)
	}
	alternatives, err := json.Marshal(orEmpty(e.Alternatives))
	if err != nil {
		return fmt.Errorf("marshal alternatives: %w", err)
	}

	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO food_logs (id, user_id, product_name, ts_millis, calories, protein, carbohydrates, total_fat, fiber, label_sugar, hidden_sugars, health_score, vegetarian_status, allergens, alternatives, notes, portions, image_uri, manual)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 ON CONFLICT (id) DO UPDATE SET product_name=EXCLUDED.product_name, ts_millis=EXCLUDED.ts_millis, calories=EXCLUDED.calories, protein=EXCLUDED.protein, carbohydrates=EXCLUDED.carbohydrates, total_fat=EXCLUDED.total_fat, fiber=EXCLUDED.fiber, label_sugar=EXCLUDED.label_sugar, hidden_sugars=EXCLUDED.hidden_sugars, health_score=EXCLUDED.health_score, vegetarian_status=EXCLUDED.vegetarian_status, allergens=EXCLUDED.allergens, alternatives=EXCLUDED.alternatives, notes=EXCLUDED.notes, portions=EXCLUDED.portions, image_uri=EXCLUDED.image_uri, manual=EXCLUDED.manual;`,
		e.ID, e.UserID, e.ProductName, e.Timestamp, e.Calories, e.Protein, e.Carbohydrates, e.TotalFat, e.Fiber,
		e.Sugar.LabelSugar, hidden, e.HealthScore, string(e.VegetarianStatus), allergens, alternatives,
		e.Notes, e.Portions, e.ImageURI, e.Manual,
	)
	return err
}

// GetLogEntry returns the entry by id scoped to a user, or nil when absent.
func (d *DB) GetLogEntry(ctx context.Context, userID int64, id string) (*domain.LogEntry, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+foodLogColumns+" FROM food_logs WHERE user_id=$1 AND id=$2;", userID, id)

	e, err := scanLogEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.UserID = userID
	return e, nil
}

// DeleteLogEntry removes an entry by id, scoped to a user.
func (d *DB) DeleteLogEntry(ctx context.Context, userID int64, id string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM food_logs WHERE user_id=$1 AND id=$2;", userID, id)
	return err
}

// ListLogEntries returns the user's complete log collection, unfiltered.
func (d *DB) ListLogEntries(ctx context.Context, userID int64) ([]domain.LogEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+foodLogColumns+" FROM food_logs WHERE user_id=$1;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.LogEntry
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		e.UserID = userID
		out = append(out, *e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLogEntry(row rowScanner) (*domain.LogEntry, error) {
	var (
		e            domain.LogEntry
		status       string
		hidden       []byte
		allergens    []byte
		alternatives []byte
	)
	if err := row.Scan(&e.ID, &e.ProductName, &e.Timestamp, &e.Calories, &e.Protein, &e.Carbohydrates,
		&e.TotalFat, &e.Fiber, &e.Sugar.LabelSugar, &hidden, &e.HealthScore, &status,
		&allergens, &alternatives, &e.Notes, &e.Portions, &e.ImageURI, &e.Manual); err != nil {
		return nil, err
	}
	e.VegetarianStatus = domain.VegetarianStatus(status)
	if err := json.Unmarshal(hidden, &e.Sugar.HiddenSugars); err != nil {
		return nil, fmt.Errorf("unmarshal hidden sugars: %w", err)
	}
	if err := json.Unmarshal(allergens, &e.Allergens); err != nil {
		return nil, fmt.Errorf("unmarshal allergens: %w", err)
	}
	if err := json.Unmarshal(alternatives, &e.Alternatives); err != nil {
		return nil, fmt.Errorf("unmarshal alternatives: %w", err)
	}
	return &e, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
