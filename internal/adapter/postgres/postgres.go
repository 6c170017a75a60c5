package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, user_agent TEXT NOT NULL DEFAULT '', ip TEXT NOT NULL DEFAULT '', expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
		"CREATE TABLE IF NOT EXISTS food_logs (id TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, product_name TEXT NOT NULL, ts_millis BIGINT NOT NULL, calories DOUBLE PRECISION NOT NULL, protein DOUBLE PRECISION NOT NULL, carbohydrates DOUBLE PRECISION NOT NULL, total_fat DOUBLE PRECISION NOT NULL, fiber DOUBLE PRECISION NOT NULL, label_sugar DOUBLE PRECISION NOT NULL, hidden_sugars JSONB NOT NULL DEFAULT '[]', health_score INT NOT NULL DEFAULT 0, vegetarian_status TEXT NOT NULL DEFAULT 'Unknown', allergens JSONB NOT NULL DEFAULT '[]', alternatives JSONB NOT NULL DEFAULT '[]', notes TEXT NOT NULL DEFAULT '', portions DOUBLE PRECISION NOT NULL DEFAULT 1, image_uri TEXT NOT NULL DEFAULT '', manual BOOLEAN NOT NULL DEFAULT FALSE);",
		"CREATE INDEX IF NOT EXISTS idx_food_logs_user_id ON food_logs(user_id);",
		"CREATE TABLE IF NOT EXISTS water_logs (id TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, amount DOUBLE PRECISION NOT NULL, ts_millis BIGINT NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_water_logs_user_id ON water_logs(user_id);",
		"CREATE TABLE IF NOT EXISTS daily_totals (user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, date TEXT NOT NULL, calories INT NOT NULL, protein DOUBLE PRECISION NOT NULL, carbs DOUBLE PRECISION NOT NULL, total_fat DOUBLE PRECISION NOT NULL, water DOUBLE PRECISION NOT NULL, last_updated BIGINT NOT NULL, PRIMARY KEY (user_id, date));",
		"CREATE TABLE IF NOT EXISTS habit_stats (user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE, current_streak INT NOT NULL, last_logged_date TEXT NOT NULL DEFAULT '', total_scans INT NOT NULL, total_logged_days INT NOT NULL, low_sugar_count INT NOT NULL, achievements JSONB NOT NULL DEFAULT '[]');",
		"CREATE TABLE IF NOT EXISTS settings (user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE, data JSONB NOT NULL);",
		"CREATE TABLE IF NOT EXISTS favorites (user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, key TEXT NOT NULL, product_name TEXT NOT NULL, calories DOUBLE PRECISION NOT NULL, protein DOUBLE PRECISION NOT NULL, ts_millis BIGINT NOT NULL, PRIMARY KEY (user_id, key));",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
