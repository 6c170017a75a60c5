// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"labelscanner/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu        sync.Mutex
	foodLogs  map[string]domain.LogEntry
	waterLogs []domain.WaterEntry
	totals    map[int64]map[string]domain.DailyTotals
	habits    map[int64]domain.HabitStats
	settings  map[int64]domain.UserSettings
	favorites map[int64]map[string]domain.Favorite
	users     []*domain.User
	sessions  map[string]*domain.Session

	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		foodLogs:  make(map[string]domain.LogEntry),
		totals:    make(map[int64]map[string]domain.DailyTotals),
		habits:    make(map[int64]domain.HabitStats),
		settings:  make(map[int64]domain.UserSettings),
		favorites: make(map[int64]map[string]domain.Favorite),
		sessions:  make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.FoodLogRepository = (*DB)(nil)
var _ domain.WaterLogRepository = (*DB)(nil)
var _ domain.DailyTotalsRepository = (*DB)(nil)
var _ domain.HabitStatsRepository = (*DB)(nil)
var _ domain.SettingsRepository = (*DB)(nil)
var _ domain.FavoriteRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- FoodLogRepository ---

// AddLogEntry stores a new log entry and returns its generated ID.
func (db *DB) AddLogEntry(ctx context.Context, e domain.LogEntry) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	db.foodLogs[e.ID] = e
	return e.ID, nil
}

// PutLogEntry writes a log entry under its existing ID.
func (db *DB) PutLogEntry(ctx context.Context, e domain.LogEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if e.ID == "" {
		return errors.New("log entry has no id")
	}
	db.foodLogs[e.ID] = e
	return nil
}

// GetLogEntry returns a log entry by ID, or nil when absent.
func (db *DB) GetLogEntry(ctx context.Context, userID int64, id string) (*domain.LogEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if e, ok := db.foodLogs[id]; ok && e.UserID == userID {
		return &e, nil
	}
	return nil, nil
}

// DeleteLogEntry removes a log entry. Deleting a missing ID is not an error.
func (db *DB) DeleteLogEntry(ctx context.Context, userID int64, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if e, ok := db.foodLogs[id]; ok && e.UserID == userID {
		delete(db.foodLogs, id)
	}
	return nil
}

// ListLogEntries returns every log entry for the user, unfiltered.
func (db *DB) ListLogEntries(ctx context.Context, userID int64) ([]domain.LogEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.LogEntry
	for _, e := range db.foodLogs {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp < result[j].Timestamp
	})
	return result, nil
}

// --- WaterLogRepository ---

// AddWaterEntry stores a new water entry and returns its generated ID.
func (db *DB) AddWaterEntry(ctx context.Context, e domain.WaterEntry) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	db.waterLogs = append(db.waterLogs, e)
	return e.ID, nil
}

// ListWaterEntries returns every water entry for the user, unfiltered.
func (db *DB) ListWaterEntries(ctx context.Context, userID int64) ([]domain.WaterEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.WaterEntry
	for _, e := range db.waterLogs {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

// ListRecentWaterEntries returns the most recent water entries, newest first.
func (db *DB) ListRecentWaterEntries(ctx context.Context, userID int64, limit int) ([]domain.WaterEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.WaterEntry
	for _, e := range db.waterLogs {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp > result[j].Timestamp
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- DailyTotalsRepository ---

// PutDailyTotals overwrites the cached totals for a day.
func (db *DB) PutDailyTotals(ctx context.Context, userID int64, t domain.DailyTotals) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	days, ok := db.totals[userID]
	if !ok {
		days = make(map[string]domain.DailyTotals)
		db.totals[userID] = days
	}
	days[t.Date] = t
	return nil
}

// GetDailyTotals returns the cached totals for a day, or nil when absent.
func (db *DB) GetDailyTotals(ctx context.Context, userID int64, date string) (*domain.DailyTotals, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if t, ok := db.totals[userID][date]; ok {
		return &t, nil
	}
	return nil, nil
}

// --- HabitStatsRepository ---

// GetHabitStats returns the user's habit stats, or nil when none exist.
func (db *DB) GetHabitStats(ctx context.Context, userID int64) (*domain.HabitStats, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s, ok := db.habits[userID]; ok {
		return &s, nil
	}
	return nil, nil
}

// PutHabitStats overwrites the user's habit stats record.
func (db *DB) PutHabitStats(ctx context.Context, userID int64, stats domain.HabitStats) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.habits[userID] = stats
	return nil
}

// --- SettingsRepository ---

// GetSettings returns the user's settings, or nil when the user never onboarded.
func (db *DB) GetSettings(ctx context.Context, userID int64) (*domain.UserSettings, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s, ok := db.settings[userID]; ok {
		return &s, nil
	}
	return nil, nil
}

// PutSettings overwrites the user's settings record.
func (db *DB) PutSettings(ctx context.Context, userID int64, s domain.UserSettings) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.settings[userID] = s
	return nil
}

// --- FavoriteRepository ---

// PutFavorite inserts or refreshes a favorite under its key.
func (db *DB) PutFavorite(ctx context.Context, userID int64, f domain.Favorite) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	favs, ok := db.favorites[userID]
	if !ok {
		favs = make(map[string]domain.Favorite)
		db.favorites[userID] = favs
	}
	favs[f.Key] = f
	return nil
}

// DeleteFavorite removes a favorite. Deleting a missing key is not an error.
func (db *DB) DeleteFavorite(ctx context.Context, userID int64, key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.favorites[userID], key)
	return nil
}

// GetFavorite returns a favorite by key, or nil when absent.
func (db *DB) GetFavorite(ctx context.Context, userID int64, key string) (*domain.Favorite, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if f, ok := db.favorites[userID][key]; ok {
		return &f, nil
	}
	return nil, nil
}

// ListFavorites returns the user's favorites, most recent first.
func (db *DB) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Favorite
	for _, f := range db.favorites[userID] {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp > result[j].Timestamp
	})
	return result, nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	// Return nil if not found
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.sessions, token)
			return nil, nil
		}
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
