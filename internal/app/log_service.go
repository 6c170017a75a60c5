package app

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"labelscanner/internal/domain"
)

var (
	// ErrLogNotFound indicates that the requested log entry does not exist.
	ErrLogNotFound = errors.New("log entry not found")
	// ErrNothingToUndo indicates there is no pending delete within the undo
	// window for this user.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrMissingName indicates a save was attempted without a product name.
	ErrMissingName = errors.New("product name is required")
)

// pendingDelete is the single-slot undo cache: the removed entry plus the
// timer that discards it when the window elapses.
type pendingDelete struct {
	entry domain.LogEntry
	timer *time.Timer
}

// LogService encapsulates the food log mutation flows: create, edit,
// delete with a bounded-time undo, and the totals recomputation each of
// them triggers.
type LogService struct {
	logs   domain.FoodLogRepository
	totals *TotalsService
	habits *HabitService

	undoWindow time.Duration

	mu      sync.Mutex
	pending map[int64]*pendingDelete
}

// NewLogService creates a LogService. undoWindow bounds how long a deleted
// entry can be restored.
func NewLogService(logs domain.FoodLogRepository, totals *TotalsService, habits *HabitService, undoWindow time.Duration) *LogService {
	return &LogService{
		logs:       logs,
		totals:     totals,
		habits:     habits,
		undoWindow: undoWindow,
		pending:    make(map[int64]*pendingDelete),
	}
}

// Create stores a new log entry, recomputes the day's totals, and for
// scan-derived entries advances the habit stats. The entry's macro fields
// must already be portion-scaled. A failed habit update does not fail the
// save; it is logged and dropped.
func (s *LogService) Create(ctx context.Context, e domain.LogEntry) (*domain.LogEntry, error) {
	if e.ProductName == "" {
		return nil, ErrMissingName
	}
	if e.Portions < 1 {
		e.Portions = 1
	}
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}

	id, err := s.logs.AddLogEntry(ctx, e)
	if err != nil {
		return nil, err
	}
	e.ID = id

	if _, err := s.totals.Recalculate(ctx, e.UserID, e.Timestamp); err != nil {
		return nil, err
	}

	if !e.Manual && s.habits != nil {
		if _, err := s.habits.UpdateStreakAndAchievements(ctx, e.UserID, e); err != nil {
			log.Printf("habit update failed for user %d: %v", e.UserID, err)
		}
	}

	return &e, nil
}

// LogPatch is a partial edit to an existing entry. Nil fields are left
// unchanged. Changing Portions rescales the macro fields from their
// per-portion base values.
type LogPatch struct {
	ProductName *string  `json:"productName,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	Portions    *float64 `json:"portions,omitempty"`
	Timestamp   *int64   `json:"timestamp,omitempty"`
}

// Update applies a patch to an entry and recomputes totals for the day of
// the entry's (possibly updated) timestamp. An edit that moves the entry
// into a different day recomputes only the new day; the old day's cached
// totals go stale until something else touches them.
func (s *LogService) Update(ctx context.Context, userID int64, id string, patch LogPatch) (*domain.LogEntry, error) {
	e, err := s.logs.GetLogEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrLogNotFound
	}

	if patch.ProductName != nil {
		if *patch.ProductName == "" {
			return nil, ErrMissingName
		}
		e.ProductName = *patch.ProductName
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	if patch.Timestamp != nil {
		e.Timestamp = *patch.Timestamp
	}
	if patch.Portions != nil && *patch.Portions >= 1 && *patch.Portions != e.Portions {
		rescale(e, *patch.Portions)
	}

	if err := s.logs.PutLogEntry(ctx, *e); err != nil {
		return nil, err
	}
	if _, err := s.totals.Recalculate(ctx, userID, e.Timestamp); err != nil {
		return nil, err
	}
	return e, nil
}

// rescale recovers the per-portion base values from the current portion
// count and applies the new one, with the same rounding used at save time.
func rescale(e *domain.LogEntry, portions float64) {
	old := e.Portions
	if old < 1 {
		old = 1
	}
	e.Calories = math.Round(e.Calories / old * portions)
	e.Protein = domain.Round1(e.Protein / old * portions)
	e.Carbohydrates = domain.Round1(e.Carbohydrates / old * portions)
	e.TotalFat = domain.Round1(e.TotalFat / old * portions)
	e.Portions = portions
}

// Delete removes an entry, recomputes its day's totals, and arms the undo
// slot. Only one pending delete is tracked per user: a second delete
// replaces the slot and the first deletion can no longer be undone.
func (s *LogService) Delete(ctx context.Context, userID int64, id string) error {
	e, err := s.logs.GetLogEntry(ctx, userID, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrLogNotFound
	}

	if err := s.logs.DeleteLogEntry(ctx, userID, id); err != nil {
		return err
	}
	if _, err := s.totals.Recalculate(ctx, userID, e.Timestamp); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if prior, ok := s.pending[userID]; ok {
		prior.timer.Stop()
	}
	pd := &pendingDelete{entry: *e}
	pd.timer = time.AfterFunc(s.undoWindow, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.pending[userID] == pd {
			delete(s.pending, userID)
		}
	})
	s.pending[userID] = pd
	return nil
}

// Undo restores the most recently deleted entry at its original id with
// identical field values, provided the undo window has not elapsed, and
// recomputes that day's totals.
func (s *LogService) Undo(ctx context.Context, userID int64) (*domain.LogEntry, error) {
	s.mu.Lock()
	pd, ok := s.pending[userID]
	if ok {
		pd.timer.Stop()
		delete(s.pending, userID)
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrNothingToUndo
	}
	return s.Restore(ctx, pd.entry)
}

// Restore re-inserts a previously deleted entry and recomputes its day's
// totals. The entry keeps its original id.
func (s *LogService) Restore(ctx context.Context, e domain.LogEntry) (*domain.LogEntry, error) {
	if err := s.logs.PutLogEntry(ctx, e); err != nil {
		return nil, err
	}
	if _, err := s.totals.Recalculate(ctx, e.UserID, e.Timestamp); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListDay returns the entries whose timestamps fall within the local day,
// newest first.
func (s *LogService) ListDay(ctx context.Context, userID int64, date string) ([]domain.LogEntry, error) {
	start, err := domain.DayStartMillis(date)
	if err != nil {
		return nil, err
	}
	end := start + domain.DayMillis

	all, err := s.logs.ListLogEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.LogEntry, 0, len(all))
	for _, e := range all {
		if e.Timestamp >= start && e.Timestamp < end {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

// ListAll returns the user's full history, newest first.
func (s *LogService) ListAll(ctx context.Context, userID int64) ([]domain.LogEntry, error) {
	all, err := s.logs.ListLogEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Timestamp > all[j].Timestamp })
	return all, nil
}
