package app

import (
	"context"
	"time"

	"labelscanner/internal/domain"
)

// HabitService maintains the derived habit stats record and evaluates the
// achievement catalog against it.
type HabitService struct {
	stats    domain.HabitStatsRepository
	totals   domain.DailyTotalsRepository
	settings domain.SettingsRepository
}

// NewHabitService creates a HabitService. totals and settings feed the
// display-time achievement context.
func NewHabitService(st domain.HabitStatsRepository, tr domain.DailyTotalsRepository, sr domain.SettingsRepository) *HabitService {
	return &HabitService{stats: st, totals: tr, settings: sr}
}

// UpdateStreakAndAchievements advances the habit counters for one newly
// created scan-derived log entry and persists the whole record.
func (s *HabitService) UpdateStreakAndAchievements(ctx context.Context, userID int64, e domain.LogEntry) (*domain.HabitStats, error) {
	cur, err := s.stats.GetHabitStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	var st domain.HabitStats
	if cur != nil {
		st = *cur
	}

	st = domain.NextHabitStats(st, e, domain.LocalDayString(time.Now()))

	if err := s.stats.PutHabitStats(ctx, userID, st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Stats returns the user's habit stats, zero-valued when none exist yet.
func (s *HabitService) Stats(ctx context.Context, userID int64) (*domain.HabitStats, error) {
	cur, err := s.stats.GetHabitStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return &domain.HabitStats{Achievements: []string{}}, nil
	}
	return cur, nil
}

// AchievementStatus pairs a catalog entry with whether its requirement
// currently holds.
type AchievementStatus struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

// Achievements evaluates the catalog lazily against the current stats
// snapshot. Nothing is persisted: predicates run fresh on every load.
func (s *HabitService) Achievements(ctx context.Context, userID int64) ([]AchievementStatus, error) {
	st, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := domain.AchievementSnapshot{HabitStats: *st}
	snap.ProteinReachedToday = s.proteinReachedToday(ctx, userID)

	out := make([]AchievementStatus, 0, len(domain.Achievements))
	for _, a := range domain.Achievements {
		out = append(out, AchievementStatus{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			Unlocked:    a.Requirement(snap),
		})
	}
	return out, nil
}

// proteinReachedToday compares today's cached totals to the calculated
// protein limit. Missing totals or settings simply mean not reached.
func (s *HabitService) proteinReachedToday(ctx context.Context, userID int64) bool {
	today := domain.LocalDayString(time.Now())
	t, err := s.totals.GetDailyTotals(ctx, userID, today)
	if err != nil || t == nil {
		return false
	}
	set, err := s.settings.GetSettings(ctx, userID)
	if err != nil || set == nil {
		return false
	}
	limit := set.CalculatedLimits.Protein
	if limit <= 0 {
		limit = domain.DefaultLimits.Protein
	}
	return t.Protein >= float64(limit)
}
