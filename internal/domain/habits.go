package domain

import (
	"context"
	"math"
	"time"
)

// HabitStats holds cumulative behavioral counters derived from the log
// history. LastLoggedDate is a local YYYY-MM-DD day, empty before the
// first log. The record is persisted wholesale on every update.
type HabitStats struct {
	CurrentStreak   int      `json:"currentStreak"`
	LastLoggedDate  string   `json:"lastLoggedDate,omitempty"`
	TotalScans      int      `json:"totalScans"`
	TotalLoggedDays int      `json:"totalLoggedDays"`
	LowSugarCount   int      `json:"lowSugarCount"`
	Achievements    []string `json:"achievements"`
}

// HabitStatsRepository is the port for habit stats persistence. Get returns
// nil when the user has no stats record yet.
type HabitStatsRepository interface {
	GetHabitStats(ctx context.Context, userID int64) (*HabitStats, error)
	PutHabitStats(ctx context.Context, userID int64, stats HabitStats) error
}

// LowSugarThreshold is the grams of label sugar below which an entry counts
// toward LowSugarCount.
const LowSugarThreshold = 5.0

// NextHabitStats applies a newly saved scan-derived log entry to the stats.
// today is the local YYYY-MM-DD day of the save. Scan and low-sugar counters
// always advance; the streak transition compares today to LastLoggedDate:
// absent starts a fresh streak, a gap of exactly one day extends it, a
// larger gap resets it to 1. A same-day re-log leaves both the streak and
// TotalLoggedDays untouched so a day is never counted twice.
// LastLoggedDate is set to today in every case.
func NextHabitStats(stats HabitStats, e LogEntry, today string) HabitStats {
	stats.TotalScans++
	if e.Sugar.LabelSugar < LowSugarThreshold {
		stats.LowSugarCount++
	}

	if stats.LastLoggedDate == "" {
		stats.CurrentStreak = 1
		stats.TotalLoggedDays = 1
	} else {
		switch gap := daysBetween(stats.LastLoggedDate, today); {
		case gap == 1:
			stats.CurrentStreak++
			stats.TotalLoggedDays++
		case gap > 1:
			stats.CurrentStreak = 1
			stats.TotalLoggedDays++
		}
	}

	stats.LastLoggedDate = today
	if stats.Achievements == nil {
		stats.Achievements = []string{}
	}
	return stats
}

// daysBetween returns the whole calendar days from day a to day b, both
// local YYYY-MM-DD. Rounded so DST-shortened or -lengthened days still
// count as one. Unparseable input counts as a gap large enough to reset.
func daysBetween(a, b string) int {
	at, err := time.ParseInLocation("2006-01-02", a, time.Local)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	bt, err := time.ParseInLocation("2006-01-02", b, time.Local)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return int(math.Round(bt.Sub(at).Hours() / 24))
}
