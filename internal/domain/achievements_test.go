package domain

import (
	"reflect"
	"testing"
)

func TestUnlockedIDs(t *testing.T) {
	tests := []struct {
		name string
		snap AchievementSnapshot
		want []string
	}{
		{
			name: "fresh user unlocks nothing",
			snap: AchievementSnapshot{},
			want: []string{},
		},
		{
			name: "one scan unlocks first step",
			snap: AchievementSnapshot{HabitStats: HabitStats{TotalScans: 1}},
			want: []string{"first_scan"},
		},
		{
			name: "three-day streak",
			snap: AchievementSnapshot{HabitStats: HabitStats{TotalScans: 6, CurrentStreak: 3, TotalLoggedDays: 3}},
			want: []string{"first_scan", "streak_3"},
		},
		{
			name: "protein context is display-time only",
			snap: AchievementSnapshot{ProteinReachedToday: true},
			want: []string{"protein_goal"},
		},
		{
			name: "everything",
			snap: AchievementSnapshot{
				HabitStats:          HabitStats{TotalScans: 40, CurrentStreak: 8, TotalLoggedDays: 8, LowSugarCount: 6},
				ProteinReachedToday: true,
			},
			want: []string{"first_scan", "streak_3", "protein_goal", "sugar_smart", "week_warrior"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := UnlockedIDs(tc.snap)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAchievementCatalogBoundaries(t *testing.T) {
	// sugar_smart needs five low-sugar scans, not four.
	snap := AchievementSnapshot{HabitStats: HabitStats{LowSugarCount: 4}}
	for _, id := range UnlockedIDs(snap) {
		if id == "sugar_smart" {
			t.Error("sugar_smart unlocked at 4 low-sugar scans")
		}
	}

	// week_warrior needs seven logged days, not consecutive ones.
	snap = AchievementSnapshot{HabitStats: HabitStats{TotalLoggedDays: 7, CurrentStreak: 1}}
	found := false
	for _, id := range UnlockedIDs(snap) {
		if id == "week_warrior" {
			found = true
		}
	}
	if !found {
		t.Error("week_warrior should unlock on cumulative days")
	}
}
