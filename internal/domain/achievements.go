package domain

// AchievementSnapshot is the input to achievement predicates: the stored
// habit stats plus display-time context that is never persisted.
type AchievementSnapshot struct {
	HabitStats
	ProteinReachedToday bool
}

// Achievement is a fixed definition whose Requirement is re-evaluated over
// the current snapshot every time the achievements view loads. No
// unlocked-at state is recorded.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Requirement func(AchievementSnapshot) bool `json:"-"`
}

// Achievements is the fixed achievement catalog.
var Achievements = []Achievement{
	{
		ID:          "first_scan",
		Title:       "First Step",
		Description: "Scan your first food label",
		Icon:        "qr-code-scanner",
		Requirement: func(s AchievementSnapshot) bool { return s.TotalScans >= 1 },
	},
	{
		ID:          "streak_3",
		Title:       "Consistency",
		Description: "Log food for 3 days in a row",
		Icon:        "local-fire-department",
		Requirement: func(s AchievementSnapshot) bool { return s.CurrentStreak >= 3 },
	},
	{
		ID:          "protein_goal",
		Title:       "Protein Pro",
		Description: "Reach your protein target",
		Icon:        "fitness-center",
		Requirement: func(s AchievementSnapshot) bool { return s.ProteinReachedToday },
	},
	{
		ID:          "sugar_smart",
		Title:       "Sugar Smart",
		Description: "Scan 5 items with low sugar (<5g)",
		Icon:        "eco",
		Requirement: func(s AchievementSnapshot) bool { return s.LowSugarCount >= 5 },
	},
	{
		ID:          "week_warrior",
		Title:       "Week Warrior",
		Description: "Complete a full week of logging",
		Icon:        "calendar-today",
		Requirement: func(s AchievementSnapshot) bool { return s.TotalLoggedDays >= 7 },
	},
}

// UnlockedIDs returns the IDs of achievements whose requirement holds for
// the snapshot, in catalog order.
func UnlockedIDs(s AchievementSnapshot) []string {
	ids := make([]string, 0, len(Achievements))
	for _, a := range Achievements {
		if a.Requirement(s) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
