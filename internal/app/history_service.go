package app

import (
	"context"
	"math"
	"time"

	"labelscanner/internal/domain"
)

// HistoryService produces per-day and weekly summaries from the log
// collections. Unlike the totals cache it never writes anything.
type HistoryService struct {
	foodLogs  domain.FoodLogRepository
	waterLogs domain.WaterLogRepository
	settings  domain.SettingsRepository
}

// NewHistoryService creates a HistoryService backed by the given repositories.
func NewHistoryService(fl domain.FoodLogRepository, wl domain.WaterLogRepository, sr domain.SettingsRepository) *HistoryService {
	return &HistoryService{foodLogs: fl, waterLogs: wl, settings: sr}
}

// DayPoint is a single per-day data point returned by GetDaily.
type DayPoint struct {
	Day      string  `json:"day"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	TotalFat float64 `json:"totalFat"`
	Water    float64 `json:"water"`
	Logged   bool    `json:"logged"`
}

// GetDaily returns one point per local day for the last days days, oldest
// first. Both collections are fetched once and bucketed by day key.
func (s *HistoryService) GetDaily(ctx context.Context, userID int64, days int) ([]DayPoint, error) {
	if days < 1 {
		days = 1
	}
	if days > 366 {
		days = 366
	}

	logs, err := s.foodLogs.ListLogEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	waters, err := s.waterLogs.ListWaterEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		calories, protein, carbs, fat, water float64
		logged                               bool
	}
	buckets := make(map[string]*bucket, days)
	get := func(day string) *bucket {
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		return b
	}

	for _, l := range logs {
		b := get(domain.DayKey(l.Timestamp))
		b.calories += l.Calories
		b.protein += l.Protein
		b.carbs += l.Carbohydrates
		b.fat += l.TotalFat
		b.logged = true
	}
	for _, w := range waters {
		get(domain.DayKey(w.Timestamp)).water += w.Amount
	}

	today := time.Now().In(time.Local)
	points := make([]DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := domain.LocalDayString(today.AddDate(0, 0, -i))
		p := DayPoint{Day: day}
		if b, ok := buckets[day]; ok {
			p.Calories = domain.RoundCalories(b.calories)
			p.Protein = domain.Round1(b.protein)
			p.Carbs = domain.Round1(b.carbs)
			p.TotalFat = domain.Round1(b.fat)
			p.Water = domain.Round2(b.water)
			p.Logged = b.logged
		}
		points = append(points, p)
	}
	return points, nil
}

// WeeklySnapshot summarizes the last seven days.
type WeeklySnapshot struct {
	AvgCalories int        `json:"avgCalories"`
	LoggedDays  int        `json:"loggedDays"`
	BestGoal    string     `json:"bestGoal"`
	Days        []DayPoint `json:"days"`
}

// GetWeekly computes the weekly snapshot: average calories over days that
// have at least one food log, the count of such days, and which target
// (protein or calories) the user tracked closest to.
func (s *HistoryService) GetWeekly(ctx context.Context, userID int64) (*WeeklySnapshot, error) {
	points, err := s.GetDaily(ctx, userID, 7)
	if err != nil {
		return nil, err
	}

	snap := &WeeklySnapshot{Days: points, BestGoal: "Protein"}

	var totalCal, totalProt float64
	for _, p := range points {
		if !p.Logged {
			continue
		}
		snap.LoggedDays++
		totalCal += float64(p.Calories)
		totalProt += p.Protein
	}
	if snap.LoggedDays == 0 {
		return snap, nil
	}
	snap.AvgCalories = domain.RoundCalories(totalCal / float64(snap.LoggedDays))

	limits := domain.DefaultLimits
	if set, err := s.settings.GetSettings(ctx, userID); err == nil && set != nil && set.CalculatedLimits.Calories > 0 {
		limits = set.CalculatedLimits
	}

	n := float64(snap.LoggedDays)
	proteinRatio := totalProt / n / float64(limits.Protein)
	calorieRatio := totalCal / n / float64(limits.Calories)
	// Best adherence: protein is a floor, calories a ceiling.
	if math.Min(proteinRatio, 1) < math.Min(1/math.Max(calorieRatio, 1e-9), 1) {
		snap.BestGoal = "Calories"
	}
	return snap, nil
}
