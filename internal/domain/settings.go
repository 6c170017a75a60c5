package domain

import (
	"context"
	"math"
)

// Health goals selectable during onboarding.
const (
	GoalGeneralHealth   = "General Health"
	GoalWeightLoss      = "Weight Loss"
	GoalMuscleGain      = "Muscle Gain"
	GoalHeartHealth     = "Heart Health"
	GoalDiabetesControl = "Diabetes Control"
)

// NutritionLimits are the daily targets calculated from the user's
// biometrics during onboarding.
type NutritionLimits struct {
	Calories int     `json:"calories"`
	Protein  int     `json:"protein"`
	Water    float64 `json:"water"`
}

// UserSettings holds the user's dietary profile, biometrics, calculated
// limits, and UI preferences. The aggregation core reads them; only the
// profile and onboarding flows write them.
type UserSettings struct {
	Diet             []string         `json:"diet"`
	Goal             string           `json:"goal"`
	Age              float64          `json:"age"`
	WeightKg         float64          `json:"weightKg"`
	HeightCm         float64          `json:"heightCm"`
	Gender           string           `json:"gender"`
	CalculatedLimits NutritionLimits  `json:"calculatedLimits"`
	Theme            string           `json:"theme"`
	RemindersEnabled bool             `json:"remindersEnabled"`
}

// SettingsRepository is the port for settings persistence. Get returns nil
// when the user has not onboarded yet.
type SettingsRepository interface {
	GetSettings(ctx context.Context, userID int64) (*UserSettings, error)
	PutSettings(ctx context.Context, userID int64, s UserSettings) error
}

const kgPerLb = 2.2046226218

// WeightToKg converts a weight value in the given unit ("kg" or "lb") to
// kilograms. Unrecognised units are returned unchanged.
func WeightToKg(v float64, unit string) float64 {
	if unit == "lb" {
		return v / kgPerLb
	}
	return v
}

// DefaultLimits are used before onboarding has calculated personal targets.
var DefaultLimits = NutritionLimits{Calories: 2000, Protein: 50, Water: 3}

// CalculateLimits derives daily calorie/protein/water targets from
// biometrics using Mifflin-St Jeor BMR with a sedentary activity factor,
// adjusted by health goal. Calories are floored at 1200.
func CalculateLimits(weightKg, heightCm, age float64, gender, goal string) NutritionLimits {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return DefaultLimits
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*age
	if gender == "Male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	tdee := bmr * 1.2

	calories := int(math.Round(tdee))
	protein := int(math.Round(weightKg * 0.8))

	switch goal {
	case GoalWeightLoss:
		calories -= 500
		protein = int(math.Round(weightKg * 1.5))
	case GoalMuscleGain:
		calories += 300
		protein = int(math.Round(weightKg * 1.8))
	case GoalHeartHealth, GoalDiabetesControl:
		protein = int(math.Round(weightKg * 1.0))
	}

	if calories < 1200 {
		calories = 1200
	}

	return NutritionLimits{Calories: calories, Protein: protein, Water: 3}
}
