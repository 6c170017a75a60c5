package app

import (
	"context"
	"errors"

	"labelscanner/internal/domain"
)

// Validation errors surfaced to the onboarding form.
var (
	ErrMissingDiet       = errors.New("at least one diet preference is required")
	ErrMissingGoal       = errors.New("a health goal is required")
	ErrInvalidBiometrics = errors.New("age, weight and height must be positive numbers")
)

// SettingsService manages the user's dietary profile and UI preferences.
type SettingsService struct {
	settings domain.SettingsRepository
}

// NewSettingsService creates a SettingsService backed by the given repository.
func NewSettingsService(sr domain.SettingsRepository) *SettingsService {
	return &SettingsService{settings: sr}
}

// OnboardingInput is the profile a user submits after first sign-in.
type OnboardingInput struct {
	Diet       []string `json:"diet"`
	Goal       string   `json:"goal"`
	Age        float64  `json:"age"`
	Weight     float64  `json:"weight"`
	WeightUnit string   `json:"weightUnit"`
	Height     float64  `json:"height"`
	Gender     string   `json:"gender"`
}

// Onboard validates the profile, calculates the nutrition limits, and
// stores the settings. An existing theme preference is preserved.
func (s *SettingsService) Onboard(ctx context.Context, userID int64, in OnboardingInput) (*domain.UserSettings, error) {
	if len(in.Diet) == 0 {
		return nil, ErrMissingDiet
	}
	if in.Goal == "" {
		return nil, ErrMissingGoal
	}
	if in.Age <= 0 || in.Weight <= 0 || in.Height <= 0 {
		return nil, ErrInvalidBiometrics
	}

	weightKg := domain.WeightToKg(in.Weight, in.WeightUnit)
	limits := domain.CalculateLimits(weightKg, in.Height, in.Age, in.Gender, in.Goal)

	theme := "light"
	reminders := false
	if prior, err := s.settings.GetSettings(ctx, userID); err == nil && prior != nil {
		if prior.Theme != "" {
			theme = prior.Theme
		}
		reminders = prior.RemindersEnabled
	}

	set := domain.UserSettings{
		Diet:             in.Diet,
		Goal:             in.Goal,
		Age:              in.Age,
		WeightKg:         weightKg,
		HeightCm:         in.Height,
		Gender:           in.Gender,
		CalculatedLimits: limits,
		Theme:            theme,
		RemindersEnabled: reminders,
	}
	if err := s.settings.PutSettings(ctx, userID, set); err != nil {
		return nil, err
	}
	return &set, nil
}

// Get returns the user's settings, falling back to defaults before
// onboarding so readers always see usable limits.
func (s *SettingsService) Get(ctx context.Context, userID int64) (*domain.UserSettings, error) {
	set, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return &domain.UserSettings{CalculatedLimits: domain.DefaultLimits, Theme: "light"}, nil
	}
	return set, nil
}

// Update overwrites the stored settings wholesale.
func (s *SettingsService) Update(ctx context.Context, userID int64, set domain.UserSettings) error {
	return s.settings.PutSettings(ctx, userID, set)
}

// SetTheme updates just the theme preference.
func (s *SettingsService) SetTheme(ctx context.Context, userID int64, theme string) error {
	if theme != "light" && theme != "dark" {
		return errors.New("theme must be \"light\" or \"dark\"")
	}
	set, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	set.Theme = theme
	return s.settings.PutSettings(ctx, userID, *set)
}

// ScanProfile reduces the settings to the prompt inputs for a label scan.
func (s *SettingsService) ScanProfile(ctx context.Context, userID int64) (domain.ScanProfile, error) {
	p := domain.ScanProfile{VegType: "Vegetarian", Goal: domain.GoalGeneralHealth}
	set, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		return p, err
	}
	if set == nil {
		return p, nil
	}
	if len(set.Diet) > 0 {
		p.VegType = joinDiet(set.Diet)
	}
	if set.Goal != "" {
		p.Goal = set.Goal
	}
	return p, nil
}

func joinDiet(diet []string) string {
	out := diet[0]
	for _, d := range diet[1:] {
		out += ", " + d
	}
	return out
}
