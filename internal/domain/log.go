package domain

import "context"

// VegetarianStatus classifies a product's dietary category.
type VegetarianStatus string

// Recognised vegetarian statuses. Unknown is the fallback when the
// analysis could not determine one.
const (
	StatusVegetarian    VegetarianStatus = "Vegetarian"
	StatusNonVegetarian VegetarianStatus = "Non-Vegetarian"
	StatusVegan         VegetarianStatus = "Vegan"
	StatusEggetarian    VegetarianStatus = "Eggetarian"
	StatusUnclear       VegetarianStatus = "Unclear"
	StatusUnknown       VegetarianStatus = "Unknown"
)

// Sugar holds the sugar breakdown from a label analysis.
type Sugar struct {
	LabelSugar   float64  `json:"labelSugar"`
	HiddenSugars []string `json:"hiddenSugars"`
}

// LogEntry is a single recorded food consumption event. The macro fields
// (Calories, Protein, Carbohydrates, TotalFat) are already portion-scaled
// at write time: stored value = base value from the analysis * Portions.
type LogEntry struct {
	ID               string           `json:"id"`
	UserID           int64            `json:"-"`
	ProductName      string           `json:"productName"`
	Timestamp        int64            `json:"timestamp"`
	Calories         float64          `json:"calories"`
	Protein          float64          `json:"protein"`
	Carbohydrates    float64          `json:"carbohydrates"`
	TotalFat         float64          `json:"totalFat"`
	Fiber            float64          `json:"fiber"`
	Sugar            Sugar            `json:"sugar"`
	HealthScore      int              `json:"healthScore"`
	VegetarianStatus VegetarianStatus `json:"vegetarianStatus"`
	Allergens        []string         `json:"allergens"`
	Alternatives     []string         `json:"alternatives"`
	Notes            string           `json:"notes"`
	Portions         float64          `json:"portions"`
	ImageURI         string           `json:"imageUri,omitempty"`
	Manual           bool             `json:"manual"`
}

// FoodLogRepository is the port for food log persistence. List returns the
// user's complete log collection; there is no store-side date filter, so
// day windows are applied in memory by the caller.
type FoodLogRepository interface {
	AddLogEntry(ctx context.Context, e LogEntry) (string, error)
	PutLogEntry(ctx context.Context, e LogEntry) error
	GetLogEntry(ctx context.Context, userID int64, id string) (*LogEntry, error)
	DeleteLogEntry(ctx context.Context, userID int64, id string) error
	ListLogEntries(ctx context.Context, userID int64) ([]LogEntry, error)
}
