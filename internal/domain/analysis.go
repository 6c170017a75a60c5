package domain

// Concern names an ingredient of note and why it matters.
type Concern struct {
	Name    string `json:"name"`
	Concern string `json:"concern"`
}

// LabelAnalysis is the structured result of analyzing a food label image.
// All nutrient values are per serving, unscaled by portions.
type LabelAnalysis struct {
	ProductName        string           `json:"productName"`
	VegetarianStatus   VegetarianStatus `json:"vegetarianStatus"`
	HealthScore        int              `json:"healthScore"`
	HealthInsight      string           `json:"healthInsight"`
	ServingDescription string           `json:"servingDescription"`
	Calories           float64          `json:"calories"`
	Protein            float64          `json:"protein"`
	Carbohydrates      float64          `json:"carbohydrates"`
	TotalFat           float64          `json:"totalFat"`
	Fiber              float64          `json:"fiber"`
	Sugar              Sugar            `json:"sugar"`
	Allergens          []string         `json:"allergens"`
	Alternatives       []string         `json:"alternatives"`
	Preservatives      []Concern        `json:"preservatives"`
	Additives          []Concern        `json:"additives"`
}

// ScanProfile is the slice of user settings embedded into the analysis
// prompt so the insight and score reflect the user's diet and goal.
type ScanProfile struct {
	VegType string
	Goal    string
}
