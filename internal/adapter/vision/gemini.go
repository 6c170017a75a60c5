// Package vision implements the label-analysis adapter on the Gemini API.
package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"labelscanner/internal/domain"

	"google.golang.org/genai"
)

// ErrNoJSON indicates the model response contained no JSON object.
var ErrNoJSON = errors.New("no JSON object found in model response")

const defaultModel = "gemini-2.0-flash"

// GeminiAnalyzer sends a label image plus a schema prompt to Gemini and
// parses the single JSON object embedded in the response text.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

// NewGeminiAnalyzer creates a GeminiAnalyzer. model may be empty to use
// the default.
func NewGeminiAnalyzer(ctx context.Context, apiKey, model string) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiAnalyzer{client: client, model: model}, nil
}

// AnalyzeLabel sends one request carrying the JPEG bytes inline plus the
// prompt embedding the user's dietary profile. A malformed response (no
// JSON object, or a parse failure) surfaces as an error; there is no
// automatic retry.
func (g *GeminiAnalyzer) AnalyzeLabel(ctx context.Context, image []byte, profile domain.ScanProfile) (*domain.LabelAnalysis, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(buildPrompt(profile)),
			genai.NewPartFromBytes(image, "image/jpeg"),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}

	return parseAnalysis(resp.Text())
}

// buildPrompt renders the fixed analysis prompt with the user's diet type
// and health goal so the score and insight reflect their profile.
func buildPrompt(p domain.ScanProfile) string {
	vegType := p.VegType
	if vegType == "" {
		vegType = "Vegetarian"
	}
	goal := p.Goal
	if goal == "" {
		goal = domain.GoalGeneralHealth
	}

	return fmt.Sprintf(`Analyze this product's nutrition label and ingredients (from OCR or image)
and return ONLY a valid JSON object (no markdown, no extra text).

FOCUS AREAS:
1) Sugar (per serving)
2) Hidden sugars
3) Preservatives
4) Additives / colours / flavour enhancers
5) Overall vegetarian status and health impact

User profile:
- Vegetarian type: %s
- Health goal: %s

When writing "healthInsight", adapt it to this goal.

Use this schema exactly:

{
  "productName": "short name of the product",
  "vegetarianStatus": "Vegetarian / Non-Vegetarian / Vegan / Unclear",
  "healthScore": "number (0-100), based on how well this product fits the user profile and goal. 100 is excellent, 0 is terrible.",
  "healthInsight": "one VERY short sentence (max 15 words) quick verdict.",
  "servingDescription": "serving size and unit if available, e.g. 30 g (1 pack)",
  "calories": "number (kcal per serving)",
  "protein": "number (g per serving)",
  "carbohydrates": "number (g per serving, total carbohydrates)",
  "totalFat": "number (g per serving)",
  "fiber": "number (g per serving)",
  "sugar": {
    "labelSugar": "number (g per serving)",
    "hiddenSugars": ["list of hidden sugar types found"]
  },
  "allergens": ["list of allergens detected, e.g. Milk, Nuts, Gluten"],
  "alternatives": ["3 specific healthier product alternatives better for their goal (e.g. Muscle Gain)"],
  "preservatives": [
    { "name": "e.g. Sodium benzoate", "concern": "short concern" }
  ],
  "additives": [
    { "name": "e.g. MSG", "concern": "short concern" }
  ]
}

Rules:
- Prefer PER SERVING values over per 100 g.
- If a field is unknown, use a sensible default: numbers as "0" and strings as "Unknown".
- **healthScore**: Be strict. High sugar/preservatives should lower the score significantly for weight loss/health goals.
- Output must be ONLY the JSON.
`, vegType, goal)
}

// parseAnalysis extracts the first {...} span from the response text and
// decodes it. The prompt tells the model to default unknown numbers to the
// string "0", so numeric fields tolerate both forms.
func parseAnalysis(text string) (*domain.LabelAnalysis, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var doc analysisDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parse analysis JSON: %w", err)
	}
	return doc.toDomain(), nil
}

// extractJSON returns the span from the first '{' through the last '}'.
func extractJSON(s string) (string, error) {
	i := strings.IndexByte(s, '{')
	j := strings.LastIndexByte(s, '}')
	if i < 0 || j < i {
		return "", ErrNoJSON
	}
	return s[i : j+1], nil
}

// flexFloat unmarshals a JSON number whether it arrives bare or quoted.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" || s == "Unknown" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type sugarDoc struct {
	LabelSugar   flexFloat `json:"labelSugar"`
	HiddenSugars []string  `json:"hiddenSugars"`
}

type analysisDoc struct {
	ProductName        string           `json:"productName"`
	VegetarianStatus   string           `json:"vegetarianStatus"`
	HealthScore        flexFloat        `json:"healthScore"`
	HealthInsight      string           `json:"healthInsight"`
	ServingDescription string           `json:"servingDescription"`
	Calories           flexFloat        `json:"calories"`
	Protein            flexFloat        `json:"protein"`
	Carbohydrates      flexFloat        `json:"carbohydrates"`
	TotalFat           flexFloat        `json:"totalFat"`
	Fiber              flexFloat        `json:"fiber"`
	Sugar              sugarDoc         `json:"sugar"`
	Allergens          []string         `json:"allergens"`
	Alternatives       []string         `json:"alternatives"`
	Preservatives      []domain.Concern `json:"preservatives"`
	Additives          []domain.Concern `json:"additives"`
}

func (d *analysisDoc) toDomain() *domain.LabelAnalysis {
	status := domain.VegetarianStatus(d.VegetarianStatus)
	if status == "" {
		status = domain.StatusUnknown
	}

	score := int(d.HealthScore)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &domain.LabelAnalysis{
		ProductName:        d.ProductName,
		VegetarianStatus:   status,
		HealthScore:        score,
		HealthInsight:      d.HealthInsight,
		ServingDescription: d.ServingDescription,
		Calories:           float64(d.Calories),
		Protein:            float64(d.Protein),
		Carbohydrates:      float64(d.Carbohydrates),
		TotalFat:           float64(d.TotalFat),
		Fiber:              float64(d.Fiber),
		Sugar: domain.Sugar{
			LabelSugar:   float64(d.Sugar.LabelSugar),
			HiddenSugars: orEmpty(d.Sugar.HiddenSugars),
		},
		Allergens:     orEmpty(d.Allergens),
		Alternatives:  orEmpty(d.Alternatives),
		Preservatives: d.Preservatives,
		Additives:     d.Additives,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
