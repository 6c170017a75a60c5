package vision

import (
	"testing"

	"labelscanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	raw, err := extractJSON("Here you go:\n```json\n{\"a\": 1}\n```")
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, raw)

	_, err = extractJSON("sorry, I cannot analyze this image")
	assert.ErrorIs(t, err, ErrNoJSON)

	// Greedy span: first '{' through last '}'.
	raw, err = extractJSON(`x {"a": {"b": 2}} y`)
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 2}}`, raw)
}

func TestParseAnalysis(t *testing.T) {
	text := "Sure! ```json\n" + `{
		"productName": "Choco Crunch",
		"vegetarianStatus": "Vegetarian",
		"healthScore": "42",
		"healthInsight": "Too much sugar for weight loss.",
		"servingDescription": "30 g (1 pack)",
		"calories": 152,
		"protein": "3.1",
		"carbohydrates": 18,
		"totalFat": 7.5,
		"fiber": "0",
		"sugar": {"labelSugar": "12", "hiddenSugars": ["maltodextrin"]},
		"allergens": ["Milk", "Nuts"],
		"alternatives": ["Oat bar"],
		"preservatives": [{"name": "Sodium benzoate", "concern": "irritant"}],
		"additives": []
	}` + "\n```"

	a, err := parseAnalysis(text)
	require.NoError(t, err)

	assert.Equal(t, "Choco Crunch", a.ProductName)
	assert.Equal(t, domain.StatusVegetarian, a.VegetarianStatus)
	assert.Equal(t, 42, a.HealthScore)
	assert.Equal(t, 152.0, a.Calories)
	assert.Equal(t, 3.1, a.Protein)
	assert.Equal(t, 12.0, a.Sugar.LabelSugar)
	assert.Equal(t, []string{"maltodextrin"}, a.Sugar.HiddenSugars)
	assert.Len(t, a.Preservatives, 1)
	assert.Empty(t, a.Additives)
}

func TestParseAnalysis_Defaults(t *testing.T) {
	a, err := parseAnalysis(`{"productName": "Mystery Snack", "calories": "Unknown"}`)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusUnknown, a.VegetarianStatus)
	assert.Zero(t, a.Calories)
	assert.NotNil(t, a.Allergens)
	assert.NotNil(t, a.Sugar.HiddenSugars)
}

func TestParseAnalysis_Malformed(t *testing.T) {
	_, err := parseAnalysis(`{"productName": "broken`)
	assert.Error(t, err)
}

func TestParseAnalysis_ScoreClamped(t *testing.T) {
	a, err := parseAnalysis(`{"healthScore": 130}`)
	require.NoError(t, err)
	assert.Equal(t, 100, a.HealthScore)
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt(domain.ScanProfile{VegType: "Vegan", Goal: domain.GoalMuscleGain})
	assert.Contains(t, p, "Vegetarian type: Vegan")
	assert.Contains(t, p, "Health goal: Muscle Gain")

	p = buildPrompt(domain.ScanProfile{})
	assert.Contains(t, p, "Vegetarian type: Vegetarian")
	assert.Contains(t, p, "Health goal: General Health")
}
