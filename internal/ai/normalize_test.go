package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bananaJSON = `{"description":"1 medium banana","calories":105.4,"protein_g":1.34,"carbs_g":27,"fat_g":0.4,"fiber_g":3.1,"sugar_g":14.4,"sodium_mg":1.2,"serving_size":"1 medium","confidence":"high"}`

func TestNormalizeNutritionWellFormed(t *testing.T) {
	got, err := NormalizeNutrition(bananaJSON, "banana")
	require.NoError(t, err)

	assert.Equal(t, "1 medium banana", got.Description)
	assert.Equal(t, 105, got.Calories)
	assert.Equal(t, 1.3, got.ProteinG)
	assert.Equal(t, 27.0, got.CarbsG)
	assert.Equal(t, 0.4, got.FatG)
	assert.Equal(t, 3.1, got.FiberG)
	assert.Equal(t, 14.4, got.SugarG)
	assert.Equal(t, 1, got.SodiumMg)
	assert.Equal(t, "1 medium", got.ServingSize)
	assert.Equal(t, "high", got.Confidence)
}

func TestNormalizeNutritionToleratesWrappers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n" + bananaJSON + "\n```"},
		{"bare fence", "```\n" + bananaJSON + "\n```"},
		{"leading prose", "Sure! Here is the estimate:\n" + bananaJSON},
		{"prose and fence", "Sure! ```json\n" + bananaJSON + "\n```"},
		{"trailing prose", bananaJSON + "\nLet me know if you need more."},
	}

	want, err := NormalizeNutrition(bananaJSON, "banana")
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeNutrition(tt.raw, "banana")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestNormalizeNutritionDefaults(t *testing.T) {
	got, err := NormalizeNutrition(`{"calories":"not a number"}`, "oatmeal")
	require.NoError(t, err)

	assert.Contains(t, got.Description, "oatmeal")
	assert.Zero(t, got.Calories)
	assert.Zero(t, got.ProteinG)
	assert.Zero(t, got.CarbsG)
	assert.Zero(t, got.FatG)
	assert.Zero(t, got.FiberG)
	assert.Zero(t, got.SugarG)
	assert.Zero(t, got.SodiumMg)
	assert.Equal(t, "1 serving", got.ServingSize)
	assert.Equal(t, "medium", got.Confidence)
}

func TestNormalizeNutritionConfidenceValidation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"high", "high"},
		{"LOW", "low"},
		{" Medium ", "medium"},
		{"maybe", "medium"},
		{"", "medium"},
	}
	for _, tt := range tests {
		got, err := NormalizeNutrition(`{"confidence":"`+tt.in+`"}`, "rice")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Confidence, "confidence %q", tt.in)
	}
}

func TestNormalizeNutritionUnparseable(t *testing.T) {
	_, err := NormalizeNutrition("I cannot help with that.", "banana")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestExtractJSONRepairsMalformedPayload(t *testing.T) {
	// Single quotes and unquoted keys are common model mistakes.
	payload, err := ExtractJSON("```json\n{description: '1 cup rice', calories: 205,}\n```")
	require.NoError(t, err)

	got, err := NormalizeNutrition(payload, "rice")
	require.NoError(t, err)
	assert.Equal(t, "1 cup rice", got.Description)
	assert.Equal(t, 205, got.Calories)
}

func TestExtractJSONNoBraces(t *testing.T) {
	_, err := ExtractJSON("calories are about two hundred")
	assert.ErrorIs(t, err, ErrUnparseable)
}
