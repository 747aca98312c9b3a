package ai

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"
)

// ErrUnparseable means the model returned text with no usable JSON payload.
var ErrUnparseable = errors.New("could not parse structured data from AI response")

// NutritionEstimate is the normalized output of a nutrition completion.
// Every field has a value after normalization; downstream consumers never
// branch on absence.
type NutritionEstimate struct {
	Description string  `json:"description"`
	Calories    int     `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	FiberG      float64 `json:"fiber_g"`
	SugarG      float64 `json:"sugar_g"`
	SodiumMg    int     `json:"sodium_mg"`
	ServingSize string  `json:"serving_size"`
	Confidence  string  `json:"confidence"`
}

var confidenceLevels = map[string]bool{"high": true, "medium": true, "low": true}

// ExtractJSON locates the JSON object embedded in raw model output. Models
// wrap JSON in markdown fences and surround it with commentary despite
// instructions not to, so this strips a leading fence (with or without a
// language tag), a trailing fence, and anything outside the outermost braces.
// Malformed payloads get one repair attempt before giving up.
func ExtractJSON(raw string) (string, error) {
	content := strings.TrimSpace(raw)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		// language tag, e.g. ```json
		if idx := strings.IndexByte(content, '\n'); idx >= 0 && !strings.ContainsAny(content[:idx], "{}") {
			content = content[idx+1:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", ErrUnparseable
	}
	candidate := content[start : end+1]

	if gjson.Valid(candidate) {
		return candidate, nil
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil || !gjson.Valid(repaired) {
		return "", ErrUnparseable
	}
	return repaired, nil
}

// NormalizeNutrition converts raw model text into a fully-populated
// NutritionEstimate. Missing or non-numeric fields coerce to zero; decimal
// gram fields round to one fractional digit; calories and sodium round to
// whole numbers; confidence must be one of high/medium/low or it defaults to
// medium. query is the original food term, used for the description fallback.
func NormalizeNutrition(raw, query string) (*NutritionEstimate, error) {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(gjson.Get(payload, "description").String())
	if description == "" {
		description = fmt.Sprintf("Estimated nutrition for %s", query)
	}

	servingSize := strings.TrimSpace(gjson.Get(payload, "serving_size").String())
	if servingSize == "" {
		servingSize = "1 serving"
	}

	confidence := strings.ToLower(strings.TrimSpace(gjson.Get(payload, "confidence").String()))
	if !confidenceLevels[confidence] {
		confidence = "medium"
	}

	return &NutritionEstimate{
		Description: description,
		Calories:    wholeNumber(gjson.Get(payload, "calories").Float()),
		ProteinG:    oneDecimal(gjson.Get(payload, "protein_g").Float()),
		CarbsG:      oneDecimal(gjson.Get(payload, "carbs_g").Float()),
		FatG:        oneDecimal(gjson.Get(payload, "fat_g").Float()),
		FiberG:      oneDecimal(gjson.Get(payload, "fiber_g").Float()),
		SugarG:      oneDecimal(gjson.Get(payload, "sugar_g").Float()),
		SodiumMg:    wholeNumber(gjson.Get(payload, "sodium_mg").Float()),
		ServingSize: servingSize,
		Confidence:  confidence,
	}, nil
}

func oneDecimal(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	return math.Round(x*10) / 10
}

func wholeNumber(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	return int(math.Round(x))
}
