package advisor

import (
	_ "embed"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"vitalaid/vitalaid/types"
)

// minEvaluatedConfidence floors the keyword score so that fully unmatched
// advice is still distinguishable from a parse failure scored as zero.
const minEvaluatedConfidence = 0.3

// Blend weights: the model's self-reported certainty is discounted with the
// independent keyword signal. Calibration values, keep exact.
const (
	modelWeight     = 0.7
	evaluatedWeight = 0.3
)

//go:embed advice_tables.yaml
var adviceTablesRaw []byte

type adviceTable struct {
	Keywords  []string `yaml:"keywords"`
	BlogLinks []string `yaml:"blogLinks"`
}

var adviceTables map[types.EmergencyType]adviceTable

func init() {
	parsed := map[string]adviceTable{}
	if err := yaml.Unmarshal(adviceTablesRaw, &parsed); err != nil {
		panic("advisor: bad advice_tables.yaml: " + err.Error())
	}
	adviceTables = make(map[types.EmergencyType]adviceTable, len(parsed))
	for key, table := range parsed {
		adviceTables[types.EmergencyType(key)] = table
	}
}

// EvaluateConfidence scores advice text by case-insensitive substring
// matching against the emergency type's keyword set, floored at 0.3.
func EvaluateConfidence(adviceText string, emergencyType types.EmergencyType) float64 {
	table, ok := adviceTables[emergencyType]
	if !ok || len(table.Keywords) == 0 {
		return minEvaluatedConfidence
	}
	lowered := strings.ToLower(adviceText)
	matched := 0
	for _, keyword := range table.Keywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			matched++
		}
	}
	score := float64(matched) / float64(len(table.Keywords))
	return math.Max(minEvaluatedConfidence, score)
}

// BlendConfidence combines the model-reported confidence with the evaluated
// keyword score.
func BlendConfidence(modelConfidence, evaluatedConfidence float64) float64 {
	return modelConfidence*modelWeight + evaluatedConfidence*evaluatedWeight
}

// FallbackBlogLinks returns the curated reference pair for an emergency type,
// used when the model omits links.
func FallbackBlogLinks(emergencyType types.EmergencyType) []string {
	table, ok := adviceTables[emergencyType]
	if !ok {
		return nil
	}
	links := make([]string, len(table.BlogLinks))
	copy(links, table.BlogLinks)
	return links
}
