package advisor

import (
	"encoding/json"
	"strings"

	"vitalaid/vitalaid/types"
	"vitalaid/vitalaid/utils/jsonutils"
)

type geminiEnvelope struct {
	Error      *json.RawMessage `json:"error"`
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// rawAdvice mirrors the JSON object the model is instructed to emit.
// Pointers distinguish a missing field from a zero value.
type rawAdvice struct {
	Content           *string  `json:"c"`
	RecommendedAction *string  `json:"recommendedAction"`
	Confidence        *float64 `json:"confidence"`
	BlogLinks         []string `json:"blogLinks"`
}

// ParseAdvice validates a raw generateContent envelope and extracts the
// embedded advice object. Envelope-level problems surface as UPSTREAM_ERROR,
// a readable envelope with a broken inner payload as MALFORMED_ADVICE.
// Neither is retried: the upstream already answered, so a retry would just
// replay the same broken reply. Confidence here is the model-reported value;
// blending happens in the orchestrator.
func ParseAdvice(raw string, emergencyType types.EmergencyType) (types.AdviceResult, error) {
	var envelope geminiEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return types.AdviceResult{}, types.WrapFailure(types.UpstreamError, "gemini envelope is not valid JSON", err)
	}
	if envelope.Error != nil {
		return types.AdviceResult{}, types.NewFailure(types.UpstreamError, "gemini returned an error envelope")
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return types.AdviceResult{}, types.NewFailure(types.UpstreamError, "gemini envelope carries no generated text")
	}

	inner := jsonutils.ExtractJSON(envelope.Candidates[0].Content.Parts[0].Text)

	var parsed rawAdvice
	if err := json.Unmarshal([]byte(inner), &parsed); err != nil {
		return types.AdviceResult{}, types.WrapFailure(types.MalformedAdvice, "advice payload is not valid JSON", err)
	}
	if parsed.Content == nil || strings.TrimSpace(*parsed.Content) == "" {
		return types.AdviceResult{}, types.NewFailure(types.MalformedAdvice, "advice text is missing")
	}
	if parsed.RecommendedAction == nil {
		return types.AdviceResult{}, types.NewFailure(types.MalformedAdvice, "recommendedAction is missing")
	}
	if parsed.Confidence == nil || *parsed.Confidence < 0 || *parsed.Confidence > 1 {
		return types.AdviceResult{}, types.NewFailure(types.MalformedAdvice, "confidence is missing or out of range")
	}

	links := parsed.BlogLinks
	if len(links) == 0 {
		links = FallbackBlogLinks(emergencyType)
	}

	return types.AdviceResult{
		Content:           *parsed.Content,
		RecommendedAction: *parsed.RecommendedAction,
		Confidence:        *parsed.Confidence,
		BlogLinks:         links,
	}, nil
}
