package types

type AdviceRequest struct {
	EmergencyType string `json:"emergencyType"`
	UserMessage   string `json:"userMessage"`
}

type ContinueRequest struct {
	UserMessage string `json:"userMessage"`
}

// AdviceResult is derived per call from the parsed model output plus the
// blended confidence; it is never persisted as its own row.
type AdviceResult struct {
	Content           string   `json:"content"`
	RecommendedAction string   `json:"recommendedAction"`
	Confidence        float64  `json:"confidence"`
	BlogLinks         []string `json:"blogLinks"`
	SessionID         string   `json:"sessionId,omitempty"`
}
