package advisor

import (
	"vitalaid/vitalaid/services/llm"
	"vitalaid/vitalaid/types"
)

const (
	initialIntro  = "Please provide first aid advice for the following emergency situation."
	followUpIntro = "The following is a follow-up message from the user during the ongoing emergency consultation session."
)

// BuildPrompt assembles the generateContent payload. Pure and deterministic;
// callers validate the emergency type and the message before this point.
// The instruction demands bare JSON with fixed keys, plain text without
// markdown emphasis, and exactly two reference links.
func BuildPrompt(emergencyType types.EmergencyType, userMessage string, followUp bool) llm.GenerateRequest {
	intro := initialIntro
	if followUp {
		intro = followUpIntro
	}

	prompt := intro + "\n" +
		"- Emergency Type: " + string(emergencyType) + "\n" +
		"- User Message: \"" + userMessage + "\"\n" +
		"Based on this information, provide first aid advice without using markdown formatting like **bold**.\n" +
		"Additionally, suggest two blog article links that explain self-care methods related to the symptoms.\n" +
		"The 'confidence' field must be a number between 0.0 and 1.0 indicating how confident you are in the accuracy and reliability of the advice you are providing. Set this value based on your understanding of the situation.\n" +
		"The response must strictly follow the JSON format below:\n" +
		"{\n" +
		"  \"c\": \"Advice text\",\n" +
		"  \"recommendedAction\": \"Recommended action\",\n" +
		"  \"confidence\": number (0.0 ~ 1.0),\n" +
		"  \"blogLinks\": [\"link1\", \"link2\"]\n" +
		"}"

	return llm.GenerateRequest{
		Contents: []llm.Content{
			{Parts: []llm.Part{{Text: prompt}}},
		},
	}
}
