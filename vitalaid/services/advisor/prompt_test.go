package advisor

import (
	"strings"
	"testing"

	"vitalaid/vitalaid/types"
)

func textOf(t *testing.T, et types.EmergencyType, msg string, followUp bool) string {
	t.Helper()
	req := BuildPrompt(et, msg, followUp)
	if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
		t.Fatalf("expected one content with one part, got %+v", req)
	}
	return req.Contents[0].Parts[0].Text
}

func TestBuildPromptInitialFraming(t *testing.T) {
	text := textOf(t, types.Burns, "my hand is badly burned", false)

	if !strings.HasPrefix(text, initialIntro) {
		t.Errorf("initial prompt should open with the first-consultation framing")
	}
	if strings.Contains(text, followUpIntro) {
		t.Errorf("initial prompt must not carry the follow-up framing")
	}
	if !strings.Contains(text, "- Emergency Type: BURNS") {
		t.Errorf("prompt missing emergency type line: %q", text)
	}
	if !strings.Contains(text, `- User Message: "my hand is badly burned"`) {
		t.Errorf("prompt must carry the verbatim user message")
	}
}

func TestBuildPromptFollowUpFraming(t *testing.T) {
	text := textOf(t, types.Burns, "the blister burst", true)

	if !strings.HasPrefix(text, followUpIntro) {
		t.Errorf("follow-up prompt should open with the continued-session framing")
	}
}

func TestBuildPromptRequestsSchema(t *testing.T) {
	text := textOf(t, types.Choking, "help", false)

	for _, required := range []string{`"c"`, `"recommendedAction"`, `"confidence"`, `"blogLinks"`} {
		if !strings.Contains(text, required) {
			t.Errorf("prompt missing schema key %s", required)
		}
	}
	if !strings.Contains(text, "without using markdown formatting") {
		t.Errorf("prompt must forbid markdown emphasis")
	}
	if !strings.Contains(text, "two blog article links") {
		t.Errorf("prompt must request two reference links")
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	a := textOf(t, types.Seizure, "he is convulsing", true)
	b := textOf(t, types.Seizure, "he is convulsing", true)
	if a != b {
		t.Errorf("identical inputs must produce identical prompts")
	}
}
