package jsonutils

import (
	"regexp"
	"strings"
)

var (
	reFence         = regexp.MustCompile("(?s)```(?:json)?(.*?)```")
	reObject        = regexp.MustCompile(`(?s)\{.*\}`)
	reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// ExtractJSON pulls the JSON object out of model output. The model is told to
// answer with bare JSON but frequently wraps it in a ```json fence anyway, so
// a fenced block wins over a raw {...} match.
func ExtractJSON(input string) string {
	// Strip BOMs and zero-width characters some models emit.
	input = strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\uFEFF' || r == '\u200B' || r == '\u200C' || r == '\u200D' {
			return -1
		}
		return r
	}, input))

	if match := reFence.FindStringSubmatch(input); len(match) > 1 {
		input = strings.TrimSpace(match[1])
	} else if match := reObject.FindString(input); match != "" {
		input = strings.TrimSpace(match)
	}

	// Trailing commas before } or ] are invalid JSON but common in model output.
	input = reTrailingComma.ReplaceAllString(input, "$1")

	return strings.TrimSpace(input)
}
