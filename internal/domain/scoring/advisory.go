package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

// Fallback explanations for the two degraded advisory states.
const (
	FallbackNoExplanation = "No explanation."
	FallbackUnavailable   = "AI risk assessment unavailable."
)

// AdvisoryResult is the numeric score and explanation extracted from the
// advisory collaborator's free-text reply.
type AdvisoryResult struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

var advisoryScoreRe = regexp.MustCompile(`\d{1,3}`)

// ParseAdvisory extracts a risk score and explanation from free text. The
// collaborator is prompted to lead with a 0-100 number, but its output format
// is not guaranteed, so extraction is defensive and never fails: the first
// 1-3 digit run anywhere in the text becomes the score (clamped to [0,100])
// and is removed from the explanation. Text with no digits scores zero.
func ParseAdvisory(text string) AdvisoryResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return AdvisoryUnavailable()
	}

	loc := advisoryScoreRe.FindStringIndex(trimmed)
	if loc == nil {
		return AdvisoryResult{Score: 0, Explanation: trimmed}
	}

	score, err := strconv.Atoi(trimmed[loc[0]:loc[1]])
	if err != nil {
		// 1-3 digits always parse; kept for symmetry with the never-throw contract
		return AdvisoryResult{Score: 0, Explanation: trimmed}
	}
	if score > 100 {
		score = 100
	}

	before := strings.TrimSpace(trimmed[:loc[0]])
	after := strings.TrimSpace(trimmed[loc[1]:])
	after = strings.TrimSpace(strings.TrimLeft(after, ".:,;-"))

	explanation := after
	if before != "" && after != "" {
		explanation = before + " " + after
	} else if before != "" {
		explanation = before
	}
	if explanation == "" {
		explanation = FallbackNoExplanation
	}

	return AdvisoryResult{Score: score, Explanation: explanation}
}

// AdvisoryUnavailable is the defined result when no advisory text exists at
// all: the collaborator is unconfigured, failed, or returned nothing. The scan
// proceeds on heuristic evidence alone.
func AdvisoryUnavailable() AdvisoryResult {
	return AdvisoryResult{Score: 0, Explanation: FallbackUnavailable}
}
