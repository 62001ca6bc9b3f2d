package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAdvisory(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		score       int
		explanation string
	}{
		{
			name:        "leading score",
			text:        "85 High risk due to credential exposure",
			score:       85,
			explanation: "High risk due to credential exposure",
		},
		{
			name:        "score with separator",
			text:        "40: Moderately suspicious domain structure.",
			score:       40,
			explanation: "Moderately suspicious domain structure.",
		},
		{
			name:        "score buried mid-text",
			text:        "Risk is 72 because several vendors flag this host",
			score:       72,
			explanation: "Risk is because several vendors flag this host",
		},
		{
			name:        "no digits keeps full text",
			text:        "This URL looks benign to me",
			score:       0,
			explanation: "This URL looks benign to me",
		},
		{
			name:        "bare number",
			text:        "95",
			score:       95,
			explanation: FallbackNoExplanation,
		},
		{
			name:        "surrounding whitespace",
			text:        "  10  low risk  ",
			score:       10,
			explanation: "low risk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAdvisory(tt.text)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.explanation, got.Explanation)
		})
	}
}

func TestParseAdvisoryClampsScore(t *testing.T) {
	got := ParseAdvisory("999 off the chart")
	assert.Equal(t, 100, got.Score)

	// scores are non-negative by construction: the pattern has no sign
	got = ParseAdvisory("0 nothing to see")
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, "nothing to see", got.Explanation)
}

func TestParseAdvisoryEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		got := ParseAdvisory(text)
		assert.Equal(t, 0, got.Score)
		assert.Equal(t, FallbackUnavailable, got.Explanation)
	}
}

func TestAdvisoryUnavailable(t *testing.T) {
	got := AdvisoryUnavailable()
	assert.Zero(t, got.Score)
	assert.Equal(t, FallbackUnavailable, got.Explanation)
}
