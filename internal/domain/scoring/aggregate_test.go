package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scanguard/internal/config"
	"scanguard/internal/domain/models"
)

func defaultEngine() *Engine {
	return NewEngine(config.ScoringConfig{
		AdvisoryWeight:  0.6,
		HeuristicWeight: 0.4,
		MediumColor:     ColorBlue,
	})
}

func TestAggregateBlend(t *testing.T) {
	e := defaultEngine()

	tests := []struct {
		name      string
		heuristic HeuristicScore
		advisory  AdvisoryResult
		final     int
	}{
		{"both zero", HeuristicScore{Cap: PhishingCap}, AdvisoryResult{}, 0},
		{"advisory only", HeuristicScore{Cap: IPDomainCap}, AdvisoryResult{Score: 100}, 60},
		{"heuristic only", HeuristicScore{Score: 60, Cap: IPDomainCap}, AdvisoryResult{}, 24},
		{"typical blend", HeuristicScore{Score: 52, Cap: IPDomainCap}, AdvisoryResult{Score: 85}, 72}, // 51 + 20.8 rounds to 72
		{"fractional blend", HeuristicScore{Score: 74, Cap: PhishingCap}, AdvisoryResult{Score: 71}, 72}, // 42.6 + 29.6 = 72.2
		{"max phishing", HeuristicScore{Score: 80, Cap: PhishingCap}, AdvisoryResult{Score: 100}, 92},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Aggregate(tt.heuristic, tt.advisory)
			assert.Equal(t, tt.final, got.FinalScore)
			assert.GreaterOrEqual(t, got.FinalScore, 0)
			assert.LessOrEqual(t, got.FinalScore, 100)
		})
	}
}

func TestAggregateClampsOutOfRangeInputs(t *testing.T) {
	e := defaultEngine()

	// heuristic above its cap is clamped to the cap before blending
	got := e.Aggregate(HeuristicScore{Score: 500, Cap: DataLeakCap}, AdvisoryResult{Score: 100})
	assert.Equal(t, 84, got.FinalScore) // 60 + 24

	// advisory above 100 and negative heuristic are both clamped
	got = e.Aggregate(HeuristicScore{Score: -10, Cap: DataLeakCap}, AdvisoryResult{Score: 400})
	assert.Equal(t, 60, got.FinalScore)
}

func TestAggregateIsDeterministic(t *testing.T) {
	e := defaultEngine()
	h := HeuristicScore{Score: 40, Cap: DataLeakCap}
	adv := AdvisoryResult{Score: 55, Explanation: "exposed credentials"}

	first := e.Aggregate(h, adv)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Aggregate(h, adv))
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		score int
		level models.RiskLevel
	}{
		{0, models.RiskLevelLow},
		{29, models.RiskLevelLow},
		{30, models.RiskLevelMedium},
		{59, models.RiskLevelMedium},
		{60, models.RiskLevelHigh},
		{84, models.RiskLevelHigh},
		{85, models.RiskLevelCritical},
		{100, models.RiskLevelCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, Classify(tt.score), "score %d", tt.score)
	}
}

func TestColorFor(t *testing.T) {
	e := defaultEngine()
	assert.Equal(t, ColorGreen, e.ColorFor(models.RiskLevelLow))
	assert.Equal(t, ColorBlue, e.ColorFor(models.RiskLevelMedium))
	assert.Equal(t, ColorRed, e.ColorFor(models.RiskLevelHigh))
	assert.Equal(t, ColorRed, e.ColorFor(models.RiskLevelCritical))
}

func TestColorForConfigurableMedium(t *testing.T) {
	e := NewEngine(config.ScoringConfig{
		AdvisoryWeight:  0.6,
		HeuristicWeight: 0.4,
		MediumColor:     ColorPurple,
	})
	assert.Equal(t, ColorPurple, e.ColorFor(models.RiskLevelMedium))
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(config.ScoringConfig{})
	got := e.Aggregate(HeuristicScore{Score: 50, Cap: IPDomainCap}, AdvisoryResult{Score: 50})
	assert.Equal(t, 50, got.FinalScore)
	assert.Equal(t, ColorBlue, e.ColorFor(models.RiskLevelMedium))
}
