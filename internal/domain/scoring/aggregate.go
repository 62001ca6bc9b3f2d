package scoring

import (
	"math"

	"scanguard/internal/config"
	"scanguard/internal/domain/models"
)

// Display colors associated with risk levels
const (
	ColorGreen  = "green"
	ColorBlue   = "blue"
	ColorPurple = "purple"
	ColorRed    = "red"
)

// Assessment is the final blended verdict for a scan
type Assessment struct {
	FinalScore int              `json:"finalScore"`
	RiskLevel  models.RiskLevel `json:"riskLevel"`
	Color      string           `json:"color"`
}

// Engine blends heuristic and advisory sub-scores into a FinalAssessment.
// It is pure computation with no hidden state: identical inputs always yield
// identical output, and it is safe for concurrent use.
type Engine struct {
	advisoryWeight  float64
	heuristicWeight float64
	mediumColor     string
}

// NewEngine creates an Engine from scoring configuration
func NewEngine(cfg config.ScoringConfig) *Engine {
	mediumColor := cfg.MediumColor
	if mediumColor == "" {
		mediumColor = ColorBlue
	}
	advisoryWeight := cfg.AdvisoryWeight
	heuristicWeight := cfg.HeuristicWeight
	if advisoryWeight == 0 && heuristicWeight == 0 {
		advisoryWeight = 0.6
		heuristicWeight = 0.4
	}
	return &Engine{
		advisoryWeight:  advisoryWeight,
		heuristicWeight: heuristicWeight,
		mediumColor:     mediumColor,
	}
}

// Aggregate blends the capped heuristic score with the advisory score and
// classifies the result. The weighting favors the advisory signal; the
// per-analyzer heuristic cap keeps a weak heuristic from dominating.
func (e *Engine) Aggregate(h HeuristicScore, adv AdvisoryResult) Assessment {
	heuristic := clampInt(h.Score, 0, h.Cap)
	advisory := clampInt(adv.Score, 0, 100)

	final := int(math.Round(float64(advisory)*e.advisoryWeight + float64(heuristic)*e.heuristicWeight))
	final = clampInt(final, 0, 100)

	level := Classify(final)
	return Assessment{
		FinalScore: final,
		RiskLevel:  level,
		Color:      e.ColorFor(level),
	}
}

// Classify maps a final score to its severity bucket. Boundaries are
// inclusive-low/exclusive-high; the top bucket includes 100.
func Classify(finalScore int) models.RiskLevel {
	switch {
	case finalScore >= 85:
		return models.RiskLevelCritical
	case finalScore >= 60:
		return models.RiskLevelHigh
	case finalScore >= 30:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

// ColorFor maps a risk level to its display color. The medium color is a
// configurable display concern, not scoring logic.
func (e *Engine) ColorFor(level models.RiskLevel) string {
	switch level {
	case models.RiskLevelHigh, models.RiskLevelCritical:
		return ColorRed
	case models.RiskLevelMedium:
		return e.mediumColor
	default:
		return ColorGreen
	}
}

func clampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
