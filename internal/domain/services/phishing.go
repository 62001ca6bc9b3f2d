package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"scanguard/internal/domain/models"
	"scanguard/internal/domain/scoring"
	"scanguard/pkg/logger"
)

// PhishingService analyzes URLs for phishing indicators
type PhishingService struct {
	advisor Advisor
	engine  *scoring.Engine
	logger  *logger.Logger
}

// NewPhishingService creates a new phishing analyzer
func NewPhishingService(advisor Advisor, engine *scoring.Engine, log *logger.Logger) *PhishingService {
	return &PhishingService{
		advisor: advisor,
		engine:  engine,
		logger:  log.WithComponent("phishing-service"),
	}
}

// ScanURL scores a URL for phishing risk
func (s *PhishingService) ScanURL(ctx context.Context, url string) (*models.PhishingScanResponse, error) {
	if err := scoring.ValidateSubject(models.ScanKindPhishing, url); err != nil {
		return nil, err
	}

	heur := scoring.PhishingHeuristic(url)
	advisory := runAdvisor(ctx, s.advisor, s.logger, s.buildPrompt(url, heur))
	assessment := s.engine.Aggregate(heur, advisory)

	signals := heur.Signals
	if signals == nil {
		signals = []string{}
	}

	resp := &models.PhishingScanResponse{
		ScanID:         uuid.NewString(),
		URL:            url,
		FinalScore:     assessment.FinalScore,
		HeuristicScore: heur.Score,
		AIScore:        advisory.Score,
		RiskLevel:      assessment.RiskLevel,
		Color:          assessment.Color,
		Explanation:    advisory.Explanation,
		Signals:        signals,
		ScannedAt:      time.Now().UTC(),
	}

	s.logger.Info().
		Str("scan_id", resp.ScanID).
		Int("final_score", resp.FinalScore).
		Str("risk_level", string(resp.RiskLevel)).
		Msg("phishing scan completed")

	return resp, nil
}

func (s *PhishingService) buildPrompt(url string, heur scoring.HeuristicScore) string {
	var sb strings.Builder
	sb.WriteString("Assess the phishing risk of this URL: ")
	sb.WriteString(url)
	sb.WriteString("\n")
	if len(heur.Signals) > 0 {
		sb.WriteString(fmt.Sprintf("Suspicious patterns already detected: %s\n", strings.Join(heur.Signals, ", ")))
	}
	return sb.String()
}
