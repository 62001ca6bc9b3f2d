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

// DataLeakService analyzes email addresses against known breach data
type DataLeakService struct {
	breaches BreachLookup
	advisor  Advisor
	engine   *scoring.Engine
	logger   *logger.Logger
}

// NewDataLeakService creates a new data-leak analyzer
func NewDataLeakService(breaches BreachLookup, advisor Advisor, engine *scoring.Engine, log *logger.Logger) *DataLeakService {
	return &DataLeakService{
		breaches: breaches,
		advisor:  advisor,
		engine:   engine,
		logger:   log.WithComponent("dataleak-service"),
	}
}

// Scan scores an email address for data-leak exposure. The breach lookup
// requires an API key; without one the scan fails with
// models.ErrConfigMissing. A lookup that fails at runtime degrades to an
// empty breach list instead of aborting.
func (s *DataLeakService) Scan(ctx context.Context, email string) (*models.DataLeakScanResponse, error) {
	if err := scoring.ValidateSubject(models.ScanKindDataLeak, email); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)

	if s.breaches == nil || !s.breaches.Configured() {
		return nil, fmt.Errorf("breach lookup: %w", models.ErrConfigMissing)
	}

	leaks, err := s.breaches.LookupEmail(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("breach lookup failed, scoring without evidence")
		leaks = nil
	}
	if leaks == nil {
		leaks = []models.BreachRecord{}
	}

	heur := scoring.DataLeakHeuristic(leaks)
	advisory := runAdvisor(ctx, s.advisor, s.logger, s.buildPrompt(email, leaks))
	assessment := s.engine.Aggregate(heur, advisory)

	resp := &models.DataLeakScanResponse{
		ScanID:         uuid.NewString(),
		Email:          email,
		Breached:       len(leaks) > 0,
		Leaks:          leaks,
		HeuristicScore: heur.Score,
		AIScore:        advisory.Score,
		FinalScore:     assessment.FinalScore,
		RiskLevel:      assessment.RiskLevel,
		Color:          assessment.Color,
		AISummary:      advisory.Explanation,
		ScannedAt:      time.Now().UTC(),
	}

	s.logger.Info().
		Str("scan_id", resp.ScanID).
		Int("breaches", len(leaks)).
		Int("final_score", resp.FinalScore).
		Str("risk_level", string(resp.RiskLevel)).
		Msg("data-leak scan completed")

	return resp, nil
}

func (s *DataLeakService) buildPrompt(email string, leaks []models.BreachRecord) string {
	var sb strings.Builder
	sb.WriteString("Assess the data-leak risk for an email address found in the following breaches.\n")
	if len(leaks) == 0 {
		sb.WriteString("No known breaches contain this address.\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("The address appears in %d breaches:\n", len(leaks)))
	for _, l := range leaks {
		sb.WriteString(fmt.Sprintf("- %s (%s, %s): %s\n", l.Name, l.Domain, l.Date, strings.Join(l.DataClasses, ", ")))
	}
	return sb.String()
}
