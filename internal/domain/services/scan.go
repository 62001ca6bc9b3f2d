package services

import (
	"context"

	"scanguard/internal/domain/models"
	"scanguard/internal/domain/scoring"
	"scanguard/pkg/logger"
)

// ReputationLookup resolves vendor verdicts for an IP or domain
type ReputationLookup interface {
	Configured() bool
	LookupIPDomain(ctx context.Context, subject string) (*models.IPReputation, error)
}

// BreachLookup resolves known breaches for an email address
type BreachLookup interface {
	Configured() bool
	LookupEmail(ctx context.Context, email string) ([]models.BreachRecord, error)
}

// GeoLookup resolves optional geolocation enrichment for an IP or host
type GeoLookup interface {
	Lookup(ctx context.Context, subject string) (*models.GeoInfo, error)
}

// Advisor produces a free-text risk assessment for a prompt
type Advisor interface {
	Available() bool
	Assess(ctx context.Context, prompt string) (string, error)
}

// runAdvisor calls the advisor and parses its free-text reply. Any failure
// degrades to the unavailable fallback so a scan never aborts on the AI path.
func runAdvisor(ctx context.Context, advisor Advisor, log *logger.Logger, prompt string) scoring.AdvisoryResult {
	if advisor == nil || !advisor.Available() {
		return scoring.AdvisoryUnavailable()
	}

	reply, err := advisor.Assess(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("advisor call failed, degrading to heuristics")
		return scoring.AdvisoryUnavailable()
	}

	return scoring.ParseAdvisory(reply)
}
