package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"scanguard/internal/domain/models"
	"scanguard/internal/domain/scoring"
	"scanguard/pkg/logger"
)

// IPDomainService analyzes IP addresses and domains against vendor reputation
// data, with optional geolocation enrichment.
type IPDomainService struct {
	reputation ReputationLookup
	geo        GeoLookup
	geoEnabled bool
	advisor    Advisor
	engine     *scoring.Engine
	logger     *logger.Logger
}

// NewIPDomainService creates a new IP/domain analyzer
func NewIPDomainService(reputation ReputationLookup, geo GeoLookup, geoEnabled bool, advisor Advisor, engine *scoring.Engine, log *logger.Logger) *IPDomainService {
	return &IPDomainService{
		reputation: reputation,
		geo:        geo,
		geoEnabled: geoEnabled,
		advisor:    advisor,
		engine:     engine,
		logger:     log.WithComponent("ipdomain-service"),
	}
}

// Scan scores an IP address or domain for reputation risk. The reputation
// lookup requires an API key; without one the scan fails with
// models.ErrConfigMissing. A lookup that fails at runtime degrades to zero
// evidence instead of aborting.
func (s *IPDomainService) Scan(ctx context.Context, subject string) (*models.IPScanResponse, error) {
	if err := scoring.ValidateSubject(models.ScanKindIPDomain, subject); err != nil {
		return nil, err
	}
	subject = strings.TrimSpace(subject)

	if s.reputation == nil || !s.reputation.Configured() {
		return nil, fmt.Errorf("reputation lookup: %w", models.ErrConfigMissing)
	}

	var rep *models.IPReputation
	var geo *models.GeoInfo

	// Both lookups run concurrently and both degrade on failure, so the
	// group closures never return an error.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.reputation.LookupIPDomain(gctx, subject)
		if err != nil {
			s.logger.Warn().Err(err).Str("subject", subject).Msg("reputation lookup failed, scoring without evidence")
			return nil
		}
		rep = r
		return nil
	})
	if s.geoEnabled && s.geo != nil {
		g.Go(func() error {
			gi, err := s.geo.Lookup(gctx, subject)
			if err != nil {
				s.logger.Debug().Err(err).Str("subject", subject).Msg("geolocation lookup failed, skipping enrichment")
				return nil
			}
			geo = gi
			return nil
		})
	}
	_ = g.Wait()

	if rep == nil {
		rep = &models.IPReputation{}
	}

	heur := scoring.IPDomainHeuristic(scoring.IPDomainSignals{
		MaliciousCount:  rep.MaliciousCount,
		SuspiciousCount: rep.SuspiciousCount,
		Reputation:      rep.Reputation,
	})
	advisory := runAdvisor(ctx, s.advisor, s.logger, s.buildPrompt(subject, rep, geo))
	assessment := s.engine.Aggregate(heur, advisory)

	resp := &models.IPScanResponse{
		ScanID:          uuid.NewString(),
		IP:              subject,
		FinalScore:      assessment.FinalScore,
		HeuristicScore:  heur.Score,
		AIScore:         advisory.Score,
		RiskLevel:       assessment.RiskLevel,
		Color:           assessment.Color,
		MaliciousCount:  rep.MaliciousCount,
		SuspiciousCount: rep.SuspiciousCount,
		Reputation:      rep.Reputation,
		Explanation:     advisory.Explanation,
		ScannedAt:       time.Now().UTC(),
	}
	if geo != nil {
		resp.Country = geo.Country
		resp.City = geo.City
		resp.ISP = geo.ISP
	}

	s.logger.Info().
		Str("scan_id", resp.ScanID).
		Str("subject", subject).
		Int("final_score", resp.FinalScore).
		Str("risk_level", string(resp.RiskLevel)).
		Msg("ip/domain scan completed")

	return resp, nil
}

func (s *IPDomainService) buildPrompt(subject string, rep *models.IPReputation, geo *models.GeoInfo) string {
	var sb strings.Builder
	sb.WriteString("Assess the risk of this IP address or domain: ")
	sb.WriteString(subject)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Vendor verdicts: %d malicious, %d suspicious, %d harmless, %d undetected.\n",
		rep.MaliciousCount, rep.SuspiciousCount, rep.HarmlessCount, rep.UndetectedCount))
	sb.WriteString(fmt.Sprintf("Community reputation: %d.\n", rep.Reputation))
	if geo != nil && geo.Country != "" {
		sb.WriteString(fmt.Sprintf("Location: %s, %s (ISP: %s).\n", geo.City, geo.Country, geo.ISP))
	}
	return sb.String()
}
