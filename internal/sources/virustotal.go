package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"scanguard/internal/config"
	"scanguard/internal/domain/models"
	"scanguard/internal/infrastructure/cache"
	"scanguard/pkg/logger"
)

// VirusTotalClient looks up IP and domain reputation via the VirusTotal v3 API.
// Note: the free API tier is rate limited (4 requests/min), so lookups are
// cached aggressively.
type VirusTotalClient struct {
	client   *http.Client
	cache    *cache.RedisCache
	logger   *logger.Logger
	apiKey   string
	baseURL  string
	cacheTTL time.Duration
}

// NewVirusTotalClient creates a new VirusTotal client
func NewVirusTotalClient(cfg config.VirusTotalConfig, lookups config.LookupsConfig, c *cache.RedisCache, log *logger.Logger) *VirusTotalClient {
	timeout := lookups.RequestTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	baseURL := cfg.APIURL
	if baseURL == "" {
		baseURL = "https://www.virustotal.com/api/v3"
	}

	return &VirusTotalClient{
		client: &http.Client{
			Timeout: timeout,
		},
		cache:    c,
		logger:   log.WithComponent("virustotal"),
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		cacheTTL: lookups.CacheTTL,
	}
}

// Configured reports whether an API key is present. The IP/domain analyzer
// treats a missing key as a hard configuration failure.
func (c *VirusTotalClient) Configured() bool {
	return c.apiKey != ""
}

type vtAnalysisStats struct {
	Malicious  int `json:"malicious"`
	Suspicious int `json:"suspicious"`
	Harmless   int `json:"harmless"`
	Undetected int `json:"undetected"`
}

type vtObjectResponse struct {
	Data struct {
		Attributes struct {
			LastAnalysisStats vtAnalysisStats `json:"last_analysis_stats"`
			Reputation        int             `json:"reputation"`
		} `json:"attributes"`
	} `json:"data"`
}

// LookupIPDomain fetches vendor verdict counts and the community reputation
// for an IP address or domain name.
func (c *VirusTotalClient) LookupIPDomain(ctx context.Context, subject string) (*models.IPReputation, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("VirusTotal API key not configured")
	}

	cacheKey := cache.KeyReputationPrefix + subject
	var cached models.IPReputation
	if err := c.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		c.logger.Debug().Str("subject", subject).Msg("reputation served from cache")
		return &cached, nil
	}

	endpoint := fmt.Sprintf("%s/domains/%s", c.baseURL, url.PathEscape(subject))
	if net.ParseIP(subject) != nil {
		endpoint = fmt.Sprintf("%s/ip_addresses/%s", c.baseURL, url.PathEscape(subject))
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("VirusTotal returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp vtObjectResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats := apiResp.Data.Attributes.LastAnalysisStats
	rep := &models.IPReputation{
		MaliciousCount:  stats.Malicious,
		SuspiciousCount: stats.Suspicious,
		HarmlessCount:   stats.Harmless,
		UndetectedCount: stats.Undetected,
		Reputation:      apiResp.Data.Attributes.Reputation,
	}

	if err := c.cache.SetJSON(ctx, cacheKey, rep, c.cacheTTL); err != nil {
		c.logger.Debug().Err(err).Msg("failed to cache reputation result")
	}

	c.logger.Info().
		Str("subject", subject).
		Int("malicious", rep.MaliciousCount).
		Int("suspicious", rep.SuspiciousCount).
		Int("reputation", rep.Reputation).
		Msg("reputation lookup completed")

	return rep, nil
}
