package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scanguard/internal/config"
	"scanguard/internal/domain/models"
	"scanguard/internal/infrastructure/cache"
	"scanguard/pkg/logger"
)

// BreachDirectoryClient checks emails against the BreachDirectory database
// via its RapidAPI gateway.
type BreachDirectoryClient struct {
	client   *http.Client
	cache    *cache.RedisCache
	logger   *logger.Logger
	apiKey   string
	apiHost  string
	cacheTTL time.Duration
}

// NewBreachDirectoryClient creates a new BreachDirectory client
func NewBreachDirectoryClient(cfg config.BreachLookupConfig, lookups config.LookupsConfig, c *cache.RedisCache, log *logger.Logger) *BreachDirectoryClient {
	timeout := lookups.RequestTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	apiHost := cfg.APIHost
	if apiHost == "" {
		apiHost = "breachdirectory.p.rapidapi.com"
	}

	return &BreachDirectoryClient{
		client: &http.Client{
			Timeout: timeout,
		},
		cache:    c,
		logger:   log.WithComponent("breachdirectory"),
		apiKey:   cfg.APIKey,
		apiHost:  apiHost,
		cacheTTL: lookups.CacheTTL,
	}
}

// Configured reports whether a RapidAPI key is present. The data-leak
// analyzer treats a missing key as a hard configuration failure.
func (c *BreachDirectoryClient) Configured() bool {
	return c.apiKey != ""
}

type bdResponse struct {
	Success bool      `json:"success"`
	Found   int       `json:"found"`
	Result  []bdEntry `json:"result"`
}

type bdEntry struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Domain      string   `json:"domain"`
	Date        string   `json:"date"`
	DataClasses []string `json:"data_classes"`
}

// LookupEmail returns the breaches an email appears in. An empty slice means
// no known breaches.
func (c *BreachDirectoryClient) LookupEmail(ctx context.Context, email string) ([]models.BreachRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("BreachDirectory API key not configured")
	}

	cacheKey := cache.KeyBreachPrefix + strings.ToLower(email)
	var cached []models.BreachRecord
	if err := c.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		c.logger.Debug().Str("email", maskEmail(email)).Msg("breach lookup served from cache")
		return cached, nil
	}

	endpoint := fmt.Sprintf("https://%s/?func=auto&term=%s", c.apiHost, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.apiHost)

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
		return nil, fmt.Errorf("BreachDirectory returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp bdResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var records []models.BreachRecord
	if apiResp.Success {
		records = make([]models.BreachRecord, 0, len(apiResp.Result))
		for _, e := range apiResp.Result {
			records = append(records, normalizeBreach(e))
		}
	}

	if err := c.cache.SetJSON(ctx, cacheKey, records, c.cacheTTL); err != nil {
		c.logger.Debug().Err(err).Msg("failed to cache breach result")
	}

	c.logger.Info().
		Str("email", maskEmail(email)).
		Int("breaches", len(records)).
		Msg("breach lookup completed")

	return records, nil
}

// normalizeBreach fills the fallbacks the upstream API leaves blank, so the
// dashboard always has something to render per record.
func normalizeBreach(e bdEntry) models.BreachRecord {
	name := e.Name
	if name == "" {
		name = e.Title
	}
	if name == "" {
		name = "Unknown Source"
	}

	domain := e.Domain
	if domain == "" {
		domain = "N/A"
	}

	date := e.Date
	if date == "" {
		date = "Unknown"
	}

	dataClasses := e.DataClasses
	if len(dataClasses) == 0 {
		dataClasses = []string{"Email", "Password"}
	}

	return models.BreachRecord{
		Name:        name,
		Domain:      domain,
		Date:        date,
		DataClasses: dataClasses,
	}
}

func maskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" {
		return "***"
	}

	local := parts[0]
	if len(local) <= 2 {
		return local[0:1] + "***@" + parts[1]
	}
	return local[0:1] + "***" + local[len(local)-1:] + "@" + parts[1]
}
