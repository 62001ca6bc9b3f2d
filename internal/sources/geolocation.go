package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"scanguard/internal/config"
	"scanguard/internal/domain/models"
	"scanguard/internal/infrastructure/cache"
	"scanguard/pkg/logger"
)

// GeoClient resolves country/city/ISP for an IP or host via ip-api.com.
// Geolocation is pure enrichment: callers drop the fields on any failure.
type GeoClient struct {
	client   *http.Client
	cache    *cache.RedisCache
	logger   *logger.Logger
	baseURL  string
	cacheTTL time.Duration
}

// NewGeoClient creates a new geolocation client
func NewGeoClient(cfg config.GeolocationConfig, lookups config.LookupsConfig, c *cache.RedisCache, log *logger.Logger) *GeoClient {
	timeout := lookups.RequestTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	baseURL := cfg.APIURL
	if baseURL == "" {
		baseURL = "http://ip-api.com/json"
	}

	return &GeoClient{
		client: &http.Client{
			Timeout: timeout,
		},
		cache:    c,
		logger:   log.WithComponent("geolocation"),
		baseURL:  baseURL,
		cacheTTL: lookups.CacheTTL,
	}
}

type geoResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Country string `json:"country"`
	City    string `json:"city"`
	ISP     string `json:"isp"`
}

// Lookup resolves geolocation for an IP address or hostname
func (c *GeoClient) Lookup(ctx context.Context, subject string) (*models.GeoInfo, error) {
	cacheKey := cache.KeyGeoPrefix + subject
	var cached models.GeoInfo
	if err := c.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	endpoint := fmt.Sprintf("%s/%s?fields=status,message,country,city,isp", c.baseURL, url.PathEscape(subject))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

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
		return nil, fmt.Errorf("geolocation API returned status %d", resp.StatusCode)
	}

	var apiResp geoResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if apiResp.Status != "success" {
		return nil, fmt.Errorf("geolocation lookup failed: %s", apiResp.Message)
	}

	info := &models.GeoInfo{
		Country: apiResp.Country,
		City:    apiResp.City,
		ISP:     apiResp.ISP,
	}

	if err := c.cache.SetJSON(ctx, cacheKey, info, c.cacheTTL); err != nil {
		c.logger.Debug().Err(err).Msg("failed to cache geolocation result")
	}

	return info, nil
}
