package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanguard/internal/config"
	"scanguard/internal/domain/models"
	"scanguard/internal/domain/scoring"
	"scanguard/internal/domain/services"
	"scanguard/pkg/logger"
)

type fakeReputation struct {
	rep        *models.IPReputation
	configured bool
}

func (f *fakeReputation) Configured() bool { return f.configured }

func (f *fakeReputation) LookupIPDomain(ctx context.Context, subject string) (*models.IPReputation, error) {
	return f.rep, nil
}

type fakeBreaches struct {
	records    []models.BreachRecord
	configured bool
}

func (f *fakeBreaches) Configured() bool { return f.configured }

func (f *fakeBreaches) LookupEmail(ctx context.Context, email string) ([]models.BreachRecord, error) {
	return f.records, nil
}

func newTestHandler(rep services.ReputationLookup, breaches services.BreachLookup) *ScanHandler {
	log := logger.NewDefault()
	engine := scoring.NewEngine(config.ScoringConfig{})

	return NewScanHandler(
		services.NewPhishingService(nil, engine, log),
		services.NewIPDomainService(rep, nil, false, nil, engine, log),
		services.NewDataLeakService(breaches, nil, engine, log),
		log,
	)
}

func TestScanPhishing(t *testing.T) {
	h := newTestHandler(nil, nil)

	req := httptest.NewRequest("POST", "/api/v1/scan/phishing", strings.NewReader(`{"url":"https://secure-login-bank-verify.com"}`))
	rec := httptest.NewRecorder()
	h.ScanPhishing(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.PhishingScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 75, resp.HeuristicScore)
	assert.Equal(t, 30, resp.FinalScore)
	assert.Equal(t, models.RiskLevelMedium, resp.RiskLevel)
	assert.NotEmpty(t, resp.ScanID)
}

func TestScanPhishingInvalidBody(t *testing.T) {
	h := newTestHandler(nil, nil)

	req := httptest.NewRequest("POST", "/api/v1/scan/phishing", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.ScanPhishing(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanPhishingInvalidURL(t *testing.T) {
	h := newTestHandler(nil, nil)

	req := httptest.NewRequest("POST", "/api/v1/scan/phishing", strings.NewReader(`{"url":"ftp://example.com"}`))
	rec := httptest.NewRecorder()
	h.ScanPhishing(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "invalid input")
}

func TestScanIP(t *testing.T) {
	h := newTestHandler(&fakeReputation{
		configured: true,
		rep:        &models.IPReputation{MaliciousCount: 5, SuspiciousCount: 1, Reputation: -20},
	}, nil)

	req := httptest.NewRequest("POST", "/api/v1/scan/ip", strings.NewReader(`{"ip":"203.0.113.7"}`))
	rec := httptest.NewRecorder()
	h.ScanIP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.IPScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "203.0.113.7", resp.IP)
	assert.Equal(t, 5, resp.MaliciousCount)
	// 40 + 6 + 10 = 56 heuristic, no advisor: round(56*0.4) = 22
	assert.Equal(t, 56, resp.HeuristicScore)
	assert.Equal(t, 22, resp.FinalScore)
}

func TestScanIPNotConfigured(t *testing.T) {
	h := newTestHandler(&fakeReputation{configured: false}, nil)

	req := httptest.NewRequest("POST", "/api/v1/scan/ip", strings.NewReader(`{"ip":"8.8.8.8"}`))
	rec := httptest.NewRecorder()
	h.ScanIP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "scanner not configured", resp["error"])
}

func TestScanDataLeak(t *testing.T) {
	h := newTestHandler(nil, &fakeBreaches{
		configured: true,
		records: []models.BreachRecord{
			{Name: "MegaCorp", Domain: "megacorp.com", Date: "2021", DataClasses: []string{"Emails", "Passwords"}},
		},
	})

	req := httptest.NewRequest("POST", "/api/v1/scan/dataleak", strings.NewReader(`{"email":"victim@example.com"}`))
	rec := httptest.NewRecorder()
	h.ScanDataLeak(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.DataLeakScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Breached)
	require.Len(t, resp.Leaks, 1)
	assert.Equal(t, "MegaCorp", resp.Leaks[0].Name)
	// 1 breach -> 10, 1 sensitive class -> 5, no advisor: round(15*0.4) = 6
	assert.Equal(t, 15, resp.HeuristicScore)
	assert.Equal(t, 6, resp.FinalScore)
	assert.Equal(t, models.RiskLevelLow, resp.RiskLevel)
}

func TestScanDataLeakInvalidEmail(t *testing.T) {
	h := newTestHandler(nil, &fakeBreaches{configured: true})

	req := httptest.NewRequest("POST", "/api/v1/scan/dataleak", strings.NewReader(`{"email":"nobody"}`))
	rec := httptest.NewRecorder()
	h.ScanDataLeak(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	h := NewHealthHandler(nil, logger.NewDefault(), "1.0.0")

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	h.Check(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
}

func TestHealthReadyWithoutRedis(t *testing.T) {
	h := NewHealthHandler(nil, logger.NewDefault(), "1.0.0")

	req := httptest.NewRequest("GET", "/ready", nil)
	rec := httptest.NewRecorder()
	h.Ready(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "not configured", resp.Checks["redis"])
}
