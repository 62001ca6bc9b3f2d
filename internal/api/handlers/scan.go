package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"scanguard/internal/domain/models"
	"scanguard/internal/domain/services"
	"scanguard/pkg/logger"
)

// ScanHandler handles scan API requests for all three analyzers
type ScanHandler struct {
	phishing *services.PhishingService
	ipDomain *services.IPDomainService
	dataLeak *services.DataLeakService
	logger   *logger.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(phishing *services.PhishingService, ipDomain *services.IPDomainService, dataLeak *services.DataLeakService, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		phishing: phishing,
		ipDomain: ipDomain,
		dataLeak: dataLeak,
		logger:   log.WithComponent("scan-handler"),
	}
}

// PhishingRequest is the body for POST /api/v1/scan/phishing
type PhishingRequest struct {
	URL string `json:"url"`
}

// IPRequest is the body for POST /api/v1/scan/ip
type IPRequest struct {
	IP string `json:"ip"`
}

// DataLeakRequest is the body for POST /api/v1/scan/dataleak
type DataLeakRequest struct {
	Email string `json:"email"`
}

// ScanPhishing handles POST /api/v1/scan/phishing
func (h *ScanHandler) ScanPhishing(w http.ResponseWriter, r *http.Request) {
	var req PhishingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.phishing.ScanURL(r.Context(), req.URL)
	if err != nil {
		h.respondScanError(w, "phishing", err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// ScanIP handles POST /api/v1/scan/ip
func (h *ScanHandler) ScanIP(w http.ResponseWriter, r *http.Request) {
	var req IPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.ipDomain.Scan(r.Context(), req.IP)
	if err != nil {
		h.respondScanError(w, "ip", err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// ScanDataLeak handles POST /api/v1/scan/dataleak
func (h *ScanHandler) ScanDataLeak(w http.ResponseWriter, r *http.Request) {
	var req DataLeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.dataLeak.Scan(r.Context(), req.Email)
	if err != nil {
		h.respondScanError(w, "dataleak", err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// respondScanError maps the analyzer error taxonomy to HTTP statuses
func (h *ScanHandler) respondScanError(w http.ResponseWriter, kind string, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrConfigMissing):
		h.logger.Error().Err(err).Str("kind", kind).Msg("scan rejected, collaborator not configured")
		h.respondError(w, http.StatusInternalServerError, "scanner not configured")
	default:
		h.logger.Error().Err(err).Str("kind", kind).Msg("scan failed")
		h.respondError(w, http.StatusInternalServerError, "scan failed")
	}
}

func (h *ScanHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *ScanHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
