package models

import (
	"errors"
	"time"
)

// ScanKind identifies which analyzer a request targets
type ScanKind string

const (
	ScanKindPhishing ScanKind = "phishing"
	ScanKindIPDomain ScanKind = "ip"
	ScanKindDataLeak ScanKind = "dataleak"
)

// RiskLevel is the ordinal severity bucket derived from the final score
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// Sentinel errors for the request-aborting failure classes. Collaborator
// failures are not errors at this level: they degrade to zero evidence.
var (
	// ErrInvalidInput means the subject failed validation for its scan kind
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfigMissing means a required collaborator credential is absent
	ErrConfigMissing = errors.New("missing configuration")
)

// IPReputation holds the vendor verdict counts and reputation integer
// returned by the reputation lookup for an IP or domain
type IPReputation struct {
	MaliciousCount  int `json:"malicious_count"`
	SuspiciousCount int `json:"suspicious_count"`
	HarmlessCount   int `json:"harmless_count"`
	UndetectedCount int `json:"undetected_count"`
	Reputation      int `json:"reputation"`
}

// BreachRecord is one normalized breach returned by the breach lookup.
// Fields are always populated; the lookup client applies fallbacks for
// records the upstream API returns partially filled.
type BreachRecord struct {
	Name        string   `json:"name"`
	Domain      string   `json:"domain"`
	Date        string   `json:"date"`
	DataClasses []string `json:"dataClasses"`
}

// GeoInfo is the optional geolocation enrichment for an IP scan
type GeoInfo struct {
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
	ISP     string `json:"isp,omitempty"`
}

// PhishingScanResponse is the result of a phishing URL scan
type PhishingScanResponse struct {
	ScanID         string    `json:"scanId"`
	URL            string    `json:"url"`
	FinalScore     int       `json:"finalScore"`
	HeuristicScore int       `json:"heuristicScore"`
	AIScore        int       `json:"aiScore"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	Color          string    `json:"color"`
	Explanation    string    `json:"explanation"`
	Signals        []string  `json:"signals"`
	ScannedAt      time.Time `json:"scannedAt"`
}

// IPScanResponse is the result of an IP/domain reputation scan
type IPScanResponse struct {
	ScanID          string    `json:"scanId"`
	IP              string    `json:"ip"`
	FinalScore      int       `json:"finalScore"`
	HeuristicScore  int       `json:"heuristicScore"`
	AIScore         int       `json:"aiScore"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	Color           string    `json:"color"`
	MaliciousCount  int       `json:"maliciousCount"`
	SuspiciousCount int       `json:"suspiciousCount"`
	Reputation      int       `json:"reputation"`
	Explanation     string    `json:"explanation"`
	Country         string    `json:"country,omitempty"`
	City            string    `json:"city,omitempty"`
	ISP             string    `json:"isp,omitempty"`
	ScannedAt       time.Time `json:"scannedAt"`
}

// DataLeakScanResponse is the result of an email breach scan
type DataLeakScanResponse struct {
	ScanID         string         `json:"scanId"`
	Email          string         `json:"email"`
	Breached       bool           `json:"breached"`
	Leaks          []BreachRecord `json:"leaks"`
	HeuristicScore int            `json:"heuristicScore"`
	AIScore        int            `json:"aiScore"`
	FinalScore     int            `json:"finalScore"`
	RiskLevel      RiskLevel      `json:"riskLevel"`
	Color          string         `json:"color"`
	AISummary      string         `json:"aiSummary"`
	ScannedAt      time.Time      `json:"scannedAt"`
}
