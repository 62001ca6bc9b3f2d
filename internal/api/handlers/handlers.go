package handlers

import (
	"scanguard/internal/domain/services"
	"scanguard/internal/infrastructure/cache"
	"scanguard/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health *HealthHandler
	Scan   *ScanHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Phishing *services.PhishingService
	IPDomain *services.IPDomainService
	DataLeak *services.DataLeakService
	Cache    *cache.RedisCache
	Logger   *logger.Logger
	Version  string
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Cache, deps.Logger, deps.Version),
		Scan:   NewScanHandler(deps.Phishing, deps.IPDomain, deps.DataLeak, deps.Logger),
	}
}
