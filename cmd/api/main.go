package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"scanguard/internal/api"
	"scanguard/internal/api/handlers"
	"scanguard/internal/config"
	"scanguard/internal/domain/scoring"
	"scanguard/internal/domain/services"
	"scanguard/internal/domain/services/ai"
	"scanguard/internal/infrastructure/cache"
	"scanguard/internal/sources"
	"scanguard/pkg/logger"
)

func main() {
	// Local development convenience; missing .env is not an error
	_ = godotenv.Load()

	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting ScanGuard")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional: without it lookups are uncached and rate limiting
	// is disabled, but scans still work.
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
			redisCache = nil
		}
	}
	defer redisCache.Close()

	// External collaborators
	vtClient := sources.NewVirusTotalClient(cfg.Lookups.VirusTotal, cfg.Lookups, redisCache, log)
	if !vtClient.Configured() {
		log.Warn().Msg("VirusTotal API key not set, IP/domain scans will be rejected")
	}
	bdClient := sources.NewBreachDirectoryClient(cfg.Lookups.BreachLookup, cfg.Lookups, redisCache, log)
	if !bdClient.Configured() {
		log.Warn().Msg("BreachDirectory API key not set, data-leak scans will be rejected")
	}
	geoClient := sources.NewGeoClient(cfg.Lookups.Geolocation, cfg.Lookups, redisCache, log)

	advisor := ai.NewAdvisor(cfg.Advisor, log)
	if !advisor.Available() {
		log.Warn().Msg("advisor API key not set, scans will score heuristics only")
	}

	// Analyzers
	engine := scoring.NewEngine(cfg.Scoring)
	phishingSvc := services.NewPhishingService(advisor, engine, log)
	ipDomainSvc := services.NewIPDomainService(vtClient, geoClient, cfg.Lookups.Geolocation.Enabled, advisor, engine, log)
	dataLeakSvc := services.NewDataLeakService(bdClient, advisor, engine, log)

	// HTTP API
	h := handlers.NewHandlers(handlers.Dependencies{
		Phishing: phishingSvc,
		IPDomain: ipDomainSvc,
		DataLeak: dataLeakSvc,
		Cache:    redisCache,
		Logger:   log,
		Version:  cfg.App.Version,
	})
	router := api.NewRouter(*cfg, h, redisCache, log)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("shutdown complete")
}
