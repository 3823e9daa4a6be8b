package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/productagent/backend/config"
	httpDelivery "github.com/productagent/backend/internal/delivery/http"
	"github.com/productagent/backend/internal/domain"
	"github.com/productagent/backend/internal/infrastructure/cache"
	"github.com/productagent/backend/internal/infrastructure/provider"
	"github.com/productagent/backend/internal/ratelimit"
	"github.com/productagent/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.Server.Environment == "development" {
		log.SetLevel(log.DebugLevel)
	}

	log.Infof("starting productagent backend v1.0.0")
	log.Infof("environment: %s", cfg.Server.Environment)
	log.Infof("provider order: %v", cfg.Providers.Order)
	log.Infof("bulk: concurrency=%d, min_interval=%s", cfg.Bulk.Concurrency, cfg.Bulk.MinInterval)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	limiter := ratelimit.NewInterval(cfg.Bulk.MinInterval)

	providers := buildProviders(cfg)
	if len(providers) == 0 {
		log.Fatal("no usable providers: every entry in providers.order is missing credentials")
	}

	// Initialize usecase layer
	lookupService := usecase.NewLookupService(providers, limiter, memoryCache, usecase.LookupServiceConfig{
		CacheTTL:    cfg.Cache.TTL,
		Concurrency: cfg.Bulk.Concurrency,
	})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(lookupService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// buildProviders constructs the fallback chain in configured priority order.
// A provider without credentials is skipped so the chain only contains
// adapters that can actually be called.
func buildProviders(cfg *config.Config) []domain.Provider {
	timeout := cfg.Providers.Timeout

	available := map[string]domain.Provider{}
	if cfg.Providers.Rainforest.APIKey != "" {
		available[provider.NameRainforest] = provider.NewRainforest(
			cfg.Providers.Rainforest.APIKey, cfg.Providers.Rainforest.BaseURL, timeout)
	}
	if cfg.Providers.ScraperAPI.APIKey != "" {
		available[provider.NameScraperAPI] = provider.NewScraperAPI(
			cfg.Providers.ScraperAPI.APIKey, cfg.Providers.ScraperAPI.BaseURL, timeout)
	}
	if cfg.Providers.RapidAPI.APIKey != "" {
		available[provider.NameRapidAPI] = provider.NewRapidAPI(
			cfg.Providers.RapidAPI.APIKey, cfg.Providers.RapidAPI.Host, cfg.Providers.RapidAPI.BaseURL, timeout)
	}

	chain := make([]domain.Provider, 0, len(cfg.Providers.Order))
	for _, name := range cfg.Providers.Order {
		p, ok := available[name]
		if !ok {
			log.Warnf("provider %s has no credentials configured, skipping", name)
			continue
		}
		chain = append(chain, p)
	}

	return chain
}
