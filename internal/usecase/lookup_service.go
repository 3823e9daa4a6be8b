package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/productagent/backend/internal/domain"
	"github.com/productagent/backend/internal/ratelimit"
)

// LookupServiceConfig holds configuration for the lookup service
type LookupServiceConfig struct {
	CacheTTL    time.Duration
	Concurrency int
}

// LookupService resolves product identifiers against a fixed-priority chain
// of providers behind a shared request gate. The chain order is deployment
// configuration; there is no adaptive reordering.
type LookupService struct {
	providers   []domain.Provider
	limiter     *ratelimit.Interval
	cache       domain.CacheRepository
	cacheTTL    time.Duration
	concurrency int
}

// NewLookupService creates a new lookup service. Providers must already be
// in priority order and must all be usable: an adapter whose credentials are
// missing is never handed in (the wiring in main skips it).
func NewLookupService(
	providers []domain.Provider,
	limiter *ratelimit.Interval,
	cache domain.CacheRepository,
	config LookupServiceConfig,
) *LookupService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	concurrency := config.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	return &LookupService{
		providers:   providers,
		limiter:     limiter,
		cache:       cache,
		cacheTTL:    cacheTTL,
		concurrency: concurrency,
	}
}

// Lookup normalizes raw input and resolves it to a product record.
// Flow: parse ASIN -> check cache -> provider fallback chain -> cache -> return
func (s *LookupService) Lookup(ctx context.Context, raw string) (*domain.ProductRecord, error) {
	asin, err := domain.ParseASIN(raw)
	if err != nil {
		return nil, err
	}

	return s.resolve(ctx, asin)
}

// resolve tries each provider in priority order, stopping at the first
// success. Providers are tried strictly sequentially: the first success
// short-circuits, and racing them would blow the shared rate budget. Every
// failed attempt is recorded; when the chain is exhausted the full attempt
// history comes back on the error.
func (s *LookupService) resolve(ctx context.Context, asin domain.ASIN) (*domain.ProductRecord, error) {
	if record := s.fromCache(ctx, asin); record != nil {
		return record, nil
	}

	attempts := make([]*domain.ProviderError, 0, len(s.providers))

	for _, p := range s.providers {
		// Every outbound call passes through the shared gate.
		if err := s.limiter.Acquire(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		record, err := p.Fetch(ctx, asin)
		if err == nil {
			log.Infof("resolved %s via %s", asin, p.Name())
			s.toCache(ctx, asin, record)
			return record, nil
		}

		attempt := asProviderError(p.Name(), err)
		log.Warnf("provider %s failed for %s: %s", p.Name(), asin, attempt.Kind)
		attempts = append(attempts, attempt)
	}

	return nil, &domain.ExhaustedError{Input: asin.String(), Attempts: attempts}
}

// asProviderError keeps the attempt history typed even if a provider returns
// a bare error.
func asProviderError(name string, err error) *domain.ProviderError {
	var pe *domain.ProviderError
	if errors.As(err, &pe) {
		return pe
	}

	return &domain.ProviderError{
		Provider: name,
		Kind:     domain.KindNetworkError,
		Message:  err.Error(),
	}
}

func (s *LookupService) fromCache(ctx context.Context, asin domain.ASIN) *domain.ProductRecord {
	if s.cache == nil {
		return nil
	}

	record, err := s.cache.Get(ctx, cacheKey(asin))
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			log.Debugf("cache get failed for %s: %v", asin, err)
		}
		return nil
	}

	log.Debugf("cache hit for %s", asin)
	return record
}

func (s *LookupService) toCache(ctx context.Context, asin domain.ASIN, record *domain.ProductRecord) {
	if s.cache == nil {
		return
	}

	// Caching is best-effort; a failure never fails the lookup.
	if err := s.cache.Set(ctx, cacheKey(asin), record, s.cacheTTL); err != nil {
		log.Warnf("cache set failed for %s: %v", asin, err)
	}
}

func cacheKey(asin domain.ASIN) string {
	return "product:" + asin.String()
}
