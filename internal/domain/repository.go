package domain

import (
	"context"
	"time"
)

// Provider is one third-party product data source. Fetch issues exactly one
// outbound request and maps the response into the canonical record; failures
// come back as *ProviderError. Retrying and falling back to other providers
// is the caller's responsibility, never the adapter's.
type Provider interface {
	// Name returns the tag recorded as SourceMethod on records this
	// provider produces and as Provider on its attempt errors.
	Name() string

	// Fetch resolves one ASIN against this provider.
	Fetch(ctx context.Context, asin ASIN) (*ProductRecord, error)
}

// CacheRepository defines the interface for caching resolved product records
type CacheRepository interface {
	Get(ctx context.Context, key string) (*ProductRecord, error)
	Set(ctx context.Context, key string, record *ProductRecord, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
