package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productagent/backend/internal/domain"
	"github.com/productagent/backend/internal/infrastructure/cache"
	"github.com/productagent/backend/internal/ratelimit"
)

// fakeProvider is a scriptable domain.Provider for resolver tests.
type fakeProvider struct {
	name   string
	record *domain.ProductRecord
	err    error
	calls  int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(ctx context.Context, asin domain.ASIN) (*domain.ProductRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	record := *f.record
	record.ASIN = asin.String()
	record.SourceMethod = f.name
	return &record, nil
}

func succeeding(name string) *fakeProvider {
	return &fakeProvider{
		name: name,
		record: &domain.ProductRecord{
			ProductName: "Echo Dot (4th Gen)",
			Price:       domain.Price{Original: "$49.99"},
			Variants:    []string{},
			ImageURLs:   []string{},
		},
	}
}

func failing(name string, kind domain.FailureKind) *fakeProvider {
	return &fakeProvider{
		name: name,
		err:  &domain.ProviderError{Provider: name, Kind: kind},
	}
}

func newService(providers []domain.Provider, withCache bool) *LookupService {
	var c domain.CacheRepository
	if withCache {
		c = cache.NewMemoryCache()
	}
	return NewLookupService(providers, ratelimit.NewInterval(0), c, LookupServiceConfig{
		CacheTTL:    time.Minute,
		Concurrency: 4,
	})
}

func TestLookup_FirstProviderWins(t *testing.T) {
	a := succeeding("provider_a")
	b := succeeding("provider_b")
	service := newService([]domain.Provider{a, b}, false)

	record, err := service.Lookup(context.Background(), "B08N5WRWNW")

	require.NoError(t, err)
	assert.Equal(t, "provider_a", record.SourceMethod)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 0, b.calls, "later providers are never tried after a success")
}

func TestLookup_FallsThroughToNextProvider(t *testing.T) {
	a := failing("provider_a", domain.KindRateLimited)
	b := succeeding("provider_b")
	c := succeeding("provider_c")
	service := newService([]domain.Provider{a, b, c}, false)

	record, err := service.Lookup(context.Background(), "B08N5WRWNW")

	require.NoError(t, err)
	assert.Equal(t, "provider_b", record.SourceMethod)
	assert.Equal(t, "B08N5WRWNW", record.ASIN)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, 0, c.calls)
}

func TestLookup_AuthFailureStillFallsThrough(t *testing.T) {
	a := failing("provider_a", domain.KindAuthenticationFailed)
	b := succeeding("provider_b")
	service := newService([]domain.Provider{a, b}, false)

	record, err := service.Lookup(context.Background(), "B08N5WRWNW")

	require.NoError(t, err)
	assert.Equal(t, "provider_b", record.SourceMethod)
}

func TestLookup_AllProvidersFail(t *testing.T) {
	a := failing("provider_a", domain.KindRateLimited)
	b := failing("provider_b", domain.KindNotFound)
	c := failing("provider_c", domain.KindTimeout)
	service := newService([]domain.Provider{a, b, c}, false)

	_, err := service.Lookup(context.Background(), "B08N5WRWNW")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAllProvidersExhausted)

	var exhausted *domain.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "B08N5WRWNW", exhausted.Input)

	// Exactly one attempt per provider, in priority order.
	require.Len(t, exhausted.Attempts, 3)
	assert.Equal(t, "provider_a", exhausted.Attempts[0].Provider)
	assert.Equal(t, domain.KindRateLimited, exhausted.Attempts[0].Kind)
	assert.Equal(t, "provider_b", exhausted.Attempts[1].Provider)
	assert.Equal(t, domain.KindNotFound, exhausted.Attempts[1].Kind)
	assert.Equal(t, "provider_c", exhausted.Attempts[2].Provider)
	assert.Equal(t, domain.KindTimeout, exhausted.Attempts[2].Kind)
}

func TestLookup_InvalidInput(t *testing.T) {
	a := succeeding("provider_a")
	service := newService([]domain.Provider{a}, false)

	_, err := service.Lookup(context.Background(), "not-a-real-id!!")

	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
	assert.Equal(t, 0, a.calls, "no provider call for unparseable input")
}

func TestLookup_NormalizesURLInput(t *testing.T) {
	a := succeeding("provider_a")
	service := newService([]domain.Provider{a}, false)

	record, err := service.Lookup(context.Background(), "https://www.amazon.com/dp/b08n5wrwnw")

	require.NoError(t, err)
	assert.Equal(t, "B08N5WRWNW", record.ASIN)
}

func TestLookup_CacheHitSkipsProviders(t *testing.T) {
	a := succeeding("provider_a")
	service := newService([]domain.Provider{a}, true)
	ctx := context.Background()

	first, err := service.Lookup(ctx, "B08N5WRWNW")
	require.NoError(t, err)

	second, err := service.Lookup(ctx, "B08N5WRWNW")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, a.calls, "second lookup must come from cache")
}

func TestLookup_FailuresAreNotCached(t *testing.T) {
	a := failing("provider_a", domain.KindNotFound)
	service := newService([]domain.Provider{a}, true)
	ctx := context.Background()

	_, err := service.Lookup(ctx, "B08N5WRWNW")
	require.Error(t, err)

	_, err = service.Lookup(ctx, "B08N5WRWNW")
	require.Error(t, err)

	assert.Equal(t, 2, a.calls)
}

func TestLookup_RateLimiterGatesEachAttempt(t *testing.T) {
	const interval = 30 * time.Millisecond

	a := failing("provider_a", domain.KindNetworkError)
	b := succeeding("provider_b")
	service := NewLookupService(
		[]domain.Provider{a, b},
		ratelimit.NewInterval(interval),
		nil,
		LookupServiceConfig{},
	)

	start := time.Now()
	_, err := service.Lookup(context.Background(), "B08N5WRWNW")

	require.NoError(t, err)
	// Two outbound attempts need two permits: the second waits one interval.
	assert.GreaterOrEqual(t, time.Since(start), interval)
}
