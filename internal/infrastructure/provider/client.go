// Package provider contains one adapter per backing product data API. Each
// adapter issues exactly one outbound request per Fetch and maps the
// provider's response shape into the canonical domain.ProductRecord.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"resty.dev/v3"

	"github.com/productagent/backend/internal/domain"
)

// newHTTPClient builds the resty client an adapter owns. Retries are
// disabled: falling back after a failure is the resolver's job, so a single
// Fetch must never turn into several outbound requests.
func newHTTPClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", "productagent/1.0").
		SetHeader("Accept", "application/json")
}

// classifyTransport maps a transport-level error to an attempt error.
func classifyTransport(name string, err error) *domain.ProviderError {
	kind := domain.KindNetworkError

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = domain.KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = domain.KindTimeout
	}

	return &domain.ProviderError{Provider: name, Kind: kind, Message: err.Error()}
}

// classifyStatus maps a non-2xx provider status to an attempt error.
func classifyStatus(name string, resp *resty.Response) *domain.ProviderError {
	var kind domain.FailureKind
	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = domain.KindAuthenticationFailed
	case http.StatusTooManyRequests:
		kind = domain.KindRateLimited
	case http.StatusNotFound:
		kind = domain.KindNotFound
	default:
		kind = domain.KindNetworkError
	}

	return &domain.ProviderError{
		Provider: name,
		Kind:     kind,
		Message:  fmt.Sprintf("status %d", resp.StatusCode()),
	}
}

// malformed wraps a response-parsing failure.
func malformed(name string, err error) *domain.ProviderError {
	return &domain.ProviderError{
		Provider: name,
		Kind:     domain.KindMalformedResponse,
		Message:  err.Error(),
	}
}
