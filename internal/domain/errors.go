package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidIdentifier is returned when input cannot be normalized into an ASIN
	ErrInvalidIdentifier = errors.New("input is not a recognizable ASIN or Amazon product URL")

	// ErrAllProvidersExhausted is returned when every configured provider failed
	ErrAllProvidersExhausted = errors.New("all providers exhausted")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// FailureKind classifies a single failed provider attempt.
type FailureKind string

const (
	KindAuthenticationFailed FailureKind = "authentication_failed"
	KindRateLimited          FailureKind = "rate_limited"
	KindNotFound             FailureKind = "not_found"
	KindTimeout              FailureKind = "timeout"
	KindNetworkError         FailureKind = "network_error"
	KindMalformedResponse    FailureKind = "malformed_response"
)

// ProviderError is one failed adapter invocation: which provider, what kind
// of failure, and the raw message when there is one. Adapters return these;
// the resolver accumulates them per attempt.
type ProviderError struct {
	Provider string      `json:"provider"`
	Kind     FailureKind `json:"kind"`
	Message  string      `json:"message,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

// InvalidInputError reports input the normalizer could not recognize.
type InvalidInputError struct {
	Input   string
	Formats []string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: expected one of: %s", e.Input, strings.Join(e.Formats, ", "))
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidIdentifier
}

// ExhaustedError aggregates every attempt of a resolution that no provider
// could satisfy, in the order the providers were tried.
type ExhaustedError struct {
	Input    string
	Attempts []*ProviderError
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d providers failed for %q", len(e.Attempts), e.Input)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrAllProvidersExhausted
}
