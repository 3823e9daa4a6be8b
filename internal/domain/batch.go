package domain

import "errors"

// LookupFailure is the failure payload for a resolution that produced no
// record: the original input plus every provider attempt, in the order tried.
type LookupFailure struct {
	Error         string           `json:"error"`
	InputReceived string           `json:"input_received"`
	Attempts      []*ProviderError `json:"attempts"`
}

// BatchItemResult pairs one raw batch input with its outcome. Exactly one of
// Record and Failure is set.
type BatchItemResult struct {
	Input   string         `json:"input"`
	Record  *ProductRecord `json:"record,omitempty"`
	Failure *LookupFailure `json:"failure,omitempty"`
}

// FailureFromError converts a resolution error into the wire failure payload.
func FailureFromError(input string, err error) *LookupFailure {
	failure := &LookupFailure{
		Error:         err.Error(),
		InputReceived: input,
		Attempts:      []*ProviderError{},
	}

	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		failure.Error = "invalid input: please provide a valid Amazon URL or ASIN"
		return failure
	}

	var exhausted *ExhaustedError
	if errors.As(err, &exhausted) {
		failure.Error = "unable to fetch product information: all providers failed"
		failure.Attempts = exhausted.Attempts
	}

	return failure
}
