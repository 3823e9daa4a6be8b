package domain

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	bareASINRegex = regexp.MustCompile(`^[A-Za-z0-9]{10}$`)
	urlASINRegex  = regexp.MustCompile(`(?i)/(?:dp|gp/product|product)/([A-Za-z0-9]{10})(?:[/?#]|$)`)
)

// AcceptedInputFormats lists the input shapes ParseASIN understands, for
// user-facing error messages.
var AcceptedInputFormats = []string{
	"https://www.amazon.com/dp/ASIN",
	"https://www.amazon.com/gp/product/ASIN",
	"https://www.amazon.com/product/ASIN",
	"ASIN (10-character product code)",
}

// ASIN is the canonical 10-character Amazon product identifier. Values are
// always uppercase and valid by construction: ParseASIN is the only way to
// obtain one.
type ASIN string

// ParseASIN extracts the canonical identifier from a raw ASIN or an Amazon
// product URL. Matching is case-insensitive; the result is uppercase.
// Unrecognizable input yields an InvalidInputError carrying the original
// input and the accepted formats.
func ParseASIN(raw string) (ASIN, error) {
	input := strings.TrimSpace(raw)

	if bareASINRegex.MatchString(input) {
		return ASIN(strings.ToUpper(input)), nil
	}

	if m := urlASINRegex.FindStringSubmatch(input); m != nil {
		return ASIN(strings.ToUpper(m[1])), nil
	}

	return "", &InvalidInputError{Input: raw, Formats: AcceptedInputFormats}
}

func (a ASIN) String() string {
	return string(a)
}
