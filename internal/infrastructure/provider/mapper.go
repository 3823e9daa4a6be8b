package provider

import "github.com/productagent/backend/internal/domain"

// finalize applies the canonical-record invariants shared by every adapter:
// a lone discounted price is promoted to the original price, a discount equal
// to the original carries no information, and a response with neither a name
// nor any price is treated as not found.
func finalize(name string, record *domain.ProductRecord) (*domain.ProductRecord, error) {
	if record.Price.Original == "" {
		record.Price.Original = record.Price.Discounted
		record.Price.Discounted = ""
	}
	if record.Price.Discounted == record.Price.Original {
		record.Price.Discounted = ""
	}

	if record.ProductName == "" && record.Price.Original == "" {
		return nil, &domain.ProviderError{
			Provider: name,
			Kind:     domain.KindNotFound,
			Message:  "response lacks a product name and price",
		}
	}

	if record.Variants == nil {
		record.Variants = []string{}
	}
	if record.ImageURLs == nil {
		record.ImageURLs = []string{}
	}

	return record, nil
}
