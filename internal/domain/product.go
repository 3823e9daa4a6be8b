package domain

// Price holds provider-reported prices as currency-formatted text.
// Discounted is omitted when the provider reports a single price.
type Price struct {
	Original   string `json:"original"`
	Discounted string `json:"discounted,omitempty"`
}

// ProductRecord is the canonical product schema every provider adapter maps
// its response into. A successfully resolved record always carries a
// non-empty ASIN and SourceMethod; every other field may be empty when the
// provider did not report it.
type ProductRecord struct {
	ProductName  string   `json:"product_name"`
	Price        Price    `json:"price"`
	Description  string   `json:"description"`
	Variants     []string `json:"variants"`
	ImageURLs    []string `json:"image_urls"`
	SourceMethod string   `json:"source_method"`
	ASIN         string   `json:"asin"`
}
