package provider

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"

	"github.com/productagent/backend/internal/domain"
)

// NameRapidAPI tags records and attempt errors produced by the RapidAPI adapter.
const NameRapidAPI = "rapidapi"

// RapidAPI fetches product data from the amazon-product-reviews-keywords API
// on the RapidAPI marketplace. Authentication travels in headers rather than
// query parameters, and the product search returns a list of candidates of
// which the first is the ASIN match.
type RapidAPI struct {
	client  *resty.Client
	apiKey  string
	host    string
	baseURL string
}

// NewRapidAPI creates a new RapidAPI adapter. The host names the marketplace
// API for the X-RapidAPI-Host header; baseURL is where requests actually go
// (normally "https://" + host).
func NewRapidAPI(apiKey, host, baseURL string, timeout time.Duration) *RapidAPI {
	if baseURL == "" {
		baseURL = "https://" + host
	}

	return &RapidAPI{
		client:  newHTTPClient(timeout),
		apiKey:  apiKey,
		host:    host,
		baseURL: baseURL,
	}
}

func (p *RapidAPI) Name() string {
	return NameRapidAPI
}

// rapidAPIResponse mirrors the product search payload.
type rapidAPIResponse struct {
	Products []struct {
		Title         string   `json:"title"`
		OriginalPrice string   `json:"original_price"`
		CurrentPrice  string   `json:"current_price"`
		Description   string   `json:"description"`
		Variants      []string `json:"variants"`
		Image         string   `json:"image"`
	} `json:"products"`
}

// Fetch issues one product search request and maps the first result.
func (p *RapidAPI) Fetch(ctx context.Context, asin domain.ASIN) (*domain.ProductRecord, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("X-RapidAPI-Key", p.apiKey).
		SetHeader("X-RapidAPI-Host", p.host).
		SetQueryParams(map[string]string{
			"keyword":  asin.String(),
			"country":  "US",
			"category": "aps",
		}).
		Get(p.baseURL + "/product/search")
	if err != nil {
		return nil, classifyTransport(NameRapidAPI, err)
	}
	if resp.IsError() {
		return nil, classifyStatus(NameRapidAPI, resp)
	}

	var body rapidAPIResponse
	if err := json.Unmarshal(resp.Bytes(), &body); err != nil {
		return nil, malformed(NameRapidAPI, err)
	}
	if len(body.Products) == 0 {
		return nil, &domain.ProviderError{
			Provider: NameRapidAPI,
			Kind:     domain.KindNotFound,
			Message:  "search returned no products",
		}
	}

	product := body.Products[0]

	images := []string{}
	if product.Image != "" {
		images = append(images, product.Image)
	}

	log.Debugf("[rapidapi] fetched %s: %q", asin, product.Title)

	return finalize(NameRapidAPI, &domain.ProductRecord{
		ProductName: product.Title,
		Price: domain.Price{
			Original:   product.OriginalPrice,
			Discounted: product.CurrentPrice,
		},
		Description:  product.Description,
		Variants:     product.Variants,
		ImageURLs:    images,
		SourceMethod: NameRapidAPI,
		ASIN:         asin.String(),
	})
}
