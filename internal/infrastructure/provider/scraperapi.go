package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"

	"github.com/productagent/backend/internal/domain"
)

// NameScraperAPI tags records and attempt errors produced by the ScraperAPI adapter.
const NameScraperAPI = "scraperapi"

// ScraperAPI fetches product data through ScraperAPI's structured mode
// (autoparse), which returns the product page already parsed into JSON.
// Variant labels are not part of that payload, so records from this adapter
// never carry variants.
type ScraperAPI struct {
	client  *resty.Client
	apiKey  string
	baseURL string
}

// NewScraperAPI creates a new ScraperAPI adapter
func NewScraperAPI(apiKey, baseURL string, timeout time.Duration) *ScraperAPI {
	return &ScraperAPI{
		client:  newHTTPClient(timeout),
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

func (p *ScraperAPI) Name() string {
	return NameScraperAPI
}

// scraperAPIResponse mirrors the autoparse payload for an Amazon product page.
type scraperAPIResponse struct {
	Name             string   `json:"name"`
	Pricing          string   `json:"pricing"`
	ListPrice        string   `json:"list_price"`
	FullDescription  string   `json:"full_description"`
	SmallDescription string   `json:"small_description"`
	Images           []string `json:"images"`
}

// Fetch issues one autoparse request and maps the response.
func (p *ScraperAPI) Fetch(ctx context.Context, asin domain.ASIN) (*domain.ProductRecord, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":   p.apiKey,
			"url":       fmt.Sprintf("https://www.amazon.com/dp/%s", asin),
			"autoparse": "true",
		}).
		Get(p.baseURL + "/")
	if err != nil {
		return nil, classifyTransport(NameScraperAPI, err)
	}
	if resp.IsError() {
		return nil, classifyStatus(NameScraperAPI, resp)
	}

	var body scraperAPIResponse
	if err := json.Unmarshal(resp.Bytes(), &body); err != nil {
		return nil, malformed(NameScraperAPI, err)
	}

	description := body.FullDescription
	if description == "" {
		description = body.SmallDescription
	}

	log.Debugf("[scraperapi] fetched %s: %q", asin, body.Name)

	return finalize(NameScraperAPI, &domain.ProductRecord{
		ProductName: body.Name,
		Price: domain.Price{
			Original:   body.ListPrice,
			Discounted: body.Pricing,
		},
		Description:  description,
		Variants:     []string{},
		ImageURLs:    body.Images,
		SourceMethod: NameScraperAPI,
		ASIN:         asin.String(),
	})
}
