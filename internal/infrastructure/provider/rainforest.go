package provider

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"

	"github.com/productagent/backend/internal/domain"
)

// NameRainforest tags records and attempt errors produced by the Rainforest adapter.
const NameRainforest = "rainforest_api"

// Rainforest fetches product data from the Rainforest API. It is the richest
// source in the chain: list price, discount price, feature bullets, variants
// and the full image set.
type Rainforest struct {
	client  *resty.Client
	apiKey  string
	baseURL string
}

// NewRainforest creates a new Rainforest adapter
func NewRainforest(apiKey, baseURL string, timeout time.Duration) *Rainforest {
	return &Rainforest{
		client:  newHTTPClient(timeout),
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

func (p *Rainforest) Name() string {
	return NameRainforest
}

// rainforestResponse mirrors the subset of the Rainforest product payload
// the canonical record needs.
type rainforestResponse struct {
	Product *struct {
		Title string `json:"title"`
		Price struct {
			Raw string `json:"raw"`
		} `json:"price"`
		ListPrice struct {
			Raw string `json:"raw"`
		} `json:"list_price"`
		FeatureBullets []string `json:"feature_bullets"`
		Variants       []struct {
			Title string `json:"title"`
		} `json:"variants"`
		Images []struct {
			Link string `json:"link"`
		} `json:"images"`
	} `json:"product"`
}

// Fetch issues one product request and maps the response.
func (p *Rainforest) Fetch(ctx context.Context, asin domain.ASIN) (*domain.ProductRecord, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":       p.apiKey,
			"type":          "product",
			"amazon_domain": "amazon.com",
			"asin":          asin.String(),
		}).
		Get(p.baseURL + "/request")
	if err != nil {
		return nil, classifyTransport(NameRainforest, err)
	}
	if resp.IsError() {
		return nil, classifyStatus(NameRainforest, resp)
	}

	var body rainforestResponse
	if err := json.Unmarshal(resp.Bytes(), &body); err != nil {
		return nil, malformed(NameRainforest, err)
	}
	if body.Product == nil {
		return nil, &domain.ProviderError{
			Provider: NameRainforest,
			Kind:     domain.KindNotFound,
			Message:  "response has no product",
		}
	}

	variants := make([]string, 0, len(body.Product.Variants))
	for _, v := range body.Product.Variants {
		if v.Title != "" {
			variants = append(variants, v.Title)
		}
	}

	images := make([]string, 0, len(body.Product.Images))
	for _, img := range body.Product.Images {
		if img.Link != "" {
			images = append(images, img.Link)
		}
	}

	log.Debugf("[rainforest] fetched %s: %q", asin, body.Product.Title)

	return finalize(NameRainforest, &domain.ProductRecord{
		ProductName: body.Product.Title,
		Price: domain.Price{
			Original:   body.Product.ListPrice.Raw,
			Discounted: body.Product.Price.Raw,
		},
		Description:  strings.Join(body.Product.FeatureBullets, " "),
		Variants:     variants,
		ImageURLs:    images,
		SourceMethod: NameRainforest,
		ASIN:         asin.String(),
	})
}
