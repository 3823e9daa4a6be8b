package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/productagent/backend/internal/domain"
	"github.com/productagent/backend/internal/usecase"
)

// ProductService is the usecase surface the HTTP layer depends on
type ProductService interface {
	Lookup(ctx context.Context, raw string) (*domain.ProductRecord, error)
	ProcessBatch(ctx context.Context, inputs []string, progress usecase.ProgressFunc) []domain.BatchItemResult
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products ProductService
}

// NewHandler creates a new HTTP handler
func NewHandler(products ProductService) *Handler {
	return &Handler{products: products}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "productagent-backend",
		"version": "1.0.0",
	})
}

type lookupRequest struct {
	Input string `json:"input" binding:"required"`
}

type batchRequest struct {
	Inputs []string `json:"inputs" binding:"required,min=1"`
}

// LookupProduct handles a single product resolution request
func (h *Handler) LookupProduct(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must contain a non-empty input"})
		return
	}

	record, err := h.products.Lookup(c.Request.Context(), req.Input)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrInvalidIdentifier) {
			status = http.StatusBadRequest
		}
		c.JSON(status, domain.FailureFromError(req.Input, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

// BulkLookup resolves a list of inputs and returns per-item results in input order
func (h *Handler) BulkLookup(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must contain a non-empty inputs list"})
		return
	}

	results := h.products.ProcessBatch(c.Request.Context(), req.Inputs, logProgress)

	succeeded := 0
	for _, r := range results {
		if r.Record != nil {
			succeeded++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   results,
		"total":     len(results),
		"succeeded": succeeded,
	})
}

// BulkCSV resolves a list of inputs and returns the results as a CSV attachment
func (h *Handler) BulkCSV(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must contain a non-empty inputs list"})
		return
	}

	results := h.products.ProcessBatch(c.Request.Context(), req.Inputs, logProgress)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename=product_bulk_report.csv`)
	c.Status(http.StatusOK)

	if err := writeCSV(c.Writer, results); err != nil {
		log.Errorf("failed to write CSV response: %v", err)
	}
}

// logProgress is the progress sink for HTTP-driven batches.
func logProgress(completed, total int) {
	log.Infof("bulk progress: %d/%d", completed, total)
}
