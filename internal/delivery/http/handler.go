package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
	"github.com/sarahmorr016/RegimenPro-Scrape/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	reconciler *usecase.ReconcileService
	clock      domain.Clock
}

// NewHandler creates a new HTTP handler
func NewHandler(reconciler *usecase.ReconcileService, clock domain.Clock) *Handler {
	return &Handler{reconciler: reconciler, clock: clock}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "regimenpro-scrape",
		"version": "1.0.0",
	})
}

// reconcileDocument is one inline document in a reconcile request
type reconcileDocument struct {
	ContentType string `json:"contentType"`
	Body        string `json:"body" binding:"required"`
	Profile     string `json:"profile" binding:"required"`
}

// reconcileRequest carries two inline documents and optional field specs
type reconcileRequest struct {
	ProductKey string             `json:"productKey"`
	SourceA    reconcileDocument  `json:"sourceA" binding:"required"`
	SourceB    reconcileDocument  `json:"sourceB" binding:"required"`
	Fields     []domain.FieldSpec `json:"fields"`
}

// reconcileResponse returns the per-field comparison rows
type reconcileResponse struct {
	ProductKey string                 `json:"productKey,omitempty"`
	CapturedAt string                 `json:"capturedAt"`
	Rows       []domain.ComparisonRow `json:"rows"`
}

// Reconcile compares two inline documents field by field
func (h *Handler) Reconcile(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reconciler.CompareDocuments(
		toRawDocument(req.SourceA),
		toRawDocument(req.SourceB),
		req.SourceA.Profile,
		req.SourceB.Profile,
		req.Fields,
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownProfile):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrExtraction):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	capturedAt := h.clock.Now().Format(time.RFC3339)
	for i := range rows {
		rows[i].ProductKey = req.ProductKey
		rows[i].CapturedAt = capturedAt
	}

	c.JSON(http.StatusOK, reconcileResponse{
		ProductKey: req.ProductKey,
		CapturedAt: capturedAt,
		Rows:       rows,
	})
}

// Profiles lists the registered extraction profiles
func (h *Handler) Profiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profiles": usecase.ProfileNames()})
}

func toRawDocument(doc reconcileDocument) domain.RawDocument {
	return domain.RawDocument{
		ContentType: domain.ContentType(doc.ContentType),
		Body:        []byte(doc.Body),
	}
}
