package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"doypal/internal/domain"
	"doypal/internal/service"
	"doypal/pkg/ai"

	"github.com/gin-gonic/gin"
)

// EmbeddingHandler serves the embedding pipeline endpoints. Every route
// degrades to a disabled-feature response when no AI client is
// configured.
type EmbeddingHandler struct {
	embeddings *service.EmbeddingService
}

func NewEmbeddingHandler(embeddings *service.EmbeddingService) *EmbeddingHandler {
	return &EmbeddingHandler{embeddings: embeddings}
}

type embedRequest struct {
	Text string `json:"text"`
}

// Embed returns the raw vector for a text. Debug tool.
func (h *EmbeddingHandler) Embed(c *gin.Context) {
	var req embedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}
	embedding, err := h.embeddings.EmbedText(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, ai.ErrDisabled) {
			c.JSON(http.StatusOK, gin.H{"message": "Embedding generation feature is disabled"})
			return
		}
		log.Printf("[Embeddings] generate failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate embedding"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"text":       req.Text,
		"embedding":  embedding,
		"dimensions": len(embedding),
	})
}

type similarRequest struct {
	Text      string   `json:"text"`
	Threshold *float64 `json:"threshold"`
	Limit     *int     `json:"limit"`
}

// Similar searches for events near the query text. The similarity math
// lives in the find_similar_events database function.
func (h *EmbeddingHandler) Similar(c *gin.Context) {
	var req similarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}
	threshold := domain.DefaultSimilarityThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	limit := domain.DefaultSimilarityLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	results, err := h.embeddings.FindSimilar(c.Request.Context(), req.Text, threshold, limit)
	if err != nil {
		if errors.Is(err, ai.ErrDisabled) {
			c.JSON(http.StatusOK, gin.H{
				"query":         req.Text,
				"similarEvents": []service.SimilarEvent{},
				"message":       "Similarity search feature is disabled",
			})
			return
		}
		log.Printf("[Similar] search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find similar events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": req.Text, "similarEvents": results})
}

type setEmbeddingRequest struct {
	EventID   uint      `json:"eventId"`
	Embedding []float32 `json:"embedding"`
}

// SetEventEmbedding stores a vector for one event.
func (h *EmbeddingHandler) SetEventEmbedding(c *gin.Context) {
	var req setEmbeddingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EventID == 0 || len(req.Embedding) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event ID and embedding are required"})
		return
	}
	if !h.embeddings.Enabled() {
		c.JSON(http.StatusOK, gin.H{"message": "Individual embedding update feature is disabled", "event": nil})
		return
	}
	if err := h.embeddings.SetEventEmbedding(req.EventID, req.Embedding); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update embedding"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Embedding updated"})
}

// UpdateAll backfills embeddings for events missing one.
func (h *EmbeddingHandler) UpdateAll(c *gin.Context) {
	updated, total, err := h.embeddings.UpdateAllEmbeddings(c.Request.Context())
	if err != nil {
		if errors.Is(err, ai.ErrDisabled) {
			c.JSON(http.StatusOK, gin.H{
				"message": "Bulk embedding update feature is disabled",
				"updated": 0,
				"total":   0,
			})
			return
		}
		log.Printf("[Embeddings] bulk update failed after %d/%d: %v", updated, total, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Bulk embedding update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bulk embedding update completed", "updated": updated, "total": total})
}

// Categories is the AI event categorization endpoint, disabled in the
// current product.
func (h *EmbeddingHandler) Categories(c *gin.Context) {
	threshold, err := strconv.ParseFloat(c.DefaultQuery("threshold", "0.8"), 64)
	if err != nil {
		threshold = 0.8
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": []string{},
		"threshold":  threshold,
		"message":    "AI event categorization feature is disabled",
	})
}
