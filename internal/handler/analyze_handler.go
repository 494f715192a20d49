package handler

import (
	"errors"
	"log"
	"net/http"

	"doypal/internal/models"
	"doypal/internal/service"
	"doypal/pkg/ai"

	"github.com/gin-gonic/gin"
)

type AnalyzeHandler struct {
	analysis *service.AnalysisService
}

func NewAnalyzeHandler(analysis *service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analysis: analysis}
}

// Run triggers batch template analysis. With the AI client disabled this
// is a no-op answering the disabled message, matching the production
// default.
func (h *AnalyzeHandler) Run(c *gin.Context) {
	result, err := h.analysis.Analyze(c.Request.Context())
	if err != nil {
		if errors.Is(err, ai.ErrDisabled) {
			c.JSON(http.StatusOK, gin.H{
				"success":             false,
				"batch_id":            nil,
				"analyzed_events":     0,
				"templates_generated": 0,
				"templates":           []models.Template{},
				"message":             "AI template analysis feature is disabled",
			})
			return
		}
		log.Printf("[Analyze] batch analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Template analysis failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"batch_id":            result.BatchID,
		"analyzed_events":     result.AnalyzedEvents,
		"templates_generated": result.TemplatesGenerated,
		"templates":           result.Templates,
	})
}
