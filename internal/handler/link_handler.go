package handler

import (
	"errors"
	"fmt"
	"net/http"

	"doypal/internal/domain"
	"doypal/internal/repository"
	"doypal/internal/service"
	"doypal/pkg/ai"

	"github.com/gin-gonic/gin"
)

// LinkHandler serves the admin event↔template linking surface.
type LinkHandler struct {
	events    *repository.EventRepository
	templates *repository.TemplateRepository
	linking   *service.LinkingService
}

func NewLinkHandler(events *repository.EventRepository, templates *repository.TemplateRepository, linking *service.LinkingService) *LinkHandler {
	return &LinkHandler{events: events, templates: templates, linking: linking}
}

// Get returns unlinked events and the available templates.
func (h *LinkHandler) Get(c *gin.Context) {
	unlinked, err := h.events.ListUnlinked(domain.UnlinkedEventsLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch unlinked events"})
		return
	}
	templates, err := h.templates.ListByConfidence()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"unlinked_events": unlinked,
		"templates":       templates,
		"summary": gin.H{
			"unlinked_count":  len(unlinked),
			"templates_count": len(templates),
		},
	})
}

type linkPostRequest struct {
	Action     string             `json:"action"`
	EventID    uint               `json:"event_id"`
	TemplateID uint               `json:"template_id"`
	BatchLink  []service.LinkPair `json:"batch_link"`
}

// Post dispatches on action: link_single, generate_suggestions or
// batch_link.
func (h *LinkHandler) Post(c *gin.Context) {
	var req linkPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Action {
	case "link_single":
		h.linkSingle(c, req)
	case "generate_suggestions":
		h.generateSuggestions(c)
	case "batch_link":
		h.batchLink(c, req)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Use: link_single, generate_suggestions, or batch_link"})
	}
}

func (h *LinkHandler) linkSingle(c *gin.Context, req linkPostRequest) {
	if req.EventID == 0 || req.TemplateID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing event_id or template_id"})
		return
	}
	event, err := h.linking.LinkSingle(req.EventID, req.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrTemplateNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link event to template"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"linked_event": event,
		"message":      "Event linked to template successfully",
	})
}

func (h *LinkHandler) generateSuggestions(c *gin.Context) {
	suggestions, err := h.linking.GenerateSuggestions(c.Request.Context())
	if err != nil {
		if errors.Is(err, ai.ErrDisabled) {
			c.JSON(http.StatusOK, gin.H{
				"success":     false,
				"suggestions": []ai.Suggestion{},
				"message":     "AI template linking suggestions feature is disabled",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate suggestions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "suggestions": suggestions})
}

func (h *LinkHandler) batchLink(c *gin.Context, req linkPostRequest) {
	if len(req.BatchLink) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch_link data"})
		return
	}
	results, successful, failed := h.linking.BatchLink(req.BatchLink)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": results,
		"summary": gin.H{
			"successful": successful,
			"failed":     failed,
			"total":      len(results),
		},
		"message": fmt.Sprintf("Batch linking completed: %d successful, %d failed", successful, failed),
	})
}
