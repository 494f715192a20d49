package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"doypal/internal/models"
	"doypal/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TemplateHandler struct {
	templates *repository.TemplateRepository
}

func NewTemplateHandler(templates *repository.TemplateRepository) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templates.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

type createTemplateRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	DefaultPoints *int     `json:"default_points"`
	Frequency     int      `json:"frequency"`
	AIConfidence  *float64 `json:"ai_confidence"`
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" || req.Description == "" || req.DefaultPoints == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, description, default_points"})
		return
	}
	now := time.Now()
	template := models.Template{
		Name:          req.Name,
		Description:   req.Description,
		DefaultPoints: *req.DefaultPoints,
		Frequency:     req.Frequency,
		AIConfidence:  req.AIConfidence,
		LastSeen:      &now,
		IsActive:      true,
	}
	if err := h.templates.Create(&template); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": template, "message": "Template created successfully"})
}

func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}
	template, err := h.templates.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": template})
}

type updateTemplateRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	DefaultPoints *int     `json:"default_points"`
	Frequency     *int     `json:"frequency"`
	AIConfidence  *float64 `json:"ai_confidence"`
	IsActive      *bool    `json:"is_active"`
}

func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}
	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Template name cannot be empty"})
			return
		}
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Template description cannot be empty"})
			return
		}
		fields["description"] = *req.Description
	}
	if req.DefaultPoints != nil {
		if *req.DefaultPoints < 1 || *req.DefaultPoints > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Default points must be between 1 and 100"})
			return
		}
		fields["default_points"] = *req.DefaultPoints
	}
	if req.Frequency != nil {
		fields["frequency"] = *req.Frequency
	}
	if req.AIConfidence != nil {
		fields["ai_confidence"] = *req.AIConfidence
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}
	template, err := h.templates.Update(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": template, "message": "Template updated successfully"})
}

// Delete removes a template permanently. Events keep their template_id;
// nothing in the ledger depends on the row existing.
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}
	if err := h.templates.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}
