package handler

import (
	"errors"
	"net/http"
	"time"

	"doypal/internal/models"
	"doypal/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EventHandler struct {
	events *repository.EventRepository
}

func NewEventHandler(events *repository.EventRepository) *EventHandler {
	return &EventHandler{events: events}
}

// List returns active events, newest first, optionally scoped to a
// profile.
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.ListActive(profileIDQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

type createEventRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Points      int        `json:"points" binding:"required,min=1"`
	Timestamp   *time.Time `json:"timestamp"`
	TemplateID  *uint      `json:"template_id"`
	ProfileID   *uint      `json:"profile_id"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event := models.Event{
		Name:        req.Name,
		Description: req.Description,
		Points:      req.Points,
		TemplateID:  req.TemplateID,
		ProfileID:   req.ProfileID,
	}
	if req.Timestamp != nil {
		event.Timestamp = *req.Timestamp
	}
	if err := h.events.Create(&event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// Get returns an event by id, soft-deleted rows included (audit).
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	event, err := h.events.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

type updateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Points      *int       `json:"points"`
	Timestamp   *time.Time `json:"timestamp"`
	TemplateID  *uint      `json:"template_id"`
	IsActive    *bool      `json:"is_active"`
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Points != nil {
		if *req.Points < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "points must be positive"})
			return
		}
		fields["points"] = *req.Points
	}
	if req.Timestamp != nil {
		fields["timestamp"] = *req.Timestamp
		fields["day_of_week"] = req.Timestamp.Weekday().String()
		fields["day_of_month"] = req.Timestamp.Day()
	}
	if req.TemplateID != nil {
		fields["template_id"] = *req.TemplateID
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}
	event, err := h.events.Update(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// Delete archives an event. The row stays readable by id.
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	if err := h.events.SoftDelete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
