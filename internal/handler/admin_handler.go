package handler

import (
	"errors"
	"net/http"

	"doypal/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler serves the dashboard views: the full event list including
// archived rows, hard deletion, and point breakdowns.
type AdminHandler struct {
	events *repository.EventRepository
	points *repository.PointsRepository
}

func NewAdminHandler(events *repository.EventRepository, points *repository.PointsRepository) *AdminHandler {
	return &AdminHandler{events: events, points: points}
}

// ListEvents returns every event, archived ones included.
func (h *AdminHandler) ListEvents(c *gin.Context) {
	events, err := h.events.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// HardDeleteEvent permanently removes an event. Kept as an admin-only
// escape hatch; everything else soft-deletes.
func (h *AdminHandler) HardDeleteEvent(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	if err := h.events.HardDelete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event permanently deleted"})
}

// Points returns the summary plus per-day-of-week totals.
func (h *AdminHandler) Points(c *gin.Context) {
	summary, err := h.points.Summary(nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching points data"})
		return
	}
	byDay, err := h.points.PointsByDay()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching points data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pointSummaries": summary,
		"pointsByDay":    byDay,
	})
}
