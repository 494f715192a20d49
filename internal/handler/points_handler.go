package handler

import (
	"net/http"

	"doypal/internal/repository"

	"github.com/gin-gonic/gin"
)

type PointsHandler struct {
	points *repository.PointsRepository
}

func NewPointsHandler(points *repository.PointsRepository) *PointsHandler {
	return &PointsHandler{points: points}
}

// Summary returns the point balance, optionally scoped to a profile.
func (h *PointsHandler) Summary(c *gin.Context) {
	summary, err := h.points.Summary(profileIDQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch points"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
