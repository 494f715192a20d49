package handler

import (
	"net/http"

	"doypal/internal/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SchemaHandler bootstraps the schema and seeds starter data. Handy for a
// fresh install; migrations also run at startup.
type SchemaHandler struct {
	db *gorm.DB
}

func NewSchemaHandler(db *gorm.DB) *SchemaHandler {
	return &SchemaHandler{db: db}
}

func (h *SchemaHandler) Setup(c *gin.Context) {
	if err := database.AutoMigrate(h.db); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create database schema"})
		return
	}
	if err := database.SeedSampleEvents(h.db); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create database schema"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Database schema created successfully"})
}
