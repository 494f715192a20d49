package router

import (
	"time"

	"doypal/config"
	"doypal/internal/handler"
	"doypal/internal/middleware"
	"doypal/internal/repository"
	"doypal/internal/service"
	"doypal/pkg/ai"
	"doypal/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, model ai.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	profileRepo := repository.NewProfileRepository(db)
	eventRepo := repository.NewEventRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	redemptionRepo := repository.NewRedemptionRepository(db)
	pointsRepo := repository.NewPointsRepository(db)
	analysisLogRepo := repository.NewAnalysisLogRepository(db)

	// Services
	redemptionSvc := service.NewRedemptionService(db, pointsRepo)
	linkingSvc := service.NewLinkingService(eventRepo, templateRepo, model)
	analysisSvc := service.NewAnalysisService(db, eventRepo, templateRepo, analysisLogRepo, model)
	embeddingSvc := service.NewEmbeddingService(db, eventRepo, model, cfg.AI.ChunkPause)

	// Handlers
	eventHandler := handler.NewEventHandler(eventRepo)
	pointsHandler := handler.NewPointsHandler(pointsRepo)
	rewardHandler := handler.NewRewardHandler(rewardRepo, cloud)
	redemptionHandler := handler.NewRedemptionHandler(redemptionRepo, redemptionSvc)
	templateHandler := handler.NewTemplateHandler(templateRepo)
	profileHandler := handler.NewProfileHandler(profileRepo)
	adminHandler := handler.NewAdminHandler(eventRepo, pointsRepo)
	linkHandler := handler.NewLinkHandler(eventRepo, templateRepo, linkingSvc)
	analyzeHandler := handler.NewAnalyzeHandler(analysisSvc)
	embeddingHandler := handler.NewEmbeddingHandler(embeddingSvc)
	schemaHandler := handler.NewSchemaHandler(db)

	api := r.Group("/api")
	{
		api.GET("/events", eventHandler.List)
		api.POST("/events", eventHandler.Create)
		api.GET("/events/:id", eventHandler.Get)
		api.PATCH("/events/:id", eventHandler.Update)
		api.DELETE("/events/:id", eventHandler.Delete)

		api.GET("/points", pointsHandler.Summary)

		api.GET("/rewards", rewardHandler.List)
		api.POST("/rewards", rewardHandler.Create)
		api.GET("/rewards/:id", rewardHandler.Get)
		api.PATCH("/rewards/:id", rewardHandler.Update)
		api.DELETE("/rewards/:id", rewardHandler.Delete)

		api.GET("/redemptions", redemptionHandler.List)
		api.POST("/redemptions", redemptionHandler.Redeem)
		api.GET("/redemptions/:id", redemptionHandler.Get)
		api.PATCH("/redemptions/:id", redemptionHandler.Patch)

		api.GET("/templates", templateHandler.List)
		api.POST("/templates", templateHandler.Create)
		api.GET("/templates/:id", templateHandler.Get)
		api.PATCH("/templates/:id", templateHandler.Update)
		api.DELETE("/templates/:id", templateHandler.Delete)

		api.GET("/profiles", profileHandler.List)
		api.POST("/profiles", profileHandler.Create)
		api.GET("/profiles/:id", profileHandler.Get)
		api.PATCH("/profiles/:id", profileHandler.Update)
		api.DELETE("/profiles/:id", profileHandler.Delete)

		api.POST("/embeddings", embeddingHandler.Embed)
		api.GET("/schema", schemaHandler.Setup)

		admin := api.Group("/admin")
		{
			admin.GET("/events", adminHandler.ListEvents)
			admin.PATCH("/events/:id", eventHandler.Update)
			admin.DELETE("/events/:id", adminHandler.HardDeleteEvent)
			admin.GET("/events/categories", embeddingHandler.Categories)
			admin.POST("/events/embedding", embeddingHandler.SetEventEmbedding)
			admin.POST("/events/similar", embeddingHandler.Similar)
			admin.POST("/events/update-all-embeddings", embeddingHandler.UpdateAll)
			admin.GET("/points", adminHandler.Points)
			admin.POST("/analyze-templates", analyzeHandler.Run)
			admin.GET("/link-events-templates", linkHandler.Get)
			admin.POST("/link-events-templates", linkHandler.Post)
		}
	}

	return r
}
