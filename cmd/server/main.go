package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doypal/config"
	"doypal/internal/database"
	"doypal/internal/router"
	"doypal/pkg/ai"
	"doypal/pkg/cloudinary"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.SeedSampleEvents(db); err != nil {
		log.Printf("seed: %v", err)
	}

	cloud, err := cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		log.Fatalf("cloudinary: %v", err)
	}

	var model ai.Client
	if cfg.AI.Enabled {
		model, err = ai.NewOpenAIClient(ai.Config{
			APIKey:         cfg.AI.APIKey,
			BaseURL:        cfg.AI.BaseURL,
			EmbeddingModel: cfg.AI.EmbeddingModel,
			ChatModel:      cfg.AI.ChatModel,
		})
		if err != nil {
			log.Fatalf("ai client: %v", err)
		}
		log.Printf("[AI] features enabled (model %s)", cfg.AI.ChatModel)
	} else {
		model = ai.NewStubClient()
		log.Printf("[AI] features disabled: set OPENAI_API_KEY to enable")
	}

	engine := router.Setup(cfg, db, cloud, model)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	fmt.Println("server stopped")
}
