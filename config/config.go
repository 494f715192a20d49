package config

import (
	"os"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Cloudinary CloudinaryConfig
	AI         AIConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// AIConfig drives the optional embedding/translation/suggestion features.
// With Enabled=false (the default) every AI endpoint answers with a
// disabled-feature response and the core ledger runs standalone.
type AIConfig struct {
	Enabled        bool
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	ChatModel      string
	ChunkPause     time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         envOr("PORT", "8080"),
			Env:          envOr("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             envOr("DATABASE_DSN", "host=localhost user=doypal password=doypal dbname=doypal port=5432 sslmode=disable TimeZone=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: time.Hour,
		},
		Cloudinary: CloudinaryConfig{
			CloudName: envOr("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    envOr("CLOUDINARY_API_KEY", ""),
			APISecret: envOr("CLOUDINARY_API_SECRET", ""),
		},
		AI: AIConfig{
			Enabled:        os.Getenv("OPENAI_API_KEY") != "" && os.Getenv("AI_FEATURES_DISABLED") == "",
			APIKey:         envOr("OPENAI_API_KEY", ""),
			BaseURL:        envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			EmbeddingModel: envOr("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			ChatModel:      envOr("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			ChunkPause:     1500 * time.Millisecond,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
