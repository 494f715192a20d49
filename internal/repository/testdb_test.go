package repository

import (
	"testing"
	"time"

	"doypal/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// In-memory sqlite is per connection; keep the pool at one.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Template{},
		&models.Event{},
		&models.Reward{},
		&models.Redemption{},
		&models.AnalysisLog{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func mustCreateEvent(t *testing.T, db *gorm.DB, points int, ts time.Time, profileID *uint) *models.Event {
	t.Helper()
	e := &models.Event{
		Name:        "test event",
		Description: "test event",
		Points:      points,
		Timestamp:   ts,
		ProfileID:   profileID,
		IsActive:    true,
	}
	e.Stamp()
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	return e
}
