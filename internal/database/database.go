package database

import (
	"doypal/config"
	"doypal/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.Template{},
		&models.Event{},
		&models.Reward{},
		&models.Redemption{},
		&models.AnalysisLog{},
	)
}

// SeedSampleEvents inserts two starter events when the events table is
// empty, so a fresh install has something to show.
func SeedSampleEvents(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Event{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	samples := []models.Event{
		{Name: "Helped set the table", Description: "Helped set the table", Points: 2, IsActive: true},
		{Name: "Brushed teeth without reminding", Description: "Brushed teeth without reminding", Points: 1, IsActive: true},
	}
	for i := range samples {
		samples[i].Stamp()
	}
	return db.Create(&samples).Error
}
