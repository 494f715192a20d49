package repository

import (
	"doypal/internal/models"

	"gorm.io/gorm"
)

type AnalysisLogRepository struct {
	db *gorm.DB
}

func NewAnalysisLogRepository(db *gorm.DB) *AnalysisLogRepository {
	return &AnalysisLogRepository{db: db}
}

func (r *AnalysisLogRepository) Create(tx *gorm.DB, l *models.AnalysisLog) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(l).Error
}

func (r *AnalysisLogRepository) ListRecent(limit int) ([]models.AnalysisLog, error) {
	var list []models.AnalysisLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}
