package repository

import (
	"time"

	"doypal/internal/models"

	"gorm.io/gorm"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) ListActive() ([]models.Template, error) {
	var list []models.Template
	err := r.db.Scopes(Active).Order("frequency DESC").Find(&list).Error
	return list, err
}

// ListByConfidence returns active templates ordered by AI confidence, most
// confident first (NULLs last on postgres).
func (r *TemplateRepository) ListByConfidence() ([]models.Template, error) {
	var list []models.Template
	err := r.db.Scopes(Active).Order("ai_confidence DESC").Find(&list).Error
	return list, err
}

func (r *TemplateRepository) GetByID(id uint) (*models.Template, error) {
	var t models.Template
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) Create(t *models.Template) error {
	return r.db.Create(t).Error
}

func (r *TemplateRepository) Update(id uint, fields map[string]interface{}) (*models.Template, error) {
	res := r.db.Model(&models.Template{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

func (r *TemplateRepository) Delete(id uint) error {
	return r.db.Delete(&models.Template{}, id).Error
}

// RecordUsage bumps frequency and last_seen in a single UPDATE so
// concurrent links can't lose increments.
func (r *TemplateRepository) RecordUsage(id uint) error {
	res := r.db.Model(&models.Template{}).Where("id = ?", id).Updates(map[string]interface{}{
		"frequency": gorm.Expr("frequency + 1"),
		"last_seen": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeactivateAll retires the current template generation before a new batch
// is inserted.
func (r *TemplateRepository) DeactivateAll(tx *gorm.DB) error {
	return tx.Model(&models.Template{}).Where("is_active = ?", true).
		Update("is_active", false).Error
}

func (r *TemplateRepository) CreateBatch(tx *gorm.DB, templates []models.Template) error {
	return tx.Create(&templates).Error
}

// DB exposes the underlying handle for multi-repo transactions.
func (r *TemplateRepository) DB() *gorm.DB {
	return r.db
}
