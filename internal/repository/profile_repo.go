package repository

import (
	"doypal/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) ListActive() ([]models.Profile, error) {
	var list []models.Profile
	err := r.db.Scopes(Active).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *ProfileRepository) GetActiveByID(id uint) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.Scopes(Active).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Create(p *models.Profile) error {
	return r.db.Create(p).Error
}

func (r *ProfileRepository) Update(id uint, fields map[string]interface{}) (*models.Profile, error) {
	res := r.db.Model(&models.Profile{}).Scopes(Active).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var p models.Profile
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) SoftDelete(id uint) (*models.Profile, error) {
	res := r.db.Model(&models.Profile{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var p models.Profile
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
