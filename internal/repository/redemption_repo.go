package repository

import (
	"doypal/internal/models"

	"gorm.io/gorm"
)

type RedemptionRepository struct {
	db *gorm.DB
}

func NewRedemptionRepository(db *gorm.DB) *RedemptionRepository {
	return &RedemptionRepository{db: db}
}

func (r *RedemptionRepository) List(profileID *uint, includeWithdrawn bool) ([]models.Redemption, error) {
	q := r.db.Preload("Reward").Scopes(ForProfile(profileID))
	if !includeWithdrawn {
		q = q.Where("status = ?", models.RedemptionActive)
	}
	var list []models.Redemption
	err := q.Order("redeemed_at DESC").Find(&list).Error
	return list, err
}

func (r *RedemptionRepository) GetByID(id uint) (*models.Redemption, error) {
	var red models.Redemption
	if err := r.db.Preload("Reward").First(&red, id).Error; err != nil {
		return nil, err
	}
	return &red, nil
}

// DB exposes the underlying handle for the redeem transaction.
func (r *RedemptionRepository) DB() *gorm.DB {
	return r.db
}
