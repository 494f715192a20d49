package repository

import (
	"doypal/internal/models"

	"gorm.io/gorm"
)

type RewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) ListActive() ([]models.Reward, error) {
	var list []models.Reward
	err := r.db.Scopes(Active).Order("point_cost ASC").Find(&list).Error
	return list, err
}

func (r *RewardRepository) GetByID(id uint) (*models.Reward, error) {
	var rw models.Reward
	if err := r.db.First(&rw, id).Error; err != nil {
		return nil, err
	}
	return &rw, nil
}

func (r *RewardRepository) GetActiveByID(id uint) (*models.Reward, error) {
	var rw models.Reward
	if err := r.db.Scopes(Active).First(&rw, id).Error; err != nil {
		return nil, err
	}
	return &rw, nil
}

func (r *RewardRepository) Create(rw *models.Reward) error {
	return r.db.Create(rw).Error
}

func (r *RewardRepository) Update(id uint, fields map[string]interface{}) (*models.Reward, error) {
	res := r.db.Model(&models.Reward{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

func (r *RewardRepository) SoftDelete(id uint) error {
	res := r.db.Model(&models.Reward{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ActiveRedemption returns the live redemption against a reward, if any.
// Used to annotate the catalog with is_redeemed.
func (r *RewardRepository) ActiveRedemption(rewardID uint) (*models.Redemption, error) {
	var red models.Redemption
	err := r.db.Where("reward_id = ? AND status = ?", rewardID, models.RedemptionActive).
		Order("redeemed_at DESC").First(&red).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &red, nil
}
