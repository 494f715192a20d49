package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"doypal/internal/models"
	"doypal/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrRewardNotFound     = errors.New("reward not found or inactive")
	ErrRedemptionNotFound = errors.New("redemption not found")
	ErrAlreadyWithdrawn   = errors.New("redemption already withdrawn")
)

// InsufficientPointsError carries the detail payload for the 400 response.
type InsufficientPointsError struct {
	Required int
	Current  int
	Needed   int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: need %d, have %d", e.Required, e.Current)
}

// RedemptionService owns the points ledger's debit side. The balance
// check and the redemption insert run in one serializable transaction so
// two concurrent redemptions cannot both pass the check against a thin
// balance.
type RedemptionService struct {
	db     *gorm.DB
	points *repository.PointsRepository
}

func NewRedemptionService(db *gorm.DB, points *repository.PointsRepository) *RedemptionService {
	return &RedemptionService{db: db, points: points}
}

type RedeemResult struct {
	Redemption      *models.Redemption
	PreviousBalance int
	NewBalance      int
	PointsSpent     int
}

// Redeem spends points on a reward. points_spent snapshots the reward's
// cost at this instant and is never updated afterwards.
func (s *RedemptionService) Redeem(rewardID uint, profileID *uint) (*RedeemResult, error) {
	var result RedeemResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.Scopes(repository.Active).First(&reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}
		earned, err := s.points.EarnedPoints(tx, profileID)
		if err != nil {
			return err
		}
		spent, err := s.points.SpentPoints(tx, profileID)
		if err != nil {
			return err
		}
		available := earned - spent
		if available < reward.PointCost {
			return &InsufficientPointsError{
				Required: reward.PointCost,
				Current:  available,
				Needed:   reward.PointCost - available,
			}
		}
		red := models.Redemption{
			RewardID:    reward.ID,
			PointsSpent: reward.PointCost,
			RedeemedAt:  time.Now(),
			Status:      models.RedemptionActive,
			ProfileID:   profileID,
		}
		if err := tx.Create(&red).Error; err != nil {
			return err
		}
		red.Reward = reward
		result = RedeemResult{
			Redemption:      &red,
			PreviousBalance: available,
			NewBalance:      available - reward.PointCost,
			PointsSpent:     reward.PointCost,
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type WithdrawResult struct {
	PointsRefunded int
	RewardName     string
}

// Withdraw refunds a redemption by flipping its status; no other field is
// touched and no compensating event is written. Withdrawn is terminal:
// withdrawing again is rejected, not a no-op.
func (s *RedemptionService) Withdraw(id uint) (*WithdrawResult, error) {
	var result WithdrawResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var red models.Redemption
		if err := tx.Preload("Reward").First(&red, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRedemptionNotFound
			}
			return err
		}
		if red.Status == models.RedemptionWithdrawn {
			return ErrAlreadyWithdrawn
		}
		if err := tx.Model(&models.Redemption{}).Where("id = ?", id).
			Update("status", models.RedemptionWithdrawn).Error; err != nil {
			return err
		}
		result = WithdrawResult{
			PointsRefunded: red.PointsSpent,
			RewardName:     red.Reward.Name,
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
