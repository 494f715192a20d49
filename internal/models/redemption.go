package models

import "time"

const (
	RedemptionActive    = "active"
	RedemptionWithdrawn = "withdrawn"
)

// Redemption is the debit side of the points ledger. PointsSpent is a
// snapshot of the reward's cost at redemption time and never changes,
// even if the reward is later repriced. Withdrawing flips Status to
// withdrawn; the row itself is kept for audit.
type Redemption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RewardID    uint      `gorm:"not null;index" json:"reward_id"`
	PointsSpent int       `gorm:"not null" json:"points_spent"`
	RedeemedAt  time.Time `gorm:"not null;index" json:"redeemed_at"`
	Status      string    `gorm:"size:20;not null;index;default:'active'" json:"status"`
	ProfileID   *uint     `gorm:"index" json:"profile_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Reward  Reward   `gorm:"foreignKey:RewardID" json:"reward"`
	Profile *Profile `gorm:"foreignKey:ProfileID" json:"-"`
}

func (Redemption) TableName() string {
	return "redemptions"
}
