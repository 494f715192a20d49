package models

import "time"

// Reward is an admin-managed catalog entry redeemable for points.
type Reward struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"size:1000" json:"description"`
	PointCost   int       `gorm:"not null" json:"point_cost"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Reward) TableName() string {
	return "rewards"
}
