package models

import "time"

// Template is a reusable event pattern. Frequency counts how many events
// were linked to it; GenerationBatch tags templates produced by one batch
// analysis run so an entire generation can be deactivated at once.
type Template struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:200;not null" json:"name"`
	Description     string     `gorm:"size:1000;not null" json:"description"`
	DefaultPoints   int        `gorm:"not null" json:"default_points"`
	Frequency       int        `gorm:"not null;default:0" json:"frequency"`
	AIConfidence    *float64   `json:"ai_confidence"`
	LastSeen        *time.Time `json:"last_seen"`
	IsActive        bool       `gorm:"not null;default:true;index" json:"is_active"`
	GenerationBatch string     `gorm:"size:64;index" json:"generation_batch"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Template) TableName() string {
	return "templates"
}
