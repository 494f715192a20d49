package models

import (
	"time"

	"gorm.io/datatypes"
)

// Event is a logged point-earning behavior, the credit side of the
// points ledger. Rows are never hard-deleted through the public API;
// soft delete flips is_active so history stays recomputable.
type Event struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	Name                  string         `gorm:"size:200;not null" json:"name"`
	Description           string         `gorm:"size:1000;not null" json:"description"`
	NormalizedDescription string         `gorm:"size:1000" json:"normalized_description"`
	Points                int            `gorm:"not null" json:"points"`
	Timestamp             time.Time      `gorm:"not null;index" json:"timestamp"`
	DayOfWeek             string         `gorm:"size:10" json:"day_of_week"`
	DayOfMonth            int            `json:"day_of_month"`
	IsActive              bool           `gorm:"not null;default:true;index" json:"is_active"`
	TemplateID            *uint          `gorm:"index" json:"template_id"`
	ProfileID             *uint          `gorm:"index" json:"profile_id"`
	DescriptionEmbedding  datatypes.JSON `json:"description_embedding,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`

	Template *Template `gorm:"foreignKey:TemplateID" json:"-"`
	Profile  *Profile  `gorm:"foreignKey:ProfileID" json:"-"`
}

func (Event) TableName() string {
	return "events"
}

// Stamp fills Timestamp (when zero) and derives the day-of-week and
// day-of-month fields from it.
func (e *Event) Stamp() {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.DayOfWeek = e.Timestamp.Weekday().String()
	e.DayOfMonth = e.Timestamp.Day()
}
