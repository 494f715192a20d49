package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnalysisLog records one template batch-analysis run, including the raw
// model input and output for audit.
type AnalysisLog struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	BatchID            string         `gorm:"size:64;not null;index" json:"batch_id"`
	Model              string         `gorm:"size:100" json:"model"`
	Input              datatypes.JSON `json:"input"`
	Output             datatypes.JSON `json:"output"`
	EventsAnalyzed     int            `json:"events_analyzed"`
	TemplatesGenerated int            `json:"templates_generated"`
	CreatedAt          time.Time      `json:"created_at"`
}

func (AnalysisLog) TableName() string {
	return "analysis_logs"
}
