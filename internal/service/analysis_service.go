package service

import (
	"context"
	"encoding/json"
	"time"

	"doypal/internal/domain"
	"doypal/internal/models"
	"doypal/internal/repository"
	"doypal/pkg/ai"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalysisService runs batch template generation: sample recent events,
// ask the model for reusable templates, replace the active generation.
type AnalysisService struct {
	db        *gorm.DB
	events    *repository.EventRepository
	templates *repository.TemplateRepository
	logs      *repository.AnalysisLogRepository
	model     ai.Client
}

func NewAnalysisService(db *gorm.DB, events *repository.EventRepository, templates *repository.TemplateRepository, logs *repository.AnalysisLogRepository, model ai.Client) *AnalysisService {
	return &AnalysisService{db: db, events: events, templates: templates, logs: logs, model: model}
}

type AnalysisResult struct {
	BatchID            string            `json:"batch_id"`
	AnalyzedEvents     int               `json:"analyzed_events"`
	TemplatesGenerated int               `json:"templates_generated"`
	Templates          []models.Template `json:"templates"`
}

// Analyze deactivates the previous template generation and inserts the
// newly proposed set under a fresh batch id. The raw model input and
// output are logged for audit.
func (s *AnalysisService) Analyze(ctx context.Context) (*AnalysisResult, error) {
	if !s.model.Enabled() {
		return nil, ai.ErrDisabled
	}
	events, err := s.events.ListRecent(domain.AnalysisSampleSize)
	if err != nil {
		return nil, err
	}
	samples := make([]ai.EventSample, 0, len(events))
	for _, e := range events {
		samples = append(samples, ai.EventSample{
			ID: e.ID, Name: e.Name, Description: e.Description, Points: e.Points,
		})
	}
	proposals, err := s.model.ProposeTemplates(ctx, samples)
	if err != nil {
		return nil, err
	}
	if len(proposals) > domain.MaxGeneratedTemplates {
		proposals = proposals[:domain.MaxGeneratedTemplates]
	}

	batchID := uuid.New().String()
	now := time.Now()
	templates := make([]models.Template, 0, len(proposals))
	for _, p := range proposals {
		confidence := p.Confidence
		templates = append(templates, models.Template{
			Name:            p.Name,
			Description:     p.Description,
			DefaultPoints:   p.DefaultPoints,
			Frequency:       p.EstimatedFrequency,
			AIConfidence:    &confidence,
			LastSeen:        &now,
			IsActive:        true,
			GenerationBatch: batchID,
		})
	}

	inputJSON, _ := json.Marshal(samples)
	outputJSON, _ := json.Marshal(proposals)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.templates.DeactivateAll(tx); err != nil {
			return err
		}
		if len(templates) > 0 {
			if err := s.templates.CreateBatch(tx, templates); err != nil {
				return err
			}
		}
		return s.logs.Create(tx, &models.AnalysisLog{
			BatchID:            batchID,
			Model:              s.model.Model(),
			Input:              datatypes.JSON(inputJSON),
			Output:             datatypes.JSON(outputJSON),
			EventsAnalyzed:     len(events),
			TemplatesGenerated: len(templates),
		})
	})
	if err != nil {
		return nil, err
	}
	return &AnalysisResult{
		BatchID:            batchID,
		AnalyzedEvents:     len(events),
		TemplatesGenerated: len(templates),
		Templates:          templates,
	}, nil
}
