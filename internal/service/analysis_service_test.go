package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"doypal/internal/domain"
	"doypal/internal/models"
	"doypal/internal/repository"
	"doypal/pkg/ai"

	"gorm.io/gorm"
)

func newAnalysisService(t *testing.T, model ai.Client) (*AnalysisService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	events := repository.NewEventRepository(db)
	templates := repository.NewTemplateRepository(db)
	logs := repository.NewAnalysisLogRepository(db)
	return NewAnalysisService(db, events, templates, logs, model), db
}

func TestAnalyzeDisabled(t *testing.T) {
	svc, _ := newAnalysisService(t, ai.NewStubClient())
	if _, err := svc.Analyze(context.Background()); !errors.Is(err, ai.ErrDisabled) {
		t.Errorf("Analyze = %v, want ErrDisabled", err)
	}
}

func TestAnalyzeReplacesGeneration(t *testing.T) {
	model := &fakeModel{proposals: []ai.TemplateProposal{
		{Name: "Tidy up", Description: "Tidied a room", DefaultPoints: 3, EstimatedFrequency: 4, Confidence: 0.8},
		{Name: "Homework", Description: "Finished homework", DefaultPoints: 5, EstimatedFrequency: 2, Confidence: 0.9},
	}}
	svc, db := newAnalysisService(t, model)
	createEvent(t, db, 3)
	createEvent(t, db, 5)
	old := createTemplate(t, db, "Old generation")

	res, err := svc.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.AnalyzedEvents != 2 || res.TemplatesGenerated != 2 {
		t.Errorf("analyzed=%d generated=%d, want 2/2", res.AnalyzedEvents, res.TemplatesGenerated)
	}
	if res.BatchID == "" {
		t.Error("BatchID empty")
	}

	var reloaded models.Template
	if err := db.First(&reloaded, old.ID).Error; err != nil {
		t.Fatalf("reload old template: %v", err)
	}
	if reloaded.IsActive {
		t.Error("previous generation still active after analyze")
	}

	var active []models.Template
	if err := db.Where("is_active = ?", true).Find(&active).Error; err != nil {
		t.Fatalf("load active templates: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active templates = %d, want 2", len(active))
	}
	for _, tpl := range active {
		if tpl.GenerationBatch != res.BatchID {
			t.Errorf("template %q batch = %q, want %q", tpl.Name, tpl.GenerationBatch, res.BatchID)
		}
		if tpl.AIConfidence == nil {
			t.Errorf("template %q missing confidence", tpl.Name)
		}
	}

	var logRow models.AnalysisLog
	if err := db.Where("batch_id = ?", res.BatchID).First(&logRow).Error; err != nil {
		t.Fatalf("load analysis log: %v", err)
	}
	if logRow.EventsAnalyzed != 2 || logRow.TemplatesGenerated != 2 {
		t.Errorf("log = %d events / %d templates, want 2/2", logRow.EventsAnalyzed, logRow.TemplatesGenerated)
	}
	if logRow.Model != "fake-model" {
		t.Errorf("log model = %q, want fake-model", logRow.Model)
	}
}

func TestAnalyzeCapsTemplateCount(t *testing.T) {
	var proposals []ai.TemplateProposal
	for i := 0; i < domain.MaxGeneratedTemplates+5; i++ {
		proposals = append(proposals, ai.TemplateProposal{
			Name:          fmt.Sprintf("Template %d", i),
			Description:   "Generated",
			DefaultPoints: 1,
			Confidence:    0.7,
		})
	}
	svc, db := newAnalysisService(t, &fakeModel{proposals: proposals})
	createEvent(t, db, 3)

	res, err := svc.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.TemplatesGenerated != domain.MaxGeneratedTemplates {
		t.Errorf("TemplatesGenerated = %d, want cap %d", res.TemplatesGenerated, domain.MaxGeneratedTemplates)
	}
}
