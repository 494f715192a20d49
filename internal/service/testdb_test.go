package service

import (
	"context"
	"testing"
	"time"

	"doypal/internal/models"
	"doypal/pkg/ai"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Template{},
		&models.Event{},
		&models.Reward{},
		&models.Redemption{},
		&models.AnalysisLog{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createEvent(t *testing.T, db *gorm.DB, points int) *models.Event {
	t.Helper()
	e := &models.Event{
		Name:        "test event",
		Description: "test event",
		Points:      points,
		Timestamp:   time.Now(),
		IsActive:    true,
	}
	e.Stamp()
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	return e
}

func createReward(t *testing.T, db *gorm.DB, name string, cost int) *models.Reward {
	t.Helper()
	r := &models.Reward{Name: name, PointCost: cost, IsActive: true}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create reward: %v", err)
	}
	return r
}

func createTemplate(t *testing.T, db *gorm.DB, name string) *models.Template {
	t.Helper()
	tpl := &models.Template{Name: name, Description: name, DefaultPoints: 3, IsActive: true}
	if err := db.Create(tpl).Error; err != nil {
		t.Fatalf("create template: %v", err)
	}
	return tpl
}

// fakeModel is a canned-response ai.Client for exercising the enabled
// code paths without a network.
type fakeModel struct {
	suggestions []ai.Suggestion
	proposals   []ai.TemplateProposal
	embedding   []float32
	embedErr    error
	embedCalls  int
}

func (f *fakeModel) Translate(ctx context.Context, text string) (string, error) {
	return text, nil
}

func (f *fakeModel) Embed(ctx context.Context, text string) ([]float32, error) {
	f.embedCalls++
	return f.embedding, f.embedErr
}

func (f *fakeModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.embedCalls++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.embedding
	}
	return out, nil
}

func (f *fakeModel) SuggestLinks(ctx context.Context, events []ai.EventSample, templates []ai.TemplateSample) ([]ai.Suggestion, error) {
	return f.suggestions, nil
}

func (f *fakeModel) ProposeTemplates(ctx context.Context, events []ai.EventSample) ([]ai.TemplateProposal, error) {
	return f.proposals, nil
}

func (f *fakeModel) Enabled() bool { return true }

func (f *fakeModel) Model() string { return "fake-model" }
