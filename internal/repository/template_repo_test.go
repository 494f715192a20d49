package repository

import (
	"sync"
	"testing"

	"doypal/internal/models"

	"gorm.io/gorm"
)

func TestTemplateRecordUsage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)

	tpl := &models.Template{Name: "Homework", Description: "Finished homework", DefaultPoints: 5, IsActive: true}
	if err := repo.Create(tpl); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.RecordUsage(tpl.ID); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}
	if err := repo.RecordUsage(tpl.ID); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}

	got, err := repo.GetByID(tpl.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Frequency != 2 {
		t.Errorf("Frequency = %d, want 2", got.Frequency)
	}
	if got.LastSeen == nil {
		t.Error("LastSeen not set")
	}
}

func TestTemplateRecordUsageConcurrent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)

	tpl := &models.Template{Name: "Reading", Description: "Read a book", DefaultPoints: 2, IsActive: true}
	if err := repo.Create(tpl); err != nil {
		t.Fatalf("Create: %v", err)
	}

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.RecordUsage(tpl.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("RecordUsage: %v", err)
		}
	}

	got, err := repo.GetByID(tpl.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Frequency != n {
		t.Errorf("Frequency = %d after %d concurrent bumps, want %d", got.Frequency, n, n)
	}
}

func TestTemplateGenerationReplacement(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)

	old := &models.Template{Name: "Old", Description: "Old generation", DefaultPoints: 1, IsActive: true, GenerationBatch: "batch-1"}
	if err := repo.Create(old); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repo.DeactivateAll(tx); err != nil {
			return err
		}
		return repo.CreateBatch(tx, []models.Template{
			{Name: "New A", Description: "New generation", DefaultPoints: 2, IsActive: true, GenerationBatch: "batch-2"},
			{Name: "New B", Description: "New generation", DefaultPoints: 3, IsActive: true, GenerationBatch: "batch-2"},
		})
	})
	if err != nil {
		t.Fatalf("replace generation: %v", err)
	}

	active, err := repo.ListActive()
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("ListActive returned %d templates, want 2", len(active))
	}
	for _, tpl := range active {
		if tpl.GenerationBatch != "batch-2" {
			t.Errorf("active template %q from batch %q, want batch-2", tpl.Name, tpl.GenerationBatch)
		}
	}
}
