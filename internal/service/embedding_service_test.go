package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"doypal/internal/models"
	"doypal/internal/repository"
	"doypal/pkg/ai"

	"gorm.io/gorm"
)

func newEmbeddingService(t *testing.T, model ai.Client) (*EmbeddingService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	events := repository.NewEventRepository(db)
	return NewEmbeddingService(db, events, model, 0), db
}

func TestUpdateAllEmbeddingsDisabled(t *testing.T) {
	svc, _ := newEmbeddingService(t, ai.NewStubClient())
	if _, _, err := svc.UpdateAllEmbeddings(context.Background()); !errors.Is(err, ai.ErrDisabled) {
		t.Errorf("UpdateAllEmbeddings = %v, want ErrDisabled", err)
	}
}

func TestUpdateAllEmbeddingsBackfills(t *testing.T) {
	model := &fakeModel{embedding: []float32{0.1, 0.2, 0.3}}
	svc, db := newEmbeddingService(t, model)
	e1 := createEvent(t, db, 3)
	e2 := createEvent(t, db, 4)

	// One event already has a vector and must be skipped.
	done := createEvent(t, db, 5)
	if err := svc.SetEventEmbedding(done.ID, []float32{1, 2}); err != nil {
		t.Fatalf("SetEventEmbedding: %v", err)
	}

	updated, total, err := svc.UpdateAllEmbeddings(context.Background())
	if err != nil {
		t.Fatalf("UpdateAllEmbeddings: %v", err)
	}
	if updated != 2 || total != 2 {
		t.Errorf("updated=%d total=%d, want 2/2", updated, total)
	}

	for _, id := range []uint{e1.ID, e2.ID} {
		var e models.Event
		if err := db.First(&e, id).Error; err != nil {
			t.Fatalf("reload event: %v", err)
		}
		var vec []float32
		if err := json.Unmarshal(e.DescriptionEmbedding, &vec); err != nil {
			t.Fatalf("decode embedding for event %d: %v", id, err)
		}
		if len(vec) != 3 {
			t.Errorf("event %d embedding length = %d, want 3", id, len(vec))
		}
	}
}

func TestUpdateAllEmbeddingsPropagatesModelError(t *testing.T) {
	wantErr := errors.New("embedding api down")
	svc, db := newEmbeddingService(t, &fakeModel{embedErr: wantErr})
	createEvent(t, db, 3)

	updated, _, err := svc.UpdateAllEmbeddings(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("UpdateAllEmbeddings = %v, want %v", err, wantErr)
	}
	if updated != 0 {
		t.Errorf("updated = %d, want 0 on failure", updated)
	}
}

func TestFindSimilarDisabled(t *testing.T) {
	svc, _ := newEmbeddingService(t, ai.NewStubClient())
	if _, err := svc.FindSimilar(context.Background(), "helped with dishes", 0.6, 10); !errors.Is(err, ai.ErrDisabled) {
		t.Errorf("FindSimilar = %v, want ErrDisabled", err)
	}
}

func TestVectorLiteral(t *testing.T) {
	got := vectorLiteral([]float32{0.5, -1, 2.25})
	want := "[0.5,-1,2.25]"
	if got != want {
		t.Errorf("vectorLiteral = %q, want %q", got, want)
	}
}
