package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"doypal/internal/domain"
	"doypal/internal/repository"
	"doypal/pkg/ai"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SimilarEvent is one row from the database-side find_similar_events
// function.
type SimilarEvent struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Points      int     `json:"points"`
	Similarity  float64 `json:"similarity"`
}

// EmbeddingService wraps the embedding pipeline: translation, vector
// generation and database-side similarity search. All of the numeric work
// happens in the model API and the find_similar_events function; this
// layer only shuttles data.
type EmbeddingService struct {
	db     *gorm.DB
	events *repository.EventRepository
	model  ai.Client
	pause  time.Duration
}

func NewEmbeddingService(db *gorm.DB, events *repository.EventRepository, model ai.Client, pause time.Duration) *EmbeddingService {
	return &EmbeddingService{db: db, events: events, model: model, pause: pause}
}

func (s *EmbeddingService) Enabled() bool {
	return s.model.Enabled()
}

// EmbedText returns the raw vector for a piece of text (debug endpoint).
func (s *EmbeddingService) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return s.model.Embed(ctx, text)
}

// FindSimilar translates the query, embeds it and delegates the
// nearest-neighbor search to the find_similar_events database function.
func (s *EmbeddingService) FindSimilar(ctx context.Context, text string, threshold float64, limit int) ([]SimilarEvent, error) {
	if !s.model.Enabled() {
		return nil, ai.ErrDisabled
	}
	canonical, err := s.model.Translate(ctx, text)
	if err != nil || strings.TrimSpace(canonical) == "" {
		// Translation is best effort; search with the original text.
		log.Printf("[Similar] translation failed, using raw text: %v", err)
		canonical = text
	}
	embedding, err := s.model.Embed(ctx, canonical)
	if err != nil {
		return nil, err
	}
	var results []SimilarEvent
	err = s.db.Raw(
		"SELECT * FROM find_similar_events(?::vector, ?, ?)",
		vectorLiteral(embedding), threshold, limit,
	).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SetEventEmbedding stores one event's vector.
func (s *EmbeddingService) SetEventEmbedding(eventID uint, embedding []float32) error {
	raw, err := json.Marshal(embedding)
	if err != nil {
		return err
	}
	return s.events.SetEmbedding(eventID, datatypes.JSON(raw))
}

// UpdateAllEmbeddings backfills vectors for active events that have none.
// Work is chunked with a pause between chunks so we stay inside the
// embedding API's rate limit.
func (s *EmbeddingService) UpdateAllEmbeddings(ctx context.Context) (updated, total int, err error) {
	if !s.model.Enabled() {
		return 0, 0, ai.ErrDisabled
	}
	events, err := s.events.ListMissingEmbedding()
	if err != nil {
		return 0, 0, err
	}
	total = len(events)
	for start := 0; start < total; start += domain.EmbeddingChunkSize {
		if err := ctx.Err(); err != nil {
			return updated, total, err
		}
		end := start + domain.EmbeddingChunkSize
		if end > total {
			end = total
		}
		chunk := events[start:end]
		texts := make([]string, len(chunk))
		for i, e := range chunk {
			texts[i] = e.Description
		}
		vectors, err := s.model.EmbedBatch(ctx, texts)
		if err != nil {
			return updated, total, err
		}
		for i, e := range chunk {
			if err := s.SetEventEmbedding(e.ID, vectors[i]); err != nil {
				log.Printf("[Embeddings] store event %d failed: %v", e.ID, err)
				continue
			}
			updated++
		}
		if end < total && s.pause > 0 {
			time.Sleep(s.pause)
		}
	}
	return updated, total, nil
}

// vectorLiteral renders a float slice in pgvector's input format.
func vectorLiteral(v []float32) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
