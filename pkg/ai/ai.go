package ai

import (
	"context"
	"errors"
)

// ErrDisabled is returned by the stub client. Handlers map it to the
// "feature is disabled" responses rather than an error status.
var ErrDisabled = errors.New("ai features are disabled")

// EventSample is the slice of an event handed to the model.
type EventSample struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// TemplateSample is the slice of a template handed to the model.
type TemplateSample struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	DefaultPoints int    `json:"default_points"`
}

// Suggestion is a proposed event→template link. Advisory only; the state
// change happens through the explicit link operation.
type Suggestion struct {
	EventID    uint    `json:"event_id"`
	TemplateID uint    `json:"template_id"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// TemplateProposal is one template from a batch analysis run.
type TemplateProposal struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	DefaultPoints      int     `json:"default_points"`
	EstimatedFrequency int     `json:"estimated_frequency"`
	Confidence         float64 `json:"confidence"`
}

type Translator interface {
	// Translate renders free text into English for canonical matching.
	Translate(ctx context.Context, text string) (string, error)
}

type EmbeddingGenerator interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type Suggester interface {
	SuggestLinks(ctx context.Context, events []EventSample, templates []TemplateSample) ([]Suggestion, error)
	ProposeTemplates(ctx context.Context, events []EventSample) ([]TemplateProposal, error)
}

// Client bundles the optional model capabilities. The core ledger never
// depends on it; every consumer tolerates ErrDisabled.
type Client interface {
	Translator
	EmbeddingGenerator
	Suggester
	Enabled() bool
	Model() string
}
