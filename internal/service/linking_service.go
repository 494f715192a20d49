package service

import (
	"context"
	"errors"
	"log"

	"doypal/internal/domain"
	"doypal/internal/models"
	"doypal/internal/repository"
	"doypal/pkg/ai"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// LinkingService associates events with templates and, when the AI client
// is enabled, proposes candidate links.
type LinkingService struct {
	events    *repository.EventRepository
	templates *repository.TemplateRepository
	model     ai.Client
}

func NewLinkingService(events *repository.EventRepository, templates *repository.TemplateRepository, model ai.Client) *LinkingService {
	return &LinkingService{events: events, templates: templates, model: model}
}

// LinkSingle points an event at a template and records the template usage
// with an atomic frequency bump.
func (s *LinkingService) LinkSingle(eventID, templateID uint) (*models.Event, error) {
	if _, err := s.templates.GetByID(templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	event, err := s.events.SetTemplate(eventID, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if err := s.templates.RecordUsage(templateID); err != nil {
		return nil, err
	}
	return event, nil
}

type LinkPair struct {
	EventID    uint `json:"event_id" binding:"required"`
	TemplateID uint `json:"template_id" binding:"required"`
}

type LinkResult struct {
	EventID uint   `json:"event_id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BatchLink applies LinkSingle per pair, best effort: one bad pair never
// aborts the rest.
func (s *LinkingService) BatchLink(pairs []LinkPair) (results []LinkResult, successful, failed int) {
	results = make([]LinkResult, 0, len(pairs))
	for _, p := range pairs {
		if _, err := s.LinkSingle(p.EventID, p.TemplateID); err != nil {
			log.Printf("[Link] batch item event=%d template=%d failed: %v", p.EventID, p.TemplateID, err)
			results = append(results, LinkResult{EventID: p.EventID, Success: false, Error: err.Error()})
			failed++
			continue
		}
		results = append(results, LinkResult{EventID: p.EventID, Success: true})
		successful++
	}
	return results, successful, failed
}

// GenerateSuggestions asks the model for event→template links above the
// confidence floor. Advisory only; nothing is persisted here.
func (s *LinkingService) GenerateSuggestions(ctx context.Context) ([]ai.Suggestion, error) {
	if !s.model.Enabled() {
		return nil, ai.ErrDisabled
	}
	events, err := s.events.ListUnlinked(domain.SuggestionSampleLimit)
	if err != nil {
		return nil, err
	}
	templates, err := s.templates.ListActive()
	if err != nil {
		return nil, err
	}
	if len(events) == 0 || len(templates) == 0 {
		return []ai.Suggestion{}, nil
	}
	eventSamples := make([]ai.EventSample, 0, len(events))
	for _, e := range events {
		eventSamples = append(eventSamples, ai.EventSample{
			ID: e.ID, Name: e.Name, Description: e.Description, Points: e.Points,
		})
	}
	templateSamples := make([]ai.TemplateSample, 0, len(templates))
	for _, t := range templates {
		templateSamples = append(templateSamples, ai.TemplateSample{
			ID: t.ID, Name: t.Name, Description: t.Description, DefaultPoints: t.DefaultPoints,
		})
	}
	suggestions, err := s.model.SuggestLinks(ctx, eventSamples, templateSamples)
	if err != nil {
		return nil, err
	}
	kept := suggestions[:0]
	for _, sug := range suggestions {
		if sug.Confidence >= domain.ConfidenceFloor {
			kept = append(kept, sug)
		}
	}
	return kept, nil
}
