package ai

import "context"

// StubClient is the default no-op implementation used when no API key is
// configured or AI features are switched off.
type StubClient struct{}

func NewStubClient() *StubClient {
	return &StubClient{}
}

func (s *StubClient) Translate(ctx context.Context, text string) (string, error) {
	return "", ErrDisabled
}

func (s *StubClient) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, ErrDisabled
}

func (s *StubClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, ErrDisabled
}

func (s *StubClient) SuggestLinks(ctx context.Context, events []EventSample, templates []TemplateSample) ([]Suggestion, error) {
	return nil, ErrDisabled
}

func (s *StubClient) ProposeTemplates(ctx context.Context, events []EventSample) ([]TemplateProposal, error) {
	return nil, ErrDisabled
}

func (s *StubClient) Enabled() bool { return false }

func (s *StubClient) Model() string { return "disabled" }
