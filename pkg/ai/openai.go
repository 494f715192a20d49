package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config for the OpenAI-compatible client.
type Config struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	ChatModel      string
}

// OpenAIClient talks to an OpenAI-compatible HTTP API for embeddings,
// translation and structured suggestions.
type OpenAIClient struct {
	client         *http.Client
	apiKey         string
	baseURL        string
	embeddingModel string
	chatModel      string
}

func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = "text-embedding-3-small"
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "gpt-4o-mini"
	}
	return &OpenAIClient{
		client:         &http.Client{Timeout: 120 * time.Second},
		apiKey:         cfg.APIKey,
		baseURL:        baseURL,
		embeddingModel: embeddingModel,
		chatModel:      chatModel,
	}, nil
}

func (c *OpenAIClient) Enabled() bool { return true }

func (c *OpenAIClient) Model() string { return c.chatModel }

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (c *OpenAIClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("texts are required")
	}
	payload, err := json.Marshal(embeddingRequest{Model: c.embeddingModel, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("embed: marshal request: %w", err)
	}
	body, err := c.post(ctx, "/embeddings", payload)
	if err != nil {
		return nil, err
	}
	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("embed: decode response: %w", err)
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("embed: got %d embeddings for %d inputs", len(parsed.Data), len(texts))
	}
	out := make([][]float32, len(parsed.Data))
	for i, d := range parsed.Data {
		out[i] = d.Embedding
	}
	return out, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Translate(ctx context.Context, text string) (string, error) {
	out, err := c.chat(ctx,
		"You translate short phrases into English. Reply with the translation only. If the input is already English, reply with it unchanged.",
		text, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

const suggestLinksPrompt = `You match logged child-behavior events to reusable templates.
Given events and templates as JSON, return a JSON object {"suggestions": [...]}.
Each suggestion has event_id, template_id, confidence (0-1) and a short reason.
Only include matches you are confident about.`

func (c *OpenAIClient) SuggestLinks(ctx context.Context, events []EventSample, templates []TemplateSample) ([]Suggestion, error) {
	input, err := json.Marshal(map[string]interface{}{
		"events":    events,
		"templates": templates,
	})
	if err != nil {
		return nil, err
	}
	out, err := c.chat(ctx, suggestLinksPrompt, string(input), true)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, fmt.Errorf("suggest links: decode model output: %w", err)
	}
	return parsed.Suggestions, nil
}

const proposeTemplatesPrompt = `You cluster logged child-behavior events into reusable templates.
Given events as JSON, return a JSON object {"templates": [...]} with 5 to 15 entries.
Each template has name, description, default_points (1-100), estimated_frequency and confidence (0-1).`

func (c *OpenAIClient) ProposeTemplates(ctx context.Context, events []EventSample) ([]TemplateProposal, error) {
	input, err := json.Marshal(map[string]interface{}{"events": events})
	if err != nil {
		return nil, err
	}
	out, err := c.chat(ctx, proposeTemplatesPrompt, string(input), true)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Templates []TemplateProposal `json:"templates"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, fmt.Errorf("propose templates: decode model output: %w", err)
	}
	return parsed.Templates, nil
}

func (c *OpenAIClient) chat(ctx context.Context, system, user string, jsonOut bool) (string, error) {
	req := chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	if jsonOut {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("chat: marshal request: %w", err)
	}
	body, err := c.post(ctx, "/chat/completions", payload)
	if err != nil {
		return "", err
	}
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("chat: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("chat: empty response")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) post(ctx context.Context, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return body, nil
}
