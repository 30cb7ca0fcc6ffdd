package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// ErrMissingAPIKey is returned when no Gemini API key is available
var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY environment variable is not set")

// Client sends single-turn text prompts to a Gemini model
type Client struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewClient creates a Gemini API client for the configured model and sampling settings
func NewClient(ctx context.Context, cfg entities.ModelConfig, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini.NewClient: %w", err)
	}

	return &Client{
		client: client,
		model:  cfg.Name,
		config: generationConfig(cfg),
	}, nil
}

func generationConfig(cfg entities.ModelConfig) *genai.GenerateContentConfig {
	temperature := cfg.Temperature
	topP := cfg.TopP
	topK := cfg.TopK

	return &genai.GenerateContentConfig{
		Temperature:    &temperature,
		TopP:           &topP,
		TopK:           &topK,
		CandidateCount: cfg.GetCandidateCount(),
		StopSequences:  append([]string(nil), cfg.StopSequences...),
	}
}

// Model returns the model name requests are sent to
func (c *Client) Model() string {
	return c.model
}

// Generate sends prompt as one user turn and returns the text of the first candidate
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		return "", fmt.Errorf("gemini.Generate: %w", err)
	}

	return extractText(resp), nil
}

// extractText joins the text parts of the first candidate
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// Close releases the client. The underlying genai client holds no resources of its own.
func (c *Client) Close() error {
	return nil
}

var _ ports.TextModel = (*Client)(nil)
