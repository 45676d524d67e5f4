// Package vertex provides an LLM service adapter for Gemini models on
// Google Cloud Vertex AI. Authentication uses application default
// credentials.
package vertex

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultRegion = "us-central1"
	DefaultModel  = "gemini-1.5-pro"
)

// Config holds configuration for the Vertex AI LLM service.
type Config struct {
	// Project is the Google Cloud project ID (required).
	Project string

	// Region is the Vertex AI location (default: us-central1).
	Region string

	// Model is the Gemini model to use (default: gemini-1.5-pro).
	Model string
}

// LLMService provides LLM operations using Vertex AI.
type LLMService struct {
	client *genai.Client
	model  string
}

// NewLLMService creates a Vertex AI client for the configured project.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.Project == "" {
		return nil, fmt.Errorf("vertex: project is required: %w", domain.ErrAINotConfigured)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, cfg.Project, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("vertex: create client: %w", err)
	}

	return &LLMService{client: client, model: cfg.Model}, nil
}

// newModel returns a model handle configured for one call. Handles are not
// shared between calls because their settings are mutable.
func (s *LLMService) newModel(maxTokens int, temperature float64, stop []string) *genai.GenerativeModel {
	m := s.client.GenerativeModel(s.model)
	m.SetTemperature(float32(temperature))
	if maxTokens > 0 {
		m.SetMaxOutputTokens(int32(maxTokens))
	}
	if len(stop) > 0 {
		m.StopSequences = stop
	}
	return m
}

// Generate produces text completion from a prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m := s.newModel(opts.MaxTokens, opts.Temperature, opts.StopWords)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("vertex: %w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return responseText(resp)
}

// Vision sends the images followed by the prompt as inline data parts.
func (s *LLMService) Vision(
	ctx context.Context,
	prompt string,
	images []driven.Image,
	opts driven.GenerateOptions,
) (string, error) {
	m := s.newModel(opts.MaxTokens, opts.Temperature, opts.StopWords)

	parts := make([]genai.Part, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, genai.Blob{MIMEType: img.MIMEType, Data: img.Data})
	}
	parts = append(parts, genai.Text(prompt))

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("vertex: %w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return responseText(resp)
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("vertex: %w: no candidates returned", domain.ErrUpstreamUnavailable)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping runs a one-token generation; Vertex AI has no cheaper probe.
func (s *LLMService) Ping(ctx context.Context) error {
	m := s.newModel(1, 0, nil)
	if _, err := m.GenerateContent(ctx, genai.Text("ping")); err != nil {
		return fmt.Errorf("vertex: ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying gRPC connection.
func (s *LLMService) Close() error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Close(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("vertex: close: %w", err)
	}
	return nil
}
