// Package ai builds the embedding and LLM adapters selected in settings.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	ollamaembed "github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/embedding/openai"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/llm"
	anthropicllm "github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/llm/ollama"
	openaillm "github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/llm/openai"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/llm/vertex"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

// pingTimeout bounds connectivity checks.
const pingTimeout = 5 * time.Second

// ErrProviderNotConfigured is returned by validation of incomplete settings.
var ErrProviderNotConfigured = errors.New("provider is not configured")

// InitResult holds the AI services the pipeline runs on.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	Warnings         []string // Non-fatal issues, e.g. a missing LLM.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		_ = r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		_ = r.LLMService.Close()
	}
}

// Initialise creates both services. Embeddings are mandatory since no
// document can be indexed without them. A missing LLM only produces a
// warning; Ask and the vision fallback then fail with ErrLLMUnavailable.
//
// When validate is set both services are pinged before returning.
func Initialise(ctx context.Context, settings *domain.AppSettings, validate bool) (*InitResult, error) {
	result := &InitResult{}

	embed, err := CreateEmbeddingService(settings.Embedding)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if embed == nil {
		return nil, fmt.Errorf("%w: provider %q is not configured",
			domain.ErrEmbeddingUnavailable, settings.Embedding.Provider)
	}
	result.EmbeddingService = embed

	svc, err := CreateLLMService(ctx, settings.LLM)
	switch {
	case err != nil:
		result.Warnings = append(result.Warnings, fmt.Sprintf("llm: %v", err))
	case svc == nil:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("llm: provider %q is not configured", settings.LLM.Provider))
	default:
		result.LLMService = svc
	}

	if validate {
		if err := ping(ctx, embed); err != nil {
			result.Close()
			return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
		}
		if result.LLMService != nil {
			if err := ping(ctx, result.LLMService); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("llm unreachable: %v", err))
				_ = result.LLMService.Close()
				result.LLMService = nil
			}
		}
	}

	for _, w := range result.Warnings {
		logger.Warn("ai service degraded", "reason", w)
	}
	return result, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

func ping(ctx context.Context, p pinger) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return p.Ping(ctx)
}

// CreateEmbeddingService creates the embedding service for settings.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:   settings.BaseURL,
			Model:     settings.Model,
			BatchSize: settings.BatchSize,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:    settings.APIKey,
			BaseURL:   settings.BaseURL,
			Model:     settings.Model,
			BatchSize: settings.BatchSize,
		})

	default:
		return nil, fmt.Errorf("%s does not support embeddings, use ollama or openai", settings.Provider)
	}
}

// CreateLLMService creates the LLM service for settings, throttled to
// settings.RequestsPerMinute. Returns nil if the provider is not configured.
func CreateLLMService(ctx context.Context, settings domain.LLMSettings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.LLMService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderOpenAI:
		svc, err = openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderAnthropic:
		svc, err = anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderVertex:
		svc, err = vertex.NewLLMService(ctx, vertex.Config{
			Project: settings.Project,
			Region:  settings.Region,
			Model:   settings.Model,
		})
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}
	return llm.WithRateLimit(svc, settings.RequestsPerMinute), nil
}
