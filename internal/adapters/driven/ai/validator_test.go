package ai

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
)

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = (*ConfigValidator)(nil)
}

func TestConfigValidator_ValidateEmbedding(t *testing.T) {
	ctx := context.Background()
	v := NewConfigValidator()

	ok := ollamaServer(t, http.StatusOK)
	assert.NoError(t, v.ValidateEmbedding(ctx, domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama, BaseURL: ok.URL,
	}))

	down := ollamaServer(t, http.StatusServiceUnavailable)
	assert.Error(t, v.ValidateEmbedding(ctx, domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama, BaseURL: down.URL,
	}))

	err := v.ValidateEmbedding(ctx, domain.EmbeddingSettings{})
	assert.ErrorIs(t, err, ErrProviderNotConfigured)
}

func TestConfigValidator_ValidateLLM(t *testing.T) {
	ctx := context.Background()
	v := NewConfigValidator()

	ok := ollamaServer(t, http.StatusOK)
	assert.NoError(t, v.ValidateLLM(ctx, domain.LLMSettings{
		Provider: domain.AIProviderOllama, BaseURL: ok.URL,
	}))

	err := v.ValidateLLM(ctx, domain.LLMSettings{Provider: domain.AIProviderAnthropic})
	assert.ErrorIs(t, err, ErrProviderNotConfigured)
}
