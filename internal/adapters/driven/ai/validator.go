package ai

import (
	"context"
	"fmt"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator checks settings by building the service and pinging it.
type ConfigValidator struct{}

// NewConfigValidator creates a new AI config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding pings the configured embedding provider.
func (v *ConfigValidator) ValidateEmbedding(ctx context.Context, settings domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return fmt.Errorf("embedding %w", ErrProviderNotConfigured)
	}
	defer svc.Close()
	return ping(ctx, svc)
}

// ValidateLLM pings the configured LLM provider.
func (v *ConfigValidator) ValidateLLM(ctx context.Context, settings domain.LLMSettings) error {
	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return fmt.Errorf("llm %w", ErrProviderNotConfigured)
	}
	defer svc.Close()
	return ping(ctx, svc)
}
