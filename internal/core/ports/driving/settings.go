package driving

import (
	"context"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns defaults overlaid with the config file and environment.
	Get() (*domain.AppSettings, error)

	// Set persists a single dotted config key, e.g. "retrieval.top_k".
	Set(key, value string) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Validate checks both providers by pinging them.
	Validate(ctx context.Context) error
}
