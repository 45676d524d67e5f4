package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driven/llm"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

func ollamaServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInitResult_Close(t *testing.T) {
	result := &InitResult{}
	// Should not panic
	result.Close()
}

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name        string
		settings    domain.EmbeddingSettings
		wantNil     bool
		errContains string
	}{
		{
			name:     "unconfigured settings returns nil",
			settings: domain.EmbeddingSettings{},
			wantNil:  true,
		},
		{
			name:     "openai without key is not configured",
			settings: domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI},
			wantNil:  true,
		},
		{
			name: "ollama provider creates service",
			settings: domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				Model:    "nomic-embed-text",
			},
		},
		{
			name: "openai provider creates service",
			settings: domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "text-embedding-3-small",
			},
		},
		{
			name:        "anthropic provider returns error",
			settings:    domain.EmbeddingSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"},
			wantNil:     true,
			errContains: "does not support embeddings",
		},
		{
			name:        "vertex provider returns error",
			settings:    domain.EmbeddingSettings{Provider: domain.AIProviderVertex},
			wantNil:     true,
			errContains: "does not support embeddings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
			}
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.Equal(t, tt.settings.Model, svc.ModelName())
		})
	}
}

func TestCreateLLMService(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		settings domain.LLMSettings
		wantNil  bool
	}{
		{name: "unconfigured", settings: domain.LLMSettings{}, wantNil: true},
		{name: "anthropic without key", settings: domain.LLMSettings{Provider: domain.AIProviderAnthropic}, wantNil: true},
		{name: "vertex without project", settings: domain.LLMSettings{Provider: domain.AIProviderVertex}, wantNil: true},
		{name: "ollama", settings: domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llava"}},
		{name: "openai", settings: domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "k", Model: "gpt-4o"}},
		{name: "anthropic", settings: domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "k", Model: "claude"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(ctx, tt.settings)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.Equal(t, tt.settings.Model, svc.ModelName())
			_, limited := svc.(*llm.RateLimited)
			assert.False(t, limited)
		})
	}
}

func TestCreateLLMService_RateLimited(t *testing.T) {
	svc, err := CreateLLMService(context.Background(), domain.LLMSettings{
		Provider:          domain.AIProviderOllama,
		RequestsPerMinute: 30,
	})
	require.NoError(t, err)

	_, limited := svc.(*llm.RateLimited)
	assert.True(t, limited)
}

func TestInitialise(t *testing.T) {
	srv := ollamaServer(t, http.StatusOK)
	settings := domain.DefaultAppSettings()
	settings.Embedding = domain.EmbeddingSettings{Provider: domain.AIProviderOllama, BaseURL: srv.URL}
	settings.LLM = domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: srv.URL}

	result, err := Initialise(context.Background(), &settings, true)

	require.NoError(t, err)
	defer result.Close()
	assert.NotNil(t, result.EmbeddingService)
	assert.NotNil(t, result.LLMService)
	assert.Empty(t, result.Warnings)
}

func TestInitialise_WithoutLLM(t *testing.T) {
	srv := ollamaServer(t, http.StatusOK)
	settings := domain.DefaultAppSettings()
	settings.Embedding = domain.EmbeddingSettings{Provider: domain.AIProviderOllama, BaseURL: srv.URL}
	settings.LLM = domain.LLMSettings{Provider: domain.AIProviderOpenAI}

	result, err := Initialise(context.Background(), &settings, false)

	require.NoError(t, err)
	assert.NotNil(t, result.EmbeddingService)
	assert.Nil(t, result.LLMService)
	assert.Len(t, result.Warnings, 1)
}

func TestInitialise_EmbeddingRequired(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Embedding.APIKey = ""

	_, err := Initialise(context.Background(), &settings, false)

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestInitialise_EmbeddingUnreachable(t *testing.T) {
	srv := ollamaServer(t, http.StatusInternalServerError)
	settings := domain.DefaultAppSettings()
	settings.Embedding = domain.EmbeddingSettings{Provider: domain.AIProviderOllama, BaseURL: srv.URL}

	_, err := Initialise(context.Background(), &settings, true)

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}
