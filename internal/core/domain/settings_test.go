package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{name: "ollama", provider: AIProviderOllama, expected: true},
		{name: "openai", provider: AIProviderOpenAI, expected: true},
		{name: "anthropic", provider: AIProviderAnthropic, expected: true},
		{name: "vertex", provider: AIProviderVertex, expected: true},
		{name: "empty", provider: AIProvider(""), expected: false},
		{name: "unknown", provider: AIProvider("cohere"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_Requirements(t *testing.T) {
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.False(t, AIProviderVertex.RequiresAPIKey())
	assert.True(t, AIProviderVertex.RequiresProject())
	assert.True(t, AIProviderOllama.IsLocal())
	assert.Equal(t, unknownDescription, AIProvider("x").Description())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		expected bool
	}{
		{name: "openai with key", settings: LLMSettings{Provider: AIProviderOpenAI, APIKey: "sk"}, expected: true},
		{name: "openai without key", settings: LLMSettings{Provider: AIProviderOpenAI}, expected: false},
		{name: "ollama", settings: LLMSettings{Provider: AIProviderOllama}, expected: true},
		{name: "vertex without project", settings: LLMSettings{Provider: AIProviderVertex}, expected: false},
		{name: "vertex with project", settings: LLMSettings{Provider: AIProviderVertex, Project: "p"}, expected: true},
		{name: "no provider", settings: LLMSettings{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	assert.True(t, EmbeddingSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, EmbeddingSettings{Provider: AIProviderOpenAI}.IsConfigured())
	assert.True(t, EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "k"}.IsConfigured())
}

// TestDefaultAppSettings tests the retrieval and ingestion defaults
func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, 900, s.Ingest.ChunkSize)
	assert.Equal(t, 120, s.Ingest.ChunkOverlap)
	assert.Equal(t, 12, s.Ingest.VisionMaxPages)
	assert.Equal(t, 140, s.Ingest.VisionDPI)
	assert.Equal(t, 3, s.Ingest.VisionBatchSize)
	assert.Equal(t, 60, s.Ingest.VisionJPEGQuality)
	assert.Equal(t, 6, s.Retrieval.TopK)
	assert.InDelta(t, 0.25, s.Retrieval.Lambda, 1e-9)
	assert.Equal(t, int64(30*1024*1024), s.Server.MaxUploadBytes)
	assert.Equal(t, "vector_db", s.Storage.VectorDir)
	assert.Equal(t, "gpt-4o-mini", s.LLM.Model)
}
