package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strconv"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider  = "embedding.provider"
	keyEmbedModel     = "embedding.model"
	keyEmbedBaseURL   = "embedding.base_url"
	keyEmbedAPIKey    = "embedding.api_key"
	keyEmbedBatchSize = "embedding.batch_size"

	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keyLLMProject     = "llm.project"
	keyLLMRegion      = "llm.region"
	keyLLMTemperature = "llm.temperature"
	keyLLMMaxTokens   = "llm.max_tokens"
	keyLLMRPM         = "llm.requests_per_minute"

	keyChunkSize       = "ingest.chunk_size"
	keyChunkOverlap    = "ingest.chunk_overlap"
	keyVisionMaxPages  = "ingest.vision_max_pages"
	keyVisionDPI       = "ingest.vision_dpi"
	keyVisionBatchSize = "ingest.vision_batch_size"
	keyVisionQuality   = "ingest.vision_jpeg_quality"
	keyVisionMaxTokens = "ingest.vision_max_tokens"

	keyTopK   = "retrieval.top_k"
	keyFetchK = "retrieval.fetch_k"
	keyLambda = "retrieval.lambda"

	keyVectorDir = "storage.vector_dir"
	keyUploadDir = "storage.upload_dir"

	keyServerAddr      = "server.addr"
	keyServerMaxUpload = "server.max_upload_bytes"
)

// Environment variables that override the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvOpenAIKey         = "OPENAI_API_KEY"
	EnvAnthropicKey      = "ANTHROPIC_API_KEY"
	EnvOllamaBaseURL     = "OLLAMA_BASE_URL"
	EnvGoogleProject     = "GOOGLE_CLOUD_PROJECT"
	EnvGoogleRegion      = "GOOGLE_CLOUD_REGION"
	EnvLLMProvider       = "PDA_LLM_PROVIDER"
	EnvLLMModel          = "PDA_LLM_MODEL"
	EnvEmbeddingProvider = "PDA_EMBEDDING_PROVIDER"
	EnvEmbeddingModel    = "PDA_EMBEDDING_MODEL"
	EnvVectorDir         = "PDA_VECTOR_DIR"
	EnvUploadDir         = "PDA_UPLOAD_DIR"
	EnvAddr              = "PDA_ADDR"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindProvider
)

// settingKinds lists every key accepted by Set.
var settingKinds = map[string]valueKind{
	keyEmbedProvider: kindProvider, keyEmbedModel: kindString, keyEmbedBaseURL: kindString,
	keyEmbedAPIKey: kindString, keyEmbedBatchSize: kindInt,

	keyLLMProvider: kindProvider, keyLLMModel: kindString, keyLLMBaseURL: kindString,
	keyLLMAPIKey: kindString, keyLLMProject: kindString, keyLLMRegion: kindString,
	keyLLMTemperature: kindFloat, keyLLMMaxTokens: kindInt, keyLLMRPM: kindInt,

	keyChunkSize: kindInt, keyChunkOverlap: kindInt, keyVisionMaxPages: kindInt,
	keyVisionDPI: kindInt, keyVisionBatchSize: kindInt, keyVisionQuality: kindInt,
	keyVisionMaxTokens: kindInt,

	keyTopK: kindInt, keyFetchK: kindInt, keyLambda: kindFloat,

	keyVectorDir: kindString, keyUploadDir: kindString,

	keyServerAddr: kindString, keyServerMaxUpload: kindInt,
}

// SettingKeys returns every settable key, sorted.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService resolves settings from defaults, the config file and
// the environment, in increasing priority.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service. aiValidator may be
// nil to skip connectivity checks.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	def := domain.DefaultAppSettings()

	embedProvider := s.provider(keyEmbedProvider, EnvEmbeddingProvider, def.Embedding.Provider)
	llmProvider := s.provider(keyLLMProvider, EnvLLMProvider, def.LLM.Provider)

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider:  embedProvider,
			Model:     s.env(EnvEmbeddingModel, s.getString(keyEmbedModel, domain.DefaultEmbeddingModels()[embedProvider])),
			BaseURL:   s.configStore.GetString(keyEmbedBaseURL),
			APIKey:    s.configStore.GetString(keyEmbedAPIKey),
			BatchSize: s.getInt(keyEmbedBatchSize, def.Embedding.BatchSize),
		},
		LLM: domain.LLMSettings{
			Provider:          llmProvider,
			Model:             s.env(EnvLLMModel, s.getString(keyLLMModel, domain.DefaultLLMModels()[llmProvider])),
			BaseURL:           s.configStore.GetString(keyLLMBaseURL),
			APIKey:            s.configStore.GetString(keyLLMAPIKey),
			Project:           s.env(EnvGoogleProject, s.configStore.GetString(keyLLMProject)),
			Region:            s.env(EnvGoogleRegion, s.configStore.GetString(keyLLMRegion)),
			Temperature:       s.getFloat(keyLLMTemperature, def.LLM.Temperature),
			MaxTokens:         s.getInt(keyLLMMaxTokens, def.LLM.MaxTokens),
			RequestsPerMinute: s.getInt(keyLLMRPM, def.LLM.RequestsPerMinute),
		},
		Ingest: domain.IngestSettings{
			ChunkSize:         s.getInt(keyChunkSize, def.Ingest.ChunkSize),
			ChunkOverlap:      s.getInt(keyChunkOverlap, def.Ingest.ChunkOverlap),
			VisionMaxPages:    s.getInt(keyVisionMaxPages, def.Ingest.VisionMaxPages),
			VisionDPI:         s.getInt(keyVisionDPI, def.Ingest.VisionDPI),
			VisionBatchSize:   s.getInt(keyVisionBatchSize, def.Ingest.VisionBatchSize),
			VisionJPEGQuality: s.getInt(keyVisionQuality, def.Ingest.VisionJPEGQuality),
			VisionMaxTokens:   s.getInt(keyVisionMaxTokens, def.Ingest.VisionMaxTokens),
		},
		Retrieval: domain.RetrievalSettings{
			TopK:   s.getInt(keyTopK, def.Retrieval.TopK),
			FetchK: s.getInt(keyFetchK, def.Retrieval.FetchK),
			Lambda: s.getFloat(keyLambda, def.Retrieval.Lambda),
		},
		Storage: domain.StorageSettings{
			VectorDir: s.env(EnvVectorDir, s.getString(keyVectorDir, def.Storage.VectorDir)),
			UploadDir: s.env(EnvUploadDir, s.getString(keyUploadDir, def.Storage.UploadDir)),
		},
		Server: domain.ServerSettings{
			Addr:           s.env(EnvAddr, s.getString(keyServerAddr, def.Server.Addr)),
			MaxUploadBytes: int64(s.getInt(keyServerMaxUpload, int(def.Server.MaxUploadBytes))),
		},
	}

	s.applyProviderEnv(&settings.Embedding.APIKey, &settings.Embedding.BaseURL, embedProvider)
	s.applyProviderEnv(&settings.LLM.APIKey, &settings.LLM.BaseURL, llmProvider)
	return settings, nil
}

// applyProviderEnv overlays the credential variables of provider.
func (s *SettingsService) applyProviderEnv(apiKey, baseURL *string, provider domain.AIProvider) {
	switch provider {
	case domain.AIProviderOpenAI:
		*apiKey = s.env(EnvOpenAIKey, *apiKey)
	case domain.AIProviderAnthropic:
		*apiKey = s.env(EnvAnthropicKey, *apiKey)
	case domain.AIProviderOllama:
		*baseURL = s.env(EnvOllamaBaseURL, *baseURL)
	}
}

// Set parses value according to key and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s expects a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s expects a number", domain.ErrInvalidInput, key)
		}
		if key == keyLambda && (f < 0 || f > 1) {
			return fmt.Errorf("%w: %s must be between 0 and 1", domain.ErrInvalidInput, key)
		}
		parsed = f
	case kindProvider:
		p := domain.AIProvider(value)
		if !p.IsValid() {
			return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, value)
		}
		if key == keyEmbedProvider && !slices.Contains(domain.AllEmbeddingProviders(), p) {
			return fmt.Errorf("%w: provider %s does not support embeddings", domain.ErrInvalidInput, p)
		}
		parsed = value
	default:
		parsed = value
	}
	return s.configStore.Set(key, parsed)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !slices.Contains(domain.AllEmbeddingProviders(), provider) {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}
	if model == "" {
		model = domain.DefaultEmbeddingModels()[provider]
	}

	return s.setAll(map[string]any{
		keyEmbedProvider: provider.String(),
		keyEmbedModel:    model,
		keyEmbedAPIKey:   apiKey,
		keyEmbedBaseURL:  localBaseURL(provider, s.configStore.GetString(keyEmbedBaseURL)),
	})
}

// SetLLMProvider configures the LLM provider. For Vertex AI apiKey is
// ignored and the project comes from llm.project or GOOGLE_CLOUD_PROJECT.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}
	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}

	return s.setAll(map[string]any{
		keyLLMProvider: provider.String(),
		keyLLMModel:    model,
		keyLLMAPIKey:   apiKey,
		keyLLMBaseURL:  localBaseURL(provider, s.configStore.GetString(keyLLMBaseURL)),
	})
}

func (s *SettingsService) setAll(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.configStore.Set(k, values[k]); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}

// localBaseURL keeps a custom URL for local providers and clears it for
// cloud ones.
func localBaseURL(provider domain.AIProvider, current string) string {
	if !provider.IsLocal() {
		return ""
	}
	if current == "" {
		return "http://localhost:11434"
	}
	return current
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Validate checks that both providers are configured and, when a
// validator is present, reachable.
func (s *SettingsService) Validate(ctx context.Context) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if !settings.Embedding.IsConfigured() {
		errs = append(errs, fmt.Errorf("embedding provider %s: %w", settings.Embedding.Provider, domain.ErrAINotConfigured))
	} else if s.aiValidator != nil {
		if err := s.aiValidator.ValidateEmbedding(ctx, settings.Embedding); err != nil {
			errs = append(errs, fmt.Errorf("embedding: %w", err))
		}
	}

	if !settings.LLM.IsConfigured() {
		errs = append(errs, fmt.Errorf("llm provider %s: %w", settings.LLM.Provider, domain.ErrAINotConfigured))
	} else if s.aiValidator != nil {
		if err := s.aiValidator.ValidateLLM(ctx, settings.LLM); err != nil {
			errs = append(errs, fmt.Errorf("llm: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) env(name, fallback string) string {
	if v, ok := s.lookupEnv(name); ok && v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

// getFloat treats an explicit 0 as set.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) provider(key, envName string, defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.env(envName, s.configStore.GetString(key)))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
