package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderVertex is Gemini on Google Cloud Vertex AI.
	AIProviderVertex AIProvider = "vertex"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderVertex:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
// Vertex AI authenticates with application default credentials instead.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// RequiresProject returns true if this provider needs a cloud project.
func (p AIProvider) RequiresProject() bool {
	return p == AIProviderVertex
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderVertex:
		return "Vertex AI Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// BatchSize is the number of chunks embedded per request.
	BatchSize int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name. It must accept images for the vision
	// fallback to work.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Project and Region select the Vertex AI endpoint.
	Project string
	Region  string

	// Temperature and MaxTokens apply to answer synthesis.
	Temperature float64
	MaxTokens   int

	// RequestsPerMinute caps calls to the provider. Zero disables the limit.
	RequestsPerMinute int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	if l.Provider.RequiresProject() && l.Project == "" {
		return false
	}
	return true
}

// IngestSettings controls extraction, the vision fallback and chunking.
type IngestSettings struct {
	// ChunkSize and ChunkOverlap are measured in characters.
	ChunkSize    int
	ChunkOverlap int

	// VisionMaxPages caps how many pages are sent to the vision model.
	VisionMaxPages int

	// VisionDPI is the render resolution of page images.
	VisionDPI int

	// VisionBatchSize is the number of pages per vision call.
	VisionBatchSize int

	// VisionJPEGQuality is the JPEG quality (1-100) of page images.
	VisionJPEGQuality int

	// VisionMaxTokens bounds the transcription answer of one batch.
	VisionMaxTokens int
}

// RetrievalSettings controls maximal marginal relevance retrieval.
type RetrievalSettings struct {
	// TopK is the number of chunks passed to answer synthesis.
	TopK int

	// FetchK is the number of similarity candidates MMR chooses from.
	FetchK int

	// Lambda weighs relevance (1) against diversity (0).
	Lambda float64
}

// StorageSettings locates persisted data.
type StorageSettings struct {
	// VectorDir holds one index directory per DocumentID.
	VectorDir string

	// UploadDir receives uploaded PDFs under random names.
	UploadDir string
}

// ServerSettings configures the HTTP surface.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// MaxUploadBytes caps request bodies of uploads.
	MaxUploadBytes int64
}

// AppSettings holds all application settings.
type AppSettings struct {
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Ingest    IngestSettings
	Retrieval RetrievalSettings
	Storage   StorageSettings
	Server    ServerSettings
}

// MaxUploadBytes is the default upload cap of 30 MiB.
const MaxUploadBytes int64 = 30 << 20

// DefaultAppSettings returns settings with sensible defaults.
// Providers default to OpenAI; the API key comes from the environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider:  AIProviderOpenAI,
			Model:     DefaultEmbeddingModels()[AIProviderOpenAI],
			BatchSize: 64,
		},
		LLM: LLMSettings{
			Provider:    AIProviderOpenAI,
			Model:       DefaultLLMModels()[AIProviderOpenAI],
			Temperature: 0.1,
			MaxTokens:   512,
		},
		Ingest: IngestSettings{
			ChunkSize:         900,
			ChunkOverlap:      120,
			VisionMaxPages:    12,
			VisionDPI:         140,
			VisionBatchSize:   3,
			VisionJPEGQuality: 60,
			VisionMaxTokens:   2048,
		},
		Retrieval: RetrievalSettings{
			TopK:   6,
			FetchK: 20,
			Lambda: 0.25,
		},
		Storage: StorageSettings{
			VectorDir: "vector_db",
			UploadDir: "uploads",
		},
		Server: ServerSettings{
			Addr:           ":8000",
			MaxUploadBytes: MaxUploadBytes,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderVertex,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
// Every default accepts image input.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2-vision",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderVertex:    "gemini-1.5-pro",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
