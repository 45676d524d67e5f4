package driven

import (
	"context"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

// AIConfigValidator checks provider settings by building a client and
// pinging it. Unconfigured settings yield domain.ErrAINotConfigured.
type AIConfigValidator interface {
	ValidateEmbedding(ctx context.Context, settings domain.EmbeddingSettings) error
	ValidateLLM(ctx context.Context, settings domain.LLMSettings) error
}
