package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
)

// RetrievalConfig tunes retrieval and answer synthesis.
type RetrievalConfig struct {
	TopK        int
	FetchK      int
	Lambda      float64
	Temperature float64
	MaxTokens   int
}

// RetrievalConfigFromSettings combines retrieval and LLM settings.
func RetrievalConfigFromSettings(s *domain.AppSettings) RetrievalConfig {
	return RetrievalConfig{
		TopK:        s.Retrieval.TopK,
		FetchK:      s.Retrieval.FetchK,
		Lambda:      s.Retrieval.Lambda,
		Temperature: s.LLM.Temperature,
		MaxTokens:   s.LLM.MaxTokens,
	}
}

func (c RetrievalConfig) withDefaults() RetrievalConfig {
	def := domain.DefaultAppSettings()
	if c.TopK <= 0 {
		c.TopK = def.Retrieval.TopK
	}
	if c.FetchK < c.TopK {
		c.FetchK = max(def.Retrieval.FetchK, c.TopK)
	}
	if c.Lambda < 0 || c.Lambda > 1 {
		c.Lambda = def.Retrieval.Lambda
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = def.LLM.MaxTokens
	}
	return c
}

// RetrievalPipeline answers questions from one document's index.
// It is safe for concurrent use if the underlying index is.
type RetrievalPipeline struct {
	id       domain.DocumentID
	index    driven.VectorIndex
	embedder driven.EmbeddingService
	llm      driven.LLMService
	prompts  driven.PromptStore
	cfg      RetrievalConfig
}

// NewRetrievalPipeline binds index to the answering model. The pipeline
// takes ownership of index.
func NewRetrievalPipeline(
	id domain.DocumentID,
	index driven.VectorIndex,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	prompts driven.PromptStore,
	cfg RetrievalConfig,
) *RetrievalPipeline {
	return &RetrievalPipeline{
		id:       id,
		index:    index,
		embedder: embedder,
		llm:      llm,
		prompts:  prompts,
		cfg:      cfg.withDefaults(),
	}
}

// DocumentID returns the document the pipeline answers from.
func (p *RetrievalPipeline) DocumentID() domain.DocumentID {
	return p.id
}

// Retrieve returns up to TopK chunks for question, chosen by maximal
// marginal relevance among the FetchK most similar chunks.
func (p *RetrievalPipeline) Retrieve(ctx context.Context, question string) ([]domain.Chunk, error) {
	query, err := p.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	hits, err := p.index.Search(ctx, query, p.cfg.FetchK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	vectors := make([][]float32, len(hits))
	for i, h := range hits {
		vectors[i] = h.Chunk.Embedding
	}

	picked := MaximalMarginalRelevance(query, vectors, p.cfg.TopK, p.cfg.Lambda)
	chunks := make([]domain.Chunk, len(picked))
	for i, idx := range picked {
		chunks[i] = hits[idx].Chunk
	}
	return chunks, nil
}

// Answer retrieves context and asks the model once with all of it.
// The answer may be empty if the model returned nothing.
func (p *RetrievalPipeline) Answer(ctx context.Context, question string) (string, error) {
	if p.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	chunks, err := p.Retrieve(ctx, question)
	if err != nil {
		return "", err
	}

	tmpl, err := p.prompts.Load(driven.PromptAnswer)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(tmpl, stuffContext(chunks), question)

	answer, err := p.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("synthesise answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// Close releases the index.
func (p *RetrievalPipeline) Close() error {
	return p.index.Close()
}

func stuffContext(chunks []domain.Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Content
	}
	return strings.Join(parts, "\n\n")
}
