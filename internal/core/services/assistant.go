package services

import (
	"context"
	"strings"
	"time"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driving"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// AssistantService answers questions about the last PDF of each session.
type AssistantService struct {
	indexer  *IndexService
	sessions *SessionStore
	embedder driven.EmbeddingService
	llm      driven.LLMService
	prompts  driven.PromptStore
	cfg      RetrievalConfig
}

// NewAssistantService creates an assistant. llm may be nil; questions
// then fail with ErrLLMUnavailable.
func NewAssistantService(
	indexer *IndexService,
	sessions *SessionStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	prompts driven.PromptStore,
	cfg RetrievalConfig,
) *AssistantService {
	return &AssistantService{
		indexer:  indexer,
		sessions: sessions,
		embedder: embedder,
		llm:      llm,
		prompts:  prompts,
		cfg:      cfg,
	}
}

// ProcessDocument makes the PDF at path the session's active document.
// The log is cleared first; the pipeline is only replaced on success.
func (a *AssistantService) ProcessDocument(ctx context.Context, sessionID, path string) (*domain.IngestResult, error) {
	s := a.sessions.lock(sessionID)
	defer s.mu.Unlock()

	s.reset()

	idx, result, err := a.indexer.open(ctx, path)
	if err != nil {
		return nil, err
	}

	s.replace(NewRetrievalPipeline(result.DocumentID, idx, a.embedder, a.llm, a.prompts, a.cfg))
	return result, nil
}

// Ask answers question from the session's active document.
func (a *AssistantService) Ask(ctx context.Context, sessionID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.MessageEmptyQuestion, nil
	}

	s := a.sessions.lock(sessionID)
	defer s.mu.Unlock()

	if s.pipeline == nil {
		return domain.MessageUploadFirst, nil
	}

	answer, err := s.pipeline.Answer(ctx, question)
	if err != nil {
		return "", err
	}
	if answer == "" {
		answer = domain.MessageNoResponse
	}

	s.log = append(s.log, domain.Exchange{Question: question, Answer: answer, AskedAt: time.Now()})
	return answer, nil
}

// History returns the session's exchanges, oldest first.
func (a *AssistantService) History(sessionID string) []domain.Exchange {
	s, ok := a.sessions.Lookup(sessionID)
	if !ok {
		return nil
	}
	return s.History()
}

// EndSession drops the session.
func (a *AssistantService) EndSession(sessionID string) {
	a.sessions.Drop(sessionID)
}
