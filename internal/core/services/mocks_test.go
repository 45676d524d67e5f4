package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
)

// --- Mock implementations ---

// keywordEmbedder embeds text as keyword counts plus a constant bias, so
// similarity follows shared vocabulary.
type keywordEmbedder struct {
	mu         sync.Mutex
	keywords   []string
	batchCalls int
	err        error
}

func newKeywordEmbedder(keywords ...string) *keywordEmbedder {
	return &keywordEmbedder{keywords: keywords}
}

func (m *keywordEmbedder) vector(text string) []float32 {
	lower := strings.ToLower(text)
	v := make([]float32, len(m.keywords)+1)
	for i, k := range m.keywords {
		v[i] = float32(strings.Count(lower, k))
	}
	v[len(m.keywords)] = 0.1
	return v
}

func (m *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.vector(text), nil
}

func (m *keywordEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.batchCalls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vector(t)
	}
	return out, nil
}

func (m *keywordEmbedder) BatchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batchCalls
}

func (m *keywordEmbedder) Dimensions() int { return len(m.keywords) + 1 }
func (m *keywordEmbedder) ModelName() string { return "keywords" }
func (m *keywordEmbedder) Ping(context.Context) error { return nil }
func (m *keywordEmbedder) Close() error { return nil }

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	mu            sync.Mutex
	answer        string
	generateErr   error
	visionAnswers []string
	visionErr     error
	prompts       []string
	options       []driven.GenerateOptions
	visionImages  [][]driven.Image
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.options = append(m.options, opts)
	return m.answer, m.generateErr
}

func (m *mockLLMService) Vision(
	_ context.Context,
	prompt string,
	images []driven.Image,
	opts driven.GenerateOptions,
) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.options = append(m.options, opts)
	m.visionImages = append(m.visionImages, images)
	if m.visionErr != nil {
		return "", m.visionErr
	}
	if len(m.visionAnswers) == 0 {
		return "", errors.New("unexpected vision call")
	}
	answer := m.visionAnswers[0]
	m.visionAnswers = m.visionAnswers[1:]
	return answer, nil
}

func (m *mockLLMService) ModelName() string { return "mock" }
func (m *mockLLMService) Ping(context.Context) error { return nil }
func (m *mockLLMService) Close() error { return nil }

// mockTextExtractor implements driven.TextExtractor for testing.
type mockTextExtractor struct {
	mu    sync.Mutex
	docs  []domain.Document
	err   error
	calls int
}

func (m *mockTextExtractor) ExtractPages(_ context.Context, _ string) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.docs, m.err
}

func (m *mockTextExtractor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockRenderer implements driven.PageRenderer for testing.
type mockRenderer struct {
	pages    int
	countErr error
	rendered []int
	options  []driven.RenderOptions
}

func (m *mockRenderer) PageCount(_ context.Context, _ string) (int, error) {
	return m.pages, m.countErr
}

func (m *mockRenderer) RenderJPEG(_ context.Context, _ string, page int, opts driven.RenderOptions) ([]byte, error) {
	m.rendered = append(m.rendered, page)
	m.options = append(m.options, opts)
	return []byte{0xFF, 0xD8, byte(page)}, nil
}

// mockDocumentExtractor implements DocumentExtractor for testing.
type mockDocumentExtractor struct {
	docs  []domain.Document
	err   error
	calls int
}

func (m *mockDocumentExtractor) Extract(_ context.Context, _ string) ([]domain.Document, error) {
	m.calls++
	return m.docs, m.err
}

// fixedPrompts implements driven.PromptStore with in-memory templates.
type fixedPrompts map[string]string

func (p fixedPrompts) Load(name string) (string, error) {
	t, ok := p[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return t, nil
}

func (p fixedPrompts) Reload() {}

func testPrompts() fixedPrompts {
	return fixedPrompts{
		driven.PromptVisionTranscribe: "transcribe %d pages into %d entries",
		driven.PromptAnswer:           "CONTEXT:\n%s\nQUESTION: %s",
	}
}
