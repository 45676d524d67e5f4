package cli

import (
	"context"
	"errors"
	"sync"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driving"
)

const testDocID domain.DocumentID = "4f2a9c0e1b7d3a5f6e8c9b0a1d2e3f4a5b6c7d8e9f0a1b2c3d4e5f6a7b8c9d0e"

// mockSettingsService implements driving.SettingsService in memory.
type mockSettingsService struct {
	mu          sync.Mutex
	settings    domain.AppSettings
	set         map[string]string
	validateErr error
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		settings: domain.DefaultAppSettings(),
		set:      make(map[string]string),
	}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if key == "unknown.key" {
		return domain.ErrInvalidInput
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.Embedding.Provider = provider
	m.settings.Embedding.Model = model
	m.settings.Embedding.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.LLM.Provider = provider
	m.settings.LLM.Model = model
	m.settings.LLM.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) Validate(_ context.Context) error {
	return m.validateErr
}

func (m *mockSettingsService) value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set[key]
}

// mockAssistantService implements driving.AssistantService.
type mockAssistantService struct {
	mu        sync.Mutex
	processed []string
	questions []string
	answer    string
	err       error
}

func (m *mockAssistantService) ProcessDocument(_ context.Context, _, path string) (*domain.IngestResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.processed = append(m.processed, path)
	return &domain.IngestResult{
		DocumentID: testDocID,
		Status:     domain.IndexStatusIndexed,
		Source:     path,
		Chunks:     4,
		Pages:      2,
	}, nil
}

func (m *mockAssistantService) Ask(_ context.Context, _, question string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, question)
	return m.answer, nil
}

func (m *mockAssistantService) History(_ string) []domain.Exchange {
	return nil
}

func (m *mockAssistantService) EndSession(_ string) {}

// mockIndexService implements driving.IndexService.
type mockIndexService struct {
	mu      sync.Mutex
	indexed []string
	failOn  string
}

func (m *mockIndexService) Index(_ context.Context, path string) (*domain.IngestResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if path == m.failOn {
		return nil, errors.New("no extractable text")
	}
	m.indexed = append(m.indexed, path)
	return &domain.IngestResult{
		DocumentID: testDocID,
		Status:     domain.IndexStatusCached,
		Source:     path,
		Chunks:     7,
	}, nil
}

type testServices struct {
	settings  *mockSettingsService
	assistant *mockAssistantService
	indexer   *mockIndexService
	opts      []RuntimeOptions
}

// setupTestServices swaps the package services for mocks and returns a
// cleanup function restoring them and resetting command flags.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		settings:  newMockSettingsService(),
		assistant: &mockAssistantService{answer: "The total was 42."},
		indexer:   &mockIndexService{},
	}

	origSettings := settingsService
	origFactory := runtimeFactory
	origStdin := stdin

	settingsService = ts.settings
	runtimeFactory = func(_ context.Context, svc driving.SettingsService, opts RuntimeOptions) (*Runtime, error) {
		ts.opts = append(ts.opts, opts)
		s, err := svc.Get()
		if err != nil {
			return nil, err
		}
		return &Runtime{Settings: s, Assistant: ts.assistant, Indexer: ts.indexer}, nil
	}

	return ts, func() {
		settingsService = origSettings
		runtimeFactory = origFactory
		stdin = origStdin

		askJSON = false
		askEphemeral = false
		indexWatch = ""
		indexWorkers = 2
		serveAddr = ""
		chatEphemeral = false
		_ = mcpServeCmd.Flags().Set("http", "")
		rootCmd.SetArgs(nil)
	}
}
