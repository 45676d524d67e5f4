package mcp

import (
	"context"
	"strings"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

var testDocID = domain.DocumentID(strings.Repeat("ef", 32))

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	result  *domain.IngestResult
	answer  string
	history map[string][]domain.Exchange
	err     error

	processed []string
	sessions  []string
	questions []string
}

func (m *mockAssistantService) ProcessDocument(_ context.Context, sessionID, path string) (*domain.IngestResult, error) {
	m.sessions = append(m.sessions, sessionID)
	m.processed = append(m.processed, path)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.IngestResult{DocumentID: testDocID, Status: domain.IndexStatusIndexed, Chunks: 4, Pages: 2}, nil
}

func (m *mockAssistantService) Ask(_ context.Context, sessionID, question string) (string, error) {
	m.sessions = append(m.sessions, sessionID)
	m.questions = append(m.questions, question)
	return m.answer, m.err
}

func (m *mockAssistantService) History(sessionID string) []domain.Exchange {
	return m.history[sessionID]
}

func (m *mockAssistantService) EndSession(string) {}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	paths []string
	err   error
}

func (m *mockIndexService) Index(_ context.Context, path string) (*domain.IngestResult, error) {
	m.paths = append(m.paths, path)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.IngestResult{DocumentID: testDocID, Status: domain.IndexStatusCached, Chunks: 7}, nil
}
