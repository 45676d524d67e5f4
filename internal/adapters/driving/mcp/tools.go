package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

// IngestInput is the input schema for the ingest_pdf tool.
type IngestInput struct {
	Path string `json:"path" jsonschema:"absolute path of the PDF to load"`
}

// IngestOutput is the output schema for ingest_pdf and index_pdf.
type IngestOutput struct {
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
	Chunks     int    `json:"chunks"`
	Pages      int    `json:"pages,omitempty"`
	Vision     bool   `json:"vision,omitempty"`
}

// AskInput is the input schema for the ask_document tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"question about the loaded PDF"`
}

// AskOutput is the output schema for the ask_document tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "ingest_pdf",
		Description: "Load a PDF as the active document of this session. " +
			"Clears the conversation history. Re-loading a known file is served from cache.",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_document",
		Description: "Answer a question using only the active PDF of this session",
	}, s.handleAsk)

	if s.ports.Indexer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "index_pdf",
			Description: "Build the index of a PDF ahead of time without loading it",
		}, s.handleIndex)
	}
}

// handleIngest handles the ingest_pdf tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	path := strings.TrimSpace(input.Path)
	if path == "" {
		return nil, IngestOutput{}, ErrEmptyPath
	}

	result, err := s.ports.Assistant.ProcessDocument(ctx, sessionID(callSession(req)), path)
	if err != nil {
		return nil, IngestOutput{}, fmt.Errorf("processing %s: %w", path, err)
	}
	return nil, toIngestOutput(result), nil
}

// handleAsk handles the ask_document tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Assistant.Ask(ctx, sessionID(callSession(req)), input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Answer: answer}, nil
}

// handleIndex handles the index_pdf tool invocation.
func (s *Server) handleIndex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	path := strings.TrimSpace(input.Path)
	if path == "" {
		return nil, IngestOutput{}, ErrEmptyPath
	}

	result, err := s.ports.Indexer.Index(ctx, path)
	if err != nil {
		return nil, IngestOutput{}, fmt.Errorf("indexing %s: %w", path, err)
	}
	return nil, toIngestOutput(result), nil
}

func callSession(req *mcp.CallToolRequest) *mcp.ServerSession {
	if req == nil {
		return nil
	}
	return req.Session
}

func toIngestOutput(r *domain.IngestResult) IngestOutput {
	return IngestOutput{
		DocumentID: r.DocumentID.String(),
		Status:     r.Status.String(),
		Chunks:     r.Chunks,
		Pages:      r.Pages,
		Vision:     r.Vision,
	}
}
