package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for pda resources.
	uriScheme = "pda://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Conversation log of the calling session.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Questions and answers about the active PDF of this session",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// Conversation log of any session, e.g. one started over HTTP.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sessions/{sessionId}/history",
		Name:        "session-history",
		Description: "Questions and answers of a specific session",
		MIMEType:    "application/json",
	}, s.handleSessionHistoryResource)
}

// handleHistoryResource returns the calling session's log.
func (s *Server) handleHistoryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return historyResult(req.Params.URI, s.ports.Assistant.History(sessionID(req.Session)))
}

// handleSessionHistoryResource returns the log of a named session.
func (s *Server) handleSessionHistoryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract sessionId from URI: pda://sessions/{sessionId}/history
	id := extractSessionID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return historyResult(req.Params.URI, s.ports.Assistant.History(id))
}

func historyResult(uri string, history []domain.Exchange) (*mcp.ReadResourceResult, error) {
	if history == nil {
		history = []domain.Exchange{}
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSessionID extracts the session ID from a URI like pda://sessions/{sessionId}/history.
func extractSessionID(uri string) string {
	const prefix = uriScheme + "sessions/"
	const suffix = "/history"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	id := strings.TrimSuffix(uri, suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
