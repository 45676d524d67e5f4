// Package mcp provides an MCP (Model Context Protocol) server adapter for pda.
// It lets AI assistants load a PDF and ask questions about it.
package mcp

import "errors"

// ErrMissingAssistantService is returned when the assistant service is not provided.
var ErrMissingAssistantService = errors.New("mcp: assistant service is required")

// ErrEmptyPath is returned by tools called without a file path.
var ErrEmptyPath = errors.New("mcp: path is required")
