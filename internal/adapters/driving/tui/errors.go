// Package tui provides an interactive terminal chat for a single PDF.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import "errors"

// ErrMissingAssistantService is returned when the assistant service is not provided.
var ErrMissingAssistantService = errors.New("tui: assistant service is required")

// ErrMissingDocument is returned when no PDF path is given.
var ErrMissingDocument = errors.New("tui: a PDF path is required")
