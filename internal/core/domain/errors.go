package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPDF indicates the file could not be opened as a PDF.
	ErrInvalidPDF = errors.New("invalid PDF")

	// ErrExtractionExhausted indicates that neither the text layer nor the
	// vision fallback produced any text.
	ErrExtractionExhausted = errors.New("no text could be extracted from the document")

	// ErrPDFToolNotFound indicates the poppler command line tools are missing.
	ErrPDFToolNotFound = errors.New("PDF tool not found")

	// ErrUpstreamUnavailable indicates a remote model call failed.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// The vision fallback and answer synthesis are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Nothing can be indexed or retrieved without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrAINotConfigured indicates a provider was selected without credentials.
	ErrAINotConfigured = errors.New("AI provider not configured")
)
