// Package domain defines the core business entities for the assistant.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: One page (or page range) of extracted text
//   - Chunk: An embeddable slice of a Document
//   - DocumentID: The content fingerprint used as the index key
//   - Transcription: The parsed result of a vision model call
//   - Exchange: One question/answer pair in a conversation log
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
