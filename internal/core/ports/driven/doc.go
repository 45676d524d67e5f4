// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TextExtractor: Reads the text layer of a PDF page by page
//   - PageRenderer: Counts and rasterises PDF pages
//   - EmbeddingService: Generates vector embeddings for chunks and questions
//   - IndexStore: Persists one VectorIndex per DocumentID
//   - ConfigStore: Application configuration
//   - PromptStore: Prompt templates
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Without it, scanned PDFs cannot be transcribed and
//     questions cannot be answered.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
