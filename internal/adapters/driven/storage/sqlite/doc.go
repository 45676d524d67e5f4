// Package sqlite persists one vector index per document.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Every DocumentID gets its own directory holding an
// index.db with the document's chunks, their metadata and their float32
// embeddings:
//
//	vector_db/
//	  <sha256 hex>/
//	    index.db
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory and applied when an index is built.
//
// # Atomicity
//
// Indices are written into a hidden temporary directory beside the final
// one and renamed into place, so a crashed or failed build never leaves a
// partial directory that would later be mistaken for a cache hit.
package sqlite
