package domain

import "time"

// IndexStatus reports how a vector index was obtained.
type IndexStatus string

const (
	// IndexStatusCached means a persisted index was loaded from disk.
	IndexStatusCached IndexStatus = "cached"

	// IndexStatusIndexed means the PDF was extracted, chunked and embedded.
	IndexStatusIndexed IndexStatus = "indexed"
)

// String returns the string representation.
func (s IndexStatus) String() string {
	return string(s)
}

// IngestResult summarises one processed upload.
type IngestResult struct {
	// DocumentID is the content fingerprint of the file.
	DocumentID DocumentID

	// Status tells whether the index was loaded or built.
	Status IndexStatus

	// Source is the path that was processed.
	Source string

	// Chunks is the number of chunks in the index.
	Chunks int

	// Pages is the number of extracted Documents. Zero when cached.
	Pages int

	// Vision is true when the text came from the vision fallback.
	Vision bool

	// Duration is the wall time spent processing.
	Duration time.Duration
}
