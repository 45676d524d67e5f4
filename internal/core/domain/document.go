package domain

import "fmt"

// OCRMode records how the text of a Document was obtained.
type OCRMode string

// Available OCR modes.
const (
	// OCRNone means the text was read directly from the PDF text layer.
	OCRNone OCRMode = ""

	// OCRVision means a vision model transcribed the page.
	OCRVision OCRMode = "vision"

	// OCRVisionRaw means the vision model answer could not be parsed and
	// is stored verbatim for a whole batch of pages.
	OCRVisionRaw OCRMode = "vision_raw"
)

// PageMetadata describes where a Document came from.
type PageMetadata struct {
	// Page is the 1-based page number. Zero for raw vision batches, which
	// carry PageRange instead.
	Page int `json:"page,omitempty"`

	// Source is the path of the PDF the text was extracted from.
	Source string `json:"source"`

	// OCR is set when the text came from the vision fallback.
	OCR OCRMode `json:"ocr,omitempty"`

	// PageRange is set for raw vision batches, e.g. "4-6".
	PageRange string `json:"page_range,omitempty"`
}

// Document is the extracted text of one page, or of a page range when the
// vision fallback returned unstructured output.
// Documents are immutable once created.
type Document struct {
	// Content is the trimmed page text.
	Content string

	// Metadata locates the text in its source file.
	Metadata PageMetadata
}

// Chunk is a bounded-length slice of a Document's text.
// It carries the same metadata as its parent Document.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID is the content fingerprint of the source PDF.
	DocumentID DocumentID

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position across the whole PDF.
	Position int

	// Embedding is the vector representation used for retrieval.
	Embedding []float32

	// Metadata is copied from the parent Document.
	Metadata PageMetadata
}

// FormatPageRange renders an inclusive 1-based page range.
func FormatPageRange(first, last int) string {
	return fmt.Sprintf("%d-%d", first, last)
}
