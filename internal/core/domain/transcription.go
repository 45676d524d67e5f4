package domain

// TranscriptionKind tags the variant held by a Transcription.
type TranscriptionKind int

const (
	// TranscriptionStructured holds per-page text.
	TranscriptionStructured TranscriptionKind = iota

	// TranscriptionUnstructured holds the raw model answer.
	TranscriptionUnstructured
)

// TranscribedPage is one item of a structured vision answer.
type TranscribedPage struct {
	// Page is the page number reported by the model.
	Page int `json:"page"`

	// Text is the transcribed text.
	Text string `json:"text"`
}

// Transcription is the parsed answer of one vision model call.
// Exactly one of Pages or Raw is meaningful, depending on Kind.
type Transcription struct {
	Kind  TranscriptionKind
	Pages []TranscribedPage
	Raw   string
}

// StructuredTranscription wraps a successfully parsed answer.
func StructuredTranscription(pages []TranscribedPage) Transcription {
	return Transcription{Kind: TranscriptionStructured, Pages: pages}
}

// UnstructuredTranscription wraps an answer that did not match the
// expected structure.
func UnstructuredTranscription(raw string) Transcription {
	return Transcription{Kind: TranscriptionUnstructured, Raw: raw}
}

// IsStructured reports whether per-page text is available.
func (t Transcription) IsStructured() bool {
	return t.Kind == TranscriptionStructured
}
