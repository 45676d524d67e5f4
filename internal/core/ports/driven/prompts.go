package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptVisionTranscribe asks a vision model to transcribe page images.
	// The template expects %d (number of pages) placeholders twice.
	PromptVisionTranscribe = "vision_transcribe"

	// PromptAnswer is the "stuff" answer synthesis prompt.
	// The template expects %s (context) and %s (question) placeholders.
	PromptAnswer = "answer"
)
