package driving

import (
	"context"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

// AssistantService answers questions about the PDF most recently processed
// in a session. Sessions are independent of each other.
type AssistantService interface {
	// ProcessDocument fingerprints the PDF at path, loads or builds its
	// index and makes it the active document of the session. The session's
	// conversation log is cleared first, even if processing then fails.
	ProcessDocument(ctx context.Context, sessionID, path string) (*domain.IngestResult, error)

	// Ask answers a question against the session's active document.
	// A missing document or blank question yields a guidance message,
	// not an error.
	Ask(ctx context.Context, sessionID, question string) (string, error)

	// History returns the session's conversation log, oldest first.
	History(sessionID string) []domain.Exchange

	// EndSession releases the session and its index handle.
	EndSession(sessionID string)
}

// IndexService warms the index store without touching any session.
type IndexService interface {
	// Index loads or builds the index for the PDF at path.
	Index(ctx context.Context, path string) (*domain.IngestResult, error)
}
