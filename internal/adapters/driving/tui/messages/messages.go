// Package messages defines Bubbletea message types for the TUI.
// Messages carry results of background work back into the update loop.
package messages

import (
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

// DocumentLoaded is sent when the PDF has been indexed or loaded from cache.
type DocumentLoaded struct {
	Result *domain.IngestResult
	Err    error
}

// AnswerReceived carries the answer to a question.
type AnswerReceived struct {
	Question string
	Answer   string
	Err      error
}

// ErrorOccurred is sent when an error occurs outside a request.
type ErrorOccurred struct {
	Err error
}

// Error returns the error message.
func (e ErrorOccurred) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
