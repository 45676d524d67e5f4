package domain

import "time"

// Fixed user-facing replies of the assistant.
const (
	// MessageUploadFirst is returned when a question arrives before any PDF.
	MessageUploadFirst = "Please upload a PDF first so I can answer based on it."

	// MessageEmptyQuestion is returned for a blank question.
	MessageEmptyQuestion = "Please type a question."

	// MessageNoResponse replaces an empty model answer.
	MessageNoResponse = "No response."
)

// Exchange is one question and its answer.
type Exchange struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}
