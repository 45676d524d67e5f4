package vertex

import (
	"context"
	"testing"

	"cloud.google.com/go/vertexai/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

func TestNewLLMService_RequiresProject(t *testing.T) {
	_, err := NewLLMService(context.Background(), Config{})
	assert.ErrorIs(t, err, domain.ErrAINotConfigured)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text(`{"pages":[`),
				genai.Blob{MIMEType: "image/png"},
				genai.Text(`]}`),
			}},
		}},
	}

	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"pages":[]}`, text)
}

func TestResponseText_NoCandidates(t *testing.T) {
	_, err := responseText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	_, err = responseText(nil)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClose_NilClient(t *testing.T) {
	s := &LLMService{}
	assert.NoError(t, s.Close())
}
