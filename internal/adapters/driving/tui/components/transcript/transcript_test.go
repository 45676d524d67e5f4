package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Empty(t *testing.T) {
	tr := New(nil)
	require.NotNil(t, tr)

	assert.Empty(t, tr.Entries())
	assert.Contains(t, tr.View(), "No questions yet.")
}

func TestTranscript_AddRendersRoles(t *testing.T) {
	tr := New(nil)
	tr.SetSize(80, 20)

	tr.Add(RoleNotice, "Loaded report.pdf")
	tr.Add(RoleUser, "Who wrote it?")
	tr.Add(RoleAssistant, "Ada Lovelace.")
	tr.Add(RoleError, "Sorry, something went wrong.")

	view := tr.View()
	assert.Contains(t, view, "Loaded report.pdf")
	assert.Contains(t, view, "You: Who wrote it?")
	assert.Contains(t, view, "PDA: Ada Lovelace.")
	assert.Contains(t, view, "Sorry, something went wrong.")
	assert.Len(t, tr.Entries(), 4)
}

func TestTranscript_Clear(t *testing.T) {
	tr := New(nil)
	tr.Add(RoleUser, "q")
	tr.Clear()

	assert.Empty(t, tr.Entries())
	assert.Contains(t, tr.View(), "No questions yet.")
}

func TestTranscript_ScrollsToBottom(t *testing.T) {
	tr := New(nil)
	tr.SetSize(40, 3)

	for i := 0; i < 20; i++ {
		tr.Add(RoleAssistant, strings.Repeat("x", 5))
	}
	tr.Add(RoleUser, "latest")

	assert.Contains(t, tr.View(), "latest")

	tr.ScrollUp()
	assert.NotContains(t, tr.View(), "latest")

	tr.ScrollDown()
	assert.Contains(t, tr.View(), "latest")
}

func TestTranscript_EntriesIsCopy(t *testing.T) {
	tr := New(nil)
	tr.Add(RoleUser, "original")

	entries := tr.Entries()
	entries[0].Text = "changed"

	assert.Equal(t, "original", tr.Entries()[0].Text)
}
