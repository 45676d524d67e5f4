// Package transcript renders the scrolling conversation of the TUI.
package transcript

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driving/tui/styles"
)

// Role identifies who produced an entry.
type Role int

const (
	// RoleUser is a question typed by the user.
	RoleUser Role = iota
	// RoleAssistant is an answer.
	RoleAssistant
	// RoleNotice is a status note such as "document loaded".
	RoleNotice
	// RoleError is a failure shown inline.
	RoleError
)

// Entry is one line of the conversation.
type Entry struct {
	Role Role
	Text string
}

// Transcript is a scrollable list of entries.
type Transcript struct {
	styles   *styles.Styles
	viewport viewport.Model
	entries  []Entry
}

// New creates an empty transcript.
func New(s *styles.Styles) *Transcript {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Transcript{
		styles:   s,
		viewport: viewport.New(80, 20),
	}
}

// Add appends an entry and scrolls to the bottom.
func (t *Transcript) Add(role Role, text string) {
	t.entries = append(t.entries, Entry{Role: role, Text: text})
	t.refresh()
}

// Clear removes all entries.
func (t *Transcript) Clear() {
	t.entries = nil
	t.refresh()
}

// Entries returns a copy of the entries.
func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// SetSize resizes the visible area.
func (t *Transcript) SetSize(width, height int) {
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}
	t.viewport.Width = width
	t.viewport.Height = height
	t.refresh()
}

// ScrollUp moves one page up.
func (t *Transcript) ScrollUp() {
	t.viewport.PageUp()
}

// ScrollDown moves one page down.
func (t *Transcript) ScrollDown() {
	t.viewport.PageDown()
}

// Update forwards mouse and key messages to the viewport.
func (t *Transcript) Update(msg tea.Msg) (*Transcript, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View renders the visible part of the conversation.
func (t *Transcript) View() string {
	return t.viewport.View()
}

func (t *Transcript) refresh() {
	t.viewport.SetContent(t.render())
	t.viewport.GotoBottom()
}

func (t *Transcript) render() string {
	if len(t.entries) == 0 {
		return t.styles.Muted.Render("No questions yet.")
	}

	wrap := lipgloss.NewStyle().Width(t.viewport.Width - 2)
	blocks := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		blocks = append(blocks, wrap.Render(t.renderEntry(e)))
	}
	return strings.Join(blocks, "\n\n")
}

func (t *Transcript) renderEntry(e Entry) string {
	switch e.Role {
	case RoleUser:
		return t.styles.Speaker.Inherit(t.styles.Question).Render("You: ") + t.styles.Question.Render(e.Text)
	case RoleAssistant:
		return t.styles.Speaker.Render("PDA: ") + t.styles.Answer.Render(e.Text)
	case RoleError:
		return t.styles.Error.Render(e.Text)
	default:
		return t.styles.Notice.Render(e.Text)
	}
}
