package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driving/tui/components/input"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driving/tui/components/status"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driving/tui/components/transcript"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driving/tui/keymap"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driving/tui/messages"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driving/tui/styles"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

// SessionID is the assistant session used by the terminal chat.
const SessionID = "tui"

// msgAskFailed is shown inline when a question fails.
const msgAskFailed = "Sorry, something went wrong. Please try again."

// chrome is the number of lines taken by title, input and status bar.
const chrome = 6

// App is the chat application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context
	path  string

	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.QuestionInput
	transcript *transcript.Transcript
	statusBar  *status.Bar

	// loaded is set once the PDF is ready; busy while a request runs.
	loaded bool
	busy   bool
	err    error

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a chat about the PDF at path.
func NewApp(ports *Ports, path string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		return nil, ErrMissingDocument
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		path:       path,
		styles:     s,
		keymap:     km,
		input:      input.NewQuestionInput(s),
		transcript: transcript.New(s),
		statusBar:  status.NewBar(s, km),
		busy:       true,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It starts processing the PDF.
func (a *App) Init() tea.Cmd {
	a.transcript.Add(transcript.RoleNotice, fmt.Sprintf("Processing %s...", filepath.Base(a.path)))
	return tea.Batch(
		tea.SetWindowTitle("pda - "+filepath.Base(a.path)),
		a.input.Init(),
		a.loadDocument(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)
		return a, nil

	case messages.DocumentLoaded:
		return a.handleDocumentLoaded(msg), nil

	case messages.AnswerReceived:
		return a.handleAnswer(msg), nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Error())
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.transcript, cmd = a.transcript.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(key, a.keymap.Send):
		return a, a.submit()

	case keymap.Matches(key, a.keymap.Clear):
		a.transcript.Clear()
		return a, nil

	case keymap.Matches(key, a.keymap.ScrollUp):
		a.transcript.ScrollUp()
		return a, nil

	case keymap.Matches(key, a.keymap.ScrollDown):
		a.transcript.ScrollDown()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit sends the typed question unless a request is in flight.
func (a *App) submit() tea.Cmd {
	if a.busy || !a.loaded {
		return nil
	}
	question := strings.TrimSpace(a.input.Value())
	if question == "" {
		return nil
	}

	a.input.Reset()
	a.transcript.Add(transcript.RoleUser, question)
	a.busy = true
	a.statusBar.SetState(status.StateThinking)
	return a.ask(question)
}

func (a *App) handleDocumentLoaded(msg messages.DocumentLoaded) *App {
	a.busy = false
	if msg.Err != nil {
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage("could not process the PDF")
		a.transcript.Add(transcript.RoleError, fmt.Sprintf("Sorry, I couldn't process that PDF: %v", msg.Err))
		return a
	}

	a.loaded = true
	a.err = nil
	a.statusBar.SetDocument(msg.Result)
	a.statusBar.SetState(status.StateReady)

	note := "Loaded from cache."
	if msg.Result.Status == domain.IndexStatusIndexed {
		note = fmt.Sprintf("Indexed %d chunks.", msg.Result.Chunks)
	}
	a.transcript.Add(transcript.RoleNotice, note+" Ask away.")
	return a
}

func (a *App) handleAnswer(msg messages.AnswerReceived) *App {
	a.busy = false
	if msg.Err != nil {
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		a.transcript.Add(transcript.RoleError, msgAskFailed)
		return a
	}

	a.err = nil
	a.statusBar.SetState(status.StateReady)
	a.transcript.Add(transcript.RoleAssistant, msg.Answer)
	return a
}

// loadDocument processes the PDF in the background.
func (a *App) loadDocument() tea.Cmd {
	ctx, path := a.ctx, a.path
	return func() tea.Msg {
		result, err := a.ports.Assistant.ProcessDocument(ctx, SessionID, path)
		return messages.DocumentLoaded{Result: result, Err: err}
	}
}

// ask answers a question in the background.
func (a *App) ask(question string) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		answer, err := a.ports.Assistant.Ask(ctx, SessionID, question)
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height
	a.input.SetWidth(width)
	a.statusBar.SetWidth(width)
	a.transcript.SetSize(width, height-chrome)
}

// View implements tea.Model.
func (a *App) View() string {
	title := a.styles.Title.Render("PDA") + " " + a.styles.Muted.Render(filepath.Base(a.path))
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		a.transcript.View(),
		a.input.View(),
		a.statusBar.View(),
	)
}

// Err returns the last error, if any.
func (a *App) Err() error {
	return a.err
}

// Loaded reports whether the PDF is ready for questions.
func (a *App) Loaded() bool {
	return a.loaded
}

// Busy reports whether a request is in flight.
func (a *App) Busy() bool {
	return a.busy
}
