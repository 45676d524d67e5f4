package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()
	require.NotNil(t, theme)

	assert.Equal(t, lipgloss.Color("#7C3AED"), theme.Accent)
	assert.NotEmpty(t, theme.Error)
	assert.NotEmpty(t, theme.Muted)
	assert.NotEmpty(t, theme.Bar)
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)
	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_UsesTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Accent = lipgloss.Color("#FF0000")

	s := NewStyles(theme)

	assert.Same(t, theme, s.Theme())
	assert.Equal(t, lipgloss.Color("#FF0000"), s.Question.GetForeground())
	assert.True(t, s.Title.GetBold())
}

func TestStyles_Render(t *testing.T) {
	s := DefaultStyles()
	assert.Contains(t, s.Answer.Render("hello"), "hello")
	assert.Contains(t, s.Notice.Render("loading"), "loading")
}
