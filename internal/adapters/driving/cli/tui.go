package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driving/tui"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

var chatEphemeral bool

// chatCmd represents the chat command.
var chatCmd = &cobra.Command{
	Use:   "chat FILE",
	Short: "Chat with a PDF in the terminal",
	Long: `Open an interactive terminal chat about one PDF.

The document is processed when the chat opens. Previous questions are not
sent to the model; every answer is based on the PDF alone.

Controls:
  Enter     - Ask
  PgUp/PgDn - Scroll the conversation
  Ctrl+L    - Clear the screen
  Esc       - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatEphemeral, "ephemeral", false, "keep the index in memory only")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	rt, err := loadRuntime(cmd, RuntimeOptions{Ephemeral: chatEphemeral})
	if err != nil {
		return err
	}
	defer rt.Close()

	app, err := tui.NewApp(&tui.Ports{Assistant: rt.Assistant}, args[0])
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	// Log lines would tear the alternate screen.
	if !logger.IsVerbose() {
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if !app.Loaded() && app.Err() != nil {
		return app.Err()
	}
	return nil
}
