package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

// cliSession is the assistant session used by one-shot commands.
const cliSession = "cli"

var (
	askEphemeral bool
	askJSON      bool
)

var askCmd = &cobra.Command{
	Use:   "ask FILE QUESTION...",
	Short: "Ask one question about a PDF",
	Long: `Process a PDF (or load its cached index) and answer a single question.

The remaining arguments are joined into the question, so quoting is optional:
  pda ask report.pdf What was the total revenue in 2023?`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askEphemeral, "ephemeral", false, "keep the index in memory only")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

type askOutput struct {
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	path := args[0]
	question := strings.TrimSpace(strings.Join(args[1:], " "))

	rt, err := loadRuntime(cmd, RuntimeOptions{Ephemeral: askEphemeral})
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.Assistant.ProcessDocument(cmd.Context(), cliSession, path)
	if err != nil {
		return fmt.Errorf("processing %s: %w", path, err)
	}
	logger.Debug("document ready",
		"document", result.DocumentID.Short(),
		"status", result.Status,
		"chunks", result.Chunks)

	answer, err := rt.Assistant.Ask(cmd.Context(), cliSession, question)
	if err != nil {
		return fmt.Errorf("answering: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(askOutput{
			DocumentID: result.DocumentID.String(),
			Status:     result.Status.String(),
			Question:   question,
			Answer:     answer,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer)
	return nil
}
