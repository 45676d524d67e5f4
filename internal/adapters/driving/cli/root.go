// Package cli implements the pda command line.
package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driving"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

// version is set at build time through SetVersion.
var version = "dev"

var (
	verbose bool
	logJSON bool
)

// Services shared by commands. Tests replace them before executing.
var (
	settingsService driving.SettingsService
	runtimeFactory  RuntimeFactory = NewRuntime
)

var rootCmd = &cobra.Command{
	Use:   "pda",
	Short: "Ask questions about your PDFs",
	Long: `pda indexes PDF documents and answers questions about them.

Text is read from the PDF's text layer, falling back to a vision model for
scanned pages. Each document's index is cached by content, so uploading the
same file again is instant.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write logs as JSON lines")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if logJSON {
		logger.SetFormat(logger.FormatJSON)
	}
	logger.SetVerbose(verbose)
	return nil
}

// settings returns the settings service, creating the default one on
// first use.
func settings() (driving.SettingsService, error) {
	if settingsService == nil {
		svc, err := NewSettingsService()
		if err != nil {
			return nil, err
		}
		settingsService = svc
	}
	return settingsService, nil
}
