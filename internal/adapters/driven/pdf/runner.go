package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

// Run executes name with args. Stderr is folded into the returned error.
func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return out, nil
}

// Tool names of the poppler utilities.
const (
	toolPDFToText = "pdftotext"
	toolPDFToPPM  = "pdftoppm"
)

// CheckAvailable verifies the poppler utilities are on PATH.
func CheckAvailable() error {
	for _, tool := range []string{toolPDFToText, toolPDFToPPM} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrPDFToolNotFound, tool)
		}
	}
	return nil
}

// InstallInstructions explains how to install the poppler utilities.
func InstallInstructions() string {
	return `pdftotext and pdftoppm are required to read PDFs.

Install poppler:
  macOS:          brew install poppler
  Debian/Ubuntu:  apt install poppler-utils
  Fedora:         dnf install poppler-utils`
}
