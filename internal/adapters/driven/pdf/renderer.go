package pdf

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.PageRenderer = (*Renderer)(nil)

// Renderer counts pages with pdfcpu and rasterises them with pdftoppm.
type Renderer struct {
	runner CommandRunner
}

// NewRenderer creates a renderer that runs the installed pdftoppm.
func NewRenderer() *Renderer {
	return &Renderer{runner: execRunner{}}
}

// NewRendererWithRunner creates a renderer with a custom command runner.
func NewRendererWithRunner(runner CommandRunner) *Renderer {
	return &Renderer{runner: runner}
}

// PageCount validates the file as a PDF and returns its number of pages.
func (r *Renderer) PageCount(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrInvalidPDF, path, err)
	}

	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrInvalidPDF, path, err)
	}
	return n, nil
}

// RenderJPEG renders one 1-based page to JPEG bytes.
func (r *Renderer) RenderJPEG(ctx context.Context, path string, page int, opts driven.RenderOptions) ([]byte, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page %d", domain.ErrInvalidInput, page)
	}

	p := strconv.Itoa(page)
	args := []string{
		"-jpeg",
		"-jpegopt", "quality=" + strconv.Itoa(opts.Quality),
		"-r", strconv.Itoa(opts.DPI),
		"-f", p, "-l", p,
		"-singlefile",
		path, "-",
	}

	out, err := r.runner.Run(ctx, toolPDFToPPM, args...)
	if err != nil {
		return nil, fmt.Errorf("render page %d of %s: %w", page, path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("render page %d of %s: empty image", page, path)
	}
	return out, nil
}
