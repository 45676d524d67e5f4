package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driven"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

// VisionConfig bounds the cost of one vision fallback run.
type VisionConfig struct {
	MaxPages  int
	DPI       int
	BatchSize int
	Quality   int
	MaxTokens int
}

// VisionConfigFromSettings copies the vision fields of settings.
func VisionConfigFromSettings(s domain.IngestSettings) VisionConfig {
	return VisionConfig{
		MaxPages:  s.VisionMaxPages,
		DPI:       s.VisionDPI,
		BatchSize: s.VisionBatchSize,
		Quality:   s.VisionJPEGQuality,
		MaxTokens: s.VisionMaxTokens,
	}
}

// VisionExtractor transcribes rendered pages with a vision-capable LLM.
type VisionExtractor struct {
	llm      driven.LLMService
	renderer driven.PageRenderer
	prompts  driven.PromptStore
	cfg      VisionConfig
}

// NewVisionExtractor creates a vision extractor. Zero config fields take
// the defaults of domain.DefaultAppSettings.
func NewVisionExtractor(
	llm driven.LLMService,
	renderer driven.PageRenderer,
	prompts driven.PromptStore,
	cfg VisionConfig,
) *VisionExtractor {
	def := VisionConfigFromSettings(domain.DefaultAppSettings().Ingest)
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = def.MaxPages
	}
	if cfg.DPI <= 0 {
		cfg.DPI = def.DPI
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = def.Quality
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	return &VisionExtractor{llm: llm, renderer: renderer, prompts: prompts, cfg: cfg}
}

// Extract renders up to MaxPages pages in batches of BatchSize and asks
// the model to transcribe each batch. Batches run in page order.
func (v *VisionExtractor) Extract(ctx context.Context, path string) ([]domain.Document, error) {
	if v.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	tmpl, err := v.prompts.Load(driven.PromptVisionTranscribe)
	if err != nil {
		return nil, err
	}

	total, err := v.renderer.PageCount(ctx, path)
	if err != nil {
		return nil, err
	}
	pages := min(total, v.cfg.MaxPages)
	if total > pages {
		logger.Warn("vision fallback truncated", "pages", total, "cap", pages)
	}

	var docs []domain.Document
	for first := 1; first <= pages; first += v.cfg.BatchSize {
		last := min(first+v.cfg.BatchSize-1, pages)
		batch, err := v.transcribeBatch(ctx, path, tmpl, first, last)
		if err != nil {
			return nil, err
		}
		docs = append(docs, batch...)
	}
	return docs, nil
}

func (v *VisionExtractor) transcribeBatch(
	ctx context.Context,
	path, tmpl string,
	first, last int,
) ([]domain.Document, error) {
	logger.Info("vision batch", "first", first, "last", last)

	images := make([]driven.Image, 0, last-first+1)
	for page := first; page <= last; page++ {
		data, err := v.renderer.RenderJPEG(ctx, path, page, driven.RenderOptions{
			DPI:     v.cfg.DPI,
			Quality: v.cfg.Quality,
		})
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", page, err)
		}
		images = append(images, driven.Image{MIMEType: "image/jpeg", Data: data})
	}

	prompt := fmt.Sprintf(tmpl, len(images), len(images))
	raw, err := v.llm.Vision(ctx, prompt, images, driven.GenerateOptions{MaxTokens: v.cfg.MaxTokens})
	if err != nil {
		return nil, fmt.Errorf("transcribe pages %s: %w", domain.FormatPageRange(first, last), err)
	}

	t := ParseTranscription(raw)
	if !t.IsStructured() {
		logger.Warn("vision answer was not JSON, keeping raw text",
			"pages", domain.FormatPageRange(first, last))
	}
	return transcriptionDocuments(t, path, first, last), nil
}

// transcriptionDocuments maps a parsed answer onto the pages first..last.
// Structured items pair with pages by position; the page numbers the
// model reports are ignored.
func transcriptionDocuments(t domain.Transcription, path string, first, last int) []domain.Document {
	switch t.Kind {
	case domain.TranscriptionStructured:
		var docs []domain.Document
		for i, item := range t.Pages {
			page := first + i
			if page > last {
				break
			}
			text := strings.TrimSpace(item.Text)
			if text == "" {
				continue
			}
			docs = append(docs, domain.Document{
				Content:  text,
				Metadata: domain.PageMetadata{Page: page, Source: path, OCR: domain.OCRVision},
			})
		}
		return docs

	case domain.TranscriptionUnstructured:
		if t.Raw == "" {
			return nil
		}
		return []domain.Document{{
			Content: t.Raw,
			Metadata: domain.PageMetadata{
				Source:    path,
				OCR:       domain.OCRVisionRaw,
				PageRange: domain.FormatPageRange(first, last),
			},
		}}
	}
	return nil
}

// visionAnswer is the JSON shape the transcription prompt asks for.
type visionAnswer struct {
	Pages *[]struct {
		Page any    `json:"page"`
		Text string `json:"text"`
	} `json:"pages"`
}

// ParseTranscription decodes a vision answer. Markdown code fences are
// stripped first. Anything that is not an object with a "pages" array
// comes back Unstructured with the trimmed answer.
func ParseTranscription(raw string) domain.Transcription {
	raw = strings.TrimSpace(raw)

	var answer visionAnswer
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &answer); err != nil || answer.Pages == nil {
		return domain.UnstructuredTranscription(raw)
	}

	pages := make([]domain.TranscribedPage, 0, len(*answer.Pages))
	for _, item := range *answer.Pages {
		p := domain.TranscribedPage{Text: item.Text}
		if n, ok := item.Page.(float64); ok {
			p.Page = int(n)
		}
		pages = append(pages, p)
	}
	return domain.StructuredTranscription(pages)
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := strings.TrimSuffix(s[3:], "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		// Drop the info string, e.g. "json".
		if !strings.ContainsAny(body[:nl], "{[") {
			body = body[nl+1:]
		}
	}
	return strings.TrimSpace(body)
}
