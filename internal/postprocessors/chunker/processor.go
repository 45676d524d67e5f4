// Package chunker splits extracted page text into overlapping chunks
// suitable for embedding.
package chunker

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 900

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 120

// separators are tried in order: paragraphs, lines, sentences, words,
// and finally single characters.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Processor splits documents recursively, preferring paragraph and sentence
// boundaries before falling back to hard character cuts.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Process splits every document into chunks. Output order follows document
// order, then split order within each document. Empty chunks are dropped.
func (p *Processor) Process(ctx context.Context, id domain.DocumentID, docs []domain.Document) ([]domain.Chunk, error) {
	var chunks []domain.Chunk

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, text := range p.SplitText(doc.Content) {
			chunks = append(chunks, domain.Chunk{
				ID:         uuid.New().String(),
				DocumentID: id,
				Content:    text,
				Position:   len(chunks),
				Metadata:   doc.Metadata,
			})
		}
	}

	return chunks, nil
}

// SplitText splits text into trimmed, non-empty segments of at most
// chunkSize characters.
func (p *Processor) SplitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return p.split(text, separators)
}

func (p *Processor) split(text string, seps []string) []string {
	sep := ""
	var rest []string
	for i, s := range seps {
		if s == "" || strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}

	var out, fitting []string
	for _, piece := range splitKeep(text, sep) {
		if utf8.RuneCountInString(piece) <= p.chunkSize {
			fitting = append(fitting, piece)
			continue
		}
		if len(fitting) > 0 {
			out = append(out, p.merge(fitting)...)
			fitting = nil
		}
		out = append(out, p.split(piece, rest)...)
	}
	if len(fitting) > 0 {
		out = append(out, p.merge(fitting)...)
	}

	return out
}

// merge packs consecutive pieces into chunks. Each new chunk starts with
// the trailing pieces of the previous one, up to overlap characters.
func (p *Processor) merge(pieces []string) []string {
	var (
		out    []string
		window []string
		total  int
	)

	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)

		if total+n > p.chunkSize && len(window) > 0 {
			out = appendTrimmed(out, strings.Join(window, ""))
			for total > p.overlap || (total+n > p.chunkSize && total > 0) {
				total -= utf8.RuneCountInString(window[0])
				window = window[1:]
			}
		}

		window = append(window, piece)
		total += n
	}

	if len(window) > 0 {
		out = appendTrimmed(out, strings.Join(window, ""))
	}

	return out
}

// splitKeep splits text after every occurrence of sep, keeping sep at the
// end of each piece. An empty sep splits into single characters.
func splitKeep(text, sep string) []string {
	if sep == "" {
		pieces := make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
		return pieces
	}
	return strings.SplitAfter(text, sep)
}

func appendTrimmed(out []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return out
	}
	return append(out, s)
}
