package chunker

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, p.overlap)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		if p.overlap >= p.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", p.overlap)
		}
	})
}

func TestSplitText_ShortTextIsOneChunk(t *testing.T) {
	p := New()
	got := p.SplitText("  Invoice total: 42 EUR  \n")
	if len(got) != 1 || got[0] != "Invoice total: 42 EUR" {
		t.Errorf("unexpected split %q", got)
	}
}

func TestSplitText_BlankTextYieldsNothing(t *testing.T) {
	p := New()
	if got := p.SplitText(" \n\n\t "); len(got) != 0 {
		t.Errorf("expected no chunks, got %q", got)
	}
}

func TestSplitText_PrefersParagraphs(t *testing.T) {
	p := New(WithChunkSize(30), WithOverlap(0))
	text := "First paragraph here.\n\nSecond paragraph here."

	got := p.SplitText(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %q", len(got), got)
	}
	if got[0] != "First paragraph here." || got[1] != "Second paragraph here." {
		t.Errorf("unexpected chunks %q", got)
	}
}

func TestSplitText_RespectsSizeAndOverlap(t *testing.T) {
	p := New(WithChunkSize(50), WithOverlap(15))
	words := make([]string, 200)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	got := p.SplitText(text)
	if len(got) < 2 {
		t.Fatalf("expected several chunks, got %d", len(got))
	}
	for i, c := range got {
		if n := utf8.RuneCountInString(c); n > 50 {
			t.Errorf("chunk %d has %d characters", i, n)
		}
	}
	// Consecutive chunks share trailing words of the predecessor.
	if !strings.HasPrefix(got[1], "word") || !strings.HasSuffix(got[0], "word") {
		t.Errorf("expected overlapping word boundaries, got %q / %q", got[0], got[1])
	}
	if len(got[0])+len(got[1]) <= 50 {
		t.Error("expected overlap to repeat content across chunks")
	}
}

func TestSplitText_HardCutsUnbrokenText(t *testing.T) {
	p := New(WithChunkSize(10), WithOverlap(2))
	text := strings.Repeat("x", 35)

	got := p.SplitText(text)
	for i, c := range got {
		if utf8.RuneCountInString(c) > 10 {
			t.Errorf("chunk %d too long: %q", i, c)
		}
	}
	if len(got) < 4 {
		t.Errorf("expected at least 4 chunks, got %d", len(got))
	}
}

func TestSplitText_CountsRunesNotBytes(t *testing.T) {
	p := New(WithChunkSize(5), WithOverlap(0))
	got := p.SplitText("مرحبا")
	if len(got) != 1 {
		t.Errorf("expected one chunk for five runes, got %q", got)
	}
}

func TestProcessor_Process(t *testing.T) {
	p := New(WithChunkSize(20), WithOverlap(0))
	id := domain.DocumentID(strings.Repeat("a", 64))
	docs := []domain.Document{
		{Content: "Page one text.\n\nMore on page one.", Metadata: domain.PageMetadata{Page: 1, Source: "a.pdf"}},
		{Content: "   ", Metadata: domain.PageMetadata{Page: 2, Source: "a.pdf"}},
		{Content: "Page three.", Metadata: domain.PageMetadata{Page: 3, Source: "a.pdf", OCR: domain.OCRVision}},
	}

	chunks, err := p.Process(context.Background(), id, docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		if c.Content == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if c.Position != i {
			t.Errorf("chunk %d has position %d", i, c.Position)
		}
		if c.DocumentID != id {
			t.Errorf("chunk %d has document id %q", i, c.DocumentID)
		}
		if c.ID == "" {
			t.Errorf("chunk %d has no id", i)
		}
	}

	if chunks[0].Metadata.Page != 1 || chunks[1].Metadata.Page != 1 {
		t.Error("first two chunks should come from page 1")
	}
	if chunks[2].Metadata.Page != 3 || chunks[2].Metadata.OCR != domain.OCRVision {
		t.Errorf("last chunk metadata not inherited: %+v", chunks[2].Metadata)
	}
}

func TestProcessor_Process_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Process(ctx, "id", []domain.Document{{Content: "text"}})
	if err == nil {
		t.Error("expected context error")
	}
}
