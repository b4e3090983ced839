package pipeline

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/nao1215/wikiextract/internal/model"
	"github.com/nao1215/wikiextract/internal/wikitext"
)

// sampleDocs builds n documents with simple wikitext.
func sampleDocs(n int) []*model.Document {
	docs := make([]*model.Document, n)
	for i := range docs {
		doc := model.NewDocument(i, "official_text")
		doc.PageID = strconv.Itoa(100 + i)
		doc.Wikitext = "Абзац номер '''" + strconv.Itoa(i) + "'''."
		docs[i] = doc
	}
	return docs
}

// parseFactory returns a factory producing single-step parse pipelines.
func parseFactory() func() *Pipeline {
	return func() *Pipeline {
		p := New()
		p.AddStep(NewParseStep(wikitext.NewParser()))
		return p
	}
}

// TestBatchProcessorProcessBatch tests concurrent document processing.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("processes all documents in place", func(t *testing.T) {
		t.Parallel()

		docs := sampleDocs(20)
		bp := NewBatchProcessor(parseFactory(), WithConcurrency(4))

		stats, err := bp.ProcessBatch(context.Background(), docs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if stats.Processed != 20 {
			t.Errorf("got %d processed, expected 20", stats.Processed)
		}
		for i, doc := range docs {
			expected := "Абзац номер " + strconv.Itoa(i) + "."
			if doc.Text != expected {
				t.Errorf("document %d: got %q, expected %q", i, doc.Text, expected)
			}
		}
	})

	t.Run("counts skipped documents", func(t *testing.T) {
		t.Parallel()

		docs := sampleDocs(3)
		docs[1].Wikitext = complexWikitext()

		bp := NewBatchProcessor(parseFactory(), WithConcurrency(2))
		stats, err := bp.ProcessBatch(context.Background(), docs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if stats.Skipped != 1 {
			t.Errorf("got %d skipped, expected 1", stats.Skipped)
		}
		if !docs[1].Skipped {
			t.Error("expected the complex document to be marked skipped")
		}
	})

	t.Run("counts failed documents without stopping", func(t *testing.T) {
		t.Parallel()

		docs := sampleDocs(5)
		factory := func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "flaky", doFunc: func(_ context.Context, doc *model.Document) error {
				if doc.Row == 2 {
					return errors.New("document broke")
				}
				return nil
			}})
			return p
		}

		bp := NewBatchProcessor(factory, WithConcurrency(2))
		stats, err := bp.ProcessBatch(context.Background(), docs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if stats.Failed != 1 {
			t.Errorf("got %d failed, expected 1", stats.Failed)
		}
		if stats.Processed != 5 {
			t.Errorf("got %d processed, expected 5", stats.Processed)
		}
		if docs[2].ErrorMessage != "document broke" {
			t.Errorf("got %q, expected the recorded error", docs[2].ErrorMessage)
		}
	})

	t.Run("respects the concurrency limit", func(t *testing.T) {
		t.Parallel()

		var active, peak int64
		var mu sync.Mutex

		factory := func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "counting", doFunc: func(_ context.Context, _ *model.Document) error {
				n := atomic.AddInt64(&active, 1)
				mu.Lock()
				if n > peak {
					peak = n
				}
				mu.Unlock()
				atomic.AddInt64(&active, -1)
				return nil
			}})
			return p
		}

		bp := NewBatchProcessor(factory, WithConcurrency(2))
		if _, err := bp.ProcessBatch(context.Background(), sampleDocs(30)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mu.Lock()
		defer mu.Unlock()
		if peak > 2 {
			t.Errorf("got peak concurrency %d, expected at most 2", peak)
		}
	})

	t.Run("canceled context stops the batch", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bp := NewBatchProcessor(parseFactory())
		if _, err := bp.ProcessBatch(ctx, sampleDocs(10)); err == nil {
			t.Error("expected a context error")
		}
	})
}

// TestBatchProcessorCallback tests the streaming callback variant.
func TestBatchProcessorCallback(t *testing.T) {
	t.Parallel()

	docs := sampleDocs(10)
	bp := NewBatchProcessor(parseFactory(), WithConcurrency(3))

	var mu sync.Mutex
	seen := make(map[int]bool)

	err := bp.ProcessBatchWithCallback(context.Background(), docs, func(doc *model.Document, index int) {
		mu.Lock()
		defer mu.Unlock()
		seen[index] = true
		if doc.Row != index {
			t.Errorf("callback index %d does not match document row %d", index, doc.Row)
		}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != 10 {
		t.Errorf("got %d callbacks, expected 10", len(seen))
	}
}

// complexWikitext builds an input that trips the complexity guard.
func complexWikitext() string {
	return strings.Repeat("|-\n", 51) + strings.Repeat("{{x}} ", 201)
}
