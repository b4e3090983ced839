package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/wikiextract/internal/model"
	"github.com/nao1215/wikiextract/internal/wikitext"
)

// TestTimeoutMarker tests the timeout placeholder text.
func TestTimeoutMarker(t *testing.T) {
	t.Parallel()

	got := TimeoutMarker(30 * time.Second)
	expected := "[Article skipped: parsing timeout after 30 seconds]"
	if got != expected {
		t.Errorf("got %q, expected %q", got, expected)
	}
}

// TestParseStep tests wikitext parsing through the pipeline step.
func TestParseStep(t *testing.T) {
	t.Parallel()

	t.Run("parses wikitext into text", func(t *testing.T) {
		t.Parallel()

		doc := model.NewDocument(0, "official_text")
		doc.Wikitext = "'''Москва''' — столица [[Россия|России]]."

		step := NewParseStep(wikitext.NewParser())
		if err := step.Do(context.Background(), doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := "Москва — столица России."
		if doc.Text != expected {
			t.Errorf("got %q, expected %q", doc.Text, expected)
		}
		if doc.Skipped || doc.TimedOut {
			t.Error("did not expect skip or timeout flags")
		}
	})

	t.Run("null document passes through", func(t *testing.T) {
		t.Parallel()

		doc := model.NewDocument(0, "clone_text")
		doc.Null = true

		step := NewParseStep(wikitext.NewParser())
		if err := step.Do(context.Background(), doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if doc.Text != "" {
			t.Errorf("got %q, expected empty text", doc.Text)
		}
		if !doc.Null {
			t.Error("expected the document to stay null")
		}
	})

	t.Run("complex article is marked skipped", func(t *testing.T) {
		t.Parallel()

		doc := model.NewDocument(0, "official_text")
		doc.Wikitext = strings.Repeat("|-\n", 51) + strings.Repeat("{{x}} ", 201)

		step := NewParseStep(wikitext.NewParser())
		if err := step.Do(context.Background(), doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !doc.Skipped {
			t.Error("expected the document to be skipped")
		}
		if doc.Text != wikitext.SkipComplexMarker {
			t.Errorf("got %q, expected the skip marker", doc.Text)
		}
	})

	t.Run("timeout replaces text with marker", func(t *testing.T) {
		t.Parallel()

		doc := model.NewDocument(0, "official_text")
		doc.Wikitext = strings.Repeat("текст [[ссылка|показ]] и ''ещё'' немного. ", 50000)

		step := NewParseStep(wikitext.NewParser(), WithParseTimeout(time.Nanosecond))
		if err := step.Do(context.Background(), doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !doc.TimedOut {
			t.Error("expected the document to time out")
		}
		if !strings.Contains(doc.Text, "parsing timeout") {
			t.Errorf("got %q, expected a timeout marker", doc.Text)
		}
	})

	t.Run("zero timeout disables the limit", func(t *testing.T) {
		t.Parallel()

		doc := model.NewDocument(0, "official_text")
		doc.Wikitext = "Абзац."

		step := NewParseStep(wikitext.NewParser(), WithParseTimeout(0))
		if err := step.Do(context.Background(), doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if doc.Text != "Абзац." {
			t.Errorf("got %q, expected %q", doc.Text, "Абзац.")
		}
		if doc.TimedOut {
			t.Error("did not expect a timeout")
		}
	})

	t.Run("canceled context aborts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		doc := model.NewDocument(0, "official_text")
		doc.Wikitext = strings.Repeat("текст [[ссылка|показ]] и ''ещё'' немного. ", 50000)

		step := NewParseStep(wikitext.NewParser(), WithParseTimeout(time.Minute))
		if err := step.Do(ctx, doc); err == nil {
			t.Error("expected a context error")
		}
	})

	t.Run("step name", func(t *testing.T) {
		t.Parallel()

		if name := NewParseStep(wikitext.NewParser()).Name(); name != "parse" {
			t.Errorf("got %q, expected %q", name, "parse")
		}
	})
}

// TestCleanStep tests markup cleanup through the pipeline step.
func TestCleanStep(t *testing.T) {
	t.Parallel()

	t.Run("cleans template remnants", func(t *testing.T) {
		t.Parallel()

		doc := model.NewDocument(0, "official_text_paragraphs")
		doc.Text = "Текст {{сломанный}} и } конец."

		step := NewCleanStep(wikitext.NewCleaner())
		if err := step.Do(context.Background(), doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := "Текст  и  конец."
		if doc.Text != expected {
			t.Errorf("got %q, expected %q", doc.Text, expected)
		}
	})

	t.Run("null document passes through", func(t *testing.T) {
		t.Parallel()

		doc := model.NewDocument(0, "clone_text_paragraphs")
		doc.Null = true

		step := NewCleanStep(wikitext.NewCleaner())
		if err := step.Do(context.Background(), doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if doc.Text != "" {
			t.Errorf("got %q, expected empty text", doc.Text)
		}
	})

	t.Run("step name", func(t *testing.T) {
		t.Parallel()

		if name := NewCleanStep(wikitext.NewCleaner()).Name(); name != "clean" {
			t.Errorf("got %q, expected %q", name, "clean")
		}
	})

	t.Run("composes after parse", func(t *testing.T) {
		t.Parallel()

		doc := model.NewDocument(0, "official_text")
		doc.Wikitext = "Текст {{сломан и [[Москва|столица]]."

		p := New()
		p.AddSteps(
			NewParseStep(wikitext.NewParser()),
			NewCleanStep(wikitext.NewCleaner()),
		)

		if err := p.Execute(context.Background(), doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := "Текст сломан и столица."
		if doc.Text != expected {
			t.Errorf("got %q, expected %q", doc.Text, expected)
		}
		if len(doc.AppliedSteps) != 2 {
			t.Errorf("got %d applied steps, expected 2", len(doc.AppliedSteps))
		}
	})
}
