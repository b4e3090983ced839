package wikitext

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestParserParse tests end-to-end conversion of wikitext into plain
// paragraph text.
func TestParserParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		wikitext string
		want     string
	}{
		{
			name:     "plain paragraphs survive",
			wikitext: "Первый абзац.\n\nВторой абзац.",
			want:     "Первый абзац.\n\nВторой абзац.",
		},
		{
			name:     "bold and italic markers vanish",
			wikitext: "'''Москва''' — ''столица'' России.",
			want:     "Москва — столица России.",
		},
		{
			name:     "internal link keeps display text",
			wikitext: "Родился в [[Симбирск|Симбирске]].",
			want:     "Родился в Симбирске.",
		},
		{
			name:     "internal link without pipe keeps target",
			wikitext: "Жил в [[Москва]] и работал.",
			want:     "Жил в Москва и работал.",
		},
		{
			name:     "heading becomes its own paragraph",
			wikitext: "== История ==\nГород основан в 1147 году.",
			want:     "История\n\nГород основан в 1147 году.",
		},
		{
			name:     "heading splits a paragraph",
			wikitext: "Текст до.\n== Раздел ==\nТекст после.",
			want:     "Текст до.\n\nРаздел\n\nТекст после.",
		},
		{
			name:     "template is dropped as structure",
			wikitext: "Статья {{Шаблон|арг}} продолжается.",
			want:     "Статья  продолжается.",
		},
		{
			name:     "nested template is dropped whole",
			wikitext: "До {{внешний|{{внутренний}}}} после.",
			want:     "До  после.",
		},
		{
			name:     "unclosed template leaks literally",
			wikitext: "Осталось {{незакрытый шаблон.",
			want:     "Осталось {{незакрытый шаблон.",
		},
		{
			name:     "reference is dropped with its content",
			wikitext: "Факт.<ref>Источник, 1987.</ref> Дальше.",
			want:     "Факт. Дальше.",
		},
		{
			name:     "self-closing reference is dropped",
			wikitext: "Факт.<ref name=\"a\" /> Дальше.",
			want:     "Факт. Дальше.",
		},
		{
			name:     "comment is dropped",
			wikitext: "Видимый<!-- скрытый --> текст.",
			want:     "Видимый текст.",
		},
		{
			name:     "table is dropped whole",
			wikitext: "До таблицы.\n{| class=\"wikitable\"\n|-\n! Год\n|-\n| 1917\n|}\nПосле таблицы.",
			want:     "До таблицы.\nПосле таблицы.",
		},
		{
			name:     "list items fold into the paragraph",
			wikitext: "Города:\n* Москва\n* Казань\nКонец списка.",
			want:     "Города:\nМосква Казань Конец списка.",
		},
		{
			name:     "english file link is dropped whole",
			wikitext: "Текст [[File:Map.png|thumb|Карта]] дальше.",
			want:     "Текст  дальше.",
		},
		{
			name:     "russian file link without pipe is dropped",
			wikitext: "Текст [[Файл:Kremlin.jpg]] дальше.",
			want:     "Текст  дальше.",
		},
		{
			name:     "leaked image parameter line is scrubbed",
			wikitext: "Текст до.\n[[Файл:Kremlin.jpg|130px|мини|слева|Кремль]]\nТекст после.",
			want:     "Текст до.\nТекст после.",
		},
		{
			name:     "external http link vanishes with its label",
			wikitext: "Смотрите [http://example.com сайт города] здесь.",
			want:     "Смотрите  здесь.",
		},
		{
			name:     "trailing category paragraph is pruned",
			wikitext: "Текст статьи.\n\n[[Категория:Города России]]",
			want:     "Текст статьи.",
		},
		{
			name:     "trailing structural sections are pruned",
			wikitext: "Текст статьи.\n\n== Примечания ==\n\n== Ссылки ==",
			want:     "Текст статьи.",
		},
		{
			name:     "structural section with content is kept",
			wikitext: "Текст.\n\n== Литература ==\nСписок книг по теме.",
			want:     "Текст.\n\nЛитература\n\nСписок книг по теме.",
		},
		{
			name:     "redirect page has no text",
			wikitext: "#ПЕРЕНАПРАВЛЕНИЕ [[Москва]]",
			want:     "",
		},
		{
			name:     "empty input",
			wikitext: "",
			want:     "",
		},
		{
			name:     "whitespace only input",
			wikitext: "  \n\n \t\n",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewParser()
			if got := p.Parse(tt.wikitext); got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}

// TestParserSkipLists tests the list handling option.
func TestParserSkipLists(t *testing.T) {
	t.Parallel()

	const wikitext = "Города:\n* Москва\n* Казань\nКонец списка."

	t.Run("lists folded by default", func(t *testing.T) {
		t.Parallel()

		got := NewParser().Parse(wikitext)
		expected := "Города:\nМосква Казань Конец списка."
		if got != expected {
			t.Errorf("got %q, expected %q", got, expected)
		}
	})

	t.Run("lists dropped when skipping", func(t *testing.T) {
		t.Parallel()

		got := NewParser(WithSkipLists(true)).Parse(wikitext)
		expected := "Города:\nКонец списка."
		if got != expected {
			t.Errorf("got %q, expected %q", got, expected)
		}
	})
}

// TestParserComplexityGuard tests that pathological articles are skipped
// with the marker text instead of being parsed.
func TestParserComplexityGuard(t *testing.T) {
	t.Parallel()

	manyRows := strings.Repeat("|-\n", 51)

	t.Run("table heavy with many templates", func(t *testing.T) {
		t.Parallel()

		text, skipped := NewParser().ParseChecked(manyRows + strings.Repeat("{{x}} ", 201))
		if !skipped {
			t.Error("expected the article to be skipped")
		}
		if text != SkipComplexMarker {
			t.Errorf("got %q, expected %q", text, SkipComplexMarker)
		}
	})

	t.Run("table heavy with many file links", func(t *testing.T) {
		t.Parallel()

		_, skipped := NewParser().ParseChecked(manyRows + strings.Repeat("[[Файл:x.jpg]]\n", 51))
		if !skipped {
			t.Error("expected the article to be skipped")
		}
	})

	t.Run("templates at the threshold pass", func(t *testing.T) {
		t.Parallel()

		_, skipped := NewParser().ParseChecked(manyRows + strings.Repeat("{{x}} ", 200))
		if skipped {
			t.Error("did not expect the article to be skipped")
		}
	})

	t.Run("many templates without tables pass", func(t *testing.T) {
		t.Parallel()

		_, skipped := NewParser().ParseChecked(strings.Repeat("{{x}} ", 500))
		if skipped {
			t.Error("did not expect the article to be skipped")
		}
	})

	t.Run("skip is logged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		p := NewParser(WithLogger(logger))
		p.Parse(manyRows + strings.Repeat("[[File:x.jpg]]\n", 51))

		if !strings.Contains(buf.String(), "too complex") {
			t.Errorf("expected a skip warning in the log, got %q", buf.String())
		}
	})
}

// TestSplitParagraphs tests blank-line splitting and trimming.
func TestSplitParagraphs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two paragraphs",
			text: "один\n\nдва",
			want: []string{"один", "два"},
		},
		{
			name: "surrounding whitespace trimmed",
			text: "  один \n\n\tдва\n",
			want: []string{"один", "два"},
		},
		{
			name: "empty parts dropped",
			text: "один\n\n\n\nдва\n\n  \n\n",
			want: []string{"один", "два"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := splitParagraphs(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d paragraphs, expected %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("paragraph %d: got %q, expected %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
