package wikitext

import (
	"strings"
	"testing"
)

// TestIsStructuralHeading tests recognition of content-free headings.
func TestIsStructuralHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		paragraph string
		want      bool
	}{
		{paragraph: "Примечания", want: true},
		{paragraph: "Ссылки", want: true},
		{paragraph: "См. также", want: true},
		{paragraph: "Категория:Города России", want: true},
		{paragraph: "История", want: false},
		{paragraph: "Примечания автора", want: false},
		{paragraph: "", want: false},
	}

	for _, tt := range tests {
		if got := isStructuralHeading(tt.paragraph); got != tt.want {
			t.Errorf("isStructuralHeading(%q) = %v, expected %v", tt.paragraph, got, tt.want)
		}
	}
}

// TestRemoveEmptySections tests pruning of dangling structural headings.
func TestRemoveEmptySections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "trailing heading dropped",
			in:   []string{"Текст.", "Примечания"},
			want: []string{"Текст."},
		},
		{
			name: "heading with content kept",
			in:   []string{"Примечания", "Сноска раз."},
			want: []string{"Примечания", "Сноска раз."},
		},
		{
			name: "run of structural headings dropped",
			in:   []string{"Текст.", "Ссылки", "Примечания", "Категория:Города"},
			want: []string{"Текст."},
		},
		{
			name: "category with content after survives",
			in:   []string{"Категория:Города", "Основной текст."},
			want: []string{"Категория:Города", "Основной текст."},
		},
		{
			name: "ordinary headings untouched",
			in:   []string{"История", "Город основан."},
			want: []string{"История", "Город основан."},
		},
		{
			name: "single structural heading dropped",
			in:   []string{"Население"},
			want: []string{},
		},
		{
			name: "empty input",
			in:   []string{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := removeEmptySections(tt.in)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("got %v, expected %v", got, tt.want)
			}
		})
	}
}
