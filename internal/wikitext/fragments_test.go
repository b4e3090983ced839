package wikitext

import "testing"

// TestRemoveImageFragments tests scrubbing of leaked image markup.
func TestRemoveImageFragments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "literal russian file link removed",
			in:   "до [[Файл:Kremlin.jpg|мини]] после",
			want: "до  после",
		},
		{
			name: "literal english file link removed",
			in:   "до [[File:Map.png|thumb|Карта]] после",
			want: "до  после",
		},
		{
			name: "parameter line removed",
			in:   "строка до\n130px|мини|слева|Кремль зимой\nстрока после",
			want: "строка до\nстрока после",
		},
		{
			name: "indented parameter line removed",
			in:   "строка до\n  250px|thumb|right|подпись\nстрока после",
			want: "строка до\nстрока после",
		},
		{
			name: "bare size and thumb fragment removed",
			in:   "строка до\n130px|мини\nстрока после",
			want: "строка до\n\nстрока после",
		},
		{
			name: "alt fragment removed",
			in:   "строка до\nальт=Кремль|мини|вид сверху\nстрока после",
			want: "строка до\n\nстрока после",
		},
		{
			name: "normal pipe text kept",
			in:   "команда | файл",
			want: "команда | файл",
		},
		{
			name: "size without parameters kept",
			in:   "разрешение 130px годится",
			want: "разрешение 130px годится",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := removeImageFragments(tt.in); got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}

// TestCollapseNewlines tests blank-line run collapsing.
func TestCollapseNewlines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "three newlines collapse", in: "а\n\n\nб", want: "а\n\nб"},
		{name: "many newlines collapse", in: "а\n\n\n\n\n\nб", want: "а\n\nб"},
		{name: "double newline kept", in: "а\n\nб", want: "а\n\nб"},
		{name: "single newline kept", in: "а\nб", want: "а\nб"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := collapseNewlines(tt.in); got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}
