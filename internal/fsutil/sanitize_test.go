package fsutil

import (
	"testing"
	"unicode/utf8"
)

// --- Tests pour SanitizeMediaTitle -----------------------------------------

func TestSanitizeMediaTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "extension stripped",
			in:   "Show Episode 03.mkv",
			want: "Show Episode 03",
		},
		{
			name: "bracketed annotations removed",
			in:   "[SubGroup] Show - 12 (1080p).mkv",
			want: "Show - 12",
		},
		{
			name: "invalid characters replaced",
			in:   `A:B/C*D?E.mp4`,
			want: "A B C D E",
		},
		{
			name: "empty becomes fallback",
			in:   "",
			want: "media",
		},
		{
			name: "annotations only becomes fallback",
			in:   "[foo](bar).mkv",
			want: "media",
		},
		{
			name: "trailing dots trimmed",
			in:   "Ending...",
			want: "Ending",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeMediaTitle(tc.in)
			if got != tc.want {
				t.Errorf("SanitizeMediaTitle(%q) = %q; want %q", tc.in, got, tc.want)
			}
		})
	}
}

// --- Tests pour TruncateRunes ----------------------------------------------

func TestTruncateRunes_NeverSplitsMultibyte(t *testing.T) {
	s := "日本語のタイトルです"
	for n := 0; n <= utf8.RuneCountInString(s)+2; n++ {
		out := TruncateRunes(s, n)
		if !utf8.ValidString(out) {
			t.Fatalf("TruncateRunes(%q, %d) produced invalid UTF-8: %q", s, n, out)
		}
	}
}

func TestTruncateRunes_TrimsTrailingWhitespace(t *testing.T) {
	got := TruncateRunes("hello world", 6)
	if got != "hello" {
		t.Errorf("TruncateRunes = %q; want %q", got, "hello")
	}
}

func TestBytesPerRune(t *testing.T) {
	if got := BytesPerRune("plain ascii title"); got != 1 {
		t.Errorf("BytesPerRune(ascii) = %d; want 1", got)
	}
	if got := BytesPerRune("タイトル"); got != 3 {
		t.Errorf("BytesPerRune(wide) = %d; want 3", got)
	}
	// mixte : la présence d'un seul caractère large suffit
	if got := BytesPerRune("Show 日本"); got != 3 {
		t.Errorf("BytesPerRune(mixed) = %d; want 3", got)
	}
}
