package filename

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00h00m00s000ms"},
		{65.25, "00h01m05s250ms"},
		{3599.999, "00h59m59s999ms"},
		{3600, "01h00m00s000ms"},
		{-5, "00h00m00s000ms"},
	}
	for _, tc := range tests {
		if got := Timestamp(tc.in); got != tc.want {
			t.Errorf("Timestamp(%v) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestFactory_CeilingHolds(t *testing.T) {
	// propriété : pour toute base, len(résultat) <= MaxNameBytes en octets
	bases := []string{
		"short",
		strings.Repeat("a", 300),
		strings.Repeat("タイトルが長い", 40),
		"Ép" + strings.Repeat("é", 150), // 2 octets par caractère
		"",
	}
	for _, base := range bases {
		f := New(base)
		audio := f.Audio(0, 3725.5, ".mp3")
		snap := f.Snapshot(3725.5, ".webp")
		if len(audio) > MaxNameBytes {
			t.Errorf("audio name %d bytes > %d: %q", len(audio), MaxNameBytes, audio)
		}
		if len(snap) > MaxNameBytes {
			t.Errorf("snapshot name %d bytes > %d: %q", len(snap), MaxNameBytes, snap)
		}
		if !utf8.ValidString(audio) || !utf8.ValidString(snap) {
			t.Errorf("truncation produced invalid UTF-8 for base %q", base)
		}
	}
}

func TestFactory_ShortBaseUnchanged(t *testing.T) {
	f := New("Show - 12.mkv")
	got := f.Audio(1, 2, ".mp3")
	want := "Show - 12_" + Timestamp(1) + "-" + Timestamp(2) + ".mp3"
	if got != want {
		t.Errorf("Audio = %q; want %q", got, want)
	}
}

func TestFactory_SuffixGrammar(t *testing.T) {
	f := New("x")
	audio := f.Audio(61.5, 65.0, ".mp3")
	if audio != "x_00h01m01s500ms-00h01m05s000ms.mp3" {
		t.Errorf("audio suffix grammar: got %q", audio)
	}
	snap := f.Snapshot(61.5, ".webp")
	if snap != "x_00h01m01s500ms.webp" {
		t.Errorf("snapshot suffix grammar: got %q", snap)
	}
}

func TestFactory_WideScriptTruncation(t *testing.T) {
	f := New(strings.Repeat("日本語のタイトル", 30))
	got := f.Snapshot(0, ".webp")
	if len(got) > MaxNameBytes {
		t.Fatalf("name %d bytes > %d", len(got), MaxNameBytes)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "_00h00m00s000ms.webp") {
		t.Errorf("suffix lost after truncation: %q", got)
	}
}

func TestFactory_FallbackWhenNothingFits(t *testing.T) {
	f := New(" . ") // la base sanitisée "media" fittera; forcer le cas budget nul
	f.base = ""
	got := f.withSuffix(strings.Repeat("_", MaxNameBytes+1))
	if !strings.HasPrefix(got, "clip_") {
		t.Errorf("want fallback name, got %q", got)
	}
}
