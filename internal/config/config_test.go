package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/patrickprogramme/ankiclip/internal/note"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ankiclip.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalConfig = `
deck: Mining
model: Japanese
fields:
  sentence: Sentence
`

func TestLoad_DefaultsPreserved(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Deck != "Mining" {
		t.Errorf("Deck = %q", cfg.Deck)
	}
	// champs absents : valeurs par défaut conservées
	if cfg.AnkiConnectURL != "http://127.0.0.1:8765" {
		t.Errorf("AnkiConnectURL = %q", cfg.AnkiConnectURL)
	}
	if cfg.MergeOrder != "append" {
		t.Errorf("MergeOrder = %q", cfg.MergeOrder)
	}
	if cfg.SnapshotExt != ".webp" {
		t.Errorf("SnapshotExt = %q", cfg.SnapshotExt)
	}
}

func TestLoad_NormalizesValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
merge_order: " PREPEND "
snapshot_ext: jpg
audio_padding: -1
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MergeOrder != "prepend" {
		t.Errorf("MergeOrder = %q; want prepend", cfg.MergeOrder)
	}
	if cfg.SnapshotExt != ".jpg" {
		t.Errorf("SnapshotExt = %q; want .jpg", cfg.SnapshotExt)
	}
	if cfg.AudioPadding != 0 {
		t.Errorf("AudioPadding = %v; want clamped to 0", cfg.AudioPadding)
	}
}

func TestLoad_RejectsUnknownEnums(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "merge_order", body: "merge_order: sideways"},
		{name: "pronunciation", body: "pronunciation: sometimes"},
		{name: "forvo_format", body: "forvo_format: flac"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, minimalConfig+tc.body+"\n"))
			if err == nil {
				t.Errorf("want validation error for %s", tc.name)
			}
		})
	}
}

func TestLoad_RequiresSentenceField(t *testing.T) {
	_, err := Load(writeConfig(t, `
deck: Mining
model: Japanese
fields:
  sentence: ""
`))
	if err == nil || !strings.Contains(err.Error(), "sentence") {
		t.Errorf("err = %v; want missing sentence field error", err)
	}
}

func TestTypedAccessors(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
deck: Mining
model: Japanese
merge_order: prepend
pronunciation: always
fields:
  sentence: Sentence
  audio: Audio
  vocabulary_audio: Audio
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MergeOrderValue() != note.PrependNew {
		t.Error("MergeOrderValue != PrependNew")
	}
	if cfg.PronunciationPolicy() != note.PronAlways {
		t.Error("PronunciationPolicy != PronAlways")
	}
	names := cfg.FieldNames()
	if names.VocabAudio != names.Audio {
		t.Error("aliased vocabulary_audio should map onto the audio field")
	}
}
