package note

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

var testNames = FieldNames{
	Sentence:   "Sentence",
	Secondary:  "Translation",
	Image:      "Image",
	Audio:      "Audio",
	Vocabulary: "Word",
	VocabAudio: "WordAudio",
	MiscInfo:   "Notes",
}

// --- Tests pour Build --------------------------------------------------------

func TestBuild_ConfiguredFieldsOnly(t *testing.T) {
	names := FieldNames{Sentence: "Sentence", Audio: "Audio"} // pas d'image ni de misc
	got := Build(names, BuildInput{
		SentenceText: "hello",
		SnapshotName: "x.webp",
		AudioName:    "x.mp3",
		MiscInfo:     "ep 5",
	})

	if got["Sentence"] != "hello" {
		t.Errorf("Sentence = %q; want %q", got["Sentence"], "hello")
	}
	if got["Audio"] != "[sound:x.mp3]" {
		t.Errorf("Audio = %q; want %q", got["Audio"], "[sound:x.mp3]")
	}
	if _, ok := got["Image"]; ok {
		t.Error("Image field should be absent when not configured")
	}
	if _, ok := got["Notes"]; ok {
		t.Error("MiscInfo field should be absent when not configured")
	}
}

func TestBuild_ImageEmbedsSnapshotName(t *testing.T) {
	got := Build(testNames, BuildInput{SnapshotName: "show_00h01m05s250ms.webp"})
	want := `<img src="show_00h01m05s250ms.webp">`
	if got["Image"] != want {
		t.Errorf("Image = %q; want %q", got["Image"], want)
	}
}

// --- Tests pour parseAnchor ---------------------------------------------------

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
		want anchor
	}{
		{
			name: "simple span",
			in:   "abc<b>target</b>def",
			ok:   true,
			want: anchor{prefix: "abc", openTag: "<b>", content: "target", closeTag: "</b>", suffix: "def"},
		},
		{
			name: "span only",
			in:   `<span class="hl">x</span>`,
			ok:   true,
			want: anchor{openTag: `<span class="hl">`, content: "x", closeTag: "</span>"},
		},
		{
			name: "no markup",
			in:   "plain text",
			ok:   false,
		},
		{
			name: "two spans is not a single anchor",
			in:   "<b>a</b> and <b>b</b>",
			ok:   false,
		},
		{
			name: "empty string",
			in:   "",
			ok:   false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseAnchor(tc.in)
			if ok != tc.ok {
				t.Fatalf("parseAnchor(%q) ok = %v; want %v", tc.in, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Errorf("parseAnchor(%q) = %+v; want %+v", tc.in, got, tc.want)
			}
		})
	}
}

// --- Tests pour Merge ---------------------------------------------------------

func mergeOpts() MergeOptions {
	return MergeOptions{
		Names:  testNames,
		Policy: PronNever,
		Now:    func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestMerge_HighlightingRoundTrip(t *testing.T) {
	stored := Stored{ID: 1, Fields: Fields{"Sentence": "abc<b>target</b>def"}}
	fresh := Fields{"Sentence": "xyztargetuvw"}

	got := Merge(context.Background(), fresh, stored, mergeOpts())
	if got["Sentence"] != "xyz<b>target</b>uvw" {
		t.Errorf("Sentence = %q; want %q", got["Sentence"], "xyz<b>target</b>uvw")
	}
}

func TestMerge_HighlightingIdempotent(t *testing.T) {
	// fusionner une note avec sa propre copie laisse le champ phrase intact
	sentence := "abc<b>target</b>def"
	stored := Stored{ID: 1, Fields: Fields{"Sentence": sentence}}
	fresh := Fields{"Sentence": sentence}

	got := Merge(context.Background(), fresh, stored, mergeOpts())
	if got["Sentence"] != sentence {
		t.Errorf("Sentence = %q; want unchanged %q", got["Sentence"], sentence)
	}
}

func TestMerge_NeverErasesStoredSentenceWithBlank(t *testing.T) {
	stored := Stored{ID: 1, Fields: Fields{"Sentence": "manually typed"}}
	fresh := Fields{"Sentence": ""}

	got := Merge(context.Background(), fresh, stored, mergeOpts())
	if got["Sentence"] != "manually typed" {
		t.Errorf("Sentence = %q; want stored text preserved", got["Sentence"])
	}
}

func TestMerge_NoAnchorLeavesFreshUnchanged(t *testing.T) {
	stored := Stored{ID: 1, Fields: Fields{"Sentence": "no markup here"}}
	fresh := Fields{"Sentence": "new text"}

	got := Merge(context.Background(), fresh, stored, mergeOpts())
	if got["Sentence"] != "new text" {
		t.Errorf("Sentence = %q; want %q", got["Sentence"], "new text")
	}
}

func TestMerge_AnchorContentAbsentLeavesFreshUnchanged(t *testing.T) {
	stored := Stored{ID: 1, Fields: Fields{"Sentence": "a<b>missing</b>z"}}
	fresh := Fields{"Sentence": "completely different"}

	got := Merge(context.Background(), fresh, stored, mergeOpts())
	if got["Sentence"] != "completely different" {
		t.Errorf("Sentence = %q; want %q", got["Sentence"], "completely different")
	}
}

func TestMerge_EmptySentenceFallbackEmbedsTimestamp(t *testing.T) {
	stored := Stored{ID: 1, Fields: Fields{"Sentence": ""}}
	fresh := Fields{"Sentence": ""}

	got := Merge(context.Background(), fresh, stored, mergeOpts())
	if got["Sentence"] == "" {
		t.Fatal("Sentence should receive a diagnostic placeholder")
	}
	if !strings.Contains(got["Sentence"], "2024-03-01 12:00:00") {
		t.Errorf("placeholder %q should embed the current time", got["Sentence"])
	}
}

func TestMerge_MediaConcatOrder(t *testing.T) {
	stored := Stored{ID: 1, Fields: Fields{
		"Sentence": "s",
		"Audio":    "[sound:old.mp3]",
		"Image":    `<img src="old.webp">`,
	}}
	fresh := Fields{
		"Sentence": "s",
		"Audio":    "[sound:new.mp3]",
	}

	opts := mergeOpts()
	opts.Concat = true
	opts.Order = AppendNew
	got := Merge(context.Background(), fresh, stored, opts)
	if got["Audio"] != "[sound:old.mp3][sound:new.mp3]" {
		t.Errorf("Audio append = %q", got["Audio"])
	}
	// côté frais vide : le stocké est repris tel quel
	if got["Image"] != `<img src="old.webp">` {
		t.Errorf("Image = %q; want stored value kept", got["Image"])
	}

	opts.Order = PrependNew
	got = Merge(context.Background(), fresh, stored, opts)
	if got["Audio"] != "[sound:new.mp3][sound:old.mp3]" {
		t.Errorf("Audio prepend = %q", got["Audio"])
	}
}

func TestMerge_NoConcatWithoutRequest(t *testing.T) {
	stored := Stored{ID: 1, Fields: Fields{"Sentence": "s", "Audio": "[sound:old.mp3]"}}
	fresh := Fields{"Sentence": "s", "Audio": "[sound:new.mp3]"}

	got := Merge(context.Background(), fresh, stored, mergeOpts())
	if got["Audio"] != "[sound:new.mp3]" {
		t.Errorf("Audio = %q; stored media must not leak without Concat", got["Audio"])
	}
}

// fakePron renvoie une référence fixe, et enregistre le mot demandé.
type fakePron struct {
	ref   string
	err   error
	words []string
}

func (p *fakePron) Lookup(_ context.Context, word string) (string, error) {
	p.words = append(p.words, word)
	return p.ref, p.err
}

func TestMerge_PronunciationAliasingPrepends(t *testing.T) {
	// champ de prononciation == champ audio principal : la référence est
	// préfixée, l'audio de phrase capturé n'est jamais remplacé
	names := testNames
	names.VocabAudio = names.Audio

	stored := Stored{ID: 1, Fields: Fields{
		"Sentence": "s",
		"Word":     "<b>言葉</b>",
		"Audio":    "",
	}}
	fresh := Fields{"Sentence": "s", "Audio": "[sound:sentence.mp3]"}

	pron := &fakePron{ref: "[sound:pron_言葉.mp3]"}
	opts := mergeOpts()
	opts.Names = names
	opts.Policy = PronIfEmpty
	opts.Pron = pron

	got := Merge(context.Background(), fresh, stored, opts)
	want := "[sound:pron_言葉.mp3][sound:sentence.mp3]"
	if got["Audio"] != want {
		t.Errorf("Audio = %q; want %q", got["Audio"], want)
	}
	// le mot demandé est le vocabulaire stocké, balises retirées
	if len(pron.words) != 1 || pron.words[0] != "言葉" {
		t.Errorf("looked-up words = %v; want [言葉]", pron.words)
	}
}

func TestMerge_PronunciationSeparateField(t *testing.T) {
	stored := Stored{ID: 1, Fields: Fields{
		"Sentence":  "s",
		"Word":      "言葉",
		"WordAudio": "",
	}}
	fresh := Fields{"Sentence": "s"}

	opts := mergeOpts()
	opts.Policy = PronIfEmpty
	opts.Pron = &fakePron{ref: "[sound:p.mp3]"}

	got := Merge(context.Background(), fresh, stored, opts)
	if got["WordAudio"] != "[sound:p.mp3]" {
		t.Errorf("WordAudio = %q; want %q", got["WordAudio"], "[sound:p.mp3]")
	}
}

func TestMerge_PronunciationSkippedWhenStoredAudioPresent(t *testing.T) {
	stored := Stored{ID: 1, Fields: Fields{
		"Sentence":  "s",
		"Word":      "言葉",
		"WordAudio": "[sound:existing.mp3]",
	}}
	fresh := Fields{"Sentence": "s"}

	pron := &fakePron{ref: "[sound:p.mp3]"}
	opts := mergeOpts()
	opts.Policy = PronIfEmpty
	opts.Pron = pron

	got := Merge(context.Background(), fresh, stored, opts)
	if len(pron.words) != 0 {
		t.Errorf("lookup should be skipped when stored audio exists (policy if-empty)")
	}
	if _, ok := got["WordAudio"]; ok {
		t.Error("WordAudio should not be written in fresh fields")
	}
}

func TestMerge_PronunciationAlwaysOverridesExisting(t *testing.T) {
	stored := Stored{ID: 1, Fields: Fields{
		"Sentence":  "s",
		"Word":      "言葉",
		"WordAudio": "[sound:existing.mp3]",
	}}
	fresh := Fields{"Sentence": "s"}

	opts := mergeOpts()
	opts.Policy = PronAlways
	opts.Pron = &fakePron{ref: "[sound:p.mp3]"}

	got := Merge(context.Background(), fresh, stored, opts)
	if got["WordAudio"] != "[sound:p.mp3]" {
		t.Errorf("WordAudio = %q; want fresh reference under policy always", got["WordAudio"])
	}
}

func TestMerge_PronunciationLookupFailureIsIgnored(t *testing.T) {
	stored := Stored{ID: 1, Fields: Fields{
		"Sentence":  "s",
		"Word":      "言葉",
		"WordAudio": "",
	}}
	fresh := Fields{"Sentence": "s"}

	opts := mergeOpts()
	opts.Policy = PronIfEmpty
	opts.Pron = &fakePron{err: errors.New("network down")}

	got := Merge(context.Background(), fresh, stored, opts)
	if _, ok := got["WordAudio"]; ok {
		t.Error("a failed lookup must not write anything")
	}
	if got["Sentence"] != "s" {
		t.Errorf("Sentence = %q; merge must continue past a failed lookup", got["Sentence"])
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	stored := Stored{ID: 1, Fields: Fields{"Sentence": "abc<b>t</b>d"}}
	fresh := Fields{"Sentence": "xtx"}

	_ = Merge(context.Background(), fresh, stored, mergeOpts())
	if fresh["Sentence"] != "xtx" {
		t.Errorf("fresh mutated: %q", fresh["Sentence"])
	}
}
