package extractor

import (
	"strings"
	"testing"
)

func TestSnapshotArgs(t *testing.T) {
	f := New("ffmpeg")
	f.SnapshotWidth = 800
	args := f.snapshotArgs("movie.mkv", 65.25, "out.webp")

	joined := strings.Join(args, " ")
	for _, want := range []string{"-ss 65.250", "-i movie.mkv", "-vframes 1", "scale=800:-1", "out.webp"} {
		if !strings.Contains(joined, want) {
			t.Errorf("snapshot args %q missing %q", joined, want)
		}
	}
}

func TestAudioArgs_PaddingClampedAtZero(t *testing.T) {
	f := New("")
	f.AudioPadding = 0.5
	args := f.audioArgs("movie.mkv", 0.2, 3.0, "out.mp3")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-ss 0.000") {
		t.Errorf("start should clamp at 0: %q", joined)
	}
	if !strings.Contains(joined, "-to 3.500") {
		t.Errorf("end should include padding: %q", joined)
	}
	if !strings.Contains(joined, "-vn") {
		t.Errorf("audio clip must drop the video stream: %q", joined)
	}
}

func TestAudioArgs_Bitrate(t *testing.T) {
	f := New("")
	f.AudioBitrate = "64k"
	joined := strings.Join(f.audioArgs("m.mkv", 1, 2, "o.mp3"), " ")
	if !strings.Contains(joined, "-b:a 64k") {
		t.Errorf("bitrate missing: %q", joined)
	}
}
