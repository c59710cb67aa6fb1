// Package extractor invoque ffmpeg pour produire les extraits média (capture
// d'image, clip audio). Le succès ou l'échec de l'extraction n'est jamais
// attendu par la soumission de note : l'appelant traite l'extraction en
// fire-and-forget.
package extractor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpeg représente la commande ffmpeg à exécuter (nom de binaire ou chemin)
// et les paramètres d'encodage.
type FFmpeg struct {
	Path            string  // binaire ou chemin résolu ; "ffmpeg" par défaut
	SnapshotWidth   int     // largeur de redimensionnement ; <=0 : pas de scale
	SnapshotQuality int     // qscale:v ; <=0 : 2
	AudioBitrate    string  // ex: "64k" ; "" : défaut de l'encodeur
	AudioPadding    float64 // secondes ajoutées de part et d'autre du clip
}

// New construit une instance avec les défauts raisonnables.
func New(path string) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{Path: path, SnapshotQuality: 2}
}

// CheckBinary vérifie que le binaire existe et est exécutable.
func (f *FFmpeg) CheckBinary() error {
	if f == nil || f.Path == "" {
		return fmt.Errorf("ffmpeg non initialisé")
	}
	if strings.ContainsRune(f.Path, os.PathSeparator) {
		info, err := os.Stat(f.Path)
		if err != nil {
			return fmt.Errorf("ffmpeg introuvable (%s) : %w", f.Path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("le chemin spécifié pour ffmpeg est un répertoire, pas un exécutable")
		}
		return nil
	}
	if _, err := exec.LookPath(f.Path); err != nil {
		return fmt.Errorf("ffmpeg introuvable dans le PATH : %w", err)
	}
	return nil
}

// CreateSnapshot extrait une image unique de source à l'instant secs et
// l'écrit dans outPath (le format est déduit de l'extension).
func (f *FFmpeg) CreateSnapshot(ctx context.Context, source string, secs float64, outPath string) error {
	args := f.snapshotArgs(source, secs, outPath)
	return f.run(ctx, args)
}

// CreateAudioClip extrait l'audio de source entre start et end (padding
// appliqué, borné à 0) et l'écrit dans outPath.
func (f *FFmpeg) CreateAudioClip(ctx context.Context, source string, start, end float64, outPath string) error {
	args := f.audioArgs(source, start, end, outPath)
	return f.run(ctx, args)
}

func (f *FFmpeg) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, f.Path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w, output: %s", err, string(out))
	}
	return nil
}

func (f *FFmpeg) snapshotArgs(source string, secs float64, outPath string) []string {
	if secs < 0 {
		secs = 0
	}
	args := []string{
		"-y",
		"-ss", formatSecs(secs),
		"-i", source,
		"-vframes", "1",
		"-qscale:v", strconv.Itoa(f.quality()),
	}
	if f.SnapshotWidth > 0 {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:-1", f.SnapshotWidth))
	}
	return append(args, outPath)
}

func (f *FFmpeg) audioArgs(source string, start, end float64, outPath string) []string {
	start -= f.AudioPadding
	end += f.AudioPadding
	if start < 0 {
		start = 0
	}
	args := []string{
		"-y",
		"-ss", formatSecs(start),
		"-to", formatSecs(end),
		"-i", source,
		"-vn",
	}
	if f.AudioBitrate != "" {
		args = append(args, "-b:a", f.AudioBitrate)
	}
	return append(args, outPath)
}

func (f *FFmpeg) quality() int {
	if f.SnapshotQuality <= 0 {
		return 2
	}
	return f.SnapshotQuality
}

func formatSecs(secs float64) string {
	return strconv.FormatFloat(secs, 'f', 3, 64)
}
