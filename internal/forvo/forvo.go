// Package forvo interroge la source de prononciation : récupération de la
// page de résultats pour un mot, extraction du descripteur de lecture qui y
// est embarqué, décodage de l'identifiant audio du format configuré et
// construction de l'URL audio directe.
package forvo

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/patrickprogramme/ankiclip/internal/fetch"
	"github.com/patrickprogramme/ankiclip/internal/fsutil"
)

// Format est le format audio demandé.
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatOgg Format = "ogg"
)

const (
	defaultSearchURL = "https://forvo.com/word"
	defaultAudioHost = "https://audio00.forvo.com"
	pageTimeout      = 10 * time.Second
	audioTimeout     = 20 * time.Second
	maxPageBytes     = 4_000_000
	maxAudioBytes    = 8_000_000
)

// playDescriptor reconnaît le descripteur de lecture embarqué dans la page :
// Play(<id>,'<mp3 base64>','<ogg base64>',...)
var playDescriptor = regexp.MustCompile(`Play\(\d+,'([^']*)','([^']*)'`)

// Fetcher télécharge une URL. Point d'injection pour les tests.
type Fetcher func(ctx context.Context, url string, timeout time.Duration, maxBytes int64) ([]byte, error)

// Pronunciation est le résultat d'une recherche : de quoi télécharger l'audio
// et le stocker dans la collection.
type Pronunciation struct {
	Word     string
	URL      string
	Filename string
}

// Source effectue les recherches de prononciation.
type Source struct {
	format    Format
	searchURL string
	audioHost string
	fetch     Fetcher
}

// New construit une Source pour le format donné.
func New(format Format) *Source {
	return &Source{
		format:    format,
		searchURL: defaultSearchURL,
		audioHost: defaultAudioHost,
		fetch:     fetch.BytesWithTimeout,
	}
}

// Lookup cherche une prononciation pour word. Renvoie (nil, nil) quand la
// page ne contient aucun descripteur : l'absence de résultat est une issue
// normale, pas une erreur.
func (s *Source) Lookup(ctx context.Context, word string) (*Pronunciation, error) {
	pageURL := fmt.Sprintf("%s/%s/", s.searchURL, url.PathEscape(word))
	page, err := s.fetch(ctx, pageURL, pageTimeout, maxPageBytes)
	if err != nil {
		return nil, fmt.Errorf("forvo: fetch page for %q: %w", word, err)
	}

	m := playDescriptor.FindSubmatch(page)
	if m == nil {
		return nil, nil
	}
	encoded := m[1] // mp3
	if s.format == FormatOgg {
		encoded = m[2]
	}
	if len(encoded) == 0 {
		return nil, nil
	}

	id, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return nil, fmt.Errorf("forvo: decode audio id for %q: %w", word, err)
	}

	return &Pronunciation{
		Word:     word,
		URL:      fmt.Sprintf("%s/%s/%s", s.audioHost, s.format, string(id)),
		Filename: fmt.Sprintf("forvo_%s.%s", fsutil.SanitizeMediaTitle(word), s.format),
	}, nil
}

// Download télécharge l'audio de p dans un fichier temporaire et renvoie son
// chemin. Le fichier appartient à l'appelant (chemin de transit vers
// storeMediaFile).
func (s *Source) Download(ctx context.Context, p *Pronunciation) (string, error) {
	data, err := s.fetch(ctx, p.URL, audioTimeout, maxAudioBytes)
	if err != nil {
		return "", fmt.Errorf("forvo: download audio for %q: %w", p.Word, err)
	}
	path := filepath.Join(os.TempDir(), p.Filename)
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("forvo: write audio file: %w", err)
	}
	return path, nil
}
