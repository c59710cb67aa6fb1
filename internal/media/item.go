// Package media décrit le média actuellement chargé dans le lecteur et les
// dérivations qui en dépendent : titre normalisé, numéro d'épisode, et
// substitution de modèles (%n, %t, %d, %e).
package media

import (
	"path/filepath"
	"regexp"

	"github.com/patrickprogramme/ankiclip/internal/fsutil"
)

// Item est l'instantané du média chargé, capturé à l'ouverture du fichier.
type Item struct {
	Path  string
	Title string
}

// DisplayTitle renvoie le titre affiché par le lecteur, ou à défaut le nom du
// fichier.
func (i Item) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return filepath.Base(i.Path)
}

// NormalizedTitle renvoie le titre nettoyé (extension, annotations et
// caractères interdits retirés).
func (i Item) NormalizedTitle() string {
	return fsutil.SanitizeMediaTitle(i.DisplayTitle())
}

// standaloneNumber capture les groupes de 1 à 3 chiffres isolés (non collés à
// des lettres ou d'autres chiffres) : les résolutions type "1080p" et les
// checksums hexadécimaux ne matchent pas.
var standaloneNumber = regexp.MustCompile(`(?:^|[^0-9A-Za-z])([0-9]{1,3})(?:[^0-9A-Za-z]|$)`)

// EpisodeNumber détecte le numéro d'épisode dans le titre : le groupe de
// chiffres isolé le plus à droite du titre normalisé. Renvoie "" si aucun.
func (i Item) EpisodeNumber() string {
	title := i.NormalizedTitle()
	matches := standaloneNumber.FindAllStringSubmatch(title, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}
