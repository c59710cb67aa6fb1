// Package filename dérive les noms de fichiers des extraits audio/image.
// Les noms produits tiennent toujours, suffixe compris, dans un plafond
// d'octets fixe et ne coupent jamais un caractère multi-octets.
package filename

import (
	"fmt"
	"math"
	"time"

	"github.com/patrickprogramme/ankiclip/internal/fsutil"
)

// MaxNameBytes est le plafond total (base + suffixe) en octets d'un nom
// d'extrait. Au-delà, certaines synchronisations de collection tronquent ou
// refusent le fichier.
const MaxNameBytes = 119

// Factory dérive les noms d'extraits d'un média chargé. La base est calculée
// une seule fois à partir du titre (extension, annotations et caractères
// interdits retirés).
type Factory struct {
	base string
	now  func() time.Time
}

// New construit une Factory pour le titre de média donné.
func New(mediaTitle string) *Factory {
	return &Factory{
		base: fsutil.SanitizeMediaTitle(mediaTitle),
		now:  time.Now,
	}
}

// Base renvoie la base dérivée du titre.
func (f *Factory) Base() string { return f.base }

// Audio renvoie le nom d'un extrait audio : base tronquée + "_<start>-<end><ext>".
func (f *Factory) Audio(start, end float64, ext string) string {
	suffix := "_" + Timestamp(start) + "-" + Timestamp(end) + ext
	return f.withSuffix(suffix)
}

// Snapshot renvoie le nom d'une capture d'image : base tronquée + "_<timestamp><ext>".
func (f *Factory) Snapshot(secs float64, ext string) string {
	suffix := "_" + Timestamp(secs) + ext
	return f.withSuffix(suffix)
}

// withSuffix calcule le budget restant pour la base, tronque si nécessaire et
// ajoute le suffixe. Ne renvoie jamais d'erreur : en dernier recours un nom de
// repli horodaté est utilisé.
func (f *Factory) withSuffix(suffix string) string {
	budget := MaxNameBytes - len(suffix)
	if budget <= 0 {
		return f.fallback()
	}

	base := f.base
	if len(base) > budget {
		// budget octets -> budget caractères selon la largeur d'écriture
		chars := budget / fsutil.BytesPerRune(base)
		base = fsutil.TruncateRunes(base, chars)
		// garde-fou : l'heuristique de largeur peut sous-estimer les octets
		// (écritures à 2 octets par caractère) ; on retire rune par rune.
		for len(base) > budget {
			rs := []rune(base)
			base = string(rs[:len(rs)-1])
		}
		if base == "" {
			return f.fallback()
		}
	}
	return base + suffix
}

// fallback : nom de remplacement horodaté, utilisé quand la troncature ne
// laisse rien d'utilisable.
func (f *Factory) fallback() string {
	return "clip_" + f.now().Format("20060102_150405")
}

// Timestamp rend un temps en secondes sous la forme zéro-paddée
// heures/minutes/secondes/millisecondes (ex: "00h01m05s250ms").
func Timestamp(secs float64) string {
	if secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		secs = 0
	}
	ms := int64(math.Round(secs * 1000))
	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02dh%02dm%02ds%03dms", h, m, s, ms)
}
