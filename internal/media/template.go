package media

import (
	"strings"

	"github.com/patrickprogramme/ankiclip/internal/filename"
)

// TemplateData porte les valeurs injectées dans un modèle de tag ou de champ
// d'information.
type TemplateData struct {
	Item        Item
	TimePos     float64 // position de lecture courante, en secondes
	ExternalTag string
}

// ExpandTemplate remplace les séquences reconnues dans tpl :
//
//	%n  titre du média normalisé
//	%t  position de lecture courante (même rendu que les noms de fichiers)
//	%d  numéro d'épisode détecté ("" si aucun)
//	%e  tag externe fourni par l'appelant
//
// Les valeurs substituées ne sont pas ré-analysées (passage unique).
func ExpandTemplate(tpl string, data TemplateData) string {
	var b strings.Builder
	b.Grow(len(tpl))
	for i := 0; i < len(tpl); i++ {
		c := tpl[i]
		if c != '%' || i+1 >= len(tpl) {
			b.WriteByte(c)
			continue
		}
		switch tpl[i+1] {
		case 'n':
			b.WriteString(data.Item.NormalizedTitle())
		case 't':
			b.WriteString(filename.Timestamp(data.TimePos))
		case 'd':
			b.WriteString(data.Item.EpisodeNumber())
		case 'e':
			b.WriteString(data.ExternalTag)
		default:
			// séquence inconnue : laissée telle quelle
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}
