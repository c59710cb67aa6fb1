package note

import (
	"regexp"
	"strings"
)

// anchor est un ancrage de surlignage : une unique portion balisée dans le
// champ phrase d'une note (ex: `abc<b>cible</b>def`).
type anchor struct {
	prefix   string
	openTag  string
	content  string
	closeTag string
	suffix   string
}

// anchorPattern reconnaît exactement une portion balisée, quel que soit le
// couple de balises, sans autre balisage dans le champ.
var anchorPattern = regexp.MustCompile(`^([^<>]*)(<[^/<>][^<>]*>)([^<>]+)(</[^<>]+>)([^<>]*)$`)

// parseAnchor extrait l'ancrage de surlignage de s. "Pas d'ancrage" est un
// résultat de première classe (ok == false), pas une erreur.
func parseAnchor(s string) (anchor, bool) {
	m := anchorPattern.FindStringSubmatch(s)
	if m == nil {
		return anchor{}, false
	}
	return anchor{
		prefix:   m[1],
		openTag:  m[2],
		content:  m[3],
		closeTag: m[4],
		suffix:   m[5],
	}, true
}

// rewrap réapplique l'ancrage sur un nouveau texte : si content apparaît dans
// text, la même portion y est rebalisée. Renvoie (text, false) si content n'y
// figure pas.
func (a anchor) rewrap(text string) (string, bool) {
	// déjà balisé tel quel (ex: fusion d'une note avec sa propre copie) :
	// ne pas imbriquer les balises
	if strings.Contains(text, a.openTag+a.content+a.closeTag) {
		return text, true
	}
	idx := strings.Index(text, a.content)
	if idx < 0 {
		return text, false
	}
	return text[:idx] + a.openTag + a.content + a.closeTag + text[idx+len(a.content):], true
}
