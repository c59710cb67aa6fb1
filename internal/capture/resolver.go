package capture

import (
	"html"
	"strings"
	"unicode"
)

// Sentence est le résultat validé d'une résolution : texte + intervalle.
// Invariants : Start <= End, Start >= 0, Start != End.
type Sentence struct {
	Text          string
	SecondaryText string
	Start         float64
	End           float64
}

// ResolveOptions pilote les transformations de texte du resolver.
type ResolveOptions struct {
	// StripSpaces : supprimer tous les espaces quand le texte est dans une
	// écriture sans séparation de mots (heuristique : lettres non latines).
	StripSpaces bool
}

// Resolve combine les bornes explicites du tracker et les temps dérivés de la
// session en un Sentence validé. Renvoie nil quand il n'y a rien à exporter :
// borne manquante, intervalle de longueur nulle, ou borne négative.
//
// Si la session est vide, elle est d'abord amorcée avec la ligne actuellement
// visible (repli "capturer la ligne courante").
// Un intervalle inversé est normalisé par échange des bornes.
func Resolve(tracker *TimingTracker, session *Session, visible SubtitleLine, opts ResolveOptions) *Sentence {
	if session.IsEmpty() {
		session.Seed(visible)
	}

	start := resolveBound(tracker, session, Start)
	end := resolveBound(tracker, session, End)
	if start == -1 || end == -1 {
		return nil
	}
	if start > end {
		start, end = end, start
	}
	if start == end || start < 0 {
		return nil
	}

	text := session.Text(false)
	if text != "" {
		text = html.EscapeString(strings.TrimSpace(text))
		if opts.StripSpaces && hasNonLatinLetter(text) {
			text = stripWhitespace(text)
		}
	}
	secondary := session.Text(true)
	if secondary != "" {
		secondary = html.EscapeString(strings.TrimSpace(secondary))
	}

	return &Sentence{
		Text:          text,
		SecondaryText: secondary,
		Start:         start,
		End:           end,
	}
}

// resolveBound : borne explicite si posée, sinon temps dérivé de la session,
// sinon -1 (non résolue).
func resolveBound(tracker *TimingTracker, session *Session, pos Position) float64 {
	if v, ok := tracker.Get(pos); ok {
		return v
	}
	return session.Time(pos)
}

// hasNonLatinLetter renvoie true si s contient au moins une lettre hors de
// l'écriture latine (japonais, chinois, coréen...).
func hasNonLatinLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
