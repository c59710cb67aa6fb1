package fsutil

import (
	"path/filepath"
	"regexp"
	"strings"
)

// invalidFileRunes définit les caractères interdits dans les noms de fichiers
// \x00-\x1F sont les caractères de contrôle
var invalidFileRunes = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// bracketedAnnotation détecte les annotations de release entre crochets ou
// parenthèses (ex: "[SubGroup]", "(1080p)").
var bracketedAnnotation = regexp.MustCompile(`(\[[^\]]*\]|\([^)]*\))`)

// multiSpace détecte les séquences de plusieurs espaces pour les réduire à un seul.
var multiSpace = regexp.MustCompile(`\s+`)

// SanitizeMediaTitle nettoie le titre d'un média pour en faire une base de nom
// de fichier valide.
// Étapes :
// - Supprime l'extension de fichier
// - Supprime les annotations entre crochets/parenthèses
// - Remplace les caractères interdits par un espace
// - Réduit les espaces superflus
// - Fournit un nom par défaut si la chaîne est vide
func SanitizeMediaTitle(title string) string {
	if title == "" {
		return "media"
	}

	// supprimer l'extension si elle ressemble à une vraie extension (courte)
	if ext := filepath.Ext(title); ext != "" && len(ext) <= 5 && !strings.ContainsAny(ext, " ") {
		title = strings.TrimSuffix(title, ext)
	}

	// supprimer les annotations [..] et (..)
	clean := bracketedAnnotation.ReplaceAllString(title, " ")

	// remplacement des caractères interdits par " "
	clean = invalidFileRunes.ReplaceAllString(clean, " ")

	// réduction des espaces multiples + trim
	clean = multiSpace.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)

	// suppression des points terminaux (un ou plusieurs)
	clean = strings.TrimRight(clean, ".")

	if clean == "" {
		return "media"
	}
	return clean
}
