package fsutil

import (
	"strings"

	"golang.org/x/text/width"
)

// octets UTF-8 estimés par caractère selon la largeur d'affichage.
const (
	narrowRuneBytes = 1
	wideRuneBytes   = 3
)

// ContainsWideRunes renvoie true si s contient au moins un caractère de
// script "large" (CJK pleine largeur). Sert d'heuristique pour estimer le
// poids en octets des caractères lors de la troncature.
func ContainsWideRunes(s string) bool {
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			return true
		}
	}
	return false
}

// BytesPerRune estime le nombre d'octets UTF-8 par caractère pour s :
// 3 si la chaîne contient des caractères larges, 1 sinon.
func BytesPerRune(s string) int {
	if ContainsWideRunes(s) {
		return wideRuneBytes
	}
	return narrowRuneBytes
}

// TruncateRunes coupe s après n caractères (runes entières, jamais au milieu
// d'une séquence multi-octets) puis supprime les espaces/retours à la ligne
// terminaux. n <= 0 renvoie "".
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) > n {
		rs = rs[:n]
	}
	return strings.TrimRight(string(rs), " \t\r\n")
}
