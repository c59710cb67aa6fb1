package note

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// MergeOrder fixe l'ordre de concaténation des champs média lors d'une mise à
// jour non destructive.
type MergeOrder int

const (
	// AppendNew : contenu stocké puis contenu frais.
	AppendNew MergeOrder = iota
	// PrependNew : contenu frais puis contenu stocké.
	PrependNew
)

// PronunciationPolicy pilote l'augmentation par audio de prononciation.
type PronunciationPolicy int

const (
	PronNever PronunciationPolicy = iota
	PronIfEmpty
	PronAlways
)

// Pronouncer fournit une référence audio de prononciation pour un mot.
// ref == "" signifie "pas de prononciation trouvée" (issue normale).
type Pronouncer interface {
	Lookup(ctx context.Context, word string) (ref string, err error)
}

// MergeOptions paramètre la fusion d'un jeu de champs frais avec une note
// stockée.
type MergeOptions struct {
	Names  FieldNames
	Order  MergeOrder
	Policy PronunciationPolicy
	// Concat : l'appelant demande une mise à jour non destructive, les champs
	// média stockés sont conservés et concaténés.
	Concat bool
	Pron   Pronouncer
	Now    func() time.Time
}

var markupTag = regexp.MustCompile(`<[^<>]*>`)

// Merge combine fresh avec la note stockée selon la politique de fusion :
//  1. augmentation par prononciation du vocabulaire stocké ;
//  2. préservation du surlignage du champ phrase ;
//  3. concaténation des champs média (si Concat) ;
//  4. repli diagnostique si le champ phrase reste vide.
//
// fresh n'est pas modifié ; le résultat est une copie.
func Merge(ctx context.Context, fresh Fields, stored Stored, opts MergeOptions) Fields {
	out := fresh.Clone()
	if opts.Now == nil {
		opts.Now = time.Now
	}

	mergePronunciation(ctx, out, stored, opts)
	mergeSentence(out, stored, opts.Names)
	if opts.Concat {
		concatMediaFields(out, stored, opts)
	}

	// repli : un champ phrase vide après fusion reçoit un texte de diagnostic
	// horodaté pour que l'utilisateur voie pourquoi le champ est blanc
	if n := opts.Names.Sentence; n != "" && out[n] == "" {
		out[n] = fmt.Sprintf("(no subtitle text captured at %s)", opts.Now().Format("2006-01-02 15:04:05"))
	}
	return out
}

// mergePronunciation ajoute l'audio de prononciation du vocabulaire déjà
// saisi dans la note stockée. Quand le champ de prononciation est le même que
// le champ audio principal, la référence est préfixée : l'audio de phrase
// fraîchement capturé n'est jamais écarté.
func mergePronunciation(ctx context.Context, out Fields, stored Stored, opts MergeOptions) {
	names := opts.Names
	if opts.Policy == PronNever || opts.Pron == nil || names.VocabAudio == "" || names.Vocabulary == "" {
		return
	}
	storedVocabAudio, present := stored.Fields[names.VocabAudio]
	if !present {
		return
	}
	word := strings.TrimSpace(markupTag.ReplaceAllString(stored.Fields[names.Vocabulary], ""))
	if word == "" {
		return
	}
	if opts.Policy != PronAlways && storedVocabAudio != "" {
		return
	}

	ref, err := opts.Pron.Lookup(ctx, word)
	if err != nil || ref == "" {
		return
	}
	if names.VocabAudio == names.Audio {
		out[names.Audio] = ref + out[names.Audio]
		return
	}
	out[names.VocabAudio] = ref
}

// mergeSentence préserve le texte et le surlignage déjà présents :
// - note stockée vide -> rien à préserver ;
// - texte frais vide -> reprendre le texte stocké (ne jamais effacer) ;
// - sinon, rebaliser dans le texte frais la portion surlignée de la note
//   stockée, si elle s'y retrouve.
func mergeSentence(out Fields, stored Stored, names FieldNames) {
	n := names.Sentence
	if n == "" {
		return
	}
	storedSentence := stored.Fields[n]
	if storedSentence == "" {
		return
	}
	if out[n] == "" {
		out[n] = storedSentence
		return
	}
	a, ok := parseAnchor(storedSentence)
	if !ok {
		return
	}
	if rewrapped, ok := a.rewrap(out[n]); ok {
		out[n] = rewrapped
	}
}

// concatMediaFields concatène champs média stockés et frais dans l'ordre
// configuré ; un côté vide ne contribue rien.
func concatMediaFields(out Fields, stored Stored, opts MergeOptions) {
	for _, n := range []string{opts.Names.Audio, opts.Names.Image, opts.Names.MiscInfo} {
		if n == "" {
			continue
		}
		storedVal := stored.Fields[n]
		freshVal := out[n]
		switch {
		case storedVal == "":
			// rien à conserver
		case freshVal == "":
			out[n] = storedVal
		case opts.Order == PrependNew:
			out[n] = freshVal + storedVal
		default:
			out[n] = storedVal + freshVal
		}
	}
}
