package app

import (
	"context"

	"github.com/patrickprogramme/ankiclip/internal/forvo"
	"github.com/patrickprogramme/ankiclip/internal/note"
)

// ForvoPronouncer adapte la source de prononciation au contrat du module de
// fusion : recherche, téléchargement de l'audio, stockage dans la collection,
// et rendu de la référence [sound:...]. Une recherche sans résultat renvoie
// une référence vide, sans erreur.
type ForvoPronouncer struct {
	src *forvo.Source
	svc AnkiService
}

// NewForvoPronouncer construit l'adaptateur.
func NewForvoPronouncer(src *forvo.Source, svc AnkiService) *ForvoPronouncer {
	return &ForvoPronouncer{src: src, svc: svc}
}

// Lookup implémente note.Pronouncer.
func (p *ForvoPronouncer) Lookup(ctx context.Context, word string) (string, error) {
	pron, err := p.src.Lookup(ctx, word)
	if err != nil {
		return "", err
	}
	if pron == nil {
		return "", nil
	}
	path, err := p.src.Download(ctx, pron)
	if err != nil {
		return "", err
	}
	if err := p.svc.StoreMediaFile(ctx, pron.Filename, path); err != nil {
		return "", err
	}
	return note.SoundRef(pron.Filename), nil
}
