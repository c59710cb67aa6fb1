package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/patrickprogramme/ankiclip/internal/anki"
	"github.com/patrickprogramme/ankiclip/internal/capture"
	"github.com/patrickprogramme/ankiclip/internal/media"
	"github.com/patrickprogramme/ankiclip/internal/note"
)

// resolveSentence résout la session courante en un Sentence validé.
func (a *App) resolveSentence(ctx context.Context) *capture.Sentence {
	visible := a.visibleLine(ctx, "")
	return capture.Resolve(a.tracker, a.session, visible, capture.ResolveOptions{
		StripSpaces: a.cfg.StripSpaces,
	})
}

// ExportNote exécute le flux d'ajout : résolution, noms de fichiers, demande
// d'extraction média (fire-and-forget), construction des champs, soumission.
// La session est vidée dès que la tentative d'export est émise : un échec
// d'extraction média ne bloque ni n'annule la soumission.
func (a *App) ExportNote(ctx context.Context, gui bool) {
	sentence := a.resolveSentence(ctx)
	if sentence == nil {
		a.ui.PrintError(ctx, ErrUserInput.Error())
		return
	}

	audioName := a.factory.Audio(sentence.Start, sentence.End, a.cfg.AudioExt)
	snapName := a.factory.Snapshot(snapshotTime(sentence), a.cfg.SnapshotExt)

	// extraction snapshot + audio : aucune dépendance d'ordre entre les deux,
	// et la soumission de note n'attend pas leur issue
	a.requestMedia(sentence, snapName, audioName)

	fields := a.buildFields(ctx, sentence, snapName, audioName)
	deck := a.targetDeck(ctx)
	n := anki.Note{
		DeckName:  deck,
		ModelName: a.cfg.Model,
		Fields:    fields,
		Options: anki.NoteOptions{
			AllowDuplicate: a.cfg.AllowDuplicates,
			DuplicateScope: a.cfg.DuplicateScope,
		},
		Tags: a.noteTags(ctx),
	}

	sctx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	var err error
	if gui {
		err = a.svc.GuiAddCards(sctx, n)
	} else {
		_, err = a.svc.AddNote(sctx, n)
	}

	// la tentative d'export est émise : la session est consommée, quelle que
	// soit l'issue de la soumission
	a.clearCapture()

	if err != nil {
		a.ui.PrintError(ctx, "ajout de note : "+err.Error())
		return
	}
	a.ui.PrintInfo(ctx, "note ajoutée dans "+deck)
}

// UpdateLastNote exécute le flux de mise à jour de la dernière note ajoutée :
// localisation, contrôle de récence, récupération, fusion, soumission, puis
// post-actions indépendantes (média, tag, resélection).
func (a *App) UpdateLastNote(ctx context.Context) {
	sentence := a.resolveSentence(ctx)
	if sentence == nil {
		// un intervalle valide sans texte suffit (augmentation d'une note
		// transcrite à la main) ; sans intervalle il n'y a rien à faire
		a.ui.PrintError(ctx, ErrUserInput.Error())
		return
	}

	sctx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	// localisation de la note la plus récente, et contrôle de récence AVANT
	// tout effet de bord
	ids, err := a.svc.FindNotes(sctx, "added:1")
	if err != nil {
		a.ui.PrintError(ctx, "recherche de notes : "+err.Error())
		return
	}
	target := latestNoteID(ids)
	if target == 0 || a.now().Sub(anki.NoteCreationTime(target)) > recencyWindow {
		a.ui.PrintError(ctx, ErrRecency.Error())
		return
	}

	info, err := a.svc.NotesInfo(sctx, target)
	if err != nil {
		a.ui.PrintError(ctx, "lecture de la note : "+err.Error())
		return
	}
	stored := note.Stored{ID: info.NoteID, Fields: note.Fields{}}
	for name, fv := range info.Fields {
		stored.Fields[name] = fv.Value
	}

	audioName := a.factory.Audio(sentence.Start, sentence.End, a.cfg.AudioExt)
	snapName := a.factory.Snapshot(snapshotTime(sentence), a.cfg.SnapshotExt)

	fresh := a.buildFields(ctx, sentence, snapName, audioName)
	merged := note.Merge(ctx, fresh, stored, note.MergeOptions{
		Names:  a.cfg.FieldNames(),
		Order:  a.cfg.MergeOrderValue(),
		Policy: a.cfg.PronunciationPolicy(),
		Concat: true,
		Pron:   a.pron,
		Now:    a.now,
	})

	err = a.svc.UpdateNoteFields(sctx, target, merged)

	// la tentative a atteint la soumission : session consommée
	a.clearCapture()

	if err != nil {
		a.ui.PrintError(ctx, "mise à jour de note : "+err.Error())
		return
	}

	// post-actions indépendantes : un échec est seulement signalé, il ne
	// défait jamais l'écriture de la note
	a.requestMedia(sentence, snapName, audioName)
	if tag := a.noteTag(ctx); tag != "" {
		if err := a.svc.AddTags(sctx, []int64{target}, tag); err != nil {
			a.ui.PrintError(ctx, "ajout du tag : "+err.Error())
		}
	}
	if err := a.svc.GuiBrowse(sctx, fmt.Sprintf("nid:%d", target)); err != nil {
		a.ui.PrintError(ctx, "resélection : "+err.Error())
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("note %d mise à jour", target))
}

// buildFields construit le jeu de champs frais d'un export.
func (a *App) buildFields(ctx context.Context, sentence *capture.Sentence, snapName, audioName string) note.Fields {
	names := a.cfg.FieldNames()
	var misc string
	if names.MiscInfo != "" {
		misc = media.ExpandTemplate(a.cfg.MiscInfoTemplate, a.templateData(ctx))
	}
	return note.Build(names, note.BuildInput{
		SentenceText:  sentence.Text,
		SecondaryText: sentence.SecondaryText,
		SnapshotName:  snapName,
		AudioName:     audioName,
		MiscInfo:      misc,
	})
}

// requestMedia demande l'extraction du snapshot et du clip audio puis leur
// stockage dans la collection. Fire-and-forget : l'échec est signalé mais
// n'est jamais attendu par la soumission.
func (a *App) requestMedia(sentence *capture.Sentence, snapName, audioName string) {
	source := a.item.Path
	if source == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
		defer cancel()
		path := filepath.Join(a.cfg.MediaDir, snapName)
		if err := a.extract.CreateSnapshot(ctx, source, snapshotTime(sentence), path); err != nil {
			a.ui.PrintError(ctx, "extraction snapshot : "+err.Error())
			return
		}
		if err := a.svc.StoreMediaFile(ctx, snapName, path); err != nil {
			a.ui.PrintError(ctx, "stockage snapshot : "+err.Error())
		}
	}()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
		defer cancel()
		path := filepath.Join(a.cfg.MediaDir, audioName)
		if err := a.extract.CreateAudioClip(ctx, source, sentence.Start, sentence.End, path); err != nil {
			a.ui.PrintError(ctx, "extraction audio : "+err.Error())
			return
		}
		if err := a.svc.StoreMediaFile(ctx, audioName, path); err != nil {
			a.ui.PrintError(ctx, "stockage audio : "+err.Error())
		}
	}()
}

// targetDeck renvoie le paquet de destination : le sous-paquet par série si
// configuré (créé via changeDeck), sinon le paquet principal.
func (a *App) targetDeck(ctx context.Context) string {
	if a.cfg.SubdeckTemplate == "" {
		return a.cfg.Deck
	}
	subdeck := a.cfg.Deck + "::" + media.ExpandTemplate(a.cfg.SubdeckTemplate, a.templateData(ctx))
	sctx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()
	if err := a.svc.ChangeDeck(sctx, nil, subdeck); err != nil {
		a.ui.PrintError(ctx, "création du sous-paquet : "+err.Error())
		return a.cfg.Deck
	}
	return subdeck
}

func (a *App) templateData(ctx context.Context) media.TemplateData {
	return media.TemplateData{
		Item:        a.item,
		TimePos:     a.players.GetPropertyFloat(ctx, "time-pos"),
		ExternalTag: a.cfg.ExternalTag,
	}
}

// noteTag rend le tag configuré (les espaces du titre deviennent des
// underscores : un tag est un mot unique).
func (a *App) noteTag(ctx context.Context) string {
	if a.cfg.TagTemplate == "" {
		return ""
	}
	tag := media.ExpandTemplate(a.cfg.TagTemplate, a.templateData(ctx))
	return sanitizeTag(tag)
}

func (a *App) noteTags(ctx context.Context) []string {
	if tag := a.noteTag(ctx); tag != "" {
		return []string{tag}
	}
	return []string{}
}

// sanitizeTag remplace les espaces par des underscores : un tag est un mot
// unique côté service.
func sanitizeTag(tag string) string {
	return strings.Join(strings.Fields(tag), "_")
}

// snapshotTime : l'image est prise au milieu de l'intervalle résolu.
func snapshotTime(s *capture.Sentence) float64 {
	return (s.Start + s.End) / 2
}

// latestNoteID renvoie l'id le plus grand (les ids de note sont des
// timestamps : le plus grand est le plus récent) ; 0 si la liste est vide.
func latestNoteID(ids []int64) int64 {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max
}
