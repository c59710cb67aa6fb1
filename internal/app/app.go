// Package app orchestre les flux d'export : cycle de vie de la session de
// capture, résolution, construction/fusion des champs et dialogue avec le
// service de cartes. Tout le travail est déclenché par les événements du
// lecteur et traité séquentiellement sur une boucle unique.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickprogramme/ankiclip/internal/anki"
	"github.com/patrickprogramme/ankiclip/internal/capture"
	"github.com/patrickprogramme/ankiclip/internal/clipboard"
	"github.com/patrickprogramme/ankiclip/internal/config"
	"github.com/patrickprogramme/ankiclip/internal/filename"
	"github.com/patrickprogramme/ankiclip/internal/media"
	"github.com/patrickprogramme/ankiclip/internal/note"
	"github.com/patrickprogramme/ankiclip/internal/player"
	"github.com/patrickprogramme/ankiclip/internal/ui"
)

const (
	// fenêtre de récence : âge maximal d'une note pour le flux de mise à jour
	recencyWindow = 10 * time.Minute

	// budget des appels service sur la boucle
	serviceTimeout = 15 * time.Second
	// budget des extractions média fire-and-forget
	extractTimeout = 2 * time.Minute

	// id d'observation de la propriété sub-text
	obSubText = 1
)

// AnkiService est la surface du client AnkiConnect consommée par les flux.
// Implémentée par *anki.Client ; remplacée par un enregistreur dans les tests.
type AnkiService interface {
	StoreMediaFile(ctx context.Context, filename, path string) error
	ChangeDeck(ctx context.Context, cards []int64, deck string) error
	AddNote(ctx context.Context, n anki.Note) (int64, error)
	GuiAddCards(ctx context.Context, n anki.Note) error
	FindNotes(ctx context.Context, query string) ([]int64, error)
	NotesInfo(ctx context.Context, id int64) (*anki.NoteInfo, error)
	GuiBrowse(ctx context.Context, query string) error
	AddTags(ctx context.Context, notes []int64, tags string) error
	UpdateNoteFields(ctx context.Context, id int64, fields map[string]string) error
}

// PlayerProps est la surface du lecteur consommée par les flux : lecture de
// propriétés et gestion des observations.
type PlayerProps interface {
	GetPropertyString(ctx context.Context, name string) string
	GetPropertyFloat(ctx context.Context, name string) float64
	ObserveProperty(ctx context.Context, id int64, name string) error
	UnobserveProperty(ctx context.Context, id int64) error
}

// Extractor produit les extraits média. Implémenté par *extractor.FFmpeg.
type Extractor interface {
	CreateSnapshot(ctx context.Context, source string, secs float64, outPath string) error
	CreateAudioClip(ctx context.Context, source string, start, end float64, outPath string) error
}

// App possède la session de capture et le tracker de bornes (singletons de la
// session interactive) et séquence les flux.
type App struct {
	cfg     *config.Config
	svc     AnkiService
	players PlayerProps
	ui      ui.Interface
	extract Extractor
	pron    note.Pronouncer

	session *capture.Session
	tracker *capture.TimingTracker
	factory *filename.Factory
	item    media.Item

	initialized bool
	now         func() time.Time
}

// New construit l'application. Pour les tests, injecter des implémentations
// factices des interfaces.
func New(cfg *config.Config, svc AnkiService, players PlayerProps, uiClient ui.Interface, extract Extractor, pron note.Pronouncer) *App {
	return &App{
		cfg:     cfg,
		svc:     svc,
		players: players,
		ui:      uiClient,
		extract: extract,
		pron:    pron,
		session: capture.NewSession(),
		tracker: &capture.TimingTracker{},
		factory: filename.New(""),
		now:     time.Now,
	}
}

// Init pose les observations de propriétés et capture le média courant.
// Garde d'initialisation : un second appel est sans effet.
func (a *App) Init(ctx context.Context) error {
	if a.initialized {
		return nil
	}
	if err := a.players.ObserveProperty(ctx, obSubText, "sub-text"); err != nil {
		return err
	}
	a.refreshMediaItem(ctx)
	a.initialized = true
	return nil
}

// Run consomme les événements du lecteur jusqu'à l'annulation du contexte ou
// la fermeture du canal (lecteur terminé).
func (a *App) Run(ctx context.Context, events <-chan player.Event) error {
	if err := a.Init(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.handleEvent(ctx, ev)
		}
	}
}

// handleEvent aiguille un événement du lecteur.
func (a *App) handleEvent(ctx context.Context, ev player.Event) {
	switch ev.Kind {
	case "file-loaded":
		// nouveau média : la capture en cours ne s'y rapporte plus
		a.refreshMediaItem(ctx)
		a.clearCapture()

	case "property-change":
		if ev.Name == "sub-text" {
			a.onSubtitleText(ctx, ev.Data)
		}

	case "client-message":
		if len(ev.Args) >= 2 && ev.Args[0] == "ankiclip" {
			a.dispatchCommand(ctx, ev.Args[1])
		}
	}
}

// onSubtitleText réagit à un changement de la ligne de sous-titre affichée :
// accumulation (si la fenêtre de capture est ouverte) et autocopy.
func (a *App) onSubtitleText(ctx context.Context, data json.RawMessage) {
	var text string
	if len(data) > 0 {
		_ = json.Unmarshal(data, &text)
	}
	if text == "" {
		return
	}

	if a.session.Observing() {
		line := a.visibleLine(ctx, text)
		if a.session.Insert(line) {
			a.ui.PrintInfo(ctx, fmt.Sprintf("ligne capturée (%d)", a.session.Len()))
		}
	}

	if a.cfg.Autocopy {
		if err := clipboard.WriteAll(text); err != nil {
			a.ui.PrintError(ctx, "presse-papier : "+err.Error())
		}
	}
}

// visibleLine assemble la ligne actuellement affichée à partir des propriétés
// du lecteur. text peut être fourni (événement) ou lu ici ("" = relire).
func (a *App) visibleLine(ctx context.Context, text string) capture.SubtitleLine {
	if text == "" {
		text = a.players.GetPropertyString(ctx, "sub-text")
	}
	return capture.SubtitleLine{
		Text:          text,
		SecondaryText: a.players.GetPropertyString(ctx, "secondary-sub-text"),
		Start:         a.players.GetPropertyFloat(ctx, "sub-start"),
		End:           a.players.GetPropertyFloat(ctx, "sub-end"),
	}
}

// refreshMediaItem recapture le média chargé et recalcule la base des noms de
// fichiers.
func (a *App) refreshMediaItem(ctx context.Context) {
	a.item = media.Item{
		Path:  a.players.GetPropertyString(ctx, "path"),
		Title: a.players.GetPropertyString(ctx, "media-title"),
	}
	a.factory = filename.New(a.item.DisplayTitle())
}

// clearCapture ferme la fenêtre d'observation AVANT de vider l'état, pour
// qu'aucune notification tardive ne tombe dans une session déjà vidée.
func (a *App) clearCapture() {
	a.session.Clear()
	a.tracker.Clear()
}

// dispatchCommand traite une commande clavier relayée par le lecteur
// (script-message ankiclip <commande>).
func (a *App) dispatchCommand(ctx context.Context, cmd string) {
	switch cmd {
	case "export":
		a.ExportNote(ctx, false)
	case "export-gui":
		a.ExportNote(ctx, true)
	case "update-last":
		a.UpdateLastNote(ctx)
	case "toggle-recording":
		a.toggleRecording(ctx)
	case "set-start":
		a.setTimingMark(ctx, capture.Start)
	case "set-end":
		a.setTimingMark(ctx, capture.End)
	case "clear":
		a.clearCapture()
		a.ui.PrintInfo(ctx, "capture vidée")
	case "toggle-autocopy":
		a.cfg.Autocopy = !a.cfg.Autocopy
		if a.cfg.Autocopy {
			a.ui.PrintInfo(ctx, "autocopy activé")
		} else {
			a.ui.PrintInfo(ctx, "autocopy désactivé")
		}
	default:
		a.ui.PrintError(ctx, "commande inconnue : "+cmd)
	}
}

// toggleRecording ouvre/ferme la fenêtre de capture. L'ouverture repart
// toujours d'une session propre.
func (a *App) toggleRecording(ctx context.Context) {
	if a.session.Observing() {
		a.session.StopObserving()
		a.ui.PrintInfo(ctx, fmt.Sprintf("capture en pause (%d lignes)", a.session.Len()))
		return
	}
	if a.session.IsEmpty() {
		// nouvelle capture : amorcer avec la ligne visible
		a.session.StartObserving()
		if line := a.visibleLine(ctx, ""); !line.IsZero() {
			a.session.Insert(line)
		}
	} else {
		a.session.StartObserving()
	}
	a.ui.PrintInfo(ctx, "capture en cours")
}

// setTimingMark pose une borne explicite à la position de lecture courante.
func (a *App) setTimingMark(ctx context.Context, pos capture.Position) {
	t := a.players.GetPropertyFloat(ctx, "time-pos")
	if t < 0 {
		a.ui.PrintError(ctx, "position de lecture indisponible")
		return
	}
	a.tracker.Set(pos, t)
	if pos == capture.Start {
		a.ui.PrintInfo(ctx, "début fixé à "+filename.Timestamp(t))
	} else {
		a.ui.PrintInfo(ctx, "fin fixée à "+filename.Timestamp(t))
	}
}
