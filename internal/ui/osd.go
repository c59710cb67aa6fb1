package ui

import (
	"context"

	"github.com/patrickprogramme/ankiclip/internal/player"
)

const (
	infoDurationMS  = 3000
	errorDurationMS = 5000
)

// OSD affiche les messages sur l'écran du lecteur, avec repli terminal si
// l'affichage échoue.
type OSD struct {
	client   *player.Client
	fallback Interface
}

// NewOSD construit l'implémentation OSD au-dessus d'une connexion lecteur.
func NewOSD(client *player.Client) *OSD {
	return &OSD{client: client, fallback: NewTerminal()}
}

func (o *OSD) PrintInfo(ctx context.Context, s string) {
	if err := o.client.ShowText(ctx, s, infoDurationMS); err != nil {
		o.fallback.PrintInfo(ctx, s)
	}
}

func (o *OSD) PrintError(ctx context.Context, s string) {
	if err := o.client.ShowText(ctx, "ankiclip: "+s, errorDurationMS); err != nil {
		o.fallback.PrintError(ctx, s)
	}
}
