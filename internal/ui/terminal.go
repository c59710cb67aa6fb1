package ui

import (
	"context"
	"fmt"
	"os"
)

// Terminal écrit les messages sur stdout/stderr.
type Terminal struct{}

// NewTerminal construit l'implémentation terminale.
func NewTerminal() *Terminal { return &Terminal{} }

func (t *Terminal) PrintInfo(_ context.Context, s string) {
	fmt.Println(s)
}

func (t *Terminal) PrintError(_ context.Context, s string) {
	fmt.Fprintln(os.Stderr, "erreur :", s)
}
