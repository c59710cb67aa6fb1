package ui

import "context"

// Interface achemine les messages destinés à l'utilisateur. Implémentations :
// OSD du lecteur (session interactive) et terminal (repli/diagnostic).
type Interface interface {
	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
}
