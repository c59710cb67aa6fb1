package app

import "errors"

// Erreurs de flux rapportées à l'utilisateur.
var (
	// ErrUserInput : rien de résolvable (pas de sous-titre visible, pas de
	// bornes posées). Aucun état n'est modifié.
	ErrUserInput = errors.New("rien à exporter : aucun sous-titre visible ni borne posée")

	// ErrRecency : aucune note candidate, ou la candidate est plus vieille
	// que la fenêtre de récence. Abandon avant tout effet de bord.
	ErrRecency = errors.New("aucune note assez récente à mettre à jour")
)
