package anki

import (
	"errors"
	"fmt"
)

// Erreurs exportées de la couche protocole.
var (
	// ErrTransport : le collaborateur de transport a rendu un statut non nul
	// (service injoignable). Aucun retry automatique.
	ErrTransport = errors.New("anki: transport failed")

	// ErrMalformedResponse : la sortie du transport n'est pas décodable dans
	// la structure attendue.
	ErrMalformedResponse = errors.New("anki: malformed response")
)

// ApplicationError porte le message d'erreur explicite renvoyé par le service
// (champ `error` non nul de la réponse).
type ApplicationError struct {
	Action  string
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("anki: %s: %s", e.Action, e.Message)
}
