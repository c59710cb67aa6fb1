// Package anki parle le protocole requête/réponse d'AnkiConnect : enveloppe
// {action, version, params}, réponse {result, error}. Toutes les actions
// passent par un collaborateur de transport qui échoue fermé (statut non nul)
// plutôt que de rester suspendu.
package anki

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickprogramme/ankiclip/internal/fetch"
)

// Version du protocole AnkiConnect.
const Version = 6

// Transport exécute une requête encodée et renvoie (status, stdout).
// status == 0 : stdout contient la réponse du service.
// status != 0 : transport en échec, stdout ignoré.
type Transport interface {
	Do(ctx context.Context, payload []byte) (status int, stdout []byte)
}

// HTTPTransport poste l'enveloppe JSON sur l'endpoint HTTP local d'AnkiConnect.
type HTTPTransport struct {
	URL     string
	Timeout time.Duration
}

// Do implémente Transport. Toute erreur HTTP (connexion, timeout, statut non
// 2xx) est rendue comme un statut non nul : le protocole ne distingue pas les
// causes de panne du transport.
func (t *HTTPTransport) Do(ctx context.Context, payload []byte) (int, []byte) {
	code, body, err := fetch.PostBytes(ctx, t.URL, "application/json", payload, t.Timeout, 0)
	if err != nil || code < 200 || code >= 300 {
		return 1, nil
	}
	return 0, body
}

// Client exécute les actions du service au travers d'un Transport.
type Client struct {
	tr Transport
}

// NewClient construit un client sur le transport donné.
func NewClient(tr Transport) *Client {
	return &Client{tr: tr}
}

// request est l'enveloppe de requête du protocole.
type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

// response est l'enveloppe de réponse ; Error est nul en cas de succès.
type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke exécute une action : requête -> parse -> erreur typée.
// result peut être nil si l'appelant n'attend pas de payload.
func (c *Client) invoke(ctx context.Context, action string, params any, result any) error {
	payload, err := json.Marshal(request{Action: action, Version: Version, Params: params})
	if err != nil {
		return fmt.Errorf("anki: encode %s: %w", action, err)
	}

	status, stdout := c.tr.Do(ctx, payload)
	if status != 0 {
		return fmt.Errorf("%s: %w", action, ErrTransport)
	}

	var resp response
	if err := json.Unmarshal(stdout, &resp); err != nil {
		return fmt.Errorf("%s: %w: %v", action, ErrMalformedResponse, err)
	}
	if resp.Error != nil {
		return &ApplicationError{Action: action, Message: *resp.Error}
	}
	if result != nil && resp.Result != nil {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("%s: %w: %v", action, ErrMalformedResponse, err)
		}
	}
	return nil
}
