// Package player parle le protocole IPC JSON de mpv (une ligne JSON par
// message, sur la socket --input-ipc-server) : envoi de commandes appariées
// par request_id, observation de propriétés, réception des événements.
package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
)

// message est la forme générique d'une ligne reçue de mpv : soit la réponse à
// une commande (request_id), soit un événement.
type message struct {
	RequestID int64           `json:"request_id"`
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	Event     string          `json:"event"`
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Args      []string        `json:"args"`
}

// Event est un événement du lecteur poussé vers la boucle de l'application.
type Event struct {
	Kind string // "property-change", "client-message", "file-loaded", ...
	ID   int64  // id d'observation (property-change)
	Name string // nom de la propriété (property-change)
	Data json.RawMessage
	Args []string // arguments (client-message)
}

// Client est une connexion à la socket IPC de mpv. Un goroutine de lecture
// unique achemine réponses et événements ; les écritures sont sérialisées.
type Client struct {
	conn net.Conn

	writeMu sync.Mutex

	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan message
	closed  bool

	events chan Event
}

// Connect ouvre la socket IPC de mpv.
func Connect(socketPath string) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("player: dial %s: %w", socketPath, err)
	}
	return newClient(conn), nil
}

// newClient enveloppe une connexion existante (point d'entrée des tests).
func newClient(conn net.Conn) *Client {
	c := &Client{
		conn:    conn,
		pending: make(map[int64]chan message),
		events:  make(chan Event, 64),
	}
	go c.readLoop()
	return c
}

// Events renvoie le canal des événements du lecteur. Il est fermé quand la
// connexion se termine.
func (c *Client) Events() <-chan Event { return c.events }

// Close ferme la connexion ; les commandes en attente échouent.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) readLoop() {
	sc := bufio.NewScanner(c.conn)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var m message
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			continue // ligne inattendue, ignorée
		}
		if m.Event != "" {
			ev := Event{Kind: m.Event, ID: m.ID, Name: m.Name, Data: m.Data, Args: m.Args}
			select {
			case c.events <- ev:
			default:
				// boucle applicative en retard : on préfère perdre un
				// événement que bloquer la lecture des réponses
			}
			continue
		}
		c.mu.Lock()
		ch, ok := c.pending[m.RequestID]
		if ok {
			delete(c.pending, m.RequestID)
		}
		c.mu.Unlock()
		if ok {
			ch <- m
		}
	}
	// connexion terminée : libérer les commandes en attente puis les événements
	c.mu.Lock()
	c.closed = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()
	close(c.events)
}

// Command envoie une commande mpv et attend sa réponse.
func (c *Client) Command(ctx context.Context, args ...any) (json.RawMessage, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, fmt.Errorf("player: connection closed")
	}
	c.nextID++
	id := c.nextID
	ch := make(chan message, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	payload, err := json.Marshal(map[string]any{
		"command":    args,
		"request_id": id,
	})
	if err != nil {
		return nil, fmt.Errorf("player: encode command: %w", err)
	}
	payload = append(payload, '\n')

	c.writeMu.Lock()
	_, err = c.conn.Write(payload)
	c.writeMu.Unlock()
	if err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, fmt.Errorf("player: write command: %w", err)
	}

	select {
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, ctx.Err()
	case m, ok := <-ch:
		if !ok {
			return nil, fmt.Errorf("player: connection closed")
		}
		if m.Error != "" && m.Error != "success" {
			return nil, fmt.Errorf("player: command %v: %s", args, m.Error)
		}
		return m.Data, nil
	}
}
