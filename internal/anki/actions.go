package anki

import (
	"context"
	"time"
)

// Note est le corps d'une note à ajouter (addNote / guiAddCards).
type Note struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Options   NoteOptions       `json:"options"`
	Tags      []string          `json:"tags"`
}

// NoteOptions pilote la détection de doublons côté service.
type NoteOptions struct {
	AllowDuplicate bool   `json:"allowDuplicate"`
	DuplicateScope string `json:"duplicateScope"`
}

// NoteInfo est la vue distante d'une note (notesInfo).
type NoteInfo struct {
	NoteID int64                 `json:"noteId"`
	Fields map[string]FieldValue `json:"fields"`
}

// FieldValue est la valeur d'un champ telle que renvoyée par notesInfo.
type FieldValue struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// StoreMediaFile enregistre un fichier média local dans la collection.
func (c *Client) StoreMediaFile(ctx context.Context, filename, path string) error {
	return c.invoke(ctx, "storeMediaFile", map[string]any{
		"filename": filename,
		"path":     path,
	}, nil)
}

// ChangeDeck déplace des cartes vers un autre paquet (créé si absent).
func (c *Client) ChangeDeck(ctx context.Context, cards []int64, deck string) error {
	if cards == nil {
		cards = []int64{}
	}
	return c.invoke(ctx, "changeDeck", map[string]any{
		"cards": cards,
		"deck":  deck,
	}, nil)
}

// AddNote ajoute une note et renvoie son id.
func (c *Client) AddNote(ctx context.Context, n Note) (int64, error) {
	var id int64
	if err := c.invoke(ctx, "addNote", map[string]any{"note": n}, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// GuiAddCards ouvre le dialogue d'ajout interactif pré-rempli avec la note.
func (c *Client) GuiAddCards(ctx context.Context, n Note) error {
	return c.invoke(ctx, "guiAddCards", map[string]any{"note": n}, nil)
}

// FindNotes renvoie les ids de notes correspondant à la requête de recherche.
func (c *Client) FindNotes(ctx context.Context, query string) ([]int64, error) {
	var ids []int64
	if err := c.invoke(ctx, "findNotes", map[string]any{"query": query}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// NotesInfo récupère les champs d'une note par id.
func (c *Client) NotesInfo(ctx context.Context, id int64) (*NoteInfo, error) {
	var infos []NoteInfo
	if err := c.invoke(ctx, "notesInfo", map[string]any{"notes": []int64{id}}, &infos); err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, &ApplicationError{Action: "notesInfo", Message: "note not found"}
	}
	return &infos[0], nil
}

// GuiBrowse ouvre le navigateur de cartes sur la requête donnée.
func (c *Client) GuiBrowse(ctx context.Context, query string) error {
	return c.invoke(ctx, "guiBrowse", map[string]any{"query": query}, nil)
}

// AddTags ajoute des tags aux notes données.
func (c *Client) AddTags(ctx context.Context, notes []int64, tags string) error {
	return c.invoke(ctx, "addTags", map[string]any{
		"notes": notes,
		"tags":  tags,
	}, nil)
}

// UpdateNoteFields remplace les champs d'une note existante.
func (c *Client) UpdateNoteFields(ctx context.Context, id int64, fields map[string]string) error {
	return c.invoke(ctx, "updateNoteFields", map[string]any{
		"note": map[string]any{
			"id":     id,
			"fields": fields,
		},
	}, nil)
}

// NoteCreationTime dérive l'instant de création d'une note de son id (les ids
// de note sont des timestamps epoch en millisecondes).
func NoteCreationTime(id int64) time.Time {
	return time.UnixMilli(id)
}
