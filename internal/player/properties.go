package player

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetProperty lit une propriété mpv et la décode dans out.
func (c *Client) GetProperty(ctx context.Context, name string, out any) error {
	data, err := c.Command(ctx, "get_property", name)
	if err != nil {
		return err
	}
	if out == nil || data == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("player: decode property %s: %w", name, err)
	}
	return nil
}

// GetPropertyString lit une propriété texte ; renvoie "" si elle est absente.
func (c *Client) GetPropertyString(ctx context.Context, name string) string {
	var s string
	if err := c.GetProperty(ctx, name, &s); err != nil {
		return ""
	}
	return s
}

// GetPropertyFloat lit une propriété numérique ; renvoie -1 si elle est
// absente ou indisponible.
func (c *Client) GetPropertyFloat(ctx context.Context, name string) float64 {
	var v *float64
	if err := c.GetProperty(ctx, name, &v); err != nil || v == nil {
		return -1
	}
	return *v
}

// ObserveProperty abonne le client aux changements d'une propriété. L'id
// choisi par l'appelant revient dans chaque événement property-change.
func (c *Client) ObserveProperty(ctx context.Context, id int64, name string) error {
	_, err := c.Command(ctx, "observe_property", id, name)
	return err
}

// UnobserveProperty détache une observation. À appeler avant de vider une
// session pour qu'aucune notification tardive n'y tombe.
func (c *Client) UnobserveProperty(ctx context.Context, id int64) error {
	_, err := c.Command(ctx, "unobserve_property", id)
	return err
}

// ShowText affiche un message sur l'OSD du lecteur.
func (c *Client) ShowText(ctx context.Context, text string, durationMS int) error {
	_, err := c.Command(ctx, "show-text", text, durationMS)
	return err
}
