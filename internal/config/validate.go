package config

import (
	"fmt"

	"github.com/patrickprogramme/ankiclip/internal/forvo"
	"github.com/patrickprogramme/ankiclip/internal/note"
)

// Validate vérifie une fois au démarrage que les valeurs énumérées sont
// reconnues et que le minimum vital est renseigné.
func (c *Config) Validate() error {
	switch c.MergeOrder {
	case "append", "prepend":
	default:
		return fmt.Errorf("merge_order %q inconnu (append|prepend)", c.MergeOrder)
	}
	switch c.Pronunciation {
	case "never", "if_empty", "always":
	default:
		return fmt.Errorf("pronunciation %q inconnue (never|if_empty|always)", c.Pronunciation)
	}
	switch c.ForvoFormat {
	case "mp3", "ogg":
	default:
		return fmt.Errorf("forvo_format %q inconnu (mp3|ogg)", c.ForvoFormat)
	}
	if c.Deck == "" {
		return fmt.Errorf("deck manquant")
	}
	if c.Model == "" {
		return fmt.Errorf("model manquant")
	}
	if c.Fields.Sentence == "" {
		return fmt.Errorf("fields.sentence manquant")
	}
	if c.AnkiConnectURL == "" {
		return fmt.Errorf("ankiconnect_url manquant")
	}
	if c.MPVSocket == "" {
		return fmt.Errorf("mpv_socket manquant")
	}
	return nil
}

// FieldNames projette la configuration des champs dans le type consommé par
// le cœur.
func (c *Config) FieldNames() note.FieldNames {
	return note.FieldNames{
		Sentence:   c.Fields.Sentence,
		Secondary:  c.Fields.Secondary,
		Image:      c.Fields.Image,
		Audio:      c.Fields.Audio,
		Vocabulary: c.Fields.Vocabulary,
		VocabAudio: c.Fields.VocabAudio,
		MiscInfo:   c.Fields.MiscInfo,
	}
}

// MergeOrderValue traduit merge_order en valeur typée.
func (c *Config) MergeOrderValue() note.MergeOrder {
	if c.MergeOrder == "prepend" {
		return note.PrependNew
	}
	return note.AppendNew
}

// PronunciationPolicy traduit pronunciation en valeur typée.
func (c *Config) PronunciationPolicy() note.PronunciationPolicy {
	switch c.Pronunciation {
	case "always":
		return note.PronAlways
	case "if_empty":
		return note.PronIfEmpty
	default:
		return note.PronNever
	}
}

// ForvoFormatValue traduit forvo_format en valeur typée.
func (c *Config) ForvoFormatValue() forvo.Format {
	if c.ForvoFormat == "ogg" {
		return forvo.FormatOgg
	}
	return forvo.FormatMP3
}
