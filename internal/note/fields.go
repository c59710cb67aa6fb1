// Package note construit les champs d'une note de carte et les fusionne avec
// une note distante existante sans détruire les modifications de
// l'utilisateur ni son surlignage.
package note

import "fmt"

// FieldNames énumère les noms de champs reconnus, tels que configurés.
// Un nom vide signifie que le champ n'est pas renseigné par le programme.
type FieldNames struct {
	Sentence   string
	Secondary  string
	Image      string
	Audio      string
	Vocabulary string
	VocabAudio string
	MiscInfo   string
}

// Fields est un jeu de champs de note : nom de champ -> contenu.
type Fields map[string]string

// Clone renvoie une copie indépendante.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Stored est l'instantané d'une note distante récupérée par id.
type Stored struct {
	ID     int64
	Fields Fields
}

// BuildInput porte le contenu frais d'un export.
type BuildInput struct {
	SentenceText  string
	SecondaryText string
	SnapshotName  string
	AudioName     string
	MiscInfo      string // déjà rendu par substitution de modèle
}

// Build produit un jeu de champs frais. Le champ phrase est toujours
// renseigné ; les autres ne le sont que si leur nom est configuré.
func Build(names FieldNames, in BuildInput) Fields {
	fields := Fields{}
	if names.Sentence != "" {
		fields[names.Sentence] = in.SentenceText
	}
	if names.Secondary != "" {
		fields[names.Secondary] = in.SecondaryText
	}
	if names.Image != "" && in.SnapshotName != "" {
		fields[names.Image] = fmt.Sprintf(`<img src="%s">`, in.SnapshotName)
	}
	if names.Audio != "" && in.AudioName != "" {
		fields[names.Audio] = fmt.Sprintf("[sound:%s]", in.AudioName)
	}
	if names.MiscInfo != "" {
		fields[names.MiscInfo] = in.MiscInfo
	}
	return fields
}

// SoundRef rend la référence audio d'un fichier stocké dans la collection.
func SoundRef(filename string) string {
	return fmt.Sprintf("[sound:%s]", filename)
}
