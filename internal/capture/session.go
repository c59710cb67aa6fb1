package capture

import "strings"

// SubtitleLine est une ligne de sous-titre telle que vue dans le lecteur au
// moment de son affichage.
type SubtitleLine struct {
	Text          string
	SecondaryText string
	Start         float64 // secondes
	End           float64 // secondes
}

// IsZero renvoie true si la ligne ne porte aucune information utile.
func (l SubtitleLine) IsZero() bool {
	return l.Text == "" && l.SecondaryText == ""
}

// Session accumule les lignes de sous-titres observées depuis l'ouverture de
// la fenêtre de capture. Les mutations n'ont lieu que pendant l'observation ;
// la session est détruite à l'export, au clear explicite, ou avant qu'une
// nouvelle capture démarre.
type Session struct {
	lines     []SubtitleLine
	observing bool
}

// NewSession construit une session vide, non observante.
func NewSession() *Session {
	return &Session{}
}

// StartObserving ouvre la fenêtre de capture.
func (s *Session) StartObserving() { s.observing = true }

// StopObserving ferme la fenêtre de capture. À appeler AVANT Reset pour
// qu'aucune notification tardive ne tombe dans une session déjà vidée.
func (s *Session) StopObserving() { s.observing = false }

// Observing renvoie true si la fenêtre de capture est ouverte.
func (s *Session) Observing() bool { return s.observing }

// Insert ajoute une ligne si la fenêtre est ouverte et si la ligne diffère de
// la dernière insérée (les notifications de propriété du lecteur se répètent).
// Renvoie true si une ligne a réellement été ajoutée.
func (s *Session) Insert(line SubtitleLine) bool {
	if !s.observing || line.IsZero() {
		return false
	}
	if n := len(s.lines); n > 0 && s.lines[n-1] == line {
		return false
	}
	s.lines = append(s.lines, line)
	return true
}

// Seed insère une ligne hors fenêtre d'observation. Utilisé par le resolver
// comme repli "capturer la ligne actuellement visible" quand la session est
// vide au moment de la résolution.
func (s *Session) Seed(line SubtitleLine) {
	if line.IsZero() {
		return
	}
	s.lines = append(s.lines, line)
}

// IsEmpty renvoie true si aucune ligne n'a été accumulée.
func (s *Session) IsEmpty() bool { return len(s.lines) == 0 }

// Len renvoie le nombre de lignes accumulées.
func (s *Session) Len() int { return len(s.lines) }

// Text concatène les textes accumulés (primaires ou secondaires) dans l'ordre
// d'insertion, joints par un espace simple, puis trim.
func (s *Session) Text(secondary bool) string {
	parts := make([]string, 0, len(s.lines))
	for _, l := range s.lines {
		t := l.Text
		if secondary {
			t = l.SecondaryText
		}
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Time renvoie la borne dérivée des lignes accumulées : minimum des débuts
// pour Start, maximum des fins pour End. -1 si la session est vide.
func (s *Session) Time(pos Position) float64 {
	if len(s.lines) == 0 {
		return -1
	}
	out := s.lines[0].Start
	if pos == End {
		out = s.lines[0].End
	}
	for _, l := range s.lines[1:] {
		switch pos {
		case Start:
			if l.Start < out {
				out = l.Start
			}
		case End:
			if l.End > out {
				out = l.End
			}
		}
	}
	return out
}

// Reset vide la session. L'appelant doit avoir appelé StopObserving (et
// détaché l'observateur côté lecteur) avant.
func (s *Session) Reset() {
	s.lines = nil
}

// Clear ferme la fenêtre puis vide la session.
func (s *Session) Clear() {
	s.StopObserving()
	s.Reset()
}
