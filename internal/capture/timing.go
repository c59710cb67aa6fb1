package capture

// Position identifie l'une des deux bornes d'un intervalle de capture.
type Position int

const (
	Start Position = iota
	End
)

// TimingTracker conserve les bornes de temps fixées explicitement par
// l'utilisateur. Une borne posée ici prime sur les temps dérivés des
// sous-titres. Aucune validation : c'est le resolver qui valide.
type TimingTracker struct {
	set [2]bool
	val [2]float64
}

// Set enregistre une borne (en secondes, valeur brute).
func (t *TimingTracker) Set(pos Position, secs float64) {
	t.set[pos] = true
	t.val[pos] = secs
}

// Get renvoie la borne et true si elle a été posée.
func (t *TimingTracker) Get(pos Position) (float64, bool) {
	return t.val[pos], t.set[pos]
}

// IsSet renvoie true si la borne a été posée.
func (t *TimingTracker) IsSet(pos Position) bool {
	return t.set[pos]
}

// Clear efface les deux bornes.
func (t *TimingTracker) Clear() {
	t.set[Start], t.set[End] = false, false
	t.val[Start], t.val[End] = 0, 0
}
