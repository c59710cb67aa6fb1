package bootstrap

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/patrickprogramme/ankiclip/internal/fsutil"
)

// EnsureConfigPresent crée le fichier de configuration à partir de l'asset
// embarqué s'il n'existe pas encore. Ne remplace jamais un fichier existant.
func EnsureConfigPresent(dstPath string, fsys fs.FS, srcAsset string) error {
	if _, err := os.Stat(dstPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("échec lors du test du fichier de configuration %s : %w", dstPath, err)
	}

	data, err := fs.ReadFile(fsys, srcAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}

	// écrire atomiquement sur disque (évite les fichiers partiels)
	if err := fsutil.WriteFileAtomic(dstPath, data, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}

	fmt.Printf("info : fichier de configuration par défaut créé : %s\n", dstPath)
	return nil
}
