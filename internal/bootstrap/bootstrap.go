package bootstrap

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/patrickprogramme/scholar/internal/fsutil"
)

// EnsureConfigPresent installe le fichier de configuration à dstPath à partir
// de l'asset embarqué assetPath, uniquement s'il est absent.
// Comportement : idempotent, ne remplace jamais un fichier existant.
func EnsureConfigPresent(dstPath string, fsys fs.FS, assetPath string) error {
	if err := ensureParentDir(dstPath); err != nil {
		return err
	}

	// si le fichier existe déjà -> ne rien faire
	if _, err := os.Stat(dstPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("échec stat fichier cible %s: %w", dstPath, err)
	}

	// lire l'asset embarqué
	data, err := fs.ReadFile(fsys, filepath.ToSlash(assetPath))
	if err != nil {
		return fmt.Errorf("lecture asset embarqué %s: %w", assetPath, err)
	}

	// écrire atomiquement
	if err := fsutil.WriteFileAtomic(dstPath, data, 0o644); err != nil {
		return fmt.Errorf("échec écriture config %s: %w", dstPath, err)
	}

	fmt.Printf("info: created default config at %s\n", dstPath)
	return nil
}

// ensureParentDir crée le dossier parent de path s'il n'existe pas encore.
func ensureParentDir(path string) error {
	parent := filepath.Dir(path)
	if parent == "" {
		parent = "."
	}
	st, err := os.Stat(parent)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return fmt.Errorf("échec création répertoire parent %s: %w", parent, err)
			}
			return nil
		}
		return fmt.Errorf("échec test parent %s: %w", parent, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("le parent existe mais n'est pas un répertoire : %s", parent)
	}
	return nil
}
