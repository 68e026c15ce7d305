package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ValidateBackendReachability vérifie de manière statique que l'URL du backend
// est bien formée et que le dossier de sortie est utilisable.
// Retourne warnings (non-fataux) et une erreur si c'est critique.
func (c *Config) ValidateBackendReachability() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	raw := strings.TrimSpace(c.BaseURL)
	if raw == "" {
		return warnings, fmt.Errorf("base_url vide dans la configuration")
	}

	u, perr := url.Parse(raw)
	if perr != nil {
		return warnings, fmt.Errorf("base_url invalide %q : %w", raw, perr)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return warnings, fmt.Errorf("base_url doit utiliser http ou https, reçu %q", u.Scheme)
	}
	if u.Host == "" {
		return warnings, fmt.Errorf("base_url sans hôte : %q", raw)
	}

	// le dossier de sortie : absence non fatale, il sera créé à la sauvegarde
	if st, serr := os.Stat(c.OutputDir); serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("le dossier de sortie n'existe pas encore : %s", c.OutputDir))
		} else {
			return warnings, fmt.Errorf("impossible d'accéder au dossier de sortie %s : %w", c.OutputDir, serr)
		}
	} else if !st.IsDir() {
		return warnings, fmt.Errorf("le chemin de sortie configuré n'est pas un répertoire : %s", c.OutputDir)
	}

	return warnings, nil
}
