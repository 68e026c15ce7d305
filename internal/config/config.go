package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickprogramme/scholar/internal/assets"
	"github.com/patrickprogramme/scholar/internal/fsutil"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

// Valeurs par défaut du contrat réseau : cadence de polling fixée à 2s,
// exposée en paramètre pour les tests et les backends lents.
const (
	defaultBaseURL        = "http://localhost:8000"
	defaultPollIntervalMs = 2000
	defaultTimeoutS       = 15
)

// struct pour les paramètres de configuration
type Config struct {
	// Backend
	BaseURL         string `yaml:"base_url"`
	PollIntervalMs  int    `yaml:"poll_interval_ms"`
	RequestTimeoutS int    `yaml:"request_timeout_s"`

	// Chemins
	OutputDir string `yaml:"output_dir"`

	// Organisation
	SaveInSubdir bool `yaml:"save_in_subdir"`

	// Résultats
	SaveResultJSON         bool `yaml:"save_result_json"`
	CopySummaryToClipboard bool `yaml:"copy_summary_to_clipboard"`

	// Mode automatique : pas de boucle interactive après l'analyse
	AutoMode bool `yaml:"auto_mode"`

	// Mise à jour
	AutoUpdateCheck bool `yaml:"auto_update_check"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	// Backend
	c.BaseURL = defaultBaseURL
	c.PollIntervalMs = defaultPollIntervalMs
	c.RequestTimeoutS = defaultTimeoutS

	// Chemins
	c.OutputDir = "."

	// Organisation
	c.SaveInSubdir = true

	// Résultats
	c.SaveResultJSON = false
	c.CopySummaryToClipboard = true

	// Mode automatique
	c.AutoMode = false

	// Mise à jour
	c.AutoUpdateCheck = false

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué
// depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = "scholar.yaml"
	}

	// si le fichier n'existe pas -> essayer de créer à partir de l'asset embarqué
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	// lire le YAML brut et déserialiser dans cfg (les champs présents écraseront les defaults)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// On déserialise dans cfg initialisé : les champs absents conservent les valeurs par défaut.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		// re-normaliser au cas où la migration a modifié des valeurs
		cfg.normalizeConfig()
	}

	return cfg, nil
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("échec mkdir pour la configuration %s : %w", filepath.Dir(dstPath), err)
	}

	// écrire atomiquement sur disque (évite les fichiers partiels)
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}

	fmt.Printf("info : fichier de configuration par défaut créé : %s\n", dstPath)
	return nil
}

func (c *Config) normalizeConfig() {
	// Nettoyage des chemins
	c.OutputDir = filepath.Clean(c.OutputDir)

	// URL du backend : pas de slash final, fallback sur la valeur par défaut
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}

	if c.PollIntervalMs <= 0 {
		c.PollIntervalMs = defaultPollIntervalMs
	}
	if c.RequestTimeoutS <= 0 {
		c.RequestTimeoutS = defaultTimeoutS
	}
}

// PollInterval renvoie la cadence de polling sous forme de durée.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// RequestTimeout renvoie le délai maximal d'une requête au backend.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutS) * time.Second
}
