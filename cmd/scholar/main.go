package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/patrickprogramme/scholar/internal/app"
	"github.com/patrickprogramme/scholar/internal/assets"
	"github.com/patrickprogramme/scholar/internal/bootstrap"
	"github.com/patrickprogramme/scholar/internal/config"
	"github.com/patrickprogramme/scholar/internal/ui"
)

func main() {
	flags := parseFlags()

	// déterminer exePath/binDir
	binDir := "."
	exePath, err := os.Executable()
	if err != nil {
		log.Printf("impossible de déterminer le chemin de l'executable: %v", err)
	} else {
		binDir = filepath.Dir(exePath)
		fmt.Printf("Lancement depuis: %s\n", exePath)
	}

	// emplacement config par défaut
	if flags.ConfigPath == "scholar.yaml" || flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, "scholar.yaml")
	}

	// s'assurer que le fichier config existe, si non on le crée
	if err := bootstrap.EnsureConfigPresent(
		flags.ConfigPath,
		assets.Embedded,
		assets.DefaultConfigAsset,
	); err != nil {
		log.Printf("erreur: EnsureConfigPresent: %v", err)
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	// contrôle statique de la config (warnings non fataux)
	warnings, err := cfg.ValidateBackendReachability()
	if err != nil {
		log.Fatalf("config invalide: %v", err)
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w)
	}

	// appliquer le flag -auto par-dessus la config
	if flags.Auto {
		cfg.AutoMode = true
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tui := ui.NewTerminal()
	a := app.New(cfg, tui, flags)
	if err := a.Run(ctx); err != nil {
		log.Fatalf("app run: %v", err)
	}
}

func parseFlags() *app.CLIFlags {
	f := &app.CLIFlags{}
	flag.StringVar(&f.ConfigPath, "config", "scholar.yaml", "path to config file")
	flag.StringVar(&f.URL, "url", "", "YouTube URL (optional)")
	flag.BoolVar(&f.Auto, "auto", false, "exécution automatique sans boucle interactive")
	flag.Parse()
	return f
}
