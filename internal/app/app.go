package app

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/patrickprogramme/scholar/internal/api"
	"github.com/patrickprogramme/scholar/internal/clipboard"
	"github.com/patrickprogramme/scholar/internal/config"
	"github.com/patrickprogramme/scholar/internal/fsutil"
	"github.com/patrickprogramme/scholar/internal/player"
	"github.com/patrickprogramme/scholar/internal/session"
	"github.com/patrickprogramme/scholar/internal/ui"
	"github.com/patrickprogramme/scholar/internal/updater"
	"github.com/patrickprogramme/scholar/internal/videoid"
	"github.com/patrickprogramme/scholar/pkg/model"
)

const defaultUpdateTimeout = 15 * time.Second

// Version est injectée au build (-ldflags "-X .../internal/app.Version=v1.2.3").
var Version = "dev"

// CLIFlags contient les information venant des flags de l'app
type CLIFlags struct {
	ConfigPath string
	URL        string
	Auto       bool
}

// App orchestre les différentes dépendances (UI, backend, session, lecteur).
type App struct {
	cfg     *config.Config
	ui      ui.Interface
	flags   *CLIFlags
	session *session.Controller // initialisée dans Run
	sync    *player.Sync
}

// New construit l'application en initialisant les dépendances par défaut.
// Pour les tests, on préférera construire App en injectant des implémentations mock.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags) *App {
	return &App{
		cfg:   cfg,
		ui:    uiClient,
		flags: flags,
		sync:  player.NewSync(),
	}
}

// Run exécute le flux principal : soumettre l'analyse, suivre sa progression,
// puis (hors mode auto) ouvrir la boucle de commandes interactive.
func (a *App) Run(ctx context.Context) error {
	// Update check (optionnel)
	if a.cfg.AutoUpdateCheck {
		a.updateCheck(ctx, defaultUpdateTimeout)
	}

	// Récupération de l'URL : priorité flag > clipboard > prompt
	url := a.flags.URL
	if url == "" {
		u, err := a.ui.GetVideoURL(ctx)
		if err != nil {
			return fmt.Errorf("get url: %w", err)
		}
		url = u
	}

	videoID, ok := videoid.Extract(url)
	if !ok {
		return fmt.Errorf("URL non reconnue comme vidéo Youtube : %s", url)
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("Vidéo : %s", videoID))

	backend := api.NewClient(a.cfg.BaseURL, a.cfg.RequestTimeout())
	a.session = session.New(backend, a.cfg.PollInterval(), a.progressPrinter(ctx))

	// lecteur factice : pas de player embarqué, on affiche la position demandée
	a.sync.Attach(printSeeker{ui: a.ui, ctx: ctx})

	if err := a.session.Open(ctx, url); err != nil {
		return fmt.Errorf("soumission de l'analyse: %w", err)
	}
	defer a.session.Close()

	// attendre la fin de l'analyse (ou l'annulation)
	select {
	case <-ctx.Done():
		return fmt.Errorf("opération annulée")
	case <-a.session.Done():
	}

	task := a.session.Task()
	switch task.Status {
	case model.StatusCompleted:
		// on continue ci-dessous
	case model.StatusFailed:
		if task.Failure != "" {
			return fmt.Errorf("analyse échouée : %s", task.Failure)
		}
		if err := a.session.Err(); err != nil {
			return fmt.Errorf("analyse échouée : %w", err)
		}
		return fmt.Errorf("analyse échouée")
	default:
		// polling arrêté sans état terminal (annulation)
		if err := a.session.Err(); err != nil {
			return fmt.Errorf("analyse interrompue : %w", err)
		}
		return fmt.Errorf("analyse interrompue")
	}

	result, _ := a.session.Result()
	a.ui.PrintInfo(ctx, "\n== Résumé ==")
	a.ui.PrintInfo(ctx, result.Summary)

	if err := a.saveResult(ctx, videoID, result); err != nil {
		return err
	}

	if a.cfg.CopySummaryToClipboard && result.Summary != "" {
		if err := clipboard.WriteAll(result.Summary); err != nil {
			a.ui.PrintError(ctx, fmt.Sprintf("warning: copie du résumé impossible: %v", err))
		} else {
			a.ui.PrintInfo(ctx, "Résumé copié dans le presse-papier.")
		}
	}

	if a.flags.Auto || a.cfg.AutoMode {
		return nil
	}
	return a.commandLoop(ctx)
}

// progressPrinter renvoie le callback branché sur chaque remplacement de Task :
// il n'affiche que les changements de statut ou d'étape.
func (a *App) progressPrinter(ctx context.Context) func(model.Task) {
	var last string
	return func(t model.Task) {
		line := string(t.Status)
		if t.Stage != "" {
			line = fmt.Sprintf("%s (%s)", t.Status, t.Stage)
		}
		if line == last {
			return
		}
		last = line
		a.ui.PrintInfo(ctx, fmt.Sprintf("… %s", line))
	}
}

// saveResult sérialise le résultat complet en JSON dans le dossier de sortie.
func (a *App) saveResult(ctx context.Context, videoID string, result *model.AnalysisResult) error {
	if !a.cfg.SaveResultJSON {
		return nil
	}
	outDir := a.cfg.OutputDir
	if a.cfg.SaveInSubdir {
		outDir = filepath.Join(outDir, fsutil.SanitizeFilename(videoID))
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encodage du résultat: %w", err)
	}
	path, err := fsutil.SaveJSONAtomic(outDir, "analysis", data, true)
	if err != nil {
		return fmt.Errorf("sauvegarde du résultat: %w", err)
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("Résultat écrit dans :\n%s", path))
	return nil
}

func (a *App) updateCheck(ctx context.Context, timeout time.Duration) {
	uc, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	check, err := updater.CheckUpdate(uc, Version)
	if err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("vérification de mise à jour a échoué : %v", err))
		return
	}

	if check.IsUpToDate {
		a.ui.PrintInfo(ctx, fmt.Sprintf("✅ scholar est à jour (%s)", check.CurrentVersion))
		return
	}

	a.ui.PrintInfo(ctx, "⚠️ Nouvelle version de scholar disponible :")
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Installée : %s", check.CurrentVersion))
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Dernière  : %s", check.LatestRelease.TagName))
	a.ui.PrintInfo(ctx, fmt.Sprintf("Détails : %s", check.LatestRelease.HTMLURL))
}

// printSeeker affiche la position demandée faute de lecteur embarqué.
type printSeeker struct {
	ui  ui.Interface
	ctx context.Context
}

func (p printSeeker) SeekTo(seconds model.Seconds) {
	p.ui.PrintInfo(p.ctx, fmt.Sprintf("▶ position : %s (%ds)", seconds.Clock(), int64(seconds)))
}
