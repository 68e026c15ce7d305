package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/patrickprogramme/scholar/internal/session"
	"github.com/patrickprogramme/scholar/pkg/model"
)

const commandHelp = `Commandes disponibles :
  summary              afficher le résumé
  chapters             lister les chapitres
  transcript [n]       afficher le transcript (du chapitre n si précisé)
  qa                   afficher les questions/réponses pré-calculées
  visuals              lister les repères visuels
  enrich full          analyse approfondie du texte intégral
  enrich <n>           analyse approfondie du chapitre n
  ask <question>       poser une question libre
  cards                générer (ou regénérer) les flashcards
  flip <n>             retourner la carte n
  seek <mm:ss>         positionner le lecteur
  open <url>           analyser une autre vidéo
  help                 afficher cette aide
  quit                 quitter`

// commandLoop lit et exécute les commandes jusqu'à quit ou annulation.
func (a *App) commandLoop(ctx context.Context) error {
	a.ui.PrintInfo(ctx, "\nAnalyse terminée. Tapez 'help' pour la liste des commandes.")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, err := a.ui.ReadCommand(ctx, "scholar> ")
		if err != nil {
			return fmt.Errorf("lecture commande: %w", err)
		}
		if line == "" {
			continue
		}

		verb, arg := splitCommand(line)
		switch verb {
		case "quit", "exit", "q":
			return nil
		case "help", "h", "?":
			a.ui.PrintInfo(ctx, commandHelp)
		case "summary":
			a.cmdSummary(ctx)
		case "chapters":
			a.cmdChapters(ctx)
		case "transcript":
			a.cmdTranscript(ctx, arg)
		case "qa":
			a.cmdQA(ctx)
		case "visuals":
			a.cmdVisuals(ctx)
		case "enrich":
			a.cmdEnrich(ctx, arg)
		case "ask":
			a.cmdAsk(ctx, arg)
		case "cards":
			a.cmdCards(ctx)
		case "flip":
			a.cmdFlip(ctx, arg)
		case "seek":
			a.sync.Seek(arg)
		case "open":
			if err := a.cmdOpen(ctx, arg); err != nil {
				a.ui.PrintError(ctx, err.Error())
			}
		default:
			a.ui.PrintError(ctx, fmt.Sprintf("commande inconnue : %q (tapez 'help')", verb))
		}
	}
}

// splitCommand sépare le verbe du reste de la ligne.
func splitCommand(line string) (verb, arg string) {
	parts := strings.SplitN(line, " ", 2)
	verb = strings.ToLower(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return verb, arg
}

func (a *App) cmdSummary(ctx context.Context) {
	result, ok := a.session.Result()
	if !ok {
		a.ui.PrintError(ctx, session.ErrNotCompleted.Error())
		return
	}
	a.ui.PrintInfo(ctx, result.Summary)
}

func (a *App) cmdChapters(ctx context.Context) {
	result, ok := a.session.Result()
	if !ok {
		a.ui.PrintError(ctx, session.ErrNotCompleted.Error())
		return
	}
	if len(result.Chapters) == 0 {
		a.ui.PrintInfo(ctx, "Aucun chapitre.")
		return
	}
	for i, ch := range result.Chapters {
		a.ui.PrintInfo(ctx, fmt.Sprintf("%2d. [%s] %s", i+1, ch.Timestamp, ch.Topic))
	}
}

func (a *App) cmdTranscript(ctx context.Context, arg string) {
	result, ok := a.session.Result()
	if !ok {
		a.ui.PrintError(ctx, session.ErrNotCompleted.Error())
		return
	}

	// sans argument : transcript complet, segment par segment
	if arg == "" {
		for _, seg := range result.Transcript {
			a.ui.PrintInfo(ctx, fmt.Sprintf("[%s] %s", seg.Timestamp, seg.Text))
		}
		return
	}

	ch, err := a.chapterByArg(result, arg)
	if err != nil {
		a.ui.PrintError(ctx, err.Error())
		return
	}
	text, err := a.session.ChapterText(ch.Timestamp)
	if err != nil {
		a.ui.PrintError(ctx, err.Error())
		return
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("[%s] %s", ch.Timestamp, ch.Topic))
	a.ui.PrintInfo(ctx, text)
}

func (a *App) cmdQA(ctx context.Context) {
	result, ok := a.session.Result()
	if !ok {
		a.ui.PrintError(ctx, session.ErrNotCompleted.Error())
		return
	}
	if len(result.QA) == 0 {
		a.ui.PrintInfo(ctx, "Aucune question pré-calculée.")
		return
	}
	for _, item := range result.QA {
		a.ui.PrintInfo(ctx, fmt.Sprintf("Q: %s\nR: %s\n", item.Question, item.Answer))
	}
}

func (a *App) cmdVisuals(ctx context.Context) {
	result, ok := a.session.Result()
	if !ok {
		a.ui.PrintError(ctx, session.ErrNotCompleted.Error())
		return
	}
	if len(result.Visuals) == 0 {
		a.ui.PrintInfo(ctx, "Aucun repère visuel.")
		return
	}
	for _, v := range result.Visuals {
		a.ui.PrintInfo(ctx, fmt.Sprintf("[%s] %s", v.Timestamp, v.Description))
	}
}

func (a *App) cmdEnrich(ctx context.Context, arg string) {
	if arg == "" {
		a.ui.PrintError(ctx, "usage : enrich full | enrich <n>")
		return
	}

	var (
		enr model.Enrichment
		err error
	)
	if strings.EqualFold(arg, "full") {
		enr, err = a.session.EnrichFullText(ctx)
	} else {
		result, ok := a.session.Result()
		if !ok {
			a.ui.PrintError(ctx, session.ErrNotCompleted.Error())
			return
		}
		ch, cerr := a.chapterByArg(result, arg)
		if cerr != nil {
			a.ui.PrintError(ctx, cerr.Error())
			return
		}
		enr, err = a.session.EnrichChapter(ctx, ch.Timestamp)
	}

	switch {
	case errors.Is(err, session.ErrEnrichBusy):
		a.ui.PrintInfo(ctx, "Une analyse approfondie est déjà en cours, patientez.")
		return
	case err != nil:
		a.ui.PrintError(ctx, err.Error())
		return
	}
	a.printEnrichment(ctx, enr)
}

func (a *App) printEnrichment(ctx context.Context, enr model.Enrichment) {
	if enr.Failed() {
		a.ui.PrintError(ctx, fmt.Sprintf("analyse approfondie échouée : %s", enr.Err))
		return
	}
	if len(enr.KeyConcepts) > 0 {
		a.ui.PrintInfo(ctx, "Concepts clés :")
		for _, c := range enr.KeyConcepts {
			a.ui.PrintInfo(ctx, "  • "+c)
		}
	}
	if enr.ELI5 != "" {
		a.ui.PrintInfo(ctx, "\nExpliqué simplement :")
		a.ui.PrintInfo(ctx, enr.ELI5)
	}
	if len(enr.FollowUpQuestions) > 0 {
		a.ui.PrintInfo(ctx, "\nPour aller plus loin :")
		for _, q := range enr.FollowUpQuestions {
			a.ui.PrintInfo(ctx, "  ? "+q)
		}
	}
}

func (a *App) cmdAsk(ctx context.Context, question string) {
	if question == "" {
		a.ui.PrintError(ctx, "usage : ask <question>")
		return
	}
	err := a.session.Ask(ctx, question)
	switch {
	case errors.Is(err, session.ErrChatBusy):
		a.ui.PrintInfo(ctx, "Une question est déjà en cours, patientez.")
		return
	case err != nil:
		a.ui.PrintError(ctx, err.Error())
		return
	}
	// afficher le dernier tour (la réponse, ou le message de repli)
	history := a.session.Chat().History()
	if len(history) > 0 {
		a.ui.PrintInfo(ctx, history[len(history)-1].Text)
	}
}

func (a *App) cmdCards(ctx context.Context) {
	cards, err := a.session.GenerateFlashcards(ctx)
	switch {
	case errors.Is(err, session.ErrDeckBusy):
		a.ui.PrintInfo(ctx, "Une génération de cartes est déjà en cours, patientez.")
		return
	case err != nil:
		a.ui.PrintError(ctx, err.Error())
		return
	}
	a.printDeck(ctx, cards)
}

func (a *App) printDeck(ctx context.Context, cards []model.Flashcard) {
	if len(cards) == 0 {
		a.ui.PrintInfo(ctx, "Aucune carte générée.")
		return
	}
	deck := a.session.Deck()
	for i, card := range cards {
		face := card.Front
		side := "recto"
		if deck.IsFlipped(i) {
			face = card.Back
			side = "verso"
		}
		a.ui.PrintInfo(ctx, fmt.Sprintf("%2d. (%s) %s", i+1, side, face))
	}
}

func (a *App) cmdFlip(ctx context.Context, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		a.ui.PrintError(ctx, "usage : flip <n>")
		return
	}
	a.session.Deck().ToggleFlip(n - 1)
	a.printDeck(ctx, a.session.Deck().Cards())
}

// cmdOpen relance une analyse sur une autre vidéo dans la même session.
func (a *App) cmdOpen(ctx context.Context, url string) error {
	if url == "" {
		return fmt.Errorf("usage : open <url>")
	}
	if err := a.session.Open(ctx, url); err != nil {
		return fmt.Errorf("soumission de l'analyse: %w", err)
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("opération annulée")
	case <-a.session.Done():
	}

	task := a.session.Task()
	if task.Status != model.StatusCompleted {
		if task.Failure != "" {
			return fmt.Errorf("analyse échouée : %s", task.Failure)
		}
		if err := a.session.Err(); err != nil {
			return fmt.Errorf("analyse échouée : %w", err)
		}
		return fmt.Errorf("analyse interrompue")
	}
	result, _ := a.session.Result()
	a.ui.PrintInfo(ctx, "\n== Résumé ==")
	a.ui.PrintInfo(ctx, result.Summary)
	return nil
}

// chapterByArg résout un argument utilisateur ("2" ou "01:30") en chapitre.
func (a *App) chapterByArg(result *model.AnalysisResult, arg string) (model.Chapter, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(result.Chapters) {
			return model.Chapter{}, fmt.Errorf("chapitre %d hors limites (1..%d)", n, len(result.Chapters))
		}
		return result.Chapters[n-1], nil
	}
	// sinon, chercher par timestamp exact
	for _, ch := range result.Chapters {
		if ch.Timestamp == arg {
			return ch, nil
		}
	}
	return model.Chapter{}, fmt.Errorf("chapitre introuvable : %q", arg)
}
