package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickprogramme/scholar/internal/transcript"
	"github.com/patrickprogramme/scholar/pkg/model"
)

// ErrNotCompleted : l'opération demandée exige un résultat d'analyse,
// la tâche courante n'en a pas (encore).
var ErrNotCompleted = errors.New("aucune analyse terminée dans la session courante")

// Controller est la racine de composition d'une session : une nouvelle
// soumission frappe un nouvel epoch (uuid), réinitialise le contrôleur de
// tâche et invalide inconditionnellement cache d'enrichissement, fil de
// discussion et deck de flashcards.
//
// L'epoch étiquette chaque requête secondaire au départ ; une réponse dont
// l'étiquette ne correspond plus à la session courante est écartée.
type Controller struct {
	backend Backend
	tasks   *TaskController
	cache   *EnrichmentCache
	chat    *ChatSession
	deck    *FlashcardDeck

	mu    sync.Mutex
	epoch string
}

// New construit une session vide. pollInterval <= 0 -> DefaultPollInterval.
// onUpdate (optionnel) est notifié à chaque remplacement de la Task.
func New(backend Backend, pollInterval time.Duration, onUpdate func(model.Task)) *Controller {
	epoch := uuid.NewString()
	return &Controller{
		backend: backend,
		tasks:   NewTaskController(backend, pollInterval, onUpdate),
		cache:   NewEnrichmentCache(epoch),
		chat:    NewChatSession(epoch),
		deck:    NewFlashcardDeck(epoch),
		epoch:   epoch,
	}
}

// Open démarre une nouvelle analyse pour videoURL. Tout l'état dérivé de la
// session précédente est vidé AVANT la soumission : même si la nouvelle
// tâche échoue à démarrer, l'ancien état n'est plus visible.
func (s *Controller) Open(ctx context.Context, videoURL string) error {
	epoch := uuid.NewString()

	s.mu.Lock()
	s.epoch = epoch
	s.mu.Unlock()

	s.cache.Invalidate(epoch)
	s.chat.Reset(epoch)
	s.deck.Reset(epoch)

	return s.tasks.Submit(ctx, videoURL)
}

// Close arrête le polling en cours. Les requêtes déjà parties ne sont pas
// interrompues, leurs réponses tardives seront écartées par étiquette.
func (s *Controller) Close() {
	s.tasks.Cancel()
}

// Task renvoie une copie de la Task courante (lecture seule pour tous les
// composants hors TaskController).
func (s *Controller) Task() model.Task {
	return s.tasks.Snapshot()
}

// Done est fermé quand la soumission courante ne produira plus rien.
func (s *Controller) Done() <-chan struct{} {
	return s.tasks.Done()
}

// Err renvoie l'erreur fatale de la session courante (nil sinon).
func (s *Controller) Err() error {
	return s.tasks.Err()
}

// State renvoie l'état local du contrôleur de tâche.
func (s *Controller) State() TaskState {
	return s.tasks.State()
}

// Result renvoie le résultat d'analyse si la tâche est terminée avec succès.
func (s *Controller) Result() (*model.AnalysisResult, bool) {
	task := s.tasks.Snapshot()
	if task.Status != model.StatusCompleted || task.Result == nil {
		return nil, false
	}
	return task.Result, true
}

// ChapterText dérive la tranche de transcript du chapitre demandé.
// Requête pure, recalculée à chaque appel depuis le résultat courant.
func (s *Controller) ChapterText(chapterTimestamp string) (string, error) {
	result, ok := s.Result()
	if !ok {
		return "", ErrNotCompleted
	}
	return transcript.SpanFor(result.Transcript, result.Chapters, chapterTimestamp), nil
}

// EnrichFullText charge l'enrichissement du texte intégral sous la clé
// "full_text".
func (s *Controller) EnrichFullText(ctx context.Context) (model.Enrichment, error) {
	result, ok := s.Result()
	if !ok {
		return model.Enrichment{}, ErrNotCompleted
	}
	return s.cache.Load(ctx, model.ScopeFullText, result.FullText, s.backend.DeeperAnalysis)
}

// EnrichChapter charge l'enrichissement d'un chapitre sous la clé
// "chapter_<mm:ss>", à partir de sa tranche de transcript.
func (s *Controller) EnrichChapter(ctx context.Context, chapterTimestamp string) (model.Enrichment, error) {
	text, err := s.ChapterText(chapterTimestamp)
	if err != nil {
		return model.Enrichment{}, err
	}
	if text == "" {
		return model.Enrichment{}, fmt.Errorf("chapitre %q : aucune tranche de transcript", chapterTimestamp)
	}
	return s.cache.Load(ctx, model.ChapterScope(chapterTimestamp), text, s.backend.DeeperAnalysis)
}

// Ask pose une question libre sur l'analyse courante.
func (s *Controller) Ask(ctx context.Context, question string) error {
	task := s.tasks.Snapshot()
	if task.Status != model.StatusCompleted {
		return ErrNotCompleted
	}
	taskID := task.ID
	return s.chat.Ask(ctx, question, func(ctx context.Context, q string, history []model.ConversationTurn) (string, error) {
		return s.backend.Ask(ctx, taskID, q, history)
	})
}

// GenerateFlashcards (re)génère le lot de cartes de la session courante.
func (s *Controller) GenerateFlashcards(ctx context.Context) ([]model.Flashcard, error) {
	task := s.tasks.Snapshot()
	if task.Status != model.StatusCompleted {
		return nil, ErrNotCompleted
	}
	taskID := task.ID
	return s.deck.Generate(ctx, func(ctx context.Context) ([]model.Flashcard, error) {
		return s.backend.Flashcards(ctx, taskID)
	})
}

// Enrichments expose le cache d'enrichissement (lecture).
func (s *Controller) Enrichments() *EnrichmentCache { return s.cache }

// Chat expose le fil de discussion (lecture).
func (s *Controller) Chat() *ChatSession { return s.chat }

// Deck expose le deck de flashcards.
func (s *Controller) Deck() *FlashcardDeck { return s.deck }

// Epoch renvoie l'étiquette de la session courante.
func (s *Controller) Epoch() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}
