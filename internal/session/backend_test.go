package session

import (
	"context"
	"errors"

	"github.com/patrickprogramme/scholar/pkg/model"
)

// fakeBackend : implémentation factice de Backend pour les tests.
// Chaque champ est optionnel ; absent, la méthode renvoie une erreur
// explicite pour faire échouer le test qui l'utilise par accident.
type fakeBackend struct {
	analyzeFn func(ctx context.Context, url string) (string, error)
	statusFn  func(ctx context.Context, id string) (model.Task, error)
	enrichFn  func(ctx context.Context, text string) (model.Enrichment, error)
	askFn     func(ctx context.Context, id, q string, h []model.ConversationTurn) (string, error)
	cardsFn   func(ctx context.Context, id string) ([]model.Flashcard, error)
}

var errNotWired = errors.New("fakeBackend : méthode non câblée")

func (f *fakeBackend) Analyze(ctx context.Context, url string) (string, error) {
	if f.analyzeFn == nil {
		return "", errNotWired
	}
	return f.analyzeFn(ctx, url)
}

func (f *fakeBackend) Status(ctx context.Context, id string) (model.Task, error) {
	if f.statusFn == nil {
		return model.Task{}, errNotWired
	}
	return f.statusFn(ctx, id)
}

func (f *fakeBackend) DeeperAnalysis(ctx context.Context, text string) (model.Enrichment, error) {
	if f.enrichFn == nil {
		return model.Enrichment{}, errNotWired
	}
	return f.enrichFn(ctx, text)
}

func (f *fakeBackend) Ask(ctx context.Context, id, q string, h []model.ConversationTurn) (string, error) {
	if f.askFn == nil {
		return "", errNotWired
	}
	return f.askFn(ctx, id, q, h)
}

func (f *fakeBackend) Flashcards(ctx context.Context, id string) ([]model.Flashcard, error) {
	if f.cardsFn == nil {
		return nil, errNotWired
	}
	return f.cardsFn(ctx, id)
}

// completedResult : petit résultat d'analyse cohérent réutilisé par les tests.
func completedResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Summary:  "résumé",
		FullText: "a b c d",
		Chapters: []model.Chapter{
			{Timestamp: "00:00", Topic: "Début"},
			{Timestamp: "00:10", Topic: "Suite"},
		},
		Transcript: []model.TranscriptSegment{
			{Timestamp: "00:00", Text: "a"},
			{Timestamp: "00:05", Text: "b"},
			{Timestamp: "00:10", Text: "c"},
			{Timestamp: "00:15", Text: "d"},
		},
		QA: []model.QAItem{{Question: "q", Answer: "a"}},
	}
}
