// Package session contient l'orchestration côté client d'une analyse :
// cycle de vie de la tâche (soumission, polling, état terminal), cache
// d'enrichissement, fil de discussion et deck de flashcards, le tout
// invalidé en bloc à chaque nouvelle soumission.
package session

import (
	"context"

	"github.com/patrickprogramme/scholar/pkg/model"
)

// Backend est l'abstraction du backend d'analyse utilisée par la session.
// Elle facilite le test en autorisant une implémentation factice ;
// en production c'est api.Client qui la satisfait.
type Backend interface {
	Analyze(ctx context.Context, videoURL string) (string, error)
	Status(ctx context.Context, taskID string) (model.Task, error)
	DeeperAnalysis(ctx context.Context, text string) (model.Enrichment, error)
	Ask(ctx context.Context, taskID, question string, history []model.ConversationTurn) (string, error)
	Flashcards(ctx context.Context, taskID string) ([]model.Flashcard, error)
}
