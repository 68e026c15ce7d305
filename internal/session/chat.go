package session

import (
	"context"
	"errors"
	"sync"

	"github.com/patrickprogramme/scholar/pkg/model"
)

// ErrChatBusy : une question est déjà en vol. Les demandes concurrentes ne
// sont pas mises en file, elles sont simplement refusées.
var ErrChatBusy = errors.New("une question est déjà en cours de traitement")

// FallbackAnswer est le tour IA ajouté quand la requête échoue : le tour
// utilisateur n'est jamais retiré, le fil reste append-only même en échec.
const FallbackAnswer = "Désolé, je n'ai pas pu obtenir de réponse. Réessayez votre question."

// SendFunc exécute l'appel réseau d'une question : elle reçoit la question
// et l'historique tel qu'il existait AVANT l'ajout optimiste.
type SendFunc func(ctx context.Context, question string, history []model.ConversationTurn) (string, error)

// ChatSession est le journal ordonné, append-only, de la conversation de la
// session courante, avec discipline "une seule requête en vol".
type ChatSession struct {
	mu    sync.Mutex
	epoch string
	turns []model.ConversationTurn
	busy  bool
}

// NewChatSession construit un fil vide pour l'epoch donné.
func NewChatSession(epoch string) *ChatSession {
	return &ChatSession{epoch: epoch}
}

// Ask pose une question. Le tour utilisateur est ajouté de façon optimiste,
// de manière synchrone, avant tout appel réseau ; l'historique envoyé est
// le snapshot pris juste avant cet ajout, la question voyageant à part.
//
// Succès -> ajout d'un tour IA avec la réponse. Échec -> ajout d'un tour IA
// de repli. Dans les deux cas le fil grandit d'exactement deux tours.
// Une réponse arrivant après remplacement de la session est écartée.
func (cs *ChatSession) Ask(ctx context.Context, question string, send SendFunc) error {
	cs.mu.Lock()
	if cs.busy {
		cs.mu.Unlock()
		return ErrChatBusy
	}
	cs.busy = true
	epoch := cs.epoch

	// snapshot du fil AVANT l'ajout optimiste : c'est lui qui part sur le
	// réseau, la nouvelle question n'y figure pas
	history := make([]model.ConversationTurn, len(cs.turns))
	copy(history, cs.turns)

	cs.turns = append(cs.turns, model.ConversationTurn{Sender: model.SenderUser, Text: question})
	cs.mu.Unlock()

	answer, err := send(ctx, question, history)
	if err != nil {
		answer = FallbackAnswer
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.epoch != epoch {
		return ErrStaleSession
	}
	cs.busy = false
	cs.turns = append(cs.turns, model.ConversationTurn{Sender: model.SenderAI, Text: answer})
	return nil
}

// History renvoie une copie du fil, dans l'ordre d'ajout.
func (cs *ChatSession) History() []model.ConversationTurn {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := make([]model.ConversationTurn, len(cs.turns))
	copy(out, cs.turns)
	return out
}

// Busy indique si une question est en vol.
func (cs *ChatSession) Busy() bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.busy
}

// Reset vide le fil pour la nouvelle session identifiée par epoch.
func (cs *ChatSession) Reset(epoch string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.epoch = epoch
	cs.turns = nil
	cs.busy = false
}
