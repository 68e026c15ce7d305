package session

import (
	"context"
	"errors"
	"testing"

	"github.com/patrickprogramme/scholar/pkg/model"
)

func TestAskAppendsExactlyTwoTurnsOnSuccess(t *testing.T) {
	cs := NewChatSession("epoch-1")

	var sentHistory []model.ConversationTurn
	err := cs.Ask(context.Background(), "Q1",
		func(ctx context.Context, q string, history []model.ConversationTurn) (string, error) {
			sentHistory = history
			return "A1", nil
		})
	if err != nil {
		t.Fatalf("Ask : %v", err)
	}

	// l'historique envoyé est celui d'AVANT l'ajout optimiste
	if len(sentHistory) != 0 {
		t.Fatalf("historique envoyé = %+v; want vide", sentHistory)
	}

	turns := cs.History()
	if len(turns) != 2 {
		t.Fatalf("fil = %+v; want 2 tours", turns)
	}
	if turns[0] != (model.ConversationTurn{Sender: model.SenderUser, Text: "Q1"}) {
		t.Fatalf("tour utilisateur = %+v", turns[0])
	}
	if turns[1] != (model.ConversationTurn{Sender: model.SenderAI, Text: "A1"}) {
		t.Fatalf("tour IA = %+v", turns[1])
	}
}

func TestAskFailureAppendsFallbackAndKeepsUserTurn(t *testing.T) {
	cs := NewChatSession("epoch-1")

	err := cs.Ask(context.Background(), "Q1",
		func(ctx context.Context, q string, history []model.ConversationTurn) (string, error) {
			return "", errors.New("backend indisponible")
		})
	if err != nil {
		t.Fatalf("Ask : %v (l'échec réseau n'est pas une erreur du fil)", err)
	}

	turns := cs.History()
	if len(turns) != 2 {
		t.Fatalf("fil = %+v; want 2 tours même en échec", turns)
	}
	if turns[0].Sender != model.SenderUser || turns[0].Text != "Q1" {
		t.Fatalf("le tour utilisateur a été altéré : %+v", turns[0])
	}
	if turns[1].Sender != model.SenderAI || turns[1].Text != FallbackAnswer {
		t.Fatalf("tour de repli attendu, got %+v", turns[1])
	}
}

func TestAskSendsPriorHistoryWithoutTheNewQuestion(t *testing.T) {
	cs := NewChatSession("epoch-1")

	if err := cs.Ask(context.Background(), "Q1",
		func(ctx context.Context, q string, h []model.ConversationTurn) (string, error) {
			return "A1", nil
		}); err != nil {
		t.Fatalf("Ask Q1 : %v", err)
	}

	var sent []model.ConversationTurn
	if err := cs.Ask(context.Background(), "Q2",
		func(ctx context.Context, q string, h []model.ConversationTurn) (string, error) {
			sent = h
			return "A2", nil
		}); err != nil {
		t.Fatalf("Ask Q2 : %v", err)
	}

	if len(sent) != 2 || sent[0].Text != "Q1" || sent[1].Text != "A1" {
		t.Fatalf("historique envoyé = %+v; want [Q1 A1] sans Q2", sent)
	}
	if cs.History()[2].Text != "Q2" {
		t.Fatalf("fil = %+v", cs.History())
	}
}

func TestAskIsSerializedNotQueued(t *testing.T) {
	cs := NewChatSession("epoch-1")
	release := make(chan struct{})
	started := make(chan struct{})

	go cs.Ask(context.Background(), "Q1",
		func(ctx context.Context, q string, h []model.ConversationTurn) (string, error) {
			close(started)
			<-release
			return "A1", nil
		})
	<-started

	if !cs.Busy() {
		t.Fatal("le fil doit être occupé")
	}
	// la deuxième question n'est pas mise en file : elle est refusée
	err := cs.Ask(context.Background(), "Q2",
		func(ctx context.Context, q string, h []model.ConversationTurn) (string, error) {
			t.Error("la deuxième question ne doit pas partir sur le réseau")
			return "", nil
		})
	if !errors.Is(err, ErrChatBusy) {
		t.Fatalf("Ask concurrent : %v; want ErrChatBusy", err)
	}

	close(release)
}

func TestStaleAnswerIsDiscarded(t *testing.T) {
	cs := NewChatSession("epoch-A")
	release := make(chan struct{})
	started := make(chan struct{})
	result := make(chan error, 1)

	go func() {
		result <- cs.Ask(context.Background(), "Q1",
			func(ctx context.Context, q string, h []model.ConversationTurn) (string, error) {
				close(started)
				<-release
				return "réponse périmée", nil
			})
	}()
	<-started

	cs.Reset("epoch-B")
	close(release)

	if err := <-result; !errors.Is(err, ErrStaleSession) {
		t.Fatalf("Ask : %v; want ErrStaleSession", err)
	}
	if got := cs.History(); len(got) != 0 {
		t.Fatalf("le fil de la nouvelle session doit être vierge, got %+v", got)
	}
	if cs.Busy() {
		t.Fatal("fil encore occupé après reset")
	}
}
