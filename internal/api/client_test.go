package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/patrickprogramme/scholar/pkg/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

func TestAnalyzeReturnsTaskID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("méthode = %s; want POST", r.Method)
		}
		if got := r.URL.Query().Get("youtube_url"); got != "https://youtu.be/dQw4w9WgXcQ" {
			t.Errorf("youtube_url = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "accepted", "task_id": "t-123"})
	})

	id, err := c.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Analyze : %v", err)
	}
	if id != "t-123" {
		t.Fatalf("task id = %q; want t-123", id)
	}
}

func TestAnalyzeRejectsMissingTaskID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
	})

	if _, err := c.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ"); err == nil {
		t.Fatal("erreur attendue sur réponse sans task_id")
	}
}

func TestStatusCompletedCarriesResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status/t-123" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "completed",
			"result": map[string]any{
				"summary":    "résumé",
				"full_text":  "texte complet",
				"chapters":   []map[string]string{{"timestamp": "00:00", "topic": "Intro"}},
				"transcript": []map[string]string{{"timestamp": "00:00", "text": "bonjour"}},
				"qa":         []map[string]string{{"question": "q", "answer": "a"}},
			},
		})
	})

	task, err := c.Status(context.Background(), "t-123")
	if err != nil {
		t.Fatalf("Status : %v", err)
	}
	if task.Status != model.StatusCompleted {
		t.Fatalf("status = %s", task.Status)
	}
	if task.Result == nil || task.Result.Summary != "résumé" {
		t.Fatalf("résultat manquant ou incomplet : %+v", task.Result)
	}
	if len(task.Result.Chapters) != 1 || task.Result.Chapters[0].Topic != "Intro" {
		t.Fatalf("chapitres mal décodés : %+v", task.Result.Chapters)
	}
}

func TestStatusFailedKeepsOpaquePayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "failed",
			"stage":  "download",
			"result": "Failed to download media.",
		})
	})

	task, err := c.Status(context.Background(), "t-err")
	if err != nil {
		t.Fatalf("Status : %v", err)
	}
	if task.Status != model.StatusFailed {
		t.Fatalf("status = %s", task.Status)
	}
	if task.Failure != "Failed to download media." {
		t.Fatalf("failure = %q", task.Failure)
	}
	if task.Result != nil {
		t.Fatal("result doit rester nil en cas d'échec")
	}
}

func TestAskSendsHistoryAndQuestionSeparately(t *testing.T) {
	history := []model.ConversationTurn{
		{Sender: model.SenderUser, Text: "Q0"},
		{Sender: model.SenderAI, Text: "A0"},
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode requête ask : %v", err)
		}
		if req.TaskID != "t-123" || req.Question != "Q1" {
			t.Errorf("requête = %+v", req)
		}
		if len(req.History) != 2 || req.History[1].Text != "A0" {
			t.Errorf("historique = %+v", req.History)
		}
		json.NewEncoder(w).Encode(map[string]string{"answer": "A1"})
	})

	answer, err := c.Ask(context.Background(), "t-123", "Q1", history)
	if err != nil {
		t.Fatalf("Ask : %v", err)
	}
	if answer != "A1" {
		t.Fatalf("answer = %q", answer)
	}
}

func TestDeeperAnalysis(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req enrichRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode requête : %v", err)
		}
		if req.Text != "un passage" {
			t.Errorf("text = %q", req.Text)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"key_concepts":        []string{"c1", "c2"},
			"eli5":                "simple",
			"follow_up_questions": []string{"et après ?"},
		})
	})

	e, err := c.DeeperAnalysis(context.Background(), "un passage")
	if err != nil {
		t.Fatalf("DeeperAnalysis : %v", err)
	}
	if len(e.KeyConcepts) != 2 || e.ELI5 != "simple" || len(e.FollowUpQuestions) != 1 {
		t.Fatalf("enrichissement mal décodé : %+v", e)
	}
}

func TestFlashcards(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"flashcards": []map[string]string{
				{"front": "recto", "back": "verso"},
			},
		})
	})

	cards, err := c.Flashcards(context.Background(), "t-123")
	if err != nil {
		t.Fatalf("Flashcards : %v", err)
	}
	if len(cards) != 1 || cards[0].Back != "verso" {
		t.Fatalf("cartes = %+v", cards)
	}
}

func TestServerErrorWrapsErrStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Status(context.Background(), "t-123")
	if err == nil {
		t.Fatal("erreur attendue")
	}
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("erreur non enveloppée dans ErrStatus : %v", err)
	}
}
