package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickprogramme/scholar/pkg/model"
)

// Client parle au backend d'analyse. Il ne porte aucun état de session :
// toutes les méthodes sont des appels requête/réponse indépendants.
type Client struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	maxBytes  int64
	http      *http.Client
}

// NewClient construit un client pour le backend situé à baseURL.
// timeout <= 0 -> DefaultTimeout. Le slash final de baseURL est toléré.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: DefaultUserAgent,
		timeout:   timeout,
		maxBytes:  DefaultMaxBytes,
		http:      &http.Client{},
	}
}

// Analyze soumet une URL de vidéo et renvoie l'identifiant de tâche opaque
// attribué par le backend.
func (c *Client) Analyze(ctx context.Context, videoURL string) (string, error) {
	endpoint := fmt.Sprintf("%s/analyze?youtube_url=%s", c.baseURL, url.QueryEscape(videoURL))

	var resp analyzeResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, nil, &resp); err != nil {
		return "", fmt.Errorf("analyze: %w", err)
	}
	if resp.TaskID == "" {
		return "", fmt.Errorf("analyze: réponse sans task_id")
	}
	return resp.TaskID, nil
}

// Status interroge l'état d'une tâche. La Task retournée est une valeur
// complète destinée à remplacer l'ancienne en bloc (jamais fusionnée).
func (c *Client) Status(ctx context.Context, taskID string) (model.Task, error) {
	endpoint := fmt.Sprintf("%s/status/%s", c.baseURL, url.PathEscape(taskID))

	var resp statusResponse
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return model.Task{}, fmt.Errorf("status: %w", err)
	}

	task := model.Task{
		ID:     taskID,
		Status: model.TaskStatus(resp.Status),
		Stage:  resp.Stage,
	}

	switch task.Status {
	case model.StatusCompleted:
		if len(resp.Result) > 0 {
			var r model.AnalysisResult
			if err := json.Unmarshal(resp.Result, &r); err != nil {
				return model.Task{}, fmt.Errorf("status: decode result: %w", err)
			}
			task.Result = &r
		}
	case model.StatusFailed:
		// payload d'échec opaque : on le garde tel quel pour affichage
		task.Failure = strings.Trim(string(resp.Result), `"`)
	}
	return task, nil
}

// DeeperAnalysis demande un enrichissement du texte fourni.
func (c *Client) DeeperAnalysis(ctx context.Context, text string) (model.Enrichment, error) {
	var resp model.Enrichment
	err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/deeper-analysis", enrichRequest{Text: text}, &resp)
	if err != nil {
		return model.Enrichment{}, fmt.Errorf("deeper analysis: %w", err)
	}
	return resp, nil
}

// Ask pose une question libre sur la tâche taskID.
// history doit être le fil TEL QU'IL EXISTAIT avant la question : la
// question voyage dans son propre champ, jamais dupliquée dans l'historique.
func (c *Client) Ask(ctx context.Context, taskID, question string, history []model.ConversationTurn) (string, error) {
	req := askRequest{TaskID: taskID, Question: question, History: history}

	var resp askResponse
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/ask", req, &resp); err != nil {
		return "", fmt.Errorf("ask: %w", err)
	}
	return resp.Answer, nil
}

// Flashcards demande la génération d'un lot de cartes pour la tâche.
func (c *Client) Flashcards(ctx context.Context, taskID string) ([]model.Flashcard, error) {
	var resp flashcardsResponse
	err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/flashcards", flashcardsRequest{TaskID: taskID}, &resp)
	if err != nil {
		return nil, fmt.Errorf("flashcards: %w", err)
	}
	return resp.Flashcards, nil
}
