package api

import (
	"encoding/json"

	"github.com/patrickprogramme/scholar/pkg/model"
)

// Formes "fil" du contrat réseau. Les champs suivent exactement le JSON
// du backend ; la conversion vers pkg/model se fait dans client.go.

type analyzeResponse struct {
	Status string `json:"status"`
	TaskID string `json:"task_id"`
}

// statusResponse : result n'est typé qu'en cas de succès ; en cas d'échec le
// backend y place un payload de forme libre, conservé opaque (RawMessage).
type statusResponse struct {
	Status string          `json:"status"`
	Stage  string          `json:"stage,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

type askRequest struct {
	TaskID   string                   `json:"task_id"`
	Question string                   `json:"question"`
	History  []model.ConversationTurn `json:"history"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type enrichRequest struct {
	Text string `json:"text"`
}

type flashcardsRequest struct {
	TaskID string `json:"task_id"`
}

type flashcardsResponse struct {
	Flashcards []model.Flashcard `json:"flashcards"`
}
