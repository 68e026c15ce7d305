package model

import "fmt"

// TaskStatus représente l'étape du cycle de vie d'une tâche d'analyse
// telle que rapportée par le backend.
type TaskStatus string

const (
	StatusAccepted   TaskStatus = "accepted"
	StatusProcessing TaskStatus = "processing"
	StatusCompleted  TaskStatus = "completed"
	StatusFailed     TaskStatus = "failed"
)

// IsTerminal renvoie true si le statut ne peut plus évoluer.
// Une fois completed ou failed, plus aucune transition n'est possible.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func (s TaskStatus) String() string {
	return string(s)
}

// Task représente une tâche d'analyse et son état courant.
// L'ID est opaque (attribué par le backend) et immuable une fois obtenu.
// Result n'est présent que si Status == completed ; en cas d'échec distant
// le backend renvoie un payload opaque, conservé tel quel dans Failure.
type Task struct {
	ID      string          `json:"task_id"`
	Status  TaskStatus      `json:"status"`
	Stage   string          `json:"stage,omitempty"`
	Result  *AnalysisResult `json:"result,omitempty"`
	Failure string          `json:"failure,omitempty"`
}

// TranscriptSegment est une unité de texte horodatée du transcript.
// L'ordre du slice fait foi : on ne suppose PAS que les timestamps
// soient monotones, ils servent uniquement de clés d'égalité.
type TranscriptSegment struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// Chapter est une subdivision nommée de la vidéo, ancrée sur un timestamp
// qui doit correspondre à un segment du transcript pour être résolu.
type Chapter struct {
	Timestamp string `json:"timestamp"`
	Topic     string `json:"topic"`
}

// QAItem est une paire question/réponse pré-calculée par le backend.
type QAItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Visual décrit un repère visuel extrait de la vidéo à intervalle régulier.
type Visual struct {
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
}

// AnalysisResult est le résultat complet d'une analyse terminée.
type AnalysisResult struct {
	Summary    string              `json:"summary"`
	FullText   string              `json:"full_text"`
	Chapters   []Chapter           `json:"chapters"`
	Transcript []TranscriptSegment `json:"transcript"`
	QA         []QAItem            `json:"qa"`
	Visuals    []Visual            `json:"visuals,omitempty"`
}

// ScopeFullText est la clé de cache couvrant le texte intégral ;
// les chapitres utilisent ChapterScope.
const ScopeFullText = "full_text"

// ChapterScope construit la clé de cache d'un chapitre à partir de son timestamp.
func ChapterScope(timestamp string) string {
	return "chapter_" + timestamp
}

// Enrichment est le résultat d'une analyse approfondie à la demande.
// En cas d'échec on stocke quand même une entrée avec Err renseigné,
// pour que le rendu ne redéclenche pas de requête sans action utilisateur.
type Enrichment struct {
	KeyConcepts       []string `json:"key_concepts"`
	ELI5              string   `json:"eli5"`
	FollowUpQuestions []string `json:"follow_up_questions"`
	Err               string   `json:"error,omitempty"`
}

// Failed indique si l'entrée est un placeholder d'erreur.
func (e Enrichment) Failed() bool {
	return e.Err != ""
}

// Sender identifie l'auteur d'un tour de conversation.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ConversationTurn est un tour du fil de discussion.
// Le journal est strictement append-only : jamais réordonné ni tronqué
// pendant la vie d'une session.
type ConversationTurn struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// Flashcard est une carte de révision recto/verso générée en lot.
// L'état "retournée" est porté par le deck (ensemble d'indices), pas par la carte.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

func (f Flashcard) String() string {
	return fmt.Sprintf("Flashcard(front=%q)", f.Front)
}
