package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/patrickprogramme/scholar/pkg/model"
)

// DefaultPollInterval est la cadence de vérification du statut.
const DefaultPollInterval = 2 * time.Second

// Erreurs distinctes par origine : l'échec de soumission (la session ne
// démarre jamais) n'est pas l'échec de polling (session avortée en vol).
// Aucun retry automatique dans les deux cas.
var (
	ErrSubmitFailed      = errors.New("échec de soumission de l'analyse")
	ErrStatusCheckFailed = errors.New("échec de la vérification du statut")
)

// TaskState est l'état local du contrôleur, distinct du statut distant :
// submitting/polling n'existent que côté client.
type TaskState int

const (
	StateIdle TaskState = iota
	StateSubmitting
	StatePolling
	StateCompleted
	StateFailed
)

func (s TaskState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StatePolling:
		return "polling"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TaskController possède en exclusivité la Task courante : lui seul la
// mute, toujours par remplacement en bloc. Les autres composants la lisent
// via Snapshot().
type TaskController struct {
	backend  Backend
	interval time.Duration
	onUpdate func(model.Task) // notifié après chaque remplacement ; peut être nil

	mu      sync.Mutex
	state   TaskState
	task    model.Task
	lastErr error
	stop    context.CancelFunc
	done    chan struct{} // fermé quand la soumission courante atteint un état terminal
}

// NewTaskController construit le contrôleur. interval <= 0 -> DefaultPollInterval.
// onUpdate est appelé hors verrou, avec une copie de la Task.
func NewTaskController(backend Backend, interval time.Duration, onUpdate func(model.Task)) *TaskController {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	done := make(chan struct{})
	close(done) // rien en vol au départ
	return &TaskController{
		backend:  backend,
		interval: interval,
		onUpdate: onUpdate,
		done:     done,
	}
}

// Submit soumet videoURL au backend puis démarre la boucle de polling.
// La boucle précédente, s'il y en a une, est arrêtée d'abord : il n'y a
// jamais plus d'un timer actif par contrôleur.
//
// ctx doit survivre à l'appel : il borne aussi la boucle de polling.
// En cas d'échec réseau de la soumission, l'état passe à failed sans
// qu'aucun identifiant n'ait été obtenu, et l'erreur enveloppe ErrSubmitFailed.
func (tc *TaskController) Submit(ctx context.Context, videoURL string) error {
	tc.Cancel()

	done := make(chan struct{})
	tc.mu.Lock()
	tc.state = StateSubmitting
	tc.task = model.Task{}
	tc.lastErr = nil
	tc.done = done
	tc.mu.Unlock()

	id, err := tc.backend.Analyze(ctx, videoURL)
	if err != nil {
		failure := fmt.Errorf("%w : %v", ErrSubmitFailed, err)
		tc.mu.Lock()
		tc.state = StateFailed
		tc.task = model.Task{Status: model.StatusFailed, Failure: err.Error()}
		tc.lastErr = failure
		snapshot := tc.task
		tc.mu.Unlock()
		close(done)
		tc.notify(snapshot)
		return failure
	}

	loopCtx, cancel := context.WithCancel(ctx)
	tc.mu.Lock()
	tc.state = StatePolling
	tc.task = model.Task{ID: id, Status: model.StatusAccepted}
	tc.stop = cancel
	snapshot := tc.task
	tc.mu.Unlock()
	tc.notify(snapshot)

	go tc.pollLoop(loopCtx, id, done)
	return nil
}

// pollLoop interroge le statut à cadence fixe jusqu'à un état terminal,
// une erreur de transport, ou l'annulation du contexte. Elle est l'unique
// responsable de la fermeture de son canal done.
func (tc *TaskController) pollLoop(ctx context.Context, taskID string, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(tc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			task, err := tc.backend.Status(ctx, taskID)

			tc.mu.Lock()
			if tc.done != done {
				// une nouvelle soumission a remplacé celle-ci pendant
				// l'appel réseau : réponse périmée, on la jette
				tc.mu.Unlock()
				return
			}
			if err != nil {
				// fatal pour la session : on arrête sans retry, seule
				// une nouvelle soumission permet de repartir
				tc.state = StateFailed
				tc.lastErr = fmt.Errorf("%w : %v", ErrStatusCheckFailed, err)
				tc.task.Status = model.StatusFailed
				snapshot := tc.task
				tc.mu.Unlock()
				tc.notify(snapshot)
				return
			}

			// remplacement en bloc, jamais de fusion champ à champ
			tc.task = task
			terminal := task.Status.IsTerminal()
			if terminal {
				if task.Status == model.StatusCompleted {
					tc.state = StateCompleted
				} else {
					tc.state = StateFailed
				}
			}
			snapshot := tc.task
			tc.mu.Unlock()
			tc.notify(snapshot)

			if terminal {
				return
			}
		}
	}
}

// Cancel arrête le timer de polling de la soumission courante.
// Les requêtes réseau déjà parties ne sont pas interrompues : leurs
// réponses tardives sont écartées par le garde d'identité dans pollLoop.
func (tc *TaskController) Cancel() {
	tc.mu.Lock()
	stop := tc.stop
	tc.stop = nil
	tc.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Snapshot renvoie une copie de la Task courante.
func (tc *TaskController) Snapshot() model.Task {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.task
}

// State renvoie l'état local du contrôleur.
func (tc *TaskController) State() TaskState {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.state
}

// Err renvoie l'erreur fatale de la soumission courante (nil sinon).
func (tc *TaskController) Err() error {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.lastErr
}

// Done renvoie un canal fermé lorsque la soumission courante ne produira
// plus rien : état terminal, échec de soumission/polling, ou annulation.
func (tc *TaskController) Done() <-chan struct{} {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.done
}

func (tc *TaskController) notify(t model.Task) {
	if tc.onUpdate != nil {
		tc.onUpdate(t)
	}
}
