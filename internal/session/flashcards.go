package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/patrickprogramme/scholar/pkg/model"
)

var (
	ErrDeckBusy   = errors.New("une génération de flashcards est déjà en cours")
	ErrDeckFailed = errors.New("échec de la génération des flashcards")
)

// GenerateFunc exécute l'appel réseau de génération du lot de cartes.
type GenerateFunc func(ctx context.Context) ([]model.Flashcard, error)

// FlashcardDeck porte le lot de cartes de la session courante et l'état
// "retournée" par indice. Cet état d'affichage n'appartient qu'au deck,
// indépendamment du contenu des cartes.
type FlashcardDeck struct {
	mu      sync.Mutex
	epoch   string
	cards   []model.Flashcard
	flipped map[int]bool
	busy    bool
}

// NewFlashcardDeck construit un deck vide pour l'epoch donné.
func NewFlashcardDeck(epoch string) *FlashcardDeck {
	return &FlashcardDeck{epoch: epoch, flipped: make(map[int]bool)}
}

// Generate demande un nouveau lot de cartes et remplace l'existant.
// L'échec est global et non fatal : le deck précédent est conservé,
// l'utilisateur peut simplement réessayer. Une réponse arrivant après
// remplacement de la session est écartée.
func (d *FlashcardDeck) Generate(ctx context.Context, generate GenerateFunc) ([]model.Flashcard, error) {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return nil, ErrDeckBusy
	}
	d.busy = true
	epoch := d.epoch
	d.mu.Unlock()

	cards, err := generate(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.epoch != epoch {
		return nil, ErrStaleSession
	}
	d.busy = false
	if err != nil {
		return nil, fmt.Errorf("%w : %v", ErrDeckFailed, err)
	}

	d.cards = cards
	d.flipped = make(map[int]bool) // nouveau lot -> plus rien de retourné
	return cards, nil
}

// Cards renvoie une copie du lot courant.
func (d *FlashcardDeck) Cards() []model.Flashcard {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]model.Flashcard, len(d.cards))
	copy(out, d.cards)
	return out
}

// ToggleFlip retourne (ou remet à l'endroit) la carte d'indice i.
// Indice hors bornes -> no-op.
func (d *FlashcardDeck) ToggleFlip(i int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.cards) {
		return
	}
	if d.flipped[i] {
		delete(d.flipped, i)
	} else {
		d.flipped[i] = true
	}
}

// IsFlipped indique si la carte d'indice i est côté verso.
func (d *FlashcardDeck) IsFlipped(i int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flipped[i]
}

// Len renvoie le nombre de cartes du lot courant.
func (d *FlashcardDeck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cards)
}

// Reset vide le deck pour la nouvelle session identifiée par epoch.
func (d *FlashcardDeck) Reset(epoch string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.epoch = epoch
	d.cards = nil
	d.flipped = make(map[int]bool)
	d.busy = false
}
