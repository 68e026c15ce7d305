// Package player traduit un timestamp textuel en commande de positionnement
// sur le lecteur vidéo externe. Le lecteur n'est qu'une capacité optionnelle :
// la synchronisation est best-effort, jamais garantie.
package player

import (
	"sync"

	"github.com/patrickprogramme/scholar/pkg/model"
)

// Seeker est la capacité minimale attendue du lecteur embarqué.
type Seeker interface {
	SeekTo(seconds model.Seconds)
}

// Sync relaie les demandes de positionnement vers le Seeker attaché.
type Sync struct {
	mu     sync.Mutex
	seeker Seeker
}

// NewSync construit une synchronisation sans lecteur attaché.
func NewSync() *Sync {
	return &Sync{}
}

// Attach branche (ou débranche, avec nil) le lecteur.
func (s *Sync) Attach(seeker Seeker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeker = seeker
}

// Seek positionne le lecteur sur le timestamp "mm:ss" donné.
// Lecteur absent ou timestamp illisible -> no-op silencieux : aucune
// erreur n'est remontée pour un lecteur pas prêt.
func (s *Sync) Seek(timestamp string) {
	seconds, err := model.ParseTimestamp(timestamp)
	if err != nil {
		return
	}

	s.mu.Lock()
	seeker := s.seeker
	s.mu.Unlock()
	if seeker == nil {
		return
	}
	seeker.SeekTo(seconds)
}
