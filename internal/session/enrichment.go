package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/patrickprogramme/scholar/pkg/model"
)

// Erreurs non fatales des fonctionnalités secondaires : elles n'invalident
// jamais la Task principale, et tout retry est à l'initiative de l'utilisateur.
var (
	ErrEnrichBusy   = errors.New("un enrichissement est déjà en cours")
	ErrEnrichFailed = errors.New("échec de l'enrichissement")
	ErrStaleSession = errors.New("réponse écartée : la session a été remplacée")
)

// EnrichFunc exécute l'appel réseau d'enrichissement d'un texte.
type EnrichFunc func(ctx context.Context, text string) (model.Enrichment, error)

// EnrichmentCache mémorise les enrichissements par clé de scope
// ("full_text" ou "chapter_<mm:ss>") pour la session courante.
//
// Le slot de chargement est unique et partagé : un seul enrichissement est
// considéré en vol à la fois, quelle que soit la clé. Les résultats, eux,
// sont rangés par clé et ne se marchent jamais dessus.
type EnrichmentCache struct {
	mu      sync.Mutex
	epoch   string
	entries map[string]model.Enrichment
	loading string // clé en cours de chargement, "" si aucune
}

// NewEnrichmentCache construit un cache vide pour l'epoch donné.
func NewEnrichmentCache(epoch string) *EnrichmentCache {
	return &EnrichmentCache{
		epoch:   epoch,
		entries: make(map[string]model.Enrichment),
	}
}

// Load demande l'enrichissement de text et range le résultat sous key.
// En cas d'échec réseau, un placeholder d'erreur est stocké sous la même
// clé : un simple ré-affichage ne redéclenchera pas de requête.
//
// L'epoch capturé au départ sert d'étiquette : si la session a été
// remplacée pendant l'appel, la réponse est écartée (ErrStaleSession)
// au lieu de polluer le cache de la nouvelle session.
func (c *EnrichmentCache) Load(ctx context.Context, key, text string, fetch EnrichFunc) (model.Enrichment, error) {
	c.mu.Lock()
	if c.loading != "" {
		c.mu.Unlock()
		return model.Enrichment{}, ErrEnrichBusy
	}
	c.loading = key
	epoch := c.epoch
	c.mu.Unlock()

	result, fetchErr := fetch(ctx, text)
	if fetchErr != nil {
		result = model.Enrichment{Err: fetchErr.Error()}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		// ne surtout pas toucher au slot : il appartient désormais
		// à la session suivante
		return model.Enrichment{}, ErrStaleSession
	}
	if c.loading == key {
		c.loading = ""
	}
	c.entries[key] = result

	if fetchErr != nil {
		return result, fmt.Errorf("%w (%s) : %v", ErrEnrichFailed, key, fetchErr)
	}
	return result, nil
}

// Get renvoie l'entrée stockée sous key, placeholder d'erreur compris.
func (c *EnrichmentCache) Get(key string) (model.Enrichment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// IsLoading indique si key est la clé actuellement en vol.
func (c *EnrichmentCache) IsLoading(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading == key
}

// Busy indique si un chargement (toutes clés confondues) est en vol.
func (c *EnrichmentCache) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading != ""
}

// Len renvoie le nombre d'entrées stockées.
func (c *EnrichmentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Invalidate vide le cache et libère le slot de chargement pour la
// nouvelle session identifiée par epoch. Appelé inconditionnellement à
// chaque nouvelle soumission.
func (c *EnrichmentCache) Invalidate(epoch string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch = epoch
	c.entries = make(map[string]model.Enrichment)
	c.loading = ""
}
