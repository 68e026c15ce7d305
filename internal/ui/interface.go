package ui

import (
	"context"
)

type Interface interface {
	// GetVideoURL doit renvoyer une URL de vidéo valide.
	// Implémentation terminale : priorité clipboard -> prompt
	GetVideoURL(ctx context.Context) (string, error)

	// ReadCommand affiche le prompt et renvoie la ligne saisie, sans le saut de ligne.
	ReadCommand(ctx context.Context, prompt string) (string, error)

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
}
