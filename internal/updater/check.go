package updater

import (
	"context"
	"fmt"
	"strings"
)

// UpdateCheck contient le résultat de la comparaison
type UpdateCheck struct {
	CurrentVersion string       // version compilée dans le binaire
	LatestRelease  *ReleaseInfo // info complète de la release distante
	IsUpToDate     bool         // true si CurrentVersion == LatestRelease.TagName
}

// CheckUpdate compare la version locale du binaire et la dernière release GitHub.
func CheckUpdate(ctx context.Context, localVer string) (*UpdateCheck, error) {
	latest, err := GetLatestRelease(ctx)
	if err != nil {
		return nil, fmt.Errorf("impossible de récupérer la release GitHub : %w", err)
	}

	// Comparer en ignorant un éventuel préfixe "v"
	isUpToDate := strings.TrimPrefix(localVer, "v") == strings.TrimPrefix(latest.TagName, "v")

	return &UpdateCheck{
		CurrentVersion: localVer,
		LatestRelease:  latest,
		IsUpToDate:     isUpToDate,
	}, nil
}
